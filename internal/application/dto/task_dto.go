package dto

import "time"

// DateLayout is the calendar-day format used in requests and DTOs
const DateLayout = "2006-01-02"

// TaskDTO represents a task data transfer object
type TaskDTO struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Priority      string     `json:"priority" yaml:"priority"`
	Status        string     `json:"status" yaml:"status"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" yaml:"updated_at"`
	DueDate       *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CompletedDate *time.Time `json:"completed_date,omitempty" yaml:"completed_date,omitempty"`
	WorkingDays   []string   `json:"working_days" yaml:"working_days"`
	Notes         []NoteDTO  `json:"notes" yaml:"notes"`
	IsOverdue     bool       `json:"is_overdue" yaml:"is_overdue"`
	SectionID     string     `json:"section_id,omitempty" yaml:"section_id,omitempty"`
}

// NoteDTO represents a note on a task
type NoteDTO struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// CreateTaskRequest represents a request to create a task
type CreateTaskRequest struct {
	SectionID   string `json:"section_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Priority defaults to medium when empty
	Priority string `json:"priority,omitempty"`
	// DueDate is a DateLayout or RFC 3339 value
	DueDate string `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents a request to update a task. Nil fields are left
// unchanged; an empty DueDate clears the due date.
type UpdateTaskRequest struct {
	TaskID      string  `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

// MoveTaskRequest drops TaskID onto OverID, which is a section or task ID
type MoveTaskRequest struct {
	TaskID string `json:"task_id"`
	OverID string `json:"over_id"`
}

// NoteRequest adds, edits or removes a note. NoteID is empty when adding.
type NoteRequest struct {
	TaskID  string `json:"task_id"`
	NoteID  string `json:"note_id,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// WorkingDayRequest schedules or unschedules a task on a day
type WorkingDayRequest struct {
	TaskID string `json:"task_id"`
	Day    string `json:"day"`
}

// ListTasksRequest filters ListTasks; zero values match everything
type ListTasksRequest struct {
	SectionID string `json:"section_id,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Status    string `json:"status,omitempty"`
	Overdue   bool   `json:"overdue,omitempty"`
	// ScheduledOn keeps tasks with this working day
	ScheduledOn string `json:"scheduled_on,omitempty"`
}

// MoveResultDTO reports the board after a move and whether anything changed
type MoveResultDTO struct {
	Moved bool     `json:"moved" yaml:"moved"`
	Board BoardDTO `json:"board" yaml:"board"`
}

// AgendaDTO lists the work for one day
type AgendaDTO struct {
	Day       string    `json:"day" yaml:"day"`
	Scheduled []TaskDTO `json:"scheduled" yaml:"scheduled"`
	Overdue   []TaskDTO `json:"overdue" yaml:"overdue"`
}
