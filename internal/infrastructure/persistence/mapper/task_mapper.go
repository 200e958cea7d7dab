package mapper

import (
	"fmt"
	"time"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

// DayLayout is the on-disk format of working days
const DayLayout = "2006-01-02"

// TaskStorage represents the task.md header; the description is the document body
type TaskStorage struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Created       time.Time     `yaml:"created"`
	Modified      time.Time     `yaml:"modified"`
	DueDate       *time.Time    `yaml:"due_date,omitempty"`
	CompletedDate *time.Time    `yaml:"completed_date,omitempty"`
	Priority      string        `yaml:"priority"`
	Status        string        `yaml:"status"`
	WorkingDays   []string      `yaml:"working_days,omitempty"`
	Notes         []NoteStorage `yaml:"notes,omitempty"`
}

// NoteStorage represents one note inside the task header
type NoteStorage struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title,omitempty"`
	Content  string    `yaml:"content"`
	Created  time.Time `yaml:"created"`
	Modified time.Time `yaml:"modified"`
}

// TaskToStorage converts a Task entity to its header and body
func TaskToStorage(task *entity.Task) (TaskStorage, string) {
	s := task.Snapshot()

	days := make([]string, 0, len(s.WorkingDays))
	for _, d := range s.WorkingDays {
		days = append(days, d.Format(DayLayout))
	}

	notes := make([]NoteStorage, 0, len(s.Notes))
	for _, n := range s.Notes {
		notes = append(notes, NoteStorage{
			ID:       n.ID,
			Title:    n.Title,
			Content:  n.Content,
			Created:  n.CreatedAt,
			Modified: n.UpdatedAt,
		})
	}

	return TaskStorage{
		ID:            s.ID,
		Title:         s.Title,
		Created:       s.CreatedAt,
		Modified:      s.UpdatedAt,
		DueDate:       s.DueDate,
		CompletedDate: s.CompletedDate,
		Priority:      s.Priority.String(),
		Status:        s.Status.String(),
		WorkingDays:   days,
		Notes:         notes,
	}, s.Description
}

// TaskFromStorage converts a header and body back to a Task entity.
// dirName is the folder the task was read from and must match the stored ID.
func TaskFromStorage(storage TaskStorage, body string, dirName string) (*entity.Task, error) {
	if storage.ID != "" && storage.ID != dirName {
		return nil, fmt.Errorf("task ID mismatch: metadata has %s but folder is %s", storage.ID, dirName)
	}

	priorityStr := storage.Priority
	if priorityStr == "" {
		priorityStr = valueobject.PriorityMedium.String()
	}
	priority, err := valueobject.ParsePriority(priorityStr)
	if err != nil {
		return nil, fmt.Errorf("invalid priority: %w", err)
	}

	statusStr := storage.Status
	if statusStr == "" {
		statusStr = valueobject.StatusTodo.String()
	}
	status, err := valueobject.ParseStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("invalid status: %w", err)
	}

	days, err := ParseDays(storage.WorkingDays)
	if err != nil {
		return nil, err
	}

	notes := make([]entity.NoteSnapshot, 0, len(storage.Notes))
	for _, n := range storage.Notes {
		notes = append(notes, entity.NoteSnapshot{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.Created,
			UpdatedAt: n.Modified,
		})
	}

	return entity.RestoreTask(entity.TaskSnapshot{
		ID:            dirName,
		Title:         storage.Title,
		Description:   body,
		Priority:      priority,
		Status:        status,
		CreatedAt:     storage.Created,
		UpdatedAt:     storage.Modified,
		CompletedDate: storage.CompletedDate,
		DueDate:       storage.DueDate,
		WorkingDays:   days,
		Notes:         notes,
	})
}

// ParseDays parses working days stored as DayLayout in the local time zone
func ParseDays(values []string) ([]time.Time, error) {
	days := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.ParseInLocation(DayLayout, v, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid working day %q: %w", v, err)
		}
		days = append(days, d)
	}
	return days, nil
}
