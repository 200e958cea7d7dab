package entity

import (
	"strings"
	"time"

	"prioritizer/internal/domain/valueobject"
)

// Task represents a work item owned by exactly one section
type Task struct {
	id            string
	title         string
	description   string
	priority      valueobject.Priority
	status        valueobject.Status
	createdAt     time.Time
	updatedAt     time.Time
	completedDate *time.Time
	dueDate       *time.Time
	workingDays   []time.Time
	notes         []*Note
}

// TaskSnapshot is the plain representation of a task used by stores and mappers
type TaskSnapshot struct {
	ID            string
	Title         string
	Description   string
	Priority      valueobject.Priority
	Status        valueobject.Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedDate *time.Time
	DueDate       *time.Time
	WorkingDays   []time.Time
	Notes         []NoteSnapshot
}

// TaskPatch holds a partial set of field changes; nil fields are left alone
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *valueobject.Priority
	Status      *valueobject.Status
	DueDate     *time.Time
	ClearDue    bool
}

// IsEmpty reports whether the patch changes nothing
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil &&
		p.Status == nil && p.DueDate == nil && !p.ClearDue
}

// NewTask creates a new Task entity
func NewTask(
	id string,
	title string,
	description string,
	priority valueobject.Priority,
	status valueobject.Status,
) (*Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidTaskID
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTaskTitle
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	ts := now()
	t := &Task{
		id:          id,
		title:       title,
		description: description,
		priority:    priority,
		status:      status,
		createdAt:   ts,
		updatedAt:   ts,
		workingDays: make([]time.Time, 0),
		notes:       make([]*Note, 0),
	}
	if status.IsCompleted() {
		t.completedDate = &ts
	}
	return t, nil
}

// RestoreTask rebuilds a task from persisted state.
// A completion date that disagrees with the status is repaired: it is dropped for
// non-completed tasks and set to the update time for completed ones.
func RestoreTask(s TaskSnapshot) (*Task, error) {
	if strings.TrimSpace(s.ID) == "" {
		return nil, ErrInvalidTaskID
	}
	if strings.TrimSpace(s.Title) == "" {
		return nil, ErrEmptyTaskTitle
	}
	if !s.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if !s.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	t := &Task{
		id:            s.ID,
		title:         s.Title,
		description:   s.Description,
		priority:      s.Priority,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		completedDate: copyTime(s.CompletedDate),
		dueDate:       copyTime(s.DueDate),
		workingDays:   make([]time.Time, 0, len(s.WorkingDays)),
		notes:         make([]*Note, 0, len(s.Notes)),
	}

	switch {
	case s.Status.IsCompleted() && t.completedDate == nil:
		stamp := s.UpdatedAt
		t.completedDate = &stamp
	case !s.Status.IsCompleted():
		t.completedDate = nil
	}

	for _, day := range s.WorkingDays {
		t.addWorkingDay(day)
	}
	for _, ns := range s.Notes {
		note, err := restoreNote(ns)
		if err != nil {
			return nil, err
		}
		t.notes = append(t.notes, note)
	}

	return t, nil
}

// ID returns the task ID
func (t *Task) ID() string {
	return t.id
}

// Title returns the task title
func (t *Task) Title() string {
	return t.title
}

// Description returns the task description
func (t *Task) Description() string {
	return t.description
}

// Priority returns the task priority
func (t *Task) Priority() valueobject.Priority {
	return t.priority
}

// Status returns the task status
func (t *Task) Status() valueobject.Status {
	return t.status
}

// CreatedAt returns when the task was created
func (t *Task) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns when the task content was last edited
func (t *Task) UpdatedAt() time.Time {
	return t.updatedAt
}

// CompletedDate returns when the task was completed, nil unless completed
func (t *Task) CompletedDate() *time.Time {
	return copyTime(t.completedDate)
}

// DueDate returns the task due date
func (t *Task) DueDate() *time.Time {
	return copyTime(t.dueDate)
}

// WorkingDays returns a copy of the days scheduled for this task
func (t *Task) WorkingDays() []time.Time {
	days := make([]time.Time, len(t.workingDays))
	copy(days, t.workingDays)
	return days
}

// Notes returns the task notes in insertion order
func (t *Task) Notes() []*Note {
	notes := make([]*Note, len(t.notes))
	copy(notes, t.notes)
	return notes
}

// Note returns the note with the given ID
func (t *Task) Note(noteID string) (*Note, error) {
	for _, n := range t.notes {
		if n.id == noteID {
			return n, nil
		}
	}
	return nil, ErrNoteNotFound
}

// Snapshot returns a deep copy of the task's state
func (t *Task) Snapshot() TaskSnapshot {
	notes := make([]NoteSnapshot, 0, len(t.notes))
	for _, n := range t.notes {
		notes = append(notes, n.Snapshot())
	}
	return TaskSnapshot{
		ID:            t.id,
		Title:         t.title,
		Description:   t.description,
		Priority:      t.priority,
		Status:        t.status,
		CreatedAt:     t.createdAt,
		UpdatedAt:     t.updatedAt,
		CompletedDate: copyTime(t.completedDate),
		DueDate:       copyTime(t.dueDate),
		WorkingDays:   t.WorkingDays(),
		Notes:         notes,
	}
}

// Clone returns a deep copy that can be edited without affecting boards holding t
func (t *Task) Clone() *Task {
	c := *t
	c.completedDate = copyTime(t.completedDate)
	c.dueDate = copyTime(t.dueDate)
	c.workingDays = t.WorkingDays()
	c.notes = make([]*Note, 0, len(t.notes))
	for _, n := range t.notes {
		c.notes = append(c.notes, n.clone())
	}
	return &c
}

// ApplyEdit merges patch into the task and stamps the update time.
// The patch is validated as a whole before anything changes.
func (t *Task) ApplyEdit(patch TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return ErrInvalidPriority
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return ErrInvalidStatus
	}
	if patch.DueDate != nil && patch.DueDate.IsZero() {
		return ErrInvalidDate
	}

	ts := now()
	if patch.Title != nil {
		t.title = *patch.Title
	}
	if patch.Description != nil {
		t.description = *patch.Description
	}
	if patch.Priority != nil {
		t.priority = *patch.Priority
	}
	if patch.Status != nil {
		t.setStatus(*patch.Status, ts)
	}
	if patch.ClearDue {
		t.dueDate = nil
	}
	if patch.DueDate != nil {
		due := *patch.DueDate
		t.dueDate = &due
	}
	t.updatedAt = ts
	return nil
}

func (t *Task) setStatus(status valueobject.Status, ts time.Time) {
	if status.IsCompleted() {
		if !t.status.IsCompleted() || t.completedDate == nil {
			stamp := ts
			t.completedDate = &stamp
		}
	} else {
		t.completedDate = nil
	}
	t.status = status
}

// AddWorkingDay schedules the task on the calendar day of day.
// Adding a day that is already scheduled is a no-op.
func (t *Task) AddWorkingDay(day time.Time) error {
	if day.IsZero() {
		return ErrInvalidDate
	}
	if t.addWorkingDay(day) {
		t.updatedAt = now()
	}
	return nil
}

func (t *Task) addWorkingDay(day time.Time) bool {
	for _, existing := range t.workingDays {
		if sameDay(existing, day) {
			return false
		}
	}
	t.workingDays = append(t.workingDays, calendarDay(day))
	return true
}

// RemoveWorkingDay unschedules the calendar day of day
func (t *Task) RemoveWorkingDay(day time.Time) {
	kept := t.workingDays[:0:0]
	for _, existing := range t.workingDays {
		if !sameDay(existing, day) {
			kept = append(kept, existing)
		}
	}
	if len(kept) != len(t.workingDays) {
		t.workingDays = kept
		t.updatedAt = now()
	}
}

// IsScheduledOn reports whether day is one of the task's working days
func (t *Task) IsScheduledOn(day time.Time) bool {
	for _, existing := range t.workingDays {
		if sameDay(existing, day) {
			return true
		}
	}
	return false
}

// AddNote appends a new note and returns it
func (t *Task) AddNote(title, content string) *Note {
	ts := now()
	note := &Note{
		id:        NewID(),
		title:     title,
		content:   content,
		createdAt: ts,
		updatedAt: ts,
	}
	t.notes = append(t.notes, note)
	t.updatedAt = ts
	return note
}

// UpdateNote replaces the title and content of an existing note
func (t *Task) UpdateNote(noteID, title, content string) error {
	for i, n := range t.notes {
		if n.id != noteID {
			continue
		}
		ts := now()
		updated := n.clone()
		updated.title = title
		updated.content = content
		updated.updatedAt = ts
		t.notes[i] = updated
		t.updatedAt = ts
		return nil
	}
	return ErrNoteNotFound
}

// RemoveNote deletes a note by ID
func (t *Task) RemoveNote(noteID string) error {
	for i, n := range t.notes {
		if n.id == noteID {
			t.notes = append(t.notes[:i:i], t.notes[i+1:]...)
			t.updatedAt = now()
			return nil
		}
	}
	return ErrNoteNotFound
}

// IsOverdue checks if the task is past its due date and not completed
func (t *Task) IsOverdue(at time.Time) bool {
	if t.dueDate == nil || t.status.IsCompleted() {
		return false
	}
	return t.dueDate.Before(at)
}
