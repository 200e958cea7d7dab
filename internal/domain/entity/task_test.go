package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/domain/valueobject"
)

// fixClock makes now() return successive minutes starting at start
func fixClock(t *testing.T, start time.Time) {
	t.Helper()
	current := start
	now = func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
	t.Cleanup(func() { now = time.Now })
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewTask_Validation(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		title    string
		priority valueobject.Priority
		status   valueobject.Status
		wantErr  error
	}{
		{name: "empty id", id: "", title: "x", priority: valueobject.PriorityLow, status: valueobject.StatusTodo, wantErr: ErrInvalidTaskID},
		{name: "blank title", id: "1", title: "  ", priority: valueobject.PriorityLow, status: valueobject.StatusTodo, wantErr: ErrEmptyTaskTitle},
		{name: "bad priority", id: "1", title: "x", priority: "urgent", status: valueobject.StatusTodo, wantErr: ErrInvalidPriority},
		{name: "bad status", id: "1", title: "x", priority: valueobject.PriorityLow, status: "blocked", wantErr: ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.id, tt.title, "", tt.priority, tt.status)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewTask_CompletedStampsCompletionDate(t *testing.T) {
	task, err := NewTask("1", "done already", "", valueobject.PriorityLow, valueobject.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedDate())
	assert.Equal(t, task.CreatedAt(), *task.CompletedDate())

	open, err := NewTask("2", "open", "", valueobject.PriorityLow, valueobject.StatusTodo)
	require.NoError(t, err)
	assert.Nil(t, open.CompletedDate())
}

func TestTask_ApplyEdit(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fixClock(t, start)

	task, err := NewTask("1", "Write report", "draft", valueobject.PriorityLow, valueobject.StatusTodo)
	require.NoError(t, err)
	created := task.CreatedAt()

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	err = task.ApplyEdit(TaskPatch{
		Title:    ptr("Write final report"),
		Priority: ptr(valueobject.PriorityHigh),
		DueDate:  &due,
	})
	require.NoError(t, err)

	assert.Equal(t, "Write final report", task.Title())
	assert.Equal(t, "draft", task.Description())
	assert.Equal(t, valueobject.PriorityHigh, task.Priority())
	require.NotNil(t, task.DueDate())
	assert.Equal(t, due, *task.DueDate())
	assert.True(t, task.UpdatedAt().After(created))
	assert.Equal(t, created, task.CreatedAt())
}

func TestTask_ApplyEditCompletion(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	task, err := NewTask("1", "Ship", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)

	require.NoError(t, task.ApplyEdit(TaskPatch{Status: ptr(valueobject.StatusCompleted)}))
	require.NotNil(t, task.CompletedDate())
	firstStamp := *task.CompletedDate()

	// completed -> completed keeps the original stamp
	require.NoError(t, task.ApplyEdit(TaskPatch{Status: ptr(valueobject.StatusCompleted)}))
	assert.Equal(t, firstStamp, *task.CompletedDate())

	require.NoError(t, task.ApplyEdit(TaskPatch{Status: ptr(valueobject.StatusInProgress)}))
	assert.Nil(t, task.CompletedDate())
	assert.Equal(t, valueobject.StatusInProgress, task.Status())
}

func TestTask_ApplyEditIsAtomic(t *testing.T) {
	task, err := NewTask("1", "Keep me", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)
	before := task.Snapshot()

	err = task.ApplyEdit(TaskPatch{
		Title:    ptr("changed"),
		Priority: ptr(valueobject.Priority("extreme")),
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.Equal(t, before, task.Snapshot())

	require.NoError(t, task.ApplyEdit(TaskPatch{}))
	assert.Equal(t, before, task.Snapshot())
}

func TestTask_ClearDueDate(t *testing.T) {
	task, err := NewTask("1", "x", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)

	due := time.Now().Add(24 * time.Hour)
	require.NoError(t, task.ApplyEdit(TaskPatch{DueDate: &due}))
	require.NotNil(t, task.DueDate())

	require.NoError(t, task.ApplyEdit(TaskPatch{ClearDue: true}))
	assert.Nil(t, task.DueDate())
}

func TestTask_WorkingDays(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	task, err := NewTask("1", "x", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)

	monday := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)
	require.NoError(t, task.AddWorkingDay(monday))
	stamped := task.UpdatedAt()

	require.NoError(t, task.AddWorkingDay(monday.Add(2*time.Hour)))
	assert.Len(t, task.WorkingDays(), 1)
	assert.Equal(t, stamped, task.UpdatedAt(), "duplicate day must not touch the task")
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), task.WorkingDays()[0])
	assert.True(t, task.IsScheduledOn(monday))

	assert.ErrorIs(t, task.AddWorkingDay(time.Time{}), ErrInvalidDate)

	task.RemoveWorkingDay(monday)
	assert.Empty(t, task.WorkingDays())
	assert.True(t, task.UpdatedAt().After(stamped))
}

func TestTask_Notes(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	task, err := NewTask("1", "x", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)
	title, desc := task.Title(), task.Description()

	first := task.AddNote("Idea", "call the vendor")
	second := task.AddNote("", "second thought")
	require.Len(t, task.Notes(), 2)
	assert.NotEqual(t, first.ID(), second.ID())

	require.NoError(t, task.UpdateNote(first.ID(), "Idea v2", "email the vendor"))
	got, err := task.Note(first.ID())
	require.NoError(t, err)
	assert.Equal(t, "email the vendor", got.Content())
	assert.True(t, got.UpdatedAt().After(got.CreatedAt()))
	assert.Equal(t, "call the vendor", first.Content(), "previously returned note must not change")

	require.NoError(t, task.RemoveNote(second.ID()))
	assert.Len(t, task.Notes(), 1)

	assert.ErrorIs(t, task.RemoveNote("missing"), ErrNoteNotFound)
	assert.ErrorIs(t, task.UpdateNote("missing", "", ""), ErrNoteNotFound)

	assert.Equal(t, title, task.Title())
	assert.Equal(t, desc, task.Description())
}

func TestTask_CloneIsIndependent(t *testing.T) {
	task, err := NewTask("1", "x", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)
	note := task.AddNote("n", "c")

	clone := task.Clone()
	require.NoError(t, clone.UpdateNote(note.ID(), "changed", "changed"))
	require.NoError(t, clone.AddWorkingDay(time.Now()))

	orig, err := task.Note(note.ID())
	require.NoError(t, err)
	assert.Equal(t, "c", orig.Content())
	assert.Empty(t, task.WorkingDays())
}

func TestRestoreTask_RepairsCompletion(t *testing.T) {
	updated := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	stale := updated.Add(-time.Hour)

	completed, err := RestoreTask(TaskSnapshot{
		ID: "1", Title: "x", Priority: valueobject.PriorityLow, Status: valueobject.StatusCompleted,
		UpdatedAt: updated,
	})
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedDate())
	assert.Equal(t, updated, *completed.CompletedDate())

	open, err := RestoreTask(TaskSnapshot{
		ID: "2", Title: "y", Priority: valueobject.PriorityLow, Status: valueobject.StatusTodo,
		UpdatedAt: updated, CompletedDate: &stale,
	})
	require.NoError(t, err)
	assert.Nil(t, open.CompletedDate())

	_, err = RestoreTask(TaskSnapshot{
		ID: "3", Title: "z", Priority: valueobject.PriorityLow, Status: valueobject.StatusTodo,
		Notes: []NoteSnapshot{{ID: ""}},
	})
	assert.ErrorIs(t, err, ErrInvalidNoteID)
}

func TestTask_IsOverdue(t *testing.T) {
	at := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	task, err := NewTask("1", "x", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)
	assert.False(t, task.IsOverdue(at))

	past := at.Add(-time.Hour)
	require.NoError(t, task.ApplyEdit(TaskPatch{DueDate: &past}))
	assert.True(t, task.IsOverdue(at))

	require.NoError(t, task.ApplyEdit(TaskPatch{Status: ptr(valueobject.StatusCompleted)}))
	assert.False(t, task.IsOverdue(at))
}
