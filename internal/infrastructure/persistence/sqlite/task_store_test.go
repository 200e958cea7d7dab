package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	store := NewTaskStore(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func newBoard(t *testing.T) *entity.Board {
	t.Helper()

	a, err := entity.NewTask("a", "Plan sprint", "agenda", valueobject.PriorityHigh, valueobject.StatusTodo)
	require.NoError(t, err)
	due := time.Date(2026, 6, 1, 17, 0, 0, 0, time.UTC)
	require.NoError(t, a.ApplyEdit(entity.TaskPatch{DueDate: &due}))
	require.NoError(t, a.AddWorkingDay(time.Date(2026, 5, 30, 0, 0, 0, 0, time.Local)))
	require.NoError(t, a.AddWorkingDay(time.Date(2026, 5, 29, 0, 0, 0, 0, time.Local)))
	a.AddNote("first", "one")
	a.AddNote("", "two")

	b, err := entity.NewTask("b", "Retro", "", valueobject.PriorityLow, valueobject.StatusCompleted)
	require.NoError(t, err)

	today, err := entity.NewSection("today", "Today", b, a)
	require.NoError(t, err)
	later, err := entity.NewSection("later", "Later")
	require.NoError(t, err)

	board, err := entity.NewBoard(later, today)
	require.NoError(t, err)
	return board
}

func TestTaskStore_LoadEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, entity.ErrBoardNotFound)
}

func TestTaskStore_SaveLoad(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	board := newBoard(t)

	require.NoError(t, store.Save(ctx, board))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	sections := loaded.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "later", sections[0].ID())
	assert.Equal(t, []string{"b", "a"}, sections[1].TaskIDs())

	got, _, err := loaded.FindTask("a")
	require.NoError(t, err)
	want, _, err := board.FindTask("a")
	require.NoError(t, err)

	assert.Equal(t, want.Title(), got.Title())
	assert.Equal(t, want.Description(), got.Description())
	assert.Equal(t, want.Priority(), got.Priority())
	assert.True(t, want.UpdatedAt().Equal(got.UpdatedAt()))
	require.NotNil(t, got.DueDate())
	assert.True(t, want.DueDate().Equal(*got.DueDate()))
	assert.Nil(t, got.CompletedDate())
	assert.Len(t, got.WorkingDays(), 2)
	assert.True(t, got.IsScheduledOn(time.Date(2026, 5, 29, 8, 0, 0, 0, time.Local)))

	notes := got.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, "one", notes[0].Content())
	assert.Equal(t, "two", notes[1].Content())

	done, _, err := loaded.FindTask("b")
	require.NoError(t, err)
	assert.NotNil(t, done.CompletedDate())
}

func TestTaskStore_SaveReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	board := newBoard(t)
	require.NoError(t, store.Save(ctx, board))

	next := board.Move("a", "later")
	next, err := next.RemoveTask("b")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, next))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.TaskCount())
	owner, ok := loaded.SectionOf("a")
	require.True(t, ok)
	assert.Equal(t, "later", owner)

	got, _, err := loaded.FindTask("a")
	require.NoError(t, err)
	assert.Len(t, got.Notes(), 2, "notes survive a section change")
}

func TestTaskStore_EmptyBoardIsStored(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	empty, err := entity.NewBoard()
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, empty))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Sections())
}

func TestTaskStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Save(ctx, newBoard(t)))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, entity.ErrBoardNotFound, "a failed save leaves nothing behind")
}
