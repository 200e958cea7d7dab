package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

func newTestStore(t *testing.T) *TaskStore {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewTaskStore(t.TempDir(), logger)
}

func newBoard(t *testing.T) *entity.Board {
	t.Helper()

	a, err := entity.NewTask("task-a", "Write report", "First line\n\nSecond paragraph", valueobject.PriorityHigh, valueobject.StatusInProgress)
	require.NoError(t, err)
	due := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, a.ApplyEdit(entity.TaskPatch{DueDate: &due}))
	require.NoError(t, a.AddWorkingDay(time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local)))
	a.AddNote("Outline", "intro, body, end")

	b, err := entity.NewTask("task-b", "Ship", "", valueobject.PriorityLow, valueobject.StatusCompleted)
	require.NoError(t, err)
	c, err := entity.NewTask("task-c", "Review", "", valueobject.PriorityMedium, valueobject.StatusTodo)
	require.NoError(t, err)

	today, err := entity.NewSection("today", "Today", a, b)
	require.NoError(t, err)
	todo, err := entity.NewSection("todo", "TODO", c)
	require.NoError(t, err)
	empty, err := entity.NewSection("tomorrow", "Tomorrow")
	require.NoError(t, err)

	board, err := entity.NewBoard(today, empty, todo)
	require.NoError(t, err)
	return board
}

func sectionOrder(b *entity.Board) []string {
	ids := make([]string, 0)
	for _, s := range b.Sections() {
		ids = append(ids, s.ID())
	}
	return ids
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
	assert.Equal(t, []string{"today", "tomorrow", "todo"}, sectionOrder(loaded))

	today, err := loaded.Section("today")
	require.NoError(t, err)
	assert.Equal(t, "Today", today.Title())
	assert.Equal(t, []string{"task-a", "task-b"}, today.TaskIDs())

	want, _, err := board.FindTask("task-a")
	require.NoError(t, err)
	got, _, err := loaded.FindTask("task-a")
	require.NoError(t, err)

	ws, gs := want.Snapshot(), got.Snapshot()
	assert.Equal(t, ws.Title, gs.Title)
	assert.Equal(t, ws.Description, gs.Description)
	assert.Equal(t, ws.Priority, gs.Priority)
	assert.Equal(t, ws.Status, gs.Status)
	assert.True(t, ws.CreatedAt.Equal(gs.CreatedAt))
	require.NotNil(t, gs.DueDate)
	assert.True(t, ws.DueDate.Equal(*gs.DueDate))
	require.Len(t, gs.WorkingDays, 1)
	assert.True(t, got.IsScheduledOn(time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)))
	require.Len(t, gs.Notes, 1)
	assert.Equal(t, ws.Notes[0].ID, gs.Notes[0].ID)
	assert.Equal(t, "intro, body, end", gs.Notes[0].Content)

	completed, _, err := loaded.FindTask("task-b")
	require.NoError(t, err)
	assert.NotNil(t, completed.CompletedDate())
}

func TestTaskStore_SaveMovesAndPrunes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	board := newBoard(t)
	require.NoError(t, store.Save(ctx, board))

	moved := board.Move("task-a", "todo")
	moved, err := moved.RemoveTask("task-b")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, moved))

	_, err = os.Stat(store.pathBuilder.TaskDir("today", "task-a"))
	assert.True(t, os.IsNotExist(err), "task folder must follow the task")
	_, err = os.Stat(store.pathBuilder.TaskDir("today", "task-b"))
	assert.True(t, os.IsNotExist(err), "deleted task folder must be removed")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	todo, err := loaded.Section("todo")
	require.NoError(t, err)
	assert.Equal(t, []string{"task-c", "task-a"}, todo.TaskIDs())
	assert.Equal(t, 2, loaded.TaskCount())
}

func TestTaskStore_UnchangedSaveDoesNotRewrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	board := newBoard(t)
	require.NoError(t, store.Save(ctx, board))

	path := store.pathBuilder.TaskFile("todo", "task-c")
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, store.Save(ctx, board))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
}

func TestTaskStore_HalfWrittenMove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	board := newBoard(t)
	require.NoError(t, store.Save(ctx, board))

	// task-c's folder copied into today while todo still lists it
	src := store.pathBuilder.TaskFile("todo", "task-c")
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	dst := store.pathBuilder.TaskFile("today", "task-c")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, data, 0o644))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	owner, ok := loaded.SectionOf("task-c")
	require.True(t, ok)
	assert.Equal(t, "todo", owner)
}

func TestTaskStore_SkipsCorruptTask(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newBoard(t)))

	require.NoError(t, os.WriteFile(store.pathBuilder.TaskFile("todo", "task-c"), []byte("not frontmatter"), 0o644))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.HasTask("task-c"))
	assert.True(t, loaded.HasTask("task-a"))
}
