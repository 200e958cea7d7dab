package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
	"prioritizer/internal/infrastructure/persistence/memory"
	"prioritizer/internal/logging"
)

type fixture struct {
	create *CreateTaskUseCase
	list   *ListTasksUseCase
	get    *GetTaskUseCase
	update *UpdateTaskUseCase
	move   *MoveTaskUseCase
	delete *DeleteTaskUseCase
	drag   *DragUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	validation := service.NewValidationService()
	svc := service.NewBoardService(memory.NewTaskStore(), validation, []string{"Today", "Tomorrow", "TODO"}, logging.Discard())
	return &fixture{
		create: NewCreateTaskUseCase(svc, validation),
		list:   NewListTasksUseCase(svc, validation),
		get:    NewGetTaskUseCase(svc),
		update: NewUpdateTaskUseCase(svc, validation),
		move:   NewMoveTaskUseCase(svc),
		delete: NewDeleteTaskUseCase(svc),
		drag:   NewDragUseCase(svc),
	}
}

func (f *fixture) mustCreate(t *testing.T, req dto.CreateTaskRequest) *dto.TaskDTO {
	t.Helper()
	task, err := f.create.Execute(context.Background(), req)
	require.NoError(t, err)
	return task
}

func sectionTaskIDs(board dto.BoardDTO, sectionID string) []string {
	for _, s := range board.Sections {
		if s.ID != sectionID {
			continue
		}
		ids := make([]string, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			ids = append(ids, t.ID)
		}
		return ids
	}
	return nil
}

func TestCreateTask_Defaults(t *testing.T) {
	f := newFixture(t)

	task := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "Call bank"})
	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "todo", task.Status)
	assert.Equal(t, "today", task.SectionID)
	assert.Empty(t, task.Notes)
	assert.NotEmpty(t, task.ID)

	_, err := f.create.Execute(context.Background(), dto.CreateTaskRequest{SectionID: "today", Title: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, entity.ErrInvalidPriority)

	_, err = f.create.Execute(context.Background(), dto.CreateTaskRequest{SectionID: "today", Title: "x", DueDate: "someday"})
	assert.ErrorIs(t, err, entity.ErrInvalidDate)
}

func TestListTasks_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	high := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "High", Priority: "high"})
	late := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "todo", Title: "Late", DueDate: "2020-01-01"})
	f.mustCreate(t, dto.CreateTaskRequest{SectionID: "todo", Title: "Later", Priority: "low"})

	all, err := f.list.Execute(ctx, dto.ListTasksRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySection, err := f.list.Execute(ctx, dto.ListTasksRequest{SectionID: "todo"})
	require.NoError(t, err)
	assert.Len(t, bySection, 2)

	byPriority, err := f.list.Execute(ctx, dto.ListTasksRequest{Priority: "high"})
	require.NoError(t, err)
	require.Len(t, byPriority, 1)
	assert.Equal(t, high.ID, byPriority[0].ID)

	overdue, err := f.list.Execute(ctx, dto.ListTasksRequest{Overdue: true})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
	assert.True(t, overdue[0].IsOverdue)

	_, err = f.list.Execute(ctx, dto.ListTasksRequest{SectionID: "nope"})
	assert.ErrorIs(t, err, entity.ErrSectionNotFound)
}

func TestUpdateTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "Draft", DueDate: "2026-01-10"})

	status := "completed"
	clear := ""
	updated, err := f.update.Execute(ctx, dto.UpdateTaskRequest{TaskID: task.ID, Status: &status, DueDate: &clear})
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
	assert.NotNil(t, updated.CompletedDate)
	assert.Nil(t, updated.DueDate)

	reopen := "in-progress"
	updated, err = f.update.Execute(ctx, dto.UpdateTaskRequest{TaskID: task.ID, Status: &reopen})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedDate)

	bad := "archived"
	title := "Should not apply"
	_, err = f.update.Execute(ctx, dto.UpdateTaskRequest{TaskID: task.ID, Title: &title, Status: &bad})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)

	got, err := f.get.Execute(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", got.Title)
}

func TestMoveTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "A"})
	b := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "B"})
	c := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "C"})

	result, err := f.move.Execute(ctx, dto.MoveTaskRequest{TaskID: a.ID, OverID: c.ID})
	require.NoError(t, err)
	assert.True(t, result.Moved)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, sectionTaskIDs(result.Board, "today"))

	result, err = f.move.Execute(ctx, dto.MoveTaskRequest{TaskID: a.ID, OverID: "missing"})
	require.NoError(t, err)
	assert.False(t, result.Moved)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, sectionTaskIDs(result.Board, "today"))
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "A"})

	require.NoError(t, f.delete.Execute(ctx, a.ID))
	_, err := f.get.Execute(ctx, a.ID)
	assert.ErrorIs(t, err, entity.ErrTaskNotFound)
}

func TestDrag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "A"})
	x := f.mustCreate(t, dto.CreateTaskRequest{SectionID: "tomorrow", Title: "X"})

	t.Run("stale begin stays idle", func(t *testing.T) {
		ok, err := f.drag.Begin(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, ok)
		_, active := f.drag.Active()
		assert.False(t, active)
	})

	t.Run("drop without target moves nothing", func(t *testing.T) {
		ok, err := f.drag.Begin(ctx, a.ID)
		require.NoError(t, err)
		require.True(t, ok)

		result, err := f.drag.End(ctx, "")
		require.NoError(t, err)
		assert.False(t, result.Moved)
		_, active := f.drag.Active()
		assert.False(t, active)
	})

	t.Run("drop on task", func(t *testing.T) {
		ok, err := f.drag.Begin(ctx, a.ID)
		require.NoError(t, err)
		require.True(t, ok)

		result, err := f.drag.End(ctx, x.ID)
		require.NoError(t, err)
		assert.True(t, result.Moved)
		assert.Equal(t, []string{a.ID, x.ID}, sectionTaskIDs(result.Board, "tomorrow"))
		assert.Empty(t, sectionTaskIDs(result.Board, "today"))
	})

	t.Run("cancel", func(t *testing.T) {
		ok, err := f.drag.Begin(ctx, a.ID)
		require.NoError(t, err)
		require.True(t, ok)
		f.drag.Cancel()

		result, err := f.drag.End(ctx, "today")
		require.NoError(t, err)
		assert.False(t, result.Moved, "ending while idle leaves the board alone")
	})
}

func TestListTasks_ScheduledOn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mustCreate(t, dto.CreateTaskRequest{SectionID: "today", Title: "A"})

	day := time.Now().Format(dto.DateLayout)
	tasks, err := f.list.Execute(ctx, dto.ListTasksRequest{ScheduledOn: day})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

type failingLoadStore struct {
	*memory.TaskStore
	fail bool
}

func (s *failingLoadStore) Load(ctx context.Context) (*entity.Board, error) {
	if s.fail {
		return nil, errors.New("disk unavailable")
	}
	return s.TaskStore.Load(ctx)
}

func TestDrag_EndReturnsToIdleWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	store := &failingLoadStore{TaskStore: memory.NewTaskStore()}
	validation := service.NewValidationService()
	svc := service.NewBoardService(store, validation, []string{"Today", "TODO"}, logging.Discard())
	create := NewCreateTaskUseCase(svc, validation)
	drag := NewDragUseCase(svc)

	a, err := create.Execute(ctx, dto.CreateTaskRequest{SectionID: "today", Title: "A"})
	require.NoError(t, err)
	ok, err := drag.Begin(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	store.fail = true
	_, err = drag.End(ctx, "todo")
	require.Error(t, err)

	_, active := drag.Active()
	assert.False(t, active)
}
