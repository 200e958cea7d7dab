package note

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
	"prioritizer/internal/domain/valueobject"
	"prioritizer/internal/infrastructure/persistence/memory"
	"prioritizer/internal/logging"
)

func TestNotes(t *testing.T) {
	ctx := context.Background()
	validation := service.NewValidationService()
	svc := service.NewBoardService(memory.NewTaskStore(), validation, []string{"Today"}, logging.Discard())

	board, task, err := svc.CreateTask(ctx, "today", "Plan trip", "", valueobject.PriorityMedium, nil)
	require.NoError(t, err)
	require.True(t, board.HasTask(task.ID()))

	add := NewAddNoteUseCase(svc)
	update := NewUpdateNoteUseCase(svc)
	remove := NewRemoveNoteUseCase(svc)

	_, err = add.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), Title: "  "})
	assert.ErrorIs(t, err, entity.ErrEmptyNote)

	note, err := add.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), Title: "Flights", Content: "check prices"})
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Flights", note.Title)

	edited, err := update.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), NoteID: note.ID, Content: "booked"})
	require.NoError(t, err)
	assert.Equal(t, "booked", edited.Content)
	assert.Equal(t, note.CreatedAt, edited.CreatedAt)

	_, err = update.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), NoteID: "missing", Content: "x"})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	require.NoError(t, remove.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), NoteID: note.ID}))
	err = remove.Execute(ctx, dto.NoteRequest{TaskID: task.ID(), NoteID: note.ID})
	assert.ErrorIs(t, err, entity.ErrNoteNotFound)

	current, err := svc.GetBoard(ctx)
	require.NoError(t, err)
	stored, _, err := current.FindTask(task.ID())
	require.NoError(t, err)
	assert.Empty(t, stored.Notes())
}
