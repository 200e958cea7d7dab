package note

import (
	"context"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// RemoveNoteUseCase deletes a note from a task
type RemoveNoteUseCase struct {
	boardService *service.BoardService
}

// NewRemoveNoteUseCase creates a new RemoveNoteUseCase
func NewRemoveNoteUseCase(boardService *service.BoardService) *RemoveNoteUseCase {
	return &RemoveNoteUseCase{boardService: boardService}
}

// Execute removes the note
func (uc *RemoveNoteUseCase) Execute(ctx context.Context, req dto.NoteRequest) error {
	_, _, err := uc.boardService.EditTask(ctx, req.TaskID, func(t *entity.Task) error {
		return t.RemoveNote(req.NoteID)
	})
	return err
}
