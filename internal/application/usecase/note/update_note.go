package note

import (
	"context"
	"strings"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// UpdateNoteUseCase replaces a note's title and content
type UpdateNoteUseCase struct {
	boardService *service.BoardService
}

// NewUpdateNoteUseCase creates a new UpdateNoteUseCase
func NewUpdateNoteUseCase(boardService *service.BoardService) *UpdateNoteUseCase {
	return &UpdateNoteUseCase{boardService: boardService}
}

// Execute updates the note and returns its new state
func (uc *UpdateNoteUseCase) Execute(ctx context.Context, req dto.NoteRequest) (*dto.NoteDTO, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, entity.ErrEmptyNote
	}

	_, task, err := uc.boardService.EditTask(ctx, req.TaskID, func(t *entity.Task) error {
		return t.UpdateNote(req.NoteID, req.Title, req.Content)
	})
	if err != nil {
		return nil, err
	}

	note, err := task.Note(req.NoteID)
	if err != nil {
		return nil, err
	}
	result := dto.NoteToDTO(note)
	return &result, nil
}
