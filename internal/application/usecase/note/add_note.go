package note

import (
	"context"
	"strings"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// AddNoteUseCase appends a note to a task
type AddNoteUseCase struct {
	boardService *service.BoardService
}

// NewAddNoteUseCase creates a new AddNoteUseCase
func NewAddNoteUseCase(boardService *service.BoardService) *AddNoteUseCase {
	return &AddNoteUseCase{boardService: boardService}
}

// Execute adds the note and returns it
func (uc *AddNoteUseCase) Execute(ctx context.Context, req dto.NoteRequest) (*dto.NoteDTO, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, entity.ErrEmptyNote
	}

	var added *entity.Note
	_, _, err := uc.boardService.EditTask(ctx, req.TaskID, func(t *entity.Task) error {
		added = t.AddNote(req.Title, req.Content)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result := dto.NoteToDTO(added)
	return &result, nil
}
