package task

import (
	"context"
	"strings"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// UpdateTaskUseCase edits task fields
type UpdateTaskUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
}

// NewUpdateTaskUseCase creates a new UpdateTaskUseCase
func NewUpdateTaskUseCase(boardService *service.BoardService, validation *service.ValidationService) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{boardService: boardService, validation: validation}
}

// Execute applies the request as one edit; nothing changes if any field is invalid
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	patch, err := uc.toPatch(req)
	if err != nil {
		return nil, err
	}

	board, task, err := uc.boardService.UpdateTask(ctx, req.TaskID, patch)
	if err != nil {
		return nil, err
	}
	sectionID, _ := board.SectionOf(task.ID())
	result := dto.TaskToDTO(task, sectionID, time.Now())
	return &result, nil
}

func (uc *UpdateTaskUseCase) toPatch(req dto.UpdateTaskRequest) (entity.TaskPatch, error) {
	patch := entity.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}

	if req.Priority != nil {
		p, err := uc.validation.ParsePriority(*req.Priority)
		if err != nil {
			return patch, err
		}
		patch.Priority = &p
	}
	if req.Status != nil {
		s, err := uc.validation.ParseStatus(*req.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &s
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			patch.ClearDue = true
		} else {
			due, err := uc.validation.ParseDate(*req.DueDate)
			if err != nil {
				return patch, err
			}
			patch.DueDate = due
		}
	}
	return patch, nil
}
