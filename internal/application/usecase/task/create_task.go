package task

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// CreateTaskUseCase adds a task to the end of a section
type CreateTaskUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
}

// NewCreateTaskUseCase creates a new CreateTaskUseCase
func NewCreateTaskUseCase(boardService *service.BoardService, validation *service.ValidationService) *CreateTaskUseCase {
	return &CreateTaskUseCase{boardService: boardService, validation: validation}
}

// Execute creates the task with status todo
func (uc *CreateTaskUseCase) Execute(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	priority, err := uc.validation.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	due, err := uc.validation.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	_, task, err := uc.boardService.CreateTask(ctx, req.SectionID, req.Title, req.Description, priority, due)
	if err != nil {
		return nil, err
	}
	result := dto.TaskToDTO(task, req.SectionID, time.Now())
	return &result, nil
}
