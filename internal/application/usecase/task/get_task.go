package task

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// GetTaskUseCase returns a single task
type GetTaskUseCase struct {
	boardService *service.BoardService
}

// NewGetTaskUseCase creates a new GetTaskUseCase
func NewGetTaskUseCase(boardService *service.BoardService) *GetTaskUseCase {
	return &GetTaskUseCase{boardService: boardService}
}

// Execute finds a task by ID
func (uc *GetTaskUseCase) Execute(ctx context.Context, taskID string) (*dto.TaskDTO, error) {
	board, err := uc.boardService.GetBoard(ctx)
	if err != nil {
		return nil, err
	}
	task, section, err := board.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	result := dto.TaskToDTO(task, section.ID(), time.Now())
	return &result, nil
}
