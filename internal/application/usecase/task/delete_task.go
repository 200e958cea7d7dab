package task

import (
	"context"

	"prioritizer/internal/domain/service"
)

// DeleteTaskUseCase removes a task from the board
type DeleteTaskUseCase struct {
	boardService *service.BoardService
}

// NewDeleteTaskUseCase creates a new DeleteTaskUseCase
func NewDeleteTaskUseCase(boardService *service.BoardService) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{boardService: boardService}
}

// Execute deletes the task
func (uc *DeleteTaskUseCase) Execute(ctx context.Context, taskID string) error {
	_, err := uc.boardService.DeleteTask(ctx, taskID)
	return err
}
