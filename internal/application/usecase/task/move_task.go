package task

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// MoveTaskUseCase drops a task onto a section or another task
type MoveTaskUseCase struct {
	boardService *service.BoardService
}

// NewMoveTaskUseCase creates a new MoveTaskUseCase
func NewMoveTaskUseCase(boardService *service.BoardService) *MoveTaskUseCase {
	return &MoveTaskUseCase{boardService: boardService}
}

// Execute performs the move. A drop that resolves to nothing is not an error;
// the result reports Moved false and the unchanged board.
func (uc *MoveTaskUseCase) Execute(ctx context.Context, req dto.MoveTaskRequest) (*dto.MoveResultDTO, error) {
	board, moved, err := uc.boardService.MoveTask(ctx, req.TaskID, req.OverID)
	if err != nil {
		return nil, err
	}
	return &dto.MoveResultDTO{
		Moved: moved,
		Board: dto.BoardToDTO(board, time.Now()),
	}, nil
}
