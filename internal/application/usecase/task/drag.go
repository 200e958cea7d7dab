package task

import (
	"context"
	"sync"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// DragUseCase drives one pick-up and drop gesture against the stored board
type DragUseCase struct {
	boardService *service.BoardService
	mu           sync.Mutex
	session      entity.DragSession
}

// NewDragUseCase creates a new DragUseCase in the idle state
func NewDragUseCase(boardService *service.BoardService) *DragUseCase {
	return &DragUseCase{boardService: boardService}
}

// Begin picks up a task. It reports false and stays idle when the task is not on the board.
func (uc *DragUseCase) Begin(ctx context.Context, taskID string) (bool, error) {
	board, err := uc.boardService.GetBoard(ctx)
	if err != nil {
		return false, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.Begin(board, taskID), nil
}

// End drops the held task onto overID. An empty overID ends the gesture
// without moving anything.
func (uc *DragUseCase) End(ctx context.Context, overID string) (*dto.MoveResultDTO, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	board, moved, err := uc.boardService.ApplyBoard(ctx, func(b *entity.Board) *entity.Board {
		return uc.session.End(b, overID)
	})
	if err != nil {
		uc.session.Cancel()
		return nil, err
	}
	return &dto.MoveResultDTO{
		Moved: moved,
		Board: dto.BoardToDTO(board, time.Now()),
	}, nil
}

// Cancel abandons the gesture
func (uc *DragUseCase) Cancel() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session.Cancel()
}

// Active returns the held task ID
func (uc *DragUseCase) Active() (string, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.session.Active()
}
