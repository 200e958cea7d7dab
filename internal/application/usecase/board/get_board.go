package board

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// GetBoardUseCase returns the whole board
type GetBoardUseCase struct {
	boardService *service.BoardService
	now          func() time.Time
}

// NewGetBoardUseCase creates a new GetBoardUseCase
func NewGetBoardUseCase(boardService *service.BoardService) *GetBoardUseCase {
	return &GetBoardUseCase{boardService: boardService, now: time.Now}
}

// Execute loads the board, seeding the default sections on first use
func (uc *GetBoardUseCase) Execute(ctx context.Context) (*dto.BoardDTO, error) {
	board, err := uc.boardService.GetBoard(ctx)
	if err != nil {
		return nil, err
	}
	result := dto.BoardToDTO(board, uc.now())
	return &result, nil
}
