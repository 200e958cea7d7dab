package repository

import (
	"context"

	"prioritizer/internal/domain/entity"
)

// TaskStore defines the interface for board persistence
type TaskStore interface {
	// Load retrieves the persisted board.
	// It returns entity.ErrBoardNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*entity.Board, error)

	// Save persists a complete board snapshot
	Save(ctx context.Context, board *entity.Board) error
}
