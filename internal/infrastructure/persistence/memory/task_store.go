// Package memory keeps the board in process memory. Boards are immutable values,
// so the store only needs to guard the pointer it holds.
package memory

import (
	"context"
	"sync"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/repository"
)

// TaskStore implements repository.TaskStore in memory
type TaskStore struct {
	mu    sync.RWMutex
	board *entity.Board
	saves int
}

var _ repository.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store; Load reports entity.ErrBoardNotFound until the first Save
func NewTaskStore() *TaskStore {
	return &TaskStore{}
}

// NewTaskStoreWith creates a store that already holds board
func NewTaskStoreWith(board *entity.Board) *TaskStore {
	return &TaskStore{board: board}
}

// Load returns the stored board
func (s *TaskStore) Load(ctx context.Context) (*entity.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.board == nil {
		return nil, entity.ErrBoardNotFound
	}
	return s.board, nil
}

// Save replaces the stored board
func (s *TaskStore) Save(ctx context.Context, board *entity.Board) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = board
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (s *TaskStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
