package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/repository"
	"prioritizer/internal/domain/valueobject"
	"prioritizer/pkg/slug"
)

// BoardService provides high-level domain operations on the board.
// Each operation loads the board, computes the new value and saves it.
type BoardService struct {
	store           repository.TaskStore
	validation      *ValidationService
	defaultSections []string
	log             *log.Entry
	mu              sync.Mutex
}

// NewBoardService creates a new BoardService. defaultSections are the section
// titles used to seed a board when the store holds none.
func NewBoardService(
	store repository.TaskStore,
	validation *ValidationService,
	defaultSections []string,
	logger *log.Logger,
) *BoardService {
	return &BoardService{
		store:           store,
		validation:      validation,
		defaultSections: defaultSections,
		log:             logger.WithField("component", "board_service"),
	}
}

// GetBoard returns the current board, seeding the default sections on first use
func (s *BoardService) GetBoard(ctx context.Context) (*entity.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *BoardService) load(ctx context.Context) (*entity.Board, error) {
	board, err := s.store.Load(ctx)
	if err == nil {
		return board, nil
	}
	if !errors.Is(err, entity.ErrBoardNotFound) {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	board, err = s.seedBoard()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	s.log.WithField("sections", len(s.defaultSections)).Info("seeded new board")
	return board, nil
}

func (s *BoardService) seedBoard() (*entity.Board, error) {
	sections := make([]*entity.Section, 0, len(s.defaultSections))
	for _, title := range s.defaultSections {
		section, err := entity.NewSection(slug.Generate(title), title)
		if err != nil {
			return nil, fmt.Errorf("failed to create section %q: %w", title, err)
		}
		sections = append(sections, section)
	}
	return entity.NewBoard(sections...)
}

func (s *BoardService) save(ctx context.Context, board *entity.Board) error {
	if err := s.store.Save(ctx, board); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

// CreateSection appends a new section; its ID is derived from the title
func (s *BoardService) CreateSection(ctx context.Context, title string) (*entity.Board, *entity.Section, error) {
	if err := s.validation.ValidateSectionTitle(title); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	id := slug.Generate(title)
	if err := s.validation.ValidateUniqueSectionID(board, id); err != nil {
		return nil, nil, err
	}

	section, err := entity.NewSection(id, title)
	if err != nil {
		return nil, nil, err
	}
	board, err = board.AddSection(section)
	if err != nil {
		return nil, nil, err
	}

	if err := s.save(ctx, board); err != nil {
		return nil, nil, err
	}
	return board, section, nil
}

// CreateTask creates a new task at the end of a section
func (s *BoardService) CreateTask(
	ctx context.Context,
	sectionID string,
	title string,
	description string,
	priority valueobject.Priority,
	dueDate *time.Time,
) (*entity.Board, *entity.Task, error) {
	if err := s.validation.ValidateTaskTitle(title); err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	task, err := entity.NewTask(entity.NewID(), title, description, priority, valueobject.StatusTodo)
	if err != nil {
		return nil, nil, err
	}
	if dueDate != nil {
		if err := task.ApplyEdit(entity.TaskPatch{DueDate: dueDate}); err != nil {
			return nil, nil, err
		}
	}

	board, err = board.AddTask(sectionID, task)
	if err != nil {
		return nil, nil, err
	}

	if err := s.save(ctx, board); err != nil {
		return nil, nil, err
	}
	return board, task, nil
}

// MoveTask drops a task onto a section or task. A drop that resolves to nothing
// is not an error: the unchanged board is returned and nothing is saved.
func (s *BoardService) MoveTask(ctx context.Context, activeID, overID string) (*entity.Board, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}

	moved, err := board.TryMove(activeID, overID)
	if err != nil {
		s.log.WithFields(log.Fields{
			"task":   activeID,
			"target": overID,
		}).WithError(err).Debug("drop ignored")
		return board, false, nil
	}
	if moved == board {
		return board, false, nil
	}

	if err := s.save(ctx, moved); err != nil {
		return nil, false, err
	}
	s.log.WithFields(log.Fields{"task": activeID, "target": overID}).Debug("task moved")
	return moved, true, nil
}

// UpdateTask applies a field patch to a task
func (s *BoardService) UpdateTask(ctx context.Context, taskID string, patch entity.TaskPatch) (*entity.Board, *entity.Task, error) {
	if patch.Title != nil {
		if err := s.validation.ValidateTaskTitle(*patch.Title); err != nil {
			return nil, nil, err
		}
	}
	return s.EditTask(ctx, taskID, func(task *entity.Task) error {
		return task.ApplyEdit(patch)
	})
}

// EditTask runs edit against a copy of the task and swaps the copy into the board.
// If edit fails the board is left untouched.
func (s *BoardService) EditTask(ctx context.Context, taskID string, edit func(*entity.Task) error) (*entity.Board, *entity.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	current, _, err := board.FindTask(taskID)
	if err != nil {
		return nil, nil, err
	}

	task := current.Clone()
	if err := edit(task); err != nil {
		return nil, nil, err
	}

	board, err = board.WithTask(task)
	if err != nil {
		return nil, nil, err
	}

	if err := s.save(ctx, board); err != nil {
		return nil, nil, err
	}
	return board, task, nil
}

// DeleteTask removes a task from the board
func (s *BoardService) DeleteTask(ctx context.Context, taskID string) (*entity.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	board, err = board.RemoveTask(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// ApplyBoard runs fn against the current board and saves the result when fn
// returns a different board. It reports whether anything was saved.
func (s *BoardService) ApplyBoard(ctx context.Context, fn func(*entity.Board) *entity.Board) (*entity.Board, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}

	next := fn(board)
	if next == nil || next == board {
		return board, false, nil
	}

	if err := s.save(ctx, next); err != nil {
		return nil, false, err
	}
	return next, true, nil
}
