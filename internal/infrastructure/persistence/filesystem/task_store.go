package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/repository"
	"prioritizer/internal/infrastructure/persistence/mapper"
	"prioritizer/internal/infrastructure/serialization"
	"prioritizer/pkg/filesystem"
)

// TaskStore implements repository.TaskStore as a tree of markdown files
type TaskStore struct {
	pathBuilder *PathBuilder
	log         *log.Entry
	mu          sync.Mutex
}

var _ repository.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a store rooted at root
func NewTaskStore(root string, logger *log.Logger) *TaskStore {
	return &TaskStore{
		pathBuilder: NewPathBuilder(root),
		log:         logger.WithFields(log.Fields{"component": "filesystem_store", "root": root}),
	}
}

// Root returns the directory the board is stored in
func (s *TaskStore) Root() string {
	return s.pathBuilder.Root()
}

// Save persists a board. Only files whose content changed are rewritten and
// directories of removed sections and tasks are deleted afterwards.
func (s *TaskStore) Save(ctx context.Context, board *entity.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := filesystem.EnsureDir(s.pathBuilder.SectionsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create board directory: %w", err)
	}

	keepSections := make(map[string]bool)
	for _, section := range board.Sections() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.saveSection(section); err != nil {
			return fmt.Errorf("failed to save section %s: %w", section.ID(), err)
		}
		keepSections[section.ID()] = true
	}

	// board.md is written after the sections so a reader never sees an order
	// naming a section that is not on disk yet.
	if err := s.saveBoardFile(board); err != nil {
		return fmt.Errorf("failed to save board metadata: %w", err)
	}

	if err := filesystem.PruneDirs(s.pathBuilder.SectionsDir(), keepSections); err != nil {
		return fmt.Errorf("failed to cleanup old sections: %w", err)
	}
	return nil
}

// Load reads the board; entity.ErrBoardNotFound when nothing was saved yet
func (s *TaskStore) Load(ctx context.Context) (*entity.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.pathBuilder.BoardFile())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, entity.ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board metadata: %w", err)
	}

	var meta mapper.BoardStorage
	if _, err := serialization.UnmarshalFrontmatter(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse board metadata: %w", err)
	}

	names, err := filesystem.SubDirs(s.pathBuilder.SectionsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	// A task directory may briefly exist under two sections while another
	// process saves a cross-section move; the section listing it wins.
	metas := make(map[string]mapper.SectionStorage, len(names))
	claimed := make(map[string]string)
	for _, name := range names {
		meta, err := s.readSectionFile(name)
		if err != nil {
			s.log.WithField("section", name).WithError(err).Warn("skipping unreadable section")
			continue
		}
		metas[name] = meta
		for _, taskID := range meta.Tasks {
			claimed[taskID] = name
		}
	}

	sections := make([]*entity.Section, 0, len(metas))
	for _, name := range names {
		meta, ok := metas[name]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section, err := s.loadSection(name, meta, claimed)
		if err != nil {
			s.log.WithField("section", name).WithError(err).Warn("skipping unreadable section")
			continue
		}
		sections = append(sections, section)
	}

	return mapper.BoardFromStorage(meta, sections)
}

func (s *TaskStore) saveBoardFile(board *entity.Board) error {
	path := s.pathBuilder.BoardFile()

	// Keep the recorded modification time when the order did not change so an
	// unchanged board produces no write.
	meta := mapper.BoardToStorage(board, time.Now())
	if data, err := os.ReadFile(path); err == nil {
		var prev mapper.BoardStorage
		if _, err := serialization.UnmarshalFrontmatter(data, &prev); err == nil &&
			slices.Equal(prev.Sections, meta.Sections) {
			meta.Modified = prev.Modified
		}
	}

	data, err := serialization.MarshalFrontmatter(meta, "")
	if err != nil {
		return err
	}
	return writeIfChanged(path, data)
}

func (s *TaskStore) saveSection(section *entity.Section) error {
	data, err := serialization.MarshalFrontmatter(mapper.SectionToStorage(section), "")
	if err != nil {
		return err
	}
	if err := writeIfChanged(s.pathBuilder.SectionFile(section.ID()), data); err != nil {
		return err
	}

	keepTasks := make(map[string]bool, section.Len())
	for _, task := range section.Tasks() {
		if err := s.saveTask(section.ID(), task); err != nil {
			return fmt.Errorf("failed to save task %s: %w", task.ID(), err)
		}
		keepTasks[task.ID()] = true
	}

	if err := filesystem.PruneDirs(s.pathBuilder.TasksDir(section.ID()), keepTasks); err != nil {
		return fmt.Errorf("failed to cleanup old tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) readSectionFile(sectionID string) (mapper.SectionStorage, error) {
	var meta mapper.SectionStorage
	data, err := os.ReadFile(s.pathBuilder.SectionFile(sectionID))
	if err != nil {
		return meta, fmt.Errorf("failed to read section metadata: %w", err)
	}
	if _, err := serialization.UnmarshalFrontmatter(data, &meta); err != nil {
		return meta, fmt.Errorf("failed to parse section metadata: %w", err)
	}
	return meta, nil
}

func (s *TaskStore) loadSection(sectionID string, meta mapper.SectionStorage, claimed map[string]string) (*entity.Section, error) {
	taskIDs, err := filesystem.SubDirs(s.pathBuilder.TasksDir(sectionID))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*entity.Task, 0, len(taskIDs))
	for _, taskID := range taskIDs {
		if owner, ok := claimed[taskID]; ok && owner != sectionID {
			continue
		}
		task, err := s.loadTask(sectionID, taskID)
		if err != nil {
			s.log.WithFields(log.Fields{"section": sectionID, "task": taskID}).
				WithError(err).Warn("skipping unreadable task")
			continue
		}
		tasks = append(tasks, task)
	}

	return mapper.SectionFromStorage(meta, sectionID, tasks)
}

func (s *TaskStore) saveTask(sectionID string, task *entity.Task) error {
	meta, body := mapper.TaskToStorage(task)
	data, err := serialization.MarshalFrontmatter(meta, body)
	if err != nil {
		return err
	}
	return writeIfChanged(s.pathBuilder.TaskFile(sectionID, task.ID()), data)
}

func (s *TaskStore) loadTask(sectionID, taskID string) (*entity.Task, error) {
	data, err := os.ReadFile(s.pathBuilder.TaskFile(sectionID, taskID))
	if err != nil {
		return nil, fmt.Errorf("failed to read task metadata: %w", err)
	}

	var meta mapper.TaskStorage
	body, err := serialization.UnmarshalFrontmatter(data, &meta)
	if err != nil {
		return nil, fmt.Errorf("failed to parse task metadata: %w", err)
	}
	return mapper.TaskFromStorage(meta, body, taskID)
}

func writeIfChanged(path string, data []byte) error {
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return nil
	}
	return filesystem.SafeWrite(path, data, 0o644)
}
