package di

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"prioritizer/internal/application/usecase/board"
	"prioritizer/internal/application/usecase/note"
	"prioritizer/internal/application/usecase/task"
	"prioritizer/internal/application/usecase/workday"
	"prioritizer/internal/domain/repository"
	"prioritizer/internal/domain/service"
	infraauth "prioritizer/internal/infrastructure/auth"
	"prioritizer/internal/infrastructure/config"
	"prioritizer/internal/infrastructure/persistence/filesystem"
	"prioritizer/internal/infrastructure/persistence/memory"
	"prioritizer/internal/infrastructure/persistence/sqlite"
)

// Container holds all application dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *log.Logger

	// Repositories
	TaskStore repository.TaskStore

	// Domain Services
	ValidationService *service.ValidationService
	BoardService      *service.BoardService

	// Auth
	AuthGateway *infraauth.LocalGateway

	// Use Cases - Board
	GetBoardUseCase      *board.GetBoardUseCase
	CreateSectionUseCase *board.CreateSectionUseCase

	// Use Cases - Task
	CreateTaskUseCase *task.CreateTaskUseCase
	ListTasksUseCase  *task.ListTasksUseCase
	GetTaskUseCase    *task.GetTaskUseCase
	UpdateTaskUseCase *task.UpdateTaskUseCase
	MoveTaskUseCase   *task.MoveTaskUseCase
	DeleteTaskUseCase *task.DeleteTaskUseCase
	DragUseCase       *task.DragUseCase

	// Use Cases - Note
	AddNoteUseCase    *note.AddNoteUseCase
	UpdateNoteUseCase *note.UpdateNoteUseCase
	RemoveNoteUseCase *note.RemoveNoteUseCase

	// Use Cases - Working days
	AddWorkingDayUseCase    *workday.AddWorkingDayUseCase
	RemoveWorkingDayUseCase *workday.RemoveWorkingDayUseCase
	AgendaUseCase           *workday.AgendaUseCase
}

// Provider functions

// ProvideTaskStore opens the configured backend. The returned func releases it.
func ProvideTaskStore(cfg *config.Config, logger *log.Logger) (repository.TaskStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewTaskStore(), func() {}, nil
	case config.BackendFilesystem:
		return filesystem.NewTaskStore(cfg.Storage.BoardPath, logger), func() {}, nil
	case config.BackendSQLite:
		db, err := sqlite.OpenDB(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		store := sqlite.NewTaskStore(db)
		cleanup := func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("failed to close database")
			}
		}
		return store, cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func ProvideValidationService() *service.ValidationService {
	return service.NewValidationService()
}

func ProvideBoardService(
	store repository.TaskStore,
	validationService *service.ValidationService,
	cfg *config.Config,
	logger *log.Logger,
) *service.BoardService {
	return service.NewBoardService(store, validationService, cfg.Board.DefaultSections, logger)
}

func ProvideAuthGateway(cfg *config.Config, logger *log.Logger) (*infraauth.LocalGateway, error) {
	tokens, err := infraauth.NewTokenIssuer([]byte(cfg.Auth.TokenSecret), cfg.TokenTTLDuration())
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}
	accounts := infraauth.NewAccountStore(cfg.Auth.AccountsFile, cfg.Auth.BcryptCost)
	return infraauth.NewLocalGateway(accounts, tokens, cfg.Auth.SessionFile, logger), nil
}
