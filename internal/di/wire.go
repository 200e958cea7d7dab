//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	log "github.com/sirupsen/logrus"

	"prioritizer/internal/application/usecase/board"
	"prioritizer/internal/application/usecase/note"
	"prioritizer/internal/application/usecase/task"
	"prioritizer/internal/application/usecase/workday"
	"prioritizer/internal/infrastructure/config"
)

// InitializeContainer sets up all dependencies. The returned func closes the task store.
func InitializeContainer(cfg *config.Config, logger *log.Logger) (*Container, func(), error) {
	wire.Build(
		// Repositories
		ProvideTaskStore,

		// Domain Services
		ProvideValidationService,
		ProvideBoardService,

		// Auth
		ProvideAuthGateway,

		// Use Cases - Board
		board.NewGetBoardUseCase,
		board.NewCreateSectionUseCase,

		// Use Cases - Task
		task.NewCreateTaskUseCase,
		task.NewListTasksUseCase,
		task.NewGetTaskUseCase,
		task.NewUpdateTaskUseCase,
		task.NewMoveTaskUseCase,
		task.NewDeleteTaskUseCase,
		task.NewDragUseCase,

		// Use Cases - Note
		note.NewAddNoteUseCase,
		note.NewUpdateNoteUseCase,
		note.NewRemoveNoteUseCase,

		// Use Cases - Working days
		workday.NewAddWorkingDayUseCase,
		workday.NewRemoveWorkingDayUseCase,
		workday.NewAgendaUseCase,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil, nil
}
