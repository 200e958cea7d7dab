// Hand-written to match the injector in wire.go; running wire regenerates it.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/sirupsen/logrus"
	"prioritizer/internal/application/usecase/board"
	"prioritizer/internal/application/usecase/note"
	"prioritizer/internal/application/usecase/task"
	"prioritizer/internal/application/usecase/workday"
	"prioritizer/internal/infrastructure/config"
)

// Injectors from wire.go:

// InitializeContainer sets up all dependencies. The returned func closes the task store.
func InitializeContainer(cfg *config.Config, logger *logrus.Logger) (*Container, func(), error) {
	taskStore, cleanup, err := ProvideTaskStore(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	validationService := ProvideValidationService()
	boardService := ProvideBoardService(taskStore, validationService, cfg, logger)
	localGateway, err := ProvideAuthGateway(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	getBoardUseCase := board.NewGetBoardUseCase(boardService)
	createSectionUseCase := board.NewCreateSectionUseCase(boardService)
	createTaskUseCase := task.NewCreateTaskUseCase(boardService, validationService)
	listTasksUseCase := task.NewListTasksUseCase(boardService, validationService)
	getTaskUseCase := task.NewGetTaskUseCase(boardService)
	updateTaskUseCase := task.NewUpdateTaskUseCase(boardService, validationService)
	moveTaskUseCase := task.NewMoveTaskUseCase(boardService)
	deleteTaskUseCase := task.NewDeleteTaskUseCase(boardService)
	dragUseCase := task.NewDragUseCase(boardService)
	addNoteUseCase := note.NewAddNoteUseCase(boardService)
	updateNoteUseCase := note.NewUpdateNoteUseCase(boardService)
	removeNoteUseCase := note.NewRemoveNoteUseCase(boardService)
	addWorkingDayUseCase := workday.NewAddWorkingDayUseCase(boardService, validationService)
	removeWorkingDayUseCase := workday.NewRemoveWorkingDayUseCase(boardService, validationService)
	agendaUseCase := workday.NewAgendaUseCase(boardService, validationService)
	container := &Container{
		Config:                  cfg,
		Logger:                  logger,
		TaskStore:               taskStore,
		ValidationService:       validationService,
		BoardService:            boardService,
		AuthGateway:             localGateway,
		GetBoardUseCase:         getBoardUseCase,
		CreateSectionUseCase:    createSectionUseCase,
		CreateTaskUseCase:       createTaskUseCase,
		ListTasksUseCase:        listTasksUseCase,
		GetTaskUseCase:          getTaskUseCase,
		UpdateTaskUseCase:       updateTaskUseCase,
		MoveTaskUseCase:         moveTaskUseCase,
		DeleteTaskUseCase:       deleteTaskUseCase,
		DragUseCase:             dragUseCase,
		AddNoteUseCase:          addNoteUseCase,
		UpdateNoteUseCase:       updateNoteUseCase,
		RemoveNoteUseCase:       removeNoteUseCase,
		AddWorkingDayUseCase:    addWorkingDayUseCase,
		RemoveWorkingDayUseCase: removeWorkingDayUseCase,
		AgendaUseCase:           agendaUseCase,
	}
	return container, func() {
		cleanup()
	}, nil
}
