package workday

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// RemoveWorkingDayUseCase unschedules a task from a day
type RemoveWorkingDayUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
}

// NewRemoveWorkingDayUseCase creates a new RemoveWorkingDayUseCase
func NewRemoveWorkingDayUseCase(boardService *service.BoardService, validation *service.ValidationService) *RemoveWorkingDayUseCase {
	return &RemoveWorkingDayUseCase{boardService: boardService, validation: validation}
}

// Execute removes the day; removing an unscheduled day changes nothing
func (uc *RemoveWorkingDayUseCase) Execute(ctx context.Context, req dto.WorkingDayRequest) (*dto.TaskDTO, error) {
	day, err := parseDay(uc.validation, req.Day)
	if err != nil {
		return nil, err
	}

	board, task, err := uc.boardService.EditTask(ctx, req.TaskID, func(t *entity.Task) error {
		t.RemoveWorkingDay(day)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sectionID, _ := board.SectionOf(task.ID())
	result := dto.TaskToDTO(task, sectionID, time.Now())
	return &result, nil
}
