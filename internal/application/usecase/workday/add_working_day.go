package workday

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
)

// AddWorkingDayUseCase schedules a task on a day
type AddWorkingDayUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
}

// NewAddWorkingDayUseCase creates a new AddWorkingDayUseCase
func NewAddWorkingDayUseCase(boardService *service.BoardService, validation *service.ValidationService) *AddWorkingDayUseCase {
	return &AddWorkingDayUseCase{boardService: boardService, validation: validation}
}

// Execute adds the day; adding a day twice keeps a single entry
func (uc *AddWorkingDayUseCase) Execute(ctx context.Context, req dto.WorkingDayRequest) (*dto.TaskDTO, error) {
	day, err := parseDay(uc.validation, req.Day)
	if err != nil {
		return nil, err
	}

	board, task, err := uc.boardService.EditTask(ctx, req.TaskID, func(t *entity.Task) error {
		return t.AddWorkingDay(day)
	})
	if err != nil {
		return nil, err
	}
	sectionID, _ := board.SectionOf(task.ID())
	result := dto.TaskToDTO(task, sectionID, time.Now())
	return &result, nil
}

func parseDay(validation *service.ValidationService, value string) (time.Time, error) {
	day, err := validation.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if day == nil {
		return time.Time{}, entity.ErrInvalidDate
	}
	return *day, nil
}
