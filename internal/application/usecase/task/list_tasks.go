package task

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/service"
	"prioritizer/internal/domain/valueobject"
)

// ListTasksUseCase handles listing tasks across sections
type ListTasksUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
	now          func() time.Time
}

// NewListTasksUseCase creates a new ListTasksUseCase
func NewListTasksUseCase(boardService *service.BoardService, validation *service.ValidationService) *ListTasksUseCase {
	return &ListTasksUseCase{
		boardService: boardService,
		validation:   validation,
		now:          time.Now,
	}
}

// Execute lists tasks in board order, keeping those that match every filter in req
func (uc *ListTasksUseCase) Execute(ctx context.Context, req dto.ListTasksRequest) ([]dto.TaskDTO, error) {
	var (
		priority valueobject.Priority
		status   valueobject.Status
		day      *time.Time
		err      error
	)
	if req.Priority != "" {
		if priority, err = uc.validation.ParsePriority(req.Priority); err != nil {
			return nil, err
		}
	}
	if req.Status != "" {
		if status, err = uc.validation.ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}
	if day, err = uc.validation.ParseDate(req.ScheduledOn); err != nil {
		return nil, err
	}

	board, err := uc.boardService.GetBoard(ctx)
	if err != nil {
		return nil, err
	}
	if req.SectionID != "" && !board.HasSection(req.SectionID) {
		return nil, entity.ErrSectionNotFound
	}

	at := uc.now()
	result := make([]dto.TaskDTO, 0)
	for _, section := range board.Sections() {
		if req.SectionID != "" && section.ID() != req.SectionID {
			continue
		}
		for _, task := range section.Tasks() {
			if priority != "" && task.Priority() != priority {
				continue
			}
			if status != "" && task.Status() != status {
				continue
			}
			if req.Overdue && !task.IsOverdue(at) {
				continue
			}
			if day != nil && !task.IsScheduledOn(*day) {
				continue
			}
			result = append(result, dto.TaskToDTO(task, section.ID(), at))
		}
	}
	return result, nil
}
