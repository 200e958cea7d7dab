package workday

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// AgendaUseCase collects the tasks scheduled on a day and the ones that are
// overdue by the start of it
type AgendaUseCase struct {
	boardService *service.BoardService
	validation   *service.ValidationService
	now          func() time.Time
}

// NewAgendaUseCase creates a new AgendaUseCase
func NewAgendaUseCase(boardService *service.BoardService, validation *service.ValidationService) *AgendaUseCase {
	return &AgendaUseCase{
		boardService: boardService,
		validation:   validation,
		now:          time.Now,
	}
}

// Execute builds the agenda for day. An empty day means today.
func (uc *AgendaUseCase) Execute(ctx context.Context, day string) (*dto.AgendaDTO, error) {
	at := uc.now()
	start := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	if day != "" {
		parsed, err := parseDay(uc.validation, day)
		if err != nil {
			return nil, err
		}
		start = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, parsed.Location())
	}

	board, err := uc.boardService.GetBoard(ctx)
	if err != nil {
		return nil, err
	}

	agenda := &dto.AgendaDTO{
		Day:       start.Format(dto.DateLayout),
		Scheduled: make([]dto.TaskDTO, 0),
		Overdue:   make([]dto.TaskDTO, 0),
	}
	for _, section := range board.Sections() {
		for _, task := range section.Tasks() {
			switch {
			case task.IsScheduledOn(start):
				agenda.Scheduled = append(agenda.Scheduled, dto.TaskToDTO(task, section.ID(), at))
			case task.IsOverdue(start):
				agenda.Overdue = append(agenda.Overdue, dto.TaskToDTO(task, section.ID(), at))
			}
		}
	}
	return agenda, nil
}
