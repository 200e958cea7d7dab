package board

import (
	"context"
	"time"

	"prioritizer/internal/application/dto"
	"prioritizer/internal/domain/service"
)

// CreateSectionUseCase appends a section to the board
type CreateSectionUseCase struct {
	boardService *service.BoardService
}

// NewCreateSectionUseCase creates a new CreateSectionUseCase
func NewCreateSectionUseCase(boardService *service.BoardService) *CreateSectionUseCase {
	return &CreateSectionUseCase{boardService: boardService}
}

// Execute creates the section; its ID is derived from the title
func (uc *CreateSectionUseCase) Execute(ctx context.Context, req dto.CreateSectionRequest) (*dto.SectionDTO, error) {
	_, section, err := uc.boardService.CreateSection(ctx, req.Title)
	if err != nil {
		return nil, err
	}
	result := dto.SectionToDTO(section, time.Now())
	return &result, nil
}
