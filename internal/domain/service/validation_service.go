package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

// DateLayout is the calendar-day input format accepted by ParseDate
const DateLayout = "2006-01-02"

const (
	maxTaskTitleLength    = 200
	maxSectionTitleLength = 60
)

// ValidationService validates user input before it reaches the board
type ValidationService struct{}

// NewValidationService creates a new ValidationService
func NewValidationService() *ValidationService {
	return &ValidationService{}
}

// ValidateTaskTitle checks a task title
func (v *ValidationService) ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return entity.ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > maxTaskTitleLength {
		return fmt.Errorf("task title exceeds %d characters", maxTaskTitleLength)
	}
	return nil
}

// ValidateSectionTitle checks a section title
func (v *ValidationService) ValidateSectionTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return entity.ErrEmptySectionTitle
	}
	if utf8.RuneCountInString(title) > maxSectionTitleLength {
		return fmt.Errorf("section title exceeds %d characters", maxSectionTitleLength)
	}
	return nil
}

// ValidateUniqueSectionID checks that id is free on the board, both as a section
// and as a task ID
func (v *ValidationService) ValidateUniqueSectionID(board *entity.Board, id string) error {
	if board.HasSection(id) {
		return entity.ErrSectionAlreadyExists
	}
	if board.HasTask(id) {
		return entity.ErrIDCollision
	}
	return nil
}

// ParsePriority parses a priority; empty input yields medium
func (v *ValidationService) ParsePriority(s string) (valueobject.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return valueobject.PriorityMedium, nil
	}
	p, err := valueobject.ParsePriority(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidPriority, s)
	}
	return p, nil
}

// ParseStatus parses a status; empty input yields todo
func (v *ValidationService) ParseStatus(s string) (valueobject.Status, error) {
	if strings.TrimSpace(s) == "" {
		return valueobject.StatusTodo, nil
	}
	st, err := valueobject.ParseStatus(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", entity.ErrInvalidStatus, s)
	}
	return st, nil
}

// ParseDate accepts a calendar day (interpreted in the local time zone) or an
// RFC 3339 timestamp. Empty input yields nil.
func (v *ValidationService) ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q (want %s or RFC 3339)", entity.ErrInvalidDate, s, DateLayout)
	}
	return &t, nil
}
