package entity

import "errors"

var (
	// Board errors
	ErrBoardNotFound = errors.New("board not found")
	ErrIDCollision   = errors.New("section and task ids must not collide")

	// Section errors
	ErrSectionNotFound      = errors.New("section not found")
	ErrSectionAlreadyExists = errors.New("section already exists")
	ErrEmptySectionID       = errors.New("section id cannot be empty")
	ErrEmptySectionTitle    = errors.New("section title cannot be empty")

	// Task errors
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidTaskID     = errors.New("invalid task ID")

	// Drag errors
	ErrDropTargetNotFound = errors.New("drop target not found")

	// Note errors
	ErrNoteNotFound  = errors.New("note not found")
	ErrInvalidNoteID = errors.New("invalid note ID")
	ErrEmptyNote     = errors.New("note has no title or content")

	// Validation errors
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidDate     = errors.New("invalid date")
)
