package sqlite

import (
	"database/sql"
	"fmt"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/valueobject"
)

// Scanner is the common scanning behavior of sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

type sectionRow struct {
	id    string
	title string
}

type taskRow struct {
	sectionID string
	snapshot  entity.TaskSnapshot
}

func scanSection(scanner Scanner) (sectionRow, error) {
	var row sectionRow
	err := scanner.Scan(&row.id, &row.title)
	return row, err
}

func scanTask(scanner Scanner) (taskRow, error) {
	var (
		row                  taskRow
		priority, status     string
		createdAt, updatedAt string
		completedAt, dueAt   sql.NullString
	)

	err := scanner.Scan(
		&row.snapshot.ID,
		&row.sectionID,
		&row.snapshot.Title,
		&row.snapshot.Description,
		&priority,
		&status,
		&createdAt,
		&updatedAt,
		&completedAt,
		&dueAt,
	)
	if err != nil {
		return row, err
	}

	s := &row.snapshot
	if s.Priority, err = valueobject.ParsePriority(priority); err != nil {
		return row, fmt.Errorf("task %s: %w", s.ID, err)
	}
	if s.Status, err = valueobject.ParseStatus(status); err != nil {
		return row, fmt.Errorf("task %s: %w", s.ID, err)
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return row, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return row, err
	}
	if s.CompletedDate, err = parseNullTime(completedAt); err != nil {
		return row, err
	}
	if s.DueDate, err = parseNullTime(dueAt); err != nil {
		return row, err
	}
	return row, nil
}

func scanNote(scanner Scanner) (string, entity.NoteSnapshot, error) {
	var (
		taskID               string
		note                 entity.NoteSnapshot
		createdAt, updatedAt string
	)
	if err := scanner.Scan(&taskID, &note.ID, &note.Title, &note.Content, &createdAt, &updatedAt); err != nil {
		return "", note, err
	}

	var err error
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return "", note, err
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return "", note, err
	}
	return taskID, note, nil
}
