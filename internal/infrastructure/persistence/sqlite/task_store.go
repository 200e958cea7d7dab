package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prioritizer/internal/domain/entity"
	"prioritizer/internal/domain/repository"
	"prioritizer/internal/infrastructure/persistence/mapper"
)

const savedKey = "saved_at"

// TaskStore implements repository.TaskStore on SQLite
type TaskStore struct {
	db *sql.DB
}

var _ repository.TaskStore = (*TaskStore)(nil)

// NewTaskStore wraps an open database, see OpenDB
func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Close closes the underlying database
func (s *TaskStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored board inside one transaction
func (s *TaskStore) Save(ctx context.Context, board *entity.Board) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"working_days", "notes", "tasks", "sections"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, section := range board.Sections() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (id, title, position) VALUES (?, ?, ?)`,
			section.ID(), section.Title(), pos,
		); err != nil {
			return fmt.Errorf("failed to insert section %s: %w", section.ID(), err)
		}

		for taskPos, task := range section.Tasks() {
			if err := insertTask(ctx, tx, section.ID(), taskPos, task.Snapshot()); err != nil {
				return err
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO board_meta (key, value) VALUES (?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		savedKey, formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("failed to update board metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit board: %w", err)
	}
	return nil
}

func insertTask(ctx context.Context, tx *sql.Tx, sectionID string, pos int, t entity.TaskSnapshot) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (id, section_id, position, title, description, priority, status,
            created_at, updated_at, completed_at, due_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, sectionID, pos, t.Title, t.Description, t.Priority.String(), t.Status.String(),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
		formatNullTime(t.CompletedDate), formatNullTime(t.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
	}

	for notePos, n := range t.Notes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notes (id, task_id, position, title, content, created_at, updated_at)
             VALUES (?, ?, ?, ?, ?, ?, ?)`,
			n.ID, t.ID, notePos, n.Title, n.Content, formatTime(n.CreatedAt), formatTime(n.UpdatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert note %s: %w", n.ID, err)
		}
	}

	for _, day := range t.WorkingDays {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO working_days (task_id, day) VALUES (?, ?)`,
			t.ID, day.Format(mapper.DayLayout),
		); err != nil {
			return fmt.Errorf("failed to insert working day: %w", err)
		}
	}
	return nil
}

// Load reads the board; entity.ErrBoardNotFound when nothing was saved yet
func (s *TaskStore) Load(ctx context.Context) (*entity.Board, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var savedAt string
	err = tx.QueryRowContext(ctx, `SELECT value FROM board_meta WHERE key = ?`, savedKey).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board metadata: %w", err)
	}

	notes, err := loadNotes(ctx, tx)
	if err != nil {
		return nil, err
	}
	days, err := loadWorkingDays(ctx, tx)
	if err != nil {
		return nil, err
	}
	tasks, err := loadTasks(ctx, tx, notes, days)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `SELECT id, title FROM sections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer rows.Close()

	sections := make([]*entity.Section, 0)
	for rows.Next() {
		row, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		section, err := entity.NewSection(row.id, row.title, tasks[row.id]...)
		if err != nil {
			return nil, fmt.Errorf("failed to restore section %s: %w", row.id, err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sections: %w", err)
	}

	board, err := entity.NewBoard(sections...)
	if err != nil {
		return nil, fmt.Errorf("failed to restore board: %w", err)
	}
	return board, nil
}

func loadTasks(
	ctx context.Context,
	tx *sql.Tx,
	notes map[string][]entity.NoteSnapshot,
	days map[string][]time.Time,
) (map[string][]*entity.Task, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, section_id, title, description, priority, status,
                created_at, updated_at, completed_at, due_at
         FROM tasks ORDER BY section_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	bySection := make(map[string][]*entity.Task)
	for rows.Next() {
		row, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		row.snapshot.Notes = notes[row.snapshot.ID]
		row.snapshot.WorkingDays = days[row.snapshot.ID]

		task, err := entity.RestoreTask(row.snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to restore task %s: %w", row.snapshot.ID, err)
		}
		bySection[row.sectionID] = append(bySection[row.sectionID], task)
	}
	return bySection, rows.Err()
}

func loadNotes(ctx context.Context, tx *sql.Tx) (map[string][]entity.NoteSnapshot, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT task_id, id, title, content, created_at, updated_at
         FROM notes ORDER BY task_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	byTask := make(map[string][]entity.NoteSnapshot)
	for rows.Next() {
		taskID, note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], note)
	}
	return byTask, rows.Err()
}

func loadWorkingDays(ctx context.Context, tx *sql.Tx) (map[string][]time.Time, error) {
	rows, err := tx.QueryContext(ctx, `SELECT task_id, day FROM working_days ORDER BY task_id, day`)
	if err != nil {
		return nil, fmt.Errorf("failed to query working days: %w", err)
	}
	defer rows.Close()

	raw := make(map[string][]string)
	for rows.Next() {
		var taskID, day string
		if err := rows.Scan(&taskID, &day); err != nil {
			return nil, fmt.Errorf("failed to scan working day: %w", err)
		}
		raw[taskID] = append(raw[taskID], day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byTask := make(map[string][]time.Time, len(raw))
	for taskID, values := range raw {
		days, err := mapper.ParseDays(values)
		if err != nil {
			return nil, err
		}
		byTask[taskID] = days
	}
	return byTask, nil
}
