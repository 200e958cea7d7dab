package dto

import (
	"time"

	"prioritizer/internal/domain/entity"
)

// TaskToDTO converts a task; at is the instant overdue status is judged against
func TaskToDTO(task *entity.Task, sectionID string, at time.Time) TaskDTO {
	days := make([]string, 0)
	for _, d := range task.WorkingDays() {
		days = append(days, d.Format(DateLayout))
	}

	notes := make([]NoteDTO, 0)
	for _, n := range task.Notes() {
		notes = append(notes, NoteToDTO(n))
	}

	return TaskDTO{
		ID:            task.ID(),
		Title:         task.Title(),
		Description:   task.Description(),
		Priority:      task.Priority().String(),
		Status:        task.Status().String(),
		CreatedAt:     task.CreatedAt(),
		UpdatedAt:     task.UpdatedAt(),
		DueDate:       task.DueDate(),
		CompletedDate: task.CompletedDate(),
		WorkingDays:   days,
		Notes:         notes,
		IsOverdue:     task.IsOverdue(at),
		SectionID:     sectionID,
	}
}

// NoteToDTO converts a note
func NoteToDTO(note *entity.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID(),
		Title:     note.Title(),
		Content:   note.Content(),
		CreatedAt: note.CreatedAt(),
		UpdatedAt: note.UpdatedAt(),
	}
}

// SectionToDTO converts a section with its tasks
func SectionToDTO(section *entity.Section, at time.Time) SectionDTO {
	tasks := make([]TaskDTO, 0, section.Len())
	for _, t := range section.Tasks() {
		tasks = append(tasks, TaskToDTO(t, section.ID(), at))
	}
	return SectionDTO{
		ID:    section.ID(),
		Title: section.Title(),
		Tasks: tasks,
	}
}

// BoardToDTO converts the whole board
func BoardToDTO(board *entity.Board, at time.Time) BoardDTO {
	sections := make([]SectionDTO, 0)
	for _, s := range board.Sections() {
		sections = append(sections, SectionToDTO(s, at))
	}
	return BoardDTO{
		Sections:  sections,
		TaskCount: board.TaskCount(),
	}
}
