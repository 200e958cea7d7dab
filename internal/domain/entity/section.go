package entity

import "strings"

// Section is a named, ordered bucket of tasks such as a day or a status column.
// Sections are never modified after construction; board operations build new ones.
type Section struct {
	id    string
	title string
	tasks []*Task
}

// NewSection creates a section holding tasks in the given order
func NewSection(id, title string, tasks ...*Task) (*Section, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptySectionID
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptySectionTitle
	}

	seen := make(map[string]bool, len(tasks))
	owned := make([]*Task, 0, len(tasks))
	for _, task := range tasks {
		if task == nil {
			return nil, ErrInvalidTaskID
		}
		if seen[task.ID()] {
			return nil, ErrTaskAlreadyExists
		}
		seen[task.ID()] = true
		owned = append(owned, task)
	}

	return &Section{id: id, title: title, tasks: owned}, nil
}

// ID returns the section ID
func (s *Section) ID() string {
	return s.id
}

// Title returns the display title
func (s *Section) Title() string {
	return s.title
}

// Tasks returns the tasks in display order
func (s *Section) Tasks() []*Task {
	tasks := make([]*Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// TaskIDs returns the task IDs in display order
func (s *Section) TaskIDs() []string {
	ids := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		ids = append(ids, t.ID())
	}
	return ids
}

// Len returns the number of tasks in the section
func (s *Section) Len() int {
	return len(s.tasks)
}

// IndexOf returns the position of a task, or -1 when the section does not hold it
func (s *Section) IndexOf(taskID string) int {
	for i, t := range s.tasks {
		if t.ID() == taskID {
			return i
		}
	}
	return -1
}

func (s *Section) withTasks(tasks []*Task) *Section {
	return &Section{id: s.id, title: s.title, tasks: tasks}
}
