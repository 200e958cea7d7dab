package valueobject

import (
	"fmt"
	"strings"
)

// Status represents the progress state of a task
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus converts a string to a Status.
// "in_progress" and "done" are accepted as aliases.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "in_progress", "inprogress":
		normalized = string(StatusInProgress)
	case "done":
		normalized = string(StatusCompleted)
	}

	status := Status(normalized)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q: must be one of todo, in-progress, completed", s)
	}
	return status, nil
}

// IsValid reports whether the status is one of the known states
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// IsCompleted reports whether the status is completed
func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

func (s Status) String() string {
	return string(s)
}
