package dto

// BoardDTO represents the whole board
type BoardDTO struct {
	Sections  []SectionDTO `json:"sections" yaml:"sections"`
	TaskCount int          `json:"task_count" yaml:"task_count"`
}

// SectionDTO represents a section and its ordered tasks
type SectionDTO struct {
	ID    string    `json:"id" yaml:"id"`
	Title string    `json:"title" yaml:"title"`
	Tasks []TaskDTO `json:"tasks" yaml:"tasks"`
}

// CreateSectionRequest represents a request to create a section
type CreateSectionRequest struct {
	Title string `json:"title"`
}
