package filesystem

import (
	"path/filepath"
)

const (
	boardFile    = "board.md"
	sectionFile  = "section.md"
	taskFile     = "task.md"
	sectionsDir  = "sections"
	tasksDirName = "tasks"
)

// PathBuilder constructs filesystem paths for board entities.
//
//	<root>/board.md
//	<root>/sections/<section>/section.md
//	<root>/sections/<section>/tasks/<task>/task.md
type PathBuilder struct {
	root string
}

// NewPathBuilder creates a new PathBuilder
func NewPathBuilder(root string) *PathBuilder {
	return &PathBuilder{root: root}
}

// Root returns the directory holding the board
func (pb *PathBuilder) Root() string {
	return pb.root
}

// BoardFile returns the path of board.md
func (pb *PathBuilder) BoardFile() string {
	return filepath.Join(pb.root, boardFile)
}

// SectionsDir returns the directory holding one folder per section
func (pb *PathBuilder) SectionsDir() string {
	return filepath.Join(pb.root, sectionsDir)
}

// SectionDir returns the directory path for a section
func (pb *PathBuilder) SectionDir(sectionID string) string {
	return filepath.Join(pb.SectionsDir(), sectionID)
}

// SectionFile returns the path to a section's section.md
func (pb *PathBuilder) SectionFile(sectionID string) string {
	return filepath.Join(pb.SectionDir(sectionID), sectionFile)
}

// TasksDir returns the directory holding a section's task folders
func (pb *PathBuilder) TasksDir(sectionID string) string {
	return filepath.Join(pb.SectionDir(sectionID), tasksDirName)
}

// TaskDir returns the directory path for a task
func (pb *PathBuilder) TaskDir(sectionID, taskID string) string {
	return filepath.Join(pb.TasksDir(sectionID), taskID)
}

// TaskFile returns the path to a task's task.md
func (pb *PathBuilder) TaskFile(sectionID, taskID string) string {
	return filepath.Join(pb.TaskDir(sectionID, taskID), taskFile)
}
