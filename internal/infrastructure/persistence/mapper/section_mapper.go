package mapper

import (
	"fmt"

	"prioritizer/internal/domain/entity"
)

// SectionStorage represents the section.md header
type SectionStorage struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Tasks []string `yaml:"tasks"`
}

// SectionToStorage converts a Section entity to storage format
func SectionToStorage(section *entity.Section) SectionStorage {
	return SectionStorage{
		ID:    section.ID(),
		Title: section.Title(),
		Tasks: section.TaskIDs(),
	}
}

// SectionFromStorage builds a section from its header and the tasks found in
// its directory. Tasks follow the recorded order; tasks the order does not
// mention are appended in the order given.
func SectionFromStorage(storage SectionStorage, dirName string, tasks []*entity.Task) (*entity.Section, error) {
	id := storage.ID
	if id == "" {
		id = dirName
	}
	if id != dirName {
		return nil, fmt.Errorf("section ID mismatch: metadata has %s but folder is %s", id, dirName)
	}

	byID := make(map[string]*entity.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID()] = t
	}

	ordered := make([]*entity.Task, 0, len(tasks))
	placed := make(map[string]bool, len(tasks))
	for _, taskID := range storage.Tasks {
		t, ok := byID[taskID]
		if !ok || placed[taskID] {
			continue
		}
		ordered = append(ordered, t)
		placed[taskID] = true
	}
	for _, t := range tasks {
		if !placed[t.ID()] {
			ordered = append(ordered, t)
			placed[t.ID()] = true
		}
	}

	title := storage.Title
	if title == "" {
		title = id
	}
	return entity.NewSection(id, title, ordered...)
}
