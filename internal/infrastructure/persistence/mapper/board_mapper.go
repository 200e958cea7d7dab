package mapper

import (
	"fmt"
	"time"

	"prioritizer/internal/domain/entity"
)

// BoardStorage represents the board.md header
type BoardStorage struct {
	Sections []string  `yaml:"sections"`
	Modified time.Time `yaml:"modified"`
}

// BoardToStorage converts a Board entity to storage format
func BoardToStorage(board *entity.Board, modified time.Time) BoardStorage {
	sections := board.Sections()
	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID())
	}
	return BoardStorage{Sections: ids, Modified: modified}
}

// BoardFromStorage assembles a board from loaded sections. Sections are placed
// in the order recorded in storage; sections missing from that order follow in
// the order given.
func BoardFromStorage(storage BoardStorage, sections []*entity.Section) (*entity.Board, error) {
	byID := make(map[string]*entity.Section, len(sections))
	for _, s := range sections {
		byID[s.ID()] = s
	}

	ordered := make([]*entity.Section, 0, len(sections))
	placed := make(map[string]bool, len(sections))
	for _, id := range storage.Sections {
		s, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		ordered = append(ordered, s)
		placed[id] = true
	}
	for _, s := range sections {
		if !placed[s.ID()] {
			ordered = append(ordered, s)
			placed[s.ID()] = true
		}
	}

	board, err := entity.NewBoard(ordered...)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return board, nil
}
