package entity

import "time"

// Note is a free-form annotation attached to a task
type Note struct {
	id        string
	title     string
	content   string
	createdAt time.Time
	updatedAt time.Time
}

// NoteSnapshot is the plain representation of a note used by stores and mappers
type NoteSnapshot struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ID returns the note ID
func (n *Note) ID() string {
	return n.id
}

// Title returns the note title, possibly empty
func (n *Note) Title() string {
	return n.title
}

// Content returns the note body
func (n *Note) Content() string {
	return n.content
}

// CreatedAt returns when the note was created
func (n *Note) CreatedAt() time.Time {
	return n.createdAt
}

// UpdatedAt returns when the note was last edited
func (n *Note) UpdatedAt() time.Time {
	return n.updatedAt
}

// Snapshot returns a copy of the note's state
func (n *Note) Snapshot() NoteSnapshot {
	return NoteSnapshot{
		ID:        n.id,
		Title:     n.title,
		Content:   n.content,
		CreatedAt: n.createdAt,
		UpdatedAt: n.updatedAt,
	}
}

func restoreNote(s NoteSnapshot) (*Note, error) {
	if s.ID == "" {
		return nil, ErrInvalidNoteID
	}
	return &Note{
		id:        s.ID,
		title:     s.Title,
		content:   s.Content,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}, nil
}

func (n *Note) clone() *Note {
	c := *n
	return &c
}
