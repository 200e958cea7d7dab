package entity

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for tasks and notes
func NewID() string {
	return uuid.NewString()
}
