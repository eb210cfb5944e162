package core

import (
	"github.com/google/uuid"
)

// NewID creates a new unique identifier using UUID v7 so that freshly minted
// rows sort by creation time
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return id
}

// ParseID validates that s is a well-formed identifier
func ParseID(s string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, NewValidationError("id", err.Error())
	}
	return parsed, nil
}
