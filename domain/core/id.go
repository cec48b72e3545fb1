package core

import (
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// SnapshotID identifies one loaded dataset snapshot. The dashboard builds a
// single snapshot per process lifetime, so the ID mostly serves logs,
// /api/meta and the readiness endpoint.
type SnapshotID ID

// NewSnapshotID mints a snapshot identifier.
func NewSnapshotID() SnapshotID {
	return SnapshotID(NewID())
}

func (id SnapshotID) String() string { return ID(id).String() }

// ParseSnapshotID parses a string into a SnapshotID.
func ParseSnapshotID(s string) (SnapshotID, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return SnapshotID(s), true
}
