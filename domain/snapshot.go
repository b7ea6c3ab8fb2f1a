package domain

import (
	"encoding/json"
	"time"
)

// SnapshotVersion is the schema version written by this build.
const SnapshotVersion = 2

// Snapshot kinds, one per persisted slot.
const (
	KindTasks         = "tasks"
	KindUser          = "user"
	KindNotifications = "notifications"
)

// Snapshot is the versioned envelope around every persisted state slot.
type Snapshot struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	SavedAt time.Time       `json:"savedAt"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Snapshot) Touch() {
	if s == nil {
		return
	}
	s.SavedAt = time.Now().UTC()
}
