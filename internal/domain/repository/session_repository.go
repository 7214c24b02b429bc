package repository

import (
	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
)

// SessionStore holds the live order-composition sessions. Each session is
// owned by a single terminal session and dies with the process; nothing here
// touches the database.
type SessionStore interface {
	Put(session *entity.Session)
	Get(id uuid.UUID) (*entity.Session, bool)
	Delete(id uuid.UUID)
	// PruneOlderThan removes sessions idle for longer than the given number
	// of seconds and returns how many were removed.
	PruneOlderThan(seconds int) int
}
