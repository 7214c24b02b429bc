package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restodesk/pos-api/internal/domain/entity"
)

func TestSessionStorePutGetDelete(t *testing.T) {
	store := NewSessionStore()
	session := entity.NewSession("POS-1")

	store.Put(session)

	got, ok := store.Get(session.ID)
	if !ok {
		t.Fatal("expected session found")
	}
	if got.ID != session.ID {
		t.Fatalf("expected session %s, got %s", session.ID, got.ID)
	}

	if _, ok := store.Get(uuid.New()); ok {
		t.Fatal("expected unknown id not found")
	}

	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Fatal("expected session gone after delete")
	}
}

func TestSessionStorePruneOlderThan(t *testing.T) {
	store := NewSessionStore()

	stale := entity.NewSession("POS-1")
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.Put(stale)

	fresh := entity.NewSession("POS-2")
	store.Put(fresh)

	removed := store.PruneOlderThan(3600)
	if removed != 1 {
		t.Fatalf("expected 1 pruned, got %d", removed)
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Error("expected stale session pruned")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("expected fresh session kept")
	}
}
