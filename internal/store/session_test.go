package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/morelia/expodesk/internal/session"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "expodesk.db")

	if err := os.RemoveAll(dbPath); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store := NewStore(dbPath)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	return store
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)

	record := &session.Record{
		ID:         xid.New().String(),
		TokenHash:  []byte{0x01, 0x02, 0x03},
		Email:      "ada@fair.example",
		Role:       session.RoleAdmin,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	if err := store.CreateSession(ctx, record); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err := store.FindSession(ctx, record.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if found == nil {
		t.Fatal("FindSession: expected a record")
	}

	if e, g := record.Email, found.Email; e != g {
		t.Errorf("found.Email: expected '%v', got '%v'", e, g)
	}

	if e, g := session.RoleAdmin, found.Role; e != g {
		t.Errorf("found.Role: expected '%v', got '%v'", e, g)
	}

	if e, g := 3, len(found.TokenHash); e != g {
		t.Errorf("len(found.TokenHash): expected '%v', got '%v'", e, g)
	}

	seenAt := now.Add(5 * time.Minute)
	if err := store.TouchSession(ctx, record.ID, seenAt); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err = store.FindSession(ctx, record.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := seenAt.Unix(), found.LastSeenAt.Unix(); e != g {
		t.Errorf("found.LastSeenAt: expected '%v', got '%v'", e, g)
	}

	if err := store.DeleteSession(ctx, record.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err = store.FindSession(ctx, record.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if found != nil {
		t.Error("FindSession: expected nil after delete")
	}

	// Deleting again is a no-op.
	if err := store.DeleteSession(ctx, record.ID); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}
}

func TestPruneSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()

	stale := &session.Record{
		ID:         xid.New().String(),
		TokenHash:  []byte{0x01},
		Email:      "old@fair.example",
		Role:       session.RoleStaff,
		CreatedAt:  now.Add(-48 * time.Hour),
		LastSeenAt: now.Add(-48 * time.Hour),
	}

	fresh := &session.Record{
		ID:         xid.New().String(),
		TokenHash:  []byte{0x02},
		Email:      "new@fair.example",
		Role:       session.RoleStaff,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	for _, record := range []*session.Record{stale, fresh} {
		if err := store.CreateSession(ctx, record); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	if err := store.PruneSessions(ctx, now.Add(-24*time.Hour)); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	count, err := store.CountSessions(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}
}

func TestEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)

	kinds := []session.EventKind{session.EventLogin, session.EventLogout, session.EventExpired}
	for idx, kind := range kinds {
		event := &session.Event{
			ID:         xid.New().String(),
			Email:      "ada@fair.example",
			Role:       session.RoleAdmin,
			Kind:       kind,
			RemoteAddr: "127.0.0.1:4242",
			CreatedAt:  base.Add(time.Duration(idx) * time.Minute),
		}

		if err := store.RecordEvent(ctx, event); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	events, err := store.ListEvents(ctx, 2)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(events); e != g {
		t.Fatalf("len(events): expected '%v', got '%v'", e, g)
	}

	// Newest first.
	if e, g := session.EventExpired, events[0].Kind; e != g {
		t.Errorf("events[0].Kind: expected '%v', got '%v'", e, g)
	}

	if e, g := session.EventLogout, events[1].Kind; e != g {
		t.Errorf("events[1].Kind: expected '%v', got '%v'", e, g)
	}
}
