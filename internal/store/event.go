package store

import (
	"context"
	"fmt"
	"time"

	"github.com/morelia/expodesk/internal/session"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var eventMigrations = []string{
	`CREATE TABLE IF NOT EXISTS signin_events (
		id TEXT PRIMARY KEY,

		email TEXT NOT NULL,
		role TEXT NOT NULL,
		kind TEXT NOT NULL,
		remote_addr TEXT,

		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS signin_events_created_at ON signin_events (created_at DESC);`,
}

var eventAttributes = `id, email, role, kind, remote_addr, created_at`

func (s *Store) RecordEvent(ctx context.Context, event *session.Event) error {
	return errors.WithStack(s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `INSERT INTO signin_events (id, email, role, kind, remote_addr, created_at) VALUES (?, ?, ?, ?, ?, ?)`
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				event.ID,
				event.Email,
				string(event.Role),
				string(event.Kind),
				event.RemoteAddr,
				event.CreatedAt.UTC().Unix(),
			},
		})

		return errors.WithStack(err)
	}))
}

// ListEvents returns the most recent sign-in events, newest first.
func (s *Store) ListEvents(ctx context.Context, limit int) ([]*session.Event, error) {
	events := make([]*session.Event, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM signin_events ORDER BY created_at DESC, id DESC LIMIT ?`, eventAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				event := &session.Event{
					ID:         stmt.ColumnText(0),
					Email:      stmt.ColumnText(1),
					Role:       session.Role(stmt.ColumnText(2)),
					Kind:       session.EventKind(stmt.ColumnText(3)),
					RemoteAddr: stmt.ColumnText(4),
					CreatedAt:  time.Unix(stmt.ColumnInt64(5), 0),
				}

				events = append(events, event)
				return nil
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return events, nil
}
