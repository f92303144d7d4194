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

var sessionMigrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,

		token_hash BLOB NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,

		created_at INTEGER NOT NULL,
		last_seen_at INTEGER NOT NULL
	);`,
}

var sessionAttributes = `id, token_hash, email, role, created_at, last_seen_at`

func (s *Store) CreateSession(ctx context.Context, record *session.Record) error {
	return errors.WithStack(s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `INSERT INTO sessions (id, token_hash, email, role, created_at, last_seen_at) VALUES (?, ?, ?, ?, ?, ?)`
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				record.ID,
				record.TokenHash,
				record.Email,
				string(record.Role),
				record.CreatedAt.UTC().Unix(),
				record.LastSeenAt.UTC().Unix(),
			},
		})

		return errors.WithStack(err)
	}))
}

// FindSession returns (nil, nil) when no record exists.
func (s *Store) FindSession(ctx context.Context, id string) (*session.Record, error) {
	var record *session.Record

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM sessions WHERE id = ? LIMIT 1`, sessionAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record = &session.Record{}
				return errors.WithStack(s.bindSession(stmt, record))
			},
		})

		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return record, nil
}

func (s *Store) TouchSession(ctx context.Context, id string, seenAt time.Time) error {
	return errors.WithStack(s.Do(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `UPDATE sessions SET last_seen_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{seenAt.UTC().Unix(), id},
		})

		return errors.WithStack(err)
	}))
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return errors.WithStack(s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM sessions WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		})

		return errors.WithStack(err)
	}))
}

// PruneSessions drops sessions not seen since the given time.
func (s *Store) PruneSessions(ctx context.Context, notSeenSince time.Time) error {
	return errors.WithStack(s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM sessions WHERE last_seen_at < ?`, &sqlitex.ExecOptions{
			Args: []any{notSeenSince.UTC().Unix()},
		})

		return errors.WithStack(err)
	}))
}

func (s *Store) CountSessions(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `SELECT COUNT(*) FROM sessions`, &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

func (s *Store) bindSession(stmt *sqlite.Stmt, record *session.Record) error {
	record.ID = stmt.ColumnText(0)

	record.TokenHash = make([]byte, stmt.ColumnLen(1))
	stmt.ColumnBytes(1, record.TokenHash)

	record.Email = stmt.ColumnText(2)
	record.Role = session.Role(stmt.ColumnText(3))
	record.CreatedAt = time.Unix(stmt.ColumnInt64(4), 0)
	record.LastSeenAt = time.Unix(stmt.ColumnInt64(5), 0)

	return nil
}

var _ session.Records = &Store{}
