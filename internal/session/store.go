package session

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/morelia/expodesk/internal/backend"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

// ErrSuperseded is returned when a login response resolves after the
// client's session has been cleared in the meantime. The late response
// must not resurrect that session. Sessions of other clients are never
// affected.
var ErrSuperseded = errors.New("login superseded")

// Record is the server-side half of a session: its existence is what
// keeps the session alive, so deleting it revokes the cookie.
type Record struct {
	ID         string
	TokenHash  []byte
	Email      string
	Role       Role
	CreatedAt  time.Time
	LastSeenAt time.Time
}

type EventKind string

const (
	EventLogin   EventKind = "login"
	EventLogout  EventKind = "logout"
	EventExpired EventKind = "expired"
)

// Event is one entry of the sign-in audit trail.
type Event struct {
	ID         string
	Email      string
	Role       Role
	Kind       EventKind
	RemoteAddr string
	CreatedAt  time.Time
}

// Records persists session records and audit events. FindSession returns
// (nil, nil) when no record exists; an error means the store itself
// could not answer.
type Records interface {
	CreateSession(ctx context.Context, record *Record) error
	FindSession(ctx context.Context, id string) (*Record, error)
	TouchSession(ctx context.Context, id string, seenAt time.Time) error
	DeleteSession(ctx context.Context, id string) error
	RecordEvent(ctx context.Context, event *Event) error
}

// Authenticator exchanges credentials for platform credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.Credentials, error)
}

// Purger drops cached query results owned by a token.
type Purger interface {
	PurgeOwner(token string)
}

const (
	valueID    = "id"
	valueToken = "token"
	valueRole  = "role"
	valueEmail = "email"
	valueMenu  = "menuOpen"
)

type Store struct {
	cookies sessions.Store
	name    string
	auth    Authenticator
	records Records
	cache   Purger
}

type OptionFunc func(opts *Options)

type Options struct {
	SessionName string
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		SessionName: "expodesk_session",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithSessionName(name string) OptionFunc {
	return func(opts *Options) {
		opts.SessionName = name
	}
}

func NewStore(cookies sessions.Store, auth Authenticator, records Records, cache Purger, funcs ...OptionFunc) *Store {
	opts := NewOptions(funcs...)

	return &Store{
		cookies: cookies,
		name:    opts.SessionName,
		auth:    auth,
		records: records,
		cache:   cache,
	}
}

// Resolve reads the request's session back. It distinguishes "no session"
// from "could not resolve yet": only the latter yields an unresolved
// state, which callers must treat as pending rather than anonymous.
func (s *Store) Resolve(r *http.Request) State {
	ctx := r.Context()

	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		// Undecodable cookie: treat as no session.
		return Anonymous()
	}

	id, _ := sess.Values[valueID].(string)
	token, _ := sess.Values[valueToken].(string)
	rawRole, _ := sess.Values[valueRole].(string)
	email, _ := sess.Values[valueEmail].(string)

	if id == "" || token == "" || rawRole == "" {
		return Anonymous()
	}

	role, err := ParseRole(rawRole)
	if err != nil {
		return Anonymous()
	}

	record, err := s.records.FindSession(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "could not resolve session record", log.Error(errors.WithStack(err)))
		return Unresolved()
	}

	if record == nil {
		// Revoked or expired server-side.
		return Anonymous()
	}

	if subtle.ConstantTimeCompare(record.TokenHash, hashToken(token)) != 1 {
		return Anonymous()
	}

	if err := s.records.TouchSession(ctx, id, time.Now().UTC()); err != nil {
		slog.WarnContext(ctx, "could not touch session record", log.Error(errors.WithStack(err)))
	}

	return Authenticated(Identity{
		Token: token,
		Role:  role,
		Email: email,
	})
}

// WatchSession returns the id of the live session record attached to
// the request, or "" when the request carries none. Callers snapshot it
// before a login round trip and hand it to Commit, which then refuses
// to proceed when that record was cleared in the meantime. The scope is
// the one client session the request belongs to.
func (s *Store) WatchSession(ctx context.Context, r *http.Request) (string, error) {
	sess, err := s.cookies.Get(r, s.name)
	if err != nil {
		return "", nil
	}

	id, _ := sess.Values[valueID].(string)
	if id == "" {
		return "", nil
	}

	record, err := s.records.FindSession(ctx, id)
	if err != nil {
		return "", errors.WithStack(err)
	}

	if record == nil {
		// Already revoked or expired before the attempt started: there
		// is nothing left a concurrent logout could clear.
		return "", nil
	}

	return id, nil
}

// Login authenticates against the platform API and commits the session.
// The commit is refused when this client's session was logged out while
// the login round trip was in flight.
func (s *Store) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, email, password string) (*Identity, error) {
	watch, err := s.WatchSession(ctx, r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	creds, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.commit(ctx, w, r, email, creds, watch)
}

// Commit establishes a session from already obtained platform
// credentials. The SSO callback uses it after the provider round trip,
// passing the WatchSession snapshot it took before the exchange.
func (s *Store) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request, email string, creds *backend.Credentials, watch string) (*Identity, error) {
	return s.commit(ctx, w, r, email, creds, watch)
}

func (s *Store) commit(ctx context.Context, w http.ResponseWriter, r *http.Request, email string, creds *backend.Credentials, watch string) (*Identity, error) {
	role, err := RoleFromIndicator(creds.RoleIndicator)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if watch != "" {
		record, err := s.records.FindSession(ctx, watch)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if record == nil {
			return nil, errors.WithStack(ErrSuperseded)
		}
	}

	now := time.Now().UTC()

	record := &Record{
		ID:         xid.New().String(),
		TokenHash:  hashToken(creds.AccessToken),
		Email:      email,
		Role:       role,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	if err := s.records.CreateSession(ctx, record); err != nil {
		return nil, errors.WithStack(err)
	}

	sess, _ := s.cookies.Get(r, s.name)
	sess.Values[valueID] = record.ID
	sess.Values[valueToken] = creds.AccessToken
	sess.Values[valueRole] = string(role)
	sess.Values[valueEmail] = email

	if err := sess.Save(r, w); err != nil {
		return nil, errors.WithStack(err)
	}

	s.audit(ctx, email, role, EventLogin, r.RemoteAddr)

	return &Identity{
		Token: creds.AccessToken,
		Role:  role,
		Email: email,
	}, nil
}

// Logout clears the session. It is idempotent: logging out an already
// anonymous request performs the clears and succeeds.
func (s *Store) Logout(w http.ResponseWriter, r *http.Request) error {
	return errors.WithStack(s.clear(w, r, EventLogout))
}

// Invalidate clears the session after the platform rejected its token.
func (s *Store) Invalidate(w http.ResponseWriter, r *http.Request) error {
	return errors.WithStack(s.clear(w, r, EventExpired))
}

func (s *Store) clear(w http.ResponseWriter, r *http.Request, kind EventKind) error {
	ctx := r.Context()

	sess, _ := s.cookies.Get(r, s.name)

	id, _ := sess.Values[valueID].(string)
	token, _ := sess.Values[valueToken].(string)
	rawRole, _ := sess.Values[valueRole].(string)
	email, _ := sess.Values[valueEmail].(string)

	if id != "" {
		if err := s.records.DeleteSession(ctx, id); err != nil {
			slog.ErrorContext(ctx, "could not delete session record", log.Error(errors.WithStack(err)))
		}
	}

	if token != "" && s.cache != nil {
		s.cache.PurgeOwner(token)
	}

	if email != "" {
		s.audit(ctx, email, Role(rawRole), kind, r.RemoteAddr)
	}

	for key := range sess.Values {
		delete(sess.Values, key)
	}

	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *Store) audit(ctx context.Context, email string, role Role, kind EventKind, remoteAddr string) {
	err := s.records.RecordEvent(ctx, &Event{
		ID:         xid.New().String(),
		Email:      email,
		Role:       role,
		Kind:       kind,
		RemoteAddr: remoteAddr,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "could not record sign-in event", log.Error(errors.WithStack(err)))
	}
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
