package setup

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/morelia/expodesk/internal/access"
	"github.com/morelia/expodesk/internal/authn/sso"
	"github.com/morelia/expodesk/internal/config"
	"github.com/morelia/expodesk/internal/dashboard"
	"github.com/morelia/expodesk/internal/pprof"
	"github.com/morelia/expodesk/internal/ratelimit"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"

	sloghttp "github.com/samber/slog-http"
)

const sessionPruneInterval = time.Hour

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	slogMiddleware := sloghttp.New(slog.Default())

	backendClient, err := NewBackendClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	queryCache, err := NewCacheFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mediaStore, err := NewMediaStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rules := make(access.RuleSet, 0, len(conf.Auth.Rules))
	for _, rule := range conf.Auth.Rules {
		rules = append(rules, access.PrefixRule{
			Prefix: string(rule.Prefix),
			Rule:   access.NewRule(string(rule.Rule)),
		})
	}

	guard := access.NewMiddleware(sessionStore, access.WithRules(rules))

	ssoHandler, err := NewSSOHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	providers := []sso.Provider{}
	if ssoHandler != nil {
		providers = ssoHandler.Providers()
		mux.Handle("/auth/sso/", slogMiddleware(ssoHandler))
	}

	loginLimiter := ratelimit.New(1, 5)
	authHandler := dashboard.NewAuthHandler(sessionStore, providers, loginLimiter.Middleware(ratelimit.RemoteHost))

	mux.Handle("/auth/", slogMiddleware(authHandler))
	mux.Handle("/unauthorized", slogMiddleware(authHandler))
	mux.Handle("/{$}", slogMiddleware(authHandler))

	dashboardHandler := dashboard.NewHandler(guard, backendClient, sessionStore, queryCache, mediaStore, store)

	mux.Handle("/admin", slogMiddleware(dashboardHandler))
	mux.Handle("/admin/", slogMiddleware(dashboardHandler))
	mux.Handle("/staff", slogMiddleware(dashboardHandler))
	mux.Handle("/nav/", slogMiddleware(dashboardHandler))

	if mediaStore != nil {
		mux.Handle("/media/", slogMiddleware(dashboardHandler))
	}

	if bool(conf.HTTP.Debug) {
		opsAuth := pprof.BasicAuth(string(conf.Auth.Ops.Username), string(conf.Auth.Ops.PasswordHash))
		mux.Handle("/debug/", opsAuth(pprof.NewHandler("/debug")))
	}

	go pruneSessions(ctx, conf, store)

	return mux, nil
}

// pruneSessions drops server side session records that have not been
// seen for longer than the cookie lifetime.
func pruneSessions(ctx context.Context, conf *config.Config, store interface {
	PruneSessions(ctx context.Context, notSeenSince time.Time) error
}) {
	maxAge := time.Duration(*conf.HTTP.Session.Cookie.MaxAge)

	ticker := time.NewTicker(sessionPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.PruneSessions(ctx, time.Now().Add(-maxAge)); err != nil {
				slog.ErrorContext(ctx, "could not prune sessions", log.Error(errors.WithStack(err)))
			}
		}
	}
}
