package setup

import (
	"context"
	"crypto/rand"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/morelia/expodesk/internal/config"
	"github.com/morelia/expodesk/internal/session"
	"github.com/pkg/errors"
)

var NewCookieStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (sessions.Store, error) {
	keyPairs := make([][]byte, 0)
	if len(conf.HTTP.Session.Keys) == 0 {
		key, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie signing key")
		}

		keyPairs = append(keyPairs, key)
	} else {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}
	}

	cookieStore := sessions.NewCookieStore(keyPairs...)

	cookieStore.MaxAge(int(time.Duration(*conf.HTTP.Session.Cookie.MaxAge).Seconds()))
	cookieStore.Options.Path = string(conf.HTTP.Session.Cookie.Path)
	cookieStore.Options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	cookieStore.Options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	cookieStore.Options.SameSite = http.SameSiteLaxMode

	return cookieStore, nil
})

var NewSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*session.Store, error) {
	cookieStore, err := NewCookieStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	backendClient, err := NewBackendClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	queryCache, err := NewCacheFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return session.NewStore(cookieStore, backendClient, store, queryCache), nil
})

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
