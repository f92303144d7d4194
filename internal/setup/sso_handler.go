package setup

import (
	"context"
	"fmt"

	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/openidConnect"
	"github.com/morelia/expodesk/internal/authn/sso"
	"github.com/morelia/expodesk/internal/config"
	"github.com/pkg/errors"
)

var NewSSOHandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*sso.Handler, error) {
	cookieStore, err := NewCookieStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	gothProviders := make([]goth.Provider, 0)
	providers := make([]sso.Provider, 0)

	if conf.Auth.Providers.Google.Key != "" && conf.Auth.Providers.Google.Secret != "" {
		googleProvider := google.New(
			string(conf.Auth.Providers.Google.Key),
			string(conf.Auth.Providers.Google.Secret),
			fmt.Sprintf("%s/auth/sso/google/callback", conf.HTTP.BaseURL),
			conf.Auth.Providers.Google.Scopes...,
		)

		gothProviders = append(gothProviders, googleProvider)

		providers = append(providers, sso.Provider{
			ID:    googleProvider.Name(),
			Label: "Google",
			Icon:  "fa-google",
		})
	}

	if conf.Auth.Providers.Github.Key != "" && conf.Auth.Providers.Github.Secret != "" {
		githubProvider := github.New(
			string(conf.Auth.Providers.Github.Key),
			string(conf.Auth.Providers.Github.Secret),
			fmt.Sprintf("%s/auth/sso/github/callback", conf.HTTP.BaseURL),
			conf.Auth.Providers.Github.Scopes...,
		)

		gothProviders = append(gothProviders, githubProvider)

		providers = append(providers, sso.Provider{
			ID:    githubProvider.Name(),
			Label: "Github",
			Icon:  "fa-github",
		})
	}

	if conf.Auth.Providers.OIDC.Key != "" && conf.Auth.Providers.OIDC.Secret != "" {
		oidcProvider, err := openidConnect.New(
			string(conf.Auth.Providers.OIDC.Key),
			string(conf.Auth.Providers.OIDC.Secret),
			fmt.Sprintf("%s/auth/sso/openid-connect/callback", conf.HTTP.BaseURL),
			string(conf.Auth.Providers.OIDC.DiscoveryURL),
			conf.Auth.Providers.OIDC.Scopes...,
		)
		if err != nil {
			return nil, errors.Wrap(err, "could not configure oidc provider")
		}

		gothProviders = append(gothProviders, oidcProvider)

		providers = append(providers, sso.Provider{
			ID:    oidcProvider.Name(),
			Label: string(conf.Auth.Providers.OIDC.Label),
			Icon:  string(conf.Auth.Providers.OIDC.Icon),
		})
	}

	if len(gothProviders) == 0 {
		return nil, nil
	}

	goth.UseProviders(gothProviders...)
	gothic.Store = cookieStore

	backendClient, err := NewBackendClientFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return sso.NewHandler(
		backendClient,
		sessionStore,
		sso.WithProviders(providers...),
		sso.WithPrefix("/auth/sso"),
	), nil
})
