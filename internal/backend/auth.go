package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// Credentials is what the platform API hands back on a successful login.
// The access token is opaque; the role indicator is a numeric code the
// session layer resolves into a Role exactly once.
type Credentials struct {
	AccessToken   string `json:"accessToken"`
	RoleIndicator int    `json:"roleIndicator"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[Credentials](env)
}

type ssoLoginRequest struct {
	Provider string `json:"provider"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
}

// SSOLogin exchanges an identity asserted by a configured SSO provider
// for platform credentials. The platform decides whether the email maps
// to a known staff account and which role it carries.
func (c *Client) SSOLogin(ctx context.Context, provider, subject, email string) (*Credentials, error) {
	env, err := c.do(ctx, http.MethodPost, "/auth/sso", "", nil, ssoLoginRequest{
		Provider: provider,
		Subject:  subject,
		Email:    email,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[Credentials](env)
}
