package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers AuthProviders `yaml:"providers"`
	Rules     []AccessRule  `yaml:"rules"`
	Ops       OpsAuth       `yaml:"ops"`
}

// AccessRule attaches an additional expression to every route under Prefix,
// evaluated after the role check.
type AccessRule struct {
	Prefix InterpolatedString `yaml:"prefix"`
	Rule   InterpolatedString `yaml:"rule"`
}

// OpsAuth protects the /debug endpoints.
type OpsAuth struct {
	Username     InterpolatedString `yaml:"username"`
	PasswordHash InterpolatedString `yaml:"passwordHash"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers: AuthProviders{},
		Rules:     []AccessRule{},
		Ops: OpsAuth{
			Username:     "${EXPODESK_OPS_USERNAME:-ops}",
			PasswordHash: "${EXPODESK_OPS_PASSWORD_HASH}",
		},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":           []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".providers": []*yaml.Comment{yaml.HeadComment(" Optional SSO providers, in addition to the platform's email/password login")},
		".rules": []*yaml.Comment{yaml.HeadComment(
			" Additional route access rules",
			" See https://expr-lang.org/docs/language-definition",
			" Environment: role, path, email",
		)},
		".ops.passwordHash": []*yaml.Comment{yaml.HeadComment(" bcrypt hash of the /debug endpoints password")},
	}
}
