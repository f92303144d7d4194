package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address InterpolatedString `yaml:"address"`
	BaseURL InterpolatedString `yaml:"baseUrl"`
	Session Session            `yaml:"session"`
	Debug   InterpolatedBool   `yaml:"debug"`
}

type Session struct {
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Cookie Cookie                  `yaml:"cookie"`
}

type Cookie struct {
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${EXPODESK_HTTP_ADDRESS:-:8080}",
		BaseURL: "${EXPODESK_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Keys: InterpolatedStringSlice{},
			Cookie: Cookie{
				MaxAge:   NewInterpolatedDuration(12 * time.Hour),
				Path:     "/",
				HTTPOnly: true,
				Secure:   "${EXPODESK_COOKIE_SECURE:-false}",
			},
		},
		Debug: "${EXPODESK_HTTP_DEBUG:-false}",
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":        []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":        []*yaml.Comment{yaml.HeadComment(" Public base URL, used for SSO callback URLs")},
		".session.keys":   []*yaml.Comment{yaml.HeadComment(" Session cookie signing keys (random when empty, sessions then do not survive restarts)")},
		".session.cookie": []*yaml.Comment{yaml.HeadComment(" Session cookie attributes")},
		".debug":          []*yaml.Comment{yaml.HeadComment(" Expose pprof/expvar endpoints under /debug (guarded by auth.ops credentials)")},
	}
}
