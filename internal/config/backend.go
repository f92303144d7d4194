package config

import "github.com/goccy/go-yaml"

type Backend struct {
	URL     InterpolatedString `yaml:"url"`
	Options *InterpolatedMap   `yaml:"options"`
}

func NewDefaultBackendConfig() Backend {
	return Backend{
		URL: "${EXPODESK_BACKEND_URL:-http://localhost:9000/api/v1}",
		Options: &InterpolatedMap{
			Data: map[string]any{
				"timeout":  "${EXPODESK_BACKEND_TIMEOUT:-10s}",
				"retryMax": "${EXPODESK_BACKEND_RETRY_MAX:-3}",
			},
		},
	}
}

func NewBackendConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Platform API configuration")},
		".url":     []*yaml.Comment{yaml.HeadComment(" Base URL of the platform API")},
		".options": []*yaml.Comment{yaml.HeadComment(" HTTP client options (timeout, retryMax, retryWaitMin, retryWaitMax)")},
	}
}
