package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type Cache struct {
	TTL *InterpolatedDuration `yaml:"ttl"`
}

func NewDefaultCacheConfig() Cache {
	return Cache{
		TTL: NewInterpolatedDuration(30 * time.Second),
	}
}

func NewCacheConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":     []*yaml.Comment{yaml.HeadComment(" Query cache configuration")},
		".ttl": []*yaml.Comment{yaml.HeadComment(" How long list responses from the platform API are reused")},
	}
}
