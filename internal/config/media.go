package config

import "github.com/goccy/go-yaml"

type Media struct {
	Enabled   InterpolatedBool   `yaml:"enabled"`
	Endpoint  InterpolatedString `yaml:"endpoint"`
	AccessKey InterpolatedString `yaml:"accessKey"`
	SecretKey InterpolatedString `yaml:"secretKey"`
	Bucket    InterpolatedString `yaml:"bucket"`
	UseSSL    InterpolatedBool   `yaml:"useSsl"`
}

func NewDefaultMediaConfig() Media {
	return Media{
		Enabled:   "${EXPODESK_MEDIA_ENABLED:-false}",
		Endpoint:  "${EXPODESK_MEDIA_ENDPOINT:-localhost:9001}",
		AccessKey: "${EXPODESK_MEDIA_ACCESS_KEY}",
		SecretKey: "${EXPODESK_MEDIA_SECRET_KEY}",
		Bucket:    "${EXPODESK_MEDIA_BUCKET:-expodesk-attachments}",
		UseSSL:    "${EXPODESK_MEDIA_USE_SSL:-false}",
	}
}

func NewMediaConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":          []*yaml.Comment{yaml.HeadComment(" Media attachments configuration (S3 compatible object storage)")},
		".enabled":  []*yaml.Comment{yaml.HeadComment(" Enable record attachments (venue photos, exhibition brochures)")},
		".endpoint": []*yaml.Comment{yaml.HeadComment(" Object storage endpoint, e.g. play.min.io")},
	}
}
