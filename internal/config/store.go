package config

import "github.com/goccy/go-yaml"

type Store struct {
	Path InterpolatedString `yaml:"path"`
}

func NewDefaultStoreConfig() Store {
	return Store{
		Path: "${EXPODESK_STORE_PATH:-expodesk.db}",
	}
}

func NewStoreConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Local store configuration (sessions, sign-in audit trail)")},
		".path": []*yaml.Comment{yaml.HeadComment(" Path of the SQLite database file")},
	}
}
