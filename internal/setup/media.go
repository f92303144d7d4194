package setup

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/morelia/expodesk/internal/config"
	"github.com/morelia/expodesk/internal/media"
	"github.com/pkg/errors"
)

// NewMediaStoreFromConfig returns nil when attachments are disabled.
var NewMediaStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*media.Store, error) {
	if !bool(conf.Media.Enabled) {
		return nil, nil
	}

	client, err := minio.New(string(conf.Media.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(string(conf.Media.AccessKey), string(conf.Media.SecretKey), ""),
		Secure: bool(conf.Media.UseSSL),
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create object storage client")
	}

	store := media.NewStore(client, string(conf.Media.Bucket))

	if err := store.EnsureBucket(ctx); err != nil {
		return nil, errors.Wrap(err, "could not ensure attachments bucket")
	}

	return store, nil
})
