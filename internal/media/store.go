package media

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const (
	keyPrefix        = "attachments"
	metadataFilename = "Filename"
)

var ErrNotFound = errors.New("not found")

// Store keeps record attachments (venue photos, exhibition brochures)
// in an S3 compatible bucket.
type Store struct {
	client *minio.Client
	bucket string
}

type Attachment struct {
	Key         string
	Name        string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.WithStack(err)
	}

	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Upload stores a new attachment for the given record and returns its key.
func (s *Store) Upload(ctx context.Context, entity, recordID, filename, contentType string, r io.Reader, size int64) (*Attachment, error) {
	key := path.Join(keyPrefix, entity, recordID, xid.New().String())

	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			metadataFilename: filename,
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Attachment{
		Key:         key,
		Name:        filename,
		ContentType: contentType,
		Size:        info.Size,
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// Open returns the attachment content and its metadata.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, *Attachment, error) {
	stat, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, nil, errors.WithStack(asNotFound(err))
	}

	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, errors.WithStack(asNotFound(err))
	}

	return object, attachmentFromStat(key, stat), nil
}

// List returns the attachments of a record, newest last.
func (s *Store) List(ctx context.Context, entity, recordID string) ([]*Attachment, error) {
	prefix := path.Join(keyPrefix, entity, recordID) + "/"

	attachments := make([]*Attachment, 0)

	for object := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, errors.WithStack(object.Err)
		}

		stat, err := s.client.StatObject(ctx, s.bucket, object.Key, minio.StatObjectOptions{})
		if err != nil {
			return nil, errors.WithStack(err)
		}

		attachments = append(attachments, attachmentFromStat(object.Key, stat))
	}

	return attachments, nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func attachmentFromStat(key string, stat minio.ObjectInfo) *Attachment {
	name := stat.UserMetadata[metadataFilename]
	if name == "" {
		name = path.Base(key)
	}

	return &Attachment{
		Key:         key,
		Name:        name,
		ContentType: stat.ContentType,
		Size:        stat.Size,
		UploadedAt:  stat.LastModified,
	}
}

func asNotFound(err error) error {
	response := minio.ToErrorResponse(errors.Cause(err))
	if response.Code == "NoSuchKey" || response.Code == "NoSuchBucket" {
		return ErrNotFound
	}

	return err
}

func NewStore(client *minio.Client, bucket string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
	}
}
