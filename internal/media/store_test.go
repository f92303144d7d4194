package media

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func newTestMediaStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()

	container, err := tcminio.Run(ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z")
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Skipf("could not start minio container: %+v", errors.WithStack(err))
	}

	endpoint, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(container.Username, container.Password, ""),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	store := NewStore(client, "expodesk-test")

	if err := store.EnsureBucket(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	store := newTestMediaStore(t)
	ctx := context.Background()

	content := "brochure content"

	uploaded, err := store.Upload(ctx, "exhibitions", "exh-1", "brochure.pdf", "application/pdf", strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "brochure.pdf", uploaded.Name; e != g {
		t.Errorf("uploaded.Name: expected '%v', got '%v'", e, g)
	}

	reader, attachment, err := store.Open(ctx, uploaded.Key)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := content, buf.String(); e != g {
		t.Errorf("content: expected '%v', got '%v'", e, g)
	}

	if e, g := "application/pdf", attachment.ContentType; e != g {
		t.Errorf("attachment.ContentType: expected '%v', got '%v'", e, g)
	}

	attachments, err := store.List(ctx, "exhibitions", "exh-1")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(attachments); e != g {
		t.Fatalf("len(attachments): expected '%v', got '%v'", e, g)
	}

	others, err := store.List(ctx, "exhibitions", "exh-2")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(others); e != g {
		t.Errorf("len(others): expected '%v', got '%v'", e, g)
	}

	if err := store.Remove(ctx, uploaded.Key); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, _, err := store.Open(ctx, uploaded.Key); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %+v", err)
	}
}
