package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/commentree/apiserver/config"
	"google.golang.org/api/option"
)

// Objects up to this size are uploaded in a single request.
const gcsSingleRequestLimit = 8 << 20

// GCSClient stores objects in a Google Cloud Storage bucket.
type GCSClient struct {
	client    *storage.Client
	bucket    string
	projectID string
}

// NewGCSClient constructs a GCS client from config.
func NewGCSClient(ctx context.Context, cfg config.GCSConfig) (*GCSClient, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		client:    client,
		bucket:    cfg.Bucket,
		projectID: cfg.ProjectID,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Creating a
// bucket requires a project id.
func (g *GCSClient) EnsureBucket(ctx context.Context) error {
	_, err := g.client.Bucket(g.bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return err
	}
	if strings.TrimSpace(g.projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}
	return g.client.Bucket(g.bucket).Create(ctx, g.projectID, nil)
}

// Put uploads an object. Exports of known size below gcsSingleRequestLimit
// skip the resumable upload session.
func (g *GCSClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	writer := g.client.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if size >= 0 && size <= gcsSingleRequestLimit {
		writer.ChunkSize = 0
	}
	if strings.TrimSpace(contentType) != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

// Get reads the object generation current at lookup time, so an export
// rewritten under the same key is never read half old, half new.
func (g *GCSClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	handle := g.client.Bucket(g.bucket).Object(key)
	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, translateGCSError(key, err)
	}
	reader, err := handle.Generation(attrs.Generation).NewReader(ctx)
	if err != nil {
		return nil, translateGCSError(key, err)
	}
	return reader, nil
}

func translateGCSError(key string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return err
}

func (g *GCSClient) Bucket() string {
	return g.bucket
}
