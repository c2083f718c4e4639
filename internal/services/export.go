package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/commentree/apiserver/types"
)

const (
	exportPrefix      = "exports/comments-"
	exportTimeLayout  = "20060102T150405Z"
	exportContentType = "application/json"
)

// ErrExportUnavailable is returned when no object storage is configured.
var ErrExportUnavailable = errors.New("object storage is not configured")

// ObjectWriter uploads objects. *storage.Storage satisfies it.
type ObjectWriter interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
}

// CommentLister returns the current comment tree.
type CommentLister interface {
	List(ctx context.Context) ([]*types.CommentNode, error)
}

// ExportService snapshots the comment tree to object storage.
type ExportService struct {
	comments CommentLister
	objects  ObjectWriter
	now      func() time.Time
}

func NewExportService(comments CommentLister, objects ObjectWriter) *ExportService {
	return &ExportService{comments: comments, objects: objects, now: time.Now}
}

// Export uploads the tree as JSON and returns the object key.
func (s *ExportService) Export(ctx context.Context) (string, error) {
	if s.objects == nil {
		return "", ErrExportUnavailable
	}

	tree, err := s.comments.List(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}

	key := exportKey(s.now())
	if err := s.objects.Put(ctx, key, bytes.NewReader(data), int64(len(data)), exportContentType); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func exportKey(at time.Time) string {
	return exportPrefix + at.UTC().Format(exportTimeLayout) + ".json"
}
