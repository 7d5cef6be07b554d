package media

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const publicURLPattern = "https://storage.googleapis.com/%s/%s"

// GCSStore stores objects in a Google Cloud Storage bucket and makes them world readable.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore builds a store from service account JSON.
func NewGCSStore(ctx context.Context, bucket, credentialsJSON string) (*GCSStore, error) {
	if bucket == "" || credentialsJSON == "" {
		return nil, ErrStorageNotConfigured
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (g *GCSStore) Put(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	obj := g.client.Bucket(g.bucket).Object(name)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("make object public: %w", err)
	}

	return fmt.Sprintf(publicURLPattern, g.bucket, url.PathEscape(name)), nil
}

func (g *GCSStore) Close() error {
	return g.client.Close()
}
