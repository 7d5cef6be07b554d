package media

import (
	"context"
	"errors"
	"io"
)

var (
	ErrStorageNotConfigured = errors.New("storage not configured")
	ErrNoFile               = errors.New("no file part in request")
	ErrEmptyFilename        = errors.New("no file selected")
)

type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
}

// ObjectStore writes a public object and returns its URL.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, body io.Reader) (string, error)
}

// Recorder observes upload outcomes. monitoring.SearchMetrics implements it.
type Recorder interface {
	UploadCompleted(ok bool)
}

type UploadRequest struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
