package media

import (
	"context"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"scenemedia/be/internal/logging"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type ServiceImpl struct {
	store    ObjectStore
	recorder Recorder
	logger   logging.Logger
}

var _ Service = (*ServiceImpl)(nil)

// NewServiceImpl creates the upload service. A nil store makes every upload fail with
// ErrStorageNotConfigured.
func NewServiceImpl(store ObjectStore, recorder Recorder, logger logging.Logger) *ServiceImpl {
	return &ServiceImpl{store: store, recorder: recorder, logger: logging.OrDiscard(logger)}
}

func (s *ServiceImpl) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}
	if req.Body == nil {
		return nil, ErrNoFile
	}
	if req.Filename == "" {
		return nil, ErrEmptyFilename
	}

	name := uuid.NewString() + "-" + SecureFilename(req.Filename)
	publicURL, err := s.store.Put(ctx, name, req.ContentType, req.Body)
	if s.recorder != nil {
		s.recorder.UploadCompleted(err == nil)
	}
	if err != nil {
		s.logger.WithError(err).WithField("object", name).Error("upload to object storage failed")
		return nil, err
	}

	s.logger.WithField("object", name).Info("media uploaded")
	return &UploadResponse{ImageURL: publicURL}, nil
}

// SecureFilename reduces a client supplied name to a safe ASCII base name.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}
