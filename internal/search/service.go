package search

import (
	"context"
	"math/rand"
	"strings"

	"golang.org/x/sync/errgroup"

	"scenemedia/be/internal/keyword"
	"scenemedia/be/internal/logging"
	"scenemedia/be/internal/provider"
)

// Branch labels used in logs and metrics.
const (
	BranchImage = "image"
	BranchVideo = "video"
)

// Config describes the provider endpoints. PageSize is the combined volume; each branch
// asks for half of it.
type Config struct {
	APIKey   string
	ImageURL string
	VideoURL string
	Language string
	PageSize int
}

// ShuffleFunc permutes n elements through swap, with the rand.Shuffle signature.
type ShuffleFunc func(n int, swap func(i, j int))

type Option func(*ServiceImpl)

// WithShuffle replaces the random permutation, e.g. with a seeded source in tests.
func WithShuffle(shuffle ShuffleFunc) Option {
	return func(s *ServiceImpl) {
		if shuffle != nil {
			s.shuffle = shuffle
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *ServiceImpl) {
		s.recorder = recorder
	}
}

// ServiceImpl coordinates keyword extraction, the two provider calls and the merge.
// It holds no per-request state and is safe for concurrent use.
type ServiceImpl struct {
	extractor keyword.Extractor
	fetcher   Fetcher
	config    Config
	shuffle   ShuffleFunc
	recorder  Recorder
	logger    logging.Logger
}

var _ Service = (*ServiceImpl)(nil)

func NewServiceImpl(extractor keyword.Extractor, fetcher Fetcher, config Config, logger logging.Logger, opts ...Option) *ServiceImpl {
	s := &ServiceImpl{
		extractor: extractor,
		fetcher:   fetcher,
		config:    config,
		shuffle:   rand.Shuffle,
		logger:    logging.OrDiscard(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ServiceImpl) Search(ctx context.Context, req Request) (*CombinedResult, error) {
	if strings.TrimSpace(req.SceneText) == "" {
		return nil, ErrMissingQuery
	}
	orientation := ParseOrientation(string(req.Orientation))

	if s.config.APIKey == "" {
		s.logger.Error("media provider API key is not configured")
		return nil, ErrNotConfigured
	}

	query, extracted := keyword.Derive(ctx, s.extractor, req.SceneText)
	if s.recorder != nil {
		s.recorder.QueryDerived(extracted)
	}
	s.logger.WithFields(logging.Fields{
		"query":       query,
		"extracted":   extracted,
		"orientation": orientation,
	}).Info("derived search query")

	perBranch := s.config.PageSize / 2
	imageQuery := provider.Query{
		APIKey:      s.config.APIKey,
		Text:        query,
		Language:    s.config.Language,
		PageSize:    perBranch,
		Orientation: string(orientation),
		Extra:       map[string]string{"image_type": "photo"},
	}
	// The video endpoint has no orientation filter.
	videoQuery := provider.Query{
		APIKey:   s.config.APIKey,
		Text:     query,
		Language: s.config.Language,
		PageSize: perBranch,
	}

	// Each branch writes only its own variable; the group never cancels the sibling.
	var imageRes, videoRes *provider.Result
	var g errgroup.Group
	g.Go(func() error {
		imageRes = s.fetchBranch(ctx, BranchImage, s.config.ImageURL, imageQuery)
		return nil
	})
	g.Go(func() error {
		videoRes = s.fetchBranch(ctx, BranchVideo, s.config.VideoURL, videoQuery)
		return nil
	})
	_ = g.Wait()

	if imageRes == nil && videoRes == nil {
		s.logger.WithField("query", query).Error("both provider branches failed")
		return nil, ErrUpstreamUnavailable
	}

	items := merge(imageRes, videoRes)
	s.shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	return &CombinedResult{TotalHits: len(items), Items: items}, nil
}

// fetchBranch returns nil when the branch failed; the failure is logged, not propagated.
func (s *ServiceImpl) fetchBranch(ctx context.Context, branch, endpoint string, q provider.Query) *provider.Result {
	res, err := s.fetcher.Fetch(ctx, endpoint, q.Values())
	if err != nil {
		s.logger.WithFields(logging.Fields{
			"branch": branch,
			"error":  err.Error(),
		}).Warn("provider branch failed")
		if s.recorder != nil {
			s.recorder.BranchCompleted(branch, false, 0)
		}
		return nil
	}
	if s.recorder != nil {
		s.recorder.BranchCompleted(branch, true, len(res.Items))
	}
	return res
}

func merge(images, videos *provider.Result) []MediaItem {
	var size int
	if images != nil {
		size += len(images.Items)
	}
	if videos != nil {
		size += len(videos.Items)
	}

	items := make([]MediaItem, 0, size)
	if images != nil {
		for _, record := range images.Items {
			items = append(items, NormalizeImage(record))
		}
	}
	if videos != nil {
		for _, record := range videos.Items {
			items = append(items, NormalizeVideo(record))
		}
	}
	return items
}

