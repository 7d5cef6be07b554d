package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"scenemedia/be/internal/provider"
)

var (
	// ErrMissingQuery is returned when the scene text is empty.
	ErrMissingQuery = errors.New("missing search query")

	// ErrUpstreamUnavailable is returned when neither the image nor the video branch produced a result.
	ErrUpstreamUnavailable = errors.New("media provider unavailable")

	// ErrNotConfigured is returned when no provider API key is set.
	ErrNotConfigured = errors.New("media search not configured")
)

// Service runs one scene search.
type Service interface {
	Search(ctx context.Context, req Request) (*CombinedResult, error)
}

// Fetcher performs a single bounded-retry provider call.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string, params url.Values) (*provider.Result, error)
}

// Recorder observes orchestration outcomes. monitoring.SearchMetrics implements it.
type Recorder interface {
	BranchCompleted(branch string, ok bool, items int)
	QueryDerived(extracted bool)
}

type Orientation string

const (
	OrientationAll        Orientation = "all"
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// ParseOrientation is case-insensitive; anything unknown becomes OrientationAll.
func ParseOrientation(s string) Orientation {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case OrientationHorizontal, OrientationVertical:
		return o
	default:
		return OrientationAll
	}
}

// Request is an immutable search request.
type Request struct {
	SceneText   string
	Orientation Orientation
}

// NewRequest builds a Request from raw parameters, coercing the orientation.
func NewRequest(sceneText, orientation string) Request {
	return Request{SceneText: sceneText, Orientation: ParseOrientation(orientation)}
}

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaItem is the provider-independent record returned to callers.
type MediaItem struct {
	MediaType      MediaType                  `json:"media_type"`
	PreviewURL     string                     `json:"preview_url"`
	ContentURL     string                     `json:"content_url"`
	Tags           string                     `json:"tags"`
	Author         string                     `json:"author"`
	ProviderFields map[string]json.RawMessage `json:"provider_fields,omitempty"`
}

type CombinedResult struct {
	TotalHits int         `json:"total_hits"`
	Items     []MediaItem `json:"items"`
}
