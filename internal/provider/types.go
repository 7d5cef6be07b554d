package provider

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
)

var (
	// ErrUnavailable is returned once every attempt against an endpoint has failed.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrMalformedResponse marks a 2xx response whose body is not the expected shape.
	// It is never retried.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Record is one provider-native hit, kept as raw JSON so unknown fields pass through.
type Record map[string]json.RawMessage

// Result is a parsed provider response.
type Result struct {
	Items      []Record
	TotalCount int
}

type response struct {
	Total     int      `json:"total"`
	TotalHits int      `json:"totalHits"`
	Hits      []Record `json:"hits"`
}

// Page size bounds accepted by the provider.
const (
	MinPageSize = 3
	MaxPageSize = 200
)

// Query holds the parameters shared by the image and video endpoints.
type Query struct {
	APIKey      string
	Text        string
	Language    string
	PageSize    int
	Orientation string
	// Extra carries endpoint specific parameters such as image_type.
	Extra map[string]string
}

// Values encodes the query the way the provider expects it on the URL.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("key", q.APIKey)
	v.Set("q", q.Text)
	if q.Language != "" {
		v.Set("lang", q.Language)
	}
	if q.PageSize > 0 {
		v.Set("per_page", strconv.Itoa(clampPageSize(q.PageSize)))
	}
	if q.Orientation != "" {
		v.Set("orientation", q.Orientation)
	}
	for k, val := range q.Extra {
		v.Set(k, val)
	}
	return v
}

func clampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}
