package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(maxRetries int) Config {
	return Config{MaxRetries: maxRetries, BaseDelay: time.Millisecond, Timeout: time.Second}
}

type failingTransport struct {
	attempts int32
}

func (f *failingTransport) RoundTrip(_ *http.Request) (*http.Response, error) {
	atomic.AddInt32(&f.attempts, 1)
	return nil, errors.New("connection refused")
}

func TestClient_FetchSuccess(t *testing.T) {
	errCh := make(chan error, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "px-key" {
			errCh <- fmt.Errorf("expected key px-key, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "lago amanecer" {
			errCh <- fmt.Errorf("expected query, got %q", got)
		}
		_, _ = w.Write([]byte(`{"total": 2, "totalHits": 2, "hits": [{"id": 1, "tags": "lake"}, {"id": 2}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(3), nil)
	res, err := client.Fetch(context.Background(), server.URL, Query{APIKey: "px-key", Text: "lago amanecer"}.Values())
	require.NoError(t, err)

	select {
	case err := <-errCh:
		t.Fatalf("handler error: %v", err)
	default:
	}

	assert.Equal(t, 2, res.TotalCount)
	require.Len(t, res.Items, 2)
	assert.JSONEq(t, `"lake"`, string(res.Items[0]["tags"]))
}

func TestClient_FetchEmptyResultIsNotRetried(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&attempts, 1)
		_, _ = w.Write([]byte(`{"total": 0, "totalHits": 0, "hits": []}`))
	}))
	defer server.Close()

	res, err := NewClient(testConfig(3), nil).Fetch(context.Background(), server.URL, url.Values{})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_FetchConnectionErrorsUseEveryAttempt(t *testing.T) {
	for _, maxRetries := range []int{1, 3, 5} {
		t.Run(fmt.Sprintf("max_retries=%d", maxRetries), func(t *testing.T) {
			transport := &failingTransport{}
			cfg := testConfig(maxRetries)
			cfg.HTTPClient = &http.Client{Transport: transport}

			res, err := NewClient(cfg, nil).Fetch(context.Background(), "http://provider.invalid/api/", url.Values{"key": {"secret"}})
			assert.Nil(t, res)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnavailable)
			assert.NotContains(t, err.Error(), "secret")
			assert.Equal(t, int32(maxRetries), atomic.LoadInt32(&transport.attempts))
		})
	}
}

func TestClient_FetchRetriesErrorStatuses(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		wantErr  bool
		attempts int32
	}{
		{name: "recovers after server error", statuses: []int{http.StatusInternalServerError, http.StatusOK}, attempts: 2},
		{name: "recovers after rate limit", statuses: []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusOK}, attempts: 3},
		{name: "client errors exhaust retries", statuses: []int{http.StatusBadRequest, http.StatusBadRequest, http.StatusBadRequest}, wantErr: true, attempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				n := atomic.AddInt32(&attempts, 1)
				status := tt.statuses[n-1]
				if status != http.StatusOK {
					w.WriteHeader(status)
					return
				}
				_, _ = w.Write([]byte(`{"totalHits": 1, "hits": [{"id": 7}]}`))
			}))
			defer server.Close()

			res, err := NewClient(testConfig(3), nil).Fetch(context.Background(), server.URL, url.Values{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnavailable)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Len(t, res.Items, 1)
			}
			assert.Equal(t, tt.attempts, atomic.LoadInt32(&attempts))
		})
	}
}

func TestClient_FetchMalformedIsNotRetried(t *testing.T) {
	bodies := []string{`not json`, `{"totalHits": 3}`, `{"hits": "nope"}`}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			var attempts int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&attempts, 1)
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			res, err := NewClient(testConfig(3), nil).Fetch(context.Background(), server.URL, url.Values{})
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
		})
	}
}

func TestClient_FetchAttemptTimeout(t *testing.T) {
	release := make(chan struct{})
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := Config{MaxRetries: 2, BaseDelay: time.Millisecond, Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := NewClient(cfg, nil).Fetch(context.Background(), server.URL, url.Values{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestQuery_Values(t *testing.T) {
	v := Query{
		APIKey:      "k",
		Text:        "sea",
		Language:    "es",
		PageSize:    25,
		Orientation: "vertical",
		Extra:       map[string]string{"image_type": "photo"},
	}.Values()

	assert.Equal(t, "k", v.Get("key"))
	assert.Equal(t, "sea", v.Get("q"))
	assert.Equal(t, "es", v.Get("lang"))
	assert.Equal(t, "25", v.Get("per_page"))
	assert.Equal(t, "vertical", v.Get("orientation"))
	assert.Equal(t, "photo", v.Get("image_type"))

	assert.Equal(t, "3", Query{PageSize: 1}.Values().Get("per_page"))
	assert.Equal(t, "200", Query{PageSize: 500}.Values().Get("per_page"))
	assert.False(t, Query{}.Values().Has("orientation"))
}

func TestNormalizeConfig(t *testing.T) {
	cfg := normalizeConfig(Config{})
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultBaseDelay, cfg.BaseDelay)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)

	cfg = normalizeConfig(Config{BaseDelay: -time.Second})
	assert.Equal(t, DefaultBaseDelay, cfg.BaseDelay)
}
