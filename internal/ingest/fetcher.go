package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avolkov/chainsage/internal/cache"
	"github.com/avolkov/chainsage/internal/model"
)

// Fetcher retrieves remote documents with a size cap, robots.txt
// compliance and an optional fetch cache
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker // nil disables robots checking
	cache      cache.Cache    // nil disables caching
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher. robots and fetchCache may be nil.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, robots *RobotsChecker, fetchCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		robots:    robots,
		cache:     fetchCache,
		cacheTTL:  cacheTTL,
	}
}

// FetchResult contains the fetched document and its metadata
type FetchResult struct {
	Body     []byte          `json:"body"`
	Meta     model.FetchMeta `json:"meta"`
	FinalURL string          `json:"final_url"`
}

// Fetch retrieves the document at rawURL, honoring robots.txt and the
// fetch cache
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.cache != nil {
		if data, found := f.cache.Get(cache.Key(rawURL)); found {
			var cached FetchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("robots.txt disallows fetching %s", rawURL)
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,text/plain,application/json;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result := &FetchResult{
		Body: body,
		Meta: model.FetchMeta{
			StatusCode:   resp.StatusCode,
			ContentType:  resp.Header.Get("Content-Type"),
			LastModified: resp.Header.Get("Last-Modified"),
			ETag:         resp.Header.Get("ETag"),
		},
		FinalURL: resp.Request.URL.String(),
	}

	if f.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = f.cache.Set(cache.Key(rawURL), data, f.cacheTTL)
		}
	}

	return result, nil
}
