package media

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"
)

// CheckKind selects which kind of media a URL is expected to serve
type CheckKind string

const (
	CheckImage CheckKind = "image"
	CheckVideo CheckKind = "video"
)

// CheckResult is the advisory outcome of a URL probe. Validation never
// errors: timeouts and unreachable hosts resolve to Valid=false. Stale marks
// results superseded by a later check of the same field.
type CheckResult struct {
	FieldID string `json:"fieldId"`
	URL     string `json:"url"`
	Valid   bool   `json:"valid"`
	Stale   bool   `json:"stale"`
}

// URLChecker probes image/video URLs with a bounded timeout. Checks on the
// same field are correlated latest-value-wins: an earlier probe that finishes
// after a newer one was issued comes back marked stale.
type URLChecker struct {
	client  *http.Client
	timeout time.Duration
	seq     map[string]uint64
	mu      sync.Mutex
}

// NewURLChecker creates a checker with the given probe timeout
func NewURLChecker(timeout time.Duration) *URLChecker {
	return &URLChecker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		seq:     make(map[string]uint64),
	}
}

// Check probes a URL and reports whether it serves the expected media kind.
// Always returns within the timeout.
func (c *URLChecker) Check(ctx context.Context, kind CheckKind, fieldID, rawURL string) CheckResult {
	c.mu.Lock()
	c.seq[fieldID]++
	issued := c.seq[fieldID]
	c.mu.Unlock()

	result := CheckResult{FieldID: fieldID, URL: rawURL}
	result.Valid = c.probe(ctx, kind, rawURL)

	c.mu.Lock()
	result.Stale = c.seq[fieldID] != issued
	c.mu.Unlock()

	return result
}

func (c *URLChecker) probe(ctx context.Context, kind CheckKind, rawURL string) bool {
	if rawURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Some hosts reject HEAD; retry as a GET we discard immediately.
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return false
		}
		resp, err = c.client.Do(req)
		if err != nil {
			return false
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return false
	}

	contentType := resp.Header.Get("Content-Type")
	switch kind {
	case CheckImage:
		return strings.HasPrefix(contentType, "image/")
	case CheckVideo:
		// Video URLs are often embed pages (YouTube, Vimeo), so any
		// successful response counts.
		return true
	default:
		return false
	}
}
