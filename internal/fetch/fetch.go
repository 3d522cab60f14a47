// Package fetch retrieves a reference page over HTTP. The direct route is
// tried first; when it fails or returns a non-success status, exactly one
// mirrored text-rendering route is attempted before giving up.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Kind classifies the retrieved payload.
type Kind string

const (
	KindHTML Kind = "html"
	KindText Kind = "text"
)

// Page is the retrieved content of one URL.
type Page struct {
	Kind Kind
	Body string
}

// ErrAllRoutesFailed reports that both the direct and the mirror route were
// exhausted.
var ErrAllRoutesFailed = errors.New("all retrieval routes failed")

// Client wraps http.Client with a user agent, a per-request timeout, and a
// mirror prefix for the fallback route.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each request. Zero means no extra bound
	// beyond the context.
	PerRequestTimeout time.Duration
	// MirrorPrefix is prepended to the target URL to form the mirrored
	// text-rendering fallback URL.
	MirrorPrefix string
}

// Fetch retrieves rawURL, attempting the direct route and then at most one
// mirror route. The two routes are never attempted concurrently.
func (c *Client) Fetch(ctx context.Context, rawURL string) (Page, error) {
	page, directErr := c.get(ctx, rawURL, false)
	if directErr == nil {
		return page, nil
	}
	if c.MirrorPrefix == "" {
		return Page{}, fmt.Errorf("%w: direct: %v", ErrAllRoutesFailed, directErr)
	}
	log.Debug().Err(directErr).Str("url", rawURL).Msg("direct retrieval failed; trying mirror")
	page, mirrorErr := c.get(ctx, c.MirrorPrefix+rawURL, true)
	if mirrorErr == nil {
		return page, nil
	}
	log.Warn().Err(mirrorErr).Str("url", rawURL).Msg("mirror retrieval failed")
	return Page{}, fmt.Errorf("%w: direct: %v; mirror: %v", ErrAllRoutesFailed, directErr, mirrorErr)
}

func (c *Client) get(ctx context.Context, target string, mirrored bool) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return Page{}, fmt.Errorf("unsupported URL scheme: %q", target)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return Page{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("read body: %w", err)
	}
	return Page{Kind: classify(resp.Header.Get("Content-Type"), b, mirrored), Body: string(b)}, nil
}

// classify derives the payload kind from the Content-Type header when it is
// decisive, sniffing the body otherwise. Mirrored content defaults to text.
func classify(contentType string, body []byte, mirrored bool) Kind {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "text/html"), strings.HasPrefix(ct, "application/xhtml+xml"):
		return KindHTML
	case strings.HasPrefix(ct, "text/plain"):
		return KindText
	}
	if mirrored {
		return KindText
	}
	if strings.HasPrefix(strings.TrimSpace(string(body)), "<") {
		return KindHTML
	}
	return KindText
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
