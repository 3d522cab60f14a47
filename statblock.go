// Package statblock imports a creature statistics record from a single
// rules-reference web page. Given a page URL it retrieves the page directly
// or through a mirrored text rendering, runs a layered set of field
// heuristics over the result, and returns one canonical record.
package statblock

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/statblock/internal/extract"
	"github.com/hyperifyio/statblock/internal/fetch"
	"github.com/hyperifyio/statblock/record"
)

var (
	// ErrInvalidInput reports a URL that could not be parsed or carries a
	// non-HTTP scheme. Raised before any network I/O.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRetrievalFailed reports that both the direct and the mirror
	// retrieval route were exhausted.
	ErrRetrievalFailed = errors.New("retrieval failed")
	// ErrParseFailure reports that retrieval succeeded but the page yielded
	// no name, no level, and no hit points.
	ErrParseFailure = errors.New("parse failure")
)

// Importer turns page URLs into statistics records.
type Importer struct {
	client *fetch.Client
}

// New builds an Importer. The zero-value Config is usable.
func New(cfg Config) *Importer {
	cfg = cfg.withDefaults()
	return &Importer{client: &fetch.Client{
		HTTPClient:        cfg.HTTPClient,
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: cfg.PerRequestTimeout,
		MirrorPrefix:      cfg.MirrorPrefix,
	}}
}

// ImportFromLink retrieves the page at rawURL and extracts its statistics
// record. The record is fully normalized before return; partial records are
// never surfaced.
func (im *Importer) ImportFromLink(ctx context.Context, rawURL string) (*record.Record, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: unsupported URL %q", ErrInvalidInput, rawURL)
	}

	page, err := im.client.Fetch(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	var rec record.Record
	switch page.Kind {
	case fetch.KindHTML:
		rec = extract.FromHTML(page.Body)
	default:
		rec = extract.FromText(page.Body)
	}
	if rec.Empty() {
		return nil, fmt.Errorf("%w: nothing recognizable at %q", ErrParseFailure, rawURL)
	}
	log.Debug().Str("url", rawURL).Str("name", rec.Name).Int("attacks", len(rec.Attacks)).Msg("imported record")
	out := record.Normalize(rec)
	return &out, nil
}
