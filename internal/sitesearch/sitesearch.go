// Package sitesearch defines the website search collaborator. The crawler
// and index live outside this service; when none is attached the Disabled
// implementation reports that plainly instead of failing the caller.
package sitesearch

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by the Disabled searcher for every query.
var ErrNotConfigured = errors.New("sitesearch: no search backend configured")

// SearchHit is one matching page.
type SearchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// Searcher answers free-text queries against the clinic website and
// summarizes individual pages.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
	Summarize(ctx context.Context, url string) (string, error)
}

// Disabled is the stand-in searcher used when no backend is wired.
type Disabled struct{}

func (Disabled) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	return nil, ErrNotConfigured
}

func (Disabled) Summarize(ctx context.Context, url string) (string, error) {
	return "", ErrNotConfigured
}
