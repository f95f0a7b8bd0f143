// Package favicon builds favicon service URLs for bookmarks.
package favicon

import (
	"net/url"
	"strconv"

	"github.com/nikbrunner/bmdeck/internal/storage"
)

// Resolver builds icon URLs for page URLs. An empty Endpoint disables icons.
type Resolver struct {
	Endpoint  string
	Size      int
	PageParam string
	SizeParam string
}

// New creates a Resolver from configuration.
func New(cfg storage.FaviconConfig) Resolver {
	return Resolver{
		Endpoint:  cfg.Endpoint,
		Size:      cfg.Size,
		PageParam: cfg.PageParam,
		SizeParam: cfg.SizeParam,
	}
}

// URL returns the icon URL for page, or "" when icons are disabled or page
// is empty.
func (r Resolver) URL(page string) string {
	if r.Endpoint == "" || page == "" {
		return ""
	}
	pageParam, sizeParam := r.PageParam, r.SizeParam
	if pageParam == "" {
		pageParam = "pageUrl"
	}
	if sizeParam == "" {
		sizeParam = "size"
	}

	q := url.Values{}
	q.Set(pageParam, page)
	if r.Size > 0 {
		q.Set(sizeParam, strconv.Itoa(r.Size))
	}
	return r.Endpoint + "?" + q.Encode()
}
