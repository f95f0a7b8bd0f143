// Package launcher opens bookmarks in the user's browser.
package launcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/cli/browser"

	"github.com/nikbrunner/bmdeck/internal/model"
)

// Launcher opens one URL in a new browser tab.
type Launcher interface {
	Open(url string) error
}

// BrowserLauncher opens URLs with the system browser.
type BrowserLauncher struct{}

// NewBrowserLauncher returns a launcher that keeps the browser's own output
// off the terminal.
func NewBrowserLauncher() BrowserLauncher {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserLauncher{}
}

// Open launches url.
func (BrowserLauncher) Open(url string) error {
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// Func adapts a function to Launcher.
type Func func(url string) error

// Open calls f.
func (f Func) Open(url string) error { return f(url) }

// OpenAll opens every bookmark in order. A failure does not stop the rest;
// all failures are returned joined.
func OpenAll(l Launcher, bookmarks []model.Bookmark) error {
	var errs []error
	for _, b := range bookmarks {
		if b.URL == "" {
			continue
		}
		if err := l.Open(b.URL); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
