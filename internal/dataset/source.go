package dataset

import (
	"context"
	"errors"
)

// ErrNoSource is returned when neither a file nor a URL is configured
var ErrNoSource = errors.New("no dataset file or url configured")

// Source fetches a fresh copy of the table from a local file or a URL. The
// file wins when both are set.
type Source struct {
	loader *Loader
	url    string
	file   string
}

// NewSource creates a Source
func NewSource(loader *Loader, url, file string) *Source {
	return &Source{loader: loader, url: url, file: file}
}

// FetchTable reads the configured source
func (s *Source) FetchTable(ctx context.Context) (*Table, error) {
	switch {
	case s.file != "":
		return s.loader.LoadFile(s.file)
	case s.url != "":
		return s.loader.Fetch(ctx, s.url)
	default:
		return nil, ErrNoSource
	}
}
