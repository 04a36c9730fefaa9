package server

import (
	"context"
	"io"
)

// DevPages wraps a PageSource and appends the live-reload client script
// to every rendered page. It is installed in front of the configured
// source in development mode so browsers reconnect to ReloadPath.
type DevPages struct {
	source PageSource
}

// NewDevPages creates a script-injecting wrapper around source.
func NewDevPages(source PageSource) *DevPages {
	return &DevPages{source: source}
}

// Render renders the page through the wrapped source and, on success,
// appends the reload client script.
func (d *DevPages) Render(ctx context.Context, w io.Writer, identifier string, data PageData) error {
	if err := d.source.Render(ctx, w, identifier, data); err != nil {
		return err
	}
	_, err := io.WriteString(w, ReloadClientScript)
	return err
}
