package server

import (
	"context"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrPageNotFound is returned by a PageSource when no page exists for
// the requested identifier.
var ErrPageNotFound = errors.New("page not found")

// PageSource renders pages by identifier. Identifiers are
// root-relative paths like "posts/index.html"; sources must never
// interpret them as filesystem paths without validation.
type PageSource interface {
	Render(ctx context.Context, w io.Writer, identifier string, data PageData) error
}

// DiskPages serves pages from a directory tree. Each page is an
// html/template file whose path relative to the root equals its
// identifier.
type DiskPages struct {
	root  string
	cache bool

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewDiskPages creates a page source rooted at dir. When cache is true,
// parsed templates are reused across requests; leave it false in
// development so edits are picked up immediately.
func NewDiskPages(dir string, cache bool) *DiskPages {
	return &DiskPages{
		root:      dir,
		cache:     cache,
		templates: make(map[string]*template.Template),
	}
}

func (p *DiskPages) Render(ctx context.Context, w io.Writer, identifier string, data PageData) error {
	tmpl, err := p.lookup(identifier)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

func (p *DiskPages) lookup(identifier string) (*template.Template, error) {
	if p.cache {
		p.mu.RLock()
		tmpl, ok := p.templates[identifier]
		p.mu.RUnlock()
		if ok {
			return tmpl, nil
		}
	}

	// Identifiers come out of the router already sanitized, but the
	// source is usable standalone so the path is validated again here.
	if !fs.ValidPath(identifier) {
		return nil, ErrPageNotFound
	}

	tmpl, err := template.ParseFiles(filepath.Join(p.root, filepath.FromSlash(identifier)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if p.cache {
		p.mu.Lock()
		p.templates[identifier] = tmpl
		p.mu.Unlock()
	}
	return tmpl, nil
}
