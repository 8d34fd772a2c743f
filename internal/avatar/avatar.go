// Package avatar resolves author names to image references.
//
// Resolution happens off the render path: Preload fills the map in the
// background and renderers read snapshots through AuthorImageMap. A name that
// has not been resolved, or has no image, is simply missing from the map.
package avatar

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// gravatarBase is the avatar endpoint used for authors with an email.
const gravatarBase = "https://www.gravatar.com/avatar/"

// preloadLimit bounds the number of concurrent lookups.
const preloadLimit = 8

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Map maps author names to image references. A nil Map is valid and empty.
type Map map[string]string

// Lookup returns the image reference for name, if any.
func (m Map) Lookup(name string) (string, bool) {
	ref, ok := m[name]
	return ref, ok && ref != ""
}

// Author identifies someone to resolve an image for.
type Author struct {
	Name  string
	Email string
}

type Option func(*Preloader)

// WithDir looks for <name>.<ext> or <email>.<ext> files in dir.
func WithDir(dir string) Option {
	return func(p *Preloader) {
		p.dir = dir
	}
}

// WithGravatar falls back to a gravatar URL built from the author's email.
func WithGravatar(enabled bool) Option {
	return func(p *Preloader) {
		p.gravatar = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Preloader) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Preloader resolves and caches author images. It is safe for concurrent use.
type Preloader struct {
	dir      string
	gravatar bool
	logger   *slog.Logger

	mu     sync.RWMutex
	images Map
}

func NewPreloader(opts ...Option) *Preloader {
	p := &Preloader{
		logger: slog.New(slog.DiscardHandler),
		images: Map{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthorImageMap returns a snapshot of the images resolved so far.
func (p *Preloader) AuthorImageMap() Map {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(Map, len(p.images))
	for k, v := range p.images {
		out[k] = v
	}
	return out
}

// Preload resolves every author not already known. It returns the number of
// images added.
func (p *Preloader) Preload(ctx context.Context, authors []Author) (int, error) {
	p.mu.RLock()
	pending := make([]Author, 0, len(authors))
	for _, a := range authors {
		if _, ok := p.images[a.Name]; !ok && a.Name != "" {
			pending = append(pending, a)
		}
	}
	p.mu.RUnlock()

	var (
		mu       sync.Mutex
		resolved = make(Map, len(pending))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadLimit)
	for _, a := range pending {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref, ok := p.resolve(a)
			if !ok {
				return nil
			}
			mu.Lock()
			resolved[a.Name] = ref
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	p.mu.Lock()
	for name, ref := range resolved {
		p.images[name] = ref
	}
	p.mu.Unlock()

	p.logger.Debug("author images preloaded", "requested", len(pending), "resolved", len(resolved))
	return len(resolved), err
}

func (p *Preloader) resolve(a Author) (string, bool) {
	if p.dir != "" {
		candidates := []string{a.Name}
		if a.Email != "" {
			candidates = append(candidates, a.Email)
		}
		for _, base := range candidates {
			for _, ext := range imageExtensions {
				path := filepath.Join(p.dir, base+ext)
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					abs, err := filepath.Abs(path)
					if err != nil {
						abs = path
					}
					return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), true
				}
			}
		}
	}
	if p.gravatar && a.Email != "" {
		return GravatarURL(a.Email), true
	}
	return "", false
}

// GravatarURL returns the gravatar image URL for an email address.
func GravatarURL(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return gravatarBase + hex.EncodeToString(sum[:]) + "?d=identicon"
}
