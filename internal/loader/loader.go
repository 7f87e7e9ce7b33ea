package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

// Source tells where a loaded catalog came from.
type Source int

const (
	SourceCache      Source = iota // Fresh cache file
	SourceRemote                   // Fetched from the API and re-read from cache
	SourceStaleCache               // Expired cache, used because the fetch failed
	SourceBuiltin                  // Hardcoded fallback list
)

func (s Source) String() string {
	switch s {
	case SourceCache:
		return "cache"
	case SourceRemote:
		return "remote"
	case SourceStaleCache:
		return "stale cache"
	case SourceBuiltin:
		return "built-in"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Notice returns the message shown to the user for degraded sources.
func (s Source) Notice() string {
	switch s {
	case SourceStaleCache:
		return "Using cached model list (may be outdated)"
	case SourceBuiltin:
		return "Using built-in model list"
	default:
		return ""
	}
}

// Store is the on-disk model cache.
type Store interface {
	IsFresh() bool
	Exists() bool
	Read() (catalog.Catalog, bool)
	Write(lines []string) error
}

// Fetcher downloads the model list as cache lines.
type Fetcher interface {
	FetchModels(ctx context.Context) ([]string, error)
}

// Loader resolves the model catalog through fresh cache, remote fetch,
// stale cache, and the built-in list, in that order.
type Loader struct {
	store    Store
	fetcher  Fetcher
	fallback catalog.Catalog
	status   func(string)
}

// Option configures a Loader.
type Option func(*Loader)

// WithFallback overrides catalog.Fallback().
func WithFallback(fb catalog.Catalog) Option {
	return func(l *Loader) { l.fallback = fb }
}

// WithStatus sets a callback for progress messages about the fetch.
func WithStatus(fn func(string)) Option {
	return func(l *Loader) { l.status = fn }
}

// New creates a Loader.
func New(store Store, fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{
		store:    store,
		fetcher:  fetcher,
		fallback: catalog.Fallback(),
		status:   func(string) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns a non-empty catalog. It never fails: each tier that cannot
// produce models falls through to the next one.
func (l *Loader) Load(ctx context.Context, forceRefresh bool) (catalog.Catalog, Source) {
	// 1. Fresh cache
	if !forceRefresh && l.store.IsFresh() {
		if cat, ok := l.store.Read(); ok {
			slog.Debug("model list loaded", "source", SourceCache, "models", len(cat))
			return cat, SourceCache
		}
	}

	// 2. Remote fetch
	if l.fetch(ctx) {
		if cat, ok := l.store.Read(); ok {
			slog.Debug("model list loaded", "source", SourceRemote, "models", len(cat))
			return cat, SourceRemote
		}
	}

	// 3. Stale cache
	if l.store.Exists() {
		if cat, ok := l.store.Read(); ok {
			slog.Debug("model list loaded", "source", SourceStaleCache, "models", len(cat))
			return cat, SourceStaleCache
		}
	}

	// 4. Built-in list
	slog.Debug("model list loaded", "source", SourceBuiltin, "models", len(l.fallback))
	return append(catalog.Catalog(nil), l.fallback...), SourceBuiltin
}

func (l *Loader) fetch(ctx context.Context) bool {
	if l.fetcher == nil {
		return false
	}

	l.status("Fetching models from OpenRouter...")
	lines, err := l.fetcher.FetchModels(ctx)
	if err != nil {
		slog.Warn("model fetch failed", "error", err)
		l.status("Failed to fetch models from API")
		return false
	}

	// A failed write still lets the caller re-read whatever cache exists.
	if err := l.store.Write(lines); err != nil {
		slog.Warn("writing model cache failed", "error", err)
		return true
	}
	l.status(fmt.Sprintf("Model list updated (%d models)", len(lines)))
	return true
}
