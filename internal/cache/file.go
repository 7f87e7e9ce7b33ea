package cache

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

// DefaultTTL is how long a cached model list counts as fresh.
const DefaultTTL = time.Hour

// DefaultFileName is the cache file name inside the cache directory.
const DefaultFileName = "models.txt"

// FileCache stores the model list as pipe-delimited lines:
//
//	identifier|inputPrice|outputPrice
//
// Freshness comes from the file's modification time.
type FileCache struct {
	path     string
	ttl      time.Duration
	prefixes []string
	now      func() time.Time
}

// Option configures a FileCache.
type Option func(*FileCache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *FileCache) { c.ttl = ttl }
}

// WithCodingPrefixes overrides catalog.CodingPrefixes for ordering reads.
func WithCodingPrefixes(prefixes []string) Option {
	return func(c *FileCache) { c.prefixes = prefixes }
}

// WithClock sets the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(c *FileCache) { c.now = now }
}

// New creates a cache backed by dir/DefaultFileName. The directory is
// created lazily on the first write.
func New(dir string, opts ...Option) *FileCache {
	c := &FileCache{
		path:     filepath.Join(dir, DefaultFileName),
		ttl:      DefaultTTL,
		prefixes: catalog.CodingPrefixes,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the cache file location.
func (c *FileCache) Path() string { return c.path }

// Exists reports whether the cache file is present, fresh or not.
func (c *FileCache) Exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

// IsFresh reports whether the cache file exists and is younger than the TTL.
func (c *FileCache) IsFresh() bool {
	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}
	return c.now().Sub(info.ModTime()) < c.ttl
}

// Read loads the cached models, coding models first. It returns false when
// the file is missing, unreadable, or has no valid lines.
func (c *FileCache) Read() (catalog.Catalog, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var models []catalog.Model
	for _, line := range strings.Split(string(data), "\n") {
		if m, ok := ParseLine(line); ok {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		return nil, false
	}
	return catalog.Partition(models, c.prefixes), true
}

// Write replaces the cache file with lines. The data goes to a temporary
// file first so a failed write leaves the previous cache intact.
func (c *FileCache) Write(lines []string) error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".models-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(strings.Join(lines, "\n")); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("replacing cache: %w", err)
	}
	return nil
}

// FormatLine renders a model as a cache line.
func FormatLine(m catalog.Model) string {
	return m.ID + "|" + formatFloat(m.InputPrice) + "|" + formatFloat(m.OutputPrice)
}

// ParseLine parses one cache line. Lines without exactly three non-empty
// fields, or with prices that are not finite non-negative numbers, are
// rejected.
func ParseLine(line string) (catalog.Model, bool) {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) != 3 {
		return catalog.Model{}, false
	}
	for _, f := range fields {
		if f == "" {
			return catalog.Model{}, false
		}
	}
	in, ok := parsePrice(fields[1])
	if !ok {
		return catalog.Model{}, false
	}
	out, ok := parsePrice(fields[2])
	if !ok {
		return catalog.Model{}, false
	}
	return catalog.Model{ID: fields[0], InputPrice: in, OutputPrice: out}, true
}

func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
