package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir)

	models := []catalog.Model{
		{ID: "amazon/nova-pro", InputPrice: 0.8, OutputPrice: 3.2},
		{ID: "anthropic/claude-sonnet-4", InputPrice: 3, OutputPrice: 15},
		{ID: "cohere/command-r", InputPrice: 0.15, OutputPrice: 0.6},
		{ID: "openai/gpt-4o", InputPrice: 2.5, OutputPrice: 10},
	}
	lines := make([]string, len(models))
	for i, m := range models {
		lines[i] = FormatLine(m)
	}

	require.NoError(t, c.Write(lines))

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, catalog.Catalog{models[1], models[3], models[0], models[2]}, got)
}

func TestReadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := "openai/gpt-4o|2.5|10\n" +
		"\n" +
		"missing-fields|1\n" +
		"too|many|fields|here\n" +
		"|1|2\n" +
		"bad/price|abc|1\n" +
		"neg/price|-1|1\n" +
		"nan/price|NaN|1\n" +
		"empty/price||1\n" +
		"cohere/command-r|0.15|0.6\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0o644))

	got, ok := New(dir).Read()
	require.True(t, ok)
	assert.Equal(t, []string{"openai/gpt-4o", "cohere/command-r"}, got.IDs())
}

func TestReadPastOversizedLine(t *testing.T) {
	dir := t.TempDir()
	content := "openai/gpt-4o|2.5|10\n" +
		strings.Repeat("x", 2<<20) + "\n" +
		"cohere/command-r|0.15|0.6\r\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte(content), 0o644))

	got, ok := New(dir).Read()
	require.True(t, ok)
	assert.Equal(t, []string{"openai/gpt-4o", "cohere/command-r"}, got.IDs())
}

func TestWithCodingPrefixes(t *testing.T) {
	c := New(t.TempDir(), WithCodingPrefixes([]string{"cohere/"}))
	require.NoError(t, c.Write([]string{
		"anthropic/claude-sonnet-4|3|15",
		"cohere/command-r|0.15|0.6",
	}))

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, []string{"cohere/command-r", "anthropic/claude-sonnet-4"}, got.IDs())
}

func TestReadMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	_, ok := c.Read()
	assert.False(t, ok, "missing file")
	assert.False(t, c.Exists())

	require.NoError(t, os.WriteFile(c.Path(), []byte("garbage\nmore garbage\n"), 0o644))
	_, ok = c.Read()
	assert.False(t, ok, "no valid lines")
	assert.True(t, c.Exists())
}

func TestIsFresh(t *testing.T) {
	dir := t.TempDir()
	mtime := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var now time.Time
	c := New(dir, WithClock(func() time.Time { return now }))

	now = mtime
	assert.False(t, c.IsFresh(), "missing file is never fresh")

	require.NoError(t, c.Write([]string{"openai/gpt-4o|2.5|10"}))
	require.NoError(t, os.Chtimes(c.Path(), mtime, mtime))

	tests := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{"just written", 0, true},
		{"one second before ttl", DefaultTTL - time.Second, true},
		{"exactly ttl", DefaultTTL, false},
		{"past ttl", DefaultTTL + time.Minute, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now = mtime.Add(tt.age)
			assert.Equal(t, tt.want, c.IsFresh())
		})
	}
}

func TestWithTTL(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, WithTTL(time.Minute))
	require.NoError(t, c.Write([]string{"openai/gpt-4o|2.5|10"}))

	old := time.Now().Add(-2 * time.Minute)
	require.NoError(t, os.Chtimes(c.Path(), old, old))
	assert.False(t, c.IsFresh())
	assert.True(t, c.Exists())
}

func TestWriteFailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)
	require.NoError(t, c.Write([]string{"openai/gpt-4o|2.5|10"}))

	// The cache file sits where this store expects a directory.
	blocked := New(filepath.Join(c.Path(), "sub"))
	assert.Error(t, blocked.Write([]string{"x/y|1|1"}))

	got, ok := c.Read()
	require.True(t, ok)
	assert.Equal(t, []string{"openai/gpt-4o"}, got.IDs())
}

func TestFormatParseLine(t *testing.T) {
	m := catalog.Model{ID: "qwen/qwen-2.5-coder-32b-instruct", InputPrice: 0.2, OutputPrice: 0.2}
	line := FormatLine(m)
	assert.Equal(t, "qwen/qwen-2.5-coder-32b-instruct|0.2|0.2", line)

	got, ok := ParseLine(line)
	require.True(t, ok)
	assert.Equal(t, m, got)
}

func TestDuplicatesPassThrough(t *testing.T) {
	c := New(t.TempDir())
	require.NoError(t, c.Write([]string{"openai/gpt-4o|2.5|10", "openai/gpt-4o|2.5|10"}))

	got, ok := c.Read()
	require.True(t, ok)
	assert.Len(t, got, 2)
}
