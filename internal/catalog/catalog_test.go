package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionKeepsOrderWithinGroups(t *testing.T) {
	in := []Model{
		{ID: "cohere/command-r"},
		{ID: "openai/gpt-4o"},
		{ID: "amazon/nova-pro"},
		{ID: "anthropic/claude-sonnet-4"},
		{ID: "openai/gpt-3.5-turbo"},
		{ID: "x-ai/grok-4"},
	}

	got := Partition(in, CodingPrefixes)

	assert.Equal(t, []string{
		"openai/gpt-4o",
		"anthropic/claude-sonnet-4",
		"x-ai/grok-4",
		"cohere/command-r",
		"amazon/nova-pro",
		"openai/gpt-3.5-turbo",
	}, got.IDs())
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{15, "$15"},
		{2.5, "$3"},
		{1, "$1"},
		{0.99, "$0.99"},
		{0.1, "$0.10"},
		{0, "$0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price), "price %v", tt.price)
	}
}

func TestPricing(t *testing.T) {
	m := Model{ID: "anthropic/claude-haiku", InputPrice: 0.25, OutputPrice: 1.25}
	assert.Equal(t, "$0.25/$1 per 1M tokens", m.Pricing())

	cat := Catalog{m}
	assert.Equal(t, m.Pricing(), cat.PricingFor("anthropic/claude-haiku"))
	assert.Equal(t, "unknown pricing", cat.PricingFor("nope/nope"))
}

func TestFallbackCatalog(t *testing.T) {
	fb := Fallback()
	assert.Len(t, fb, 10)
	for _, m := range fb {
		assert.True(t, IsCodingModel(m.ID, CodingPrefixes), m.ID)
	}
	for alias, id := range DefaultAliases {
		assert.True(t, fb.Contains(id), "alias %q target %q missing from fallback", alias, id)
	}
}
