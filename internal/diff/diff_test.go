package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

func TestNewModelDetected(t *testing.T) {
	previous := catalog.Catalog{{ID: "openai/gpt-4o", InputPrice: 2.5, OutputPrice: 10}}
	current := catalog.Catalog{
		{ID: "openai/gpt-4o", InputPrice: 2.5, OutputPrice: 10},
		{ID: "openai/gpt-5", InputPrice: 1.25, OutputPrice: 10},
	}

	cs := Compute(previous, current)

	if len(cs.New) != 1 {
		t.Fatalf("expected 1 new model, got %d", len(cs.New))
	}
	if cs.New[0].ID != "openai/gpt-5" {
		t.Errorf("expected new model openai/gpt-5, got %s", cs.New[0].ID)
	}
	if cs.Unchanged != 1 {
		t.Errorf("expected 1 unchanged, got %d", cs.Unchanged)
	}
}

func TestRemovedModelDetected(t *testing.T) {
	previous := catalog.Catalog{
		{ID: "anthropic/claude-2"},
		{ID: "anthropic/claude-sonnet-4", InputPrice: 3, OutputPrice: 15},
	}
	current := catalog.Catalog{{ID: "anthropic/claude-sonnet-4", InputPrice: 3, OutputPrice: 15}}

	cs := Compute(previous, current)

	if len(cs.Removed) != 1 || cs.Removed[0].ID != "anthropic/claude-2" {
		t.Fatalf("expected anthropic/claude-2 removed, got %+v", cs.Removed)
	}
	if !cs.HasChanges() {
		t.Error("expected HasChanges")
	}
	if cs.TotalChanged() != 0 {
		t.Errorf("removals are not counted as changed, got %d", cs.TotalChanged())
	}
}

func TestPriceChangeDetected(t *testing.T) {
	tests := []struct {
		name         string
		old, new     catalog.Model
		wantRepriced bool
	}{
		{
			name:         "input price",
			old:          catalog.Model{ID: "x/a", InputPrice: 1, OutputPrice: 2},
			new:          catalog.Model{ID: "x/a", InputPrice: 0.5, OutputPrice: 2},
			wantRepriced: true,
		},
		{
			name:         "output price",
			old:          catalog.Model{ID: "x/a", InputPrice: 1, OutputPrice: 2},
			new:          catalog.Model{ID: "x/a", InputPrice: 1, OutputPrice: 3},
			wantRepriced: true,
		},
		{
			name: "same price",
			old:  catalog.Model{ID: "x/a", InputPrice: 1, OutputPrice: 2},
			new:  catalog.Model{ID: "x/a", InputPrice: 1, OutputPrice: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := Compute(catalog.Catalog{tt.old}, catalog.Catalog{tt.new})
			if got := len(cs.Repriced) == 1; got != tt.wantRepriced {
				t.Fatalf("repriced = %v, want %v", got, tt.wantRepriced)
			}
			if tt.wantRepriced && cs.Repriced[0].Old != tt.old {
				t.Errorf("old = %+v, want %+v", cs.Repriced[0].Old, tt.old)
			}
		})
	}
}

func TestDuplicatesCountedOnce(t *testing.T) {
	previous := catalog.Catalog{{ID: "x/gone"}, {ID: "x/gone"}}
	current := catalog.Catalog{{ID: "x/new"}, {ID: "x/new"}}

	cs := Compute(previous, current)

	if len(cs.New) != 1 || len(cs.Removed) != 1 {
		t.Errorf("expected 1 new and 1 removed, got %d and %d", len(cs.New), len(cs.Removed))
	}
}

func TestEmptyPrevious(t *testing.T) {
	cs := Compute(nil, catalog.Fallback())
	if len(cs.New) != len(catalog.Fallback()) {
		t.Errorf("expected every model new, got %d", len(cs.New))
	}
}

func TestRender(t *testing.T) {
	if got := Render(&ChangeSet{Unchanged: 3}); got != "" {
		t.Errorf("expected empty render for no changes, got %q", got)
	}
	if got := Render(nil); got != "" {
		t.Errorf("expected empty render for nil, got %q", got)
	}

	cs := Compute(
		catalog.Catalog{{ID: "x/old"}, {ID: "x/same", InputPrice: 1, OutputPrice: 1}},
		catalog.Catalog{{ID: "x/same", InputPrice: 2, OutputPrice: 1}, {ID: "x/new", InputPrice: 0.5, OutputPrice: 1}},
	)
	out := Render(cs)

	for _, want := range []string{
		"1 new, 1 removed, 1 repriced, 0 unchanged",
		"+ x/new  $0.50/$1 per 1M tokens",
		"- x/old",
		"~ x/same  $1/$1 per 1M tokens -> $2/$1 per 1M tokens",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTruncates(t *testing.T) {
	var current catalog.Catalog
	for i := 0; i < maxListed+5; i++ {
		current = append(current, catalog.Model{ID: fmt.Sprintf("x/m%d", i)})
	}

	out := Render(Compute(nil, current))
	if !strings.Contains(out, "... and 5 more") {
		t.Errorf("expected truncation line:\n%s", out)
	}
}
