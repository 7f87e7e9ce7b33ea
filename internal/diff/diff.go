package diff

import (
	"fmt"
	"strings"

	"github.com/truefrontier/openrouter-launch/internal/catalog"
)

// maxListed caps how many ids of each kind Render prints.
const maxListed = 10

// Compute compares a previous catalog against a refreshed one. The first
// occurrence of an id wins on both sides. Output follows catalog order.
func Compute(previous, current catalog.Catalog) *ChangeSet {
	cs := &ChangeSet{}

	prev := index(previous)
	cur := index(current)

	seen := make(map[string]bool, len(current))
	for _, m := range current {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true

		old, ok := prev[m.ID]
		switch {
		case !ok:
			cs.New = append(cs.New, m)
		case old.InputPrice != m.InputPrice || old.OutputPrice != m.OutputPrice:
			cs.Repriced = append(cs.Repriced, PriceChange{Old: old, New: m})
		default:
			cs.Unchanged++
		}
	}

	gone := make(map[string]bool)
	for _, m := range previous {
		if _, ok := cur[m.ID]; ok || gone[m.ID] {
			continue
		}
		gone[m.ID] = true
		cs.Removed = append(cs.Removed, m)
	}

	return cs
}

func index(cat catalog.Catalog) map[string]catalog.Model {
	out := make(map[string]catalog.Model, len(cat))
	for _, m := range cat {
		if _, ok := out[m.ID]; !ok {
			out[m.ID] = m
		}
	}
	return out
}

// Render summarizes cs for the terminal. Returns an empty string when
// nothing changed.
func Render(cs *ChangeSet) string {
	if cs == nil || !cs.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d new, %d removed, %d repriced, %d unchanged\n",
		len(cs.New), len(cs.Removed), len(cs.Repriced), cs.Unchanged)

	section := func(sign string, ids []string) {
		for i, id := range ids {
			if i == maxListed {
				fmt.Fprintf(&b, "  ... and %d more\n", len(ids)-maxListed)
				break
			}
			fmt.Fprintf(&b, "  %s %s\n", sign, id)
		}
	}

	section("+", lines(cs.New, func(m catalog.Model) string { return m.ID + "  " + m.Pricing() }))
	section("-", lines(cs.Removed, func(m catalog.Model) string { return m.ID }))

	repriced := make([]string, 0, len(cs.Repriced))
	for _, pc := range cs.Repriced {
		repriced = append(repriced, fmt.Sprintf("%s  %s -> %s", pc.New.ID, pc.Old.Pricing(), pc.New.Pricing()))
	}
	section("~", repriced)

	return b.String()
}

func lines(models []catalog.Model, format func(catalog.Model) string) []string {
	out := make([]string, 0, len(models))
	for _, m := range models {
		out = append(out, format(m))
	}
	return out
}
