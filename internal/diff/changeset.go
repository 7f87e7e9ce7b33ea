package diff

import "github.com/truefrontier/openrouter-launch/internal/catalog"

// ChangeSet is the difference between two model catalogs.
type ChangeSet struct {
	New       []catalog.Model
	Removed   []catalog.Model
	Repriced  []PriceChange
	Unchanged int
}

// PriceChange is a model whose per-million pricing moved.
type PriceChange struct {
	Old catalog.Model
	New catalog.Model
}

// HasChanges reports whether the catalogs differ.
func (cs *ChangeSet) HasChanges() bool {
	return len(cs.New) > 0 || len(cs.Removed) > 0 || len(cs.Repriced) > 0
}

// TotalChanged returns the count of new + repriced models.
func (cs *ChangeSet) TotalChanged() int {
	return len(cs.New) + len(cs.Repriced)
}
