package catalog

import "strings"

// Catalog is an ordered list of models. Coding-oriented models come first.
type Catalog []Model

// Find returns the model with the given identifier.
func (c Catalog) Find(id string) (Model, bool) {
	for _, m := range c {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// Contains reports whether id appears in the catalog.
func (c Catalog) Contains(id string) bool {
	_, ok := c.Find(id)
	return ok
}

// IDs returns the identifiers in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, m := range c {
		ids[i] = m.ID
	}
	return ids
}

// PricingFor returns the display pricing of id, or "unknown pricing".
func (c Catalog) PricingFor(id string) string {
	if m, ok := c.Find(id); ok {
		return m.Pricing()
	}
	return "unknown pricing"
}

// IsCodingModel reports whether id starts with one of prefixes.
func IsCodingModel(id string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(id, p) {
			return true
		}
	}
	return false
}

// Partition moves coding models ahead of the rest. Relative order inside
// each group is kept.
func Partition(models []Model, prefixes []string) Catalog {
	coding := make(Catalog, 0, len(models))
	var other Catalog
	for _, m := range models {
		if IsCodingModel(m.ID, prefixes) {
			coding = append(coding, m)
		} else {
			other = append(other, m)
		}
	}
	return append(coding, other...)
}
