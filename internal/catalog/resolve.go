package catalog

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownModel is returned when an input is neither an alias, a known
// model, nor a well-formed provider/model identifier.
var ErrUnknownModel = errors.New("unknown model")

// idPattern accepts any provider/model identifier so that models published
// after the catalog was cached can still be used.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+/[A-Za-z0-9._-]+$`)

// Resolver maps user input to canonical model identifiers.
type Resolver struct {
	aliases  map[string]string
	fallback Catalog
}

// NewResolver creates a Resolver over an alias table and a fallback catalog.
// Both are copied.
func NewResolver(aliases map[string]string, fallback Catalog) *Resolver {
	a := make(map[string]string, len(aliases))
	for k, v := range aliases {
		a[k] = v
	}
	return &Resolver{
		aliases:  a,
		fallback: append(Catalog(nil), fallback...),
	}
}

// DefaultResolver returns a Resolver over DefaultAliases and Fallback().
func DefaultResolver() *Resolver {
	return NewResolver(DefaultAliases, Fallback())
}

// ResolveAlias returns the identifier for an alias, or input unchanged.
func (r *Resolver) ResolveAlias(input string) string {
	if id, ok := r.aliases[input]; ok {
		return id
	}
	return input
}

// Exists reports whether id is in cat, in the fallback catalog, or at least
// looks like a provider/model identifier.
func (r *Resolver) Exists(id string, cat Catalog) bool {
	if cat.Contains(id) {
		return true
	}
	if r.fallback.Contains(id) {
		return true
	}
	return idPattern.MatchString(id)
}

// Resolve applies alias resolution and then checks existence.
func (r *Resolver) Resolve(input string, cat Catalog) (string, error) {
	id := r.ResolveAlias(input)
	if r.Exists(id, cat) {
		return id, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownModel, input)
}

// Aliases returns a copy of the alias table.
func (r *Resolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// AliasFor returns the lookup result for a lowercase alias, used by the
// picker to jump straight to an aliased model.
func (r *Resolver) AliasFor(alias string) (string, bool) {
	id, ok := r.aliases[alias]
	return id, ok
}
