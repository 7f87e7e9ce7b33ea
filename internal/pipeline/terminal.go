package pipeline

import (
	"github.com/truefrontier/openrouter-launch/internal/catalog"
	"github.com/truefrontier/openrouter-launch/internal/picker"
	"github.com/truefrontier/openrouter-launch/internal/prompt"
)

// terminal is the interactive Prompter.
type terminal struct{}

func (terminal) Password(label string) (string, error) { return prompt.Password(label) }

func (terminal) Confirm(label string, def bool) (bool, error) { return prompt.Confirm(label, def) }

func (terminal) PickModel(cat catalog.Catalog, aliases picker.AliasLookup) (string, error) {
	return picker.Run(cat, aliases)
}
