package catalog

import (
	"fmt"
	"math"
)

// Model is a single catalog entry. Prices are per million tokens.
type Model struct {
	ID          string
	InputPrice  float64
	OutputPrice float64
}

// Pricing renders the model's prices for display, e.g. "$3/$15 per 1M tokens".
func (m Model) Pricing() string {
	return fmt.Sprintf("%s/%s per 1M tokens", FormatPrice(m.InputPrice), FormatPrice(m.OutputPrice))
}

// FormatPrice formats a per-million price: whole dollars at or above $1,
// cents below it.
func FormatPrice(price float64) string {
	switch {
	case price >= 1:
		return fmt.Sprintf("$%d", int64(math.Round(price)))
	case price > 0:
		return fmt.Sprintf("$%.2f", price)
	default:
		return "$0"
	}
}
