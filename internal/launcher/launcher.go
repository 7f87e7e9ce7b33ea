package launcher

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/truefrontier/openrouter-launch/internal/ui"
)

// ErrNotInstalled is returned when a tool's binary is not on PATH.
var ErrNotInstalled = errors.New("not installed")

// OpenRouterAPIBase is the API root handed to tools that speak the
// Anthropic API.
const OpenRouterAPIBase = "https://openrouter.ai/api"

// Prefs are the saved provider preferences shown in the launch banner.
type Prefs struct {
	DataCollection string
	ProviderSort   string
}

// Request is everything a launcher needs to start its tool.
type Request struct {
	Model   string
	Pricing string // Display pricing of Model, empty when no catalog was loaded
	APIKey  string
	Prefs   Prefs
	Args    []string // Passed through to the tool unchanged
}

// Detail is one "Key: value" line of the launch banner.
type Detail struct {
	Key   string
	Value string
}

// Invocation describes the child process to start.
type Invocation struct {
	Args    []string
	Env     map[string]string // Set on top of the current environment
	Details []Detail
	Notes   []string
}

// Launcher starts one AI coding tool against OpenRouter.
type Launcher interface {
	// Name returns the integration name (e.g., "claude").
	Name() string
	// DisplayName returns the tool's product name.
	DisplayName() string
	// Aliases returns alternative names accepted on the command line.
	Aliases() []string
	// Binary returns the executable looked up on PATH.
	Binary() string
	// InstallHint tells the user how to install the tool.
	InstallHint() string
	// Prepare builds the invocation for req.
	Prepare(req Request) (*Invocation, error)
}

// ExitError carries a non-zero exit status of the launched tool.
type ExitError struct {
	Tool string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

// CommonDetails renders the banner lines shared by every tool: pricing when
// known, then the provider preferences.
func CommonDetails(req Request) []Detail {
	var d []Detail
	if req.Pricing != "" {
		d = append(d, Detail{"Pricing", req.Pricing})
	}
	d = append(d, Detail{"Data collection", req.Prefs.DataCollection})
	if req.Prefs.ProviderSort != "" {
		d = append(d, Detail{"Provider sort", req.Prefs.ProviderSort})
	}
	return d
}

// WriteBanner prints what is about to be launched.
func WriteBanner(w io.Writer, l Launcher, inv *Invocation) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(ui.Title.Render(fmt.Sprintf("Launching %s with OpenRouter...", l.DisplayName())))
	b.WriteString("\n")
	for _, d := range inv.Details {
		fmt.Fprintf(&b, "  %s %s\n", ui.Dim.Render(d.Key+":"), d.Value)
	}
	if len(inv.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range inv.Notes {
			b.WriteString(ui.Dim.Render(n))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	_, _ = io.WriteString(w, b.String())
}
