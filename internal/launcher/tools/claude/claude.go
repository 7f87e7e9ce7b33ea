package claude

import (
	"github.com/truefrontier/openrouter-launch/internal/launcher"
)

func init() {
	launcher.Register(&Launcher{})
}

// Launcher starts Claude Code with OpenRouter as its Anthropic endpoint.
type Launcher struct{}

func (l *Launcher) Name() string        { return "claude" }
func (l *Launcher) DisplayName() string { return "Claude Code" }
func (l *Launcher) Aliases() []string   { return nil }
func (l *Launcher) Binary() string      { return "claude" }

func (l *Launcher) InstallHint() string {
	return "install it from: https://docs.anthropic.com/en/docs/claude-code"
}

// Prepare points the Anthropic SDK at OpenRouter. ANTHROPIC_API_KEY is
// blanked so a key from the user's shell does not take precedence over the
// auth token.
func (l *Launcher) Prepare(req launcher.Request) (*launcher.Invocation, error) {
	return &launcher.Invocation{
		Args: append([]string(nil), req.Args...),
		Env: map[string]string{
			"ANTHROPIC_BASE_URL":   launcher.OpenRouterAPIBase,
			"ANTHROPIC_API_KEY":    "",
			"ANTHROPIC_AUTH_TOKEN": req.APIKey,
			"ANTHROPIC_MODEL":      req.Model,
		},
		Details: append([]launcher.Detail{
			{Key: "Model", Value: req.Model},
			{Key: "Base URL", Value: launcher.OpenRouterAPIBase},
		}, launcher.CommonDetails(req)...),
	}, nil
}
