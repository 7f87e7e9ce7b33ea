package opencode

import (
	"github.com/truefrontier/openrouter-launch/internal/launcher"
)

func init() {
	launcher.Register(&Launcher{})
}

// Launcher starts OpenCode, which switches to OpenRouter when
// OPENROUTER_API_KEY is set.
type Launcher struct{}

func (l *Launcher) Name() string        { return "opencode" }
func (l *Launcher) DisplayName() string { return "OpenCode" }
func (l *Launcher) Aliases() []string   { return []string{"oc"} }
func (l *Launcher) Binary() string      { return "opencode" }

func (l *Launcher) InstallHint() string {
	return "install it from: https://github.com/opencode-ai/opencode"
}

// Prepare has no way to pass the model on the command line, so it is only
// shown in the banner.
func (l *Launcher) Prepare(req launcher.Request) (*launcher.Invocation, error) {
	return &launcher.Invocation{
		Args: append([]string(nil), req.Args...),
		Env:  map[string]string{"OPENROUTER_API_KEY": req.APIKey},
		Details: append([]launcher.Detail{
			{Key: "Model", Value: req.Model},
		}, launcher.CommonDetails(req)...),
		Notes: []string{
			"Note: OpenCode may use its own default OpenRouter models",
			"      unless you configure ~/.opencode.json with your preferred model.",
		},
	}, nil
}
