package aider

import (
	"github.com/truefrontier/openrouter-launch/internal/launcher"
)

func init() {
	launcher.Register(&Launcher{})
}

// Launcher starts Aider through its built-in OpenRouter support.
type Launcher struct{}

func (l *Launcher) Name() string        { return "aider" }
func (l *Launcher) DisplayName() string { return "Aider" }
func (l *Launcher) Aliases() []string   { return nil }
func (l *Launcher) Binary() string      { return "aider" }

func (l *Launcher) InstallHint() string {
	return "install it from: https://aider.chat/docs/install.html"
}

// Prepare selects the model with aider's openrouter/ prefix.
func (l *Launcher) Prepare(req launcher.Request) (*launcher.Invocation, error) {
	model := "openrouter/" + req.Model
	args := append([]string{"--model", model}, req.Args...)
	return &launcher.Invocation{
		Args: args,
		Env:  map[string]string{"OPENROUTER_API_KEY": req.APIKey},
		Details: append([]launcher.Detail{
			{Key: "Model", Value: model},
		}, launcher.CommonDetails(req)...),
	}, nil
}
