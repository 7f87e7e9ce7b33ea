package codex

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/truefrontier/openrouter-launch/internal/launcher"
	"github.com/truefrontier/openrouter-launch/internal/ui"
)

const providerName = "openrouter"

func init() {
	launcher.Register(&Launcher{})
}

// providerConfig is Codex's [model_providers.<name>] table.
type providerConfig struct {
	Name    string `toml:"name"`
	BaseURL string `toml:"base_url"`
	EnvKey  string `toml:"env_key"`
	WireAPI string `toml:"wire_api"`
}

var openRouterProvider = providerConfig{
	Name:    "OpenRouter",
	BaseURL: "https://openrouter.ai/api/v1",
	EnvKey:  "OPENROUTER_API_KEY",
	WireAPI: "chat",
}

// Launcher starts the Codex CLI with an OpenRouter model provider.
type Launcher struct {
	// ConfigPath overrides ~/.codex/config.toml.
	ConfigPath string
}

func (l *Launcher) Name() string        { return "codex" }
func (l *Launcher) DisplayName() string { return "Codex CLI" }
func (l *Launcher) Aliases() []string   { return nil }
func (l *Launcher) Binary() string      { return "codex" }

func (l *Launcher) InstallHint() string {
	return "install it: npm install -g @openai/codex"
}

// Prepare makes sure Codex knows the openrouter provider, then selects it
// with a -c override.
func (l *Launcher) Prepare(req launcher.Request) (*launcher.Invocation, error) {
	path, err := l.configPath()
	if err != nil {
		return nil, err
	}
	if err := EnsureProvider(path); err != nil {
		return nil, fmt.Errorf("updating Codex config: %w (add [model_providers.%s] to %s manually)", err, providerName, path)
	}

	args := append([]string{"--model", req.Model, "-c", fmt.Sprintf("model_provider=%q", providerName)}, req.Args...)
	return &launcher.Invocation{
		Args: args,
		Env:  map[string]string{"OPENROUTER_API_KEY": req.APIKey},
		Details: append([]launcher.Detail{
			{Key: "Model", Value: req.Model},
			{Key: "Provider", Value: providerName},
		}, launcher.CommonDetails(req)...),
	}, nil
}

func (l *Launcher) configPath() (string, error) {
	if l.ConfigPath != "" {
		return l.ConfigPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".codex", "config.toml"), nil
}

// HasProvider reports whether the Codex config at path defines the
// openrouter model provider. A missing file has no providers.
func HasProvider(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	providers, _ := doc["model_providers"].(map[string]any)
	_, ok := providers[providerName]
	return ok, nil
}

// EnsureProvider appends the openrouter provider table to the Codex config
// unless it is already there. Existing content is left untouched.
func EnsureProvider(path string) error {
	ok, err := HasProvider(path)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	ui.Infof("OpenRouter provider not found in Codex config")
	ui.Infof("Adding to %s...", path)

	body, err := toml.Marshal(openRouterProvider)
	if err != nil {
		return fmt.Errorf("encoding provider: %w", err)
	}
	section := fmt.Sprintf("[model_providers.%s]\n%s", providerName, body)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	prefix := ""
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		existing, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if existing[len(existing)-1] != '\n' {
			prefix = "\n"
		}
		prefix += "\n"
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(prefix + section); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	ui.Successf("Added OpenRouter provider to Codex config")
	return nil
}
