package aider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truefrontier/openrouter-launch/internal/launcher"
)

func TestPrepare(t *testing.T) {
	inv, err := (&Launcher{}).Prepare(launcher.Request{
		Model:  "deepseek/deepseek-chat",
		APIKey: "sk-or-abc",
		Prefs:  launcher.Prefs{DataCollection: "allow", ProviderSort: "price"},
		Args:   []string{"--no-auto-commits", "main.go"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"--model", "openrouter/deepseek/deepseek-chat", "--no-auto-commits", "main.go"}, inv.Args)
	assert.Equal(t, map[string]string{"OPENROUTER_API_KEY": "sk-or-abc"}, inv.Env)
	assert.Equal(t, launcher.Detail{Key: "Model", Value: "openrouter/deepseek/deepseek-chat"}, inv.Details[0])
	assert.Contains(t, inv.Details, launcher.Detail{Key: "Provider sort", Value: "price"})
}
