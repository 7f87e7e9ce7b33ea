package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordModel(t *testing.T) {
	var m tea.Model = newPassword("Enter your OpenRouter API key:")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("sk-or-secret")})

	assert.NotContains(t, m.View(), "sk-or-secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	pm := m.(passwordModel)
	assert.True(t, pm.done)
	assert.Equal(t, "sk-or-secret", pm.input.Value())
}

func TestPasswordAbort(t *testing.T) {
	var m tea.Model = newPassword("key")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.(passwordModel).aborted)
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name    string
		def     bool
		key     tea.KeyMsg
		want    bool
		aborted bool
	}{
		{"enter keeps default yes", true, tea.KeyMsg{Type: tea.KeyEnter}, true, false},
		{"enter keeps default no", false, tea.KeyMsg{Type: tea.KeyEnter}, false, false},
		{"y", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true, false},
		{"Y", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true, false},
		{"n", true, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false, false},
		{"esc", true, tea.KeyMsg{Type: tea.KeyEsc}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = confirmModel{label: "Save?", answer: tt.def}
			m, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			cm := m.(confirmModel)
			assert.Equal(t, tt.aborted, cm.aborted)
			if !tt.aborted {
				assert.Equal(t, tt.want, cm.answer)
			}
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	var m tea.Model = confirmModel{label: "Save?"}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.False(t, m.(confirmModel).answered)
}
