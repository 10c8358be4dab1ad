package setup

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazyvibe/storefront/internal/app"
)

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestWizard_SavesConfig(t *testing.T) {
	dir := t.TempDir()
	m := New(dir, app.DefaultConfig())
	m.SetSize(100, 40)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = press(t, m, enter)
	assert.Equal(t, StepConnection, m.step)
	assert.Contains(t, m.View(), "API URL")

	m = press(t, m, enter)
	assert.Equal(t, StepNotifications, m.step)

	m = press(t, m, enter)
	require.True(t, m.IsComplete())
	assert.Contains(t, m.View(), "Setup Complete")

	loaded, err := app.LoadConfig(dir)
	require.NoError(t, err)
	assert.True(t, loaded.Initialized)
	assert.Equal(t, "KZT", loaded.Currency)
	assert.False(t, loaded.Notification.Desktop)
}

func TestWizard_RejectsBadURL(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.APIBaseURL = "ftp://nope"
	m := New(t.TempDir(), cfg)
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m = press(t, m, enter)
	m = press(t, m, enter)
	assert.Equal(t, StepConnection, m.step)
	assert.Contains(t, m.View(), "http://")
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, parseYesNo(" Yes "))
	assert.True(t, parseYesNo("y"))
	assert.False(t, parseYesNo("no"))
	assert.Error(t, validateYesNo("maybe"))
	assert.Error(t, validatePageSize("0"))
	assert.NoError(t, validatePageSize("50"))
}
