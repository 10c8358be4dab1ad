package dialog

import (
	"errors"
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(d InputDialog, s string) InputDialog {
	for _, r := range s {
		d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

func TestInputDialog_ValidateKeepsOpen(t *testing.T) {
	d := NewInputDialog("Add to cart", []InputField{{
		Label: "Quantity",
		Value: "",
		Validate: func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return errors.New("quantity must be a positive number")
			}
			return nil
		},
	}})

	d = typeText(d, "x")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, d.IsSubmitted())
	assert.Equal(t, "quantity must be a positive number", d.Err())
	assert.Contains(t, d.View(), "quantity must be a positive number")

	d.Reset()
	d = typeText(d, "3")
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, d.IsSubmitted())
	assert.Empty(t, d.Err())
	assert.Equal(t, "3", d.Value(0))
}

func TestInputDialog_PasswordIsMasked(t *testing.T) {
	d := NewInputDialog("Login", []InputField{
		{Label: "Email"},
		{Label: "Password", Password: true},
	})
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyDown})
	d = typeText(d, "hunter2")

	assert.Equal(t, []string{"", "hunter2"}, d.Values())
	assert.NotContains(t, d.View(), "hunter2")
}

func TestInputDialog_OptionSuggestions(t *testing.T) {
	d := NewInputDialog("Search", []InputField{{Label: "Query"}})
	d.SetFieldOptions(0, []string{"ThinkPad", "MacBook", "Thin client"})

	d = typeText(d, "thi")
	assert.Equal(t, []string{"ThinkPad", "Thin client"}, d.completion.items)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Thin client", d.Value(0))

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, d.IsCancelled())
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, d.IsCancelled())
}
