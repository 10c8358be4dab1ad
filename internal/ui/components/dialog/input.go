// Package dialog provides modal dialog components for the storefront TUI.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/ui/styles"
)

const (
	defaultCharLimit = 256
	inputWidth       = 40
	maxSuggestions   = 10
	shownSuggestions = 5
)

// InputField describes one labelled text input.
type InputField struct {
	Label       string
	Placeholder string
	Value       string
	Password    bool
	CharLimit   int
	// Options are offered as completions while typing.
	Options []string
	// Validate rejects a value on submit. The returned error is shown
	// under the fields and keeps the dialog open.
	Validate func(string) error
}

type field struct {
	input    textinput.Model
	label    string
	validate func(string) error
	options  []string
}

// completion is the suggestion popup of the focused field.
type completion struct {
	items   []string
	index   int
	visible bool
}

func (c *completion) hide() {
	c.items = nil
	c.index = 0
	c.visible = false
}

func (c *completion) active() bool {
	return c.visible && len(c.items) > 0
}

// step moves the highlighted suggestion by delta, wrapping around.
func (c *completion) step(delta int) string {
	n := len(c.items)
	c.index = ((c.index+delta)%n + n) % n
	return c.items[c.index]
}

type dialogKeys struct {
	next    key.Binding
	prev    key.Binding
	submit  key.Binding
	cancel  key.Binding
	suggest key.Binding
}

var keys = dialogKeys{
	next:    key.NewBinding(key.WithKeys("tab", "down")),
	prev:    key.NewBinding(key.WithKeys("shift+tab", "up")),
	submit:  key.NewBinding(key.WithKeys("enter")),
	cancel:  key.NewBinding(key.WithKeys("esc")),
	suggest: key.NewBinding(key.WithKeys("ctrl+space")),
}

// InputDialog is a modal form of one or more text fields.
type InputDialog struct {
	title      string
	fields     []field
	focus      int
	completion completion
	width      int
	height     int
	submitted  bool
	cancelled  bool
	err        string
}

// NewInputDialog creates a dialog with the first field focused.
func NewInputDialog(title string, fields []InputField) InputDialog {
	d := InputDialog{title: title, fields: make([]field, len(fields))}
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = defaultCharLimit
		if f.CharLimit > 0 {
			ti.CharLimit = f.CharLimit
		}
		ti.Width = inputWidth
		if f.Password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.SetValue(f.Value)
		d.fields[i] = field{
			input:    ti,
			label:    f.Label,
			validate: f.Validate,
			options:  append([]string(nil), f.Options...),
		}
	}
	d.focusField(0)
	return d
}

// SetSize sets the area the dialog is centered in.
func (d *InputDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Update handles key input.
func (d InputDialog) Update(msg tea.Msg) (InputDialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.next):
			// Tab walks the suggestions while they are open.
			if msg.Type == tea.KeyTab && d.completion.active() {
				d.setFocusedValue(d.completion.step(1))
				return d, nil
			}
			return d, d.focusField(d.focus + 1)
		case key.Matches(msg, keys.prev):
			if msg.Type == tea.KeyShiftTab && d.completion.active() {
				d.setFocusedValue(d.completion.step(-1))
				return d, nil
			}
			return d, d.focusField(d.focus - 1)
		case key.Matches(msg, keys.submit):
			return d, d.submit()
		case key.Matches(msg, keys.cancel):
			if d.completion.visible {
				d.completion.hide()
				return d, nil
			}
			d.cancelled = true
			return d, nil
		case key.Matches(msg, keys.suggest):
			d.refreshCompletion()
			return d, nil
		}
	}

	var cmd tea.Cmd
	f := &d.fields[d.focus]
	f.input, cmd = f.input.Update(msg)
	if _, typed := msg.(tea.KeyMsg); typed {
		d.refreshCompletion()
	}
	return d, cmd
}

// submit runs the validators in field order and stops at the first failure.
func (d *InputDialog) submit() tea.Cmd {
	for i, f := range d.fields {
		if f.validate == nil {
			continue
		}
		if err := f.validate(f.input.Value()); err != nil {
			d.err = err.Error()
			return d.focusField(i)
		}
	}
	d.err = ""
	d.submitted = true
	return nil
}

// focusField focuses field i, wrapping at both ends.
func (d *InputDialog) focusField(i int) tea.Cmd {
	n := len(d.fields)
	if n == 0 {
		return nil
	}
	d.focus = (i%n + n) % n
	d.completion.hide()

	var cmd tea.Cmd
	for j := range d.fields {
		if j == d.focus {
			cmd = d.fields[j].input.Focus()
		} else {
			d.fields[j].input.Blur()
		}
	}
	return cmd
}

func (d *InputDialog) setFocusedValue(v string) {
	in := &d.fields[d.focus].input
	in.SetValue(v)
	in.CursorEnd()
}

func (d *InputDialog) refreshCompletion() {
	f := d.fields[d.focus]
	if len(f.options) == 0 {
		d.completion.hide()
		return
	}
	d.completion.items = matchOptions(f.options, f.input.Value())
	d.completion.index = 0
	d.completion.visible = len(d.completion.items) > 0
}

// matchOptions prefers prefix matches and falls back to substring matches.
// Matching ignores case.
func matchOptions(opts []string, input string) []string {
	if input == "" {
		return opts
	}
	lower := strings.ToLower(input)
	var matches []string
	for _, opt := range opts {
		if strings.HasPrefix(strings.ToLower(opt), lower) {
			matches = append(matches, opt)
		}
	}
	if len(matches) == 0 {
		for _, opt := range opts {
			if strings.Contains(strings.ToLower(opt), lower) {
				matches = append(matches, opt)
			}
		}
	}
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	return matches
}

// View renders the dialog centered in its area.
func (d InputDialog) View() string {
	rows := []string{styles.DialogTitle.Render(d.title)}

	for i, f := range d.fields {
		label, box := styles.Label, styles.Input
		if i == d.focus {
			label, box = styles.LabelFocused, styles.InputFocused
		}
		rows = append(rows, label.Render(f.label), box.Render(f.input.View()))
		if i == d.focus && d.completion.active() {
			rows = append(rows, d.renderSuggestions())
		}
	}

	if d.err != "" {
		rows = append(rows, styles.ErrorText.Render(styles.IconError+" "+d.err))
	}

	hint := "enter confirm · esc cancel"
	if len(d.fields) > 0 && len(d.fields[d.focus].options) > 0 {
		hint = "tab next suggestion · " + hint
	}
	rows = append(rows, styles.Help.Render(hint))

	box := styles.DialogBox.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	if d.width <= 0 || d.height <= 0 {
		return box
	}
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
}

func (d InputDialog) renderSuggestions() string {
	items := d.completion.items
	shown := items
	if len(shown) > shownSuggestions {
		shown = shown[:shownSuggestions]
	}
	lines := make([]string, 0, len(shown)+1)
	for j, s := range shown {
		if j == d.completion.index {
			lines = append(lines, styles.ListItemSelected.Render("→ "+s))
		} else {
			lines = append(lines, styles.ListItemDim.Render("  "+s))
		}
	}
	if len(items) > len(shown) {
		lines = append(lines, styles.ListItemDim.Render("  ..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// IsSubmitted reports whether every field passed validation on enter.
func (d InputDialog) IsSubmitted() bool {
	return d.submitted
}

// IsCancelled reports whether the dialog was dismissed.
func (d InputDialog) IsCancelled() bool {
	return d.cancelled
}

// Values returns the values of all fields in order.
func (d InputDialog) Values() []string {
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.input.Value()
	}
	return out
}

// Value returns the value of field index, or "" when out of range.
func (d InputDialog) Value(index int) string {
	if index < 0 || index >= len(d.fields) {
		return ""
	}
	return d.fields[index].input.Value()
}

// Err returns the last validation error, if any.
func (d InputDialog) Err() string {
	return d.err
}

// Reset empties every field and reopens the dialog.
func (d *InputDialog) Reset() {
	d.submitted = false
	d.cancelled = false
	d.err = ""
	for i := range d.fields {
		d.fields[i].input.SetValue("")
	}
	d.focusField(0)
}

// SetFieldOptions replaces the completion options of a field.
func (d *InputDialog) SetFieldOptions(index int, options []string) {
	if index < 0 || index >= len(d.fields) {
		return
	}
	d.fields[index].options = append([]string(nil), options...)
	if index == d.focus {
		d.completion.hide()
	}
}
