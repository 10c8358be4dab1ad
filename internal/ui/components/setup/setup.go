// Package setup provides the first-run setup wizard.
package setup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lazyvibe/storefront/internal/app"
	"github.com/lazyvibe/storefront/internal/ui/components/dialog"
	"github.com/lazyvibe/storefront/internal/ui/styles"
	"github.com/lazyvibe/storefront/pkg/utils"
)

// Step represents a setup wizard step.
type Step int

const (
	StepWelcome Step = iota
	StepConnection
	StepNotifications
	StepComplete
)

// Model is the setup wizard model.
type Model struct {
	step         Step
	config       *app.Config
	configDir    string
	error        string
	width        int
	height       int
	connDialog   dialog.InputDialog
	notifyDialog dialog.InputDialog
}

// New creates a new setup wizard.
func New(configDir string, config *app.Config) Model {
	if config == nil {
		config = app.DefaultConfig()
	}
	return Model{
		step:      StepWelcome,
		config:    config,
		configDir: configDir,
	}
}

// Init initializes the setup wizard.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize sets the wizard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.connDialog.SetSize(width, height)
	m.notifyDialog.SetSize(width, height)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.step {
		case StepConnection:
			return m.updateConnection(msg)
		case StepNotifications:
			return m.updateNotifications(msg)
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			return m.handleEnter()
		}
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.step {
	case StepWelcome:
		m.step = StepConnection
		m.initConnectionDialog()
	case StepComplete:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateConnection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.connDialog, cmd = m.connDialog.Update(msg)
	if m.connDialog.IsCancelled() {
		m.step = StepWelcome
		return m, nil
	}
	if !m.connDialog.IsSubmitted() {
		return m, cmd
	}

	values := m.connDialog.Values()
	m.config.APIBaseURL = strings.TrimSpace(values[0])
	if !strings.HasSuffix(m.config.APIBaseURL, "/") {
		m.config.APIBaseURL += "/"
	}
	m.config.Currency = strings.ToUpper(strings.TrimSpace(values[1]))
	if n, err := strconv.Atoi(strings.TrimSpace(values[2])); err == nil {
		m.config.PageSize = n
	}
	m.step = StepNotifications
	m.initNotifyDialog()
	return m, nil
}

func (m Model) updateNotifications(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.notifyDialog, cmd = m.notifyDialog.Update(msg)
	if m.notifyDialog.IsCancelled() {
		m.step = StepConnection
		m.connDialog.Reset()
		m.initConnectionDialog()
		return m, nil
	}
	if !m.notifyDialog.IsSubmitted() {
		return m, cmd
	}

	values := m.notifyDialog.Values()
	m.config.Notification.Desktop = parseYesNo(values[0])
	m.config.Notification.WebhookURL = strings.TrimSpace(values[1])
	m.config.Initialized = true
	if err := app.SaveConfig(m.configDir, m.config); err != nil {
		m.error = err.Error()
		m.notifyDialog.Reset()
		return m, nil
	}
	m.error = ""
	m.step = StepComplete
	return m, nil
}

func (m *Model) initConnectionDialog() {
	m.connDialog = dialog.NewInputDialog("Connect to the store", []dialog.InputField{
		{
			Label:       "API URL",
			Placeholder: "https://shop.example.kz/",
			Value:       m.config.APIBaseURL,
			Validate:    app.ValidateAPIURL,
		},
		{
			Label:       "Currency",
			Placeholder: "KZT",
			Value:       m.config.Currency,
			CharLimit:   3,
			Options:     []string{"KZT", "RUB", "USD", "EUR"},
		},
		{
			Label:       "Products per page",
			Placeholder: "20",
			Value:       strconv.Itoa(m.config.PageSize),
			Validate:    validatePageSize,
		},
	})
	m.connDialog.SetSize(m.width, m.height)
}

func (m *Model) initNotifyDialog() {
	desktop := "no"
	if m.config.Notification.Desktop {
		desktop = "yes"
	}
	m.notifyDialog = dialog.NewInputDialog("Notifications", []dialog.InputField{
		{
			Label:    "Desktop notifications",
			Value:    desktop,
			Options:  []string{"yes", "no"},
			Validate: validateYesNo,
		},
		{
			Label:       "Webhook URL",
			Placeholder: "optional",
			Value:       m.config.Notification.WebhookURL,
			Validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return nil
				}
				return app.ValidateAPIURL(v)
			},
		},
	})
	m.notifyDialog.SetSize(m.width, m.height)
}

func validatePageSize(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 || n > 100 {
		return errors.New("page size must be between 1 and 100")
	}
	return nil
}

func validateYesNo(v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "n", "no":
		return nil
	}
	return errors.New("answer yes or no")
}

func parseYesNo(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "y" || v == "yes"
}

// IsComplete returns true if setup is complete.
func (m Model) IsComplete() bool {
	return m.step == StepComplete
}

// Config returns the configured config.
func (m Model) Config() *app.Config {
	return m.config
}

// View renders the setup wizard.
func (m Model) View() string {
	switch m.step {
	case StepWelcome:
		return m.viewWelcome()
	case StepConnection:
		return m.connDialog.View()
	case StepNotifications:
		if m.error != "" {
			d := m.notifyDialog
			d.SetSize(0, 0)
			return m.center(lipgloss.JoinVertical(lipgloss.Center, d.View(),
				styles.ErrorText.Render(styles.IconError+" "+m.error)))
		}
		return m.notifyDialog.View()
	case StepComplete:
		return m.viewComplete()
	}
	return ""
}

func (m Model) viewWelcome() string {
	title := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true).
		Render(styles.IconCatalog + "  Welcome to Storefront!")

	desc := lipgloss.NewStyle().
		Foreground(styles.Text).
		Width(60).
		Align(lipgloss.Center).
		Render("Browse the laptop catalog, keep a cart and a comparison list, and check out from your terminal.")

	hint := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true).
		Render("Press Enter to continue...")

	return m.center(lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		desc,
		"",
		"",
		hint,
	))
}

func (m Model) viewComplete() string {
	title := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true).
		Render(styles.IconSuccess + " Setup Complete!")

	info := lipgloss.NewStyle().
		Foreground(styles.Accent).
		Render(fmt.Sprintf("API: %s · Currency: %s", m.config.APIBaseURL, m.config.Currency))

	configInfo := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render("Saved to " + utils.ShortenHome(app.ConfigPath(m.configDir)))

	hint := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Render("Press Enter to start shopping...")

	return m.center(lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		info,
		configInfo,
		"",
		"",
		hint,
	))
}

func (m Model) center(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
