// Storefront - laptop store client for the terminal.
// Browse the catalog, keep a cart and a comparison list, and check out.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/lazyvibe/storefront/internal/app"
	"github.com/lazyvibe/storefront/internal/catalog"
	"github.com/lazyvibe/storefront/internal/collection"
	"github.com/lazyvibe/storefront/internal/logging"
	"github.com/lazyvibe/storefront/internal/notify"
	"github.com/lazyvibe/storefront/internal/store"
	"github.com/lazyvibe/storefront/internal/ui"
	"github.com/lazyvibe/storefront/internal/ui/components/setup"
	"github.com/lazyvibe/storefront/pkg/utils"
)

const (
	appName    = "storefront"
	appVersion = "0.1.0"
)

func main() {
	// Get config directory
	configDir, err := utils.ConfigDir(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config directory: %v\n", err)
		os.Exit(1)
	}

	// Load application configuration
	config, err := app.LoadConfig(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Check if first-run setup is needed
	if !config.Initialized {
		if err := runSetupWizard(configDir, config); err != nil {
			fmt.Fprintf(os.Stderr, "Error running setup wizard: %v\n", err)
			os.Exit(1)
		}
		config, err = app.LoadConfig(configDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading config: %v\n", err)
			os.Exit(1)
		}
	}
	dataDir := utils.ExpandPath(config.DataDir)

	logger, err := logging.New(dataDir, config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", appVersion),
		zap.String("api", config.APIBaseURL),
		zap.String("quota", config.QuotaString()))

	// Initialize storage
	kv, err := store.NewFileStore(dataDir,
		store.WithQuota(config.StorageQuotaBytes),
		store.WithLogger(logger))
	if err != nil {
		logger.Error("open storage", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	collections, err := collection.New(kv, collection.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing collections: %v\n", err)
		os.Exit(1)
	}

	// Catalog client with the saved session
	jar, err := catalog.OpenCookieJar(dataDir)
	if err != nil {
		logger.Warn("cookie jar unavailable, session will not be saved", zap.Error(err))
	}
	opts := []catalog.Option{catalog.WithLogger(logger)}
	if jar != nil {
		opts = append(opts, catalog.WithCookieJar(jar))
	}
	client, err := catalog.NewClient(config.APIBaseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating API client: %v\n", err)
		os.Exit(1)
	}

	// Create application
	application := ui.New(collections, client, config, configDir,
		ui.WithNotifier(notify.NewDispatcher(notify.WithLogger(logger))),
		ui.WithLogger(logger))
	defer application.Close()

	// Run the TUI
	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
	if err := client.SaveCookies(); err != nil {
		logger.Warn("saving cookies failed", zap.Error(err))
	}
}

// runSetupWizard runs the first-run setup wizard.
func runSetupWizard(configDir string, config *app.Config) error {
	wizard := setup.New(configDir, config)

	p := tea.NewProgram(
		wizard,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Check if setup was completed
	if m, ok := finalModel.(setup.Model); ok {
		if !m.IsComplete() {
			// User quit without completing setup
			os.Exit(0)
		}
	}

	return nil
}
