// panelctl is a terminal console and CLI for the developer panel backend.
// Run without arguments for the interactive console; subcommands cover the
// same operations for scripting.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"panelctl/cmd/panelctl/console"
	"panelctl/cmd/panelctl/ui"
	"panelctl/internal/api"
	"panelctl/internal/config"
	"panelctl/internal/logging"
	"panelctl/internal/session"
)

var (
	// Global flags
	verbose    bool
	apiURL     string
	timeout    time.Duration
	configPath string

	// Resolved in PersistentPreRunE
	cfg    config.Config
	client *api.Client
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "panelctl",
	Short: "Developer panel console",
	Long: `panelctl manages the developer panel: supplier enterprises, developer
settings, data formats, branch mappings and dropship enterprises.

Run without arguments to start the interactive console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFile(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if apiURL != "" {
			cfg.APIBaseURL = apiURL
		}
		if cmd.Flags().Changed("timeout") {
			cfg.RequestTimeout = timeout
		}
		if verbose {
			cfg.Debug = true
		}

		if err := logging.Initialize(cfg.Debug); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}

		store, err := session.NewStore()
		if err != nil {
			return fmt.Errorf("session store: %w", err)
		}
		client = api.New(cfg.APIBaseURL, cfg.RequestTimeout, store)

		// The interactive console has its own UI; zap is for subcommands.
		if cmd.CalledAs() == "panelctl" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if cfg.Debug {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsole()
	},
}

func runConsole() error {
	styles := consoleStyles()
	model := console.New(client, styles)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

func consoleStyles() ui.Styles {
	if cfg.DarkMode {
		return ui.NewStyles(ui.DarkTheme())
	}
	return ui.DefaultStyles()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend base URL (or set PANELCTL_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.panelctl/config.yaml)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(enterpriseCmd)
	rootCmd.AddCommand(developerCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(dropshipCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
