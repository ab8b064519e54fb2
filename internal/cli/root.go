// Package cli implements the messenger-tray commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SimplyPrint/messenger-tray/internal/config"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

var (
	configPath string
	noTray     bool
	snapshot   string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "messenger-tray",
	Short: "Tray badge, sound and notifications for Messenger unread messages",
	Long: `messenger-tray shows the Messenger unread count as a badge on a tray icon.
The open Messenger page reports its count over a local websocket; every
increase plays an alert and posts a desktop notification.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, ok := logging.ParseLevel(logLevel)
		if !ok {
			return fmt.Errorf("invalid --log-level %q", logLevel)
		}
		logging.Get().SetMinLevel(level)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHost(cmd.Context())
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/messenger-tray/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&noTray, "no-tray", false, "run without a tray icon (headless)")
	rootCmd.Flags().StringVar(&snapshot, "snapshot", "", "also scan this saved page or URL in-process")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(autostartCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig returns the configuration and the file it was read from.
// The path is empty when no config location could be determined.
func loadConfig() (*config.Config, string, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			logging.Warn(logging.CatSystem, "No config directory, using defaults", map[string]any{"error": err.Error()})
		}
		path = p
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
