package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SimplyPrint/messenger-tray/internal/bridge"
	"github.com/SimplyPrint/messenger-tray/internal/extractor"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

var (
	extractSource   string
	extractBridge   string
	extractInterval time.Duration
)

// extractCmd runs the extractor as its own process. It reads the page
// through its source and can only send counts to the tray.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Periodically count unread messages and send them to a running tray",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if extractSource == "" {
			return errors.New("--source is required")
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if extractBridge == "" {
			extractBridge = cfg.BridgeURL()
		}
		if extractInterval <= 0 {
			extractInterval = cfg.PollInterval
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		client, err := bridge.Dial(ctx, extractBridge)
		if err != nil {
			return err
		}
		defer client.Close()

		logging.Info(logging.CatExtract, "Extractor started", map[string]any{
			"source":   extractSource,
			"bridge":   extractBridge,
			"interval": extractInterval.String(),
		})

		scanner := extractor.NewScanner(extractor.SourceFor(extractSource, cfg.UserAgent), client, extractInterval)
		scanner.Run(ctx)

		logging.Info(logging.CatExtract, "Extractor stopped", nil)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractSource, "source", "", "saved page path or http(s) URL to scan")
	extractCmd.Flags().StringVar(&extractBridge, "bridge", "", "tray websocket URL (default from config)")
	extractCmd.Flags().DurationVar(&extractInterval, "interval", 0, "scan interval (default from config)")
}
