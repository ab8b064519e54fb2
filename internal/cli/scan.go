package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	"github.com/SimplyPrint/messenger-tray/internal/badge"
	"github.com/SimplyPrint/messenger-tray/internal/extractor"
)

var scanVerbose bool

var scanCmd = &cobra.Command{
	Use:   "scan <file|url>",
	Short: "Count unread messages in a saved page once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rc, err := extractor.SourceFor(args[0], cfg.UserAgent).Snapshot(ctx)
		if err != nil {
			return err
		}
		defer rc.Close()

		doc, err := html.Parse(rc)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		if scanVerbose {
			for _, text := range extractor.BadgeTexts(doc) {
				n, ok := extractor.ParseBadgeText(text)
				value := styleOff.Render("ignored")
				if ok {
					value = styleValue.Render(fmt.Sprint(n))
				}
				fmt.Printf("  %s %q -> %s\n", styleLabel.Render("badge"), text, value)
			}
		}

		count := extractor.CountNode(doc)
		fmt.Printf("%s unread (badge %q)\n", styleCount.Render(fmt.Sprint(count)), badge.Label(count))
		return nil
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "list every matched badge")
}
