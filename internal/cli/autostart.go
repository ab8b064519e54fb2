package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SimplyPrint/messenger-tray/internal/autostart"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage start at login",
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start messenger-tray when you log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := autostart.New().Enable(); err != nil {
			return err
		}
		fmt.Println(styleOK.Render("Start at login enabled"))
		return nil
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting messenger-tray at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := autostart.New().Disable(); err != nil {
			return err
		}
		fmt.Println(styleOff.Render("Start at login disabled"))
		return nil
	},
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether messenger-tray starts at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m := autostart.New()
		status, err := m.Status()
		if err != nil {
			return err
		}
		style := styleOff
		if m.IsEnabled() {
			style = styleOK
		}
		fmt.Printf("%s %s\n", styleLabel.Render("Start at login:"), style.Render(status))
		return nil
	},
}

func init() {
	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
}
