//go:build darwin

package tray

import (
	"os/exec"
	"time"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// WaitForGUI waits for the GUI/WindowServer to be ready.
// Uses pgrep to check for WindowServer process.
// Returns true if GUI is ready, false if timed out.
func WaitForGUI(timeout time.Duration, retryInterval time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		cmd := exec.Command("pgrep", "-x", "WindowServer")
		if err := cmd.Run(); err == nil {
			// WindowServer is running, give it a moment to be fully ready
			time.Sleep(500 * time.Millisecond)
			logging.Info(logging.CatTray, "WindowServer is ready", nil)
			return true
		}
		logging.Infof(logging.CatTray, "Waiting for WindowServer... (%.0fs remaining)", time.Until(deadline).Seconds())
		time.Sleep(retryInterval)
	}

	logging.Warn(logging.CatTray, "Timed out waiting for WindowServer", nil)
	return false
}
