// Package welcome handles the first-run hint.
package welcome

import (
	"fmt"
	"os"
	"path/filepath"
)

const markerFileName = ".messenger-tray-welcomed"

// getMarkerPath returns the path to the first-run marker file
func getMarkerPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "messenger-tray", markerFileName), nil
}

// IsFirstRun checks if this is the first time the app is running
func IsFirstRun() bool {
	markerPath, err := getMarkerPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(markerPath)
	return os.IsNotExist(err)
}

// MarkAsShown creates the marker file to indicate welcome has been shown
func MarkAsShown() error {
	markerPath, err := getMarkerPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(markerPath), 0o755); err != nil {
		return err
	}

	f, err := os.Create(markerPath)
	if err != nil {
		return err
	}
	return f.Close()
}

// Message is the first-run notification body. statusURL is the local
// status page that links the userscript.
func Message(statusURL string) string {
	return fmt.Sprintf("Running in the tray. Install the page script from %s to see your unread count.", statusURL)
}
