//go:build linux

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const (
	entryName     = "messenger-tray"
	entryTemplate = `[Desktop Entry]
Type=Application
Name=Messenger Tray
Comment=Unread message badge for Messenger
Exec="{{.ExecutablePath}}"
Terminal=false
X-GNOME-Autostart-enabled=true
`
)

var entryTmpl = template.Must(template.New("desktop").Parse(entryTemplate))

type linuxManager struct{}

// New creates a new platform-specific login item manager
func New() Manager {
	return &linuxManager{}
}

// entryPath honors XDG_CONFIG_HOME.
func (m *linuxManager) entryPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "autostart", entryName+".desktop"), nil
}

func (m *linuxManager) Enable() error {
	if m.IsEnabled() {
		return ErrAlreadyEnabled
	}

	execPath, err := executablePath()
	if err != nil {
		return err
	}

	path, err := m.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create desktop entry: %w", err)
	}
	defer f.Close()

	if err := entryTmpl.Execute(f, struct{ ExecutablePath string }{execPath}); err != nil {
		return fmt.Errorf("failed to write desktop entry: %w", err)
	}
	return nil
}

func (m *linuxManager) Disable() error {
	if !m.IsEnabled() {
		return ErrNotEnabled
	}

	path, err := m.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove desktop entry: %w", err)
	}
	return nil
}

func (m *linuxManager) IsEnabled() bool {
	path, err := m.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (m *linuxManager) Status() (string, error) {
	if !m.IsEnabled() {
		return "disabled", nil
	}
	path, err := m.entryPath()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("enabled (%s)", path), nil
}
