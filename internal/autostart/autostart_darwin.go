//go:build darwin

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const (
	agentLabel    = "com.simplyprint.messenger-tray"
	agentTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.ExecutablePath}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>ProcessType</key>
	<string>Interactive</string>
</dict>
</plist>
`
)

var agentTmpl = template.Must(template.New("plist").Parse(agentTemplate))

type darwinManager struct{}

// New creates a new platform-specific login item manager
func New() Manager {
	return &darwinManager{}
}

func (m *darwinManager) plistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"), nil
}

func (m *darwinManager) Enable() error {
	if m.IsEnabled() {
		return ErrAlreadyEnabled
	}

	execPath, err := executablePath()
	if err != nil {
		return err
	}

	path, err := m.plistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create launch agent: %w", err)
	}
	defer f.Close()

	data := struct {
		Label          string
		ExecutablePath string
	}{agentLabel, execPath}
	if err := agentTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to write launch agent: %w", err)
	}
	return nil
}

func (m *darwinManager) Disable() error {
	if !m.IsEnabled() {
		return ErrNotEnabled
	}

	path, err := m.plistPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove launch agent: %w", err)
	}
	return nil
}

func (m *darwinManager) IsEnabled() bool {
	path, err := m.plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (m *darwinManager) Status() (string, error) {
	if !m.IsEnabled() {
		return "disabled", nil
	}
	return "enabled (starts at login)", nil
}
