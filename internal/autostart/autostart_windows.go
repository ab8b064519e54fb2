//go:build windows

package autostart

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	registryKey  = `Software\Microsoft\Windows\CurrentVersion\Run`
	registryName = "MessengerTray"
)

type windowsManager struct{}

// New creates a new platform-specific login item manager
func New() Manager {
	return &windowsManager{}
}

func (m *windowsManager) Enable() error {
	if m.IsEnabled() {
		return ErrAlreadyEnabled
	}

	execPath, err := executablePath()
	if err != nil {
		return err
	}

	key, _, err := registry.CreateKey(
		registry.CURRENT_USER,
		registryKey,
		registry.SET_VALUE,
	)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(registryName, fmt.Sprintf(`"%s"`, execPath)); err != nil {
		return fmt.Errorf("failed to set registry value: %w", err)
	}
	return nil
}

func (m *windowsManager) Disable() error {
	if !m.IsEnabled() {
		return ErrNotEnabled
	}

	key, err := registry.OpenKey(
		registry.CURRENT_USER,
		registryKey,
		registry.SET_VALUE,
	)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(registryName); err != nil {
		return fmt.Errorf("failed to delete registry value: %w", err)
	}
	return nil
}

func (m *windowsManager) IsEnabled() bool {
	key, err := registry.OpenKey(
		registry.CURRENT_USER,
		registryKey,
		registry.QUERY_VALUE,
	)
	if err != nil {
		return false
	}
	defer key.Close()

	_, _, err = key.GetStringValue(registryName)
	return err == nil
}

func (m *windowsManager) Status() (string, error) {
	if !m.IsEnabled() {
		return "disabled", nil
	}
	return "enabled (starts at login)", nil
}
