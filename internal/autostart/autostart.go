// Package autostart registers the app to start at user login.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Common errors
var (
	ErrNotEnabled     = errors.New("start at login is not enabled")
	ErrAlreadyEnabled = errors.New("start at login is already enabled")
	ErrUnsupported    = errors.New("start at login is not supported on this platform")
)

// Manager represents a platform-specific login item.
type Manager interface {
	Enable() error
	Disable() error
	IsEnabled() bool
	Status() (string, error)
}

// executablePath returns the absolute, symlink-free path of the running binary.
func executablePath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}

	execPath, err = filepath.Abs(execPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return execPath, nil
}

// Toggle enables the login item when checked is false and disables it
// otherwise. It returns the resulting checkbox state, which is unchanged
// when the OS registration fails.
func Toggle(m Manager, checked bool) (bool, error) {
	if checked {
		if err := m.Disable(); err != nil && !errors.Is(err, ErrNotEnabled) {
			return true, err
		}
		return false, nil
	}

	if err := m.Enable(); err != nil && !errors.Is(err, ErrAlreadyEnabled) {
		return false, err
	}
	return true, nil
}
