//go:build !linux && !darwin && !windows

package autostart

type unsupportedManager struct{}

// New returns a manager that reports login items as unavailable.
func New() Manager {
	return unsupportedManager{}
}

func (unsupportedManager) Enable() error           { return ErrUnsupported }
func (unsupportedManager) Disable() error          { return ErrUnsupported }
func (unsupportedManager) IsEnabled() bool         { return false }
func (unsupportedManager) Status() (string, error) { return "unsupported", nil }
