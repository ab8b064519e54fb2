//go:build linux

package autostart

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLinuxManager_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	m := New()

	if m.IsEnabled() {
		t.Fatal("fresh config dir should not be enabled")
	}
	if status, _ := m.Status(); status != "disabled" {
		t.Errorf("Status() = %q, want disabled", status)
	}

	if err := m.Enable(); err != nil {
		t.Fatalf("Enable failed: %v", err)
	}
	if !m.IsEnabled() {
		t.Error("IsEnabled() = false after Enable")
	}

	entry := filepath.Join(dir, "autostart", "messenger-tray.desktop")
	data, err := os.ReadFile(entry)
	if err != nil {
		t.Fatalf("desktop entry not written: %v", err)
	}
	exe, _ := executablePath()
	for _, want := range []string{"[Desktop Entry]", "Type=Application", `Exec="` + exe + `"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("desktop entry missing %q:\n%s", want, data)
		}
	}

	if err := m.Enable(); !errors.Is(err, ErrAlreadyEnabled) {
		t.Errorf("second Enable = %v, want ErrAlreadyEnabled", err)
	}

	status, err := m.Status()
	if err != nil || !strings.HasPrefix(status, "enabled") {
		t.Errorf("Status() = %q, %v", status, err)
	}

	if err := m.Disable(); err != nil {
		t.Fatalf("Disable failed: %v", err)
	}
	if m.IsEnabled() {
		t.Error("IsEnabled() = true after Disable")
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Error("desktop entry still present after Disable")
	}
	if err := m.Disable(); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("second Disable = %v, want ErrNotEnabled", err)
	}
}
