package welcome

import (
	"strings"
	"testing"
)

func TestFirstRunMarker(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	if !IsFirstRun() {
		t.Fatal("IsFirstRun() = false with an empty config dir")
	}
	if err := MarkAsShown(); err != nil {
		t.Fatalf("MarkAsShown failed: %v", err)
	}
	if IsFirstRun() {
		t.Error("IsFirstRun() = true after MarkAsShown")
	}
	if err := MarkAsShown(); err != nil {
		t.Errorf("second MarkAsShown failed: %v", err)
	}
}

func TestMessage(t *testing.T) {
	msg := Message("http://127.0.0.1:32146/")
	if !strings.Contains(msg, "http://127.0.0.1:32146/") {
		t.Errorf("Message() = %q, missing status URL", msg)
	}
}
