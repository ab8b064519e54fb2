package notify

import (
	"errors"
	"testing"
)

func TestDesktop_Post(t *testing.T) {
	var gotTitle, gotBody, gotIcon string
	d := &Desktop{Icon: "/tmp/icon.png", send: func(title, message, icon string) error {
		gotTitle, gotBody, gotIcon = title, message, icon
		return nil
	}}

	if err := d.Post("Messenger", "You have 3 unread message(s)"); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if gotTitle != "Messenger" || gotBody != "You have 3 unread message(s)" || gotIcon != "/tmp/icon.png" {
		t.Errorf("sent (%q, %q, %q)", gotTitle, gotBody, gotIcon)
	}
}

func TestDesktop_PostWrapsError(t *testing.T) {
	cause := errors.New("org.freedesktop.Notifications not available")
	d := &Desktop{send: func(string, string, string) error { return cause }}

	err := d.Post("Messenger", "body")
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
