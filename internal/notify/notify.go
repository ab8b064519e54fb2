// Package notify posts desktop notifications.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Desktop posts notifications through the platform notification service.
type Desktop struct {
	// Icon is an optional image path shown with the notification.
	Icon string

	send func(title, message, icon string) error
}

// NewDesktop returns a Desktop notifier. appName is how the sender is
// identified on platforms that show it.
func NewDesktop(appName, icon string) *Desktop {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Desktop{Icon: icon, send: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// Post shows one notification.
func (d *Desktop) Post(title, body string) error {
	send := d.send
	if send == nil {
		send = func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		}
	}
	if err := send(title, body, d.Icon); err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}
	return nil
}
