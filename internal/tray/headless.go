package tray

import (
	"github.com/SimplyPrint/messenger-tray/internal/badge"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// LogPresenter stands in for the tray when running with --no-tray.
type LogPresenter struct{}

func (LogPresenter) Present(frame badge.Frame) {
	logging.Info(logging.CatTray, "Badge updated", map[string]any{
		"count":   frame.Count,
		"tooltip": frame.Tooltip,
	})
}
