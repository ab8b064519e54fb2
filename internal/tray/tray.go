package tray

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/getlantern/systray"

	"github.com/SimplyPrint/messenger-tray/internal/autostart"
	"github.com/SimplyPrint/messenger-tray/internal/badge"
	"github.com/SimplyPrint/messenger-tray/internal/buildinfo"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// Options configures a TrayApp.
type Options struct {
	AppName   string
	URL       string
	Icon      []byte // idle icon in the platform tray format
	Autostart autostart.Manager
	OnQuit    func()
}

// TrayApp manages the system tray icon and menu. It implements
// unread.Presenter.
type TrayApp struct {
	opts Options

	mu        sync.Mutex
	ready     bool
	frame     *badge.Frame
	pageConns int

	mStatus    *systray.MenuItem
	mAutostart *systray.MenuItem
}

// New creates a new TrayApp instance
func New(opts Options) *TrayApp {
	if opts.AppName == "" {
		opts.AppName = "Messenger"
	}
	return &TrayApp{opts: opts}
}

// RunWithServer runs the tray on the main thread and starts the server in a goroutine.
// This function BLOCKS - it must be called from the main goroutine on macOS.
func (t *TrayApp) RunWithServer(serverStart func()) {
	// Wait for GUI/WindowServer to be ready (handles macOS startup race condition)
	if !WaitForGUI(30*time.Second, 1*time.Second) {
		logging.Warn(logging.CatTray, "GUI may not be ready, systray initialization may fail", nil)
	}

	systray.Run(func() {
		t.onReady()
		if serverStart != nil {
			go serverStart()
		}
	}, t.onExit)
}

// Quit closes the tray, which makes RunWithServer return.
func (t *TrayApp) Quit() {
	systray.Quit()
}

func (t *TrayApp) onReady() {
	systray.SetIcon(t.opts.Icon)
	systray.SetTitle("") // Empty title for cleaner menu bar (macOS)
	systray.SetTooltip(t.opts.AppName)

	mVersion := systray.AddMenuItem(fmt.Sprintf("%s Tray %s", t.opts.AppName, buildinfo.DisplayVersion()), "")
	mVersion.Disable()

	systray.AddSeparator()

	mStatus := systray.AddMenuItem(PageStatusTitle(0), "Connection to the open page")
	mStatus.Disable()

	mShow := systray.AddMenuItem("Show "+t.opts.AppName, "Open "+t.opts.AppName+" in the browser")

	systray.AddSeparator()

	enabled := t.opts.Autostart != nil && t.opts.Autostart.IsEnabled()
	mAutostart := systray.AddMenuItemCheckbox("Start at login", "Launch when you log in", enabled)
	if t.opts.Autostart == nil {
		mAutostart.Disable()
	}

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit "+t.opts.AppName+" Tray")

	t.mu.Lock()
	t.ready = true
	t.mStatus = mStatus
	t.mAutostart = mAutostart
	mStatus.SetTitle(PageStatusTitle(t.pageConns))
	frame := t.frame
	t.mu.Unlock()

	if frame != nil {
		t.apply(*frame)
	}

	go func() {
		for {
			select {
			case <-mShow.ClickedCh:
				openBrowser(t.opts.URL)
			case <-mAutostart.ClickedCh:
				t.toggleAutostart()
			case <-mQuit.ClickedCh:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	if t.opts.OnQuit != nil {
		t.opts.OnQuit()
	}
}

// Present shows a rendered frame. Frames presented before the tray is
// ready are applied once it is.
func (t *TrayApp) Present(frame badge.Frame) {
	t.mu.Lock()
	t.frame = &frame
	ready := t.ready
	t.mu.Unlock()

	if ready {
		t.apply(frame)
	}
}

func (t *TrayApp) apply(frame badge.Frame) {
	if len(frame.Icon) > 0 {
		systray.SetIcon(frame.Icon)
	}
	systray.SetTooltip(frame.Tooltip)
}

// SetPageStatus updates the page connection line.
func (t *TrayApp) SetPageStatus(connections int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pageConns = connections
	if t.mStatus != nil {
		t.mStatus.SetTitle(PageStatusTitle(connections))
	}
}

// PageStatusTitle is the status line for n page connections.
func PageStatusTitle(n int) string {
	if n > 0 {
		return "Page: connected"
	}
	return "Page: not connected"
}

// toggleAutostart flips the login item. The checkbox only changes when
// the OS registration succeeds.
func (t *TrayApp) toggleAutostart() {
	t.mu.Lock()
	item := t.mAutostart
	t.mu.Unlock()
	if item == nil || t.opts.Autostart == nil {
		return
	}

	checked, err := autostart.Toggle(t.opts.Autostart, item.Checked())
	if err != nil {
		logging.Error(logging.CatTray, "Failed to change start at login", map[string]any{"error": err.Error()})
	} else {
		logging.Info(logging.CatTray, "Start at login changed", map[string]any{"enabled": checked})
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		logging.Error(logging.CatTray, "Failed to open browser", map[string]any{"url": url, "error": err.Error()})
		return
	}
	go cmd.Wait()
}
