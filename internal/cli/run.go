package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SimplyPrint/messenger-tray/internal/alert"
	"github.com/SimplyPrint/messenger-tray/internal/assets"
	"github.com/SimplyPrint/messenger-tray/internal/autostart"
	"github.com/SimplyPrint/messenger-tray/internal/badge"
	"github.com/SimplyPrint/messenger-tray/internal/bridge"
	"github.com/SimplyPrint/messenger-tray/internal/buildinfo"
	"github.com/SimplyPrint/messenger-tray/internal/config"
	"github.com/SimplyPrint/messenger-tray/internal/extractor"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
	"github.com/SimplyPrint/messenger-tray/internal/notify"
	"github.com/SimplyPrint/messenger-tray/internal/tray"
	"github.com/SimplyPrint/messenger-tray/internal/unread"
	"github.com/SimplyPrint/messenger-tray/internal/welcome"
)

const shutdownTimeout = 5 * time.Second

func trackerOptions(cfg *config.Config) unread.Options {
	return unread.Options{
		AppName:              cfg.AppName,
		SoundEnabled:         cfg.SoundEnabled,
		NotificationsEnabled: cfg.NotificationsEnabled,
	}
}

// runHost runs the tray session: bridge server, tracker, alert and
// notifications, with or without a tray icon.
func runHost(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logging.Info(logging.CatSystem, "Starting messenger-tray", map[string]any{
		"version": buildinfo.DisplayVersion(),
		"address": cfg.Address(),
		"config":  path,
	})

	soundPath := cfg.SoundFile
	if soundPath == "" {
		soundPath, err = assets.DefaultSoundPath()
		if err != nil {
			logging.Warn(logging.CatAlert, "No alert clip available, using beep", map[string]any{"error": err.Error()})
			soundPath = ""
		}
	}

	// Bind before showing the tray so a busy port fails fast
	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
	}

	renderer := badge.New(assets.Icon, cfg.AppName)
	idle, err := renderer.Render(0)
	if err != nil {
		listener.Close()
		return fmt.Errorf("failed to prepare tray icon: %w", err)
	}

	var app *tray.TrayApp
	var presenter unread.Presenter = tray.LogPresenter{}
	if !noTray {
		app = tray.New(tray.Options{
			AppName:   cfg.AppName,
			URL:       cfg.URL,
			Icon:      idle.Icon,
			Autostart: autostart.New(),
		})
		presenter = app
	}

	painter := unread.NewPainter(renderer.Render, presenter)
	alerter := alert.New(alert.NewCommandPlayer(), soundPath)
	notifier := notify.NewDesktop(cfg.AppName, "")
	tracker := unread.NewTracker(painter, alerter, notifier, trackerOptions(cfg))

	hub := bridge.NewWSHub(func(n int) {
		if app != nil {
			app.SetPageStatus(n)
		}
	})
	go hub.Run()

	server := &http.Server{
		Handler:           bridge.NewServer(cfg, hub, tracker.OnCount).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := func() {
		go func() {
			logging.Info(logging.CatBridge, "Bridge listening", map[string]any{"url": cfg.BridgeURL()})
			if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error(logging.CatBridge, "Bridge server failed", map[string]any{"error": err.Error()})
				stop()
			}
		}()

		if path != "" {
			go watchConfig(ctx, path, tracker)
		}

		if snapshot != "" {
			source := extractor.SourceFor(snapshot, cfg.UserAgent)
			scanner := extractor.NewScanner(source, extractor.SinkFunc(tracker.OnCount), cfg.PollInterval)
			go scanner.Run(ctx)
		}

		if welcome.IsFirstRun() {
			go showWelcome(notifier, cfg)
		}
	}

	if app == nil {
		start()
		<-ctx.Done()
	} else {
		go func() {
			<-ctx.Done()
			app.Quit()
		}()
		// Blocks until the tray quits
		app.RunWithServer(start)
		stop()
	}

	logging.Info(logging.CatSystem, "Shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Warn(logging.CatBridge, "Bridge shutdown incomplete", map[string]any{"error": err.Error()})
	}
	hub.Stop()
	painter.Close()
	tracker.Wait()
	return nil
}

// watchConfig applies live-reloadable settings. Address changes need a
// restart.
func watchConfig(ctx context.Context, path string, tracker *unread.Tracker) {
	err := config.Watch(ctx, path, func(cfg *config.Config) {
		tracker.SetOptions(trackerOptions(cfg))
		logging.Info(logging.CatSystem, "Configuration reloaded", map[string]any{
			"sound_enabled":         cfg.SoundEnabled,
			"notifications_enabled": cfg.NotificationsEnabled,
		})
	}, func(err error) {
		logging.Warn(logging.CatSystem, "Ignoring invalid configuration", map[string]any{"error": err.Error()})
	})
	if err != nil {
		logging.Warn(logging.CatSystem, "Configuration reload disabled", map[string]any{"error": err.Error()})
	}
}

// showWelcome points a first-time user at the status page.
func showWelcome(notifier *notify.Desktop, cfg *config.Config) {
	statusURL := "http://" + cfg.Address() + "/"
	if err := notifier.Post(cfg.AppName+" Tray", welcome.Message(statusURL)); err != nil {
		logging.Warn(logging.CatNotify, "Welcome notification failed", map[string]any{"error": err.Error()})
	}
	if err := welcome.MarkAsShown(); err != nil {
		logging.Warn(logging.CatSystem, "Failed to record first run", map[string]any{"error": err.Error()})
	}
}
