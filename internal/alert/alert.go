// Package alert plays the audible unread alert.
package alert

import (
	"context"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// DefaultTimeout bounds a single playback.
const DefaultTimeout = 10 * time.Second

// Alerter plays the alert clip asynchronously. Each Trigger runs as its
// own task; failures are logged and fall back to a system beep.
type Alerter struct {
	player  Player
	path    string
	timeout time.Duration
	beep    func() error

	wg sync.WaitGroup
}

// New creates an Alerter for the clip at path. An empty path skips
// straight to the beep.
func New(player Player, path string) *Alerter {
	return &Alerter{
		player:  player,
		path:    path,
		timeout: DefaultTimeout,
		beep:    systemBeep,
	}
}

func systemBeep() error {
	return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// Trigger starts playback and returns immediately.
func (a *Alerter) Trigger() {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.play()
	}()
}

// Wait blocks until all started playbacks have finished.
func (a *Alerter) Wait() {
	a.wg.Wait()
}

func (a *Alerter) play() {
	if a.path != "" && a.player != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		err := a.player.Play(ctx, a.path)
		cancel()
		if err == nil {
			return
		}
		logging.Warn(logging.CatAlert, "Sound playback failed", map[string]any{
			"path":  a.path,
			"error": err.Error(),
		})
	}

	if a.beep == nil {
		return
	}
	if err := a.beep(); err != nil {
		logging.Error(logging.CatAlert, "Beep fallback failed", map[string]any{"error": err.Error()})
	}
}
