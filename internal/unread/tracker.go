// Package unread reacts to unread-count updates: it alerts on increases
// and keeps the tray badge in sync with the latest count.
package unread

import (
	"fmt"
	"sync"

	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// Alerter plays the audible alert. Trigger must not block.
type Alerter interface {
	Trigger()
}

// Poster posts a desktop notification.
type Poster interface {
	Post(title, body string) error
}

// painter is the part of *Painter the tracker depends on.
type painter interface {
	Request(count int)
}

// Options toggles the side effects of an increase.
type Options struct {
	AppName              string
	SoundEnabled         bool
	NotificationsEnabled bool
}

// Tracker holds the last known unread count and drives the alert, the
// notification and the tray badge. It is safe for concurrent use.
type Tracker struct {
	alerter Alerter
	poster  Poster
	painter painter

	mu   sync.Mutex
	last int
	opts Options

	// notifyWG lets tests wait for asynchronous notification posts.
	notifyWG sync.WaitGroup
}

// NewTracker creates a Tracker whose last known count is 0.
func NewTracker(p painter, alerter Alerter, poster Poster, opts Options) *Tracker {
	if opts.AppName == "" {
		opts.AppName = "Messenger"
	}
	return &Tracker{
		alerter: alerter,
		poster:  poster,
		painter: p,
		opts:    opts,
	}
}

// Last returns the last known count.
func (t *Tracker) Last() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// SetOptions replaces the sound/notification toggles, e.g. after a
// configuration reload.
func (t *Tracker) SetOptions(opts Options) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if opts.AppName == "" {
		opts.AppName = t.opts.AppName
	}
	t.opts = opts
}

// OnCount handles one received count. An increase over the last known
// count triggers the alert and a notification; every count is stored and
// painted. Negative counts are ignored.
func (t *Tracker) OnCount(count int) {
	if count < 0 {
		logging.Warn(logging.CatBridge, "Ignoring negative unread count", map[string]any{"count": count})
		return
	}

	t.mu.Lock()
	increased := count > t.last
	prev := t.last
	t.last = count
	opts := t.opts
	// Requesting under the lock keeps paint order equal to arrival order
	t.painter.Request(count)
	t.mu.Unlock()

	if !increased {
		return
	}

	logging.Info(logging.CatNotify, "Unread count increased", map[string]any{
		"from": prev,
		"to":   count,
	})

	if opts.SoundEnabled && t.alerter != nil {
		t.alerter.Trigger()
	}
	if opts.NotificationsEnabled && t.poster != nil {
		t.notify(opts.AppName, NotificationBody(count))
	}
}

// NotificationBody is the notification text for count.
func NotificationBody(count int) string {
	return fmt.Sprintf("You have %d unread message(s)", count)
}

func (t *Tracker) notify(title, body string) {
	t.notifyWG.Add(1)
	go func() {
		defer t.notifyWG.Done()
		defer func() {
			if r := recover(); r != nil {
				logging.Error(logging.CatNotify, "Notification panicked", map[string]any{"panic": fmt.Sprint(r)})
			}
		}()
		if err := t.poster.Post(title, body); err != nil {
			logging.Error(logging.CatNotify, "Notification failed", map[string]any{"error": err.Error()})
		}
	}()
}

// Wait blocks until in-flight notification posts have finished.
func (t *Tracker) Wait() {
	t.notifyWG.Wait()
}
