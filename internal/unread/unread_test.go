package unread

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SimplyPrint/messenger-tray/internal/assets"
	"github.com/SimplyPrint/messenger-tray/internal/badge"
)

type fakeAlerter struct {
	n atomic.Int32
}

func (f *fakeAlerter) Trigger() { f.n.Add(1) }

type fakePoster struct {
	mu     sync.Mutex
	titles []string
	bodies []string
	err    error
}

func (f *fakePoster) Post(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return f.err
}

func (f *fakePoster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

type recordingPresenter struct {
	mu     sync.Mutex
	frames []badge.Frame
}

func (r *recordingPresenter) Present(frame badge.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

func (r *recordingPresenter) all() []badge.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]badge.Frame(nil), r.frames...)
}

func (r *recordingPresenter) last() badge.Frame {
	frames := r.all()
	if len(frames) == 0 {
		return badge.Frame{}
	}
	return frames[len(frames)-1]
}

// textRender avoids image work; the tooltip carries the count.
func textRender(count int) (badge.Frame, error) {
	if count == 0 {
		return badge.Frame{Count: 0, Tooltip: "Messenger"}, nil
	}
	return badge.Frame{Count: count, Tooltip: fmt.Sprintf("Messenger - %d unread", count)}, nil
}

type harness struct {
	tracker   *Tracker
	painter   *Painter
	presenter *recordingPresenter
	alerter   *fakeAlerter
	poster    *fakePoster
}

func newHarness(render RenderFunc) *harness {
	h := &harness{
		presenter: &recordingPresenter{},
		alerter:   &fakeAlerter{},
		poster:    &fakePoster{},
	}
	h.painter = NewPainter(render, h.presenter)
	h.tracker = NewTracker(h.painter, h.alerter, h.poster, Options{
		AppName:              "Messenger",
		SoundEnabled:         true,
		NotificationsEnabled: true,
	})
	return h
}

// settle waits for all paints and notification posts to finish.
func (h *harness) settle() {
	h.painter.Close()
	h.tracker.Wait()
}

func TestTracker_AlertsOnlyOnIncrease(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		alerts int
	}{
		{"single increase", []int{3}, 1},
		{"strictly increasing", []int{1, 2, 3}, 3},
		{"unchanged", []int{2, 2, 2}, 1},
		{"decrease is silent", []int{5, 3, 1}, 1},
		{"zero never alerts", []int{0, 0}, 0},
		{"back up after decrease", []int{4, 1, 2}, 2},
		{"above max label compares true value", []int{200, 150}, 1},
		{"above max label still increases", []int{120, 130}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(textRender)
			for _, c := range tt.counts {
				h.tracker.OnCount(c)
			}
			h.settle()

			if got := int(h.alerter.n.Load()); got != tt.alerts {
				t.Errorf("alerts = %d, want %d", got, tt.alerts)
			}
			if got := h.poster.count(); got != tt.alerts {
				t.Errorf("notifications = %d, want %d", got, tt.alerts)
			}
			if got := h.tracker.Last(); got != tt.counts[len(tt.counts)-1] {
				t.Errorf("Last() = %d, want %d", got, tt.counts[len(tt.counts)-1])
			}
		})
	}
}

func TestTracker_EndToEndSequence(t *testing.T) {
	h := newHarness(textRender)

	for _, c := range []int{0, 0, 2, 2, 5} {
		h.tracker.OnCount(c)
	}
	h.settle()

	if got := h.alerter.n.Load(); got != 2 {
		t.Errorf("alerts = %d, want 2", got)
	}
	h.poster.mu.Lock()
	bodies := append([]string(nil), h.poster.bodies...)
	titles := append([]string(nil), h.poster.titles...)
	h.poster.mu.Unlock()

	if len(bodies) != 2 {
		t.Fatalf("notifications = %v, want 2", bodies)
	}
	seen := map[string]bool{bodies[0]: true, bodies[1]: true}
	if !seen["You have 2 unread message(s)"] || !seen["You have 5 unread message(s)"] {
		t.Errorf("notification bodies = %v", bodies)
	}
	for _, title := range titles {
		if title != "Messenger" {
			t.Errorf("title = %q, want Messenger", title)
		}
	}

	if got := h.presenter.last().Tooltip; got != "Messenger - 5 unread" {
		t.Errorf("final tooltip = %q", got)
	}
}

func TestTracker_ZeroResetsToIdle(t *testing.T) {
	h := newHarness(textRender)

	h.tracker.OnCount(7)
	h.tracker.OnCount(0)
	h.settle()

	last := h.presenter.last()
	if last.Count != 0 || last.Tooltip != "Messenger" {
		t.Errorf("final frame = %+v, want idle", last)
	}
}

func TestTracker_NegativeIgnored(t *testing.T) {
	h := newHarness(textRender)

	h.tracker.OnCount(3)
	h.tracker.OnCount(-1)
	h.settle()

	if h.tracker.Last() != 3 {
		t.Errorf("Last() = %d, want 3", h.tracker.Last())
	}
	for _, f := range h.presenter.all() {
		if f.Count < 0 {
			t.Error("negative count must not be painted")
		}
	}
}

func TestTracker_Toggles(t *testing.T) {
	h := newHarness(textRender)
	h.tracker.SetOptions(Options{SoundEnabled: false, NotificationsEnabled: true})

	h.tracker.OnCount(1)
	h.tracker.SetOptions(Options{SoundEnabled: true, NotificationsEnabled: false})
	h.tracker.OnCount(2)
	h.settle()

	if got := h.alerter.n.Load(); got != 1 {
		t.Errorf("alerts = %d, want 1", got)
	}
	if got := h.poster.count(); got != 1 {
		t.Errorf("notifications = %d, want 1", got)
	}
	h.poster.mu.Lock()
	title := h.poster.titles[0]
	h.poster.mu.Unlock()
	if title != "Messenger" {
		t.Errorf("empty AppName in SetOptions should keep the previous one, got %q", title)
	}
}

func TestTracker_NotificationFailureIsContained(t *testing.T) {
	h := newHarness(textRender)
	h.poster.err = errors.New("dbus unavailable")

	h.tracker.OnCount(1)
	h.tracker.OnCount(4)
	h.settle()

	if got := h.alerter.n.Load(); got != 2 {
		t.Errorf("alerts = %d, want 2 (notification failure must not stop alerts)", got)
	}
	if got := h.presenter.last().Count; got != 4 {
		t.Errorf("final painted count = %d, want 4", got)
	}
}

type panickyPoster struct{}

func (panickyPoster) Post(string, string) error { panic("boom") }

func TestTracker_NotificationPanicIsContained(t *testing.T) {
	p := &recordingPresenter{}
	painter := NewPainter(textRender, p)
	tr := NewTracker(painter, nil, panickyPoster{}, Options{NotificationsEnabled: true})

	tr.OnCount(1)
	painter.Close()
	tr.Wait()

	if p.last().Count != 1 {
		t.Errorf("final painted count = %d, want 1", p.last().Count)
	}
}

func TestTracker_Concurrent(t *testing.T) {
	h := newHarness(textRender)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				h.tracker.OnCount(j % 10)
			}
		}(i)
	}
	wg.Wait()
	h.tracker.OnCount(42)
	h.settle()

	if h.tracker.Last() != 42 {
		t.Errorf("Last() = %d, want 42", h.tracker.Last())
	}
	if h.presenter.last().Count != 42 {
		t.Errorf("final painted count = %d, want 42", h.presenter.last().Count)
	}
}

func TestPainter_SlowStaleRenderDoesNotWin(t *testing.T) {
	release := make(chan struct{})
	started := make(chan int, 4)
	render := func(count int) (badge.Frame, error) {
		started <- count
		if count == 3 {
			<-release
		}
		return textRender(count)
	}

	p := &recordingPresenter{}
	painter := NewPainter(render, p)

	painter.Request(3)
	if got := <-started; got != 3 {
		t.Fatalf("first render = %d, want 3", got)
	}
	// Render for 3 is in flight and slower than the one for 7
	painter.Request(7)
	close(release)
	painter.Close()

	frames := p.all()
	if len(frames) != 2 || frames[0].Count != 3 || frames[1].Count != 7 {
		t.Fatalf("presented %+v, want counts [3 7]", frames)
	}
	if got := p.last().Tooltip; got != "Messenger - 7 unread" {
		t.Errorf("final tooltip = %q, want the latest request", got)
	}
}

func TestPainter_CoalescesPendingRequests(t *testing.T) {
	release := make(chan struct{})
	started := make(chan int, 8)
	render := func(count int) (badge.Frame, error) {
		started <- count
		if count == 1 {
			<-release
		}
		return textRender(count)
	}

	p := &recordingPresenter{}
	painter := NewPainter(render, p)

	painter.Request(1)
	<-started
	painter.Request(2)
	painter.Request(5)
	painter.Request(9)
	close(release)
	painter.Close()

	frames := p.all()
	if len(frames) != 2 || frames[0].Count != 1 || frames[1].Count != 9 {
		t.Errorf("presented %+v, want counts [1 9]", frames)
	}
}

func TestPainter_RenderFailureKeepsPreviousFrame(t *testing.T) {
	render := func(count int) (badge.Frame, error) {
		if count == 4 {
			return badge.Frame{}, errors.New("corrupt icon")
		}
		return textRender(count)
	}

	p := &recordingPresenter{}
	painter := NewPainter(render, p)

	painter.Request(2)
	// Wait for the first frame so the failing request is not coalesced away
	deadline := time.Now().Add(2 * time.Second)
	for len(p.all()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	painter.Request(4)
	painter.Close()

	frames := p.all()
	if len(frames) != 1 || frames[0].Count != 2 {
		t.Errorf("presented %+v, want only the frame for 2", frames)
	}
}

func TestPainter_RequestAfterCloseIsDropped(t *testing.T) {
	p := &recordingPresenter{}
	painter := NewPainter(textRender, p)
	painter.Close()
	painter.Request(5)
	painter.Close()

	if len(p.all()) != 0 {
		t.Errorf("presented %+v after close", p.all())
	}
}

func TestTracker_WithBadgeRenderer(t *testing.T) {
	r := badge.New(assets.Icon, "Messenger")
	h := newHarness(r.Render)

	h.tracker.OnCount(150)
	h.tracker.OnCount(120)
	h.settle()

	if got := h.alerter.n.Load(); got != 1 {
		t.Errorf("alerts = %d, want 1", got)
	}
	last := h.presenter.last()
	if last.Tooltip != "Messenger - 120 unread" {
		t.Errorf("final tooltip = %q", last.Tooltip)
	}
	if len(last.Icon) == 0 {
		t.Error("final frame has no icon")
	}
}
