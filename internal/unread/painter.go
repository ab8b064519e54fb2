package unread

import (
	"sync"

	"github.com/SimplyPrint/messenger-tray/internal/badge"
	"github.com/SimplyPrint/messenger-tray/internal/logging"
)

// RenderFunc produces the tray frame for a count.
type RenderFunc func(count int) (badge.Frame, error)

// Presenter applies a rendered frame to the tray.
type Presenter interface {
	Present(frame badge.Frame)
}

// Painter renders and presents counts on a single worker. It keeps only
// the latest requested count: a request made while a render is in flight
// replaces any older pending one, so the last frame presented always
// belongs to the last request.
type Painter struct {
	render    RenderFunc
	presenter Presenter

	mu      sync.Mutex
	pending int
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewPainter starts a Painter worker.
func NewPainter(render RenderFunc, presenter Presenter) *Painter {
	p := &Painter{
		render:    render,
		presenter: presenter,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go p.loop()
	return p
}

// Request schedules count for painting. It never blocks.
func (p *Painter) Request(count int) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = count
	p.dirty = true
	select {
	case p.wake <- struct{}{}:
	default:
	}
	p.mu.Unlock()
}

// Close paints any pending count, then stops the worker and waits for it.
func (p *Painter) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.closed = true
	close(p.wake)
	p.mu.Unlock()

	<-p.done
}

func (p *Painter) loop() {
	defer close(p.done)
	for range p.wake {
		p.drain()
	}
	p.drain()
}

func (p *Painter) drain() {
	for {
		p.mu.Lock()
		if !p.dirty {
			p.mu.Unlock()
			return
		}
		count := p.pending
		p.dirty = false
		p.mu.Unlock()

		p.paint(count)
	}
}

func (p *Painter) paint(count int) {
	frame, err := p.render(count)
	if err != nil {
		logging.Error(logging.CatBadge, "Tray icon update failed", map[string]any{
			"count": count,
			"error": err.Error(),
		})
		return
	}
	p.presenter.Present(frame)
}
