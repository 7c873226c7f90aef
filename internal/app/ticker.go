package app

import (
	"time"

	"github.com/wireview/wireview/internal/event"
)

// renderTicker publishes a Render event at a fixed cadence so the view
// repaints even when no packets arrive.
type renderTicker struct {
	bus    *event.Bus
	period time.Duration
	quit   chan struct{}
	done   chan struct{}
}

func newRenderTicker(bus *event.Bus, fps int) *renderTicker {
	return &renderTicker{
		bus:    bus,
		period: time.Second / time.Duration(fps),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (t *renderTicker) run() {
	defer close(t.done)

	tick := time.NewTicker(t.period)
	defer tick.Stop()

	for {
		select {
		case <-t.quit:
			return
		case <-tick.C:
			if err := t.bus.Publish(event.Event{Kind: event.Render}); err != nil {
				return
			}
		}
	}
}

func (t *renderTicker) stop() {
	close(t.quit)
	<-t.done
}
