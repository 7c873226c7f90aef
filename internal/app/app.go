// Package app runs the capture session: it wires the capture worker, the
// render ticker, and the input listener to the event bus and consumes the
// merged stream on a single goroutine that owns all mutable state.
package app

import (
	"fmt"

	"github.com/tevino/abool"

	"github.com/wireview/wireview/internal/config"
	"github.com/wireview/wireview/internal/event"
	"github.com/wireview/wireview/internal/log"
	"github.com/wireview/wireview/internal/netif"
	"github.com/wireview/wireview/internal/source"
	"github.com/wireview/wireview/internal/store"
)

// App is the application core. All state below the bus — store, counters,
// selection, UI state — is touched only by the goroutine running the event
// loop, so none of it needs locking.
type App struct {
	cfg      *config.Config
	logg     log.Logger
	registry *netif.Registry
	bus      *event.Bus
	store    *store.PacketStore
	view     View
	keys     KeySource
	open     source.Factory

	paused    *abool.AtomicBool
	worker    *captureWorker
	ticker    *renderTicker
	inputDone chan struct{}

	state      State
	detailFrom State
	active     string
	notice     string
}

func New(cfg *config.Config, view View, keys KeySource) *App {
	return &App{
		cfg:      cfg,
		logg:     log.GetLogger().WithField("component", "app"),
		registry: netif.NewRegistry(),
		bus:      event.NewBus(),
		store:    store.New(cfg.UI.MaxPackets),
		view:     view,
		keys:     keys,
		open:     source.Open,
		paused:   abool.New(),
		state:    StateRunning,
	}
}

// Run starts capture plus the two auxiliary producers and consumes the bus
// until the session terminates. The error is non-nil only when the session
// could not start at all; failures after startup are reported through the
// view and the log.
func (a *App) Run() error {
	if err := a.registry.Refresh(); err != nil {
		return fmt.Errorf("enumerate interfaces: %w", err)
	}

	device := a.cfg.Capture.Device
	if device == "" {
		first, err := a.registry.First()
		if err != nil {
			return err
		}
		device = first.Name
	}
	if err := a.startCapture(device); err != nil {
		return err
	}
	a.logg.WithField("device", device).Info("capture started")

	a.ticker = newRenderTicker(a.bus, a.cfg.UI.TickRate)
	go a.ticker.run()

	a.inputDone = make(chan struct{})
	go a.runInput()

	a.loop()
	a.shutdown()
	return nil
}

func (a *App) startCapture(device string) error {
	cfg := a.cfg.Capture
	cfg.Device = device
	src, err := a.open(cfg)
	if err != nil {
		return err
	}
	a.active = device
	a.worker = newCaptureWorker(src, a.bus, a.paused, a.logg)
	go a.worker.run()
	return nil
}

func (a *App) loop() {
	for a.state != StateTerminated {
		ev, ok := a.bus.Next()
		if !ok {
			a.state = StateTerminated
			return
		}
		a.dispatch(ev)
	}
}

func (a *App) dispatch(ev event.Event) {
	switch ev.Kind {
	case event.PacketCaptured:
		a.appendPacket(ev)
	case event.Render:
		a.render()
	case event.Input:
		a.handleKey(ev.Key)
	}
}

func (a *App) appendPacket(ev event.Event) {
	// After a reset-on-switch, frames from the old interface may still be
	// in flight on the bus; they belong to the discarded session.
	if a.cfg.UI.ResetOnSwitch && ev.Packet.Interface != a.active {
		return
	}
	a.store.Append(ev.Packet)
}

func (a *App) render() {
	if a.state == StateTerminated {
		return
	}
	if err := a.view.Render(a.snapshot()); err != nil {
		a.logg.WithError(err).Error("render failed")
	}
}

func (a *App) snapshot() Snapshot {
	packets, bytes := a.store.Counters().Totals()
	snap := Snapshot{
		Packets:      a.store.Packets(),
		Counters:     a.store.Counters().Snapshot(),
		TotalPackets: packets,
		TotalBytes:   bytes,
		State:        a.state,
		Selected:     a.store.Selected(),
		Interfaces:   a.registry.List(),
		Active:       a.active,
		Notice:       a.notice,
	}
	if a.state == StateShowingDetail {
		snap.Detail = a.store.SelectedPacket()
	}
	return snap
}

func (a *App) handleKey(k event.Key) {
	if a.state == StateShowingDetail {
		switch {
		case k.Code == event.KeyEnter || k.Code == event.KeyEsc:
			a.state = a.detailFrom
		case k.Code == event.KeyRune && k.Ch == 'q':
			a.state = StateTerminated
		}
		return
	}

	switch k.Code {
	case event.KeyDown:
		a.store.SelectNext()
	case event.KeyUp:
		a.store.SelectPrev()
	case event.KeyEnter:
		a.openDetail()
	case event.KeyRune:
		switch k.Ch {
		case 'q':
			a.state = StateTerminated
		case 'p':
			a.togglePause()
		case 'j':
			a.store.SelectNext()
		case 'k':
			a.store.SelectPrev()
		case 'i':
			a.switchInterface()
		}
	}
}

func (a *App) openDetail() {
	if a.store.SelectedPacket() == nil {
		return
	}
	a.detailFrom = a.state
	a.state = StateShowingDetail
}

func (a *App) togglePause() {
	switch a.state {
	case StateRunning:
		a.paused.Set()
		a.state = StatePaused
	case StatePaused:
		a.paused.UnSet()
		a.state = StateRunning
	}
}

// switchInterface cycles to the next known interface. The current source is
// closed first; candidates that fail to open are skipped, and when every
// interface is unavailable the session stays alive with capture stopped.
func (a *App) switchInterface() {
	if err := a.registry.Refresh(); err != nil {
		a.logg.WithError(err).Error("interface refresh failed")
		a.notice = "interface refresh failed: " + err.Error()
		return
	}
	next, err := a.registry.Next(a.active)
	if err != nil {
		a.notice = err.Error()
		return
	}
	if next.Name == a.active {
		return
	}

	if a.worker != nil {
		a.worker.stop()
		a.worker = nil
	}

	list := a.registry.List()
	start := 0
	for i, iface := range list {
		if iface.Name == next.Name {
			start = i
			break
		}
	}
	for i := 0; i < len(list); i++ {
		cand := list[(start+i)%len(list)]
		if err := a.startCapture(cand.Name); err != nil {
			a.logg.WithError(err).WithField("device", cand.Name).Warn("interface unavailable, trying next")
			continue
		}
		if a.cfg.UI.ResetOnSwitch {
			a.store.Reset()
		}
		a.notice = "capturing on " + cand.Name
		a.logg.WithField("device", cand.Name).Info("switched interface")
		return
	}

	a.active = ""
	a.notice = "no interface available, capture stopped"
	a.logg.Error("no interface available after switch")
}

func (a *App) runInput() {
	defer close(a.inputDone)
	for {
		k, ok := a.keys.NextKey()
		if !ok {
			return
		}
		if err := a.bus.Publish(event.Event{Kind: event.Input, Key: k}); err != nil {
			return
		}
	}
}

// shutdown stops the three producers, then closes the bus and drains what
// was already published so every captured packet still reaches the store.
func (a *App) shutdown() {
	if a.worker != nil {
		a.worker.stop()
		a.worker = nil
	}
	if a.ticker != nil {
		a.ticker.stop()
	}
	a.view.Close()
	<-a.inputDone

	a.bus.Close()
	for {
		ev, ok := a.bus.Next()
		if !ok {
			break
		}
		if ev.Kind == event.PacketCaptured {
			a.appendPacket(ev)
		}
	}

	published, consumed := a.bus.Stats()
	a.logg.WithFields(map[string]interface{}{
		"published": published,
		"consumed":  consumed,
		"packets":   a.store.Len(),
	}).Info("session terminated")
}

// Store exposes the session store for inspection after Run returns.
func (a *App) Store() *store.PacketStore { return a.store }

// Bus exposes the event bus for inspection after Run returns.
func (a *App) Bus() *event.Bus { return a.bus }
