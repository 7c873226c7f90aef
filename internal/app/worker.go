package app

import (
	"errors"

	"github.com/tevino/abool"

	"github.com/wireview/wireview/internal/core"
	"github.com/wireview/wireview/internal/core/decoder"
	"github.com/wireview/wireview/internal/event"
	"github.com/wireview/wireview/internal/log"
	"github.com/wireview/wireview/internal/source"
)

// captureWorker owns one source for its lifetime: it is the only goroutine
// that reads the handle, decodes frames, and publishes PacketCaptured
// events. Stopping is cooperative: stop() closes the source, the blocked
// ReadFrame returns ErrCaptureClosed, and the loop exits.
type captureWorker struct {
	src    source.Source
	bus    *event.Bus
	paused *abool.AtomicBool
	logg   log.Logger
	done   chan struct{}
}

func newCaptureWorker(src source.Source, bus *event.Bus, paused *abool.AtomicBool, logg log.Logger) *captureWorker {
	return &captureWorker{
		src:    src,
		bus:    bus,
		paused: paused,
		logg:   logg.WithField("worker", src.Interface()),
		done:   make(chan struct{}),
	}
}

func (w *captureWorker) run() {
	defer close(w.done)

	for {
		frame, err := w.src.ReadFrame()
		if err != nil {
			if errors.Is(err, core.ErrCaptureClosed) {
				w.logg.Debug("capture closed, worker exiting")
			} else {
				w.logg.WithError(err).Error("capture read failed, worker exiting")
			}
			return
		}

		// While paused the worker keeps draining the OS buffer but the
		// frames go nowhere, so resuming shows live traffic instead of a
		// backlog.
		if w.paused.IsSet() {
			continue
		}

		pkt := decoder.Decode(frame.Data, frame.Timestamp, frame.Interface)
		if err := w.bus.Publish(event.Event{Kind: event.PacketCaptured, Packet: &pkt}); err != nil {
			return
		}
	}
}

// stop closes the source and waits for the loop to exit.
func (w *captureWorker) stop() {
	_ = w.src.Close()
	<-w.done
}
