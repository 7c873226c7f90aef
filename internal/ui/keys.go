package ui

import (
	"sync"

	termui "github.com/gizak/termui/v3"

	"github.com/wireview/wireview/internal/event"
)

// termKeys adapts termui's event stream to the core's key type. Resize and
// mouse events are swallowed here; the view re-reads the terminal size on
// every render anyway.
type termKeys struct {
	events <-chan termui.Event
	quit   chan struct{}
	once   sync.Once
}

func newTermKeys(events <-chan termui.Event) *termKeys {
	return &termKeys{events: events, quit: make(chan struct{})}
}

func (k *termKeys) NextKey() (event.Key, bool) {
	for {
		select {
		case <-k.quit:
			return event.Key{}, false
		case e := <-k.events:
			if e.Type != termui.KeyboardEvent {
				continue
			}
			if key, ok := translateKey(e.ID); ok {
				return key, true
			}
		}
	}
}

func (k *termKeys) stop() { k.once.Do(func() { close(k.quit) }) }

// translateKey maps termui key IDs to core keys. Unmapped keys are dropped.
func translateKey(id string) (event.Key, bool) {
	switch id {
	case "<Up>":
		return event.Key{Code: event.KeyUp}, true
	case "<Down>":
		return event.Key{Code: event.KeyDown}, true
	case "<Enter>":
		return event.Key{Code: event.KeyEnter}, true
	case "<Escape>":
		return event.Key{Code: event.KeyEsc}, true
	case "<C-c>":
		// Ctrl-C terminates like q; the TUI owns the terminal, so there
		// is no signal-driven path.
		return event.Key{Code: event.KeyRune, Ch: 'q'}, true
	default:
		if len(id) == 1 {
			return event.Key{Code: event.KeyRune, Ch: rune(id[0])}, true
		}
		return event.Key{}, false
	}
}
