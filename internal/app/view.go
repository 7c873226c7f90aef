package app

import (
	"github.com/wireview/wireview/internal/core"
	"github.com/wireview/wireview/internal/event"
	"github.com/wireview/wireview/internal/netif"
)

// Snapshot is the read-only view of application state handed to the View
// on every render tick. It must not retain references that the core will
// mutate afterwards; packets are immutable once appended to the store, so
// sharing pointers is safe.
type Snapshot struct {
	Packets      []*core.DecodedPacket
	Counters     map[core.Protocol]core.ProtocolCount
	TotalPackets uint64
	TotalBytes   uint64
	State        State
	Selected     int
	Detail       *core.DecodedPacket
	Interfaces   []netif.Interface
	Active       string
	Notice       string
}

// View renders snapshots of the session. Implementations own the terminal;
// the core never touches it directly.
type View interface {
	Render(Snapshot) error
	// Close restores the terminal. It must be idempotent and must unblock
	// any KeySource backed by the same terminal.
	Close()
}

// NopView discards renders. Used by tests and the headless smoke path.
type NopView struct{}

func (NopView) Render(Snapshot) error { return nil }
func (NopView) Close()                {}

// KeySource delivers user key presses. NextKey blocks until a key arrives
// and returns ok=false once the source is exhausted, typically after the
// View owning the terminal has been closed.
type KeySource interface {
	NextKey() (event.Key, bool)
}
