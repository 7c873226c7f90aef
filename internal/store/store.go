// Package store keeps the ordered history of decoded packets and the
// per-protocol counters for the current capture session.
package store

import "github.com/wireview/wireview/internal/core"

// NoSelection is the selection index when no row is selected.
const NoSelection = -1

// PacketStore is an append-only ordered collection of decoded packets plus
// session counters. It is owned exclusively by the application core and
// read synchronously by render calls on the same goroutine; only decoded
// packets travel across goroutines, never the store itself.
//
// Invariants: sequence numbers are strictly increasing and gapless for
// every packet that reaches the store, and the selection index always
// refers to a present entry or is NoSelection.
type PacketStore struct {
	packets  []*core.DecodedPacket
	counters *core.ProtocolCounters
	capacity int // 0 = unlimited
	nextSeq  uint64
	selected int
}

func New(capacity int) *PacketStore {
	return &PacketStore{
		counters: core.NewProtocolCounters(),
		capacity: capacity,
		nextSeq:  1,
		selected: NoSelection,
	}
}

// Append assigns the next sequence number to p, records its layers in the
// counters, and stores it. When the capacity policy triggers, the oldest
// entries are trimmed and the selection follows its packet.
func (s *PacketStore) Append(p *core.DecodedPacket) {
	p.Seq = s.nextSeq
	s.nextSeq++

	s.counters.Record(p)
	s.packets = append(s.packets, p)

	if s.capacity > 0 && len(s.packets) > s.capacity {
		evicted := len(s.packets) - s.capacity
		s.packets = s.packets[evicted:]
		if s.selected != NoSelection {
			s.selected -= evicted
			if s.selected < 0 {
				// The selected packet itself was evicted.
				s.selected = NoSelection
			}
		}
	}
}

func (s *PacketStore) Len() int { return len(s.packets) }

// Packets returns the stored packets in arrival order. The slice is a view;
// callers must not mutate it.
func (s *PacketStore) Packets() []*core.DecodedPacket { return s.packets }

// Get returns the packet at index i, or nil if out of range.
func (s *PacketStore) Get(i int) *core.DecodedPacket {
	if i < 0 || i >= len(s.packets) {
		return nil
	}
	return s.packets[i]
}

func (s *PacketStore) Counters() *core.ProtocolCounters { return s.counters }

// Selected returns the current selection index, or NoSelection.
func (s *PacketStore) Selected() int { return s.selected }

// SelectedPacket returns the selected packet, or nil.
func (s *PacketStore) SelectedPacket() *core.DecodedPacket {
	return s.Get(s.selected)
}

// SelectNext moves the selection one row down, saturating at the last
// entry. With no prior selection it selects the first row.
func (s *PacketStore) SelectNext() {
	if len(s.packets) == 0 {
		s.selected = NoSelection
		return
	}
	if s.selected == NoSelection {
		s.selected = 0
		return
	}
	if s.selected < len(s.packets)-1 {
		s.selected++
	}
}

// SelectPrev moves the selection one row up, saturating at the first entry.
func (s *PacketStore) SelectPrev() {
	if len(s.packets) == 0 {
		s.selected = NoSelection
		return
	}
	if s.selected == NoSelection {
		s.selected = 0
		return
	}
	if s.selected > 0 {
		s.selected--
	}
}

// Reset starts a new session: history, counters, selection, and sequence
// numbering all restart. Called on capture restart or interface switch.
func (s *PacketStore) Reset() {
	s.packets = nil
	s.counters.Reset()
	s.nextSeq = 1
	s.selected = NoSelection
}
