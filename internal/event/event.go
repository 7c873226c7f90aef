// Package event defines the event union and the bus that merges capture
// results, render ticks, and user input into one ordered stream.
package event

import "github.com/wireview/wireview/internal/core"

// Kind discriminates the event union.
type Kind uint8

const (
	// Render asks the application core to repaint. Consecutive Render
	// events are idempotent and may be coalesced by the consumer.
	Render Kind = iota + 1
	// PacketCaptured carries one decoded packet from the capture worker.
	PacketCaptured
	// Input carries one key press from the input listener.
	Input
)

// KeyCode identifies non-character keys; plain characters use KeyRune.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyUp
	KeyDown
	KeyEnter
	KeyEsc
)

// Key is one key press.
type Key struct {
	Code KeyCode
	Ch   rune // set when Code == KeyRune
}

// Event is the tagged union travelling on the bus. It is transient: it
// exists only between Publish and Next, never stored.
type Event struct {
	Kind   Kind
	Packet *core.DecodedPacket // when Kind == PacketCaptured
	Key    Key                 // when Kind == Input
}
