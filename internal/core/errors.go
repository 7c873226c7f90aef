// Package core defines sentinel errors.
package core

import "errors"

var (
	// Capture errors
	ErrInterfaceUnavailable = errors.New("wireview: interface unavailable")
	ErrCaptureClosed        = errors.New("wireview: capture closed")

	// Packet decoding errors
	ErrPacketTooShort   = errors.New("wireview: packet too short")
	ErrUnknownEtherType = errors.New("wireview: unknown ethertype")
	ErrUnsupportedProto = errors.New("wireview: unsupported protocol")

	// Event bus errors
	ErrBusClosed = errors.New("wireview: event bus closed")

	// Configuration errors
	ErrConfigInvalid = errors.New("wireview: invalid configuration")
)
