// Package source provides capture backends that pull raw frames off a
// network interface one at a time.
package source

import (
	"fmt"
	"sort"

	"github.com/wireview/wireview/internal/core"
)

// Source wraps one live capture handle bound to one interface.
//
// ReadFrame blocks the calling goroutine until a frame arrives or the
// source is closed, in which case it returns core.ErrCaptureClosed. There
// is no buffering beyond what the OS capture mechanism provides; a slow
// consumer is absorbed (and eventually dropped) by that OS-level buffer.
type Source interface {
	ReadFrame() (core.RawFrame, error)
	Close() error
	Interface() string
}

// Config selects and parameterizes a capture backend.
type Config struct {
	Backend     string         `mapstructure:"backend"` // "pcap" (default) or "afpacket"
	Device      string         `mapstructure:"device"`
	SnapLen     int            `mapstructure:"snap_len"`
	Promiscuous bool           `mapstructure:"promiscuous"`
	TimeoutMs   int            `mapstructure:"timeout_ms"`
	Options     map[string]any `mapstructure:"options"` // backend-specific
}

const (
	DefaultSnapLen   = 65535
	DefaultTimeoutMs = 100
)

// Factory opens a source for one backend.
type Factory func(cfg Config) (Source, error)

var backends = map[string]Factory{}

// Register adds a backend factory. Called from backend init functions.
func Register(name string, fn Factory) {
	backends[name] = fn
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open opens a capture handle on cfg.Device using the configured backend.
// Failure to open — missing device, insufficient privilege — is reported
// as core.ErrInterfaceUnavailable.
func Open(cfg Config) (Source, error) {
	if cfg.Device == "" {
		return nil, fmt.Errorf("%w: no device given", core.ErrInterfaceUnavailable)
	}
	if cfg.SnapLen <= 0 {
		cfg.SnapLen = DefaultSnapLen
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = DefaultTimeoutMs
	}

	name := cfg.Backend
	if name == "" {
		name = "pcap"
	}
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown capture backend %q (have %v)", name, Backends())
	}

	s, err := fn(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s via %s: %v", core.ErrInterfaceUnavailable, cfg.Device, name, err)
	}
	return s, nil
}
