// Package netif enumerates the network interfaces available for capture.
package netif

import (
	"fmt"
	"net"

	"github.com/google/gopacket/pcap"

	"github.com/wireview/wireview/internal/core"
)

// Interface is an immutable snapshot of one capture device taken at
// enumeration time.
type Interface struct {
	Name        string
	Description string
	Addresses   []string
	Up          bool
	Loopback    bool
	Multicast   bool
}

// Enumerator lists capture devices. The default implementation asks
// libpcap; tests substitute their own.
type Enumerator func() ([]Interface, error)

// Registry holds the current interface snapshot. It is used only from the
// application core and CLI, never concurrently.
type Registry struct {
	enumerate Enumerator
	ifaces    []Interface
}

func NewRegistry() *Registry {
	return &Registry{enumerate: enumerateDevices}
}

// NewRegistryWith builds a registry around a custom enumerator.
func NewRegistryWith(enumerate Enumerator) *Registry {
	return &Registry{enumerate: enumerate}
}

// Refresh re-enumerates devices, replacing the snapshot wholesale.
func (r *Registry) Refresh() error {
	ifaces, err := r.enumerate()
	if err != nil {
		return fmt.Errorf("enumerate interfaces: %w", err)
	}
	r.ifaces = ifaces
	return nil
}

// List returns the current snapshot in enumeration order.
func (r *Registry) List() []Interface {
	return r.ifaces
}

// Lookup finds an interface by name.
func (r *Registry) Lookup(name string) (Interface, error) {
	for _, ifc := range r.ifaces {
		if ifc.Name == name {
			return ifc, nil
		}
	}
	return Interface{}, fmt.Errorf("%w: %s", core.ErrInterfaceUnavailable, name)
}

// Next returns the interface after the named one, wrapping around. Used by
// the interface-switch key.
func (r *Registry) Next(current string) (Interface, error) {
	if len(r.ifaces) == 0 {
		return Interface{}, core.ErrInterfaceUnavailable
	}
	for i, ifc := range r.ifaces {
		if ifc.Name == current {
			return r.ifaces[(i+1)%len(r.ifaces)], nil
		}
	}
	return r.ifaces[0], nil
}

// First returns the first usable interface: preferably one that is up and
// not a loopback, falling back to the first device found.
func (r *Registry) First() (Interface, error) {
	if len(r.ifaces) == 0 {
		return Interface{}, core.ErrInterfaceUnavailable
	}
	for _, ifc := range r.ifaces {
		if ifc.Up && !ifc.Loopback {
			return ifc, nil
		}
	}
	return r.ifaces[0], nil
}

// enumerateDevices merges libpcap's device list with the flags the OS
// reports for the same interface.
func enumerateDevices() ([]Interface, error) {
	devs, err := pcap.FindAllDevs()
	if err != nil {
		return nil, err
	}

	out := make([]Interface, 0, len(devs))
	for _, d := range devs {
		ifc := Interface{
			Name:        d.Name,
			Description: d.Description,
		}
		for _, addr := range d.Addresses {
			ifc.Addresses = append(ifc.Addresses, addr.IP.String())
		}
		if osIfc, err := net.InterfaceByName(d.Name); err == nil {
			ifc.Up = osIfc.Flags&net.FlagUp != 0
			ifc.Loopback = osIfc.Flags&net.FlagLoopback != 0
			ifc.Multicast = osIfc.Flags&net.FlagMulticast != 0
		}
		out = append(out, ifc)
	}
	return out, nil
}
