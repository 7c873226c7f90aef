package decoder

import (
	"encoding/binary"
	"net/netip"

	"github.com/wireview/wireview/internal/core"
)

const arpIPv4Len = 28 // fixed size for an Ethernet/IPv4 ARP packet

// decodeARP decodes an ARP packet. Only the Ethernet/IPv4 combination
// (hardware len 6, protocol len 4) is recognized.
func decodeARP(data []byte) (core.ARPHeader, error) {
	if len(data) < arpIPv4Len {
		return core.ARPHeader{}, core.ErrPacketTooShort
	}

	// Hardware length (offset 4) and protocol length (offset 5) fix the
	// wire layout; anything but 6/4 is not an Ethernet/IPv4 ARP.
	if data[4] != 6 || data[5] != 4 {
		return core.ARPHeader{}, core.ErrUnsupportedProto
	}

	arp := core.ARPHeader{
		Operation: binary.BigEndian.Uint16(data[6:8]),
	}
	copy(arp.SenderMAC[:], data[8:14])
	copy(arp.TargetMAC[:], data[18:24])

	senderIP, ok := netip.AddrFromSlice(data[14:18])
	if !ok {
		return arp, core.ErrPacketTooShort
	}
	arp.SenderIP = senderIP

	targetIP, ok := netip.AddrFromSlice(data[24:28])
	if !ok {
		return arp, core.ErrPacketTooShort
	}
	arp.TargetIP = targetIP

	return arp, nil
}
