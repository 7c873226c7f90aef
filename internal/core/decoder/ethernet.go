package decoder

import (
	"encoding/binary"

	"github.com/wireview/wireview/internal/core"
)

const (
	ethernetHeaderLen = 14
	vlanHeaderLen     = 4

	// EtherType values
	etherTypeIPv4 = 0x0800
	etherTypeARP  = 0x0806
	etherTypeVLAN = 0x8100
	etherTypeIPv6 = 0x86DD
	etherTypeQinQ = 0x88A8
)

// decodeEthernet decodes the Ethernet frame header, skipping over VLAN
// tags (possibly nested: QinQ). Returns the header and remaining payload.
func decodeEthernet(data []byte) (core.EthernetHeader, []byte, error) {
	if len(data) < ethernetHeaderLen {
		return core.EthernetHeader{}, nil, core.ErrPacketTooShort
	}

	eth := core.EthernetHeader{}
	copy(eth.DstMAC[:], data[0:6])
	copy(eth.SrcMAC[:], data[6:12])

	etherType := binary.BigEndian.Uint16(data[12:14])
	offset := ethernetHeaderLen

	var vlans []uint16
	for etherType == etherTypeVLAN || etherType == etherTypeQinQ {
		if len(data) < offset+vlanHeaderLen {
			return eth, nil, core.ErrPacketTooShort
		}

		// VLAN header: 2 bytes TCI + 2 bytes inner EtherType
		tci := binary.BigEndian.Uint16(data[offset : offset+2])
		vlans = append(vlans, tci&0x0FFF)

		etherType = binary.BigEndian.Uint16(data[offset+2 : offset+4])
		offset += vlanHeaderLen
	}

	eth.EtherType = etherType
	eth.VLANs = vlans

	return eth, data[offset:], nil
}
