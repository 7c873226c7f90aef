package decoder

import (
	"encoding/binary"

	"github.com/wireview/wireview/internal/core"
)

const (
	udpHeaderLen    = 8
	tcpHeaderMinLen = 20
	icmpHeaderLen   = 4
)

// decodeTCP decodes a TCP header. Options are skipped using the data
// offset field. Returns the header and remaining payload.
func decodeTCP(data []byte) (core.TCPHeader, []byte, error) {
	if len(data) < tcpHeaderMinLen {
		return core.TCPHeader{}, nil, core.ErrPacketTooShort
	}

	// Data offset is in 32-bit words, upper 4 bits of byte 12.
	headerLen := int(data[12]>>4) * 4
	if headerLen < tcpHeaderMinLen || len(data) < headerLen {
		return core.TCPHeader{}, nil, core.ErrPacketTooShort
	}

	tcp := core.TCPHeader{
		SrcPort: binary.BigEndian.Uint16(data[0:2]),
		DstPort: binary.BigEndian.Uint16(data[2:4]),
		SeqNum:  binary.BigEndian.Uint32(data[4:8]),
		AckNum:  binary.BigEndian.Uint32(data[8:12]),
		Flags:   data[13],
		Window:  binary.BigEndian.Uint16(data[14:16]),
	}

	return tcp, data[headerLen:], nil
}

// decodeUDP decodes a UDP header. Returns the header and remaining payload.
func decodeUDP(data []byte) (core.UDPHeader, []byte, error) {
	if len(data) < udpHeaderLen {
		return core.UDPHeader{}, nil, core.ErrPacketTooShort
	}

	udp := core.UDPHeader{
		SrcPort: binary.BigEndian.Uint16(data[0:2]),
		DstPort: binary.BigEndian.Uint16(data[2:4]),
		Length:  binary.BigEndian.Uint16(data[4:6]),
	}

	return udp, data[udpHeaderLen:], nil
}

// decodeICMP decodes an ICMPv4 message header.
func decodeICMP(data []byte) (core.ICMPHeader, []byte, error) {
	if len(data) < icmpHeaderLen {
		return core.ICMPHeader{}, nil, core.ErrPacketTooShort
	}
	return core.ICMPHeader{Type: data[0], Code: data[1]}, data[icmpHeaderLen:], nil
}

// decodeICMPv6 decodes an ICMPv6 message header.
func decodeICMPv6(data []byte) (core.ICMPv6Header, []byte, error) {
	if len(data) < icmpHeaderLen {
		return core.ICMPv6Header{}, nil, core.ErrPacketTooShort
	}
	return core.ICMPv6Header{Type: data[0], Code: data[1]}, data[icmpHeaderLen:], nil
}
