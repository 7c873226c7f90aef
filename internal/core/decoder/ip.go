package decoder

import (
	"encoding/binary"
	"net/netip"

	"github.com/wireview/wireview/internal/core"
)

const (
	ipv4HeaderMinLen = 20
	ipv6HeaderLen    = 40
)

// IPv6 extension header numbers that are skipped, not decoded.
const (
	ipv6ExtHopByHop = 0
	ipv6ExtRouting  = 43
	ipv6ExtFragment = 44
	ipv6ExtAH       = 51
	ipv6ExtDestOpts = 60
)

// decodeIPv4 decodes an IPv4 header. Options are skipped using the IHL
// field without decoding their contents. Returns the header and payload.
func decodeIPv4(data []byte) (core.IPv4Header, []byte, error) {
	if len(data) < ipv4HeaderMinLen {
		return core.IPv4Header{}, nil, core.ErrPacketTooShort
	}

	if version := data[0] >> 4; version != 4 {
		return core.IPv4Header{}, nil, core.ErrUnsupportedProto
	}

	// IHL is in 32-bit words; values above 5 mean options are present.
	headerLen := int(data[0]&0x0F) * 4
	if headerLen < ipv4HeaderMinLen || len(data) < headerLen {
		return core.IPv4Header{}, nil, core.ErrPacketTooShort
	}

	ip := core.IPv4Header{
		TotalLen: binary.BigEndian.Uint16(data[2:4]),
		Ident:    binary.BigEndian.Uint16(data[4:6]),
		Flags:    data[6] >> 5,
		TTL:      data[8],
		Protocol: data[9],
	}

	src, ok := netip.AddrFromSlice(data[12:16])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.SrcIP = src

	dst, ok := netip.AddrFromSlice(data[16:20])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.DstIP = dst

	return ip, data[headerLen:], nil
}

// decodeIPv6 decodes an IPv6 header and skips any extension headers using
// their declared lengths. Returns the header, the protocol number of the
// first non-extension payload header, and the remaining payload.
func decodeIPv6(data []byte) (core.IPv6Header, uint8, []byte, error) {
	if len(data) < ipv6HeaderLen {
		return core.IPv6Header{}, 0, nil, core.ErrPacketTooShort
	}

	if version := data[0] >> 4; version != 6 {
		return core.IPv6Header{}, 0, nil, core.ErrUnsupportedProto
	}

	ip := core.IPv6Header{
		PayloadLen: binary.BigEndian.Uint16(data[4:6]),
		NextHeader: data[6],
		HopLimit:   data[7],
	}

	src, ok := netip.AddrFromSlice(data[8:24])
	if !ok {
		return ip, 0, nil, core.ErrPacketTooShort
	}
	ip.SrcIP = src

	dst, ok := netip.AddrFromSlice(data[24:40])
	if !ok {
		return ip, 0, nil, core.ErrPacketTooShort
	}
	ip.DstIP = dst

	next, rest, err := skipIPv6Extensions(ip.NextHeader, data[ipv6HeaderLen:])
	if err != nil {
		return ip, 0, nil, err
	}
	return ip, next, rest, nil
}

// skipIPv6Extensions advances past chained extension headers, returning the
// first non-extension protocol number and the bytes that follow.
func skipIPv6Extensions(next uint8, data []byte) (uint8, []byte, error) {
	for {
		var extLen int
		switch next {
		case ipv6ExtHopByHop, ipv6ExtRouting, ipv6ExtDestOpts:
			if len(data) < 2 {
				return next, nil, core.ErrPacketTooShort
			}
			// Hdr Ext Len counts 8-byte units not including the first.
			extLen = (int(data[1]) + 1) * 8
		case ipv6ExtFragment:
			extLen = 8
		case ipv6ExtAH:
			if len(data) < 2 {
				return next, nil, core.ErrPacketTooShort
			}
			// AH length is in 4-byte units minus two.
			extLen = (int(data[1]) + 2) * 4
		default:
			return next, data, nil
		}

		if len(data) < extLen {
			return next, nil, core.ErrPacketTooShort
		}
		next = data[0]
		data = data[extLen:]
	}
}
