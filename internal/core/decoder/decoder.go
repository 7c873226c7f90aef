// Package decoder implements layered L2-L4 protocol decoding.
//
// Decoding is best effort: it never fails outright. Each layer is parsed
// independently; at the first truncated or unrecognized field the walk
// stops and the packet keeps whatever headers were already produced plus a
// DecodeError naming the layer that failed. All multi-byte fields are
// network byte order. Checksums are surfaced as-is, never validated.
package decoder

import (
	"time"

	"github.com/wireview/wireview/internal/core"
)

// IP protocol numbers recognized at the transport layer.
const (
	protocolICMP   = 1
	protocolTCP    = 6
	protocolUDP    = 17
	protocolICMPv6 = 58
)

// Decode turns one raw frame into a DecodedPacket. The input slice is not
// retained; every header copies the bytes it needs.
func Decode(data []byte, ts time.Time, iface string) core.DecodedPacket {
	pkt := core.DecodedPacket{
		Timestamp: ts,
		Interface: iface,
		Length:    len(data),
	}

	eth, payload, err := decodeEthernet(data)
	if err != nil {
		pkt.Err = &core.DecodeError{Layer: core.ProtoEthernet, Err: err}
		return pkt
	}
	pkt.Layers = append(pkt.Layers, eth)

	switch eth.EtherType {
	case etherTypeARP:
		arp, err := decodeARP(payload)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoARP, Err: err}
			return pkt
		}
		pkt.Layers = append(pkt.Layers, arp)
		return pkt

	case etherTypeIPv4:
		ip, rest, err := decodeIPv4(payload)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoIPv4, Err: err}
			return pkt
		}
		pkt.Layers = append(pkt.Layers, ip)
		decodeTransport(&pkt, core.ProtoIPv4, ip.Protocol, rest)
		return pkt

	case etherTypeIPv6:
		ip, next, rest, err := decodeIPv6(payload)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoIPv6, Err: err}
			return pkt
		}
		pkt.Layers = append(pkt.Layers, ip)
		decodeTransport(&pkt, core.ProtoIPv6, next, rest)
		return pkt

	default:
		// Non-IP, non-ARP frame (LLDP, STP, ...). The Ethernet header
		// stands, but the network layer is unrecognized.
		pkt.Err = &core.DecodeError{Layer: core.ProtoEthernet, Err: core.ErrUnknownEtherType}
		return pkt
	}
}

// decodeTransport dispatches on the IP protocol number and appends the
// transport header, or records where decoding stopped.
func decodeTransport(pkt *core.DecodedPacket, ipLayer core.Protocol, protocol uint8, data []byte) {
	switch protocol {
	case protocolTCP:
		tcp, rest, err := decodeTCP(data)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoTCP, Err: err}
			return
		}
		pkt.Layers = append(pkt.Layers, tcp)
		pkt.Payload = rest

	case protocolUDP:
		udp, rest, err := decodeUDP(data)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoUDP, Err: err}
			return
		}
		pkt.Layers = append(pkt.Layers, udp)
		pkt.Payload = rest

	case protocolICMP:
		icmp, rest, err := decodeICMP(data)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoICMP, Err: err}
			return
		}
		pkt.Layers = append(pkt.Layers, icmp)
		pkt.Payload = rest

	case protocolICMPv6:
		icmp, rest, err := decodeICMPv6(data)
		if err != nil {
			pkt.Err = &core.DecodeError{Layer: core.ProtoICMPv6, Err: err}
			return
		}
		pkt.Layers = append(pkt.Layers, icmp)
		pkt.Payload = rest

	default:
		// SCTP, GRE, OSPF etc. — the IP header stands, the rest is opaque.
		pkt.Err = &core.DecodeError{Layer: ipLayer, Err: core.ErrUnsupportedProto}
		pkt.Payload = data
	}
}
