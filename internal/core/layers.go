// Package core defines core data structures with zero external dependencies.
package core

import (
	"net"
	"net/netip"
)

// Protocol tags one decoded layer.
type Protocol uint8

const (
	ProtoUnknown Protocol = iota
	ProtoEthernet
	ProtoARP
	ProtoIPv4
	ProtoIPv6
	ProtoICMP
	ProtoICMPv6
	ProtoTCP
	ProtoUDP
)

var protocolNames = map[Protocol]string{
	ProtoUnknown:  "Unknown",
	ProtoEthernet: "Ethernet",
	ProtoARP:      "ARP",
	ProtoIPv4:     "IPv4",
	ProtoIPv6:     "IPv6",
	ProtoICMP:     "ICMP",
	ProtoICMPv6:   "ICMPv6",
	ProtoTCP:      "TCP",
	ProtoUDP:      "UDP",
}

func (p Protocol) String() string {
	if name, ok := protocolNames[p]; ok {
		return name
	}
	return "Unknown"
}

// MAC is a 48-bit hardware address.
type MAC [6]byte

func (m MAC) String() string {
	return net.HardwareAddr(m[:]).String()
}

// LayerHeader is one successfully parsed protocol layer. Exactly one
// concrete header type exists per supported protocol; headers carry only
// the fields meaningful for their protocol and are immutable once built.
type LayerHeader interface {
	Proto() Protocol
}

// EthernetHeader represents the L2 Ethernet frame header.
type EthernetHeader struct {
	SrcMAC    MAC
	DstMAC    MAC
	EtherType uint16   // 0x0800=IPv4, 0x86DD=IPv6, 0x0806=ARP
	VLANs     []uint16 // 0~2 VLAN IDs (QinQ scenarios have 2)
}

func (EthernetHeader) Proto() Protocol { return ProtoEthernet }

// ARPHeader represents an ARP request/reply.
type ARPHeader struct {
	Operation uint16 // 1=request, 2=reply
	SenderMAC MAC
	SenderIP  netip.Addr
	TargetMAC MAC
	TargetIP  netip.Addr
}

func (ARPHeader) Proto() Protocol { return ProtoARP }

// IPv4Header represents the L3 IPv4 header.
type IPv4Header struct {
	SrcIP    netip.Addr
	DstIP    netip.Addr
	TTL      uint8
	Protocol uint8 // next-layer protocol number: TCP=6, UDP=17, ICMP=1
	TotalLen uint16
	Ident    uint16
	Flags    uint8 // upper 3 bits of the fragment word
}

func (IPv4Header) Proto() Protocol { return ProtoIPv4 }

// IPv6Header represents the L3 IPv6 header. NextHeader is the protocol of
// the first payload header before any extension-header skipping.
type IPv6Header struct {
	SrcIP      netip.Addr
	DstIP      netip.Addr
	NextHeader uint8
	HopLimit   uint8
	PayloadLen uint16
}

func (IPv6Header) Proto() Protocol { return ProtoIPv6 }

// ICMPHeader represents an ICMPv4 message header.
type ICMPHeader struct {
	Type uint8
	Code uint8
}

func (ICMPHeader) Proto() Protocol { return ProtoICMP }

// ICMPv6Header represents an ICMPv6 message header.
type ICMPv6Header struct {
	Type uint8
	Code uint8
}

func (ICMPv6Header) Proto() Protocol { return ProtoICMPv6 }

// TCP flag bits as found in the 13th header byte.
const (
	TCPFlagFIN = 0x01
	TCPFlagSYN = 0x02
	TCPFlagRST = 0x04
	TCPFlagPSH = 0x08
	TCPFlagACK = 0x10
	TCPFlagURG = 0x20
)

// TCPHeader represents the L4 TCP header.
type TCPHeader struct {
	SrcPort uint16
	DstPort uint16
	SeqNum  uint32
	AckNum  uint32
	Flags   uint8
	Window  uint16
}

func (TCPHeader) Proto() Protocol { return ProtoTCP }

// UDPHeader represents the L4 UDP header.
type UDPHeader struct {
	SrcPort uint16
	DstPort uint16
	Length  uint16 // header + data, as declared on the wire
}

func (UDPHeader) Proto() Protocol { return ProtoUDP }
