package decoder

import (
	"errors"
	"testing"

	"github.com/wireview/wireview/internal/core"
)

func TestDecodeIPv4Basic(t *testing.T) {
	data := []byte{
		0x45, 0x00, // Version 4, IHL 5, DSCP
		0x00, 0x1C, // Total Length: 28
		0x12, 0x34, // Identification
		0x40, 0x00, // Flags: DF, Fragment Offset 0
		0x40,       // TTL: 64
		0x11,       // Protocol: UDP
		0x00, 0x00, // Checksum
		0x0A, 0x00, 0x00, 0x01, // Src: 10.0.0.1
		0x0A, 0x00, 0x00, 0x02, // Dst: 10.0.0.2
		0x01, 0x02, 0x03, 0x04, // Payload
	}

	ip, payload, err := decodeIPv4(data)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}

	if got := ip.SrcIP.String(); got != "10.0.0.1" {
		t.Errorf("Expected SrcIP 10.0.0.1, got %s", got)
	}
	if got := ip.DstIP.String(); got != "10.0.0.2" {
		t.Errorf("Expected DstIP 10.0.0.2, got %s", got)
	}
	if ip.TTL != 64 {
		t.Errorf("Expected TTL 64, got %d", ip.TTL)
	}
	if ip.Protocol != 17 {
		t.Errorf("Expected protocol 17, got %d", ip.Protocol)
	}
	if ip.TotalLen != 28 {
		t.Errorf("Expected TotalLen 28, got %d", ip.TotalLen)
	}
	if ip.Ident != 0x1234 {
		t.Errorf("Expected Ident 0x1234, got 0x%04x", ip.Ident)
	}
	if len(payload) != 4 {
		t.Errorf("Expected payload length 4, got %d", len(payload))
	}
}

func TestDecodeIPv4OptionsSkipped(t *testing.T) {
	// IHL 6: one 4-byte option word that must be skipped, not decoded.
	data := []byte{
		0x46, 0x00,
		0x00, 0x20,
		0x00, 0x00,
		0x00, 0x00,
		0x40,
		0x06, // Protocol: TCP
		0x00, 0x00,
		0x0A, 0x00, 0x00, 0x01,
		0x0A, 0x00, 0x00, 0x02,
		0x94, 0x04, 0x00, 0x00, // Option: router alert
		0xDE, 0xAD, // Payload
	}

	ip, payload, err := decodeIPv4(data)
	if err != nil {
		t.Fatalf("decodeIPv4 failed: %v", err)
	}
	if ip.Protocol != 6 {
		t.Errorf("Expected protocol 6, got %d", ip.Protocol)
	}
	if len(payload) != 2 || payload[0] != 0xDE {
		t.Errorf("Expected payload [de ad] after options, got % x", payload)
	}
}

func TestDecodeIPv4Truncated(t *testing.T) {
	data := []byte{0x45, 0x00, 0x00, 0x1C}
	if _, _, err := decodeIPv4(data); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("Expected ErrPacketTooShort, got %v", err)
	}

	// IHL claims 24 bytes but only 20 are present.
	data = make([]byte, ipv4HeaderMinLen)
	data[0] = 0x46
	if _, _, err := decodeIPv4(data); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("Expected ErrPacketTooShort for short options, got %v", err)
	}
}

func TestDecodeIPv4WrongVersion(t *testing.T) {
	data := make([]byte, ipv4HeaderMinLen)
	data[0] = 0x65 // version 6 in an IPv4 slot
	if _, _, err := decodeIPv4(data); !errors.Is(err, core.ErrUnsupportedProto) {
		t.Errorf("Expected ErrUnsupportedProto, got %v", err)
	}
}

func ipv6Header(next uint8, payload []byte) []byte {
	data := []byte{
		0x60, 0x00, 0x00, 0x00, // Version 6, traffic class, flow label
		0x00, 0x00, // Payload length (patched below)
		next,
		0x40, // Hop limit: 64
		// Src: 2001:db8::1
		0x20, 0x01, 0x0D, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01,
		// Dst: 2001:db8::2
		0x20, 0x01, 0x0D, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02,
	}
	data[4] = byte(len(payload) >> 8)
	data[5] = byte(len(payload))
	return append(data, payload...)
}

func TestDecodeIPv6Basic(t *testing.T) {
	data := ipv6Header(17, []byte{0x01, 0x02})

	ip, next, payload, err := decodeIPv6(data)
	if err != nil {
		t.Fatalf("decodeIPv6 failed: %v", err)
	}

	if got := ip.SrcIP.String(); got != "2001:db8::1" {
		t.Errorf("Expected SrcIP 2001:db8::1, got %s", got)
	}
	if got := ip.DstIP.String(); got != "2001:db8::2" {
		t.Errorf("Expected DstIP 2001:db8::2, got %s", got)
	}
	if ip.HopLimit != 64 {
		t.Errorf("Expected hop limit 64, got %d", ip.HopLimit)
	}
	if next != 17 {
		t.Errorf("Expected next header 17, got %d", next)
	}
	if len(payload) != 2 {
		t.Errorf("Expected payload length 2, got %d", len(payload))
	}
}

func TestDecodeIPv6ExtensionHeadersSkipped(t *testing.T) {
	// Hop-by-hop (8 bytes) chained to destination options (8 bytes)
	// chained to UDP.
	ext := []byte{
		ipv6ExtDestOpts, 0x00, 0, 0, 0, 0, 0, 0, // hop-by-hop, len 0
		17, 0x00, 0, 0, 0, 0, 0, 0, // dest opts, next: UDP
		0xCA, 0xFE, // UDP bytes
	}
	data := ipv6Header(ipv6ExtHopByHop, ext)

	ip, next, payload, err := decodeIPv6(data)
	if err != nil {
		t.Fatalf("decodeIPv6 failed: %v", err)
	}
	if ip.NextHeader != ipv6ExtHopByHop {
		t.Errorf("Expected declared NextHeader %d, got %d", ipv6ExtHopByHop, ip.NextHeader)
	}
	if next != 17 {
		t.Errorf("Expected effective next header 17, got %d", next)
	}
	if len(payload) != 2 || payload[0] != 0xCA {
		t.Errorf("Expected payload [ca fe], got % x", payload)
	}
}

func TestDecodeIPv6TruncatedExtension(t *testing.T) {
	// Hop-by-hop header announces 16 bytes but only 8 follow.
	ext := []byte{17, 0x01, 0, 0, 0, 0, 0, 0}
	data := ipv6Header(ipv6ExtHopByHop, ext)

	if _, _, _, err := decodeIPv6(data); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("Expected ErrPacketTooShort, got %v", err)
	}
}

func TestDecodeIPv6TooShort(t *testing.T) {
	if _, _, _, err := decodeIPv6(make([]byte, 39)); !errors.Is(err, core.ErrPacketTooShort) {
		t.Errorf("Expected ErrPacketTooShort, got %v", err)
	}
}
