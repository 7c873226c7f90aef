package ui

import (
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wireview/wireview/internal/core"
)

func arpPacket() *core.DecodedPacket {
	return &core.DecodedPacket{
		Seq:       1,
		Timestamp: time.Now(),
		Interface: "eth0",
		Length:    42,
		Layers: []core.LayerHeader{
			core.EthernetHeader{EtherType: 0x0806},
			core.ARPHeader{
				Operation: 1,
				SenderMAC: core.MAC{0xaa, 0xbb, 0xcc, 0, 0, 1},
				SenderIP:  netip.AddrFrom4([4]byte{10, 0, 0, 1}),
				TargetMAC: core.MAC{},
				TargetIP:  netip.AddrFrom4([4]byte{10, 0, 0, 2}),
			},
		},
	}
}

func tcpPacket() *core.DecodedPacket {
	return &core.DecodedPacket{
		Seq:       2,
		Timestamp: time.Now(),
		Interface: "eth0",
		Length:    74,
		Layers: []core.LayerHeader{
			core.EthernetHeader{EtherType: 0x0800},
			core.IPv4Header{
				SrcIP: netip.AddrFrom4([4]byte{192, 168, 1, 10}),
				DstIP: netip.AddrFrom4([4]byte{1, 1, 1, 1}),
				TTL:   64, Protocol: 6,
			},
			core.TCPHeader{SrcPort: 51234, DstPort: 443, Flags: core.TCPFlagSYN},
		},
	}
}

func TestEndpointsARP(t *testing.T) {
	src, dst := endpoints(arpPacket())
	assert.Equal(t, "10.0.0.1 (aa:bb:cc:00:00:01)", src)
	assert.Equal(t, "10.0.0.2 (00:00:00:00:00:00)", dst)
}

func TestEndpointsTCP(t *testing.T) {
	src, dst := endpoints(tcpPacket())
	assert.Equal(t, "192.168.1.10:51234", src)
	assert.Equal(t, "1.1.1.1:443", dst)
}

func TestEndpointsEthernetOnly(t *testing.T) {
	p := &core.DecodedPacket{
		Layers: []core.LayerHeader{core.EthernetHeader{
			SrcMAC: core.MAC{1, 2, 3, 4, 5, 6},
			DstMAC: core.MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		}},
		Err: &core.DecodeError{Layer: core.ProtoEthernet, Err: core.ErrUnknownEtherType},
	}
	src, dst := endpoints(p)
	assert.Equal(t, "01:02:03:04:05:06", src)
	assert.Equal(t, "ff:ff:ff:ff:ff:ff", dst)
}

func TestProtoLabel(t *testing.T) {
	assert.Equal(t, "ARP", protoLabel(arpPacket()))
	assert.Equal(t, "TCP", protoLabel(tcpPacket()))

	junk := &core.DecodedPacket{
		Err: &core.DecodeError{Layer: core.ProtoEthernet, Err: core.ErrPacketTooShort},
	}
	assert.Equal(t, "!RAW", protoLabel(junk))
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name               string
		total, height, sel int
		wantStart, wantEnd int
	}{
		{"empty", 0, 10, -1, 0, 0},
		{"fits", 5, 10, -1, 0, 5},
		{"follow tail", 100, 10, -1, 90, 100},
		{"selection centered", 100, 10, 50, 45, 55},
		{"selection near top", 100, 10, 2, 0, 10},
		{"selection near bottom", 100, 10, 99, 90, 100},
		{"zero height", 100, 0, 5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := viewport(tt.total, tt.height, tt.sel)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTCPFlagString(t *testing.T) {
	assert.Equal(t, "none", tcpFlagString(0))
	assert.Equal(t, "SYN", tcpFlagString(core.TCPFlagSYN))
	assert.Equal(t, "SYN|ACK", tcpFlagString(core.TCPFlagSYN|core.TCPFlagACK))
	assert.Equal(t, "FIN|RST|PSH|URG",
		tcpFlagString(core.TCPFlagFIN|core.TCPFlagRST|core.TCPFlagPSH|core.TCPFlagURG))
}

func TestHexDump(t *testing.T) {
	out := hexDump([]byte("GET / HTTP/1.1\r\nHost: x\x00"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0000  47 45 54 20 2f 20 48 54  54 50 2f 31 2e 31 0d 0a"))
	assert.True(t, strings.HasSuffix(lines[0], "GET / HTTP/1.1.."))
	assert.True(t, strings.HasPrefix(lines[1], "0010"))

	big := hexDump(make([]byte, hexDumpLimit+1))
	assert.True(t, strings.HasSuffix(big, "...\n"))
}

func TestDetailLines(t *testing.T) {
	p := tcpPacket()
	p.Payload = []byte{0xde, 0xad}
	lines := detailLines(p)
	text := strings.Join(lines, "\n")

	assert.Contains(t, text, "Packet #2")
	assert.Contains(t, text, "[Ethernet]")
	assert.Contains(t, text, "[IPv4]")
	assert.Contains(t, text, "[TCP]")
	assert.Contains(t, text, "flags SYN")
	assert.Contains(t, text, "[Payload]")
	assert.Contains(t, text, "de ad")
}

func TestDetailLinesDecodeError(t *testing.T) {
	p := arpPacket()
	p.Err = &core.DecodeError{Layer: core.ProtoARP, Err: core.ErrPacketTooShort}
	text := strings.Join(detailLines(p), "\n")
	assert.Contains(t, text, "decode stopped at ARP")
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2<<20))
	assert.Equal(t, "1.0 GiB", formatBytes(1<<30))
}
