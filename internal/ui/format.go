package ui

import (
	"fmt"
	"strings"

	"github.com/wireview/wireview/internal/core"
)

// protoLabel is the tag shown in the packet table. A failed decode keeps
// the deepest parsed layer's tag with a leading "!".
func protoLabel(p *core.DecodedPacket) string {
	label := "RAW"
	if n := len(p.Layers); n > 0 {
		label = p.Layers[n-1].Proto().String()
	}
	if p.Err != nil {
		return "!" + label
	}
	return label
}

// endpoints derives the source/destination columns from the deepest layer
// that carries addresses. ARP shows "ip (mac)", IP layers show the address
// with the transport port appended when one was parsed, and frames that
// only got an Ethernet header fall back to MACs.
func endpoints(p *core.DecodedPacket) (src, dst string) {
	src, dst = "?", "?"
	var srcPort, dstPort uint16
	havePorts := false

	for _, layer := range p.Layers {
		switch h := layer.(type) {
		case core.EthernetHeader:
			src, dst = h.SrcMAC.String(), h.DstMAC.String()
		case core.ARPHeader:
			src = fmt.Sprintf("%s (%s)", h.SenderIP, h.SenderMAC)
			dst = fmt.Sprintf("%s (%s)", h.TargetIP, h.TargetMAC)
		case core.IPv4Header:
			src, dst = h.SrcIP.String(), h.DstIP.String()
		case core.IPv6Header:
			src, dst = h.SrcIP.String(), h.DstIP.String()
		case core.TCPHeader:
			srcPort, dstPort, havePorts = h.SrcPort, h.DstPort, true
		case core.UDPHeader:
			srcPort, dstPort, havePorts = h.SrcPort, h.DstPort, true
		}
	}
	if havePorts {
		src = fmt.Sprintf("%s:%d", src, srcPort)
		dst = fmt.Sprintf("%s:%d", dst, dstPort)
	}
	return src, dst
}

func packetRow(p *core.DecodedPacket) string {
	src, dst := endpoints(p)
	return fmt.Sprintf("%6d  %-8s %-24s %-24s %6d", p.Seq, protoLabel(p), src, dst, p.Length)
}

// viewport picks the window of rows to show: follow the tail when nothing
// is selected, otherwise keep the selection centered.
func viewport(total, height, selected int) (start, end int) {
	if height <= 0 || total <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	if selected < 0 {
		return total - height, total
	}
	start = selected - height/2
	if start < 0 {
		start = 0
	}
	if start > total-height {
		start = total - height
	}
	return start, start + height
}

func tcpFlagString(flags uint8) string {
	names := []struct {
		bit  uint8
		name string
	}{
		{core.TCPFlagFIN, "FIN"},
		{core.TCPFlagSYN, "SYN"},
		{core.TCPFlagRST, "RST"},
		{core.TCPFlagPSH, "PSH"},
		{core.TCPFlagACK, "ACK"},
		{core.TCPFlagURG, "URG"},
	}
	var set []string
	for _, n := range names {
		if flags&n.bit != 0 {
			set = append(set, n.name)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, "|")
}

const hexDumpLimit = 256

// hexDump renders data in the classic offset / hex / ascii layout, capped
// at hexDumpLimit bytes.
func hexDump(data []byte) string {
	truncated := false
	if len(data) > hexDumpLimit {
		data = data[:hexDumpLimit]
		truncated = true
	}

	var b strings.Builder
	for off := 0; off < len(data); off += 16 {
		line := data[off:]
		if len(line) > 16 {
			line = line[:16]
		}
		fmt.Fprintf(&b, "%04x  ", off)
		for i := 0; i < 16; i++ {
			if i < len(line) {
				fmt.Fprintf(&b, "%02x ", line[i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(' ')
		for _, c := range line {
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteByte('\n')
	}
	if truncated {
		b.WriteString("...\n")
	}
	return b.String()
}

// detailLines builds the layer-by-layer text for the detail popup.
func detailLines(p *core.DecodedPacket) []string {
	lines := []string{
		fmt.Sprintf("Packet #%d  %s  %s  %d bytes",
			p.Seq, p.Interface, p.Timestamp.Format("15:04:05.000000"), p.Length),
		"",
	}

	for _, layer := range p.Layers {
		switch h := layer.(type) {
		case core.EthernetHeader:
			lines = append(lines,
				"[Ethernet]",
				fmt.Sprintf("  src %s  dst %s  ethertype 0x%04x", h.SrcMAC, h.DstMAC, h.EtherType))
			for _, vlan := range h.VLANs {
				lines = append(lines, fmt.Sprintf("  vlan %d", vlan))
			}
		case core.ARPHeader:
			op := "request"
			if h.Operation == 2 {
				op = "reply"
			}
			lines = append(lines,
				"[ARP]",
				fmt.Sprintf("  operation %s", op),
				fmt.Sprintf("  sender %s (%s)", h.SenderIP, h.SenderMAC),
				fmt.Sprintf("  target %s (%s)", h.TargetIP, h.TargetMAC))
		case core.IPv4Header:
			lines = append(lines,
				"[IPv4]",
				fmt.Sprintf("  src %s  dst %s", h.SrcIP, h.DstIP),
				fmt.Sprintf("  ttl %d  protocol %d  total_len %d  id 0x%04x  flags 0x%x",
					h.TTL, h.Protocol, h.TotalLen, h.Ident, h.Flags))
		case core.IPv6Header:
			lines = append(lines,
				"[IPv6]",
				fmt.Sprintf("  src %s  dst %s", h.SrcIP, h.DstIP),
				fmt.Sprintf("  next_header %d  hop_limit %d  payload_len %d",
					h.NextHeader, h.HopLimit, h.PayloadLen))
		case core.TCPHeader:
			lines = append(lines,
				"[TCP]",
				fmt.Sprintf("  src_port %d  dst_port %d", h.SrcPort, h.DstPort),
				fmt.Sprintf("  seq %d  ack %d  flags %s  window %d",
					h.SeqNum, h.AckNum, tcpFlagString(h.Flags), h.Window))
		case core.UDPHeader:
			lines = append(lines,
				"[UDP]",
				fmt.Sprintf("  src_port %d  dst_port %d  length %d", h.SrcPort, h.DstPort, h.Length))
		case core.ICMPHeader:
			lines = append(lines,
				"[ICMP]",
				fmt.Sprintf("  type %d  code %d", h.Type, h.Code))
		case core.ICMPv6Header:
			lines = append(lines,
				"[ICMPv6]",
				fmt.Sprintf("  type %d  code %d", h.Type, h.Code))
		}
	}

	if p.Err != nil {
		lines = append(lines, "", fmt.Sprintf("decode stopped at %s: %v", p.Err.Layer, p.Err.Err))
	}
	if len(p.Payload) > 0 {
		lines = append(lines, "", "[Payload]")
		lines = append(lines, strings.Split(strings.TrimRight(hexDump(p.Payload), "\n"), "\n")...)
	}
	return lines
}

func formatBytes(n uint64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GiB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
