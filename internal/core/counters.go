package core

// ProtocolCount is the running tally for one protocol tag.
type ProtocolCount struct {
	Packets uint64
	Bytes   uint64
}

// ProtocolCounters accumulates per-protocol packet and byte counts for one
// capture session. It is owned exclusively by the application core and is
// never shared across goroutines; no locking is required.
type ProtocolCounters struct {
	perProto     map[Protocol]ProtocolCount
	totalPackets uint64
	totalBytes   uint64
}

func NewProtocolCounters() *ProtocolCounters {
	return &ProtocolCounters{perProto: make(map[Protocol]ProtocolCount)}
}

// Record tallies one decoded packet: every successfully parsed layer
// increments its protocol's count, and the session totals grow by one
// packet regardless of decode success.
func (c *ProtocolCounters) Record(p *DecodedPacket) {
	c.totalPackets++
	c.totalBytes += uint64(p.Length)
	for _, layer := range p.Layers {
		cnt := c.perProto[layer.Proto()]
		cnt.Packets++
		cnt.Bytes += uint64(p.Length)
		c.perProto[layer.Proto()] = cnt
	}
}

// Get returns the tally for one protocol.
func (c *ProtocolCounters) Get(proto Protocol) ProtocolCount {
	return c.perProto[proto]
}

// Totals returns the session-wide packet and byte counts.
func (c *ProtocolCounters) Totals() (packets, bytes uint64) {
	return c.totalPackets, c.totalBytes
}

// Snapshot returns a copy of the per-protocol map safe to hand to the
// rendering collaborator.
func (c *ProtocolCounters) Snapshot() map[Protocol]ProtocolCount {
	out := make(map[Protocol]ProtocolCount, len(c.perProto))
	for k, v := range c.perProto {
		out[k] = v
	}
	return out
}

// Reset clears all tallies. Called only on capture restart or interface
// switch, never mid-session.
func (c *ProtocolCounters) Reset() {
	c.perProto = make(map[Protocol]ProtocolCount)
	c.totalPackets = 0
	c.totalBytes = 0
}
