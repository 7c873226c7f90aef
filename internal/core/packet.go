package core

import "time"

// RawFrame is one frame as pulled off the wire. It lives only inside a
// capture worker loop iteration; the byte slice may reference the capture
// ring buffer and must not be retained past decoding.
type RawFrame struct {
	Data      []byte
	Timestamp time.Time // kernel timestamp preferred
	Interface string    // originating interface name
	OrigLen   int       // original frame length before any snaplen truncation
}

// DecodeError marks the layer at which best-effort decoding stopped.
type DecodeError struct {
	Layer Protocol // layer that was being attempted when decoding stopped
	Err   error
}

func (e *DecodeError) Error() string {
	return e.Layer.String() + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodedPacket is the durable record kept in the packet store. Seq is
// assigned by the store at append time; all other fields are set by the
// decoder and never mutated afterwards.
type DecodedPacket struct {
	Seq       uint64
	Timestamp time.Time
	Interface string
	Length    int // total captured byte length

	// Layers holds one header per successfully parsed layer, outermost
	// first. Err, when non-nil, names the first layer that failed.
	Layers []LayerHeader
	Err    *DecodeError

	// Payload is what remained after the innermost parsed layer.
	Payload []byte
}

// Layer returns the first header with the given protocol tag, or nil.
func (p *DecodedPacket) Layer(proto Protocol) LayerHeader {
	for _, l := range p.Layers {
		if l.Proto() == proto {
			return l
		}
	}
	return nil
}

// Transport returns the innermost transport-layer tag for display purposes:
// the last parsed layer's protocol, or ProtoUnknown for an undecodable frame.
func (p *DecodedPacket) Transport() Protocol {
	if len(p.Layers) == 0 {
		return ProtoUnknown
	}
	return p.Layers[len(p.Layers)-1].Proto()
}
