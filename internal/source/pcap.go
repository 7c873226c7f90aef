package source

import (
	"io"
	"time"

	"github.com/google/gopacket/pcap"
	"github.com/tevino/abool"

	"github.com/wireview/wireview/internal/core"
)

func init() {
	Register("pcap", openPcap)
}

// pcapSource reads frames from a libpcap live handle.
type pcapSource struct {
	handle   *pcap.Handle
	device   string
	closed   *abool.AtomicBool
	released *abool.AtomicBool
}

func openPcap(cfg Config) (Source, error) {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	handle, err := pcap.OpenLive(cfg.Device, int32(cfg.SnapLen), cfg.Promiscuous, timeout)
	if err != nil {
		return nil, err
	}
	return &pcapSource{
		handle:   handle,
		device:   cfg.Device,
		closed:   abool.New(),
		released: abool.New(),
	}, nil
}

func (s *pcapSource) ReadFrame() (core.RawFrame, error) {
	for {
		if s.closed.IsSet() {
			s.release()
			return core.RawFrame{}, core.ErrCaptureClosed
		}

		data, ci, err := s.handle.ReadPacketData()
		if err != nil {
			if err == pcap.NextErrorTimeoutExpired {
				// The read timeout doubles as the close-flag poll interval.
				continue
			}
			if err == io.EOF || s.closed.IsSet() {
				s.release()
				return core.RawFrame{}, core.ErrCaptureClosed
			}
			return core.RawFrame{}, err
		}

		// pcap reuses its buffer between reads; the frame gets its own copy.
		buf := make([]byte, len(data))
		copy(buf, data)

		return core.RawFrame{
			Data:      buf,
			Timestamp: ci.Timestamp,
			Interface: s.device,
			OrigLen:   ci.Length,
		}, nil
	}
}

// Close unblocks ReadFrame. The pcap handle itself is released by the
// reading goroutine once it observes the flag, so the handle is never
// destroyed under a blocked read.
func (s *pcapSource) Close() error {
	s.closed.Set()
	return nil
}

func (s *pcapSource) Interface() string { return s.device }

func (s *pcapSource) release() {
	if s.released.SetToIf(false, true) {
		s.handle.Close()
	}
}
