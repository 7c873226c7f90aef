package source

import (
	"fmt"
	"os"
	"time"

	"github.com/google/gopacket/afpacket"
	"github.com/mitchellh/mapstructure"
	"github.com/tevino/abool"

	"github.com/wireview/wireview/internal/core"
)

func init() {
	Register("afpacket", openAfpacket)
}

// afpacketOptions are the backend-specific knobs under `options:`.
type afpacketOptions struct {
	BufferSizeMB int `mapstructure:"buffer_size_mb"`
}

// afpacketSource reads frames from an AF_PACKET v3 ring buffer.
type afpacketSource struct {
	handle   *afpacket.TPacket
	device   string
	closed   *abool.AtomicBool
	released *abool.AtomicBool
}

func openAfpacket(cfg Config) (Source, error) {
	opts := afpacketOptions{BufferSizeMB: 8}
	if cfg.Options != nil {
		if err := mapstructure.Decode(cfg.Options, &opts); err != nil {
			return nil, fmt.Errorf("afpacket options: %w", err)
		}
	}

	frameSize, blockSize, numBlocks, err := recomputeSize(opts.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, err
	}

	handle, err := afpacket.NewTPacket(
		afpacket.OptInterface(cfg.Device),
		afpacket.OptFrameSize(frameSize),
		afpacket.OptBlockSize(blockSize),
		afpacket.OptNumBlocks(numBlocks),
		afpacket.OptPollTimeout(time.Duration(cfg.TimeoutMs)*time.Millisecond),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return nil, err
	}

	return &afpacketSource{
		handle:   handle,
		device:   cfg.Device,
		closed:   abool.New(),
		released: abool.New(),
	}, nil
}

func (s *afpacketSource) ReadFrame() (core.RawFrame, error) {
	for {
		if s.closed.IsSet() {
			s.release()
			return core.RawFrame{}, core.ErrCaptureClosed
		}

		data, ci, err := s.handle.ReadPacketData()
		if err != nil {
			if err == afpacket.ErrTimeout {
				continue
			}
			if s.closed.IsSet() {
				s.release()
				return core.RawFrame{}, core.ErrCaptureClosed
			}
			return core.RawFrame{}, err
		}

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

func (s *afpacketSource) Close() error {
	s.closed.Set()
	return nil
}

func (s *afpacketSource) Interface() string { return s.device }

func (s *afpacketSource) release() {
	if s.released.SetToIf(false, true) {
		s.handle.Close()
	}
}

// recomputeSize recalculates the frame size, block size, and number of
// blocks to meet the AF_PACKET PACKET_MMAP alignment requirements within
// the target memory budget:
//
//  1. frameSize must be a multiple of TPACKET_ALIGNMENT (16 bytes)
//  2. blockSize must be a multiple of pageSize and of frameSize
//  3. blockSize * numBlocks should approximate ringBufferSizeMB
func recomputeSize(ringBufferSizeMB, snapLen, pageSize int) (frameSize, blockSize, numBlocks int, err error) {
	const tpacketAlignment = 16
	const tpacketHdrLen = 52 // TPACKET3_HDRLEN (approximate)

	if ringBufferSizeMB <= 0 {
		return 0, 0, 0, fmt.Errorf("ring buffer size must be positive, got %d", ringBufferSizeMB)
	}
	if snapLen <= 0 {
		return 0, 0, 0, fmt.Errorf("snap length must be positive, got %d", snapLen)
	}
	if pageSize <= 0 || pageSize%tpacketAlignment != 0 {
		return 0, 0, 0, fmt.Errorf("page size must be positive and a multiple of %d, got %d", tpacketAlignment, pageSize)
	}

	targetBytes := ringBufferSizeMB * 1024 * 1024

	rawFrameSize := tpacketHdrLen + snapLen
	frameSize = ((rawFrameSize + tpacketAlignment - 1) / tpacketAlignment) * tpacketAlignment

	minBlockSize := pageSize
	if minBlockSize < frameSize {
		minBlockSize = frameSize
	}

	blockSize = lcm(pageSize, frameSize)

	const maxBlockSize = 4 * 1024 * 1024
	if blockSize < minBlockSize {
		blockSize = minBlockSize
	}
	if blockSize > maxBlockSize {
		blockSize = (maxBlockSize / pageSize) * pageSize
	}

	numBlocks = targetBytes / blockSize
	if numBlocks < 1 {
		numBlocks = 1
	}

	if blockSize%frameSize != 0 {
		framesPerBlock := blockSize / frameSize
		if framesPerBlock < 1 {
			framesPerBlock = 1
		}
		blockSize = framesPerBlock * frameSize
		blockSize = ((blockSize + pageSize - 1) / pageSize) * pageSize
	}

	return frameSize, blockSize, numBlocks, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return (a * b) / gcd(a, b)
}
