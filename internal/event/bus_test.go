package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wireview/wireview/internal/core"
)

func TestBusFIFOSingleProducer(t *testing.T) {
	b := NewBus()

	for seq := uint64(1); seq <= 100; seq++ {
		require.NoError(t, b.Publish(Event{
			Kind:   PacketCaptured,
			Packet: &core.DecodedPacket{Seq: seq},
		}))
	}

	for seq := uint64(1); seq <= 100; seq++ {
		ev, ok := b.Next()
		require.True(t, ok)
		assert.Equal(t, seq, ev.Packet.Seq, "events must arrive in publish order")
	}
}

func TestBusExactlyOnceAcrossProducers(t *testing.T) {
	const producers = 4
	const perProducer = 500

	b := NewBus()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = b.Publish(Event{
					Kind:   PacketCaptured,
					Packet: &core.DecodedPacket{Seq: uint64(p*perProducer + i)},
				})
			}
		}(p)
	}

	seen := make(map[uint64]int)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < producers*perProducer; i++ {
			ev, ok := b.Next()
			if !ok {
				return
			}
			seen[ev.Packet.Seq]++
		}
	}()

	wg.Wait()
	<-done

	require.Len(t, seen, producers*perProducer)
	for seq, n := range seen {
		assert.Equal(t, 1, n, "event %d delivered %d times", seq, n)
	}

	published, consumed := b.Stats()
	assert.Equal(t, uint64(producers*perProducer), published)
	assert.Equal(t, published, consumed)
}

func TestBusPerProducerOrderPreserved(t *testing.T) {
	const perProducer = 300

	b := NewBus()

	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_ = b.Publish(Event{
					Kind:   PacketCaptured,
					Packet: &core.DecodedPacket{Seq: uint64(i), Interface: string(rune('a' + p))},
				})
			}
		}(p)
	}
	wg.Wait()

	last := map[string]int64{}
	for i := 0; i < 3*perProducer; i++ {
		ev, ok := b.Next()
		require.True(t, ok)
		prev := last[ev.Packet.Interface]
		assert.Less(t, prev, int64(ev.Packet.Seq)+1, "per-producer order violated")
		last[ev.Packet.Interface] = int64(ev.Packet.Seq) + 1
	}
}

func TestBusCloseDrainsThenStops(t *testing.T) {
	b := NewBus()

	require.NoError(t, b.Publish(Event{Kind: Render}))
	require.NoError(t, b.Publish(Event{Kind: Render}))
	b.Close()

	assert.ErrorIs(t, b.Publish(Event{Kind: Render}), core.ErrBusClosed)

	// Already-published events survive the close.
	_, ok := b.Next()
	assert.True(t, ok)
	_, ok = b.Next()
	assert.True(t, ok)

	_, ok = b.Next()
	assert.False(t, ok, "drained closed bus must report ok=false")

	published, consumed := b.Stats()
	assert.Equal(t, published, consumed)
}

func TestBusCloseUnblocksConsumer(t *testing.T) {
	b := NewBus()

	done := make(chan bool)
	go func() {
		_, ok := b.Next()
		done <- ok
	}()

	b.Close()
	assert.False(t, <-done)
}

func TestBusCloseIdempotent(t *testing.T) {
	b := NewBus()
	b.Close()
	b.Close()
}
