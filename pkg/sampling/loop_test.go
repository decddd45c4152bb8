package sampling

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/memory"
	memtest "github.com/go-drift/memlab/pkg/testing"
)

type recorder struct {
	mu       sync.Mutex
	readings []memory.Reading
}

func (r *recorder) publish(reading memory.Reading) {
	r.mu.Lock()
	r.readings = append(r.readings, reading)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []memory.Reading {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]memory.Reading(nil), r.readings...)
}

func newTestLoop(probe *memtest.FakeProbe, ticker *memtest.ManualTicker, rec *recorder) (*Loop, *int) {
	created := 0
	loop := &Loop{
		Sampler: &memory.Sampler{Probe: probe},
		Publish: rec.publish,
		NewTicker: func(time.Duration) Ticker {
			created++
			return ticker
		},
	}
	return loop, &created
}

func TestLoopPublishesEachTick(t *testing.T) {
	probe := memtest.NewFakeProbe(1, 2, 3)
	ticker := memtest.NewManualTicker()
	rec := &recorder{}
	loop, _ := newTestLoop(probe, ticker, rec)

	loop.Start()
	defer loop.Stop()

	for range 3 {
		require.True(t, ticker.Tick(time.Second))
	}
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 3 }, time.Second, time.Millisecond)
	loop.Stop()

	got := rec.snapshot()
	require.Len(t, got, 3)
	for i, want := range []memory.Sample{1 << 20, 2 << 20, 3 << 20} {
		assert.Equal(t, want, got[i].Bytes)
		assert.Equal(t, "current", got[i].Label)
		assert.True(t, got[i].Available())
	}
}

func TestLoopStartIsIdempotent(t *testing.T) {
	ticker := memtest.NewManualTicker()
	loop, created := newTestLoop(memtest.NewFakeProbe(1), ticker, &recorder{})

	loop.Start()
	loop.Start()
	defer loop.Stop()

	assert.Equal(t, 1, *created)
	assert.True(t, loop.Running())
}

func TestLoopStopCancelsTicks(t *testing.T) {
	ticker := memtest.NewManualTicker()
	rec := &recorder{}
	loop, _ := newTestLoop(memtest.NewFakeProbe(1), ticker, rec)

	loop.Start()
	require.True(t, ticker.Tick(time.Second))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)
	loop.Stop()

	assert.False(t, loop.Running())
	assert.True(t, ticker.Stopped())
	assert.False(t, ticker.Tick(20*time.Millisecond), "no receiver expected after Stop")

	// Stopping again is a no-op.
	loop.Stop()
	assert.Len(t, rec.snapshot(), 1)
}

func TestLoopNoPublishAfterStop(t *testing.T) {
	ticker := memtest.NewManualTicker()
	entered := make(chan struct{})
	release := make(chan struct{})

	var mu sync.Mutex
	published := 0
	loop := &Loop{
		Sampler: &memory.Sampler{Probe: memtest.NewFakeProbe(1)},
		Publish: func(memory.Reading) {
			mu.Lock()
			published++
			first := published == 1
			mu.Unlock()
			if first {
				close(entered)
				<-release
			}
		},
		NewTicker: func(time.Duration) Ticker { return ticker },
	}

	loop.Start()
	require.True(t, ticker.Tick(time.Second))
	<-entered

	stopped := make(chan struct{})
	go func() {
		loop.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a publish was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-stopped

	assert.False(t, ticker.Tick(20*time.Millisecond))
	mu.Lock()
	assert.Equal(t, 1, published)
	mu.Unlock()
}

func TestLoopRestart(t *testing.T) {
	ticker := memtest.NewManualTicker()
	rec := &recorder{}
	loop, created := newTestLoop(memtest.NewFakeProbe(5), ticker, rec)

	loop.Start()
	loop.Stop()
	loop.Start()
	defer loop.Stop()

	require.True(t, ticker.Tick(time.Second))
	assert.Equal(t, 2, *created)
}

func TestLoopPublishesUnavailableReadings(t *testing.T) {
	probe := memtest.NewFakeProbe(1)
	probe.Fail(nil)
	ticker := memtest.NewManualTicker()
	rec := &recorder{}
	loop, _ := newTestLoop(probe, ticker, rec)

	loop.Start()
	require.True(t, ticker.Tick(time.Second))
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, time.Millisecond)
	loop.Stop()

	got := rec.snapshot()
	require.Len(t, got, 1)
	assert.False(t, got[0].Available())
	assert.True(t, errors.Is(got[0].Err, merrors.ErrMeasurementUnavailable))
	assert.True(t, errors.Is(got[0].Err, memtest.ErrProbeDown))
}

func TestLoopRealTicker(t *testing.T) {
	rec := &recorder{}
	loop := &Loop{
		Sampler:  &memory.Sampler{Probe: memtest.NewFakeProbe(1)},
		Interval: 5 * time.Millisecond,
		Publish:  rec.publish,
	}
	loop.Start()
	require.Eventually(t, func() bool { return len(rec.snapshot()) >= 2 }, 2*time.Second, 5*time.Millisecond)
	loop.Stop()

	n := len(rec.snapshot())
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, len(rec.snapshot()))
}
