package memory

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merrors "github.com/go-drift/memlab/pkg/errors"
	memtest "github.com/go-drift/memlab/pkg/testing"
)

func TestFromMiB(t *testing.T) {
	tests := []struct {
		mib  float64
		want Sample
	}{
		{0, 0},
		{1, 1048576},
		{0.5, 524288},
		{-3, 0},
		{math.NaN(), 0},
		{123.25, 129236992},
		{math.Inf(1), math.MaxUint64},
		{math.MaxFloat64, math.MaxUint64},
		{1 << 44, math.MaxUint64},
	}
	for _, tt := range tests {
		if got := FromMiB(tt.mib); got != tt.want {
			t.Errorf("FromMiB(%v) = %d, want %d", tt.mib, got, tt.want)
		}
	}
	assert.Equal(t, 1.0, Sample(1048576).MiB())
}

func TestSamplerWarmupReads(t *testing.T) {
	probe := memtest.NewFakeProbe(10, 11, 12, 13)
	s := &Sampler{Probe: probe, WarmupReads: 2}

	got, err := s.Sample("create views")
	require.NoError(t, err)
	assert.Equal(t, FromMiB(12), got, "third read is the reported one")
	assert.Equal(t, 3, probe.Calls())
}

func TestSamplerWithoutWarmup(t *testing.T) {
	for _, warmups := range []int{0, -4} {
		probe := memtest.NewFakeProbe(10, 11)
		s := &Sampler{Probe: probe, WarmupReads: warmups}
		got, err := s.Sample("")
		require.NoError(t, err)
		assert.Equal(t, FromMiB(10), got)
		assert.Equal(t, 1, probe.Calls())
	}
}

func TestNewSamplerDefaults(t *testing.T) {
	s := NewSampler(HeapProbe{})
	assert.Equal(t, DefaultWarmupReads, s.WarmupReads)
}

func TestSamplerUnavailable(t *testing.T) {
	probe := memtest.NewFakeProbe(1)
	probe.Fail(nil)
	s := &Sampler{Probe: probe, WarmupReads: 2}

	_, err := s.Sample("current")
	require.Error(t, err)
	assert.True(t, errors.Is(err, merrors.ErrMeasurementUnavailable))
	assert.Equal(t, 1, probe.Calls(), "no retries after the first failure")

	var unavailable *merrors.MeasurementUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "fake", unavailable.Probe)

	var nilSampler *Sampler
	_, err = nilSampler.Sample("x")
	assert.ErrorIs(t, err, merrors.ErrMeasurementUnavailable)

	_, err = (&Sampler{}).Sample("x")
	assert.ErrorIs(t, err, merrors.ErrMeasurementUnavailable)
}

func TestSamplerRead(t *testing.T) {
	clock := memtest.NewFakeClock()
	s := &Sampler{Probe: memtest.NewFakeProbe(2), Now: clock.Now}

	r := s.Read("remove views")
	assert.True(t, r.Available())
	assert.Equal(t, "remove views", r.Label)
	assert.Equal(t, FromMiB(2), r.Bytes)
	assert.Equal(t, clock.Now(), r.At)
}

func TestBuiltinProbes(t *testing.T) {
	mib, err := HeapProbe{}.ReadMiB()
	require.NoError(t, err)
	assert.Greater(t, mib, 0.0)

	p, ok := ProbeByName("process")
	require.True(t, ok)
	assert.Equal(t, "process", p.Name())
	if mib, err := p.ReadMiB(); err == nil {
		assert.Greater(t, mib, 0.0)
	}

	_, ok = ProbeByName("gpu")
	assert.False(t, ok)
}

func TestWarmerRunsOnce(t *testing.T) {
	probe := memtest.NewFakeProbe(7, 8, 9)
	s := &Sampler{Probe: probe}

	var w Warmer
	first := w.Do(s)
	second := w.Do(s)

	assert.Equal(t, 1, probe.Calls())
	assert.Equal(t, first, second)
	assert.Equal(t, "warmup", first.Label)
}

func TestCollectors(t *testing.T) {
	assert.NoError(t, RuntimeCollector{}.Collect())
	assert.ErrorIs(t, NoCollector{}.Collect(), merrors.ErrCollectionUnavailable)
}

func TestHistoryRingOrder(t *testing.T) {
	h := NewHistory(2*time.Second, time.Second)
	require.Equal(t, 2*time.Second, h.Window())
	assert.Nil(t, h.Snapshot())

	for i := int64(1); i <= 3; i++ {
		h.Add(Point{Timestamp: i})
	}
	got := h.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].Timestamp)
	assert.Equal(t, int64(3), got[1].Timestamp)
}

func TestHistoryNormalizesConfig(t *testing.T) {
	h := NewHistory(0, 0)
	assert.Equal(t, historyIntervalDefault, h.Interval())
	assert.Equal(t, historyWindowDefault, h.Window())

	h = NewHistory(time.Hour, time.Millisecond)
	assert.Equal(t, historyMinInterval, h.Interval())
	assert.Equal(t, time.Duration(historyMaxPoints)*historyMinInterval, h.Window())
}

func TestPointFrom(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	p := PointFrom(Reading{Label: "current", Bytes: 42, At: at})
	assert.Equal(t, int64(1700000000000), p.Timestamp)
	assert.True(t, p.Available)
	assert.Equal(t, uint64(42), p.Footprint)
	assert.NotZero(t, p.Runtime.HeapSys)

	p = PointFrom(Reading{Err: merrors.ErrMeasurementUnavailable})
	assert.False(t, p.Available)
}
