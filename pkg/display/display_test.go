package display

import (
	"math"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/screen"
)

func TestFormatMegabytes(t *testing.T) {
	tests := []struct {
		bytes float64
		want  string
	}{
		{0, "0.0"},
		{50, "0.0"},
		{1048576, "1.0"},
		{1048575, "1.0"},
		{1572864, "1.5"},
		{-1048576, "-1.0"},
		{-50, "0.0"},
		{104857600, "100.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatMegabytes(tt.bytes), "FormatMegabytes(%v)", tt.bytes)
	}
}

func TestFormatKilobytes(t *testing.T) {
	tests := []struct {
		bytes float64
		want  string
	}{
		{0, "0.0"},
		{5, "0.0"},
		{5120, "5.0"},
		{1024, "1.0"},
		{1536, "1.5"},
		{-2048, "-2.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatKilobytes(tt.bytes), "FormatKilobytes(%v)", tt.bytes)
	}
}

func TestDeltaAndPerView(t *testing.T) {
	assert.Equal(t, int64(50), Delta(100, 150))
	assert.Equal(t, int64(-50), Delta(150, 100))
	assert.Equal(t, int64(math.MaxInt64), Delta(0, math.MaxUint64))
	assert.Equal(t, int64(math.MinInt64), Delta(math.MaxUint64, 0))
	assert.Equal(t, int64(math.MinInt64), Delta(1<<63, 0))
	assert.Equal(t, 5.0, PerView(50, 10))
	assert.Equal(t, 0.0, PerView(50, 0))
	assert.Equal(t, -2.5, PerView(-25, 10))
}

func TestSummarize(t *testing.T) {
	s := screen.State{
		Type:          "Text",
		Baseline:      100 * 1024 * 1024,
		BaselineOK:    true,
		Current:       110 * 1024 * 1024,
		CurrentOK:     true,
		SampleCount:   1,
		RenderedCount: 2048,
	}
	got := Summarize(s)

	assert.Equal(t, Summary{
		Type:         "Text",
		Rendered:     2048,
		Samples:      1,
		Before:       "100.0",
		After:        "110.0",
		Delta:        "10.0",
		PerView:      "5.0",
		DeltaBytes:   10 * 1024 * 1024,
		PerViewBytes: 5120,
		Measured:     true,
	}, got)
}

func TestSummarizeEmptySet(t *testing.T) {
	got := Summarize(screen.State{
		Baseline: memory.Sample(200), BaselineOK: true,
		Current: memory.Sample(100), CurrentOK: true,
		SampleCount: 2,
	})
	assert.Equal(t, "0.0", got.PerView)
	assert.Equal(t, "0.0", got.Delta)
	assert.Equal(t, int64(-100), got.DeltaBytes)
	assert.True(t, got.Dirty)
}

func TestSummarizeAfterRemoval(t *testing.T) {
	got := Summarize(screen.State{
		Baseline: memory.FromMiB(120), BaselineOK: true,
		Current: memory.FromMiB(100), CurrentOK: true,
		SampleCount:   2,
		RenderedCount: 1000,
	})
	assert.Equal(t, "-20.0", got.Delta)
	assert.Equal(t, "-20.5", got.PerView)
	assert.InDelta(t, -20971.52, got.PerViewBytes, 1e-9)
}

func TestSummarizeMissingReadings(t *testing.T) {
	got := Summarize(screen.State{
		Current: memory.Sample(1048576), CurrentOK: true,
		RenderedCount: 10,
	})
	assert.Equal(t, Missing, got.Before)
	assert.Equal(t, "1.0", got.After)
	assert.Equal(t, Missing, got.Delta)
	assert.Equal(t, Missing, got.PerView)
	assert.False(t, got.Measured)

	got = Summarize(screen.State{})
	assert.Equal(t, Missing, got.Before)
	assert.Equal(t, Missing, got.After)
}

func TestDirtyBadge(t *testing.T) {
	for n, want := range map[int]bool{0: false, 1: false, 2: true, 7: true} {
		assert.Equal(t, want, Summarize(screen.State{SampleCount: n}).Dirty, "sampleCount=%d", n)
	}
}

func TestPlatform(t *testing.T) {
	label := Platform()
	assert.True(t, strings.HasPrefix(label, strings.ToUpper(runtime.GOOS)+" "))
	assert.Contains(t, []string{"DEBUG", "RELEASE"}, label[strings.LastIndex(label, " ")+1:])
}
