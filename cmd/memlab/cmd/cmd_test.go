package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/memlab/cmd/memlab/internal/config"
	"github.com/go-drift/memlab/pkg/display"
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/memory"
	memtest "github.com/go-drift/memlab/pkg/testing"
)

func captured() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&buf)
	return c, &buf
}

func TestWriteTypes(t *testing.T) {
	c, buf := captured()
	require.NoError(t, writeTypes(c, factory.Default()))

	out := buf.String()
	for _, typ := range factory.Default().Types() {
		assert.Contains(t, out, string(typ))
	}
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "Bundled @1x asset.")
}

func TestWriteBench(t *testing.T) {
	originalNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = originalNoColor }()

	c, buf := captured()
	rows := []benchRow{
		{Type: factory.TypeView, Summary: display.Summary{Rendered: 10, Before: "1.0", After: "2.0", Delta: "1.0", PerView: "102.4"}},
		{Type: factory.TypeText, Summary: display.Summary{Rendered: 10, Before: "2.0", After: "2.5", Delta: "0.5", PerView: "51.2", Dirty: true}},
		{Type: "Canvas", Err: errors.New("unknown component type")},
	}
	require.NoError(t, writeBench(c, rows))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, display.Platform()))
	assert.Contains(t, out, "102.4")
	assert.Equal(t, 1, strings.Count(out, "DIRTY"))
	assert.Contains(t, out, "unknown component type")
}

func TestSessionMeasure(t *testing.T) {
	res := &config.Resolved{
		ComponentType: factory.TypeView,
		Count:         10,
		Interval:      100 * time.Millisecond,
		Probe:         "heap",
	}
	s, err := newSession(res, hintFor(true))
	require.NoError(t, err)
	defer s.stop()
	s.sampler.Probe = memtest.NewFakeProbe(10, 10, 12, 12, 11)
	s.sampler.WarmupReads = 0
	benchFlags.timeout = 5 * time.Second

	sum, err := s.measure(t.Context(), factory.TypeSwitch, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, sum.Rendered)
	assert.Equal(t, "10.0", sum.Before)
	assert.Equal(t, "10.0", sum.After)
	assert.False(t, sum.Dirty)

	state := s.controller.State()
	assert.Equal(t, 100, state.RenderedCount)
	assert.Equal(t, 0, s.controller.Host().Mounted())
	assert.Equal(t, 2, state.SampleCount)
	assert.Equal(t, memory.FromMiB(12), state.Baseline)

	_, err = s.measure(t.Context(), "Canvas", 1, 0)
	assert.Error(t, err)
}

func TestNewSessionRejectsUnknownProbe(t *testing.T) {
	_, err := newSession(&config.Resolved{Probe: "vmstat", Interval: time.Second}, hintFor(false))
	assert.Error(t, err)
}
