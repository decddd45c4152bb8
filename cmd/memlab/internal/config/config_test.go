package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/memlab/pkg/factory"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	res, err := Resolve(filepath.Join(dir, FileName))
	require.NoError(t, err)

	assert.Equal(t, factory.TypeView, res.ComponentType)
	assert.Equal(t, 1000, res.Count)
	assert.Equal(t, 500*time.Millisecond, res.Interval)
	assert.Equal(t, 2, res.WarmupReads)
	assert.Equal(t, "process", res.Probe)
	assert.True(t, res.Deferred)
	assert.Equal(t, 0, res.DiagnosticsPort)
	assert.Equal(t, "info", res.LogLevel)
	assert.NotEmpty(t, res.AppName)
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/team/heapcheck/v2\n\ngo 1.24\n")
	path := writeFile(t, dir, FileName, `
screen:
  componentType: Text
  count: 2500
sampling:
  interval: 250ms
  warmupReads: 0
  probe: heap
render:
  deferred: false
diagnostics:
  port: 6070
log:
  level: debug
  file: memlab.log
`)

	res, err := Resolve(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com/team/heapcheck/v2", res.ModulePath)
	assert.Equal(t, "heapcheck", res.AppName)
	assert.Equal(t, factory.TypeText, res.ComponentType)
	assert.Equal(t, 2500, res.Count)
	assert.Equal(t, 250*time.Millisecond, res.Interval)
	assert.Equal(t, 0, res.WarmupReads)
	assert.Equal(t, "heap", res.Probe)
	assert.False(t, res.Deferred)
	assert.Equal(t, 6070, res.DiagnosticsPort)
	assert.Equal(t, "debug", res.LogLevel)
	assert.Equal(t, "memlab.log", res.LogFile)
}

func TestResolveEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, FileName, "screen:\n  componentType: Text\n  count: 10\n")
	writeFile(t, dir, ".env", "MEMLAB_COUNT=42\nMEMLAB_PROBE=heap\n")

	// Variables already in the environment win over .env.
	t.Setenv("MEMLAB_PROBE", "process")
	t.Setenv("MEMLAB_COMPONENT_TYPE", "Switch")
	t.Setenv("MEMLAB_DEFERRED", "false")
	t.Cleanup(func() { os.Unsetenv("MEMLAB_COUNT") })

	res, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, factory.TypeSwitch, res.ComponentType)
	assert.Equal(t, 42, res.Count)
	assert.Equal(t, "process", res.Probe)
	assert.False(t, res.Deferred)
}

func TestResolveRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown type", "screen:\n  componentType: Canvas\n"},
		{"negative count", "screen:\n  count: -4\n"},
		{"bad interval", "sampling:\n  interval: soon\n"},
		{"short interval", "sampling:\n  interval: 1ms\n"},
		{"negative warmup", "sampling:\n  warmupReads: -1\n"},
		{"unknown probe", "sampling:\n  probe: vmstat\n"},
		{"port range", "diagnostics:\n  port: 70000\n"},
		{"malformed yaml", "screen: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), FileName, tt.content)
			_, err := Resolve(path)
			assert.Error(t, err)
		})
	}
}

func TestResolveRejectsBadEnv(t *testing.T) {
	t.Setenv("MEMLAB_COUNT", "many")
	_, err := Resolve(filepath.Join(t.TempDir(), FileName))
	assert.Error(t, err)
}

func TestDefaultAppName(t *testing.T) {
	tests := []struct {
		modulePath string
		want       string
	}{
		{"github.com/go-drift/memlab", "memlab"},
		{"example.com/tools/probe/v3", "probe"},
		{"", "memlab"},
	}
	for _, tt := range tests {
		if got := defaultAppName(tt.modulePath); got != tt.want {
			t.Errorf("defaultAppName(%q) = %q, want %q", tt.modulePath, got, tt.want)
		}
	}
}
