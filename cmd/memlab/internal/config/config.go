// Package config loads memlab.yaml and the .env overrides next to it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/sampling"
	"github.com/go-drift/memlab/pkg/screen"
)

// FileName is the configuration file looked up when no path is given.
const FileName = "memlab.yaml"

const minInterval = 50 * time.Millisecond

// Config represents the optional memlab.yaml configuration.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Sampling    SamplingConfig    `yaml:"sampling"`
	Render      RenderConfig      `yaml:"render"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Log         LogConfig         `yaml:"log"`
}

// ScreenConfig sets the screen's initial selection.
type ScreenConfig struct {
	ComponentType string `yaml:"componentType,omitempty"`
	Count         int    `yaml:"count,omitempty"`
}

// SamplingConfig tunes the memory sampler.
type SamplingConfig struct {
	Interval    string `yaml:"interval,omitempty"`
	WarmupReads *int   `yaml:"warmupReads,omitempty"`
	Probe       string `yaml:"probe,omitempty"`
}

// RenderConfig selects the commit discipline.
type RenderConfig struct {
	Deferred *bool `yaml:"deferred,omitempty"`
}

// DiagnosticsConfig enables the debug HTTP server. Port 0 disables it.
type DiagnosticsConfig struct {
	Port int `yaml:"port,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path            string
	ModulePath      string
	AppName         string
	ComponentType   factory.ComponentType
	Count           int
	Interval        time.Duration
	WarmupReads     int
	Probe           string
	Deferred        bool
	DiagnosticsPort int
	LogLevel        string
	LogFile         string
}

// LoadOptional reads the configuration file at path if present.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// Resolve loads the configuration at path (if present), applies MEMLAB_*
// environment overrides, including those from a .env file in the same
// directory, and resolves defaults. An empty path means FileName in the
// working directory.
func Resolve(path string) (*Resolved, error) {
	if path == "" {
		path = FileName
	}
	dir := filepath.Dir(path)

	if err := loadDotEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	modPath := modulePath(dir)
	res := &Resolved{
		Path:            path,
		ModulePath:      modPath,
		AppName:         defaultAppName(modPath),
		ComponentType:   factory.ComponentType(strings.TrimSpace(cfg.Screen.ComponentType)),
		Count:           cfg.Screen.Count,
		Interval:        sampling.DefaultInterval,
		WarmupReads:     memory.DefaultWarmupReads,
		Probe:           strings.TrimSpace(cfg.Sampling.Probe),
		Deferred:        true,
		DiagnosticsPort: cfg.Diagnostics.Port,
		LogLevel:        strings.TrimSpace(cfg.Log.Level),
		LogFile:         strings.TrimSpace(cfg.Log.File),
	}

	if res.ComponentType == "" {
		res.ComponentType = factory.TypeView
	}
	if res.Count == 0 {
		res.Count = screen.DefaultCount
	}
	if res.Probe == "" {
		res.Probe = "process"
	}
	if res.LogLevel == "" {
		res.LogLevel = "info"
	}
	if cfg.Sampling.WarmupReads != nil {
		res.WarmupReads = *cfg.Sampling.WarmupReads
	}
	if cfg.Render.Deferred != nil {
		res.Deferred = *cfg.Render.Deferred
	}
	if v := strings.TrimSpace(cfg.Sampling.Interval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("sampling.interval: %w", err)
		}
		res.Interval = d
	}

	if err := res.validate(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *Resolved) validate() error {
	if !factory.Default().Has(r.ComponentType) {
		return fmt.Errorf("screen.componentType: unknown component type %q", r.ComponentType)
	}
	if r.Count < 0 {
		return fmt.Errorf("screen.count must be positive (got %d)", r.Count)
	}
	if r.Interval < minInterval {
		return fmt.Errorf("sampling.interval must be at least %v (got %v)", minInterval, r.Interval)
	}
	if r.WarmupReads < 0 {
		return fmt.Errorf("sampling.warmupReads cannot be negative (got %d)", r.WarmupReads)
	}
	if _, ok := memory.ProbeByName(r.Probe); !ok {
		return fmt.Errorf("sampling.probe must be \"process\" or \"heap\" (got %q)", r.Probe)
	}
	if r.DiagnosticsPort < 0 || r.DiagnosticsPort > 65535 {
		return fmt.Errorf("diagnostics.port out of range (got %d)", r.DiagnosticsPort)
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	// Load never overrides variables already set in the environment.
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("MEMLAB_COMPONENT_TYPE"); ok {
		cfg.Screen.ComponentType = v
	}
	if v, ok := os.LookupEnv("MEMLAB_COUNT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MEMLAB_COUNT: %w", err)
		}
		cfg.Screen.Count = n
	}
	if v, ok := os.LookupEnv("MEMLAB_INTERVAL"); ok {
		cfg.Sampling.Interval = v
	}
	if v, ok := os.LookupEnv("MEMLAB_WARMUP_READS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MEMLAB_WARMUP_READS: %w", err)
		}
		cfg.Sampling.WarmupReads = &n
	}
	if v, ok := os.LookupEnv("MEMLAB_PROBE"); ok {
		cfg.Sampling.Probe = v
	}
	if v, ok := os.LookupEnv("MEMLAB_DEFERRED"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MEMLAB_DEFERRED: %w", err)
		}
		cfg.Render.Deferred = &b
	}
	if v, ok := os.LookupEnv("MEMLAB_DIAGNOSTICS_PORT"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MEMLAB_DIAGNOSTICS_PORT: %w", err)
		}
		cfg.Diagnostics.Port = n
	}
	if v, ok := os.LookupEnv("MEMLAB_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("MEMLAB_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	return nil
}

// modulePath prefers the go.mod next to the configuration, then the main
// module of the running binary.
func modulePath(dir string) string {
	if data, err := os.ReadFile(filepath.Join(dir, "go.mod")); err == nil {
		if path := modfile.ModulePath(data); path != "" {
			return path
		}
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Path
	}
	return ""
}

func defaultAppName(modulePath string) string {
	modName, _, ok := module.SplitPathVersion(modulePath)
	if !ok || modName == "" {
		return "memlab"
	}
	parts := strings.Split(modName, "/")
	if base := parts[len(parts)-1]; base != "" {
		return base
	}
	return "memlab"
}
