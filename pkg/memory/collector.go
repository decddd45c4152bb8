package memory

import (
	"runtime"
	"runtime/debug"

	merrors "github.com/go-drift/memlab/pkg/errors"
)

// Collector is the forced-collection primitive. Collection is best effort;
// its effect shows up in the next sample, not in the return value.
type Collector interface {
	Name() string
	Collect() error
}

// RuntimeCollector runs a full Go collection and returns freed spans to the
// OS, so process-level probes see the drop as well as heap probes.
type RuntimeCollector struct{}

func (RuntimeCollector) Name() string { return "runtime" }

func (RuntimeCollector) Collect() error {
	runtime.GC()
	debug.FreeOSMemory()
	return nil
}

// NoCollector stands in on platforms without a collection hook.
type NoCollector struct{}

func (NoCollector) Name() string { return "none" }

func (NoCollector) Collect() error {
	return &merrors.CollectionUnavailableError{Collector: "none"}
}
