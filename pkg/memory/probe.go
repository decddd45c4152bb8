package memory

import (
	"os"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/process"
)

// Probe is the external memory-measurement primitive. ReadMiB reports the
// current footprint in mebibytes.
type Probe interface {
	Name() string
	ReadMiB() (float64, error)
}

// ProcessProbe reports the resident set size of the current process. This is
// what the OS charges the app for, so it includes native allocations the Go
// heap never sees.
type ProcessProbe struct {
	once sync.Once
	proc *process.Process
	err  error
}

// NewProcessProbe returns a probe bound to the current process.
func NewProcessProbe() *ProcessProbe {
	return &ProcessProbe{}
}

func (p *ProcessProbe) Name() string { return "process" }

func (p *ProcessProbe) ReadMiB() (float64, error) {
	p.once.Do(func() {
		p.proc, p.err = process.NewProcess(int32(os.Getpid()))
	})
	if p.err != nil {
		return 0, p.err
	}
	info, err := p.proc.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return float64(info.RSS) / bytesPerMiB, nil
}

// HeapProbe reports live Go heap bytes. It isolates the Go side of a
// rendering primitive from native allocations.
type HeapProbe struct{}

func (HeapProbe) Name() string { return "heap" }

func (HeapProbe) ReadMiB() (float64, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return float64(stats.HeapAlloc) / bytesPerMiB, nil
}

// FuncProbe adapts a function to the Probe interface.
type FuncProbe struct {
	Label string
	Fn    func() (float64, error)
}

func (f FuncProbe) Name() string { return f.Label }

func (f FuncProbe) ReadMiB() (float64, error) {
	return f.Fn()
}

// ProbeByName returns the built-in probe for name ("process" or "heap").
func ProbeByName(name string) (Probe, bool) {
	switch name {
	case "", "process":
		return NewProcessProbe(), true
	case "heap":
		return HeapProbe{}, true
	default:
		return nil, false
	}
}
