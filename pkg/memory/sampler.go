package memory

import (
	"time"

	"go.uber.org/zap"

	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/logging"
)

// DefaultWarmupReads matches the screen's historical smoothing: two discarded
// reads, then the reported one.
const DefaultWarmupReads = 2

// Sampler turns probe readings into byte samples.
//
// A Sampler never retries and never blocks longer than its probe: a failing
// probe yields MeasurementUnavailableError on the first error.
type Sampler struct {
	Probe Probe
	// WarmupReads is the number of discarded reads before the reported one.
	// Negative values are treated as zero.
	WarmupReads int
	// Now stamps readings. Defaults to time.Now.
	Now func() time.Time
}

// NewSampler returns a sampler over probe with the default warm-up.
func NewSampler(probe Probe) *Sampler {
	return &Sampler{Probe: probe, WarmupReads: DefaultWarmupReads}
}

// Sample reads the probe and returns the footprint in bytes. label only
// annotates the debug log line.
func (s *Sampler) Sample(label string) (Sample, error) {
	if s == nil || s.Probe == nil {
		return 0, &merrors.MeasurementUnavailableError{Probe: "none"}
	}

	var warmups []float64
	for range max(s.WarmupReads, 0) {
		mib, err := s.Probe.ReadMiB()
		if err != nil {
			return 0, &merrors.MeasurementUnavailableError{Probe: s.Probe.Name(), Err: err}
		}
		warmups = append(warmups, mib)
	}

	mib, err := s.Probe.ReadMiB()
	if err != nil {
		return 0, &merrors.MeasurementUnavailableError{Probe: s.Probe.Name(), Err: err}
	}
	result := FromMiB(mib)

	logging.L().Debug("memory footprint",
		zap.String("label", label),
		zap.String("probe", s.Probe.Name()),
		zap.Float64s("warmupMiB", warmups),
		zap.Uint64("bytes", uint64(result)),
	)
	return result, nil
}

// Read is Sample packaged as a Reading.
func (s *Sampler) Read(label string) Reading {
	bytes, err := s.Sample(label)
	return Reading{Label: label, Bytes: bytes, At: s.now(), Err: err}
}

func (s *Sampler) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
