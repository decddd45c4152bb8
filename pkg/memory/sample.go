// Package memory measures process memory for the screen.
//
// A [Probe] is the platform's measurement primitive: an opaque function that
// reports mebibytes. A [Sampler] wraps a probe, optionally discards a few
// warm-up reads so the underlying counter settles, and returns byte counts.
// Readings may rise or fall between calls; nothing here assumes they are
// monotone.
package memory

import (
	"math"
	"time"
)

// bytesPerMiB converts the probe's unit to bytes.
const bytesPerMiB = 1024 * 1024

// Sample is a memory reading in bytes.
type Sample uint64

// FromMiB converts a probe reading to bytes. Negative and NaN readings clamp
// to zero; readings too large for a Sample clamp to its maximum.
func FromMiB(mib float64) Sample {
	if math.IsNaN(mib) || mib <= 0 {
		return 0
	}
	b := math.Round(mib * bytesPerMiB)
	if b >= math.MaxUint64 {
		return Sample(math.MaxUint64)
	}
	return Sample(b)
}

// MiB returns the sample in mebibytes.
func (s Sample) MiB() float64 {
	return float64(s) / bytesPerMiB
}

// Reading is a labelled sample. Err is set when the probe was unavailable, in
// which case Bytes is zero and must not be displayed as a number.
type Reading struct {
	Label string
	Bytes Sample
	At    time.Time
	Err   error
}

// Available reports whether the reading holds a real measurement.
func (r Reading) Available() bool {
	return r.Err == nil
}
