// Package display derives the screen's printed values from its state.
package display

import (
	"math"
	"strconv"

	"github.com/go-drift/memlab/pkg/screen"
)

// Missing is shown in place of a value that could not be measured.
const Missing = "—"

const (
	bytesPerKB = 1024
	bytesPerMB = 1024 * 1024
)

// Summary is the formatted view of a screen.State.
type Summary struct {
	Type     string `json:"type"`
	Rendered int    `json:"rendered"`
	Samples  int    `json:"samples"`
	Dirty    bool   `json:"dirty"`
	Updating bool   `json:"updating"`
	Note     string `json:"note,omitempty"`

	// Before and After are the baseline and current footprints in MB.
	Before string `json:"before"`
	After  string `json:"after"`
	// Delta is After minus Before in MB.
	Delta string `json:"delta"`
	// PerView is Delta spread over the rendered views, in KB.
	PerView string `json:"perView"`

	DeltaBytes   int64   `json:"deltaBytes"`
	PerViewBytes float64 `json:"perViewBytes"`
	// Measured is false when either footprint is unavailable.
	Measured bool `json:"measured"`
}

// Summarize formats s.
func Summarize(s screen.State) Summary {
	sum := Summary{
		Type:     string(s.Type),
		Rendered: s.RenderedCount,
		Samples:  s.SampleCount,
		Dirty:    s.Dirty(),
		Updating: s.IsUpdating,
		Note:     s.Note,
		Before:   Missing,
		After:    Missing,
		Delta:    Missing,
		PerView:  Missing,
	}
	if s.BaselineOK {
		sum.Before = FormatMegabytes(float64(s.Baseline))
	}
	if s.CurrentOK {
		sum.After = FormatMegabytes(float64(s.Current))
	}
	if !s.BaselineOK || !s.CurrentOK {
		return sum
	}

	sum.Measured = true
	sum.DeltaBytes = Delta(uint64(s.Baseline), uint64(s.Current))
	sum.PerViewBytes = PerView(sum.DeltaBytes, s.RenderedCount)
	sum.Delta = FormatMegabytes(float64(sum.DeltaBytes))
	sum.PerView = FormatKilobytes(sum.PerViewBytes)
	return sum
}

// Delta returns current minus baseline as a signed byte count, saturating
// at the int64 limits.
func Delta(baseline, current uint64) int64 {
	if current >= baseline {
		return int64(min(current-baseline, math.MaxInt64))
	}
	d := baseline - current
	if d > math.MaxInt64 {
		return math.MinInt64
	}
	return -int64(d)
}

// PerView spreads delta across rendered views. No views means zero.
func PerView(delta int64, rendered int) float64 {
	if rendered <= 0 {
		return 0
	}
	return float64(delta) / float64(rendered)
}

// FormatMegabytes renders bytes as MB with one decimal.
func FormatMegabytes(bytes float64) string {
	return fixed1(bytes / bytesPerMB)
}

// FormatKilobytes renders bytes as KB with one decimal.
func FormatKilobytes(bytes float64) string {
	return fixed1(bytes / bytesPerKB)
}

func fixed1(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
