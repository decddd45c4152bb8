package memory

import (
	"runtime"
	"sync"
	"time"
)

const (
	historyIntervalDefault = 500 * time.Millisecond
	historyWindowDefault   = 60 * time.Second
	historyMinInterval     = 50 * time.Millisecond
	historyMaxPoints       = 240
)

// RuntimeStats is a snapshot of Go runtime memory/GC counters taken alongside
// a footprint reading.
type RuntimeStats struct {
	HeapAlloc    uint64 `json:"heapAlloc"`
	HeapInuse    uint64 `json:"heapInuse"`
	HeapSys      uint64 `json:"heapSys"`
	NumGC        uint32 `json:"numGC"`
	LastGCTime   int64  `json:"lastGCTime"`
	PauseTotalNs uint64 `json:"pauseTotalNs"`
	LastPauseNs  uint64 `json:"lastPauseNs"`
}

// ReadRuntimeStats samples the runtime counters.
func ReadRuntimeStats() RuntimeStats {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	lastPause := uint64(0)
	if stats.NumGC > 0 {
		lastPause = stats.PauseNs[(stats.NumGC+255)%256]
	}

	lastGC := int64(0)
	if stats.LastGC > 0 {
		lastGC = time.Unix(0, int64(stats.LastGC)).UnixMilli()
	}

	return RuntimeStats{
		HeapAlloc:    stats.HeapAlloc,
		HeapInuse:    stats.HeapInuse,
		HeapSys:      stats.HeapSys,
		NumGC:        stats.NumGC,
		LastGCTime:   lastGC,
		PauseTotalNs: stats.PauseTotalNs,
		LastPauseNs:  lastPause,
	}
}

// Point is one entry of the reading history.
type Point struct {
	Timestamp int64        `json:"ts"`
	Label     string       `json:"label"`
	Footprint uint64       `json:"footprint"`
	Available bool         `json:"available"`
	Runtime   RuntimeStats `json:"runtime"`
}

// PointFrom packages a reading with the current runtime counters.
func PointFrom(r Reading) Point {
	return Point{
		Timestamp: r.At.UnixMilli(),
		Label:     r.Label,
		Footprint: uint64(r.Bytes),
		Available: r.Available(),
		Runtime:   ReadRuntimeStats(),
	}
}

// History stores recent points in a ring buffer.
type History struct {
	mu       sync.RWMutex
	points   []Point
	index    int
	count    int
	interval time.Duration
	window   time.Duration
}

// NewHistory creates a buffer sized to hold window worth of points taken
// every interval.
func NewHistory(window, interval time.Duration) *History {
	interval = normalizeInterval(interval)
	window = normalizeWindow(window, interval)

	capacity := min(max(int(window/interval), 1), historyMaxPoints)
	window = time.Duration(capacity) * interval

	return &History{
		points:   make([]Point, capacity),
		interval: interval,
		window:   window,
	}
}

// Interval returns the expected spacing between points.
func (h *History) Interval() time.Duration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.interval
}

// Window returns the time span the buffer covers.
func (h *History) Window() time.Duration {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.window
}

// Add stores a point, evicting the oldest once full.
func (h *History) Add(p Point) {
	h.mu.Lock()
	h.points[h.index] = p
	h.index = (h.index + 1) % len(h.points)
	if h.count < len(h.points) {
		h.count++
	}
	h.mu.Unlock()
}

// Snapshot returns points in chronological order.
func (h *History) Snapshot() []Point {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return nil
	}

	result := make([]Point, h.count)
	if h.count < len(h.points) {
		copy(result, h.points[:h.count])
	} else {
		copy(result, h.points[h.index:])
		copy(result[len(h.points)-h.index:], h.points[:h.index])
	}
	return result
}

func normalizeInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = historyIntervalDefault
	}
	if interval < historyMinInterval {
		interval = historyMinInterval
	}
	return interval
}

func normalizeWindow(window, interval time.Duration) time.Duration {
	if window <= 0 {
		window = historyWindowDefault
	}
	if window < interval {
		window = interval
	}
	return window
}
