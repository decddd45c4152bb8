package testing

import (
	"sync"
	"time"
)

// ManualTicker is a ticker that only fires when Tick is called. It satisfies
// sampling.Ticker.
type ManualTicker struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

// NewManualTicker returns a ticker with an unbuffered channel, so Tick blocks
// until the loop has received the tick.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

// C returns the tick channel.
func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Stop marks the ticker stopped. Like time.Ticker, it does not close C.
func (m *ManualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

// Stopped reports whether Stop was called.
func (m *ManualTicker) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// Tick delivers one tick. It returns false if nothing received it within
// timeout, which is what happens once the loop has stopped.
func (m *ManualTicker) Tick(timeout time.Duration) bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(timeout):
		return false
	}
}
