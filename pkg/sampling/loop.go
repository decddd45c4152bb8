// Package sampling runs the periodic memory sampler behind the screen.
package sampling

import (
	"sync"
	"time"

	"github.com/go-drift/memlab/pkg/memory"
)

// DefaultInterval is how often the screen refreshes its current reading.
const DefaultInterval = 500 * time.Millisecond

// Ticker is the subset of time.Ticker the loop needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct{ *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// NewTimeTicker wraps time.NewTicker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

// Loop invokes a sampler at a fixed interval and publishes every reading.
//
// Start is idempotent: a running loop is left alone. Stop is deterministic:
// once it returns, Publish will not be called again, even if a tick was being
// sampled while Stop ran.
type Loop struct {
	Sampler  *memory.Sampler
	Interval time.Duration
	// Publish receives each reading on the loop goroutine.
	Publish func(memory.Reading)
	// NewTicker builds the ticker. Defaults to NewTimeTicker.
	NewTicker func(time.Duration) Ticker

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Start launches the loop goroutine unless it is already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stop != nil {
		return
	}

	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	newTicker := l.NewTicker
	if newTicker == nil {
		newTicker = NewTimeTicker
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	l.stop = stop
	l.done = done

	go l.run(newTicker(interval), stop, done)
}

// Stop cancels the loop and waits for its goroutine to exit. It is safe to
// call on a loop that is not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	stop, done := l.stop, l.done
	l.stop, l.done = nil, nil
	if stop != nil {
		close(stop)
	}
	l.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Running reports whether the loop goroutine is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stop != nil
}

func (l *Loop) run(ticker Ticker, stop, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
		}

		reading := l.Sampler.Read("current")

		// Publishing under mu against the channel we were started with
		// means a Stop that already ran (or is waiting for mu) wins.
		l.mu.Lock()
		if l.stop != stop {
			l.mu.Unlock()
			return
		}
		if l.Publish != nil {
			l.Publish(reading)
		}
		l.mu.Unlock()
	}
}
