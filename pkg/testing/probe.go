package testing

import (
	"errors"
	"sync"
)

// ErrProbeDown is returned by a FakeProbe after Fail is called.
var ErrProbeDown = errors.New("fake probe down")

// FakeProbe replays scripted MiB readings. Once the script is exhausted it
// keeps returning the last value. It satisfies memory.Probe.
type FakeProbe struct {
	mu     sync.Mutex
	values []float64
	next   int
	calls  int
	err    error
}

// NewFakeProbe returns a probe that yields values in order.
func NewFakeProbe(values ...float64) *FakeProbe {
	return &FakeProbe{values: values}
}

func (p *FakeProbe) Name() string { return "fake" }

// ReadMiB returns the next scripted value.
func (p *FakeProbe) ReadMiB() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	if len(p.values) == 0 {
		return 0, nil
	}
	v := p.values[min(p.next, len(p.values)-1)]
	if p.next < len(p.values) {
		p.next++
	}
	return v, nil
}

// Push appends values to the script.
func (p *FakeProbe) Push(values ...float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values = append(p.values, values...)
}

// Fail makes every following read return err (ErrProbeDown if err is nil).
func (p *FakeProbe) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		err = ErrProbeDown
	}
	p.err = err
}

// Recover clears a failure set by Fail.
func (p *FakeProbe) Recover() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = nil
}

// Calls returns the number of reads so far.
func (p *FakeProbe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// FakeCollector counts Collect calls. It satisfies memory.Collector.
type FakeCollector struct {
	mu    sync.Mutex
	calls int
	Err   error
}

func (c *FakeCollector) Name() string { return "fake" }

func (c *FakeCollector) Collect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.Err
}

// Calls returns the number of Collect calls so far.
func (c *FakeCollector) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
