// Package testing provides deterministic stand-ins for the screen's external
// collaborators.
//
// # Quick Start
//
// Script the probe, drive the sampling loop by hand, and assert on state:
//
//	func TestCreate(t *testing.T) {
//	    probe := memtest.NewFakeProbe(100, 100, 100, 150)
//	    ticker := memtest.NewManualTicker()
//	    ctrl := screen.New(screen.Options{
//	        Sampler:   &memory.Sampler{Probe: probe},
//	        NewTicker: func(time.Duration) sampling.Ticker {
//	            return ticker
//	        },
//	    })
//	    ctrl.Mount()
//	    defer ctrl.Unmount()
//
//	    ticker.Tick(time.Second) // publishes the next scripted reading
//	}
//
// # Time
//
// FakeClock stamps readings without depending on the wall clock:
//
//	clock := memtest.NewFakeClock()
//	sampler.Now = clock.Now
//	clock.Advance(500 * time.Millisecond)
package testing
