// Package screen holds the memory-profiling screen's controller.
//
// The controller owns the measurement state and serialises the three user
// actions (create, remove, collect) against the passive sampling tick. It
// never renders anything itself: descriptor sets go to a render.Host and
// the host's pending flag comes back as State.IsUpdating.
package screen

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/logging"
	"github.com/go-drift/memlab/pkg/memory"
	"github.com/go-drift/memlab/pkg/render"
	"github.com/go-drift/memlab/pkg/sampling"
)

// DefaultCount is the count field's initial value.
const DefaultCount = 1000

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Registry  *factory.Registry
	Sampler   *memory.Sampler
	Collector memory.Collector
	Host      *render.Host
	// Hint is used for create commits. Removals always commit immediately.
	Hint render.Hint
	// Interval is the sampling loop period.
	Interval  time.Duration
	NewTicker func(time.Duration) sampling.Ticker
	// History, when set, records every reading the controller sees.
	History *memory.History
	// Type is the initially selected component type. Defaults to the first
	// registered type.
	Type factory.ComponentType
	// Count is the initial count field value. Defaults to DefaultCount.
	Count int
}

// Controller is the screen's state machine.
type Controller struct {
	registry  *factory.Registry
	sampler   *memory.Sampler
	collector memory.Collector
	host      *render.Host
	hint      render.Hint
	history   *memory.History
	loop      *sampling.Loop

	mu      sync.Mutex
	state   State
	mounted bool
}

// New returns a controller wired to opts.
func New(opts Options) *Controller {
	if opts.Registry == nil {
		opts.Registry = factory.Default()
	}
	if opts.Sampler == nil {
		opts.Sampler = memory.NewSampler(memory.NewProcessProbe())
	}
	if opts.Collector == nil {
		opts.Collector = memory.RuntimeCollector{}
	}
	if opts.Host == nil {
		opts.Host = render.NewHost()
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Type == "" {
		if types := opts.Registry.Types(); len(types) > 0 {
			opts.Type = types[0]
		}
	}

	c := &Controller{
		registry:  opts.Registry,
		sampler:   opts.Sampler,
		collector: opts.Collector,
		host:      opts.Host,
		hint:      opts.Hint,
		history:   opts.History,
		state: State{
			Type:       opts.Type,
			CountInput: strconv.Itoa(opts.Count),
		},
	}
	c.loop = &sampling.Loop{
		Sampler:   opts.Sampler,
		Interval:  opts.Interval,
		NewTicker: opts.NewTicker,
		Publish:   c.Tick,
	}
	return c
}

// Mount runs the process warm-up, takes an initial current reading and
// starts the sampling loop. Mounting twice is harmless.
func (c *Controller) Mount() {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.mu.Unlock()

	memory.WarmUp(c.sampler)
	c.Tick(c.sampler.Read("current"))
	c.loop.Start()
	logging.L().Info("screen mounted")
}

// Unmount stops the sampling loop and tears down the rendered set. No tick
// reaches the controller after Unmount returns. The host stays open so the
// screen can be mounted again; closing it is up to whoever owns it.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	c.mu.Unlock()

	// The loop publishes while holding its own lock, so it must be stopped
	// without holding ours.
	c.loop.Stop()
	c.host.Commit(nil, render.Immediate)
	logging.L().Info("screen unmounted")
}

// Select changes the selected component type.
func (c *Controller) Select(t factory.ComponentType) error {
	if !c.registry.Has(t) {
		err := &merrors.UnknownComponentTypeError{Type: string(t)}
		c.report("screen.Select", merrors.KindProgramming, err, "")
		return err
	}
	c.mu.Lock()
	c.state.Type = t
	c.mu.Unlock()
	return nil
}

// SetCountInput replaces the count field. Input containing anything other
// than digits is rejected at entry time and leaves the field unchanged; the
// empty string is accepted so the field can be cleared.
func (c *Controller) SetCountInput(raw string) bool {
	if raw != "" && !factory.IsDigits(raw) {
		return false
	}
	c.mu.Lock()
	c.state.CountInput = raw
	c.mu.Unlock()
	return true
}

// Create renders the selected type using the count field. An invalid count
// is reported and changes nothing.
func (c *Controller) Create() error {
	c.mu.Lock()
	t, raw := c.state.Type, c.state.CountInput
	c.mu.Unlock()

	n, err := factory.ParseCount(raw)
	if err != nil {
		c.report("screen.Create", merrors.KindInput, err, "")
		return err
	}
	return c.CreateN(t, n)
}

// CreateN samples a baseline and renders n instances of t, or fewer if the
// type's entry is capped. The commit uses the controller's hint; with
// render.Deferred the call returns before the nodes exist and
// State.IsUpdating stays true until they do.
//
// An unavailable measurement does not stop the render: the baseline is
// recorded as missing and the error is reported. A closed host rejects the
// call before anything is sampled.
func (c *Controller) CreateN(t factory.ComponentType, n int) error {
	if n <= 0 {
		err := &merrors.InvalidViewCountError{Input: strconv.Itoa(n), Reason: "must be positive"}
		c.report("screen.Create", merrors.KindInput, err, "")
		return err
	}
	if !c.registry.Has(t) {
		err := &merrors.UnknownComponentTypeError{Type: string(t)}
		c.report("screen.Create", merrors.KindProgramming, err, "")
		return err
	}
	if c.host.Closed() {
		c.report("screen.Create", merrors.KindRender, merrors.ErrHostClosed, "")
		return merrors.ErrHostClosed
	}

	cycle := xid.New().String()
	reading := c.sampler.Read("baseline")
	set, err := c.registry.Generate(t, n)
	if err != nil {
		c.report("screen.Create", merrors.KindProgramming, err, cycle)
		return err
	}

	c.mu.Lock()
	c.state.record(reading)
	c.state.SampleCount++
	c.state.RenderedCount = set.Effective
	c.state.Type = t
	c.state.Cycle = cycle
	if set.Capped() {
		c.state.CountInput = strconv.Itoa(set.Effective)
	}
	c.mu.Unlock()

	c.observe(reading)
	gen := c.host.Commit(set.Widgets, c.hint)

	logging.L().Info("views created",
		zap.String("cycle", cycle),
		zap.String("type", string(t)),
		zap.Int("requested", set.Requested),
		zap.Int("effective", set.Effective),
		zap.Uint64("baseline", uint64(reading.Bytes)),
		zap.Stringer("hint", c.hint),
		zap.Uint64("generation", gen),
	)
	if !reading.Available() {
		c.report("screen.Create", merrors.KindMeasurement, reading.Err, cycle)
	}
	return nil
}

// Remove samples memory and clears the rendered set. RenderedCount keeps the
// size of the removed set so the per-view figure shows what each view gave
// back. Removing an empty set is allowed and still counts as a sample.
func (c *Controller) Remove() {
	cycle := xid.New().String()
	reading := c.sampler.Read("remove")

	c.mu.Lock()
	c.state.record(reading)
	c.state.SampleCount++
	c.state.Cycle = cycle
	c.mu.Unlock()

	c.observe(reading)
	c.host.Commit(nil, render.Immediate)

	logging.L().Info("views removed",
		zap.String("cycle", cycle),
		zap.Uint64("footprint", uint64(reading.Bytes)),
	)
	if !reading.Available() {
		c.report("screen.Remove", merrors.KindMeasurement, reading.Err, cycle)
	}
}

// TriggerGC asks the collector for a collection. It does not touch the
// measurement state; the next tick shows the effect.
func (c *Controller) TriggerGC() error {
	if err := c.collector.Collect(); err != nil {
		c.report("screen.TriggerGC", merrors.KindCollection, err, "")
		return err
	}
	logging.L().Debug("collection requested", zap.String("collector", c.collector.Name()))
	return nil
}

// Tick records a periodic reading as the current sample. Baseline, sample
// count and the rendered set are left alone.
func (c *Controller) Tick(r memory.Reading) {
	c.mu.Lock()
	c.state.Current, c.state.CurrentOK = r.Bytes, r.Available()
	c.mu.Unlock()
	c.observe(r)
}

// State returns a snapshot of the measurement state.
func (c *Controller) State() State {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()
	s.IsUpdating = c.host.Pending()
	if e, err := c.registry.Lookup(s.Type); err == nil {
		s.Note = e.Note()
	}
	return s
}

// Types lists the selectable component types.
func (c *Controller) Types() []factory.ComponentType {
	return c.registry.Types()
}

// Host exposes the rendering host for inspection.
func (c *Controller) Host() *render.Host {
	return c.host
}

// Wait blocks until any deferred commit has landed.
func (c *Controller) Wait(ctx context.Context) error {
	return c.host.Wait(ctx)
}

// Mounted reports whether the sampling loop is attached.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller) observe(r memory.Reading) {
	if c.history != nil {
		c.history.Add(memory.PointFrom(r))
	}
}

func (c *Controller) report(op string, kind merrors.ErrorKind, err error, cycle string) {
	merrors.Report(&merrors.MemlabError{
		Op:    op,
		Kind:  kind,
		Err:   err,
		Cycle: cycle,
	})
}
