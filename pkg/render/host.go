// Package render is the rendering host the screen commits descriptor sets to.
//
// A commit replaces the whole rendered set. The host reconciles it against
// the previous one by key, so repeated commits of the same type reuse nodes
// instead of rebuilding them. Deferred commits materialise on a background
// goroutine and report progress through the pending flag; a newer commit
// supersedes any deferred one that has not finished yet.
package render

import (
	"context"
	"sync"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/logging"
	"github.com/go-drift/memlab/pkg/widgets"
)

// Hint tells the host how urgently a commit must land.
type Hint int

const (
	// Immediate applies the commit before Commit returns.
	Immediate Hint = iota
	// Deferred applies the commit in the background. Pending reports true
	// until it lands or is superseded.
	Deferred
)

func (h Hint) String() string {
	if h == Deferred {
		return "deferred"
	}
	return "immediate"
}

// Stats describes the most recently applied commit.
type Stats struct {
	Generation uint64 `json:"generation"`
	Mounted    int    `json:"mounted"`
	Created    int    `json:"created"`
	Reused     int    `json:"reused"`
	Disposed   int    `json:"disposed"`
	// Retained estimates the bytes held by mounted nodes.
	Retained int `json:"retained"`
}

// Host owns the mounted nodes.
type Host struct {
	mu         sync.Mutex
	nodes      map[widgets.Key]*Node
	order      []widgets.Key
	generation uint64
	applied    uint64
	idle       chan struct{}
	listeners  map[int]func(pending bool)
	nextID     int
	stats      Stats
	closed     bool

	wg conc.WaitGroup
}

// NewHost returns an empty host.
func NewHost() *Host {
	idle := make(chan struct{})
	close(idle)
	return &Host{
		nodes:     make(map[widgets.Key]*Node),
		idle:      idle,
		listeners: make(map[int]func(bool)),
	}
}

// Commit replaces the rendered set with ws and returns the commit's
// generation. After Close, Commit is a no-op that returns 0.
func (h *Host) Commit(ws []widgets.Widget, hint Hint) uint64 {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return 0
	}
	h.generation++
	gen := h.generation
	prev := h.nodes
	becamePending := h.markPendingLocked()
	h.mu.Unlock()

	if becamePending {
		h.notify(true)
	}

	if hint == Immediate {
		h.apply(gen, ws, prev)
		return gen
	}

	h.wg.Go(func() {
		h.apply(gen, ws, prev)
	})
	return gen
}

func (h *Host) markPendingLocked() bool {
	if h.applied+1 != h.generation {
		// Already pending from an earlier commit.
		return false
	}
	h.idle = make(chan struct{})
	return true
}

func (h *Host) apply(gen uint64, ws []widgets.Widget, prev map[widgets.Key]*Node) {
	defer merrors.Recover("render.Host.apply", func(any) {
		h.finish(gen, nil, nil, Stats{})
	})

	nodes := make(map[widgets.Key]*Node, len(ws))
	order := make([]widgets.Key, 0, len(ws))
	stats := Stats{Generation: gen}
	for _, w := range ws {
		key := w.Key()
		if _, dup := nodes[key]; dup {
			continue
		}
		if n, ok := prev[key]; ok && n.Kind == w.Kind() {
			nodes[key] = n
			stats.Reused++
		} else {
			nodes[key] = inflate(w)
			stats.Created++
		}
		order = append(order, key)
	}
	for key := range prev {
		if _, ok := nodes[key]; !ok {
			stats.Disposed++
		}
	}
	stats.Mounted = len(nodes)
	stats.Retained = retained(nodes)

	h.finish(gen, nodes, order, stats)
}

// finish installs the result of commit gen unless a newer commit exists.
// nodes == nil means the commit failed and the mounted set is kept.
func (h *Host) finish(gen uint64, nodes map[widgets.Key]*Node, order []widgets.Key, stats Stats) {
	h.mu.Lock()
	if gen != h.generation || h.applied == gen || h.closed {
		h.mu.Unlock()
		logging.L().Debug("commit superseded", zap.Uint64("generation", gen))
		return
	}
	if nodes != nil {
		h.nodes = nodes
		h.order = order
		h.stats = stats
	}
	h.applied = gen
	close(h.idle)
	h.mu.Unlock()

	if nodes != nil {
		logging.L().Debug("commit applied",
			zap.Uint64("generation", gen),
			zap.Int("mounted", stats.Mounted),
			zap.Int("created", stats.Created),
			zap.Int("reused", stats.Reused),
			zap.Int("disposed", stats.Disposed),
		)
	}
	h.notify(false)
}

// Pending reports whether a commit has been issued but not yet applied.
func (h *Host) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.applied != h.generation
}

// Wait blocks until no commit is pending or ctx is done.
func (h *Host) Wait(ctx context.Context) error {
	h.mu.Lock()
	idle := h.idle
	h.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AddListener registers fn to be called whenever the pending flag changes.
// It returns a function that removes the listener.
func (h *Host) AddListener(fn func(pending bool)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

func (h *Host) notify(pending bool) {
	h.mu.Lock()
	fns := make([]func(bool), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(pending)
	}
}

// Mounted returns the number of mounted nodes.
func (h *Host) Mounted() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.nodes)
}

// Keys returns the mounted keys in commit order.
func (h *Host) Keys() []widgets.Key {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]widgets.Key(nil), h.order...)
}

// Node returns the mounted node for key, if any.
func (h *Host) Node(key widgets.Key) (*Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.nodes[key]
	return n, ok
}

// Stats returns the stats of the last applied commit.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Closed reports whether Close has been called.
func (h *Host) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}

// Close waits for background commits to finish and unmounts every node.
// Further commits are ignored.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	h.wg.Wait()

	h.mu.Lock()
	h.nodes = make(map[widgets.Key]*Node)
	h.order = nil
	h.stats = Stats{Generation: h.generation}
	wasPending := h.applied != h.generation
	h.applied = h.generation
	if wasPending {
		close(h.idle)
	}
	h.mu.Unlock()

	if wasPending {
		h.notify(false)
	}
}
