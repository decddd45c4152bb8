// Package factory maps component-type labels to descriptor generators.
//
// The table is static: it is built once, the first time Default is called,
// and never mutated afterwards. Entries come in two shapes, [Simple] and
// [Capped], both behind the [Entry] interface so callers never inspect which
// one they hold.
package factory

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	merrors "github.com/go-drift/memlab/pkg/errors"
	"github.com/go-drift/memlab/pkg/widgets"
)

// ComponentType is the label of a factory entry, as shown in the type selector.
type ComponentType string

// Generator produces count descriptors. It must not measure memory or touch
// any state outside the returned slice.
type Generator func(count int) []widgets.Widget

// Entry is one row of the factory table.
type Entry interface {
	// Generate produces exactly count descriptors. Callers pass a count that
	// has already been through Limit.
	Generate(count int) []widgets.Widget
	// Limit returns the count that will actually be rendered for a request.
	Limit(count int) int
	// Note returns an advisory shown next to the selector, or "".
	Note() string
}

// Simple is an entry with no cap and no advisory.
type Simple struct {
	Gen Generator
}

func (s Simple) Generate(count int) []widgets.Widget { return s.Gen(count) }
func (s Simple) Limit(count int) int                 { return count }
func (s Simple) Note() string                        { return "" }

// Capped is an entry that renders at most Max descriptors per request.
type Capped struct {
	Gen Generator
	// Max caps the requested count. Zero or negative disables the cap.
	Max int
	// Advice is returned by Note.
	Advice string
}

func (c Capped) Generate(count int) []widgets.Widget { return c.Gen(count) }

func (c Capped) Limit(count int) int {
	if c.Max > 0 && count > c.Max {
		return c.Max
	}
	return count
}

func (c Capped) Note() string { return c.Advice }

// Set is the result of a generation request.
type Set struct {
	Type      ComponentType
	Requested int
	// Effective is the number of descriptors in Widgets. It is smaller than
	// Requested when the entry is capped.
	Effective int
	Note      string
	Widgets   []widgets.Widget
}

// Capped reports whether the entry's cap reduced the request.
func (s Set) Capped() bool {
	return s.Effective < s.Requested
}

// Registry is an ordered lookup table of entries.
type Registry struct {
	order   []ComponentType
	entries map[ComponentType]Entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ComponentType]Entry)}
}

// Register adds an entry. Registering the same label twice is a programming
// error and panics.
func (r *Registry) Register(t ComponentType, e Entry) {
	if _, ok := r.entries[t]; ok {
		panic(fmt.Sprintf("factory: duplicate component type %q", t))
	}
	if e == nil {
		panic(fmt.Sprintf("factory: nil entry for %q", t))
	}
	r.entries[t] = e
	r.order = append(r.order, t)
}

// Types returns the registered labels in registration order.
func (r *Registry) Types() []ComponentType {
	return slices.Clone(r.order)
}

// Has reports whether t is registered.
func (r *Registry) Has(t ComponentType) bool {
	_, ok := r.entries[t]
	return ok
}

// Lookup returns the entry for t.
func (r *Registry) Lookup(t ComponentType) (Entry, error) {
	e, ok := r.entries[t]
	if !ok {
		return nil, &merrors.UnknownComponentTypeError{Type: string(t)}
	}
	return e, nil
}

// Generate produces the descriptors for a request of count instances of t.
//
// count must be positive. An unknown label fails with
// UnknownComponentTypeError instead of yielding an empty set.
func (r *Registry) Generate(t ComponentType, count int) (Set, error) {
	if count <= 0 {
		return Set{}, &merrors.InvalidViewCountError{
			Input:  fmt.Sprint(count),
			Reason: "must be positive",
		}
	}
	e, err := r.Lookup(t)
	if err != nil {
		return Set{}, err
	}

	effective := e.Limit(count)
	return Set{
		Type:      t,
		Requested: count,
		Effective: effective,
		Note:      e.Note(),
		Widgets:   e.Generate(effective),
	}, nil
}

// generate builds count descriptors keyed by label and index.
func generate(label ComponentType, build func(id widgets.Key, i int) widgets.Widget) Generator {
	return func(count int) []widgets.Widget {
		return lo.Map(lo.Range(count), func(i int, _ int) widgets.Widget {
			return build(widgets.Key{Type: string(label), Index: i}, i)
		})
	}
}
