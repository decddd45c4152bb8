package screen

import (
	"github.com/go-drift/memlab/pkg/factory"
	"github.com/go-drift/memlab/pkg/memory"
)

// State is a snapshot of the screen's measurement state.
type State struct {
	// Type is the selected component type.
	Type factory.ComponentType `json:"type"`
	// CountInput is the raw contents of the count field.
	CountInput string `json:"countInput"`

	Baseline   memory.Sample `json:"baseline"`
	BaselineOK bool          `json:"baselineOk"`
	Current    memory.Sample `json:"current"`
	CurrentOK  bool          `json:"currentOk"`

	// SampleCount counts create and remove actions since mount.
	SampleCount int `json:"sampleCount"`
	// RenderedCount is the effective size of the last rendered set. It is
	// kept after a removal.
	RenderedCount int `json:"renderedCount"`
	// Note is the advice attached to the selected type's factory entry.
	Note string `json:"note,omitempty"`
	// Cycle identifies the last create or remove in logs.
	Cycle string `json:"cycle,omitempty"`

	// IsUpdating is true while a deferred commit is materialising.
	IsUpdating bool `json:"isUpdating"`
}

// Dirty reports whether the process has been through more than one
// measurement, so the numbers no longer reflect a clean start.
func (s State) Dirty() bool {
	return s.SampleCount >= 2
}

func (s *State) record(r memory.Reading) {
	s.Baseline, s.BaselineOK = r.Bytes, r.Available()
	s.Current, s.CurrentOK = r.Bytes, r.Available()
}
