package diagnostics

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"runtime/pprof"
	"slices"

	"github.com/google/pprof/profile"
)

const defaultHeapTop = 10

// HeapEntry is the in-use memory attributed to one allocating function.
type HeapEntry struct {
	Function string `json:"function"`
	Bytes    int64  `json:"bytes"`
	Objects  int64  `json:"objects"`
}

// TopHeap parses a heap profile and returns the n functions holding the most
// in-use bytes, largest first.
func TopHeap(r io.Reader, n int) ([]HeapEntry, error) {
	p, err := profile.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse heap profile: %w", err)
	}

	space, objects := -1, -1
	for i, st := range p.SampleType {
		switch st.Type {
		case "inuse_space":
			space = i
		case "inuse_objects":
			objects = i
		}
	}
	if space < 0 {
		return nil, fmt.Errorf("heap profile has no inuse_space samples")
	}

	byFunc := make(map[string]*HeapEntry)
	for _, s := range p.Sample {
		name := leafFunction(s)
		e, ok := byFunc[name]
		if !ok {
			e = &HeapEntry{Function: name}
			byFunc[name] = e
		}
		e.Bytes += s.Value[space]
		if objects >= 0 {
			e.Objects += s.Value[objects]
		}
	}

	entries := make([]HeapEntry, 0, len(byFunc))
	for _, e := range byFunc {
		if e.Bytes > 0 {
			entries = append(entries, *e)
		}
	}
	slices.SortFunc(entries, func(a, b HeapEntry) int {
		if a.Bytes != b.Bytes {
			if a.Bytes > b.Bytes {
				return -1
			}
			return 1
		}
		if a.Function < b.Function {
			return -1
		}
		if a.Function > b.Function {
			return 1
		}
		return 0
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func leafFunction(s *profile.Sample) string {
	for _, loc := range s.Location {
		for _, line := range loc.Line {
			if line.Function != nil && line.Function.Name != "" {
				return line.Function.Name
			}
		}
	}
	return "<unknown>"
}

func handleHeap(w http.ResponseWriter, r *http.Request) {
	top := parseIntQuery(r, "top")
	if top == 0 {
		top = defaultHeapTop
	}

	var buf bytes.Buffer
	if err := pprof.Lookup("heap").WriteTo(&buf, 0); err != nil {
		http.Error(w, fmt.Sprintf("heap profile: %v", err), http.StatusInternalServerError)
		return
	}
	entries, err := TopHeap(&buf, top)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, struct {
		Top []HeapEntry `json:"top"`
	}{Top: entries})
}
