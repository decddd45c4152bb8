package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/pprof/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func heapProfile(t *testing.T) *bytes.Buffer {
	t.Helper()
	fnA := &profile.Function{ID: 1, Name: "memlab.allocText"}
	fnB := &profile.Function{ID: 2, Name: "memlab.allocImage"}
	locA := &profile.Location{ID: 1, Line: []profile.Line{{Function: fnA}}}
	locB := &profile.Location{ID: 2, Line: []profile.Line{{Function: fnB}}}

	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "alloc_objects", Unit: "count"},
			{Type: "alloc_space", Unit: "bytes"},
			{Type: "inuse_objects", Unit: "count"},
			{Type: "inuse_space", Unit: "bytes"},
		},
		Sample: []*profile.Sample{
			{Location: []*profile.Location{locA}, Value: []int64{10, 1000, 4, 400}},
			{Location: []*profile.Location{locB}, Value: []int64{2, 9000, 2, 9000}},
			{Location: []*profile.Location{locA}, Value: []int64{1, 100, 1, 100}},
		},
		Location: []*profile.Location{locA, locB},
		Function: []*profile.Function{fnA, fnB},
	}

	var buf bytes.Buffer
	require.NoError(t, p.Write(&buf))
	return &buf
}

func TestTopHeap(t *testing.T) {
	entries, err := TopHeap(heapProfile(t), 0)
	require.NoError(t, err)

	assert.Equal(t, []HeapEntry{
		{Function: "memlab.allocImage", Bytes: 9000, Objects: 2},
		{Function: "memlab.allocText", Bytes: 500, Objects: 5},
	}, entries)
}

func TestTopHeapLimit(t *testing.T) {
	entries, err := TopHeap(heapProfile(t), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "memlab.allocImage", entries[0].Function)
}

func TestTopHeapRejectsGarbage(t *testing.T) {
	_, err := TopHeap(strings.NewReader("not a profile"), 5)
	assert.Error(t, err)
}
