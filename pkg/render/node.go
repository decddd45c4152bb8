package render

import (
	"image"

	"github.com/go-drift/memlab/pkg/widgets"
)

// Node is the host-side object a descriptor inflates to. It owns the backing
// storage a native view would hold: laid-out size, text buffers and bitmaps.
type Node struct {
	Key         widgets.Key
	Kind        widgets.Kind
	Size        widgets.Size
	Text        []byte
	Placeholder []byte
	Bitmap      *image.RGBA
	// SharedBitmap is set when Bitmap belongs to an asset cache rather than
	// to this node.
	SharedBitmap bool
}

func inflate(w widgets.Widget) *Node {
	n := &Node{Key: w.Key(), Kind: w.Kind()}
	switch w := w.(type) {
	case widgets.View:
		n.Size = widgets.BoxSize(w.Style, widgets.Size{})
	case widgets.Div:
		n.Size = widgets.BoxSize(w.Style, widgets.Size{})
	case widgets.Text:
		n.Size = w.Size()
		n.Text = []byte(w.Content)
	case widgets.Span:
		n.Size = w.Size()
		n.Text = []byte(w.Content)
	case widgets.TextInput:
		n.Size = w.Size()
		n.Text = []byte(w.Value)
		n.Placeholder = []byte(w.Placeholder)
	case widgets.Switch:
		n.Size = widgets.SwitchSize
	case widgets.Image:
		n.Size = w.Size()
		n.Bitmap = w.Decode()
		n.SharedBitmap = w.Shared
	}
	return n
}

// retained estimates the bytes held by nodes. Shared bitmaps count once.
func retained(nodes map[widgets.Key]*Node) int {
	total := 0
	seen := make(map[*image.RGBA]bool)
	for _, n := range nodes {
		total += len(n.Text) + len(n.Placeholder)
		if n.Bitmap != nil && !seen[n.Bitmap] {
			seen[n.Bitmap] = true
			total += len(n.Bitmap.Pix)
		}
	}
	return total
}
