package widgets

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Text displays a string with a single style.
type Text struct {
	ID      Key
	Content string
	Style   Style
	// Native selects the raw host text component instead of the wrapper.
	Native bool
}

func (t Text) Key() Key { return t.ID }

func (t Text) Kind() Kind {
	if t.Native {
		return KindNativeText
	}
	return KindText
}

// Size returns the laid-out size of the text box, margins included.
func (t Text) Size() Size {
	return BoxSize(t.Style, MeasureText(t.Content, t.Style.FontSize))
}

// MeasureText returns the single-line extent of content at fontSize.
//
// Glyph advances come from the 7x13 bitmap face and are scaled linearly to
// the requested size. That is coarse, but it is deterministic and grows with
// font size, which is what the large-font variants need to exercise.
func MeasureText(content string, fontSize float64) Size {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	face := basicfont.Face7x13
	scale := fontSize / float64(face.Height)
	advance := font.MeasureString(face, content)
	return Size{
		Width:  float64(advance.Ceil()) * scale,
		Height: float64(face.Height) * scale,
	}
}
