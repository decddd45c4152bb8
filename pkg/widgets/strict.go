package widgets

// Div is a strict-DOM block element. It renders like a [View] but its style
// goes through the strict CSS resolver, which is what the variant measures.
type Div struct {
	ID    Key
	Style Style
}

func (d Div) Key() Key   { return d.ID }
func (d Div) Kind() Kind { return KindDiv }

// Span is a strict-DOM inline text element.
type Span struct {
	ID      Key
	Content string
	Style   Style
}

func (s Span) Key() Key   { return s.ID }
func (s Span) Kind() Kind { return KindSpan }

// Size returns the laid-out size of the span, margins included.
func (s Span) Size() Size {
	return BoxSize(s.Style, MeasureText(s.Content, s.Style.FontSize))
}
