package widgets

// View is a plain styled container with no children.
//
// Native selects the lower-level host component (ViewNativeComponent on
// React Native style hosts) which skips the wrapper's prop processing.
type View struct {
	ID     Key
	Style  Style
	Native bool
}

func (v View) Key() Key { return v.ID }

func (v View) Kind() Kind {
	if v.Native {
		return KindNativeView
	}
	return KindView
}

// BoxSize returns the outer size of a box with the given style and content.
func BoxSize(style Style, content Size) Size {
	w := max(content.Width+style.Padding.Horizontal(), style.MinWidth)
	h := max(content.Height+style.Padding.Vertical(), style.MinHeight)
	return Size{
		Width:  w + 2*style.BorderWidth + style.Margin.Horizontal(),
		Height: h + 2*style.BorderWidth + style.Margin.Vertical(),
	}
}
