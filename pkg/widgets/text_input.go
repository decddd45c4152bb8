package widgets

// TextInput is a native single-line text field.
//
// memlab only renders read-only fields: Value and Placeholder are fixed at
// generation time and Editable is normally false.
type TextInput struct {
	ID               Key
	Value            string
	Placeholder      string
	PlaceholderColor Color
	Editable         bool
	Style            Style
}

func (t TextInput) Key() Key   { return t.ID }
func (t TextInput) Kind() Kind { return KindTextInput }

// Size returns the laid-out size of the field, margins included.
func (t TextInput) Size() Size {
	content := t.Value
	if content == "" {
		content = t.Placeholder
	}
	return BoxSize(t.Style, MeasureText(content, t.Style.FontSize))
}
