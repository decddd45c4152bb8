package widgets

// Switch is a native on/off toggle (UISwitch on iOS, SwitchCompat on Android).
type Switch struct {
	ID         Key
	Value      bool
	Disabled   bool
	TrackOff   Color
	TrackOn    Color
	ThumbColor Color
}

func (s Switch) Key() Key   { return s.ID }
func (s Switch) Kind() Kind { return KindSwitch }

// SwitchSize is the platform's intrinsic switch size.
var SwitchSize = Size{Width: 51, Height: 31}
