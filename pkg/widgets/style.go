package widgets

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return Color(0xFF<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Hex constructs an opaque Color from a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color(0xFF000000 | rgb&0x00FFFFFF)
}

// RGBA8 returns the color's components as bytes.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// EdgeInsets holds per-side spacing in logical pixels.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// All returns insets with the same value on every side.
func All(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// Horizontal returns the sum of the left and right insets.
func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns the sum of the top and bottom insets.
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }

// Size is a width and height in logical pixels.
type Size struct {
	Width, Height float64
}

// Style is the subset of box and text styling the descriptors use.
type Style struct {
	Background  Color
	Foreground  Color
	BorderColor Color
	BorderWidth float64
	MinWidth    float64
	MinHeight   float64
	Margin      EdgeInsets
	Padding     EdgeInsets
	// FontSize is in logical pixels. Zero means DefaultFontSize.
	FontSize float64
}

// DefaultFontSize is used by text descriptors whose style leaves FontSize unset.
const DefaultFontSize = 14

// Palette shared by the generated descriptors.
var (
	ColorSky     = Hex(0xe8f4fd)
	ColorAlice   = Hex(0xf0f8ff)
	ColorBorder  = Hex(0xb8d9f5)
	ColorInk     = Hex(0x2c5f8d)
	ColorTrack   = Hex(0xd6ebff)
	ColorTrackOn = Hex(0x4a90e2)
	ColorWhite   = Hex(0xffffff)
	ColorHint    = Hex(0x9bb8d3)
)
