package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Text-41", Key{Type: "Text", Index: 41}.String())
}

func TestKinds(t *testing.T) {
	tests := []struct {
		widget Widget
		want   Kind
	}{
		{View{}, KindView},
		{View{Native: true}, KindNativeView},
		{Text{}, KindText},
		{Text{Native: true}, KindNativeText},
		{TextInput{}, KindTextInput},
		{Switch{}, KindSwitch},
		{Image{}, KindImage},
		{Div{}, KindDiv},
		{Span{}, KindSpan},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.widget.Kind(), "%T", tt.widget)
	}
}

func TestMeasureTextScalesWithFontSize(t *testing.T) {
	small := MeasureText("Text Component #1", 16)
	large := MeasureText("Text Component #1", 28)

	assert.Greater(t, small.Width, 0.0)
	assert.Greater(t, large.Width, small.Width)
	assert.Greater(t, large.Height, small.Height)

	// Zero font size falls back to the default rather than collapsing.
	assert.Equal(t, MeasureText("x", DefaultFontSize), MeasureText("x", 0))
}

func TestBoxSizeHonoursMinimums(t *testing.T) {
	style := Style{MinWidth: 100, MinHeight: 50, Margin: All(4)}
	got := BoxSize(style, Size{Width: 10, Height: 10})
	assert.Equal(t, Size{Width: 108, Height: 58}, got)

	style = Style{Padding: All(8), BorderWidth: 1}
	got = BoxSize(style, Size{Width: 10, Height: 10})
	assert.Equal(t, Size{Width: 28, Height: 28}, got)
}

func TestAssetPixelsAreCached(t *testing.T) {
	asset := NewAsset("res2-150x50", 150, 50, 2)
	first := asset.Pixels()
	require.NotNil(t, first)
	assert.Equal(t, 300, first.Bounds().Dx())
	assert.Equal(t, 100, first.Bounds().Dy())
	assert.Same(t, first, asset.Pixels())
}

func TestImageDecode(t *testing.T) {
	asset := NewAsset("res1-300x100", 300, 100, 1)

	shared := Image{Source: asset, Shared: true}
	assert.Same(t, asset.Pixels(), shared.Decode())

	owned := Image{Source: asset}.Decode()
	require.NotNil(t, owned)
	assert.NotSame(t, asset.Pixels(), owned)
	assert.Equal(t, asset.PixelBounds(), owned.Bounds())

	assert.Nil(t, Image{}.Decode())
}

func TestColorComponents(t *testing.T) {
	r, g, b, a := Hex(0x4a90e2).RGBA8()
	assert.Equal(t, [4]uint8{0x4a, 0x90, 0xe2, 0xff}, [4]uint8{r, g, b, a})
	assert.Equal(t, Hex(0x102030), RGB(0x10, 0x20, 0x30))
}
