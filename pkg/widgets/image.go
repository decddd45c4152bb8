package widgets

import (
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// Asset is a bundled bitmap resource. Its pixels are produced on first use
// and shared by every caller after that, which is how a platform image cache
// treats a bundled resource.
type Asset struct {
	// Name identifies the asset in logs and diagnostics.
	Name string
	// Width and Height are the logical dimensions.
	Width, Height int
	// Scale is the pixel density (1 for @1x, 2 for @2x).
	Scale int

	once   sync.Once
	pixels *image.RGBA
}

// NewAsset describes a logical width x height bitmap at the given density.
func NewAsset(name string, width, height, scale int) *Asset {
	if scale <= 0 {
		scale = 1
	}
	return &Asset{Name: name, Width: width, Height: height, Scale: scale}
}

// PixelBounds returns the bitmap rectangle in physical pixels.
func (a *Asset) PixelBounds() image.Rectangle {
	return image.Rect(0, 0, a.Width*a.Scale, a.Height*a.Scale)
}

// Pixels returns the decoded bitmap.
func (a *Asset) Pixels() *image.RGBA {
	a.once.Do(func() {
		a.pixels = placeholder(a.PixelBounds())
	})
	return a.pixels
}

// placeholder paints the two-band pattern placeholder services serve for
// missing artwork: a light fill with a darker band through the middle.
func placeholder(bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(bounds)
	r, g, b, _ := ColorTrack.RGBA8()
	draw.Draw(img, bounds, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xFF}), image.Point{}, draw.Src)

	band := bounds.Inset(bounds.Dy() / 3)
	r, g, b, _ = ColorHint.RGBA8()
	draw.Draw(img, band, image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xFF}), image.Point{}, draw.Src)
	return img
}

// Image renders a bitmap from Source.
//
// When Shared is false every node decodes its own copy of the bitmap, the way
// distinct remote URLs would; when true all nodes point at the asset's cached
// pixels.
type Image struct {
	ID     Key
	Source *Asset
	Shared bool
	Style  Style
}

func (i Image) Key() Key   { return i.ID }
func (i Image) Kind() Kind { return KindImage }

// Decode returns the bitmap a node for this descriptor should hold.
func (i Image) Decode() *image.RGBA {
	if i.Source == nil {
		return nil
	}
	src := i.Source.Pixels()
	if i.Shared {
		return src
	}
	dst := image.NewRGBA(i.Source.PixelBounds())
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Size returns the laid-out size of the image, margins included.
func (i Image) Size() Size {
	var content Size
	if i.Source != nil {
		content = Size{Width: float64(i.Source.Width), Height: float64(i.Source.Height)}
	}
	return BoxSize(i.Style, content)
}
