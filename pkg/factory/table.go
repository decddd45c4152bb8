package factory

import (
	"fmt"
	"sync"

	"github.com/go-drift/memlab/pkg/widgets"
)

// Labels of the built-in table, in selector order.
const (
	TypeView            ComponentType = "View"
	TypeNativeView      ComponentType = "ViewNativeComponent"
	TypeText            ComponentType = "Text"
	TypeNativeText      ComponentType = "TextNativeComponent"
	TypeTextLarge       ComponentType = "Text (Large Font)"
	TypeTextInput       ComponentType = "TextInput"
	TypeSwitch          ComponentType = "Switch"
	TypeImageRemote     ComponentType = "Image (150x50@2x)"
	TypeImageBundled    ComponentType = "Image (150x50@2x) - bundled"
	TypeImage300        ComponentType = "Image (300x100)"
	TypeImage300At2x    ComponentType = "Image (300x100@2x)"
	TypeStrictDiv       ComponentType = "Strict <div>"
	TypeStrictSpan      ComponentType = "Strict <span> with text"
	TypeStrictSpanLarge ComponentType = "Strict <span> with text (Large Font)"
)

// MaxImageCount caps the image entries. Every remote image holds its own
// decoded bitmap, so uncapped requests in the tens of thousands would measure
// the allocator's failure mode instead of the component.
const MaxImageCount = 1000

var (
	viewStyle = widgets.Style{
		Background:  widgets.ColorSky,
		BorderColor: widgets.ColorBorder,
		MinWidth:    100,
		MinHeight:   50,
		Margin:      widgets.All(4),
	}
	textStyle = widgets.Style{
		Background: widgets.ColorAlice,
		FontSize:   16,
		Padding:    widgets.All(8),
		Margin:     widgets.All(4),
	}
	textLargeStyle = widgets.Style{
		Background: widgets.ColorAlice,
		Foreground: widgets.ColorInk,
		FontSize:   28,
		Padding:    widgets.All(8),
		Margin:     widgets.All(4),
	}
	textInputStyle = widgets.Style{
		Background:  widgets.ColorWhite,
		Foreground:  widgets.ColorInk,
		BorderColor: widgets.ColorTrack,
		BorderWidth: 1,
		FontSize:    12,
		MinWidth:    120,
		MinHeight:   50,
		Padding:     widgets.All(10),
		Margin:      widgets.All(4),
	}
	spanStyle = widgets.Style{
		Background: widgets.ColorAlice,
		Foreground: widgets.ColorInk,
		FontSize:   16,
		Padding:    widgets.All(8),
		Margin:     widgets.All(4),
	}
	imageStyle = widgets.Style{Margin: widgets.All(4)}
)

var (
	assetBundled150 = widgets.NewAsset("res2-150x50.png", 150, 50, 2)
	asset300        = widgets.NewAsset("res1-300x100.png", 300, 100, 1)
	asset300At2x    = widgets.NewAsset("res2-300x100.png", 300, 100, 2)
	assetRemote150  = widgets.NewAsset("placehold.co/150x50@2x.png", 150, 50, 2)
)

// Default returns the built-in table. It is constructed on first use.
var Default = sync.OnceValue(newDefault)

func newDefault() *Registry {
	r := NewRegistry()

	r.Register(TypeView, Simple{Gen: generate(TypeView, func(id widgets.Key, _ int) widgets.Widget {
		return widgets.View{ID: id, Style: viewStyle}
	})})
	r.Register(TypeNativeView, Simple{Gen: generate(TypeNativeView, func(id widgets.Key, _ int) widgets.Widget {
		return widgets.View{ID: id, Style: viewStyle, Native: true}
	})})
	r.Register(TypeText, Simple{Gen: generate(TypeText, func(id widgets.Key, i int) widgets.Widget {
		return widgets.Text{ID: id, Content: textContent(i), Style: textStyle}
	})})
	r.Register(TypeNativeText, Simple{Gen: generate(TypeNativeText, func(id widgets.Key, i int) widgets.Widget {
		return widgets.Text{ID: id, Content: textContent(i), Style: textStyle, Native: true}
	})})
	r.Register(TypeTextLarge, Simple{Gen: generate(TypeTextLarge, func(id widgets.Key, i int) widgets.Widget {
		return widgets.Text{ID: id, Content: textContent(i), Style: textLargeStyle}
	})})
	r.Register(TypeTextInput, Simple{Gen: generate(TypeTextInput, func(id widgets.Key, i int) widgets.Widget {
		return widgets.TextInput{
			ID:               id,
			Value:            textContent(i),
			Placeholder:      textContent(i),
			PlaceholderColor: widgets.ColorHint,
			Style:            textInputStyle,
		}
	})})
	r.Register(TypeSwitch, Simple{Gen: generate(TypeSwitch, func(id widgets.Key, _ int) widgets.Widget {
		return widgets.Switch{
			ID:         id,
			Disabled:   true,
			TrackOff:   widgets.ColorTrack,
			TrackOn:    widgets.ColorTrackOn,
			ThumbColor: widgets.ColorWhite,
		}
	})})

	r.Register(TypeImageRemote, Capped{
		Gen: generate(TypeImageRemote, func(id widgets.Key, _ int) widgets.Widget {
			return widgets.Image{ID: id, Source: assetRemote150, Style: imageStyle}
		}),
		Max:    MaxImageCount,
		Advice: fmt.Sprintf("Each instance decodes its own bitmap; limited to %d views.", MaxImageCount),
	})
	r.Register(TypeImageBundled, Capped{
		Gen: generate(TypeImageBundled, func(id widgets.Key, _ int) widgets.Widget {
			return widgets.Image{ID: id, Source: assetBundled150, Shared: true, Style: imageStyle}
		}),
		Max:    MaxImageCount,
		Advice: "Bundled asset; all instances share one decoded bitmap.",
	})
	r.Register(TypeImage300, Capped{
		Gen: generate(TypeImage300, func(id widgets.Key, _ int) widgets.Widget {
			return widgets.Image{ID: id, Source: asset300, Shared: true, Style: imageStyle}
		}),
		Max:    MaxImageCount,
		Advice: "Bundled @1x asset.",
	})
	r.Register(TypeImage300At2x, Capped{
		Gen: generate(TypeImage300At2x, func(id widgets.Key, _ int) widgets.Widget {
			return widgets.Image{ID: id, Source: asset300At2x, Shared: true, Style: imageStyle}
		}),
		Max:    MaxImageCount,
		Advice: "Bundled @2x asset.",
	})

	r.Register(TypeStrictDiv, Simple{Gen: generate(TypeStrictDiv, func(id widgets.Key, _ int) widgets.Widget {
		return widgets.Div{ID: id, Style: viewStyle}
	})})
	r.Register(TypeStrictSpan, Simple{Gen: generate(TypeStrictSpan, func(id widgets.Key, i int) widgets.Widget {
		return widgets.Span{ID: id, Content: spanContent(i), Style: spanStyle}
	})})
	r.Register(TypeStrictSpanLarge, Simple{Gen: generate(TypeStrictSpanLarge, func(id widgets.Key, i int) widgets.Widget {
		return widgets.Span{ID: id, Content: spanContent(i), Style: textLargeStyle}
	})})

	return r
}

func textContent(i int) string {
	return fmt.Sprintf("Text Content #%d", i+1)
}

func spanContent(i int) string {
	return fmt.Sprintf("Span Component #%d", i+1)
}
