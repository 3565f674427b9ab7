// Package layout turns runs of styled text into a positioned glyph
// layout: line breaking, alignment, kerning, tabs and wrap handling. It
// consumes a [fontstore.Provider] for font metrics and rasterization
// but never parses a font file itself.
package layout

import (
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
)

// HorizontalAlign controls how a line is offset within its container.
type HorizontalAlign int

const (
	Left HorizontalAlign = iota
	Center
	Right
)

// VerticalAlign controls how the whole block is offset within its
// container.
type VerticalAlign int

const (
	Top VerticalAlign = iota
	Middle
	Bottom
)

// WrapStyle selects the line-breaking policy applied to non-whitespace
// characters.
type WrapStyle int

const (
	// WordWrap breaks between words, falling back to a mid-word break
	// only when a single word exceeds MaxWidth on its own.
	WordWrap WrapStyle = iota
	// CharWrap breaks between any two glyphs once MaxWidth is reached.
	CharWrap
	// NoWrap never breaks except on hard line breaks.
	NoWrap
)

// Config governs how a Data run is laid out. The zero Config is not
// directly usable; call DefaultConfig for the documented defaults.
type Config struct {
	MaxWidth, MaxHeight *float32
	HorizontalAlign     HorizontalAlign
	VerticalAlign       VerticalAlign
	LineHeightScale     float32
	WrapStyle           WrapStyle
	TabSizeInSpaces     float32
}

// DefaultConfig returns the configuration defaults: Left/Top/WordWrap,
// a line height scale of 1.0, a tab width of 4 spaces, and unconstrained
// width and height.
func DefaultConfig() Config {
	return Config{
		HorizontalAlign: Left,
		VerticalAlign:   Top,
		LineHeightScale: 1.0,
		WrapStyle:       WordWrap,
		TabSizeInSpaces: 4,
	}
}

// Element is one text run: a font, a pixel size, a content string, and
// a caller-defined payload echoed back on every glyph it produces.
type Element[T any] struct {
	Font    glyph.FontHandle
	SizePx  float32
	Content string
	Data    T
}

// Data is an ordered sequence of runs. Layout concatenates them
// without inserting separators between runs.
type Data[T any] []Element[T]

// GlyphPosition is one positioned glyph in a finished layout.
type GlyphPosition[T any] struct {
	ID      glyph.ID
	Metrics fontstore.GlyphMetrics
	X, Y    float32
	Data    T
}

// Line is one line of a finished layout.
type Line[T any] struct {
	LineHeight float32
	LineWidth  float32
	Top        float32
	Bottom     float32
	Glyphs     []GlyphPosition[T]
}

// Layout is the result of laying out a Data run against a Config.
type Layout[T any] struct {
	Config      Config
	TotalWidth  float32
	TotalHeight float32
	Lines       []Line[T]
}
