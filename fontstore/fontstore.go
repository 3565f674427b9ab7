// Package fontstore declares the font storage collaborator that the
// layout and rendering packages depend on but never implement
// themselves. Font file discovery, parsing, shaping and system font
// loading are explicitly out of scope of this module's core; callers
// supply a Provider, such as the one in suzuri/fontstore/gotext.
package fontstore

import "github.com/helgev-trap/suzuri/glyph"

// LineMetrics carries the vertical metrics of a font at a given pixel
// size. Descent is supplied non-positive, matching font convention.
type LineMetrics struct {
	Ascent   float32
	Descent  float32
	LineGap  float32
}

// GlyphMetrics carries the per-glyph raster metrics needed to place a
// bitmap relative to a pen origin, without requiring rasterization.
type GlyphMetrics struct {
	Width, Height int
	XMin, YMin    int
	AdvanceWidth  float32
}

// Ref is an opaque handle to a resolved font, returned by Font so that
// callers can confirm a font handle resolves to something before use.
// Providers may define it as any comparable value; the core never
// inspects it beyond existence.
type Ref any

// Provider is the font storage collaborator required by §6 of the
// specification this module implements. Every method must be safe to
// call repeatedly with the same arguments and return equal results
// (layout treats providers as pure even though an implementation may
// use an internal cache or cursor).
type Provider interface {
	// Font resolves a handle to a font reference, reporting whether the
	// handle is known. An unknown handle causes the caller (layout) to
	// silently drop the run it was attached to (MissingFont).
	Font(handle glyph.FontHandle) (Ref, bool)

	// HorizontalLineMetrics returns the ascent/descent/line-gap of the
	// font at sizePx, or ok=false if the font only supports vertical
	// layout (UnsupportedDirection).
	HorizontalLineMetrics(handle glyph.FontHandle, sizePx float32) (LineMetrics, bool)

	// LookupGlyphIndex maps a rune to a glyph index within the font.
	// Fonts without a glyph for r return index 0 (the standard .notdef
	// slot); layout places that index like any other glyph rather than
	// treating it as an error.
	LookupGlyphIndex(handle glyph.FontHandle, r rune) uint16

	// MetricsIndexed returns placement metrics for a glyph index at
	// sizePx without rasterizing it.
	MetricsIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) GlyphMetrics

	// HorizontalKernIndexed returns the horizontal kerning adjustment
	// between two adjacent glyph indices at sizePx, or ok=false if the
	// font defines no kerning pair for them.
	HorizontalKernIndexed(handle glyph.FontHandle, left, right uint16, sizePx float32) (float32, bool)

	// RasterizeIndexed rasterizes a glyph index at sizePx to a tightly
	// packed, row-major grayscale coverage buffer.
	RasterizeIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) (GlyphMetrics, []byte)
}
