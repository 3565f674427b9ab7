// Package glyph defines the compact identity used to key rasterized
// glyphs across the CPU cache and the GPU atlas.
package glyph

import "math"

// FontHandle identifies a font within a font storage provider. The
// layout and rendering packages never interpret this value; they only
// compare it for equality and pass it back to the provider.
type FontHandle uint64

// quantum is the fractional precision of a quantized glyph size, in
// 1/64-pixel units.
const quantum = 64

// QuantizeSize converts a pixel size to the integer 1/64-pixel unit
// used by ID, so that near-identical sizes alias into one cache slot.
func QuantizeSize(sizePx float32) int32 {
	return int32(math.Round(float64(sizePx) * quantum))
}

// ID is the triple (font handle, glyph index, quantised size) that
// uniquely keys a rasterized glyph. Two IDs with the same fields are
// considered the same glyph for caching purposes even if they arose
// from different font sizes that happened to quantize identically.
type ID struct {
	Font        FontHandle
	GlyphIndex  uint16
	Quantized   int32
}

// NewID builds an ID from a font handle, glyph index and pixel size.
func NewID(font FontHandle, glyphIndex uint16, sizePx float32) ID {
	return ID{Font: font, GlyphIndex: glyphIndex, Quantized: QuantizeSize(sizePx)}
}

// SameFontAndSize reports whether a and b were produced by the same
// font handle at the same quantized size. This is the condition that
// gates kerning lookups during layout.
func (a ID) SameFontAndSize(b ID) bool {
	return a.Font == b.Font && a.Quantized == b.Quantized
}

// SizePx recovers the pixel size that produced id's quantized field.
func (a ID) SizePx() float32 {
	return float32(a.Quantized) / quantum
}

// Raster is a rasterized grayscale glyph bitmap together with the
// placement metrics needed to position it relative to a pen origin.
type Raster struct {
	Width, Height int
	XMin, YMin    int
	AdvanceWidth  float32
	// Pixels is a row-major, tightly packed single-channel coverage
	// buffer of length Width*Height.
	Pixels []byte
}
