package layout

import "github.com/helgev-trap/suzuri/glyph"
import "github.com/helgev-trap/suzuri/fontstore"

// fakeProvider is a deterministic, monospace-ish fontstore.Provider
// fixture. Glyph index equals the rune value truncated to uint16, so
// tests can reason about metrics without depending on a real font.
type fakeProvider struct {
	knownFonts map[glyph.FontHandle]bool
	noHorizontal map[glyph.FontHandle]bool
	advance    float32 // per-glyph advance width at size 16px
	width      int
	height     int
	xmin, ymin int
	ascent, descent, lineGap float32
	kern       map[[2]uint16]float32
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		knownFonts:   map[glyph.FontHandle]bool{1: true, 2: true},
		noHorizontal: map[glyph.FontHandle]bool{},
		advance:    10,
		width:      8,
		height:     12,
		xmin:       1,
		ymin:       -10,
		ascent:     14,
		descent:    -4,
		lineGap:    2,
		kern:       map[[2]uint16]float32{},
	}
}

func (f *fakeProvider) Font(handle glyph.FontHandle) (fontstore.Ref, bool) {
	return handle, f.knownFonts[handle]
}

func (f *fakeProvider) HorizontalLineMetrics(handle glyph.FontHandle, sizePx float32) (fontstore.LineMetrics, bool) {
	if f.noHorizontal[handle] {
		return fontstore.LineMetrics{}, false
	}
	scale := sizePx / 16
	return fontstore.LineMetrics{
		Ascent:  f.ascent * scale,
		Descent: f.descent * scale,
		LineGap: f.lineGap * scale,
	}, true
}

func (f *fakeProvider) LookupGlyphIndex(handle glyph.FontHandle, r rune) uint16 {
	return uint16(r)
}

func (f *fakeProvider) MetricsIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) fontstore.GlyphMetrics {
	scale := sizePx / 16
	return fontstore.GlyphMetrics{
		Width:        f.width,
		Height:       f.height,
		XMin:         f.xmin,
		YMin:         f.ymin,
		AdvanceWidth: f.advance * scale,
	}
}

func (f *fakeProvider) HorizontalKernIndexed(handle glyph.FontHandle, left, right uint16, sizePx float32) (float32, bool) {
	k, ok := f.kern[[2]uint16{left, right}]
	return k, ok
}

func (f *fakeProvider) RasterizeIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) (fontstore.GlyphMetrics, []byte) {
	m := f.MetricsIndexed(handle, glyphIndex, sizePx)
	return m, make([]byte, m.Width*m.Height)
}
