package cpurender

import (
	"testing"

	"github.com/helgev-trap/suzuri/cpucache"
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
	"github.com/helgev-trap/suzuri/layout"
)

type stubProvider struct{}

func (stubProvider) Font(h glyph.FontHandle) (fontstore.Ref, bool) { return h, true }
func (stubProvider) HorizontalLineMetrics(glyph.FontHandle, float32) (fontstore.LineMetrics, bool) {
	return fontstore.LineMetrics{Ascent: 10, Descent: -2, LineGap: 1}, true
}
func (stubProvider) LookupGlyphIndex(_ glyph.FontHandle, r rune) uint16 { return uint16(r) }
func (stubProvider) MetricsIndexed(glyph.FontHandle, uint16, float32) fontstore.GlyphMetrics {
	return fontstore.GlyphMetrics{Width: 2, Height: 2, AdvanceWidth: 3}
}
func (stubProvider) HorizontalKernIndexed(glyph.FontHandle, uint16, uint16, float32) (float32, bool) {
	return 0, false
}
func (stubProvider) RasterizeIndexed(glyph.FontHandle, uint16, float32) (fontstore.GlyphMetrics, []byte) {
	return fontstore.GlyphMetrics{Width: 2, Height: 2, AdvanceWidth: 3}, []byte{255, 255, 255, 255}
}

func TestRenderInvokesCallbackPerPixelWithinBounds(t *testing.T) {
	fonts := stubProvider{}
	cache := cpucache.New(fonts, []cpucache.RangeConfig{{MinSize: 0, MaxSize: 100, Capacity: 8}})
	r := New(cache)

	data := layout.Data[int]{{Font: 1, SizePx: 16, Content: "A", Data: 42}}
	lay := layout.Layout(data, layout.DefaultConfig(), fonts)

	count := 0
	var seenData int
	Render(r, lay, Bounds{Width: 1000, Height: 1000}, func(x, y int, coverage byte, data int) {
		count++
		seenData = data
		if coverage != 255 {
			t.Errorf("coverage = %d, want 255", coverage)
		}
	})

	if count != 4 { // 2x2 bitmap
		t.Errorf("expected 4 pixel callbacks, got %d", count)
	}
	if seenData != 42 {
		t.Errorf("expected user data 42, got %d", seenData)
	}
}

func TestRenderSkipsPixelsOutsideBounds(t *testing.T) {
	fonts := stubProvider{}
	cache := cpucache.New(fonts, []cpucache.RangeConfig{{MinSize: 0, MaxSize: 100, Capacity: 8}})
	r := New(cache)

	data := layout.Data[int]{{Font: 1, SizePx: 16, Content: "A"}}
	lay := layout.Layout(data, layout.DefaultConfig(), fonts)

	count := 0
	Render(r, lay, Bounds{Width: 0, Height: 0}, func(x, y int, coverage byte, data int) {
		count++
	})
	if count != 0 {
		t.Errorf("expected 0 callbacks for a zero-sized destination, got %d", count)
	}
}
