// Package gotext implements a fontstore.Provider over real font files,
// bridging two libraries: golang.org/x/image/font/opentype (wrapping
// golang.org/x/image/font/sfnt) supplies metrics, glyph outlines and
// kerning, golang.org/x/image/vector scan-converts outlines into the
// grayscale coverage buffers the core expects, and
// github.com/go-text/typesetting resolves rune-to-glyph mapping through
// its HarfBuzz-based shaper, so a single codepoint's glyph index is
// always the one HarfBuzz would have chosen for a real shaped run.
package gotext

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
)

type loadedFont struct {
	otFont     *opentype.Font
	gotextFont *gotextfont.Font
}

// Provider loads font files and serves fontstore.Provider requests
// against them. It is safe for concurrent use: parsed fonts are
// immutable once loaded, and reads are protected by a mutex since
// golang.org/x/image/font/sfnt's buffers and the shaper pool are
// mutable scratch state.
type Provider struct {
	mu         sync.Mutex
	fonts      map[glyph.FontHandle]*loadedFont
	nextHandle glyph.FontHandle
	shaperPool sync.Pool
	sfntBuf    sfnt.Buffer
}

// New builds an empty Provider. Font loading is not part of the core
// engine's scope; it is the adapter's job.
func New() *Provider {
	return &Provider{
		fonts: make(map[glyph.FontHandle]*loadedFont),
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// LoadFile parses the font file at path and returns its handle.
func (p *Provider) LoadFile(path string) (glyph.FontHandle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("gotext: read font file: %w", err)
	}
	return p.LoadBytes(data)
}

// LoadBytes parses TTF/OTF font data and returns its handle.
func (p *Provider) LoadBytes(data []byte) (glyph.FontHandle, error) {
	otFont, err := opentype.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("gotext: parse font: %w", err)
	}

	shapeFace, err := gotextfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("gotext: parse font for shaping: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextHandle++
	handle := p.nextHandle
	p.fonts[handle] = &loadedFont{otFont: otFont, gotextFont: shapeFace.Font}
	return handle, nil
}

func (p *Provider) get(handle glyph.FontHandle) (*loadedFont, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.fonts[handle]
	return f, ok
}

// Font implements fontstore.Provider.
func (p *Provider) Font(handle glyph.FontHandle) (fontstore.Ref, bool) {
	f, ok := p.get(handle)
	return f, ok
}

// HorizontalLineMetrics implements fontstore.Provider.
func (p *Provider) HorizontalLineMetrics(handle glyph.FontHandle, sizePx float32) (fontstore.LineMetrics, bool) {
	f, ok := p.get(handle)
	if !ok {
		return fontstore.LineMetrics{}, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ppem := fixed.Int26_6(sizePx * 64)
	m, err := f.otFont.Metrics(&p.sfntBuf, ppem, font.HintingFull)
	if err != nil {
		return fontstore.LineMetrics{}, false
	}

	ascent := fixedToFloat(m.Ascent)
	descent := -fixedToFloat(m.Descent)
	lineGap := fixedToFloat(m.Height) - ascent - fixedToFloat(m.Descent)
	return fontstore.LineMetrics{Ascent: ascent, Descent: descent, LineGap: lineGap}, true
}

// LookupGlyphIndex implements fontstore.Provider by running a one-rune
// HarfBuzz shaping pass, so the resolved glyph index matches what a
// full shaped run would have chosen (ligature-free, since the run is a
// single codepoint). A fresh Face is built per call because
// [gotextfont.Face] carries mutable shaping state and is not safe for
// concurrent use, while the underlying parsed Font is.
func (p *Provider) LookupGlyphIndex(handle glyph.FontHandle, r rune) uint16 {
	f, ok := p.get(handle)
	if !ok {
		return 0
	}

	shaper := p.shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer p.shaperPool.Put(shaper)

	input := shaping.Input{
		Text:     []rune{r},
		RunStart: 0,
		RunEnd:   1,
		Face:     gotextfont.NewFace(f.gotextFont),
		Size:     fixed.I(16),
		Script:   language.LookupScript(r),
		Language: language.NewLanguage("en"),
	}
	out := shaper.Shape(input)
	if len(out.Glyphs) == 0 {
		return 0
	}
	return uint16(out.Glyphs[0].GlyphID)
}

// MetricsIndexed implements fontstore.Provider.
func (p *Provider) MetricsIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) fontstore.GlyphMetrics {
	f, ok := p.get(handle)
	if !ok {
		return fontstore.GlyphMetrics{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	metrics, _ := p.glyphMetricsLocked(f, glyphIndex, sizePx)
	return metrics
}

// glyphMetricsLocked computes the glyph's placement metrics, and
// alongside them the glyph's raw Y-down top offset (bounds.Min.Y in
// whole pixels) that RasterizeIndexed needs to align the rasterizer
// with the outline it scan-converts. The two values use different Y
// conventions and must not be derived from one another: the reported
// GlyphMetrics.YMin is Y-up (the negated Y-down bottom edge,
// bounds.Max.Y, i.e. the glyph's lowest point, matching the
// fontdue-style convention layout/assemble.go expects), while the
// rasterizer origin follows sfnt's own Y-down outline coordinates.
func (p *Provider) glyphMetricsLocked(f *loadedFont, glyphIndex uint16, sizePx float32) (fontstore.GlyphMetrics, int) {
	ppem := fixed.Int26_6(sizePx * 64)
	bounds, advance, err := f.otFont.GlyphBounds(&p.sfntBuf, sfnt.GlyphIndex(glyphIndex), ppem, font.HintingFull)
	if err != nil {
		return fontstore.GlyphMetrics{}, 0
	}

	width := int((bounds.Max.X+63)>>6) - int(bounds.Min.X>>6)
	height := int((bounds.Max.Y+63)>>6) - int(bounds.Min.Y>>6)
	rasterOriginY := int(bounds.Min.Y >> 6)
	return fontstore.GlyphMetrics{
		Width:        width,
		Height:       height,
		XMin:         int(bounds.Min.X >> 6),
		YMin:         -int(bounds.Max.Y >> 6),
		AdvanceWidth: fixedToFloat(advance),
	}, rasterOriginY
}

// HorizontalKernIndexed implements fontstore.Provider.
func (p *Provider) HorizontalKernIndexed(handle glyph.FontHandle, left, right uint16, sizePx float32) (float32, bool) {
	f, ok := p.get(handle)
	if !ok {
		return 0, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	ppem := fixed.Int26_6(sizePx * 64)
	kern, err := f.otFont.Kern(&p.sfntBuf, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), ppem, font.HintingFull)
	if err != nil {
		return 0, false
	}
	return fixedToFloat(kern), true
}

// RasterizeIndexed implements fontstore.Provider: it extracts the
// glyph's outline via sfnt, scan-converts it with a
// golang.org/x/image/vector.Rasterizer, and returns a tightly packed
// grayscale coverage buffer sized to the glyph's own bounds.
func (p *Provider) RasterizeIndexed(handle glyph.FontHandle, glyphIndex uint16, sizePx float32) (fontstore.GlyphMetrics, []byte) {
	f, ok := p.get(handle)
	if !ok {
		return fontstore.GlyphMetrics{}, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ppem := fixed.Int26_6(sizePx * 64)
	segments, err := f.otFont.LoadGlyph(&p.sfntBuf, sfnt.GlyphIndex(glyphIndex), ppem, nil)
	if err != nil {
		return fontstore.GlyphMetrics{}, nil
	}

	metrics, rasterOriginY := p.glyphMetricsLocked(f, glyphIndex, sizePx)
	if metrics.Width <= 0 || metrics.Height <= 0 {
		return metrics, nil
	}

	originX := float32(metrics.XMin)
	originY := float32(rasterOriginY)

	raster := vector.NewRasterizer(metrics.Width, metrics.Height)
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			raster.MoveTo(toPixel(seg.Args[0], originX, originY))
		case sfnt.SegmentOpLineTo:
			raster.LineTo(toPixel(seg.Args[0], originX, originY))
		case sfnt.SegmentOpQuadTo:
			x0, y0 := toPixel(seg.Args[0], originX, originY)
			x1, y1 := toPixel(seg.Args[1], originX, originY)
			raster.QuadTo(x0, y0, x1, y1)
		case sfnt.SegmentOpCubeTo:
			x0, y0 := toPixel(seg.Args[0], originX, originY)
			x1, y1 := toPixel(seg.Args[1], originX, originY)
			x2, y2 := toPixel(seg.Args[2], originX, originY)
			raster.CubeTo(x0, y0, x1, y1, x2, y2)
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, metrics.Width, metrics.Height))
	raster.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return metrics, dst.Pix
}

func toPixel(p fixed.Point26_6, originX, originY float32) (float32, float32) {
	return float32(p.X)/64 - originX, float32(p.Y)/64 - originY
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
