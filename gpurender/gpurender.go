// Package gpurender implements the GPU path: it walks a finished
// layout, upserts glyphs into an atlas.Cache, and emits three kinds of
// callback records — atlas texture updates, instanced glyph quads, and
// standalone glyphs for anything the atlas could not place. It never
// touches a graphics API itself; a platform adapter owns the device
// calls.
package gpurender

import (
	"github.com/helgev-trap/suzuri/atlas"
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/layout"
)

// DefaultBatchSize is the number of instances accumulated before
// Render proactively flushes, bounding how much memory one Render call
// can build up before handing batches to the caller.
const DefaultBatchSize = 4096

// Rect is a screen-space rectangle, in pixels, with Y growing downward
// to match layout.GlyphPosition's coordinate convention.
type Rect struct {
	X, Y, Width, Height float32
}

// GlyphInstance is one atlas-backed glyph quad ready for instanced GPU
// drawing.
type GlyphInstance[T any] struct {
	PageIndex      int
	U0, V0, U1, V1 float32
	ScreenRect     Rect
	Data           T
}

// StandaloneGlyph is a glyph rendered once outside the atlas, because
// no page could place it even after eviction.
type StandaloneGlyph[T any] struct {
	Pixels     []byte
	Width      int
	Height     int
	ScreenRect Rect
	Data       T
}

// AtlasUpdateFunc receives atlas texture uploads. It is always called
// with the updates backing a batch of instances before those instances
// are handed to InstanceFunc.
type AtlasUpdateFunc func([]atlas.Update)

// InstanceFunc receives a batch of atlas-backed glyph instances.
type InstanceFunc[T any] func([]GlyphInstance[T])

// StandaloneFunc receives one glyph that bypassed the atlas.
type StandaloneFunc[T any] func(StandaloneGlyph[T])

// Renderer drives the GPU rendering path against one atlas cache.
type Renderer struct {
	atlas     *atlas.Cache
	fonts     fontstore.Provider
	BatchSize int
}

// New builds a Renderer backed by atlasCache, looking up rasterization
// from fonts on an atlas miss.
func New(atlasCache *atlas.Cache, fonts fontstore.Provider) *Renderer {
	return &Renderer{atlas: atlasCache, fonts: fonts, BatchSize: DefaultBatchSize}
}

// Render walks lay's glyphs in layout order. Every glyph is first
// offered to the atlas cache; on success it joins the current instance
// batch, which is flushed (atlas updates, then instances) once it
// reaches BatchSize or the call ends. A glyph the atlas rejects
// triggers an immediate flush of whatever has accumulated, advances
// the atlas to a new protection batch, and is emitted alone via
// onStandalone.
func Render[T any](r *Renderer, lay layout.Layout[T], onAtlasUpdate AtlasUpdateFunc, onInstances InstanceFunc[T], onStandalone StandaloneFunc[T]) {
	batchSize := r.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var pending []GlyphInstance[T]
	flush := func() {
		if updates := r.atlas.FlushUpdates(); len(updates) > 0 {
			onAtlasUpdate(updates)
		}
		if len(pending) > 0 {
			onInstances(pending)
			pending = nil
		}
	}

	for _, line := range lay.Lines {
		for _, g := range line.Glyphs {
			screenRect := Rect{X: g.X, Y: g.Y, Width: float32(g.Metrics.Width), Height: float32(g.Metrics.Height)}

			region, ok := r.atlas.GetOrInsert(g.ID, g.Metrics.Height, func() (int, int, []byte) {
				_, pixels := r.fonts.RasterizeIndexed(g.ID.Font, g.ID.GlyphIndex, g.ID.SizePx())
				return g.Metrics.Width, g.Metrics.Height, pixels
			})
			if !ok {
				logStandalone(g.ID)
				flush()
				r.atlas.NewBatch()
				_, pixels := r.fonts.RasterizeIndexed(g.ID.Font, g.ID.GlyphIndex, g.ID.SizePx())
				onStandalone(StandaloneGlyph[T]{
					Pixels:     pixels,
					Width:      g.Metrics.Width,
					Height:     g.Metrics.Height,
					ScreenRect: screenRect,
					Data:       g.Data,
				})
				continue
			}

			pageCfg := r.atlas.PageConfig(region.PageIndex)
			u0, v0, u1, v1 := region.UV(pageCfg)
			pending = append(pending, GlyphInstance[T]{
				PageIndex:  region.PageIndex,
				U0:         u0, V0: v0, U1: u1, V1: v1,
				ScreenRect: screenRect,
				Data:       g.Data,
			})
			if len(pending) >= batchSize {
				flush()
			}
		}
	}
	flush()
}
