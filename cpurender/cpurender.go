// Package cpurender implements the CPU path: it walks a finished
// layout, fetches each glyph's rasterized bitmap from a cpucache.Cache,
// and invokes a per-pixel callback. It never performs blending itself;
// the callback owns compositing.
package cpurender

import (
	"github.com/helgev-trap/suzuri/cpucache"
	"github.com/helgev-trap/suzuri/layout"
)

// Bounds is the destination image's pixel bounds, [0, Width) x [0, Height).
type Bounds struct {
	Width, Height int
}

// PixelFunc receives the destination pixel coordinate, the glyph's
// coverage byte at that pixel, and the user payload carried by the
// glyph that produced it.
type PixelFunc[T any] func(x, y int, coverage byte, data T)

// Renderer drives the CPU rendering path against one cache.
type Renderer struct {
	cache *cpucache.Cache
}

// New builds a Renderer backed by cache.
func New(cache *cpucache.Cache) *Renderer {
	return &Renderer{cache: cache}
}

// Render iterates lay's glyphs in layout order and invokes fn once per
// visible pixel of every glyph whose bitmap overlaps bounds. Pixels
// outside bounds are skipped; nothing is blended by this call.
func Render[T any](r *Renderer, lay layout.Layout[T], bounds Bounds, fn PixelFunc[T]) {
	for _, line := range lay.Lines {
		for _, g := range line.Glyphs {
			raster := r.cache.Fetch(g.ID)
			originX := int(g.X)
			originY := int(g.Y)
			for row := 0; row < raster.Height; row++ {
				py := originY + row
				if py < 0 || py >= bounds.Height {
					continue
				}
				rowOff := row * raster.Width
				for col := 0; col < raster.Width; col++ {
					px := originX + col
					if px < 0 || px >= bounds.Width {
						continue
					}
					coverage := raster.Pixels[rowOff+col]
					fn(px, py, coverage, g.Data)
				}
			}
		}
	}
}
