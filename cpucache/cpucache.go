// Package cpucache implements the size-bounded CPU glyph cache: a set
// of LRU buckets, each covering a range of font sizes, holding
// rasterized grayscale bitmaps keyed by glyph identity. The cache is
// single-threaded; callers needing concurrent access must serialize it
// themselves (see the root suzuri.Session for one such wrapper).
package cpucache

import (
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
)

// RangeConfig configures one LRU bucket: it covers glyph sizes in
// [MinSize, MaxSize] and holds at most Capacity entries. A Capacity of
// zero or less leaves the bucket unbounded.
type RangeConfig struct {
	MinSize, MaxSize float32
	Capacity         int
}

func (r RangeConfig) contains(sizePx float32) bool {
	return sizePx >= r.MinSize && sizePx <= r.MaxSize
}

// Cache is a collection of independent, size-range-bucketed LRU caches
// backed by a single fontstore.Provider for ad-hoc rasterization on
// miss or on a size with no matching range.
type Cache struct {
	fonts   fontstore.Provider
	buckets []*bucket
}

// New builds a Cache over the given range configs. Ranges are expected
// not to overlap; an overlapping range is logged and dropped rather
// than rejected outright, since a partially usable cache is preferable
// to none.
func New(fonts fontstore.Provider, ranges []RangeConfig) *Cache {
	c := &Cache{fonts: fonts}
	for _, r := range ranges {
		if c.overlaps(r) {
			logDroppedRange(r)
			continue
		}
		c.buckets = append(c.buckets, newBucket(r))
	}
	return c
}

func (c *Cache) overlaps(r RangeConfig) bool {
	for _, b := range c.buckets {
		if r.MinSize <= b.cfg.MaxSize && b.cfg.MinSize <= r.MaxSize {
			return true
		}
	}
	return false
}

func (c *Cache) bucketFor(sizePx float32) *bucket {
	for _, b := range c.buckets {
		if b.cfg.contains(sizePx) {
			return b
		}
	}
	return nil
}

// sizeOf recovers the pixel size encoded in a quantized glyph ID. The
// cache is keyed purely by ID, so this is the only size information
// available for a lookup once a GlyphId has been built.
func sizeOf(id glyph.ID) float32 {
	return float32(id.Quantized) / 64
}

// Fetch returns the rasterized bitmap for id, rasterizing through the
// font storage provider on a cache miss (or when no configured range
// covers the glyph's size, in which case the result is not cached at
// all). The returned Raster must not be mutated by the caller.
func (c *Cache) Fetch(id glyph.ID) glyph.Raster {
	sizePx := sizeOf(id)
	b := c.bucketFor(sizePx)
	if b == nil {
		return c.rasterize(id, sizePx)
	}
	if r, ok := b.get(id); ok {
		return r
	}
	r := c.rasterize(id, sizePx)
	b.insert(id, r)
	return r
}

func (c *Cache) rasterize(id glyph.ID, sizePx float32) glyph.Raster {
	m, pixels := c.fonts.RasterizeIndexed(id.Font, id.GlyphIndex, sizePx)
	return glyph.Raster{
		Width: m.Width, Height: m.Height,
		XMin: m.XMin, YMin: m.YMin,
		AdvanceWidth: m.AdvanceWidth,
		Pixels:       pixels,
	}
}

// Clear drops every cached entry across every bucket.
func (c *Cache) Clear() {
	for _, b := range c.buckets {
		b.clear()
	}
}
