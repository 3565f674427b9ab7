// Package atlas implements the GPU glyph atlas cache: a multi-page
// shelf bin-packer with per-frame batch protection and LRU-style
// eviction restricted to entries untouched by the current batch.
// Glyphs that no page can place are reported to the caller (the
// gpurender package) to be rendered via the standalone path instead.
package atlas

// PageConfig describes one atlas page: a square surface of side
// TextureSize dedicated to glyphs whose rasterized height falls within
// [MinGlyphHeight, MaxGlyphHeight].
type PageConfig struct {
	TextureSize               int
	MinGlyphHeight            int
	MaxGlyphHeight            int
}

func (c PageConfig) covers(height int) bool {
	return height >= c.MinGlyphHeight && height <= c.MaxGlyphHeight
}

// Region is a placed rectangle within a page's surface, in pixels.
type Region struct {
	PageIndex     int
	X, Y          int
	Width, Height int
}

// UV returns the region's normalized (0..1) texture coordinates within
// its page.
func (r Region) UV(pageConfig PageConfig) (u0, v0, u1, v1 float32) {
	size := float32(pageConfig.TextureSize)
	u0 = float32(r.X) / size
	v0 = float32(r.Y) / size
	u1 = float32(r.X+r.Width) / size
	v1 = float32(r.Y+r.Height) / size
	return
}

// Update is a pending GPU upload produced by a successful insertion:
// tightly packed, row-major grayscale pixels destined for one region
// of one page.
type Update struct {
	PageIndex     int
	OriginX       int
	OriginY       int
	Width, Height int
	Pixels        []byte
}

// Rasterize is called by Cache.GetOrInsert only when a glyph must
// actually be placed (a cache hit never rasterizes), returning the
// glyph's pixel dimensions and tightly packed grayscale bitmap.
type Rasterize func() (width, height int, pixels []byte)
