package atlas

import "github.com/helgev-trap/suzuri/glyph"

// Cache owns a set of pages and the current batch counter. Callers
// bracket a frame with NewBatch, call GetOrInsert for every glyph the
// frame needs, then FlushUpdates to retrieve the pending GPU uploads.
type Cache struct {
	pageConfigs  []PageConfig
	pages        []*page
	currentBatch int64
	pending      []Update
}

// New builds a Cache with one page per entry in pageConfigs, in the
// order given. Page selection for a glyph of a given height picks the
// first config whose range covers it.
func New(pageConfigs []PageConfig) *Cache {
	c := &Cache{pageConfigs: pageConfigs}
	for i, cfg := range pageConfigs {
		c.pages = append(c.pages, newPage(i, cfg))
	}
	return c
}

// NewBatch advances the batch counter. Entries not touched again
// before the next NewBatch become eligible for eviction.
func (c *Cache) NewBatch() {
	c.currentBatch++
}

// GetOrInsert returns the atlas region holding id's bitmap, placing it
// if necessary. height selects the candidate page (by PageConfig
// range); width is only known once rasterize is actually invoked, so
// rasterize runs lazily and only on an actual placement attempt — a
// cache hit never calls it. ok is false when no page could place the
// glyph even after evicting every non-current-batch entry on the
// candidate page; the caller should fall back to standalone rendering.
func (c *Cache) GetOrInsert(id glyph.ID, height int, rasterize Rasterize) (Region, bool) {
	pg := c.pageFor(height)
	if pg == nil {
		logNoPage(height)
		return Region{}, false
	}
	if region, ok := pg.get(id); ok {
		pg.touch(id, c.currentBatch)
		return region, true
	}

	width, h, pixels := rasterize()
	if region, ok := pg.allocate(width, h); ok {
		pg.record(id, region, c.currentBatch)
		c.pending = append(c.pending, Update{
			PageIndex: pg.index,
			OriginX:   region.X,
			OriginY:   region.Y,
			Width:     region.Width,
			Height:    region.Height,
			Pixels:    pixels,
		})
		return region, true
	}

	if pg.evictNonCurrent(c.currentBatch) == 0 {
		logPlacementFailed(id, width, h)
		return Region{}, false
	}
	if region, ok := pg.allocate(width, h); ok {
		pg.record(id, region, c.currentBatch)
		c.pending = append(c.pending, Update{
			PageIndex: pg.index,
			OriginX:   region.X,
			OriginY:   region.Y,
			Width:     region.Width,
			Height:    region.Height,
			Pixels:    pixels,
		})
		return region, true
	}
	logPlacementFailed(id, width, h)
	return Region{}, false
}

func (c *Cache) pageFor(height int) *page {
	for i, cfg := range c.pageConfigs {
		if cfg.covers(height) {
			return c.pages[i]
		}
	}
	return nil
}

// PageConfig returns the configuration of the page at index, for
// callers (gpurender) that need to compute UVs from a Region.
func (c *Cache) PageConfig(index int) PageConfig {
	return c.pageConfigs[index]
}

// FlushUpdates returns and clears the pending GPU uploads accumulated
// since the last call. Callers must upload these before drawing any
// instance that references their regions.
func (c *Cache) FlushUpdates() []Update {
	updates := c.pending
	c.pending = nil
	return updates
}

// Clear resets every page, discarding all placements and pending
// updates. Apart from Clear, a page's packed shelf space is reclaimed
// only when eviction removes every entry on that page.
func (c *Cache) Clear() {
	for _, pg := range c.pages {
		pg.reset()
	}
	c.pending = nil
	c.currentBatch = 0
}
