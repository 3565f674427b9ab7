// Package suzuri implements a text layout and glyph rendering engine.
//
// # Overview
//
// suzuri turns runs of styled text into positioned glyphs, then renders
// those glyphs either to a caller-owned pixel buffer (CPU path) or to a
// set of atlas-backed GPU draw instances (GPU path). Font parsing and
// shaping are not part of the core: callers supply a [fontstore.Provider]
// implementation, such as the one in suzuri/fontstore/gotext.
//
// # Quick Start
//
//	import (
//		"github.com/helgev-trap/suzuri"
//		"github.com/helgev-trap/suzuri/cpurender"
//		"github.com/helgev-trap/suzuri/fontstore/gotext"
//		"github.com/helgev-trap/suzuri/layout"
//	)
//
//	fonts := gotext.New()
//	handle, _ := fonts.LoadFile("NotoSans-Regular.ttf")
//
//	sess := suzuri.New(fonts)
//	sess.CPUInit(nil)
//
//	data := layout.Data[int]{{Font: handle, SizePx: 16, Content: "hello"}}
//	lay := suzuri.Layout(sess, data, layout.DefaultConfig())
//	suzuri.CPURender(sess, lay, cpurender.Bounds{Width: 800, Height: 600},
//		func(x, y int, coverage uint8, userData int) {
//			// blend coverage into the destination at (x, y)
//		})
//
// Layout and the render entry points are package-level generic
// functions rather than methods on [Session], since Go methods cannot
// introduce type parameters beyond the receiver's.
//
// # Architecture
//
// The module is organized into independently usable packages:
//   - glyph: glyph identity and rasterized glyph data.
//   - fontstore: the font collaborator interface.
//   - layout: the two-stage layout engine and its data model.
//   - cpucache: a size-bounded LRU cache of rasterized glyphs.
//   - cpurender: per-pixel CPU rendering driven by the cache.
//   - atlas: GPU texture atlas management with shelf packing.
//   - gpurender: batches layout glyphs into atlas-backed draw instances.
//
// The root package wraps these behind a single-threaded [Session], the
// concurrency model described in its own doc comment.
package suzuri
