package suzuri

import (
	"sync"

	"github.com/helgev-trap/suzuri/atlas"
	"github.com/helgev-trap/suzuri/cpucache"
	"github.com/helgev-trap/suzuri/cpurender"
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/gpurender"
	"github.com/helgev-trap/suzuri/layout"
)

// RendererKind reports which renderer(s) a Session currently has
// initialized. A Session can hold both at once; this just reflects
// what CPUInit/GPUInit have been called.
type RendererKind int

const (
	KindNone RendererKind = iota
	KindCPU
	KindGPU
	KindBoth
)

// Session is the single-threaded-per-call entry point wrapping a font
// store and the CPU/GPU rendering pipelines. Every exported method and
// function taking a *Session acquires the session's lock for its full
// extent; there is no cancellation or suspension point, so callbacks
// passed into a render call must not call back into the same Session.
type Session struct {
	mu    sync.Mutex
	fonts fontstore.Provider

	cpuCache *cpucache.Cache
	cpu      *cpurender.Renderer

	gpuCache *atlas.Cache
	gpu      *gpurender.Renderer
}

// New builds a Session over fonts. Neither rendering path is
// initialized; call CPUInit and/or GPUInit before rendering.
func New(fonts fontstore.Provider) *Session {
	return &Session{fonts: fonts}
}

// Kind reports which renderers are currently initialized.
func (s *Session) Kind() RendererKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kindLocked()
}

func (s *Session) kindLocked() RendererKind {
	switch {
	case s.cpu != nil && s.gpu != nil:
		return KindBoth
	case s.cpu != nil:
		return KindCPU
	case s.gpu != nil:
		return KindGPU
	default:
		return KindNone
	}
}

// CPUInit (re)creates the CPU renderer and its glyph cache from ranges.
// Any previously cached bitmaps are dropped, matching the original
// font system's "drop the previous resource first" init ordering.
func (s *Session) CPUInit(ranges []cpucache.RangeConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cpu = nil
	s.cpuCache = cpucache.New(s.fonts, ranges)
	s.cpu = cpurender.New(s.cpuCache)
}

// CPUCacheClear drops every cached bitmap. It warns and no-ops if
// CPUInit has not been called yet.
func (s *Session) CPUCacheClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cpuCache == nil {
		Logger().Warn("CPU cache clear called before CPU renderer initialized")
		return
	}
	s.cpuCache.Clear()
}

// GPUInit (re)creates the GPU atlas cache and renderer from pageConfigs.
func (s *Session) GPUInit(pageConfigs []atlas.PageConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gpu = nil
	s.gpuCache = atlas.New(pageConfigs)
	s.gpu = gpurender.New(s.gpuCache, s.fonts)
}

// GPUCacheClear drops every atlas page's contents. It warns and no-ops
// if GPUInit has not been called yet.
func (s *Session) GPUCacheClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gpuCache == nil {
		Logger().Warn("GPU cache clear called before GPU renderer initialized")
		return
	}
	s.gpuCache.Clear()
}

// Layout lays out data against config using sess's font store. It is a
// package-level function rather than a method because Go methods
// cannot add type parameters beyond the receiver's.
func Layout[T any](sess *Session, data layout.Data[T], config layout.Config) layout.Layout[T] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return layout.Layout(data, config, sess.fonts)
}

// CPURender rasterizes lay into bounds via sess's CPU renderer, calling
// fn once per visible pixel. It warns and no-ops if CPUInit has not
// been called yet.
func CPURender[T any](sess *Session, lay layout.Layout[T], bounds cpurender.Bounds, fn cpurender.PixelFunc[T]) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.cpu == nil {
		Logger().Warn("render called before CPU renderer initialized")
		return
	}
	cpurender.Render(sess.cpu, lay, bounds, fn)
}

// GPURender walks lay via sess's GPU renderer and atlas cache, emitting
// atlas updates, instance batches, and standalone glyphs through the
// given sinks. It warns and no-ops if GPUInit has not been called yet.
func GPURender[T any](sess *Session, lay layout.Layout[T], onAtlasUpdate gpurender.AtlasUpdateFunc, onInstances gpurender.InstanceFunc[T], onStandalone gpurender.StandaloneFunc[T]) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.gpu == nil {
		Logger().Warn("render called before GPU renderer initialized")
		return
	}
	gpurender.Render(sess.gpu, lay, onAtlasUpdate, onInstances, onStandalone)
}
