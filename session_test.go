package suzuri

import (
	"testing"

	"github.com/helgev-trap/suzuri/atlas"
	"github.com/helgev-trap/suzuri/cpucache"
	"github.com/helgev-trap/suzuri/cpurender"
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
	"github.com/helgev-trap/suzuri/gpurender"
	"github.com/helgev-trap/suzuri/layout"
)

type stubProvider struct{}

func (stubProvider) Font(h glyph.FontHandle) (fontstore.Ref, bool) { return h, true }
func (stubProvider) HorizontalLineMetrics(glyph.FontHandle, float32) (fontstore.LineMetrics, bool) {
	return fontstore.LineMetrics{Ascent: 10, Descent: -2, LineGap: 1}, true
}
func (stubProvider) LookupGlyphIndex(_ glyph.FontHandle, r rune) uint16 { return uint16(r) }
func (stubProvider) MetricsIndexed(glyph.FontHandle, uint16, float32) fontstore.GlyphMetrics {
	return fontstore.GlyphMetrics{Width: 4, Height: 4, AdvanceWidth: 5}
}
func (stubProvider) HorizontalKernIndexed(glyph.FontHandle, uint16, uint16, float32) (float32, bool) {
	return 0, false
}
func (stubProvider) RasterizeIndexed(glyph.FontHandle, uint16, float32) (fontstore.GlyphMetrics, []byte) {
	return fontstore.GlyphMetrics{Width: 4, Height: 4, AdvanceWidth: 5}, make([]byte, 16)
}

func TestCPURenderNoOpsBeforeInit(t *testing.T) {
	sess := New(stubProvider{})
	lay := Layout(sess, layout.Data[int]{{Font: 1, SizePx: 16, Content: "A"}}, layout.DefaultConfig())

	called := false
	CPURender(sess, lay, cpurender.Bounds{Width: 100, Height: 100}, func(x, y int, c byte, d int) { called = true })
	if called {
		t.Error("expected CPURender to no-op before CPUInit")
	}
}

func TestGPURenderNoOpsBeforeInit(t *testing.T) {
	sess := New(stubProvider{})
	lay := Layout(sess, layout.Data[int]{{Font: 1, SizePx: 16, Content: "A"}}, layout.DefaultConfig())

	called := false
	GPURender(sess, lay,
		func([]atlas.Update) { called = true },
		func([]gpurender.GlyphInstance[int]) { called = true },
		func(gpurender.StandaloneGlyph[int]) { called = true },
	)
	if called {
		t.Error("expected GPURender to no-op before GPUInit")
	}
}

func TestCPUInitThenCPURenderInvokesCallback(t *testing.T) {
	sess := New(stubProvider{})
	sess.CPUInit([]cpucache.RangeConfig{{MinSize: 0, MaxSize: 100, Capacity: 8}})

	lay := Layout(sess, layout.Data[int]{{Font: 1, SizePx: 16, Content: "A"}}, layout.DefaultConfig())

	count := 0
	CPURender(sess, lay, cpurender.Bounds{Width: 100, Height: 100}, func(x, y int, c byte, d int) { count++ })
	if count == 0 {
		t.Error("expected at least one pixel callback after CPUInit")
	}
	if sess.Kind() != KindCPU {
		t.Errorf("Kind() = %v, want KindCPU", sess.Kind())
	}
}

func TestGPUInitThenGPURenderInvokesCallbacks(t *testing.T) {
	sess := New(stubProvider{})
	sess.GPUInit([]atlas.PageConfig{{TextureSize: 256, MinGlyphHeight: 0, MaxGlyphHeight: 64}})

	lay := Layout(sess, layout.Data[int]{{Font: 1, SizePx: 16, Content: "A"}}, layout.DefaultConfig())

	instances := 0
	GPURender(sess, lay,
		func([]atlas.Update) {},
		func(in []gpurender.GlyphInstance[int]) { instances += len(in) },
		func(gpurender.StandaloneGlyph[int]) {},
	)
	if instances == 0 {
		t.Error("expected at least one instance after GPUInit")
	}
	if sess.Kind() != KindGPU {
		t.Errorf("Kind() = %v, want KindGPU", sess.Kind())
	}
}

func TestCPUCacheClearNoOpsBeforeInit(t *testing.T) {
	sess := New(stubProvider{})
	sess.CPUCacheClear() // must not panic
}

func TestGPUCacheClearNoOpsBeforeInit(t *testing.T) {
	sess := New(stubProvider{})
	sess.GPUCacheClear() // must not panic
}
