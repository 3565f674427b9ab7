package layout

import (
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
)

// fragment is the Stage 1 accumulator: a partial line or word under
// construction. Glyphs are stored in reading order with fragment-local
// x coordinates (relative to the fragment's own origin); Stage 2
// translates them into absolute coordinates.
type fragment[T any] struct {
	glyphs []GlyphPosition[T]

	maxAscent   float32
	maxDescent  float32 // minimum (most negative) descent seen, despite the name
	maxLineGap  float32

	nextOriginX    float32
	instanceLength float32

	firstID  glyph.ID
	hasFirst bool
	lastID   glyph.ID
	hasLast  bool
}

func newFragment[T any]() *fragment[T] {
	return &fragment[T]{}
}

func (f *fragment[T]) empty() bool {
	return f == nil || len(f.glyphs) == 0
}

// mergeLineMetrics folds another fragment's (or run's) per-size metrics
// into this fragment's running maxima. Ascent and line gap take the
// larger value; descent takes the smaller (more negative) one, since a
// deeper descender, not a shallower one, determines a line's height.
func (f *fragment[T]) mergeLineMetrics(ascent, descent, lineGap float32) {
	if ascent > f.maxAscent {
		f.maxAscent = ascent
	}
	if descent < f.maxDescent {
		f.maxDescent = descent
	}
	if lineGap > f.maxLineGap {
		f.maxLineGap = lineGap
	}
}

// rightEdge computes the visual rightmost pixel x reached by a glyph
// placed at x with the given metrics.
func rightEdge(x float32, m fontstore.GlyphMetrics) float32 {
	return x + float32(m.XMin) + float32(m.Width)
}

// append unconditionally places a glyph at the fragment's current
// cursor plus kern, advances the cursor by the glyph's advance width,
// and updates the fragment's maxima and instance length.
func (f *fragment[T]) append(id glyph.ID, m fontstore.GlyphMetrics, data T, kern, ascent, descent, lineGap float32) {
	x := f.nextOriginX + kern
	f.glyphs = append(f.glyphs, GlyphPosition[T]{ID: id, Metrics: m, X: x, Data: data})

	if edge := rightEdge(x, m); edge > f.instanceLength {
		f.instanceLength = edge
	}
	f.nextOriginX = x + m.AdvanceWidth
	f.mergeLineMetrics(ascent, descent, lineGap)

	if !f.hasFirst {
		f.firstID = id
		f.hasFirst = true
	}
	f.lastID = id
	f.hasLast = true
}

// tryAppend behaves like append but, when maxWidth is non-nil, only
// commits the change if the resulting instance length stays within it.
// On refusal the fragment is left completely unchanged.
func (f *fragment[T]) tryAppend(id glyph.ID, m fontstore.GlyphMetrics, data T, kern, ascent, descent, lineGap float32, maxWidth *float32) bool {
	if maxWidth == nil {
		f.append(id, m, data, kern, ascent, descent, lineGap)
		return true
	}
	x := f.nextOriginX + kern
	candidate := f.instanceLength
	if edge := rightEdge(x, m); edge > candidate {
		candidate = edge
	}
	if candidate > *maxWidth {
		return false
	}
	f.append(id, m, data, kern, ascent, descent, lineGap)
	return true
}

// addTab advances the cursor and instance length by tabSize without
// placing a glyph. It also breaks the kerning chain: the character
// following a tab must not kern against whatever preceded it.
func (f *fragment[T]) addTab(tabSize, ascent, descent, lineGap float32) {
	f.nextOriginX += tabSize
	f.instanceLength += tabSize
	f.mergeLineMetrics(ascent, descent, lineGap)
	f.hasLast = false
}

// kernAgainst returns the horizontal kerning adjustment that should be
// applied before placing id after this fragment's last glyph, or 0 if
// the fonts differ, sizes differ, or the font defines no such pair.
func (f *fragment[T]) kernAgainst(id glyph.ID, fonts fontstore.Provider, sizePx float32) float32 {
	if f == nil || !f.hasLast || !f.lastID.SameFontAndSize(id) {
		return 0
	}
	if k, ok := fonts.HorizontalKernIndexed(f.lastID.Font, f.lastID.GlyphIndex, id.GlyphIndex, sizePx); ok {
		return k
	}
	return 0
}

// tryConcatInLength folds word onto *linePtr, shifting word's glyphs by
// the line's cursor plus kern. If *linePtr is nil or empty, word is
// simply promoted to become the line (there is nothing to overflow).
// Otherwise the fold is committed only if the combined instance length
// stays within maxWidth; on refusal neither fragment is modified.
func tryConcatInLength[T any](linePtr **fragment[T], word *fragment[T], kern float32, maxWidth *float32) bool {
	if word.empty() {
		return true
	}
	line := *linePtr
	if line.empty() {
		*linePtr = word
		return true
	}

	shift := line.nextOriginX + kern
	candidate := line.instanceLength
	if v := shift + word.instanceLength; v > candidate {
		candidate = v
	}
	if maxWidth != nil && candidate > *maxWidth {
		return false
	}

	for i := range word.glyphs {
		word.glyphs[i].X += shift
	}
	line.glyphs = append(line.glyphs, word.glyphs...)
	line.nextOriginX = shift + word.nextOriginX
	line.instanceLength = candidate
	line.mergeLineMetrics(word.maxAscent, word.maxDescent, word.maxLineGap)
	line.lastID = word.lastID
	line.hasLast = word.hasLast
	return true
}
