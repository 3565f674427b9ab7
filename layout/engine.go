package layout

import (
	"github.com/helgev-trap/suzuri/fontstore"
	"github.com/helgev-trap/suzuri/glyph"
)

// engine carries the Stage 1 traversal state across runs and
// characters. A fresh engine is created for every call to Layout.
type engine[T any] struct {
	config Config
	fonts  fontstore.Provider

	lines []*fragment[T]
	line  *fragment[T]
	word  *fragment[T]

	haveCurFont              bool
	curFont                  glyph.FontHandle
	curSizePx                float32
	curAscent, curDescent    float32
	curLineGap               float32
	sawAnyChar               bool
}

// Layout converts text runs and a configuration into a positioned
// glyph layout, using fonts for metrics, glyph lookup, kerning and
// rasterization-independent placement. Runs whose font is unknown to
// fonts, or whose font lacks horizontal line metrics, contribute
// nothing to the result; all other conditions are handled without
// error.
func Layout[T any](data Data[T], config Config, fonts fontstore.Provider) Layout[T] {
	e := &engine[T]{config: config, fonts: fonts}
	for _, el := range data {
		e.runElement(el)
	}
	if e.sawAnyChar {
		e.commitCurrentLine()
	}
	return e.assemble()
}

// Measure is Layout projected to its totals, matching the
// specification's definition of measure as layout(...) restricted to
// its bounds.
func Measure[T any](data Data[T], config Config, fonts fontstore.Provider) (width, height float32) {
	l := Layout(data, config, fonts)
	return l.TotalWidth, l.TotalHeight
}

func (e *engine[T]) runElement(el Element[T]) {
	if _, ok := e.fonts.Font(el.Font); !ok {
		return // MissingFont: the run is dropped silently.
	}
	lm, ok := e.fonts.HorizontalLineMetrics(el.Font, el.SizePx)
	if !ok {
		return // UnsupportedDirection: the run's contribution is skipped.
	}

	for _, r := range el.Content {
		e.sawAnyChar = true
		e.curFont, e.curSizePx = el.Font, el.SizePx
		e.curAscent, e.curDescent, e.curLineGap = lm.Ascent, lm.Descent, lm.LineGap
		e.haveCurFont = true

		switch {
		case r == '\n' || r == ' ' || r == ' ':
			e.commitCurrentLine()
		case r == ' ':
			e.appendSpace(el.Font, el.SizePx, el.Data, lm)
		case r == '\t':
			e.appendTab(el.Font, el.SizePx, lm)
		default:
			e.appendChar(r, el.Font, el.SizePx, el.Data, lm)
		}
	}
}

func (e *engine[T]) lookupID(font glyph.FontHandle, sizePx float32, r rune) (glyph.ID, fontstore.GlyphMetrics) {
	idx := e.fonts.LookupGlyphIndex(font, r)
	m := e.fonts.MetricsIndexed(font, idx, sizePx)
	return glyph.NewID(font, idx, sizePx), m
}

func (e *engine[T]) maxWidth() *float32 { return e.config.MaxWidth }

func (e *engine[T]) appendChar(r rune, font glyph.FontHandle, sizePx float32, data T, lm fontstore.LineMetrics) {
	id, m := e.lookupID(font, sizePx, r)

	switch e.config.WrapStyle {
	case WordWrap:
		if e.word == nil {
			e.word = newFragment[T]()
		}
		kern := e.word.kernAgainst(id, e.fonts, sizePx)
		if e.word.tryAppend(id, m, data, kern, lm.Ascent, lm.Descent, lm.LineGap, e.maxWidth()) {
			return
		}
		// Overflow: the pending word doesn't fit either; commit the
		// line (if any) and the overflowing word as separate lines, in
		// reading order, then start a fresh word with just this glyph.
		if !e.line.empty() {
			e.lines = append(e.lines, e.line)
		}
		if !e.word.empty() {
			e.lines = append(e.lines, e.word)
		}
		e.line = nil
		e.word = newFragment[T]()
		e.word.append(id, m, data, 0, lm.Ascent, lm.Descent, lm.LineGap)

	case CharWrap:
		if e.line == nil {
			e.line = newFragment[T]()
		}
		kern := e.line.kernAgainst(id, e.fonts, sizePx)
		if e.line.tryAppend(id, m, data, kern, lm.Ascent, lm.Descent, lm.LineGap, e.maxWidth()) {
			return
		}
		if !e.line.empty() {
			e.lines = append(e.lines, e.line)
		}
		e.line = newFragment[T]()
		e.line.append(id, m, data, 0, lm.Ascent, lm.Descent, lm.LineGap)

	default: // NoWrap
		if e.line == nil {
			e.line = newFragment[T]()
		}
		kern := e.line.kernAgainst(id, e.fonts, sizePx)
		e.line.append(id, m, data, kern, lm.Ascent, lm.Descent, lm.LineGap)
	}
}

func (e *engine[T]) appendSpace(font glyph.FontHandle, sizePx float32, data T, lm fontstore.LineMetrics) {
	if e.config.WrapStyle == WordWrap {
		e.foldWordIntoLine(font, sizePx)
	}
	id, m := e.lookupID(font, sizePx, ' ')
	if e.line == nil {
		e.line = newFragment[T]()
	}
	kern := e.line.kernAgainst(id, e.fonts, sizePx)
	e.line.append(id, m, data, kern, lm.Ascent, lm.Descent, lm.LineGap)
}

func (e *engine[T]) appendTab(font glyph.FontHandle, sizePx float32, lm fontstore.LineMetrics) {
	e.foldWordIntoLine(font, sizePx) // no-op outside WordWrap, where word is never populated.

	spaceIdx := e.fonts.LookupGlyphIndex(font, ' ')
	spaceMetrics := e.fonts.MetricsIndexed(font, spaceIdx, sizePx)
	tabSize := spaceMetrics.AdvanceWidth * e.config.TabSizeInSpaces

	if e.line == nil {
		e.line = newFragment[T]()
	}
	e.line.addTab(tabSize, lm.Ascent, lm.Descent, lm.LineGap)
}

// foldWordIntoLine attempts to concatenate the pending word onto the
// current line within the configured max width. If it doesn't fit, the
// current line is committed as-is and the pending word is promoted to
// become the new current line — it keeps accumulating whatever follows
// (more characters, a later fold) rather than being closed out
// immediately, since there may be more text before the next break.
func (e *engine[T]) foldWordIntoLine(font glyph.FontHandle, sizePx float32) {
	if e.word.empty() {
		return
	}
	kern := e.line.kernAgainst(e.word.firstKernID(), e.fonts, sizePx)
	if tryConcatInLength(&e.line, e.word, kern, e.maxWidth()) {
		e.word = nil
		return
	}
	if !e.line.empty() {
		e.lines = append(e.lines, e.line)
	}
	e.line = e.word
	e.word = nil
}

// commitCurrentLine finishes the line under construction: it folds any
// pending word into the line (within max width), commits whatever
// fragments remain, and — if nothing was accumulated at all — emits an
// empty line carrying the current font's metrics so blank lines survive
// into the result.
func (e *engine[T]) commitCurrentLine() {
	if !e.word.empty() {
		kern := e.line.kernAgainst(e.word.firstKernID(), e.fonts, e.curSizePx)
		if tryConcatInLength(&e.line, e.word, kern, e.maxWidth()) {
			e.word = nil
		}
	}

	switch {
	case !e.line.empty() && !e.word.empty():
		e.lines = append(e.lines, e.line, e.word)
	case !e.line.empty():
		e.lines = append(e.lines, e.line)
	case !e.word.empty():
		e.lines = append(e.lines, e.word)
	default:
		empty := newFragment[T]()
		if e.haveCurFont {
			empty.mergeLineMetrics(e.curAscent, e.curDescent, e.curLineGap)
		}
		e.lines = append(e.lines, empty)
	}
	e.line = nil
	e.word = nil
}

// firstKernID returns the identity of the fragment's first glyph, used
// to decide whether kerning applies across a fold boundary. Called
// only when the fragment is known non-empty.
func (f *fragment[T]) firstKernID() glyph.ID {
	return f.firstID
}
