package layout

// assemble runs Stage 2: it turns the committed fragment list into a
// Layout by computing each line's height and baseline, the block's
// vertical origin, and each line's horizontal offset, then writing
// final absolute coordinates onto every glyph.
func (e *engine[T]) assemble() Layout[T] {
	lines := make([]Line[T], len(e.lines))
	var totalWidth float32

	for i, frag := range e.lines {
		contentHeight := frag.maxAscent - frag.maxDescent // descent <= 0
		rawLineHeight := contentHeight + frag.maxLineGap
		lineHeight := rawLineHeight * e.config.LineHeightScale

		lines[i] = Line[T]{
			LineHeight: lineHeight,
			LineWidth:  frag.instanceLength,
			Glyphs:     frag.glyphs,
		}
		if frag.instanceLength > totalWidth {
			totalWidth = frag.instanceLength
		}
	}

	var totalHeight float32
	for _, l := range lines {
		totalHeight += l.LineHeight
	}

	layoutHeight := totalHeight
	if e.config.MaxHeight != nil {
		layoutHeight = *e.config.MaxHeight
	}
	var blockYStart float32
	switch e.config.VerticalAlign {
	case Middle:
		blockYStart = (layoutHeight - totalHeight) / 2
	case Bottom:
		blockYStart = layoutHeight - totalHeight
	default: // Top
		blockYStart = 0
	}

	containerWidth := totalWidth
	if e.config.MaxWidth != nil {
		containerWidth = *e.config.MaxWidth
	}

	cursorY := blockYStart
	for i, frag := range e.lines {
		line := &lines[i]
		line.Top = cursorY
		line.Bottom = cursorY + line.LineHeight

		baseline := cursorY + line.LineHeight/2 - (frag.maxAscent+frag.maxDescent)/2

		var hOffset float32
		switch e.config.HorizontalAlign {
		case Center:
			hOffset = (containerWidth - line.LineWidth) / 2
		case Right:
			hOffset = containerWidth - line.LineWidth
		default: // Left
			hOffset = 0
		}

		for gi := range line.Glyphs {
			g := &line.Glyphs[gi]
			// g.X currently holds the pen origin computed in Stage 1;
			// the stored position is the bitmap's top-left corner, so
			// the glyph's own xmin offset is folded in here.
			g.X = g.X + float32(g.Metrics.XMin) + hOffset
			g.Y = baseline - float32(g.Metrics.YMin+g.Metrics.Height)
		}

		cursorY = line.Bottom
	}

	return Layout[T]{
		Config:      e.config,
		TotalWidth:  totalWidth,
		TotalHeight: totalHeight,
		Lines:       lines,
	}
}
