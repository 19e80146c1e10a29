package view

import "github.com/noctua-editor/view/internal/text"

// ViewportDown advances the viewport by n screen lines (spec §4.3
// viewport_down). Fails if the viewport already shows the end of the text.
func (v *View) ViewportDown(n int) bool {
	if v.end == v.text.Size() {
		return false
	}
	if n >= v.height {
		v.start = v.end
	} else {
		line := v.g.topline()
		for ; line != nil && n > 0; line, n = line.Next, n-1 {
			v.start += text.ByteOffset(line.Len)
		}
	}
	v.Draw()
	return true
}

// ViewportUp scans backward through the text buffer's reverse iterator,
// counting newlines, to move the viewport up by n screen lines without a
// precomputed line index (spec §4.3 viewport_up). Fails if the viewport
// already starts at offset 0.
func (v *View) ViewportUp(n int) bool {
	if v.start == 0 {
		return false
	}
	max := v.width * v.height
	it := v.text.NewReverseIterator(v.start)
	if !it.Valid() {
		return false
	}
	c := it.Prev()

	off := text.ByteOffset(0)
	// Strip trailing CRLF/LF immediately before the viewport so the
	// landing point is the first byte of a line.
	if c == '\n' && it.Valid() {
		c = it.Prev()
		off++
	}
	if c == '\r' && it.Valid() {
		c = it.Prev()
		off++
	}

	for {
		if c == '\n' {
			n--
			if n == 0 {
				break
			}
		}
		off++
		if int(off) > max {
			break
		}
		if !it.Valid() {
			break
		}
		c = it.Prev()
	}
	if c == '\r' {
		off++
	}

	v.start -= off
	if v.start < 0 {
		v.start = 0
	}
	v.Draw()
	return true
}

// RedrawTop scrolls so the primary cursor's current screen line becomes
// row 0.
func (v *View) RedrawTop() {
	c := v.cursors.primary
	line := c.line
	for cur := v.g.topline(); cur != nil && cur != line; cur = cur.Next {
		v.start += text.ByteOffset(cur.Len)
	}
	v.Draw()
	c.To(c.pos)
}

// RedrawCenter scrolls so the primary cursor lands mid-screen, in two
// passes since sliding changes wrap (spec §4.3 "two-pass to converge").
func (v *View) RedrawCenter() {
	center := v.height / 2
	c := v.cursors.primary
	pos := c.pos
	for i := 0; i < 2; i++ {
		linenr := 0
		line := c.line
		for cur := v.g.topline(); cur != nil && cur != line; cur = cur.Next {
			linenr++
		}
		if linenr < center {
			v.SlideDown(center - linenr)
			continue
		}
		for cur := v.g.topline(); cur != nil && cur != line && linenr > center; cur = cur.Next {
			v.start += text.ByteOffset(cur.Len)
			linenr--
		}
		break
	}
	v.Draw()
	c.To(pos)
}

// RedrawBottom scrolls so the primary cursor's screen line becomes the
// last row.
func (v *View) RedrawBottom() {
	c := v.cursors.primary
	line := c.line
	if line == v.lastline {
		return
	}
	linenr := 0
	pos := c.pos
	for cur := v.g.topline(); cur != nil && cur != line; cur = cur.Next {
		linenr++
	}
	v.SlideDown(v.height - linenr - 1)
	c.To(pos)
}

// SlideUp moves the viewport down by n rows (the text slides up the
// screen); if the cursor falls off, it is pinned to the new top row,
// keeping its column (spec §4.3 slide_up).
func (v *View) SlideUp(n int) text.ByteOffset {
	c := v.cursors.primary
	col := c.col
	if v.ViewportDown(n) {
		if c.line == v.g.topline() {
			v.cursorSet(c, v.g.topline(), col)
		} else {
			c.To(c.pos)
		}
	} else {
		c.ScreenLineDown()
	}
	return c.pos
}

// SlideDown moves the viewport up by n rows (the text slides down the
// screen); if the cursor falls off, it is pinned to the new bottom row,
// keeping its column (spec §4.3 slide_down).
func (v *View) SlideDown(n int) text.ByteOffset {
	c := v.cursors.primary
	col := c.col
	if v.ViewportUp(n) {
		if !v.inViewport(c.pos) {
			v.cursorSet(c, v.lastline, col)
		} else {
			c.To(c.pos)
		}
	} else {
		c.ScreenLineUp()
	}
	return c.pos
}

// ScrollUp moves the viewport up by n rows; the cursor moves with it so
// its relative row is preserved where possible (spec §4.3 scroll_up).
func (v *View) ScrollUp(n int) text.ByteOffset {
	c := v.cursors.primary
	if v.ViewportUp(n) {
		line := c.line
		if line == nil || lineAfter(line, v.lastline) {
			line = v.lastline
		}
		v.cursorSet(c, line, c.col)
	} else {
		c.To(0)
	}
	return c.pos
}

// ScrollDown moves the viewport down by n rows; the cursor moves with it
// so its relative row is preserved where possible (spec §4.3 scroll_down).
func (v *View) ScrollDown(n int) text.ByteOffset {
	c := v.cursors.primary
	if v.ViewportDown(n) {
		line := c.line
		if line == nil || lineBefore(line, v.g.topline()) {
			line = v.g.topline()
		}
		v.cursorSet(c, line, c.col)
	} else {
		c.To(v.text.Size())
	}
	return c.pos
}

// lineAfter reports whether a comes strictly after b in row order.
func lineAfter(a, b *ScreenLine) bool {
	for l := b; l != nil; l = l.Next {
		if l == a {
			return l != b
		}
	}
	return false
}

// lineBefore reports whether a comes strictly before b in row order.
func lineBefore(a, b *ScreenLine) bool {
	for l := b; l != nil; l = l.Prev {
		if l == a {
			return l != b
		}
	}
	return false
}

// ScreenLineGoto moves the primary cursor to screen row n (0-indexed),
// keeping its current column. Returns false if row n does not exist in
// the current viewport. Supplements the distilled motion set with the
// original's row-addressed jump (e.g. an editor's "go to visible line N").
func (v *View) ScreenLineGoto(row int) bool {
	line := v.g.topline()
	for i := 0; i < row && line != nil; i++ {
		line = line.Next
	}
	if line == nil || lineAfter(line, v.lastline) {
		return false
	}
	c := v.cursors.primary
	v.cursorSet(c, line, c.col)
	return true
}
