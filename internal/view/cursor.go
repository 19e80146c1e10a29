package view

import "github.com/noctua-editor/view/internal/text"

// Cursor is a single insertion point within a View (spec data model §3).
// Pos/Row/Col/Line are cached projections, valid as of the most recent
// draw; Mark is the authoritative position and survives edits the cursor
// did not cause.
type Cursor struct {
	view *View

	pos     text.ByteOffset
	row     int
	col     int
	lastcol int
	line    *ScreenLine

	mark text.Mark
	sel  *Selection

	lastSelAnchor text.Mark
	lastSelCursor text.Mark

	reg Register

	prev, next *Cursor
}

// Pos returns the cursor's byte offset as of the last projection.
func (c *Cursor) Pos() text.ByteOffset { return c.pos }

// Row and Col return the cursor's screen-grid coordinates as of the last
// projection.
func (c *Cursor) Row() int { return c.row }
func (c *Cursor) Col() int { return c.col }

// LastCol returns the remembered column used when vertical motion crosses
// a shorter line.
func (c *Cursor) LastCol() int { return c.lastcol }

// Line returns the screen line the cursor currently projects onto.
func (c *Cursor) Line() *ScreenLine { return c.line }

// Selection returns the selection following this cursor, or nil.
func (c *Cursor) Selection() *Selection { return c.sel }

// Register returns the cursor's private clipboard collaborator.
func (c *Cursor) Register() Register { return c.reg }

// SetRegister installs the cursor's private clipboard collaborator.
func (c *Cursor) SetRegister(r Register) { c.reg = r }

// To is the single write point for cursor position (spec §4.4 cursor_to):
// rebinds the mark, resets lastcol on an actual move, updates the owning
// selection's endpoints, reprojects to grid coordinates, and redraws.
func (c *Cursor) To(pos text.ByteOffset) {
	v := c.view
	old := c.pos
	c.mark = v.text.MarkSet(pos)
	if pos != old {
		c.lastcol = 0
	}
	c.pos = pos
	if c.sel != nil {
		c.syncSelectionOrientation(pos)
	}
	v.projectCursor(c)
	v.Draw()
}

// moveTo is like To but never clears lastcol, used by the column mapper
// (cursorSet) which manages lastcol itself.
func (c *Cursor) moveTo(pos text.ByteOffset) {
	saved := c.lastcol
	c.To(pos)
	c.lastcol = saved
}

// ViewportTo is the viewport-aware wrapper (spec §4.4 cursors_to): for the
// primary cursor, slides the viewport so pos becomes visible before moving,
// and applies the end-of-file recenter policy.
func (c *Cursor) ViewportTo(pos text.ByteOffset) {
	v := c.view
	if c == v.cursors.primary && pos == v.text.Size() && v.scrollToEnd == ScrollToEndMiddle && !v.showsEnd() {
		// Do not display an empty screen when showing the end of the
		// file: jump the viewport's start to pos and scroll up half a
		// screen, taking this branch instead of the generic
		// bring-into-view logic below (original's dedicated pos==max
		// case in view_cursors_to).
		v.SetStart(pos)
		v.ViewportUp(v.height / 2)
		c.To(pos)
		// Without enough newlines above pos, ViewportUp backs off a full
		// screen of bytes; step start forward a row at a time until the
		// cursor is on screen and no lower than mid-screen.
		for !v.inViewport(pos) || c.row > v.height/2 {
			top := v.g.topline()
			if top == nil || top.Len == 0 {
				break
			}
			v.SetStart(v.start + text.ByteOffset(top.Len))
		}
		return
	}
	if c == v.cursors.primary && !v.inViewport(pos) {
		v.SetStart(v.text.LineBegin(pos))
		if !v.inViewport(pos) {
			v.SetStart(pos)
		}
	}
	c.To(pos)
	if c == v.cursors.primary && v.withinScrollMargin(pos) {
		v.RedrawCenter()
	}
}

// ScrollTo steps the viewport one screen row at a time until pos is in
// range, then calls ViewportTo (spec §4.4 cursors_scroll_to).
func (c *Cursor) ScrollTo(pos text.ByteOffset) {
	v := c.view
	for !v.inViewport(pos) {
		if pos < v.start {
			if !v.ViewportUp(1) {
				break
			}
		} else {
			if !v.ViewportDown(1) {
				break
			}
		}
	}
	c.ViewportTo(pos)
}

// ScreenLineUp moves the cursor to the same column on the previous screen
// row, scrolling the viewport by one row if there is no previous row.
func (c *Cursor) ScreenLineUp() bool {
	v := c.view
	lastcol := c.lastcol
	if lastcol == 0 {
		lastcol = c.col
	}
	if c.line == nil {
		return false
	}
	if c.line.Prev == nil {
		if !v.ViewportUp(1) {
			return false
		}
	}
	if c.line == nil || c.line.Prev == nil {
		return false
	}
	v.cursorSet(c, c.line.Prev, lastcol)
	c.lastcol = lastcol
	return true
}

// ScreenLineDown is the downward counterpart of ScreenLineUp.
func (c *Cursor) ScreenLineDown() bool {
	v := c.view
	lastcol := c.lastcol
	if lastcol == 0 {
		lastcol = c.col
	}
	if c.line == nil {
		return false
	}
	if c.line.Next == nil {
		if !v.ViewportDown(1) {
			return false
		}
	}
	if c.line == nil || c.line.Next == nil {
		return false
	}
	v.cursorSet(c, c.line.Next, lastcol)
	c.lastcol = lastcol
	return true
}

// LineUp moves to the previous logical line, delegating to ScreenLineUp
// when the current row is itself a soft-wrap continuation of the line
// above (spec §4.4 line_up/down).
func (c *Cursor) LineUp() bool {
	v := c.view
	if c.line != nil && c.line.Prev != nil && c.line.Prev.Lineno == c.line.Lineno {
		return c.ScreenLineUp()
	}
	pos := v.text.LineUp(c.pos)
	if pos == c.pos {
		return false
	}
	c.ViewportTo(pos)
	return true
}

// LineDown is the downward counterpart of LineUp.
func (c *Cursor) LineDown() bool {
	v := c.view
	if c.line != nil && c.line.Next != nil && c.line.Next.Lineno == c.line.Lineno {
		return c.ScreenLineDown()
	}
	pos := v.text.LineDown(c.pos)
	if pos == c.pos {
		return false
	}
	c.ViewportTo(pos)
	return true
}

// CursorSet owns every cursor attached to a View; it always contains at
// least one (spec §3 invariant), tracked as primary.
type CursorSet struct {
	view    *View
	head    *Cursor
	primary *Cursor
}

func newCursorSet(v *View) *CursorSet {
	return &CursorSet{view: v}
}

// New allocates a cursor at offset 0, pushes it to the head of the list,
// and makes it primary (spec §4.4 cursors_new).
func (cs *CursorSet) New() *Cursor {
	c := &Cursor{view: cs.view}
	c.mark = cs.view.text.MarkSet(0)
	c.next = cs.head
	if cs.head != nil {
		cs.head.prev = c
	}
	cs.head = c
	cs.primary = c
	return c
}

// Dispose removes c from the set unless it is the last remaining cursor,
// in which case it is a no-op (spec §4.4 cursors_dispose). Frees c's
// owning selection, if any, and reassigns primary when necessary.
func (cs *CursorSet) Dispose(c *Cursor) bool {
	if c.prev == nil && c.next == nil {
		return false
	}
	if c.sel != nil {
		cs.view.selectionsOrInit().free(c.sel)
	}
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		cs.head = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	if cs.primary == c {
		if c.next != nil {
			cs.primary = c.next
		} else {
			cs.primary = c.prev
		}
	}
	c.prev, c.next = nil, nil
	c.reg = nil
	return true
}

// Primary returns the cursor guaranteed to be visible in the viewport.
func (cs *CursorSet) Primary() *Cursor { return cs.primary }

// SetPrimary makes c the primary cursor.
func (cs *CursorSet) SetPrimary(c *Cursor) { cs.primary = c }

// All iterates every cursor in the set in no particular order, stopping
// early if fn returns false. Safe to call Dispose on the current cursor
// from within fn.
func (cs *CursorSet) All(fn func(*Cursor) bool) {
	for c := cs.head; c != nil; {
		next := c.next
		if !fn(c) {
			return
		}
		c = next
	}
}

// Count returns the number of cursors in the set.
func (cs *CursorSet) Count() int {
	n := 0
	cs.All(func(*Cursor) bool { n++; return true })
	return n
}
