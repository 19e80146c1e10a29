package view

import "github.com/noctua-editor/view/internal/text"

// Selection is an anchor/cursor mark pair delimiting a half-open range
// whose order encodes direction (spec data model §3). Selections are
// standalone records owned by the view's selection set; at most one cursor
// back-references one via Cursor.sel. There is no reverse link, matching
// spec §4.5 ("the cursor list is scanned on selection-free to clear
// dangling pointers").
type Selection struct {
	view   *View
	anchor text.Mark
	cursor text.Mark

	prev, next *Selection
}

// Get returns the selection's byte range, normalized regardless of
// direction. Returns a zero Range with Len()==0 if either endpoint has
// been invalidated by a deletion.
func (s *Selection) Get() text.Range {
	if s == nil {
		return text.RangeEmpty(0)
	}
	a := s.view.text.MarkGet(s.anchor)
	c := s.view.text.MarkGet(s.cursor)
	if a == text.EPOS || c == text.EPOS {
		return text.RangeEmpty(0)
	}
	return text.NewRange(a, c)
}

// Set replaces the selection's range, preserving its existing direction:
// a leftward selection maps r.end->anchor, r.start->cursor; a rightward one
// maps the reverse (spec §4.5 "set").
func (s *Selection) Set(r text.Range) {
	a := s.view.text.MarkGet(s.anchor)
	c := s.view.text.MarkGet(s.cursor)
	leftExtending := a > c
	if leftExtending {
		s.anchor = s.view.text.MarkSet(r.End)
		s.cursor = s.view.text.MarkSet(r.Start)
	} else {
		s.anchor = s.view.text.MarkSet(r.Start)
		s.cursor = s.view.text.MarkSet(r.End)
	}
	s.view.Draw()
}

// Swap exchanges anchor and cursor.
func (s *Selection) Swap() {
	s.anchor, s.cursor = s.cursor, s.anchor
}

// syncSelectionOrientation is cursor_to's selection bookkeeping (spec
// §4.5 "Orientation flip"): when the motion crosses the anchor, the anchor
// shifts by one character so the visual selection never collapses, then
// the cursor endpoint is extended one character past pos when the
// selection is rightward so the glyph at pos is included.
func (c *Cursor) syncSelectionOrientation(pos text.ByteOffset) {
	v := c.view
	s := c.sel
	anchor := v.text.MarkGet(s.anchor)
	cursor := v.text.MarkGet(s.cursor)
	if anchor == text.EPOS || cursor == text.EPOS {
		return
	}

	switch {
	case pos < anchor && anchor < cursor:
		// right-extending -> left-extending
		anchor = v.text.CharNext(anchor)
		s.anchor = v.text.MarkSet(anchor)
	case cursor < anchor && anchor <= pos:
		// left-extending -> right-extending
		anchor = v.text.CharPrev(anchor)
		s.anchor = v.text.MarkSet(anchor)
	}

	end := pos
	if anchor <= pos {
		end = v.text.CharNext(pos)
	}
	s.cursor = v.text.MarkSet(end)
}

// SyncSelection moves c to follow its selection's cursor endpoint, landing one
// character before it when the selection extends rightward so the cursor
// visually sits on the last selected character (spec §4.5 "sync").
func (c *Cursor) SyncSelection() {
	if c.sel == nil {
		return
	}
	v := c.view
	anchor := v.text.MarkGet(c.sel.anchor)
	cursor := v.text.MarkGet(c.sel.cursor)
	if anchor == text.EPOS || cursor == text.EPOS {
		return
	}
	if anchor < cursor {
		cursor = v.text.CharPrev(cursor)
	}
	c.ViewportTo(cursor)
}

// SelectionStart allocates a one-character-wide rightward selection at c's
// current position and attaches it to c (spec §4.5 "Start").
func (c *Cursor) SelectionStart() *Selection {
	if c.sel != nil {
		return c.sel
	}
	pos := c.pos
	s := c.view.selectionsOrInit().new()
	s.anchor = c.view.text.MarkSet(pos)
	s.cursor = c.view.text.MarkSet(c.view.text.CharNext(pos))
	c.sel = s
	c.view.Draw()
	return s
}

// SelectionRestore rebuilds c's selection from its last-freed endpoints, if
// they still describe a valid range.
func (c *Cursor) SelectionRestore() {
	if c.sel != nil {
		return
	}
	v := c.view
	r := text.NewRange(v.text.MarkGet(c.lastSelAnchor), v.text.MarkGet(c.lastSelCursor))
	if v.text.MarkGet(c.lastSelAnchor) == text.EPOS || v.text.MarkGet(c.lastSelCursor) == text.EPOS {
		return
	}
	s := v.selectionsOrInit().new()
	s.Set(r)
	c.sel = s
	c.SyncSelection()
	v.Draw()
}

// SelectionStop detaches c's selection without freeing it; the selection
// remains registered and still renders, but no cursor follows it.
func (c *Cursor) SelectionStop() {
	c.sel = nil
}

// SelectionClear frees c's selection outright.
func (c *Cursor) SelectionClear() {
	if c.sel == nil {
		return
	}
	c.view.selectionsOrInit().free(c.sel)
	c.view.Draw()
}

// SelectionSwap exchanges c's selection's anchor/cursor and resyncs c to
// the new cursor endpoint (spec §4.5 "Swap").
func (c *Cursor) SelectionSwap() {
	if c.sel == nil {
		return
	}
	c.sel.Swap()
	c.SyncSelection()
}

// selectionList is the view's free-standing selection registry, iterated
// during draw's projection step. Ownership of the Selection a cursor is
// following is shared: the list owns the lifetime, the cursor merely
// references it.
type selectionList struct {
	view *View
	head *Selection
}

func newSelectionList(v *View) *selectionList {
	return &selectionList{view: v}
}

func (l *selectionList) new() *Selection {
	s := &Selection{view: l.view}
	s.next = l.head
	if l.head != nil {
		l.head.prev = s
	}
	l.head = s
	return s
}

// free unlinks s and, per spec §4.5, scans the cursor list so any cursor
// that was following s has its last-known endpoints preserved for a later
// SelectionRestore.
func (l *selectionList) free(s *Selection) {
	if s == nil {
		return
	}
	if s.prev != nil {
		s.prev.next = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	}
	if l.head == s {
		l.head = s.next
	}
	l.view.cursors.All(func(c *Cursor) bool {
		if c.sel == s {
			c.lastSelAnchor = s.anchor
			c.lastSelCursor = s.cursor
			c.sel = nil
		}
		return true
	})
}

// Clear frees every selection in the set.
func (l *selectionList) Clear() {
	for l.head != nil {
		l.free(l.head)
	}
	l.view.Draw()
}

// All iterates every selection in the set in no particular order.
func (l *selectionList) All(fn func(*Selection) bool) {
	for s := l.head; s != nil; s = s.next {
		if !fn(s) {
			return
		}
	}
}
