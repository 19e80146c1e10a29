package view

import (
	"unicode/utf8"

	"github.com/noctua-editor/view/internal/syntax"
	"github.com/noctua-editor/view/internal/text"
	"github.com/rivo/uniseg"
)

// Draw redraws the entire viewport; it is the only entry point that
// populates the grid (spec §4.2). Every cursor motion and edit-driven
// viewport change ends by calling this.
func (v *View) Draw() {
	v.clear()

	pos := v.start
	textLen := v.width * v.height
	if textLen < 1 {
		textLen = 1
	}
	buf := make([]byte, textLen)
	rem := v.text.BytesGet(pos, buf)
	cur := 0

	if v.scanner != nil {
		v.log.Debug().Int("bytes", rem).Msg("syntax scanner window reset")
		v.scanner.Reset(string(buf[:rem]))
	}

	for cur < rem {
		window := buf[cur:rem]

		if !utf8.FullRune(window) && rem == textLen {
			// Incomplete multibyte sequence at the scratch window's
			// capacity, not at the real end of the text: refill from the
			// same absolute offset and retry (spec §4.2 step 5).
			v.log.Debug().Int64("pos", int64(pos)+int64(cur)).Msg("refilling window on incomplete multibyte sequence")
			pos += text.ByteOffset(cur)
			rem = v.text.BytesGet(pos, buf)
			cur = 0
			if v.scanner != nil {
				v.scanner.Reset(string(buf[:rem]))
			}
			continue
		}

		data, byteLen, r := decodeChar(window)
		if r == utf8.RuneError {
			v.log.Debug().Int64("pos", int64(pos)).Int("skipped", byteLen).Msg("illegal UTF-8 sequence replaced with U+FFFD")
		}

		// CRLF fusion (spec §4.2 step 6).
		if r == '\r' && len(window) > 1 && window[1] == '\n' {
			data, byteLen, r = "\n", 2, '\n'
		}

		var style syntax.Slot
		if v.scanner != nil {
			style = v.scanner.StyleAt(cur)
		}

		if !v.addch(data, byteLen, r, style) {
			break
		}

		cur += byteLen
		pos += text.ByteOffset(byteLen)
	}

	v.end = pos
	v.finishRows()
	v.projectSelections()
	v.projectCursors()

	if v.ui != nil {
		v.ui.DrawText(v.g.topline())
	}
}

// decodeChar decodes one character from window, handling illegal sequences
// per spec §4.2 step 5: U+FFFD with a length equal to the bytes skipped to
// reach the next UTF-8 leading byte. window is assumed to already satisfy
// utf8.FullRune (the caller refills on incomplete sequences before calling
// this).
func decodeChar(window []byte) (data string, byteLen int, r rune) {
	if window[0] == 0 {
		return "\x00", 1, 0
	}
	rr, size := utf8.DecodeRune(window)
	if rr == utf8.RuneError && size <= 1 {
		n := 1
		for n < len(window) && isUTF8Continuation(window[n]) {
			n++
		}
		return string(utf8.RuneError), n, utf8.RuneError
	}
	return string(window[:size]), size, rr
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// clear implements spec §4.2 step 1 (anchor synchronization) and step 2
// (grid reset): sync the viewport's start anchor across edits that moved
// it, then relink and blank the grid rows.
func (v *View) clear() {
	if v.start != v.startLast {
		v.startMark = v.text.MarkSet(v.start)
		v.startLast = v.start
	} else {
		start := v.text.MarkGet(v.startMark)
		if start != text.EPOS {
			v.start = start
		}
	}

	v.g.resetRows(v.width)
	top := v.g.topline()
	if top != nil {
		top.Lineno = v.text.LinenoByPos(v.start)
	}
	v.lastline = top
	v.drawLine = top
	v.drawCol = 0
}

// addch dispatches a decoded character to its cell-emission handler (spec
// §4.2 step 7), keyed on the raw rune so CRLF-fused newlines and literal
// '\n'/'\t' share a path regardless of source byte count.
func (v *View) addch(data string, byteLen int, r rune, style syntax.Slot) bool {
	if v.drawLine == nil {
		return false
	}
	switch r {
	case '\t':
		return v.addTab(style)
	case '\n':
		return v.addNewline(byteLen)
	default:
		return v.addDefault(data, byteLen, r, style)
	}
}

// symbolSlot resolves the style slot configured for a whitespace/EOL/EOF
// symbol via the attached syntax definition, or SlotNone if unconfigured.
// Symbol cells use their own configured style rather than whatever rule
// the scanner currently has in force (spec §6 "Optional per-symbol ...
// overrides with their styles").
func (v *View) symbolSlot(sym Symbol) syntax.Slot {
	if v.syntaxDef == nil {
		return syntax.SlotNone
	}
	slot, ok := v.syntaxDef.SymbolStyle(syntax.Symbol(sym))
	if !ok {
		return syntax.SlotNone
	}
	return slot
}

// addTab emits tabwidth-(col mod tabwidth) cells: a tab-head cell with
// Len=1 followed by tab-fill cells with Len=0, soft-wrapping into the next
// row (inheriting lineno) if the expansion would cross the row boundary.
func (v *View) addTab(_ syntax.Slot) bool {
	lineno := v.drawLine.Lineno
	width := v.tabwidth - (v.drawCol % v.tabwidth)
	for w := 0; w < width; w++ {
		if v.drawCol+1 > v.width {
			v.drawLine = v.drawLine.Next
			v.drawCol = 0
			if v.drawLine == nil {
				return false
			}
			v.drawLine.Lineno = lineno
		}

		length := 0
		glyph := v.symbols.TabFill
		slot := v.symbolSlot(SymbolTabFill)
		if w == 0 {
			length = 1
			glyph = v.symbols.TabHead
			slot = v.symbolSlot(SymbolTabHead)
		}

		cell := NewCell(glyph, length, 1, slot)
		cell.IsTab = true
		v.drawLine.Cells[v.drawCol] = cell
		v.drawLine.Len += length
		v.drawLine.Width++
		v.drawCol++
	}
	return true
}

// addNewline emits one EOL cell, blanks the remainder of the row, and
// advances to the next row with lineno+1 (spec §4.2 step 7 "Newline").
func (v *View) addNewline(byteLen int) bool {
	lineno := v.drawLine.Lineno
	if v.drawCol+1 > v.width {
		v.drawLine = v.drawLine.Next
		v.drawCol = 0
		if v.drawLine == nil {
			return false
		}
		v.drawLine.Lineno = lineno
	}

	slot := v.symbolSlot(SymbolEOL)
	v.drawLine.Cells[v.drawCol] = NewCell(v.symbols.EOL, byteLen, 1, slot)
	v.drawLine.Len += byteLen
	v.drawLine.Width++
	for i := v.drawCol + 1; i < v.width; i++ {
		v.drawLine.Cells[i] = BlankCell()
	}

	v.drawLine = v.drawLine.Next
	if v.drawLine != nil {
		v.drawLine.Lineno = lineno + 1
	}
	v.drawCol = 0
	return true
}

// addDefault handles every character not dispatched to addTab/addNewline:
// NUL, space, non-printable ASCII control codes, and ordinary glyphs
// (spec §4.2 step 7 "Space" / "Non-printable ASCII" / "Other").
func (v *View) addDefault(data string, byteLen int, r rune, style syntax.Slot) bool {
	lineno := v.drawLine.Lineno

	if r == 0 {
		// A zero-width cell: it still claims exactly one grid column (as
		// blank/unused padding cells do) but contributes nothing to the
		// row's visual width.
		var cell Cell
		cell.Len = 1
		cell.Style = style
		v.drawLine.Cells[v.drawCol] = cell
		v.drawLine.Len++
		v.drawCol++
		return true
	}

	width := uniseg.StringWidth(string(r))
	if width < 1 {
		width = 1
	}

	switch {
	case r < 0x20 || r == 0x7F:
		data = string([]byte{'^', byte(r) + 64})
		byteLen = 1
		width = 2
	case r == ' ':
		data = v.symbols.Space
		style = v.symbolSlot(SymbolSpace)
		width = 1
	}

	if v.drawCol+width > v.width {
		for i := v.drawCol; i < v.width; i++ {
			v.drawLine.Cells[i] = BlankCell()
		}
		v.drawLine = v.drawLine.Next
		v.drawCol = 0
	}
	if v.drawLine == nil {
		return false
	}

	v.drawLine.Lineno = lineno
	v.drawLine.Width += width
	v.drawLine.Len += byteLen
	v.drawLine.Cells[v.drawCol] = NewCell(data, byteLen, width, style)
	v.drawCol++
	for i := 1; i < width; i++ {
		v.drawLine.Cells[v.drawCol] = UnusedCell()
		v.drawCol++
	}
	return true
}

// finishRows implements spec §4.2 step 8: blank the remainder of the
// current row, then fill every subsequent row with the EOF symbol.
func (v *View) finishRows() {
	if v.drawLine != nil {
		v.lastline = v.drawLine
		for x := v.drawCol; x < v.width; x++ {
			v.drawLine.Cells[x] = BlankCell()
		}
	} else {
		v.lastline = v.g.bottomline()
	}

	slot := v.symbolSlot(SymbolEOF)
	for l := v.lastline.Next; l != nil; l = l.Next {
		l.Cells[0] = NewCell(v.symbols.EOF, 0, 1, slot)
		for x := 1; x < v.width; x++ {
			l.Cells[x] = BlankCell()
		}
		l.Width = 1
		l.Len = 0
	}
}

// projectSelections implements spec §4.2 step 9: mark every cell covered
// by a valid selection as Selected, clamping out-of-viewport endpoints to
// topline/lastline, then notify the selection hook.
func (v *View) projectSelections() {
	if v.selections == nil {
		return
	}
	v.selections.All(func(s *Selection) bool {
		r := s.Get()
		if !text.RangeValid(r, v.text.Size()) || r.IsEmpty() {
			return true
		}

		startLine, _, startCol, startOK := v.locate(r.Start)
		endLine, _, endCol, endOK := v.locate(r.End)
		if !startOK && !endOK {
			if v.hook != nil {
				v.hook(r)
			}
			return true
		}
		if !startOK {
			startLine, startCol = v.g.topline(), 0
		}
		if !endOK {
			endLine, endCol = v.lastline, v.lastline.Width
		}

		for l := startLine; l != nil; l = l.Next {
			col := 0
			if l == startLine {
				col = startCol
			}
			end := l.Width
			if l == endLine {
				end = endCol
			}
			for ; col < end && col < len(l.Cells); col++ {
				l.Cells[col].Selected = true
			}
			if l == endLine {
				break
			}
		}

		if v.hook != nil {
			v.hook(r)
		}
		return true
	})
}

// projectCursors implements spec §4.2 step 10: resolve each cursor's mark
// to grid coordinates, mark its cell, and highlight a matching bracket.
func (v *View) projectCursors() {
	v.cursors.All(func(c *Cursor) bool {
		pos := v.text.MarkGet(c.mark)
		if pos == text.EPOS {
			pos = c.pos
		}
		line, row, col, ok := v.locate(pos)
		if !ok {
			if c == v.cursors.primary {
				c.line = v.g.topline()
				c.row, c.col = 0, 0
			}
			return true
		}

		c.pos, c.line, c.row, c.col = pos, line, row, col
		if col < len(line.Cells) {
			line.Cells[col].Cursor = true
		}

		if v.ui != nil && v.syntaxDef != nil {
			matchPos := v.text.BracketMatchExcept(pos, v.syntaxDef.BracketExcludeOrDefault())
			if matchPos >= 0 && matchPos != pos {
				if mline, _, mcol, mok := v.locate(matchPos); mok && mcol < len(mline.Cells) {
					mline.Cells[mcol].Selected = true
				}
			}
		}
		return true
	})
}

// projectCursor gives a single cursor a provisional grid-coordinate
// projection outside of a full draw, used by Cursor.To before it triggers
// one (spec §4.4 cursor_to: "projects to grid coordinates").
func (v *View) projectCursor(c *Cursor) {
	line, row, col, ok := v.locate(c.pos)
	if !ok {
		if c == v.cursors.primary {
			c.line = v.g.topline()
			c.row, c.col = 0, 0
		}
		return
	}
	c.line, c.row, c.col = line, row, col
}

// locate is the sole text->screen coordinate mapper, the inverse of
// cursorSet (spec §4.4's view_coord_get in the original). It returns
// ok=false when pos falls outside [start, end].
func (v *View) locate(pos text.ByteOffset) (line *ScreenLine, row, col int, ok bool) {
	if pos < v.start || pos > v.end {
		return nil, -1, -1, false
	}

	cur := v.start
	line = v.g.topline()
	row = 0
	for line != nil && line != v.lastline && cur < pos {
		if cur+text.ByteOffset(line.Len) > pos {
			break
		}
		cur += text.ByteOffset(line.Len)
		line = line.Next
		row++
	}

	if line == nil {
		return v.g.bottomline(), v.height - 1, 0, true
	}

	maxCol := v.width
	if line.Width < maxCol {
		maxCol = line.Width
	}
	col = 0
	for cur < pos && col < maxCol {
		cur += text.ByteOffset(line.Cells[col].Len)
		col++
		for col < maxCol && line.Cells[col].Len == 0 {
			col++
		}
	}
	return line, row, col, true
}

// cursorSet is the sole screen->text coordinate mapper (spec §4.4
// "Column mapping"): it walks the row chain from topline to line
// accumulating byte length, snaps col off continuation/tab-fill cells,
// then moves c there via moveTo (which, unlike To, preserves lastcol).
func (v *View) cursorSet(c *Cursor, line *ScreenLine, col int) text.ByteOffset {
	pos := v.start
	for l := v.g.topline(); l != nil && l != line; l = l.Next {
		pos += text.ByteOffset(l.Len)
	}

	if line != nil {
		if col > len(line.Cells) {
			col = len(line.Cells)
		}
		if col < 0 {
			col = 0
		}
		for col > 0 && col < len(line.Cells) && line.Cells[col].Len == 0 && !line.Cells[col].IsTab {
			col--
		}
		for col < len(line.Cells) && line.Cells[col].Len == 0 && line.Cells[col].IsTab {
			col++
		}
		for i := 0; i < col && i < len(line.Cells); i++ {
			pos += text.ByteOffset(line.Cells[i].Len)
		}
	}

	c.moveTo(pos)
	return pos
}

// inViewport reports whether pos falls within the currently displayed
// byte range [start, end].
func (v *View) inViewport(pos text.ByteOffset) bool {
	return pos >= v.start && pos <= v.end
}

// showsEnd reports whether the viewport's end already reaches the text's
// current size.
func (v *View) showsEnd() bool {
	return v.end >= v.text.Size()
}

// SetStart moves the viewport's anchor and redraws.
func (v *View) SetStart(pos text.ByteOffset) {
	if pos < 0 {
		pos = 0
	}
	v.start = pos
	v.Draw()
}
