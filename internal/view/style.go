package view

import "github.com/noctua-editor/view/internal/syntax"

// maxCellBytes bounds the UTF-8 payload of a single cell: the longest
// legal encoded rune is 4 bytes, and the "^X" control-char rendering and
// multi-byte symbol glyphs never exceed it either.
const maxCellBytes = 4

// Cell is the atomic visual unit of the grid (spec data model §3). Len==0
// marks a continuation column: either a tab-fill cell or a column covered
// by the tail of a wide glyph written in an earlier column.
type Cell struct {
	Data [maxCellBytes]byte // UTF-8 (or symbol-glyph) payload
	Len  int                // source bytes this cell accounts for
	Width int               // visual columns occupied, 0-2
	Style syntax.Slot       // style handle registered with the UI backend
	IsTab bool
	Cursor   bool
	Selected bool
}

// NewCell builds a cell from a decoded string payload, truncating to
// maxCellBytes (callers never hand it more; kept as a safety clamp).
func NewCell(data string, length, width int, style syntax.Slot) Cell {
	var c Cell
	n := copy(c.Data[:], data)
	_ = n
	c.Len = length
	c.Width = width
	c.Style = style
	return c
}

// String returns the cell's payload as a Go string, trimmed to its
// meaningful byte count (which may differ from Len for multi-byte glyphs
// whose Len reflects source bytes, not rendered bytes).
func (c Cell) String() string {
	for i, b := range c.Data {
		if b == 0 && i > 0 {
			return string(c.Data[:i])
		}
	}
	return string(c.Data[:])
}

// IsContinuation reports whether this cell is a non-selectable column
// covered by a wide glyph or tab expansion written in an earlier column.
func (c Cell) IsContinuation() bool {
	return c.Len == 0
}

// Equals reports whether two cells render identically, ignoring Cursor and
// Selected (which are draw-time projections, not content).
func (c Cell) Equals(other Cell) bool {
	return c.Data == other.Data && c.Len == other.Len &&
		c.Width == other.Width && c.Style == other.Style && c.IsTab == other.IsTab
}
