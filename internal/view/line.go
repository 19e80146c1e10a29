package view

// ScreenLine is one row of the cell grid (spec data model §3). Soft-wrapped
// continuations share their predecessor's Lineno; Len and Width accumulate
// as the draw pipeline emits cells into the row.
type ScreenLine struct {
	Cells  []Cell
	Lineno uint32
	Len    int // total source bytes rendered into this row
	Width  int // total visual columns occupied

	Prev, Next *ScreenLine
}

// grid is the backing store for a View's screen-line chain: a single
// contiguous allocation of height rows, each width cells wide, reused
// across every redraw (spec §4.1: "a single contiguous allocation ...
// never independently-allocated nodes"). relink re-threads Prev/Next on
// every alloc and resize; a draw only blanks the rows (resetRows).
type grid struct {
	rows  []ScreenLine
	width int
}

// newGrid allocates a grid of height rows, each width cells wide.
func newGrid(width, height int) *grid {
	g := &grid{width: width}
	g.alloc(width, height)
	return g
}

func (g *grid) alloc(width, height int) {
	g.rows = make([]ScreenLine, height)
	g.width = width
	for i := range g.rows {
		g.rows[i].Cells = make([]Cell, width)
	}
	g.relink()
}

// resize grows the grid if the requested size is larger than the current
// allocation; it never shrinks (spec §4.3: "Reallocate the grid if
// new_size > current_size").
func (g *grid) resize(width, height int) {
	if height > len(g.rows) || width > g.width {
		w := width
		if w < g.width {
			w = g.width
		}
		h := height
		if h < len(g.rows) {
			h = len(g.rows)
		}
		g.alloc(w, h)
		return
	}
	g.relink()
}

// relink re-threads Prev/Next across the row allocation in order.
func (g *grid) relink() {
	for i := range g.rows {
		g.rows[i].Cells = g.rows[i].Cells[:cap(g.rows[i].Cells)]
		if i > 0 {
			g.rows[i].Prev = &g.rows[i-1]
		} else {
			g.rows[i].Prev = nil
		}
		if i+1 < len(g.rows) {
			g.rows[i].Next = &g.rows[i+1]
		} else {
			g.rows[i].Next = nil
		}
	}
}

// resetRows zeroes every row's Len/Width and blanks its cells, called once
// per draw before the pipeline writes into it (spec §4.2 step 2).
func (g *grid) resetRows(width int) {
	for i := range g.rows {
		r := &g.rows[i]
		r.Len = 0
		r.Width = 0
		r.Lineno = 0
		if cap(r.Cells) < width {
			r.Cells = make([]Cell, width)
		} else {
			r.Cells = r.Cells[:width]
		}
		for j := range r.Cells {
			r.Cells[j] = blankCell
		}
	}
	g.width = width
}

func (g *grid) topline() *ScreenLine {
	if len(g.rows) == 0 {
		return nil
	}
	return &g.rows[0]
}

func (g *grid) height() int { return len(g.rows) }

func (g *grid) bottomline() *ScreenLine {
	if len(g.rows) == 0 {
		return nil
	}
	return &g.rows[len(g.rows)-1]
}
