package view

import (
	"github.com/noctua-editor/view/internal/syntax"
	"github.com/noctua-editor/view/internal/text"
)

// ScrollToEndPolicy resolves the open question in spec.md §9 on whether
// scrolling the cursor to end-of-file should always recenter the viewport.
type ScrollToEndPolicy int

const (
	// ScrollToEndMiddle scrolls so the cursor lands mid-screen when a
	// motion lands it at text_size and the viewport doesn't already show
	// EOF. This is the behavior the original always applied.
	ScrollToEndMiddle ScrollToEndPolicy = iota
	// ScrollToEndNone disables the automatic recenter; the cursor is
	// placed via the normal cursors_to viewport-follow logic only.
	ScrollToEndNone
)

// View projects a TextBuffer onto a bounded cell grid and owns the cursors
// and selections positioned within it (spec data model §3).
type View struct {
	text TextBuffer
	ui   UIBackend
	hook SelectionHook

	width, height int

	start, end text.ByteOffset
	startLast  text.ByteOffset
	startMark  text.Mark

	g        *grid
	lastline *ScreenLine

	// drawLine/drawCol are transient state used only while Draw is
	// actively emitting cells; they track where the next character will
	// land (spec §3 View: "line*... col... used while drawing").
	drawLine *ScreenLine
	drawCol  int

	tabwidth int
	symbols  SymbolSet

	syntaxDef *syntax.Definition
	scanner   *syntax.Scanner

	cursors    *CursorSet
	selections *selectionList

	scrollToEnd  ScrollToEndPolicy
	scrollMargin int

	log Logger
}

// New creates a view over text, sized to a single cell, with one cursor at
// offset 0 (spec §3 Lifecycle). Resize must be called before the view is
// usable for drawing.
func New(tb TextBuffer, ui UIBackend, hook SelectionHook) *View {
	v := &View{
		text:        tb,
		ui:          ui,
		hook:        hook,
		tabwidth:    8,
		symbols:     DefaultSymbols(),
		scrollToEnd: ScrollToEndMiddle,
		log:         nopLogger{},
	}
	v.g = newGrid(1, 1)
	v.cursors = newCursorSet(v)
	v.cursors.New()
	v.startMark = tb.MarkSet(0)
	return v
}

// SetLogger installs a structured logger for draw/scroll diagnostics. A nil
// logger restores the no-op logger.
func (v *View) SetLogger(l Logger) {
	if l == nil {
		l = nopLogger{}
	}
	v.log = l
}

// SetScrollToEndPolicy configures the end-of-file auto-scroll behavior.
func (v *View) SetScrollToEndPolicy(p ScrollToEndPolicy) { v.scrollToEnd = p }

// SetScrollMargin sets the number of rows kept visible above and below the
// primary cursor: motions that would land it closer to the viewport's top
// or bottom edge than this trigger a recenter instead of the minimal scroll
// cursors_to would otherwise perform. Zero (the default) disables margin
// enforcement entirely, matching the original's unconditional edge-follow.
func (v *View) SetScrollMargin(n int) {
	if n < 0 {
		n = 0
	}
	v.scrollMargin = n
}

// withinScrollMargin reports whether pos, once drawn, would fall inside the
// configured top/bottom margin band rather than the viewport's comfortable
// center zone.
func (v *View) withinScrollMargin(pos text.ByteOffset) bool {
	if v.scrollMargin <= 0 {
		return false
	}
	line, row, _, ok := v.locate(pos)
	if !ok || line == nil {
		return false
	}
	return row < v.scrollMargin || row >= v.height-v.scrollMargin
}

// SetTabWidth sets the column width of a tab stop and redraws.
func (v *View) SetTabWidth(n int) {
	if n < 1 {
		n = 1
	}
	v.tabwidth = n
	v.Draw()
}

// SetSymbols installs the glyph set used for whitespace/EOL/EOF rendering.
func (v *View) SetSymbols(s SymbolSet) {
	v.symbols = s
	v.Draw()
}

// SetSyntax attaches (or, with nil, detaches) a syntax definition, notifying
// the UI backend of the definition's style table.
func (v *View) SetSyntax(def *syntax.Definition) {
	v.syntaxDef = def
	if def == nil {
		v.scanner = nil
		v.Draw()
		return
	}
	v.scanner = syntax.NewScanner(def)
	if v.ui != nil {
		for slot, spec := range def.Styles {
			if slot == 0 || spec == "" {
				continue
			}
			v.ui.SyntaxStyle(slot, spec)
		}
	}
	v.Draw()
}

// Resize reallocates the grid if it grew, then redraws (spec §4.3).
func (v *View) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width, v.height = width, height
	v.g.resize(width, height)
	v.Draw()
}

// Width and Height report the current viewport size in columns/rows.
func (v *View) Width() int  { return v.width }
func (v *View) Height() int { return v.height }

// Start and End report the byte range currently projected onto the grid.
func (v *View) Start() text.ByteOffset { return v.start }
func (v *View) End() text.ByteOffset   { return v.end }

// Topline returns the first row of the screen-line chain.
func (v *View) Topline() *ScreenLine { return v.g.topline() }

// Lastline returns the last row that carries real text; rows after it
// render as EOF rows.
func (v *View) Lastline() *ScreenLine { return v.lastline }

// Cursor returns the primary cursor, guaranteed to lie within the viewport
// after every draw.
func (v *View) Cursor() *Cursor { return v.cursors.primary }

// Cursors returns the cursor set.
func (v *View) Cursors() *CursorSet { return v.cursors }

// Selections returns the selection set.
func (v *View) Selections() *selectionList { return v.selectionsOrInit() }

func (v *View) selectionsOrInit() *selectionList {
	if v.selections == nil {
		v.selections = newSelectionList(v)
	}
	return v.selections
}
