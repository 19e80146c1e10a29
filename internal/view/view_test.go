package view

import (
	"testing"

	"github.com/noctua-editor/view/internal/syntax"
	"github.com/noctua-editor/view/internal/text"
)

// fakeUI is a minimal UIBackend recording what the draw pipeline sent it,
// used across the package's tests instead of a real terminal.
type fakeUI struct {
	topline *ScreenLine
	styles  map[int]string
}

func newFakeUI() *fakeUI {
	return &fakeUI{styles: make(map[int]string)}
}

func (f *fakeUI) DrawText(topline *ScreenLine) { f.topline = topline }
func (f *fakeUI) SyntaxStyle(slot int, spec string) {
	f.styles[slot] = spec
}

// newTestView builds a View over content, sized to width x height, backed
// by a fakeUI so tests can inspect the drawn grid directly.
func newTestView(content string, width, height int) (*View, *text.Buffer, *fakeUI) {
	buf := text.NewBufferFromString(content)
	ui := newFakeUI()
	v := New(buf, ui, nil)
	v.Resize(width, height)
	return v, buf, ui
}

// rowText concatenates a row's printable payload back to a string, skipping
// continuation cells and the EOL glyph and mapping the space glyph back to a
// space, for assertions that read like the source text. It assumes the row
// was drawn with DefaultSymbols.
func rowText(l *ScreenLine) string {
	syms := DefaultSymbols()
	var s string
	for _, c := range l.Cells[:l.Width] {
		switch {
		case c.IsContinuation(), c.String() == syms.EOL:
			continue
		case c.String() == syms.Space:
			s += " "
		default:
			s += c.String()
		}
	}
	return s
}

func TestNewViewHasOneCursorAtZero(t *testing.T) {
	v, _, _ := newTestView("hello", 10, 3)
	if v.Cursors().Count() != 1 {
		t.Fatalf("new view should have exactly one cursor, got %d", v.Cursors().Count())
	}
	if v.Cursor().Pos() != 0 {
		t.Fatalf("primary cursor pos = %d, want 0", v.Cursor().Pos())
	}
}

func TestResizeGrowsViewportAndRedraws(t *testing.T) {
	v, _, ui := newTestView("line one\nline two\n", 20, 1)
	v.Resize(20, 5)
	if v.Height() != 5 || v.Width() != 20 {
		t.Fatalf("Height/Width after resize = %d/%d", v.Height(), v.Width())
	}
	if ui.topline == nil {
		t.Fatal("Resize should trigger a draw")
	}
	if got := rowText(ui.topline); got != "line one" {
		t.Errorf("topline = %q, want %q", got, "line one")
	}
}

func TestSetTabWidthRedraws(t *testing.T) {
	v, _, ui := newTestView("a\tb", 20, 2)
	v.SetTabWidth(4)
	line := ui.topline
	// "a", then a tab head at column 1 and 2 tab-fill columns (tabwidth 4),
	// then "b" at column 4.
	if line.Cells[1].String() != v.symbols.TabHead {
		t.Fatalf("expected tab head glyph at column 1, got %q", line.Cells[1].String())
	}
	if !line.Cells[2].IsTab || line.Cells[2].Len != 0 {
		t.Errorf("expected tab-fill continuation cell at column 2: %+v", line.Cells[2])
	}
}

func TestSetSyntaxRegistersStyles(t *testing.T) {
	v, _, ui := newTestView("if x", 10, 2)
	def := &syntax.Definition{
		Rules:  []syntax.Rule{syntax.MustCompileRule("kw", `\bif\b`, 1)},
		Styles: []string{"", "fg:magenta"},
	}
	v.SetSyntax(def)
	if ui.styles[1] != "fg:magenta" {
		t.Fatalf("SetSyntax did not register slot 1: %+v", ui.styles)
	}
	if v.Topline().Cells[0].Style != 1 {
		t.Errorf("'i' in \"if\" should carry style slot 1, got %d", v.Topline().Cells[0].Style)
	}
}

func TestSetSyntaxNilDetaches(t *testing.T) {
	v, _, _ := newTestView("if x", 10, 2)
	def := &syntax.Definition{
		Rules:  []syntax.Rule{syntax.MustCompileRule("kw", `\bif\b`, 1)},
		Styles: []string{"", "fg:magenta"},
	}
	v.SetSyntax(def)
	v.SetSyntax(nil)
	if v.scanner != nil {
		t.Error("SetSyntax(nil) should clear the scanner")
	}
	if v.Topline().Cells[0].Style != syntax.SlotNone {
		t.Error("after detaching syntax, cells should carry SlotNone")
	}
}

func TestStartEndReflectDrawnRange(t *testing.T) {
	v, _, _ := newTestView("abc\ndef\n", 10, 5)
	if v.Start() != 0 {
		t.Fatalf("Start() = %d, want 0", v.Start())
	}
	if v.End() != 8 {
		t.Fatalf("End() = %d, want 8 (full text drawn)", v.End())
	}
}
