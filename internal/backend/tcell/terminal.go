package tcell

import (
	"sync"

	gdtcell "github.com/gdamore/tcell/v2"

	"github.com/noctua-editor/view/internal/view"
)

// Terminal implements view.UIBackend using tcell for terminal output. It
// owns the tcell.Screen and a slot->tcell.Style table built up as the view
// attaches syntax definitions.
type Terminal struct {
	screen gdtcell.Screen
	styles map[int]gdtcell.Style
	mu     sync.Mutex
}

// NewTerminal creates a Terminal backed by a fresh tcell.Screen. Init must
// be called before the screen is usable.
func NewTerminal() (*Terminal, error) {
	screen, err := gdtcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen, styles: make(map[int]gdtcell.Style)}, nil
}

// Init initializes the underlying terminal screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Init()
}

// Shutdown restores the terminal to its pre-Init state.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

// Size returns the current terminal dimensions in columns, rows.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// PollEvent blocks for the next terminal event (keypress, resize, ...).
func (t *Terminal) PollEvent() gdtcell.Event {
	return t.screen.PollEvent()
}

// SyntaxStyle registers the tcell.Style for a syntax slot, parsed from a
// style-spec string (spec's UIBackend.SyntaxStyle contract).
func (t *Terminal) SyntaxStyle(slot int, spec string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.styles[slot] = convertStyle(parseStyle(spec))
}

// styleFor looks up the tcell.Style registered for slot, falling back to
// the screen's default style for slots that were never attached (the
// unused/blank symbol cells draw with SlotNone).
func (t *Terminal) styleFor(slot int) gdtcell.Style {
	if s, ok := t.styles[slot]; ok {
		return s
	}
	return gdtcell.StyleDefault
}

// DrawText walks the screen-line chain and paints every row onto the
// terminal, then flips cursor/selection styling on top before presenting
// (spec §4.2's draw pipeline hands the finished grid to the UI backend in
// one call per redraw).
func (t *Terminal) DrawText(topline *view.ScreenLine) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row := 0
	for line := topline; line != nil; line, row = line.Next, row+1 {
		col := 0
		for i := 0; i < len(line.Cells); i++ {
			cell := line.Cells[i]
			if cell.IsContinuation() {
				col++
				continue
			}
			st := t.styleFor(int(cell.Style))
			if cell.Cursor {
				st = st.Reverse(true)
			} else if cell.Selected {
				st = st.Reverse(true)
			}
			r := []rune(cell.String())
			var primary rune
			if len(r) > 0 {
				primary = r[0]
			}
			t.screen.SetContent(col, row, primary, r[min(1, len(r)):], st)
			col++
		}
	}
	t.screen.Show()
}

// convertStyle converts a parsed style into a tcell.Style.
func convertStyle(s style) gdtcell.Style {
	out := gdtcell.StyleDefault
	if !s.fg.isDefault {
		out = out.Foreground(convertColor(s.fg))
	}
	if !s.bg.isDefault {
		out = out.Background(convertColor(s.bg))
	}
	if s.attrs.has(attrBold) {
		out = out.Bold(true)
	}
	if s.attrs.has(attrDim) {
		out = out.Dim(true)
	}
	if s.attrs.has(attrItalic) {
		out = out.Italic(true)
	}
	if s.attrs.has(attrUnderline) {
		out = out.Underline(true)
	}
	if s.attrs.has(attrBlink) {
		out = out.Blink(true)
	}
	if s.attrs.has(attrReverse) {
		out = out.Reverse(true)
	}
	if s.attrs.has(attrStrikethrough) {
		out = out.StrikeThrough(true)
	}
	return out
}

// convertColor converts a parsed color into a tcell.Color.
func convertColor(c color) gdtcell.Color {
	if c.indexed {
		return gdtcell.PaletteColor(int(c.r))
	}
	return gdtcell.NewRGBColor(int32(c.r), int32(c.g), int32(c.b))
}
