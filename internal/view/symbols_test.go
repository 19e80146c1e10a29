package view

import "testing"

func TestDefaultSymbolsGlyphs(t *testing.T) {
	s := DefaultSymbols()
	cases := map[Symbol]string{
		SymbolSpace:   "·",
		SymbolTabHead: "▶",
		SymbolTabFill: " ",
		SymbolEOL:     "⏎",
		SymbolEOF:     "~",
	}
	for sym, want := range cases {
		if got := s.Glyph(sym); got != want {
			t.Errorf("Glyph(%d) = %q, want %q", sym, got, want)
		}
	}
}

func TestBlankSymbolsKeepsEOFTilde(t *testing.T) {
	s := BlankSymbols()
	if got := s.Glyph(SymbolEOF); got != "~" {
		t.Errorf("BlankSymbols EOF = %q, want ~", got)
	}
	if got := s.Glyph(SymbolSpace); got != " " {
		t.Errorf("BlankSymbols space = %q, want a plain space", got)
	}
}

func TestUnusedAndBlankCellsAreSingletons(t *testing.T) {
	if UnusedCell() != UnusedCell() {
		t.Error("UnusedCell should be a stable value")
	}
	b := BlankCell()
	if b.Width != 0 || b.String() != " " {
		t.Errorf("BlankCell = %+v, want a zero-width space", b)
	}
}
