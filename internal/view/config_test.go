package view

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingPathReturnsZeroValue(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TabWidthOrDefault() != 8 {
		t.Errorf("zero Config should default tab width to 8, got %d", cfg.TabWidthOrDefault())
	}
}

func TestLoadConfigMissingFileErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a nonexistent config path")
	}
}

func TestLoadConfigParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "view.toml")
	toml := `
tab_width = 4

[symbols]
space = "."
eol = "$"

[scroll]
vertical_margin = 3
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TabWidthOrDefault() != 4 {
		t.Errorf("TabWidth = %d, want 4", cfg.TabWidthOrDefault())
	}
	if cfg.VerticalMarginOrDefault() != 3 {
		t.Errorf("VerticalMargin = %d, want 3", cfg.VerticalMarginOrDefault())
	}
	syms := cfg.SymbolSet()
	if syms.Space != "." {
		t.Errorf("Space = %q, want .", syms.Space)
	}
	if syms.EOL != "$" {
		t.Errorf("EOL = %q, want $", syms.EOL)
	}
	// Unconfigured glyphs fall back to the defaults.
	if syms.TabHead != DefaultSymbols().TabHead {
		t.Errorf("TabHead should fall back to default when unconfigured")
	}
}

func TestConfigApplyInstallsOnView(t *testing.T) {
	v, _, _ := newTestView("a\tb", 20, 2)
	cfg := Config{TabWidth: 2, Scroll: ScrollConfig{VerticalMargin: 1}}
	cfg.Apply(v)
	if v.tabwidth != 2 {
		t.Errorf("Apply should install tab width, got %d", v.tabwidth)
	}
	if v.scrollMargin != 1 {
		t.Errorf("Apply should install scroll margin, got %d", v.scrollMargin)
	}
}
