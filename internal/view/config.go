package view

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the TOML-loadable set of knobs a host program exposes to
// configure a View without reaching into its fields directly.
type Config struct {
	TabWidth int           `toml:"tab_width"`
	Symbols  SymbolsConfig `toml:"symbols"`
	Scroll   ScrollConfig  `toml:"scroll"`
}

// SymbolsConfig holds the glyphs substituted for whitespace/EOL/EOF cells.
type SymbolsConfig struct {
	Space   string `toml:"space"`
	TabHead string `toml:"tab_head"`
	TabFill string `toml:"tab_fill"`
	EOL     string `toml:"eol"`
	EOF     string `toml:"eof"`
}

// ScrollConfig holds the scroll-margin knobs used by the viewport
// controller's redraw-centering decisions.
type ScrollConfig struct {
	// VerticalMargin is the minimum number of rows kept visible above and
	// below the primary cursor before RedrawCenter is invoked.
	VerticalMargin int `toml:"vertical_margin"`
}

// TabWidthOrDefault returns the configured tab width, or 8 if unset.
func (c Config) TabWidthOrDefault() int {
	if c.TabWidth <= 0 {
		return 8
	}
	return c.TabWidth
}

// VerticalMarginOrDefault returns the configured scroll margin, or 0
// (no margin enforcement beyond keeping the cursor on-screen) if unset.
func (c Config) VerticalMarginOrDefault() int {
	if c.Scroll.VerticalMargin < 0 {
		return 0
	}
	return c.Scroll.VerticalMargin
}

// SymbolSet builds a SymbolSet from the configured glyphs, falling back to
// DefaultSymbols for any glyph left unset.
func (c Config) SymbolSet() SymbolSet {
	s := DefaultSymbols()
	if c.Symbols.Space != "" {
		s.Space = c.Symbols.Space
	}
	if c.Symbols.TabHead != "" {
		s.TabHead = c.Symbols.TabHead
	}
	if c.Symbols.TabFill != "" {
		s.TabFill = c.Symbols.TabFill
	}
	if c.Symbols.EOL != "" {
		s.EOL = c.Symbols.EOL
	}
	if c.Symbols.EOF != "" {
		s.EOF = c.Symbols.EOF
	}
	return s
}

// LoadConfig reads configuration from a TOML file. An empty path is not an
// error: it returns a zero Config so callers can apply Apply's defaults. A
// non-empty path to a file that does not exist is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("view: config file not found: %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("view: failed to parse config: %w", err)
	}
	return cfg, nil
}

// Apply installs the configuration's tab width and symbol set on v.
func (c Config) Apply(v *View) {
	v.SetTabWidth(c.TabWidthOrDefault())
	v.SetSymbols(c.SymbolSet())
	v.SetScrollMargin(c.VerticalMarginOrDefault())
}
