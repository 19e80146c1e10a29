// Package tcell provides a tcell-backed implementation of view.UIBackend.
package tcell

import (
	"strconv"
	"strings"
)

// attribute is a bitmask of text attributes, adapted from the renderer
// core's Attribute type for the narrower set tcell exposes per-cell.
type attribute uint16

const (
	attrNone attribute = 0
	attrBold attribute = 1 << iota
	attrDim
	attrItalic
	attrUnderline
	attrBlink
	attrReverse
	attrStrikethrough
)

func (a attribute) has(other attribute) bool { return a&other != 0 }

// color is a terminal color: either the default, an indexed palette entry,
// or a true-color RGB triple.
type color struct {
	r, g, b uint8
	indexed bool
	isDefault bool
}

var colorDefault = color{isDefault: true}

// namedColors mirrors the basic palette the config schema validator
// accepts, mapped to indexed tcell palette slots (the standard 8-color ANSI
// positions), plus "gray"/"grey" at palette slot 8.
var namedColors = map[string]uint8{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"gray": 8, "grey": 8,
}

// parseColor parses a single color token: a named color ("magenta"), an
// indexed palette color ("idx(N)"), or a hex RGB triple ("#rrggbb" /
// "#rgb").
func parseColor(s string) (color, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "default" {
		return colorDefault, s == "default"
	}
	if s[0] == '#' {
		hex := s[1:]
		var r, g, b uint64
		var err error
		switch len(hex) {
		case 3:
			r, err = strconv.ParseUint(string(hex[0])+string(hex[0]), 16, 8)
			if err == nil {
				g, err = strconv.ParseUint(string(hex[1])+string(hex[1]), 16, 8)
			}
			if err == nil {
				b, err = strconv.ParseUint(string(hex[2])+string(hex[2]), 16, 8)
			}
		case 6:
			r, err = strconv.ParseUint(hex[0:2], 16, 8)
			if err == nil {
				g, err = strconv.ParseUint(hex[2:4], 16, 8)
			}
			if err == nil {
				b, err = strconv.ParseUint(hex[4:6], 16, 8)
			}
		default:
			return color{}, false
		}
		if err != nil {
			return color{}, false
		}
		return color{r: uint8(r), g: uint8(g), b: uint8(b)}, true
	}
	if strings.HasPrefix(s, "idx(") && strings.HasSuffix(s, ")") {
		n, err := strconv.ParseUint(s[4:len(s)-1], 10, 8)
		if err != nil {
			return color{}, false
		}
		return color{r: uint8(n), indexed: true}, true
	}
	if idx, ok := namedColors[strings.ToLower(s)]; ok {
		return color{r: idx, indexed: true}, true
	}
	return color{}, false
}

// style is a foreground/background color pair plus attributes, parsed from
// the style-spec strings a syntax definition attaches to its rules (e.g.
// "fg:magenta bg:#1e1e1e bold italic").
type style struct {
	fg, bg color
	attrs  attribute
}

var attrWords = map[string]attribute{
	"bold":          attrBold,
	"dim":           attrDim,
	"italic":        attrItalic,
	"underline":     attrUnderline,
	"blink":         attrBlink,
	"reverse":       attrReverse,
	"strikethrough": attrStrikethrough,
}

// parseStyle parses a space-separated style specification into a style.
// Unrecognized tokens are ignored rather than rejected, so a syntax
// definition with a typo'd attribute still renders with whatever it got
// right (spec's style-spec strings are author-supplied, not validated
// ahead of time).
func parseStyle(spec string) style {
	s := style{fg: colorDefault, bg: colorDefault}
	for _, tok := range strings.Fields(spec) {
		switch {
		case strings.HasPrefix(tok, "fg:"):
			if c, ok := parseColor(tok[3:]); ok {
				s.fg = c
			}
		case strings.HasPrefix(tok, "bg:"):
			if c, ok := parseColor(tok[3:]); ok {
				s.bg = c
			}
		default:
			if a, ok := attrWords[strings.ToLower(tok)]; ok {
				s.attrs |= a
			}
		}
	}
	return s
}
