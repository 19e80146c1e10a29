package syntax

import "github.com/dlclark/regexp2"

// Slot is a style handle shared between a Definition and a UI backend.
// The backend registers a style string under a Slot via SyntaxStyle; rules
// reference styles only by Slot, never by string, so the slot space can be
// reassigned per-backend without touching rule definitions. Modeled as a
// value type rather than a naked int per spec.md §9's design note on the
// global style table.
type Slot int

// SlotNone is the zero value, meaning "no style override."
const SlotNone Slot = 0

// Symbol identifies one of the view's whitespace/EOL/EOF glyph classes
// that a syntax definition may override with a custom style.
type Symbol int

const (
	SymbolSpace Symbol = iota
	SymbolTabHead
	SymbolTabFill
	SymbolEOL
	SymbolEOF
)

// Rule is one entry in a Definition's ordered rule list: a compiled regex
// and the style slot applied to whatever it matches. Pattern is typed as
// regexMatcher, the narrow subset of *regexp2.Regexp the scanner actually
// calls, so tests can substitute a fake matcher for regex-timing-sensitive
// assertions without driving the real engine.
type Rule struct {
	Name    string
	Pattern regexMatcher
	Style   Slot
}

// MustCompileRule compiles pattern and panics on error. Intended for rules
// built from constants at program startup, mirroring the teacher's
// MustCompile-style helpers used for static regexes.
func MustCompileRule(name, pattern string, style Slot) Rule {
	re := regexp2.MustCompile(pattern, regexp2.None)
	re.MatchTimeout = 0
	return Rule{Name: name, Pattern: re, Style: style}
}

// CompileRule compiles pattern and returns an error instead of panicking,
// for syntax definitions loaded from user-supplied configuration.
func CompileRule(name, pattern string, style Slot) (Rule, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Name: name, Pattern: re, Style: style}, nil
}

// Definition is the syntax contract of spec.md §6: an ordered array of
// rules terminated implicitly by the end of the slice (no null-rule
// sentinel needed in Go), optional per-symbol style overrides, and a
// null-terminated-in-spirit array of style specifications indexed by slot
// (here, a plain slice; index 0 is reserved for SlotNone).
type Definition struct {
	Name Name

	// Rules are tried in declaration order; the first whose cached match
	// covers the current byte wins (see Scanner).
	Rules []Rule

	// Symbols overrides the default style for whitespace/EOL/EOF glyphs.
	// A Symbol absent from this map uses the view's default symbol style.
	Symbols map[Symbol]Slot

	// Styles is indexed by Slot and holds the style specification string
	// a UI backend registers via SyntaxStyle. Styles[0] is unused
	// (SlotNone).
	Styles []string

	// BracketExclude lists characters that draw-time bracket matching
	// should never treat as brackets, resolving spec.md §9's open
	// question about the hardcoded "<>" exclusion by making it a
	// per-definition parameter instead. Defaults to "<>" when empty via
	// Definition.BracketExcludeOrDefault.
	BracketExclude string
}

// Name identifies a syntax definition, e.g. for matching against a file
// extension. Kept as a distinct type rather than a bare string so call
// sites read as intent ("syntax.Name(\"go\")") rather than an
// interchangeable string.
type Name string

// BracketExcludeOrDefault returns d.BracketExclude, defaulting to "<>" to
// match the original behavior when the definition doesn't override it.
func (d *Definition) BracketExcludeOrDefault() string {
	if d == nil || d.BracketExclude == "" {
		return "<>"
	}
	return d.BracketExclude
}

// StyleFor returns the style specification string for a slot, or "" if the
// slot is out of range or SlotNone.
func (d *Definition) StyleFor(slot Slot) string {
	if d == nil || slot <= SlotNone || int(slot) >= len(d.Styles) {
		return ""
	}
	return d.Styles[slot]
}

// SymbolStyle returns the override style slot for a symbol, and whether an
// override is configured.
func (d *Definition) SymbolStyle(sym Symbol) (Slot, bool) {
	if d == nil || d.Symbols == nil {
		return SlotNone, false
	}
	slot, ok := d.Symbols[sym]
	return slot, ok
}
