package syntax

import (
	"sort"

	"github.com/dlclark/regexp2"
)

// regexMatcher is the subset of *regexp2.Regexp the scanner depends on.
// Narrowed to an interface so a test can substitute a call-counting fake
// in place of the real regex engine.
type regexMatcher interface {
	FindStringMatchStartingAt(s string, startAt int) (*regexp2.Match, error)
}

// ruleMatch is a rule's most-recently-found match within the current
// scratch window, expressed in byte offsets. valid and exhausted are
// deliberately distinct: valid=false, exhausted=false means "never
// scanned yet" (try findNextNonEmpty on next use); exhausted=true means
// "already searched to the end of the window and found nothing more",
// a permanent state for the rest of this window that must not trigger
// another regex search (spec.md §4.2's O(width*height + rules*regex)
// bound would otherwise degrade to O(width*height*rules*regex) for any
// rule that runs dry before the window ends).
type ruleMatch struct {
	start, end int
	valid      bool
	exhausted  bool
}

// Scanner implements the per-rule most-recent-match cache described in
// spec.md §4.2 step 4. It is rebuilt (via Reset) once per draw when the
// byte window changes, then queried once per decoded character as the
// draw pipeline advances through the window.
//
// regexp2 indexes matches by rune position, not byte position, so the
// scanner keeps a rune<->byte offset table for the current window and
// translates at the boundary; every offset Scanner exposes to callers
// (StyleAt's pos, and the cached match bounds) is a byte offset, matching
// the rest of the draw pipeline.
type Scanner struct {
	def    *Definition
	text   string
	runeAt []int // runeAt[i] = byte offset of the i'th rune; len = runeCount+1
	cache  []ruleMatch
	active int // index into def.Rules of the rule currently in force, or -1
}

// NewScanner returns a scanner for def. A nil def is valid and always
// reports SlotNone.
func NewScanner(def *Definition) *Scanner {
	s := &Scanner{def: def, active: -1}
	if def != nil {
		s.cache = make([]ruleMatch, len(def.Rules))
	}
	return s
}

// Reset rebinds the scanner to a new scratch-buffer window. Must be called
// whenever the draw pipeline refills its byte window (spec.md §4.2 step 3)
// since cached match offsets are only meaningful relative to that window.
func (s *Scanner) Reset(text string) {
	s.text = text
	s.active = -1
	for i := range s.cache {
		s.cache[i] = ruleMatch{}
	}

	s.runeAt = s.runeAt[:0]
	byteOff := 0
	for _, r := range text {
		s.runeAt = append(s.runeAt, byteOff)
		byteOff += len(string(r))
	}
	s.runeAt = append(s.runeAt, len(text))
}

// byteToRune converts a byte offset into the window (which must fall on a
// rune boundary) to a rune index.
func (s *Scanner) byteToRune(bytePos int) int {
	return sort.SearchInts(s.runeAt, bytePos)
}

// runeToByte converts a rune index back to a byte offset.
func (s *Scanner) runeToByte(runeIdx int) int {
	if runeIdx < 0 {
		return 0
	}
	if runeIdx >= len(s.runeAt) {
		return len(s.text)
	}
	return s.runeAt[runeIdx]
}

// StyleAt returns the style slot in force at byte offset pos within the
// current window, advancing the per-rule match cache as needed. Callers
// must invoke this with a non-decreasing pos across a single window
// (the draw pipeline only moves forward through the buffer).
func (s *Scanner) StyleAt(pos int) Slot {
	if s.def == nil || len(s.def.Rules) == 0 {
		return SlotNone
	}

	if s.active >= 0 && pos >= s.cache[s.active].end {
		// The decoder has crossed past the currently applied match.
		// Any other rule's cache that overlaps the region it just
		// consumed is no longer trustworthy at the new position: it was
		// computed relative to an earlier point in the scan, before the
		// just-finished match was known to take priority over it, so it
		// must be cleared and re-verified against the other rules in
		// declaration order rather than accepted on stale say-so
		// (mirrors the original's match[i][0].rm_so = 0 reset loop).
		consumed := s.cache[s.active]
		s.active = -1
		for i := range s.cache {
			c := &s.cache[i]
			if c.valid && c.start < consumed.end && c.end > consumed.start {
				*c = ruleMatch{}
			}
		}
	}

	if s.active < 0 {
		for i := range s.def.Rules {
			c := &s.cache[i]
			if c.exhausted {
				continue
			}
			if !c.valid || c.end <= pos {
				start := pos
				if c.valid && c.end > start {
					start = c.end
				}
				ns, ne, ok := s.findNextNonEmpty(s.def.Rules[i].Pattern, start)
				if ok {
					c.start, c.end, c.valid = ns, ne, true
				} else {
					c.valid = false
					c.exhausted = true
				}
			}
			if c.valid && c.start <= pos && pos < c.end {
				s.active = i
				break
			}
		}
	}

	if s.active < 0 {
		return SlotNone
	}
	return s.def.Rules[s.active].Style
}

// findNextNonEmpty searches re in the window starting at byte offset
// start, skipping zero-length matches (spec.md §4.2 step 4: "Zero-length
// matches are discarded so they cannot pin the scanner"). Returns byte
// offsets.
func (s *Scanner) findNextNonEmpty(re regexMatcher, start int) (matchStart, matchEnd int, ok bool) {
	if start > len(s.text) {
		return 0, 0, false
	}
	runePos := s.byteToRune(start)
	for runePos < len(s.runeAt) {
		m, err := re.FindStringMatchStartingAt(s.text, runePos)
		if err != nil || m == nil {
			return 0, 0, false
		}
		if m.Length == 0 {
			runePos = m.Index + 1
			continue
		}
		return s.runeToByte(m.Index), s.runeToByte(m.Index + m.Length), true
	}
	return 0, 0, false
}
