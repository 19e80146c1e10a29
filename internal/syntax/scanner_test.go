package syntax

import (
	"testing"

	"github.com/dlclark/regexp2"
)

func testDef() *Definition {
	return &Definition{
		Name: "test",
		Rules: []Rule{
			MustCompileRule("comment", `#.*`, 1),
			MustCompileRule("keyword", `\b(if|else|for)\b`, 2),
			MustCompileRule("number", `\b[0-9]+\b`, 3),
		},
		Styles: []string{"", "fg:gray", "fg:magenta", "fg:cyan"},
	}
}

func TestScannerFirstMatchWins(t *testing.T) {
	def := testDef()
	s := NewScanner(def)
	text := "if x > 10 # trailing"
	s.Reset(text)

	for i := 0; i < 2; i++ {
		if got := s.StyleAt(i); got != 2 {
			t.Errorf("StyleAt(%d) = %d, want keyword slot 2", i, got)
		}
	}

	// Outside any match.
	if got := s.StyleAt(2); got != SlotNone {
		t.Errorf("StyleAt(2) = %d, want SlotNone", got)
	}

	numStart := len("if x > ")
	for i := numStart; i < numStart+2; i++ {
		if got := s.StyleAt(i); got != 3 {
			t.Errorf("StyleAt(%d) = %d, want number slot 3", i, got)
		}
	}

	commentStart := len("if x > 10 ")
	if got := s.StyleAt(commentStart); got != 1 {
		t.Errorf("StyleAt(%d) = %d, want comment slot 1", commentStart, got)
	}
	// The comment extends to end of line; interior bytes stay in it.
	if got := s.StyleAt(len(text) - 1); got != 1 {
		t.Errorf("StyleAt(end) = %d, want comment slot 1", got)
	}
}

func TestScannerMonotonicAdvance(t *testing.T) {
	def := &Definition{
		Rules:  []Rule{MustCompileRule("word", `[a-z]+`, 1)},
		Styles: []string{"", "fg:blue"},
	}
	s := NewScanner(def)
	text := "aa bb cc"
	s.Reset(text)

	var got []Slot
	for i := 0; i < len(text); i++ {
		got = append(got, s.StyleAt(i))
	}
	want := []Slot{1, 1, 0, 1, 1, 0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pos %d: got %d want %d (full=%v)", i, got[i], want[i], got)
		}
	}
}

func TestScannerResetClearsState(t *testing.T) {
	def := testDef()
	s := NewScanner(def)
	s.Reset("if")
	if got := s.StyleAt(0); got != 2 {
		t.Fatalf("expected keyword match before reset, got %d", got)
	}
	s.Reset("10")
	if got := s.StyleAt(0); got != 3 {
		t.Errorf("after reset, expected fresh number match, got %d", got)
	}
}

func TestScannerNilDefinition(t *testing.T) {
	s := NewScanner(nil)
	s.Reset("anything")
	if got := s.StyleAt(0); got != SlotNone {
		t.Errorf("nil definition should always report SlotNone, got %d", got)
	}
}

func TestDefinitionStyleFor(t *testing.T) {
	def := testDef()
	if got := def.StyleFor(2); got != "fg:magenta" {
		t.Errorf("StyleFor(2) = %q", got)
	}
	if got := def.StyleFor(SlotNone); got != "" {
		t.Errorf("StyleFor(SlotNone) should be empty, got %q", got)
	}
	if got := def.StyleFor(99); got != "" {
		t.Errorf("StyleFor(out of range) should be empty, got %q", got)
	}
}

// TestScannerInvalidatesOverlappingStaleCacheOnCross stages the scenario
// from spec.md:66 directly against the cache: a higher-priority rule (A,
// declared first) is active and about to be crossed, while a
// lower-priority rule (B) carries a stale cached match that overlaps the
// region A is consuming. Without invalidating B's overlapping entry on the
// cross, B would be accepted at the new position on stale say-so instead
// of being re-verified — and since nothing in this text actually matches
// B's pattern, a correct re-scan must find no match at all.
func TestScannerInvalidatesOverlappingStaleCacheOnCross(t *testing.T) {
	ruleA := MustCompileRule("a", "KEY", 1)
	ruleB := MustCompileRule("b", "ZZZ", 2) // never actually occurs in text
	def := &Definition{
		Rules:  []Rule{ruleA, ruleB},
		Styles: []string{"", "fg:a", "fg:b"},
	}
	s := NewScanner(def)
	s.Reset("xxxxxxxKEYxxxxxxxxxx") // "KEY" occupies byte offsets [7,10)

	// Stage: A is active with a match ending at byte 10. B carries a
	// stale cached match [3,12) that overlaps the region A is about to
	// finish consuming — exactly the scenario the fix must invalidate.
	s.active = 0
	s.cache[0] = ruleMatch{start: 7, end: 10, valid: true}
	s.cache[1] = ruleMatch{start: 3, end: 12, valid: true}

	if got := s.StyleAt(10); got != SlotNone {
		t.Fatalf("StyleAt(10) = %d, want SlotNone: B's pattern never matches, so its stale cache must not be honored", got)
	}
	if s.cache[1].valid {
		t.Errorf("rule B's overlapping stale cache entry should have been invalidated on cross, got %+v", s.cache[1])
	}
}

// countingMatcher is a fake regexMatcher that never finds a match, so any
// rule using it goes directly to the "exhausted" state on its first
// search. calls records how many times the search was actually invoked.
type countingMatcher struct {
	calls int
}

func (m *countingMatcher) FindStringMatchStartingAt(s string, startAt int) (*regexp2.Match, error) {
	m.calls++
	return nil, nil
}

// TestScannerDoesNotRescanExhaustedRule guards the cost bound from
// spec.md:80: a rule with no further match in the window must be searched
// at most once per window, not once per subsequent StyleAt call.
func TestScannerDoesNotRescanExhaustedRule(t *testing.T) {
	dead := &countingMatcher{}
	live := MustCompileRule("word", `[a-z]+`, 1)
	def := &Definition{
		Rules:  []Rule{{Name: "dead", Pattern: dead, Style: 2}, live},
		Styles: []string{"", "fg:live", "fg:dead"},
	}
	s := NewScanner(def)
	text := "aa bb cc dd ee ff gg hh"
	s.Reset(text)

	for i := 0; i < len(text); i++ {
		s.StyleAt(i)
	}

	if dead.calls != 1 {
		t.Errorf("exhausted rule was searched %d times across %d positions, want exactly 1", dead.calls, len(text))
	}
}

func TestBracketExcludeDefault(t *testing.T) {
	var d *Definition
	if got := d.BracketExcludeOrDefault(); got != "<>" {
		t.Errorf("nil definition default = %q, want <>", got)
	}
	d2 := &Definition{}
	if got := d2.BracketExcludeOrDefault(); got != "<>" {
		t.Errorf("empty field default = %q, want <>", got)
	}
	d3 := &Definition{BracketExclude: ""}
	d3.BracketExclude = "[]"
	if got := d3.BracketExcludeOrDefault(); got != "[]" {
		t.Errorf("override = %q, want []", got)
	}
}
