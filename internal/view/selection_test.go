package view

import "testing"

func TestSelectionStartIsOneCharRightward(t *testing.T) {
	v, _, _ := newTestView("hello world", 20, 3)
	c := v.Cursor()
	c.To(2)
	s := c.SelectionStart()
	r := s.Get()
	if r.Start != 2 || r.End != 3 {
		t.Fatalf("SelectionStart range = %v, want [2,3)", r)
	}
}

func TestSelectionOrientationFlipsAcrossAnchor(t *testing.T) {
	v, _, _ := newTestView("0123456789", 20, 3)
	c := v.Cursor()
	c.To(5)
	c.SelectionStart() // anchor=5, cursor=6 (rightward)

	c.To(7)
	r := c.Selection().Get()
	if r.Start != 5 || r.End != 8 {
		t.Fatalf("extending right: range = %v, want [5,8)", r)
	}

	// Cross the anchor moving left: should flip to a leftward selection.
	c.To(2)
	r = c.Selection().Get()
	if r.Start != 2 {
		t.Fatalf("after crossing anchor leftward, range.Start = %d, want 2", r.Start)
	}
	if r.End <= 5 {
		t.Fatalf("after crossing anchor leftward, range.End = %d, want > 5 (anchor shifted one char)", r.End)
	}
}

func TestSelectionSwapExchangesEndpoints(t *testing.T) {
	v, _, _ := newTestView("0123456789", 20, 3)
	c := v.Cursor()
	c.To(2)
	s := c.SelectionStart()
	before := s.Get()
	c.SelectionSwap()
	after := s.Get()
	if before != after {
		t.Errorf("Swap should not change the normalized range: before=%v after=%v", before, after)
	}
}

func TestSelectionClearDetachesAndPreservesRestore(t *testing.T) {
	v, _, _ := newTestView("0123456789", 20, 3)
	c := v.Cursor()
	c.To(1)
	c.SelectionStart()
	want := c.Selection().Get()
	c.SelectionClear()
	if c.Selection() != nil {
		t.Error("SelectionClear should detach the cursor's selection")
	}
	c.SelectionRestore()
	if c.Selection() == nil {
		t.Fatal("SelectionRestore should rebuild a selection from last-freed endpoints")
	}
	if got := c.Selection().Get(); got != want {
		t.Errorf("restored selection = %v, want %v", got, want)
	}
}

func TestSelectionStopKeepsSelectionAlive(t *testing.T) {
	v, _, _ := newTestView("0123456789", 20, 3)
	c := v.Cursor()
	c.To(1)
	s := c.SelectionStart()
	c.SelectionStop()
	if c.Selection() != nil {
		t.Error("SelectionStop should detach c from its selection")
	}
	found := false
	v.Selections().All(func(other *Selection) bool {
		if other == s {
			found = true
		}
		return true
	})
	if !found {
		t.Error("SelectionStop must not free the selection, only detach the cursor")
	}
}
