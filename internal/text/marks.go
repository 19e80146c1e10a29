package text

// EPOS is the sentinel returned by MarkGet when the position a mark once
// tracked has been entirely deleted.
const EPOS ByteOffset = -1

// Mark is an opaque handle into a Buffer that resolves to a current byte
// offset across edits. Marks are the source of truth for every persistent
// position the view package keeps (cursor positions, selection endpoints,
// the viewport's start anchor) — byte offsets derived from a mark are
// caches, valid only until the next edit.
type Mark struct {
	state *markState
}

// markState is shared by value-copies of Mark so every copy observes the
// same live position.
type markState struct {
	pos     ByteOffset
	deleted bool
}

// MarkSet creates a mark tracking pos. Edits applied after this call slide
// the mark the same way TransformOffset slides a cursor in the teacher's
// engine/cursor/transform.go: edits entirely before the mark shift it by
// the edit's length delta, edits at or after it leave it alone, and edits
// that strictly span it either collapse it to the end of the replacement
// text or, for a pure deletion, invalidate it (MarkGet then returns EPOS).
func (b *Buffer) MarkSet(pos ByteOffset) Mark {
	if pos < 0 {
		pos = 0
	}
	if pos > ByteOffset(len(b.data)) {
		pos = ByteOffset(len(b.data))
	}
	st := &markState{pos: pos}
	b.marks = append(b.marks, st)
	return Mark{state: st}
}

// MarkGet resolves a mark to its current byte offset, or EPOS if the range
// it tracked has been deleted out from under it.
func (b *Buffer) MarkGet(m Mark) ByteOffset {
	if m.state == nil || m.state.deleted {
		return EPOS
	}
	return m.state.pos
}

// transform slides every live mark across an edit that replaced the bytes
// in r with newLen bytes of new content. Insertions are represented as
// r.Start == r.End; deletions as newLen == 0.
func (b *Buffer) transform(r Range, newLen ByteOffset) {
	oldLen := r.Len()
	delta := newLen - oldLen
	for _, m := range b.marks {
		if m.deleted {
			continue
		}
		switch {
		case r.Start >= m.pos:
			// Edit at or after the mark: the mark sticks to its position,
			// so an anchor at the head of a growing line stays put.
		case r.End <= m.pos:
			// Edit entirely before the mark: shift by the length delta.
			m.pos += delta
		case oldLen == 0:
			// Unreachable: an insertion (r.Start == r.End) that fails both
			// cases above would need r.Start < m.pos < r.End.
		case newLen == 0:
			// Pure deletion strictly spanning the mark: the range the
			// mark covered no longer exists.
			m.pos = r.Start
			m.deleted = true
		default:
			// Replacement spanning the mark: move to the end of the
			// replacement text, mirroring TransformOffset.
			m.pos = r.Start + newLen
		}
	}
}
