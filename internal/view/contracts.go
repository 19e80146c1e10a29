// Package view implements the view engine: it projects a byte-addressable
// text buffer onto a bounded cell grid, maintains cursors and selections
// whose positions survive concurrent edits via marks, and drives viewport
// scrolling. The package never touches the text buffer's storage directly;
// it only calls the narrow TextBuffer contract below, so any byte store
// that implements it (internal/text.Buffer, or a future rope/piece table)
// can back a View.
package view

import "github.com/noctua-editor/view/internal/text"

// TextBuffer is the external collaborator the view engine consumes for all
// byte access, mark tracking, and text-relative motion. internal/text.Buffer
// implements it; the view engine never assumes a concrete implementation.
type TextBuffer interface {
	Size() text.ByteOffset
	BytesGet(pos text.ByteOffset, buf []byte) int
	LinenoByPos(pos text.ByteOffset) uint32

	MarkSet(pos text.ByteOffset) text.Mark
	MarkGet(m text.Mark) text.ByteOffset

	CharNext(pos text.ByteOffset) text.ByteOffset
	CharPrev(pos text.ByteOffset) text.ByteOffset
	LineBegin(pos text.ByteOffset) text.ByteOffset
	LineUp(pos text.ByteOffset) text.ByteOffset
	LineDown(pos text.ByteOffset) text.ByteOffset

	BracketMatchExcept(pos text.ByteOffset, exclude string) text.ByteOffset

	NewReverseIterator(pos text.ByteOffset) *text.ReverseIterator
}

// UIBackend is the render target the draw pipeline presents the finished
// grid to. A backend owns the mapping from Slot to a concrete terminal
// style; SyntaxStyle registers that mapping once per syntax attach, and
// DrawText is called once per draw with the head of the screen-line chain.
type UIBackend interface {
	DrawText(topline *ScreenLine)
	SyntaxStyle(slot int, spec string)
}

// SelectionHook is invoked once per valid selection during draw's selection
// projection step, with the selection's absolute byte range. A nil hook is
// valid and simply receives no calls.
type SelectionHook func(r text.Range)

// Register is the per-cursor clipboard collaborator (spec §1: "the register
// store (per-cursor clipboard)"). The view engine only carries one per
// cursor and releases it on cursor disposal; it never reads or writes
// through it, so the contract is intentionally opaque.
type Register interface{}
