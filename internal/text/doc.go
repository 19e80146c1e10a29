// Package text provides a minimal byte-addressable text store used as the
// view engine's reference text buffer.
//
// It implements the narrow contract the view package consumes: byte
// access, line-number lookup, marks that survive edits, bracket matching,
// and reverse iteration. It is deliberately not a production rope or piece
// table — the view engine treats the text buffer as an external
// collaborator and only needs this contract, not a particular storage
// strategy or edit-complexity bound.
package text
