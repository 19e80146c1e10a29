// Package syntax provides the syntax definition contract the view engine
// consumes for highlighting: an ordered list of regex rules plus per-symbol
// style overrides, and a Scanner implementing the per-rule most-recent-match
// cache the draw pipeline relies on to avoid rescanning the whole viewport
// on every redraw.
package syntax
