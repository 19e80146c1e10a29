package view

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is the narrow slice of zerolog.Logger the view engine needs for
// draw/scroll diagnostics. A *zerolog.Logger satisfies it directly; a
// zerolog.Logger value does not (Debug has a pointer receiver), so NewLogger
// wraps one.
type Logger interface {
	Debug() *zerolog.Event
}

// zlog adapts a zerolog.Logger to Logger.
type zlog struct{ l zerolog.Logger }

// NewLogger wraps l for use with View.SetLogger.
func NewLogger(l zerolog.Logger) Logger { return zlog{l: l} }

func (z zlog) Debug() *zerolog.Event { return z.l.Debug() }

// nopLogger discards everything; it's the default so View never needs a nil
// check at each call site.
type nopLogger struct{}

var discardLogger = zerolog.New(io.Discard).Level(zerolog.Disabled)

func (nopLogger) Debug() *zerolog.Event { return discardLogger.Debug() }
