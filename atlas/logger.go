package atlas

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/helgev-trap/suzuri/glyph"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h nopHandler) WithGroup(string) slog.Handler           { return h }

func newNopLogger() *slog.Logger {
	return slog.New(nopHandler{})
}

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs l as the atlas package's logger. Passing nil
// restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the atlas package's current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

func logNoPage(height int) {
	Logger().Debug("atlas: no page configured for glyph height", "height", height)
}

func logPlacementFailed(id glyph.ID, width, height int) {
	Logger().Debug("atlas: glyph did not fit on its candidate page",
		"font", id.Font, "glyph", id.GlyphIndex, "width", width, "height", height)
}
