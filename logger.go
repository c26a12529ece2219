package texprep

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the *slog.Logger every texprep call reports to. It starts on
// slog.DiscardHandler, whose Enabled is false, so a silent library never
// formats a record.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent())
}

func silent() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SetLogger routes texprep diagnostics to l; nil silences them again.
// It may be called while other goroutines are dilating or resizing.
//
// Records emitted:
//   - Debug "texprep: dilate", "texprep: resize", "texprep: prepared texture"
//     with the sizes, pass count and threshold of the call
//   - Warn "texprep: tile flags skipped" when a tileset is not a square grid
//
// A bake tool typically does:
//
//	texprep.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//	    &slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent()
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger, or a discarding one.
func Logger() *slog.Logger {
	return logger.Load()
}
