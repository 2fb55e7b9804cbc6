package mono

import (
	"io"

	"golang.org/x/exp/slog"
)

// log is the package diagnostic sink. It defaults to a discard handler
// so the library is silent unless a caller injects a logger
var log = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger sets the logger used for diagnostics. mono logs policy
// clamps and consistency warnings (oversized bitmap widths, tile
// gap/overlap, out-of-bounds access) using stdlib levels; it never
// logs on the happy path of a conversion
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log = l
}
