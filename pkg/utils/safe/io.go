package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/verteidiq/assessor/pkg/utils/logging"
)

// Close closes closer and logs the error instead of returning it. nil is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("close failed", slog.Any("error", err))
	}
}

// Write writes data to w and logs a failure. Used after headers are committed
// and nothing useful can be done with the error.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	if _, err := w.Write(data); err != nil {
		logging.From(ctx).Warn("write failed", slog.Any("error", err), slog.Int("size", len(data)))
	}
}
