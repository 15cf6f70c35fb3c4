package cli

import (
	"fmt"
	"io"
	"log/slog"
)

// newLogger builds the process logger. The multi format writes text to out
// and JSON to errOut.
func newLogger(format, level string, out, errOut io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(out, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(errOut, opts)), nil
	case "multi", "":
		return slog.New(slog.NewMultiHandler(
			slog.NewTextHandler(out, opts),
			slog.NewJSONHandler(errOut, opts),
		)), nil
	default:
		return nil, fmt.Errorf("unknown log_format %q", format)
	}
}
