package main

import (
	"io"
	"log/slog"
)

// newLog returns a text logger on w that omits times and the INFO
// level.
func newLog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch {
			case a.Key == slog.TimeKey:
				return slog.Attr{}
			case a.Key == slog.LevelKey && a.Value.String() == "INFO":
				return slog.Attr{}
			}
			return a
		},
	}))
}
