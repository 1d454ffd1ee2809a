package serviceutil

import (
	"log/slog"
	"os"
)

// Fatal logs the message with the error attached and exits non-zero.
func Fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
