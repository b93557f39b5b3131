// Package obslog centralizes structured logging setup for cmd/suffstack and
// internal/harness, the only parts of this repository that log at all — the
// core packages (tree, indexedstring, stack) stay silent so they can be used
// from any context, including inside a tight append/truncate hot loop.
package obslog

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

// New initializes the process-wide zap-backed logger at level and returns a
// Logger tagged with service, the same two-step logger.New + WithServiceName
// idiom used to build per-component loggers elsewhere in the pack. level is
// one of zap's level names ("DEBUG", "INFO", "ERROR", ...); an unrecognized
// level falls back to "INFO" inside logger.New itself.
func New(level string, service string) logger.Logger {
	logger.New(level)
	return logger.Sugar.WithServiceName(service)
}

// Noop returns a logger that discards everything, for callers (tests, or
// --no-log-config) that want the harness's log-shaped calls to be no-ops
// rather than threading a nil check through every call site.
func Noop() logger.Logger {
	logger.New("NOOP")
	return logger.Sugar.WithServiceName("noop")
}
