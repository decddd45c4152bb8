package errors

import (
	"go.uber.org/zap"

	"github.com/go-drift/memlab/pkg/logging"
)

// LogHandler is an ErrorHandler that writes to the process zap logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs a MemlabError. Input errors are expected during normal
// use and are logged at warn; everything else is an error.
func (h *LogHandler) HandleError(err *MemlabError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Error(err.Err),
	}
	if err.Cycle != "" {
		fields = append(fields, zap.String("cycle", err.Cycle))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}

	log := logging.L()
	if err.Kind == KindInput {
		log.Warn("memlab error", fields...)
		return
	}
	log.Error("memlab error", fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	logging.L().Error("memlab panic", fields...)
}
