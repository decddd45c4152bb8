package errors

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type installed struct{ h ErrorHandler }

var (
	current  atomic.Pointer[installed]
	fallback ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the process error handler. Pass nil to restore
// the LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		current.Store(nil)
		return
	}
	current.Store(&installed{h: h})
}

// Handler returns the installed error handler.
func Handler() ErrorHandler {
	if in := current.Load(); in != nil {
		return in.h
	}
	return fallback
}

// Report stamps err and hands it to the installed handler. Programming
// errors also carry the caller's stack, since they point at a bug rather
// than at user input or the platform.
func Report(err *MemlabError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.Kind == KindProgramming && err.StackTrace == "" {
		err.StackTrace = stack(1)
	}
	Handler().HandleError(err)
}

// Recover reports a panic raised in op and then passes the recovered value
// to onPanic, if set. It must be called directly by a deferred statement:
//
//	defer errors.Recover("render.Host.apply", rollback)
func Recover(op string, onPanic func(any)) {
	r := recover()
	if r == nil {
		return
	}
	Handler().HandlePanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: stack(2),
		Timestamp:  time.Now(),
	})
	if onPanic != nil {
		onPanic(r)
	}
}

// stack formats the goroutine's stack, dropping skip frames above the
// caller.
func stack(skip int) string {
	return zap.StackSkip("", skip+1).String
}
