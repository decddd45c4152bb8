// Package errors provides structured error handling for memlab.
//
// Every failure the screen can observe maps to one ErrorKind. Callers match
// conditions with the standard library's errors.Is against the sentinels
// below, or errors.As against the typed errors when they need the details.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInput indicates rejected user input, such as a bad view count.
	KindInput
	// KindProgramming indicates a condition that should be unreachable,
	// such as selecting a component type absent from the factory table.
	KindProgramming
	// KindMeasurement indicates the memory-measurement primitive failed.
	KindMeasurement
	// KindCollection indicates the forced-collection primitive failed.
	KindCollection
	// KindRender indicates a rendering host failure.
	KindRender
	// KindConfig indicates a configuration error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindProgramming:
		return "programming"
	case KindMeasurement:
		return "measurement"
	case KindCollection:
		return "collection"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidViewCount       = stderrors.New("invalid view count")
	ErrUnknownComponentType   = stderrors.New("unknown component type")
	ErrMeasurementUnavailable = stderrors.New("memory measurement unavailable")
	ErrCollectionUnavailable  = stderrors.New("forced collection unavailable")
	ErrHostClosed             = stderrors.New("rendering host closed")
)

// MemlabError represents a structured error reported by a memlab operation.
type MemlabError struct {
	// Op is the operation that failed (e.g., "screen.Create").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Cycle is the measurement cycle id, if one was active.
	Cycle string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MemlabError) Error() string {
	if e.Cycle != "" {
		return fmt.Sprintf("%s [%s] cycle=%s: %v", e.Op, e.Kind, e.Cycle, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MemlabError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "render.Host.materialize").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// InvalidViewCountError reports a view count that is empty, non-numeric,
// or not positive.
type InvalidViewCountError struct {
	// Input is the raw value supplied by the user.
	Input string
	// Reason says what was wrong with it.
	Reason string
}

func (e *InvalidViewCountError) Error() string {
	return fmt.Sprintf("invalid view count %q: %s", e.Input, e.Reason)
}

func (e *InvalidViewCountError) Is(target error) bool {
	return target == ErrInvalidViewCount
}

// UnknownComponentTypeError reports a label that has no factory entry.
type UnknownComponentTypeError struct {
	Type string
}

func (e *UnknownComponentTypeError) Error() string {
	return fmt.Sprintf("unknown component type: %q", e.Type)
}

func (e *UnknownComponentTypeError) Is(target error) bool {
	return target == ErrUnknownComponentType
}

// MeasurementUnavailableError reports that a memory probe could not be read.
type MeasurementUnavailableError struct {
	// Probe names the probe that failed.
	Probe string
	// Err is the probe's own error, if any.
	Err error
}

func (e *MeasurementUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("memory probe %q unavailable: %v", e.Probe, e.Err)
	}
	return fmt.Sprintf("memory probe %q unavailable", e.Probe)
}

func (e *MeasurementUnavailableError) Unwrap() error {
	return e.Err
}

func (e *MeasurementUnavailableError) Is(target error) bool {
	return target == ErrMeasurementUnavailable
}

// CollectionUnavailableError reports that no forced-collection primitive is
// available on this platform.
type CollectionUnavailableError struct {
	Collector string
}

func (e *CollectionUnavailableError) Error() string {
	if e.Collector == "" {
		return "forced collection unavailable"
	}
	return fmt.Sprintf("forced collection unavailable: %s", e.Collector)
}

func (e *CollectionUnavailableError) Is(target error) bool {
	return target == ErrCollectionUnavailable
}

// ErrorHandler receives errors reported by memlab operations.
type ErrorHandler interface {
	// HandleError is called when an operation fails.
	HandleError(err *MemlabError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
