// Package recovery converts panics into errors at trust boundaries.
// Filter specs panic on programming errors such as empty path segments;
// when the specs come from user documents those panics must surface as
// errors instead of crashing the process.
package recovery

import (
	"fmt"
	"log/slog"
	"runtime/debug"
)

// PanicError is returned when a wrapped function panicked.
type PanicError struct {
	Operation string
	Value     any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Operation, e.Value)
}

// RecoverToError wraps a function call with panic recovery.
// If the function panics, the panic is logged and returned as *PanicError.
//
// Example:
//
//	err := recovery.RecoverToError(logger, "BuildFilter", func() error {
//	    return doc.validate()
//	})
func RecoverToError(logger *slog.Logger, operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(logger, operation, r)
			err = &PanicError{Operation: operation, Value: r}
		}
	}()

	return fn()
}

// RecoverToValue wraps a function that returns a value and error.
// If the function panics, returns zero value and *PanicError.
//
// Example:
//
//	spec, err := recovery.RecoverToValue(logger, "NewSpec", func() (filter.Spec, error) {
//	    return filter.NewSpec(path, value, op), nil
//	})
func RecoverToValue[T any](logger *slog.Logger, operation string, fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			logPanic(logger, operation, r)

			var zero T
			result = zero
			err = &PanicError{Operation: operation, Value: r}
		}
	}()

	return fn()
}

func logPanic(logger *slog.Logger, operation string, r any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Panic recovered",
		"operation", operation,
		"panic", r,
		"stack", string(debug.Stack()),
	)
}
