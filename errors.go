package meshkit

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/scigolib/meshkit/internal/utils"
)

// FatalError is raised for structural impossibilities or programming
// mistakes: out-of-range index, strict-accessor type mismatch, a
// path-fetch on a non-existent const path, a converter called on
// non-conforming input. Per §7, no kernel operation returns a sentinel
// value to signal this class of failure; it is always routed through the
// process-wide ErrorHandler.
type FatalError struct {
	Message string
	Source  string
	Line    int
	Cause   error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s (%s:%d): %v", e.Message, e.Source, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *FatalError) Unwrap() error { return e.Cause }

// ErrorHandler is the signature of the single process-wide fatal-error
// sink: message, source location, and line number. The default
// implementation panics; applications may install a replacement that
// logs, aborts, or integrates with their framework.
type ErrorHandler func(message, sourceLocation string, line int)

var handler atomic.Pointer[ErrorHandler]

func init() {
	var h ErrorHandler = defaultHandler
	handler.Store(&h)
}

func defaultHandler(message, sourceLocation string, line int) {
	panic(&FatalError{Message: message, Source: sourceLocation, Line: line, Cause: errors.New(message)})
}

// SetErrorHandler installs a new process-wide fatal-error handler.
// Per §5/§9 this is a single function-pointer assignment intended to
// happen once at process start; installing a handler concurrently with
// handler invocation is not synchronized by this package.
func SetErrorHandler(h ErrorHandler) {
	if h == nil {
		return
	}
	handler.Store(&h)
}

// Fatal routes a fatal error through the installed process-wide handler.
// context names the operation that failed (e.g. "node.as_int32_accessor");
// cause is the underlying error. The two are joined via utils.WrapError
// and the handler receives only the resulting message text; the cause
// value itself is not passed on.
func Fatal(context string, cause error) {
	h := *handler.Load()
	wrapped := utils.WrapError(context, cause)
	h(wrapped.Error(), "meshkit", 0)
}

// fatalf is a convenience wrapper building a formatted fatal error.
func fatalf(context, format string, args ...any) {
	Fatal(context, fmt.Errorf(format, args...))
}

func errPathNotFound(path string) error {
	return fmt.Errorf("path %q not found", path)
}

func errUnsupportedType(v any) error {
	return fmt.Errorf("unsupported value type %T", v)
}

func errUnknownKindStr(kind string) error {
	return fmt.Errorf("operation requires a leaf node, got kind %s", kind)
}
