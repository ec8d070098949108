package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Error types
const (
	ErrTypeConfig     = "config"
	ErrTypePlatform   = "platform"
	ErrTypeFetch      = "fetch"
	ErrTypeInstall    = "install"
	ErrTypeLaunch     = "launch"
	ErrTypeScan       = "scan"
	ErrTypeIO         = "io"
	ErrTypeInvalidArg = "invalid_argument"
	ErrTypeInternal   = "internal"
)

// Exit codes
const (
	ExitOK    = 0
	ExitFatal = 1
)

// AppError is an application error carrying the process exit code it maps to.
type AppError struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	Cause   error    `json:"-"`
	Code    int      `json:"-"`
	Stack   []string `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) String() string {
	return e.Error()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithStack records the caller stack, skipping runtime frames.
func (e *AppError) WithStack() *AppError {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, n)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			stack = append(stack, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more {
			break
		}
	}

	e.Stack = stack
	return e
}

// New creates an AppError.
func New(errType, message string, cause error, code int) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Code:    code,
	}
}

// Wrap wraps err as an AppError. An existing AppError keeps its type, cause
// and code, only the message is replaced.
func Wrap(err error, errType, message string, code int) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Type:    appErr.Type,
			Message: message,
			Cause:   appErr.Cause,
			Code:    appErr.Code,
			Stack:   appErr.Stack,
		}
	}

	return New(errType, message, err, code)
}

// Is reports whether any AppError in the chain has the given type.
func Is(err error, errType string) bool {
	if err == nil {
		return false
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}

	return false
}

func GetType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return "unknown"
}

// GetCode returns the exit code for err. Plain errors map to ExitFatal.
func GetCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return ExitFatal
}

// RootCause returns the innermost error of the chain.
func RootCause(err error) error {
	for err != nil {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
	return err
}

func ErrInvalidArg(param string) *AppError {
	return New(ErrTypeInvalidArg, fmt.Sprintf("invalid arg: %s", param), nil, ExitFatal).WithStack()
}

func Config(message string, cause error) *AppError {
	return New(ErrTypeConfig, message, cause, ExitFatal).WithStack()
}

func Platform(message string, cause error) *AppError {
	return New(ErrTypePlatform, message, cause, ExitFatal).WithStack()
}

func Fetch(message string, cause error) *AppError {
	return New(ErrTypeFetch, message, cause, ExitFatal).WithStack()
}

func Install(message string, cause error) *AppError {
	return New(ErrTypeInstall, message, cause, ExitFatal).WithStack()
}

func Launch(message string, cause error) *AppError {
	return New(ErrTypeLaunch, message, cause, ExitFatal).WithStack()
}

func Scan(message string, cause error) *AppError {
	return New(ErrTypeScan, message, cause, ExitFatal).WithStack()
}

func Internal(message string, cause error) *AppError {
	return New(ErrTypeInternal, message, cause, ExitFatal).WithStack()
}
