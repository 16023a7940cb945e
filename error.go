package glfw

import (
	"fmt"
	"log"
)

// ErrorCode is a native GLFW error code.
type ErrorCode int32

const (
	NotInitialized     ErrorCode = 0x00010001
	NoCurrentContext   ErrorCode = 0x00010002
	InvalidEnum        ErrorCode = 0x00010003
	InvalidValue       ErrorCode = 0x00010004
	OutOfMemory        ErrorCode = 0x00010005
	APIUnavailable     ErrorCode = 0x00010006
	VersionUnavailable ErrorCode = 0x00010007
	PlatformError      ErrorCode = 0x00010008
	FormatUnavailable  ErrorCode = 0x00010009
	NoWindowContext    ErrorCode = 0x0001000A
)

func (c ErrorCode) String() string {
	switch c {
	case NotInitialized:
		return "NOT_INITIALIZED"
	case NoCurrentContext:
		return "NO_CURRENT_CONTEXT"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case OutOfMemory:
		return "OUT_OF_MEMORY"
	case APIUnavailable:
		return "API_UNAVAILABLE"
	case VersionUnavailable:
		return "VERSION_UNAVAILABLE"
	case PlatformError:
		return "PLATFORM_ERROR"
	case FormatUnavailable:
		return "FORMAT_UNAVAILABLE"
	case NoWindowContext:
		return "NO_WINDOW_CONTEXT"
	default:
		return fmt.Sprintf("ERROR_%#x", int32(c))
	}
}

// ErrorMode selects how natively reported errors surface.
type ErrorMode int

const (
	// Raise returns the error from the call that triggered it.
	Raise ErrorMode = iota
	// Warn prints the error with a warning prefix and continues.
	Warn
	// Log prints the error and continues.
	Log
	// Ignore discards the error.
	Ignore
)

// ErrorReporting maps native error codes to reporting modes, with a
// fallback default for codes not listed.
type ErrorReporting struct {
	Default ErrorMode
	PerCode map[ErrorCode]ErrorMode
}

func (r ErrorReporting) modeFor(code ErrorCode) ErrorMode {
	if mode, ok := r.PerCode[code]; ok {
		return mode
	}
	return r.Default
}

// LoadError reports that no usable native library could be found or
// loaded. Fatal to startup.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("glfw: library load failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NativeError is an error the native library reported through its error
// callback.
type NativeError struct {
	Code        ErrorCode
	Description string
}

func (e *NativeError) Error() string {
	return fmt.Sprintf("glfw: [%s] %s", e.Code, e.Description)
}

// CallbackPanic is a panic raised inside a user callback, captured at the
// native boundary and returned from the call whose event processing
// triggered it. Stack is the panicking goroutine's stack at capture time.
type CallbackPanic struct {
	Value any
	Stack []byte
}

func (e *CallbackPanic) Error() string {
	return fmt.Sprintf("glfw: panic in callback: %v\n%s", e.Value, e.Stack)
}

// MarshalError reports malformed input to a struct marshaler, detected
// before any native call is attempted.
type MarshalError struct {
	Err error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("glfw: marshal: %v", e.Err)
}

func (e *MarshalError) Unwrap() error { return e.Err }

// reportNativeError routes one natively reported error according to the
// session's reporting configuration. In Raise mode the error lands in the
// pending slot, to be drained by the call that triggered event processing;
// the slot holds at most one failure, and a second report while one is in
// flight is deliberately dropped so the first survives intact.
func (s *Session) reportNativeError(code ErrorCode, description string) {
	err := &NativeError{Code: code, Description: description}
	switch s.ErrorReporting.modeFor(code) {
	case Raise:
		if s.pending == nil {
			s.pending = err
		}
	case Warn:
		log.Printf("glfw: warning: %v", err)
	case Log:
		log.Printf("%v", err)
	case Ignore:
	}
}
