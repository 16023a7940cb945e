package glfw

import (
	"errors"

	"github.com/agiangrant/glfw/internal/ffi"
)

// Session is the binding context: the bound call table plus every piece of
// host-side state the native library cannot hold for us. All methods must
// be called from a single goroutine (conventionally the main one, locked to
// its OS thread); the only exception is PostEmptyEvent, which exists
// precisely to be called from elsewhere to unblock WaitEvents.
type Session struct {
	lib  *ffi.Lib
	path string

	// NormalizeGammaRamps selects the normalized float representation for
	// gamma ramps. Resolved every time a ramp crosses the boundary, so
	// flipping it mid-process affects subsequent calls only. On by
	// default.
	NormalizeGammaRamps bool

	// ErrorReporting controls how natively reported errors surface.
	// Defaults to Raise for every code.
	ErrorReporting ErrorReporting

	// pending holds the single captured failure awaiting propagation.
	// While non-nil, user callback bodies are suppressed.
	pending error

	callbacks   map[callbackKey]any
	trampolines map[callbackKind]uintptr

	// User-pointer side tables, keyed by raw handle identity. Native
	// slots store one machine word; anything richer lives here.
	windowPointers   map[uintptr]any
	monitorPointers  map[uintptr]any
	joystickPointers map[Joystick]any
}

func newSession(lib *ffi.Lib, path string) *Session {
	return &Session{
		lib:                 lib,
		path:                path,
		NormalizeGammaRamps: true,
		callbacks:           make(map[callbackKey]any),
		trampolines:         make(map[callbackKind]uintptr),
		windowPointers:      make(map[uintptr]any),
		monitorPointers:     make(map[uintptr]any),
		joystickPointers:    make(map[Joystick]any),
	}
}

// LibraryPath returns the shared-library file the session loaded.
func (s *Session) LibraryPath() string { return s.path }

// Init initializes the native library. The error trampoline is installed
// first so even init-time failures are reported through the session.
func (s *Session) Init() error {
	s.lib.SetErrorCallback(s.trampoline(kindError))
	ok := s.lib.Init()
	if err := s.check(); err != nil {
		return err
	}
	if ok == 0 {
		return errors.New("glfw: initialization failed")
	}
	return nil
}

// Terminate shuts the native library down and clears every side table.
// Handles are invalid afterwards; stale entries would collide with reused
// handle addresses in a future Init.
func (s *Session) Terminate() error {
	s.lib.Terminate()
	err := s.check()
	clear(s.callbacks)
	clear(s.windowPointers)
	clear(s.monitorPointers)
	clear(s.joystickPointers)
	s.pending = nil
	return err
}

// InitHint sets an init hint for the next Init call. Requires GLFW 3.3.
func (s *Session) InitHint(hint Hint, value int) error {
	if s.lib.InitHint == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwInitHint requires GLFW 3.3"}
	}
	s.lib.InitHint(int32(hint), int32(value))
	return s.check()
}

// GetError reads and clears the library's own last-error slot. Useful for
// foreign code sharing the library; errors raised through the session
// surface from its own methods instead. Requires GLFW 3.3.
func (s *Session) GetError() (ErrorCode, string, error) {
	if s.lib.GetError == nil {
		return 0, "", &NativeError{Code: VersionUnavailable, Description: "glfwGetError requires GLFW 3.3"}
	}
	var desc uintptr
	code := s.lib.GetError(ffi.Ptr(&desc))
	return ErrorCode(code), ffi.GoString(desc), s.check()
}

// GetVersion reports the version of the loaded library.
func (s *Session) GetVersion() Version {
	var major, minor, rev int32
	s.lib.GetVersion(ffi.Ptr(&major), ffi.Ptr(&minor), ffi.Ptr(&rev))
	return Version{Major: int(major), Minor: int(minor), Rev: int(rev)}
}

// GetVersionString reports the compile-time configuration string of the
// loaded library.
func (s *Session) GetVersionString() string {
	return s.lib.GetVersionString()
}

// check is the propagation checkpoint: every public operation drains the
// pending slot on its return path, so a failure captured inside a callback
// surfaces from the call whose event processing ran the callback.
func (s *Session) check() error {
	if s.pending == nil {
		return nil
	}
	err := s.pending
	s.pending = nil
	return err
}

// purgeHandle drops every side-table entry for a destroyed handle. The
// native library may hand the same address to a future object, so stale
// entries are a correctness hazard, not just a leak.
func (s *Session) purgeHandle(handle uintptr) {
	delete(s.windowPointers, handle)
	delete(s.monitorPointers, handle)
	for key := range s.callbacks {
		if key.handle == handle {
			delete(s.callbacks, key)
		}
	}
}
