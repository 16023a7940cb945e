package glfw

import (
	"image"
	"runtime"

	"github.com/agiangrant/glfw/internal/ffi"
)

// PollEvents processes pending events and returns immediately. Callbacks
// run during the call; a failure captured in one surfaces as this call's
// error.
func (s *Session) PollEvents() error {
	s.lib.PollEvents()
	return s.check()
}

// WaitEvents blocks until at least one event arrives, then processes all
// pending events.
func (s *Session) WaitEvents() error {
	s.lib.WaitEvents()
	return s.check()
}

// WaitEventsTimeout is WaitEvents with a timeout in seconds. Requires GLFW
// 3.2.
func (s *Session) WaitEventsTimeout(timeout float64) error {
	if s.lib.WaitEventsTimeout == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwWaitEventsTimeout requires GLFW 3.2"}
	}
	s.lib.WaitEventsTimeout(timeout)
	return s.check()
}

// PostEmptyEvent posts an empty event to wake a blocked WaitEvents. Safe
// to call from any goroutine. Requires GLFW 3.1.
func (s *Session) PostEmptyEvent() error {
	if s.lib.PostEmptyEvent == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwPostEmptyEvent requires GLFW 3.1"}
	}
	s.lib.PostEmptyEvent()
	return nil
}

// GetInputMode reports the value of a per-window input mode.
func (s *Session) GetInputMode(w Window, mode InputMode) (int, error) {
	v := s.lib.GetInputMode(uintptr(w), int32(mode))
	return int(v), s.check()
}

// SetInputMode sets a per-window input mode.
func (s *Session) SetInputMode(w Window, mode InputMode, value int) error {
	s.lib.SetInputMode(uintptr(w), int32(mode), int32(value))
	return s.check()
}

// RawMouseMotionSupported reports whether raw mouse motion is available.
// Requires GLFW 3.3.
func (s *Session) RawMouseMotionSupported() (bool, error) {
	if s.lib.RawMouseMotionSupported == nil {
		return false, nil
	}
	v := s.lib.RawMouseMotionSupported()
	return v != 0, s.check()
}

// GetKey reports the last reported state of a key, Press or Release.
func (s *Session) GetKey(w Window, key int) (Action, error) {
	v := s.lib.GetKey(uintptr(w), int32(key))
	return Action(v), s.check()
}

// GetKeyName reports the localized name of a printable key, or "" when the
// key has none. Requires GLFW 3.2.
func (s *Session) GetKeyName(key, scancode int) (string, error) {
	if s.lib.GetKeyName == nil {
		return "", &NativeError{Code: VersionUnavailable, Description: "glfwGetKeyName requires GLFW 3.2"}
	}
	ptr := s.lib.GetKeyName(int32(key), int32(scancode))
	return ffi.GoString(ptr), s.check()
}

// GetKeyScancode reports the platform scancode of a key. Requires GLFW
// 3.3.
func (s *Session) GetKeyScancode(key int) (int, error) {
	if s.lib.GetKeyScancode == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetKeyScancode requires GLFW 3.3"}
	}
	v := s.lib.GetKeyScancode(int32(key))
	return int(v), s.check()
}

// GetMouseButton reports the last reported state of a mouse button.
func (s *Session) GetMouseButton(w Window, button int) (Action, error) {
	v := s.lib.GetMouseButton(uintptr(w), int32(button))
	return Action(v), s.check()
}

// GetCursorPos reports the cursor position relative to the window's client
// area.
func (s *Session) GetCursorPos(w Window) (x, y float64, err error) {
	s.lib.GetCursorPos(uintptr(w), ffi.Ptr(&x), ffi.Ptr(&y))
	return x, y, s.check()
}

// SetCursorPos moves the cursor within the window's client area.
func (s *Session) SetCursorPos(w Window, x, y float64) error {
	s.lib.SetCursorPos(uintptr(w), x, y)
	return s.check()
}

// CreateCursor creates a custom cursor from an image with the given
// hotspot. The image may be a *PixelGrid or any other image.Image.
// Requires GLFW 3.1.
func (s *Session) CreateCursor(img image.Image, xhot, yhot int) (Cursor, error) {
	if s.lib.CreateCursor == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwCreateCursor requires GLFW 3.1"}
	}
	buf, err := ffi.WrapImage(img)
	if err != nil {
		return 0, &MarshalError{Err: err}
	}
	handle := s.lib.CreateCursor(buf.CPtr(), int32(xhot), int32(yhot))
	runtime.KeepAlive(buf)
	if err := s.check(); err != nil {
		return 0, err
	}
	return Cursor(handle), nil
}

// CreateStandardCursor creates a cursor with one of the standard shapes.
// Requires GLFW 3.1.
func (s *Session) CreateStandardCursor(shape CursorShape) (Cursor, error) {
	if s.lib.CreateStandardCursor == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwCreateStandardCursor requires GLFW 3.1"}
	}
	handle := s.lib.CreateStandardCursor(int32(shape))
	if err := s.check(); err != nil {
		return 0, err
	}
	return Cursor(handle), nil
}

// DestroyCursor destroys a cursor. Requires GLFW 3.1.
func (s *Session) DestroyCursor(c Cursor) error {
	if s.lib.DestroyCursor == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwDestroyCursor requires GLFW 3.1"}
	}
	s.lib.DestroyCursor(uintptr(c))
	s.purgeHandle(uintptr(c))
	return s.check()
}

// SetCursor sets the cursor image shown over the window's client area, or
// restores the default with 0. Requires GLFW 3.1.
func (s *Session) SetCursor(w Window, c Cursor) error {
	if s.lib.SetCursor == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwSetCursor requires GLFW 3.1"}
	}
	s.lib.SetCursor(uintptr(w), uintptr(c))
	return s.check()
}

// SetClipboardString places a string on the system clipboard.
func (s *Session) SetClipboardString(w Window, str string) error {
	s.lib.SetClipboardString(uintptr(w), str)
	return s.check()
}

// GetClipboardString reads the system clipboard, or "" when it holds no
// convertible string.
func (s *Session) GetClipboardString(w Window) (string, error) {
	ptr := s.lib.GetClipboardString(uintptr(w))
	return ffi.GoString(ptr), s.check()
}

// GetTime reports the value of the GLFW timer in seconds.
func (s *Session) GetTime() (float64, error) {
	t := s.lib.GetTime()
	return t, s.check()
}

// SetTime sets the GLFW timer.
func (s *Session) SetTime(t float64) error {
	s.lib.SetTime(t)
	return s.check()
}

// GetTimerValue reports the raw timer value. Requires GLFW 3.2.
func (s *Session) GetTimerValue() (uint64, error) {
	if s.lib.GetTimerValue == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetTimerValue requires GLFW 3.2"}
	}
	v := s.lib.GetTimerValue()
	return v, s.check()
}

// GetTimerFrequency reports the raw timer frequency in Hz. Requires GLFW
// 3.2.
func (s *Session) GetTimerFrequency() (uint64, error) {
	if s.lib.GetTimerFrequency == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetTimerFrequency requires GLFW 3.2"}
	}
	v := s.lib.GetTimerFrequency()
	return v, s.check()
}

// MakeContextCurrent makes the window's context current on the calling
// thread, or detaches with 0.
func (s *Session) MakeContextCurrent(w Window) error {
	s.lib.MakeContextCurrent(uintptr(w))
	return s.check()
}

// GetCurrentContext reports the window whose context is current on the
// calling thread.
func (s *Session) GetCurrentContext() (Window, error) {
	w := s.lib.GetCurrentContext()
	return Window(w), s.check()
}

// SwapBuffers swaps the window's front and back buffers.
func (s *Session) SwapBuffers(w Window) error {
	s.lib.SwapBuffers(uintptr(w))
	return s.check()
}

// SwapInterval sets the number of vertical blanks to wait between swaps.
func (s *Session) SwapInterval(interval int) error {
	s.lib.SwapInterval(int32(interval))
	return s.check()
}

// ExtensionSupported reports whether the current context supports an API
// extension.
func (s *Session) ExtensionSupported(extension string) (bool, error) {
	v := s.lib.ExtensionSupported(extension)
	return v != 0, s.check()
}
