package glfw

import (
	"image"
	"runtime"

	"github.com/agiangrant/glfw/internal/ffi"
)

// CreateWindow creates a window and its associated context. monitor selects
// the monitor for fullscreen mode, 0 for windowed; share names a window
// whose context to share objects with, 0 for none.
func (s *Session) CreateWindow(width, height int, title string, monitor Monitor, share Window) (Window, error) {
	handle := s.lib.CreateWindow(int32(width), int32(height), title, uintptr(monitor), uintptr(share))
	if err := s.check(); err != nil {
		return 0, err
	}
	if handle == 0 {
		return 0, &NativeError{Code: PlatformError, Description: "window creation failed"}
	}
	return Window(handle), nil
}

// DestroyWindow destroys a window and drops its side-table state. The
// handle must not be used afterwards.
func (s *Session) DestroyWindow(w Window) error {
	s.lib.DestroyWindow(uintptr(w))
	s.purgeHandle(uintptr(w))
	return s.check()
}

// DefaultWindowHints resets all window hints to their defaults.
func (s *Session) DefaultWindowHints() error {
	s.lib.DefaultWindowHints()
	return s.check()
}

// WindowHint sets a creation hint for the next CreateWindow call.
func (s *Session) WindowHint(hint Hint, value int) error {
	s.lib.WindowHint(int32(hint), int32(value))
	return s.check()
}

// WindowHintString sets a string-valued creation hint. Requires GLFW 3.3.
func (s *Session) WindowHintString(hint Hint, value string) error {
	if s.lib.WindowHintString == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwWindowHintString requires GLFW 3.3"}
	}
	s.lib.WindowHintString(int32(hint), value)
	return s.check()
}

// WindowShouldClose reports the window's close flag.
func (s *Session) WindowShouldClose(w Window) (bool, error) {
	v := s.lib.WindowShouldClose(uintptr(w))
	return v != 0, s.check()
}

// SetWindowShouldClose sets the window's close flag.
func (s *Session) SetWindowShouldClose(w Window, value bool) error {
	var v int32
	if value {
		v = 1
	}
	s.lib.SetWindowShouldClose(uintptr(w), v)
	return s.check()
}

// SetWindowTitle sets the window title.
func (s *Session) SetWindowTitle(w Window, title string) error {
	s.lib.SetWindowTitle(uintptr(w), title)
	return s.check()
}

// SetWindowIcon sets the window icon from candidate images; the system
// picks the closest sizes. An empty slice reverts to the default icon.
// Each image may be a *PixelGrid or any other image.Image.
func (s *Session) SetWindowIcon(w Window, images []image.Image) error {
	if len(images) == 0 {
		s.lib.SetWindowIcon(uintptr(w), 0, 0)
		return s.check()
	}
	bufs := make([]*ffi.ImageBuf, len(images))
	natives := make([]ffi.ImageC, len(images))
	for i, img := range images {
		buf, err := ffi.WrapImage(img)
		if err != nil {
			return &MarshalError{Err: err}
		}
		bufs[i] = buf
		natives[i] = buf.C
	}
	s.lib.SetWindowIcon(uintptr(w), int32(len(natives)), ffi.Ptr(&natives[0]))
	runtime.KeepAlive(bufs)
	runtime.KeepAlive(natives)
	return s.check()
}

// GetWindowPos reports the position of the window's client area.
func (s *Session) GetWindowPos(w Window) (x, y int, err error) {
	var cx, cy int32
	s.lib.GetWindowPos(uintptr(w), ffi.Ptr(&cx), ffi.Ptr(&cy))
	return int(cx), int(cy), s.check()
}

// SetWindowPos moves the window's client area.
func (s *Session) SetWindowPos(w Window, x, y int) error {
	s.lib.SetWindowPos(uintptr(w), int32(x), int32(y))
	return s.check()
}

// GetWindowSize reports the size of the window's client area.
func (s *Session) GetWindowSize(w Window) (width, height int, err error) {
	var cw, ch int32
	s.lib.GetWindowSize(uintptr(w), ffi.Ptr(&cw), ffi.Ptr(&ch))
	return int(cw), int(ch), s.check()
}

// SetWindowSize resizes the window's client area.
func (s *Session) SetWindowSize(w Window, width, height int) error {
	s.lib.SetWindowSize(uintptr(w), int32(width), int32(height))
	return s.check()
}

// SetWindowSizeLimits constrains the window's client area size. Pass
// DontCare to leave a bound open.
func (s *Session) SetWindowSizeLimits(w Window, minW, minH, maxW, maxH int) error {
	s.lib.SetWindowSizeLimits(uintptr(w), int32(minW), int32(minH), int32(maxW), int32(maxH))
	return s.check()
}

// SetWindowAspectRatio constrains the window's aspect ratio. Pass DontCare
// for both to disable.
func (s *Session) SetWindowAspectRatio(w Window, numer, denom int) error {
	s.lib.SetWindowAspectRatio(uintptr(w), int32(numer), int32(denom))
	return s.check()
}

// GetFramebufferSize reports the size of the window's framebuffer in
// pixels.
func (s *Session) GetFramebufferSize(w Window) (width, height int, err error) {
	var cw, ch int32
	s.lib.GetFramebufferSize(uintptr(w), ffi.Ptr(&cw), ffi.Ptr(&ch))
	return int(cw), int(ch), s.check()
}

// GetWindowFrameSize reports the size of each edge of the window's frame.
func (s *Session) GetWindowFrameSize(w Window) (left, top, right, bottom int, err error) {
	var cl, ct, cr, cb int32
	s.lib.GetWindowFrameSize(uintptr(w), ffi.Ptr(&cl), ffi.Ptr(&ct), ffi.Ptr(&cr), ffi.Ptr(&cb))
	return int(cl), int(ct), int(cr), int(cb), s.check()
}

// GetWindowContentScale reports the window's content scale. Requires GLFW
// 3.3.
func (s *Session) GetWindowContentScale(w Window) (xscale, yscale float32, err error) {
	if s.lib.GetWindowContentScale == nil {
		return 0, 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetWindowContentScale requires GLFW 3.3"}
	}
	s.lib.GetWindowContentScale(uintptr(w), ffi.Ptr(&xscale), ffi.Ptr(&yscale))
	return xscale, yscale, s.check()
}

// GetWindowOpacity reports the window's opacity in [0, 1]. Requires GLFW
// 3.3.
func (s *Session) GetWindowOpacity(w Window) (float32, error) {
	if s.lib.GetWindowOpacity == nil {
		return 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetWindowOpacity requires GLFW 3.3"}
	}
	opacity := s.lib.GetWindowOpacity(uintptr(w))
	return opacity, s.check()
}

// SetWindowOpacity sets the window's opacity in [0, 1]. Requires GLFW 3.3.
func (s *Session) SetWindowOpacity(w Window, opacity float32) error {
	if s.lib.SetWindowOpacity == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwSetWindowOpacity requires GLFW 3.3"}
	}
	s.lib.SetWindowOpacity(uintptr(w), opacity)
	return s.check()
}

// IconifyWindow iconifies (minimizes) the window.
func (s *Session) IconifyWindow(w Window) error {
	s.lib.IconifyWindow(uintptr(w))
	return s.check()
}

// RestoreWindow restores the window from iconified or maximized state.
func (s *Session) RestoreWindow(w Window) error {
	s.lib.RestoreWindow(uintptr(w))
	return s.check()
}

// MaximizeWindow maximizes the window. Requires GLFW 3.2.
func (s *Session) MaximizeWindow(w Window) error {
	if s.lib.MaximizeWindow == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwMaximizeWindow requires GLFW 3.2"}
	}
	s.lib.MaximizeWindow(uintptr(w))
	return s.check()
}

// ShowWindow makes the window visible.
func (s *Session) ShowWindow(w Window) error {
	s.lib.ShowWindow(uintptr(w))
	return s.check()
}

// HideWindow hides the window.
func (s *Session) HideWindow(w Window) error {
	s.lib.HideWindow(uintptr(w))
	return s.check()
}

// FocusWindow brings the window to front and gives it input focus.
// Requires GLFW 3.2.
func (s *Session) FocusWindow(w Window) error {
	if s.lib.FocusWindow == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwFocusWindow requires GLFW 3.2"}
	}
	s.lib.FocusWindow(uintptr(w))
	return s.check()
}

// RequestWindowAttention asks the system to highlight the window. Requires
// GLFW 3.3.
func (s *Session) RequestWindowAttention(w Window) error {
	if s.lib.RequestWindowAttention == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwRequestWindowAttention requires GLFW 3.3"}
	}
	s.lib.RequestWindowAttention(uintptr(w))
	return s.check()
}

// GetWindowMonitor reports the monitor a fullscreen window covers, or 0
// for a windowed-mode window.
func (s *Session) GetWindowMonitor(w Window) (Monitor, error) {
	m := s.lib.GetWindowMonitor(uintptr(w))
	return Monitor(m), s.check()
}

// SetWindowMonitor switches the window between fullscreen and windowed
// mode. Requires GLFW 3.2.
func (s *Session) SetWindowMonitor(w Window, monitor Monitor, x, y, width, height, refreshRate int) error {
	if s.lib.SetWindowMonitor == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwSetWindowMonitor requires GLFW 3.2"}
	}
	s.lib.SetWindowMonitor(uintptr(w), uintptr(monitor), int32(x), int32(y), int32(width), int32(height), int32(refreshRate))
	return s.check()
}

// GetWindowAttrib reports a window attribute or context property.
func (s *Session) GetWindowAttrib(w Window, attrib Hint) (int, error) {
	v := s.lib.GetWindowAttrib(uintptr(w), int32(attrib))
	return int(v), s.check()
}

// SetWindowAttrib changes a settable window attribute. Requires GLFW 3.3.
func (s *Session) SetWindowAttrib(w Window, attrib Hint, value int) error {
	if s.lib.SetWindowAttrib == nil {
		return &NativeError{Code: VersionUnavailable, Description: "glfwSetWindowAttrib requires GLFW 3.3"}
	}
	s.lib.SetWindowAttrib(uintptr(w), int32(attrib), int32(value))
	return s.check()
}

// SetWindowUserPointer associates an arbitrary value with the window. The
// value lives host-side, keyed by the handle; only a value that is itself
// a uintptr is also written to the native slot, so foreign code reading
// glfwGetWindowUserPointer sees either that word or zero, never a
// reinterpreted Go pointer.
func (s *Session) SetWindowUserPointer(w Window, value any) error {
	if value == nil {
		delete(s.windowPointers, uintptr(w))
		s.lib.SetWindowUserPointer(uintptr(w), 0)
		return s.check()
	}
	s.windowPointers[uintptr(w)] = value
	if word, ok := value.(uintptr); ok {
		s.lib.SetWindowUserPointer(uintptr(w), word)
	} else {
		s.lib.SetWindowUserPointer(uintptr(w), 0)
	}
	return s.check()
}

// GetWindowUserPointer returns the value associated with the window, or
// nil. A raw word set natively by foreign code, with no host-side entry,
// comes back as a uintptr.
func (s *Session) GetWindowUserPointer(w Window) (any, error) {
	if v, ok := s.windowPointers[uintptr(w)]; ok {
		return v, s.check()
	}
	if word := s.lib.GetWindowUserPointer(uintptr(w)); word != 0 {
		return word, s.check()
	}
	return nil, s.check()
}
