package glfw

import (
	"runtime/debug"

	"github.com/agiangrant/glfw/internal/ffi"
	"github.com/ebitengine/purego"
)

// callbackKind identifies one native callback slot family.
type callbackKind int

const (
	kindError callbackKind = iota
	kindWindowPos
	kindWindowSize
	kindWindowClose
	kindWindowRefresh
	kindWindowFocus
	kindWindowIconify
	kindWindowMaximize
	kindFramebufferSize
	kindContentScale
	kindKey
	kindChar
	kindCharMods
	kindMouseButton
	kindCursorPos
	kindCursorEnter
	kindScroll
	kindDrop
	kindMonitor
	kindJoystick
)

// callbackKey addresses one registration: at most one user callback is live
// per (handle, kind) pair. Global kinds (error, monitor, joystick) use
// handle 0.
type callbackKey struct {
	handle uintptr
	kind   callbackKind
}

// User-facing callback signatures.
type (
	ErrorCallback           func(code ErrorCode, description string)
	WindowPosCallback       func(w Window, x, y int)
	WindowSizeCallback      func(w Window, width, height int)
	WindowCloseCallback     func(w Window)
	WindowRefreshCallback   func(w Window)
	WindowFocusCallback     func(w Window, focused bool)
	WindowIconifyCallback   func(w Window, iconified bool)
	WindowMaximizeCallback  func(w Window, maximized bool)
	FramebufferSizeCallback func(w Window, width, height int)
	ContentScaleCallback    func(w Window, xscale, yscale float32)
	KeyCallback             func(w Window, key, scancode int, action Action, mods int)
	CharCallback            func(w Window, char rune)
	CharModsCallback        func(w Window, char rune, mods int)
	MouseButtonCallback     func(w Window, button int, action Action, mods int)
	CursorPosCallback       func(w Window, x, y float64)
	CursorEnterCallback     func(w Window, entered bool)
	ScrollCallback          func(w Window, xoff, yoff float64)
	DropCallback            func(w Window, paths []string)
	MonitorCallback         func(m Monitor, event int)
	JoystickCallback        func(jid Joystick, event int)
)

// dispatch runs the registered user callback for (handle, kind), if any.
// While a captured failure is pending, user code is suppressed entirely: a
// second panic before the first is drained would corrupt the single-slot
// propagation protocol, so later invocations no-op until the slot clears.
// A panic inside the callback is captured with its stack and the native
// caller sees a normal return.
func (s *Session) dispatch(handle uintptr, kind callbackKind, call func(cb any)) {
	if s.pending != nil {
		return
	}
	cb, ok := s.callbacks[callbackKey{handle, kind}]
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.pending = &CallbackPanic{Value: r, Stack: debug.Stack()}
		}
	}()
	call(cb)
}

// trampoline returns the native-ABI entry point for a callback kind,
// creating it on first use. purego callbacks are a finite process-wide
// resource, so one trampoline per kind dispatches to whichever user
// callback is registered rather than one per registration.
func (s *Session) trampoline(kind callbackKind) uintptr {
	if ptr, ok := s.trampolines[kind]; ok {
		return ptr
	}
	var fn any
	switch kind {
	case kindError:
		fn = func(code int32, description uintptr) {
			s.handleNativeError(ErrorCode(code), ffi.GoString(description))
		}
	case kindWindowPos:
		fn = func(w uintptr, x, y int32) {
			s.dispatch(w, kindWindowPos, func(cb any) {
				cb.(WindowPosCallback)(Window(w), int(x), int(y))
			})
		}
	case kindWindowSize:
		fn = func(w uintptr, width, height int32) {
			s.dispatch(w, kindWindowSize, func(cb any) {
				cb.(WindowSizeCallback)(Window(w), int(width), int(height))
			})
		}
	case kindWindowClose:
		fn = func(w uintptr) {
			s.dispatch(w, kindWindowClose, func(cb any) {
				cb.(WindowCloseCallback)(Window(w))
			})
		}
	case kindWindowRefresh:
		fn = func(w uintptr) {
			s.dispatch(w, kindWindowRefresh, func(cb any) {
				cb.(WindowRefreshCallback)(Window(w))
			})
		}
	case kindWindowFocus:
		fn = func(w uintptr, focused int32) {
			s.dispatch(w, kindWindowFocus, func(cb any) {
				cb.(WindowFocusCallback)(Window(w), focused != 0)
			})
		}
	case kindWindowIconify:
		fn = func(w uintptr, iconified int32) {
			s.dispatch(w, kindWindowIconify, func(cb any) {
				cb.(WindowIconifyCallback)(Window(w), iconified != 0)
			})
		}
	case kindWindowMaximize:
		fn = func(w uintptr, maximized int32) {
			s.dispatch(w, kindWindowMaximize, func(cb any) {
				cb.(WindowMaximizeCallback)(Window(w), maximized != 0)
			})
		}
	case kindFramebufferSize:
		fn = func(w uintptr, width, height int32) {
			s.dispatch(w, kindFramebufferSize, func(cb any) {
				cb.(FramebufferSizeCallback)(Window(w), int(width), int(height))
			})
		}
	case kindContentScale:
		fn = func(w uintptr, xscale, yscale float32) {
			s.dispatch(w, kindContentScale, func(cb any) {
				cb.(ContentScaleCallback)(Window(w), xscale, yscale)
			})
		}
	case kindKey:
		fn = func(w uintptr, key, scancode, action, mods int32) {
			s.dispatch(w, kindKey, func(cb any) {
				cb.(KeyCallback)(Window(w), int(key), int(scancode), Action(action), int(mods))
			})
		}
	case kindChar:
		fn = func(w uintptr, char uint32) {
			s.dispatch(w, kindChar, func(cb any) {
				cb.(CharCallback)(Window(w), rune(char))
			})
		}
	case kindCharMods:
		fn = func(w uintptr, char uint32, mods int32) {
			s.dispatch(w, kindCharMods, func(cb any) {
				cb.(CharModsCallback)(Window(w), rune(char), int(mods))
			})
		}
	case kindMouseButton:
		fn = func(w uintptr, button, action, mods int32) {
			s.dispatch(w, kindMouseButton, func(cb any) {
				cb.(MouseButtonCallback)(Window(w), int(button), Action(action), int(mods))
			})
		}
	case kindCursorPos:
		fn = func(w uintptr, x, y float64) {
			s.dispatch(w, kindCursorPos, func(cb any) {
				cb.(CursorPosCallback)(Window(w), x, y)
			})
		}
	case kindCursorEnter:
		fn = func(w uintptr, entered int32) {
			s.dispatch(w, kindCursorEnter, func(cb any) {
				cb.(CursorEnterCallback)(Window(w), entered != 0)
			})
		}
	case kindScroll:
		fn = func(w uintptr, xoff, yoff float64) {
			s.dispatch(w, kindScroll, func(cb any) {
				cb.(ScrollCallback)(Window(w), xoff, yoff)
			})
		}
	case kindDrop:
		fn = func(w uintptr, count int32, paths uintptr) {
			s.dispatch(w, kindDrop, func(cb any) {
				cb.(DropCallback)(Window(w), ffi.GoStrings(paths, int(count)))
			})
		}
	case kindMonitor:
		fn = func(m uintptr, event int32) {
			s.dispatch(0, kindMonitor, func(cb any) {
				cb.(MonitorCallback)(Monitor(m), int(event))
			})
			if event == Disconnected {
				s.purgeHandle(m)
			}
		}
	case kindJoystick:
		fn = func(jid, event int32) {
			s.dispatch(0, kindJoystick, func(cb any) {
				cb.(JoystickCallback)(Joystick(jid), int(event))
			})
			if event == Disconnected {
				delete(s.joystickPointers, Joystick(jid))
			}
		}
	}
	ptr := purego.NewCallback(fn)
	s.trampolines[kind] = ptr
	return ptr
}

// handleNativeError is the error-kind trampoline body: a user error
// callback, when registered, takes over completely; otherwise the error is
// routed through the session's reporting configuration.
func (s *Session) handleNativeError(code ErrorCode, description string) {
	if _, ok := s.callbacks[callbackKey{0, kindError}]; ok {
		s.dispatch(0, kindError, func(cb any) {
			cb.(ErrorCallback)(code, description)
		})
		return
	}
	s.reportNativeError(code, description)
}

// swap atomically replaces the user callback registered for (handle, kind)
// and returns the previous one, mirroring the native library's own
// "returns previous callback" convention. A nil cb uninstalls.
func (s *Session) swap(handle uintptr, kind callbackKind, cb any) any {
	key := callbackKey{handle, kind}
	prev := s.callbacks[key]
	if cb == nil {
		delete(s.callbacks, key)
	} else {
		s.callbacks[key] = cb
	}
	return prev
}

// installWindow wires a per-window callback: registry swap plus native
// (un)installation of the kind's trampoline.
func (s *Session) installWindow(w Window, kind callbackKind, cb any, set func(window, trampoline uintptr) uintptr) any {
	prev := s.swap(uintptr(w), kind, cb)
	var native uintptr
	if cb != nil {
		native = s.trampoline(kind)
	}
	set(uintptr(w), native)
	return prev
}

// SetErrorCallback installs the error callback, replacing the session's
// default error reporting until it is uninstalled again. Returns the
// previously installed callback, if any.
func (s *Session) SetErrorCallback(cb ErrorCallback) ErrorCallback {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	// The error trampoline itself stays installed: it also carries the
	// default reporting path.
	prev, _ := s.swap(0, kindError, boxed).(ErrorCallback)
	return prev
}

// SetWindowPosCallback installs the position-changed callback for a window
// and returns the previous one.
func (s *Session) SetWindowPosCallback(w Window, cb WindowPosCallback) (WindowPosCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowPos, boxed, s.lib.SetWindowPosCallback).(WindowPosCallback)
	return prev, s.check()
}

// SetWindowSizeCallback installs the size-changed callback for a window and
// returns the previous one.
func (s *Session) SetWindowSizeCallback(w Window, cb WindowSizeCallback) (WindowSizeCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowSize, boxed, s.lib.SetWindowSizeCallback).(WindowSizeCallback)
	return prev, s.check()
}

// SetWindowCloseCallback installs the close-requested callback for a window
// and returns the previous one.
func (s *Session) SetWindowCloseCallback(w Window, cb WindowCloseCallback) (WindowCloseCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowClose, boxed, s.lib.SetWindowCloseCallback).(WindowCloseCallback)
	return prev, s.check()
}

// SetWindowRefreshCallback installs the contents-damaged callback for a
// window and returns the previous one.
func (s *Session) SetWindowRefreshCallback(w Window, cb WindowRefreshCallback) (WindowRefreshCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowRefresh, boxed, s.lib.SetWindowRefreshCallback).(WindowRefreshCallback)
	return prev, s.check()
}

// SetWindowFocusCallback installs the focus-changed callback for a window
// and returns the previous one.
func (s *Session) SetWindowFocusCallback(w Window, cb WindowFocusCallback) (WindowFocusCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowFocus, boxed, s.lib.SetWindowFocusCallback).(WindowFocusCallback)
	return prev, s.check()
}

// SetWindowIconifyCallback installs the iconify-changed callback for a
// window and returns the previous one.
func (s *Session) SetWindowIconifyCallback(w Window, cb WindowIconifyCallback) (WindowIconifyCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowIconify, boxed, s.lib.SetWindowIconifyCallback).(WindowIconifyCallback)
	return prev, s.check()
}

// SetWindowMaximizeCallback installs the maximize-changed callback for a
// window and returns the previous one. Requires GLFW 3.3.
func (s *Session) SetWindowMaximizeCallback(w Window, cb WindowMaximizeCallback) (WindowMaximizeCallback, error) {
	if s.lib.SetWindowMaximizeCallback == nil {
		return nil, &NativeError{Code: VersionUnavailable, Description: "glfwSetWindowMaximizeCallback requires GLFW 3.3"}
	}
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindWindowMaximize, boxed, s.lib.SetWindowMaximizeCallback).(WindowMaximizeCallback)
	return prev, s.check()
}

// SetFramebufferSizeCallback installs the framebuffer-resized callback for
// a window and returns the previous one.
func (s *Session) SetFramebufferSizeCallback(w Window, cb FramebufferSizeCallback) (FramebufferSizeCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindFramebufferSize, boxed, s.lib.SetFramebufferSizeCallback).(FramebufferSizeCallback)
	return prev, s.check()
}

// SetWindowContentScaleCallback installs the content-scale-changed callback
// for a window and returns the previous one. Requires GLFW 3.3.
func (s *Session) SetWindowContentScaleCallback(w Window, cb ContentScaleCallback) (ContentScaleCallback, error) {
	if s.lib.SetWindowContentScaleCallback == nil {
		return nil, &NativeError{Code: VersionUnavailable, Description: "glfwSetWindowContentScaleCallback requires GLFW 3.3"}
	}
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindContentScale, boxed, s.lib.SetWindowContentScaleCallback).(ContentScaleCallback)
	return prev, s.check()
}

// SetKeyCallback installs the key callback for a window and returns the
// previous one.
func (s *Session) SetKeyCallback(w Window, cb KeyCallback) (KeyCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindKey, boxed, s.lib.SetKeyCallback).(KeyCallback)
	return prev, s.check()
}

// SetCharCallback installs the character-input callback for a window and
// returns the previous one.
func (s *Session) SetCharCallback(w Window, cb CharCallback) (CharCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindChar, boxed, s.lib.SetCharCallback).(CharCallback)
	return prev, s.check()
}

// SetCharModsCallback installs the character-with-modifiers callback for a
// window and returns the previous one.
func (s *Session) SetCharModsCallback(w Window, cb CharModsCallback) (CharModsCallback, error) {
	if s.lib.SetCharModsCallback == nil {
		return nil, &NativeError{Code: VersionUnavailable, Description: "glfwSetCharModsCallback requires GLFW 3.1"}
	}
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindCharMods, boxed, s.lib.SetCharModsCallback).(CharModsCallback)
	return prev, s.check()
}

// SetMouseButtonCallback installs the mouse button callback for a window
// and returns the previous one.
func (s *Session) SetMouseButtonCallback(w Window, cb MouseButtonCallback) (MouseButtonCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindMouseButton, boxed, s.lib.SetMouseButtonCallback).(MouseButtonCallback)
	return prev, s.check()
}

// SetCursorPosCallback installs the cursor position callback for a window
// and returns the previous one.
func (s *Session) SetCursorPosCallback(w Window, cb CursorPosCallback) (CursorPosCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindCursorPos, boxed, s.lib.SetCursorPosCallback).(CursorPosCallback)
	return prev, s.check()
}

// SetCursorEnterCallback installs the cursor enter/leave callback for a
// window and returns the previous one.
func (s *Session) SetCursorEnterCallback(w Window, cb CursorEnterCallback) (CursorEnterCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindCursorEnter, boxed, s.lib.SetCursorEnterCallback).(CursorEnterCallback)
	return prev, s.check()
}

// SetScrollCallback installs the scroll callback for a window and returns
// the previous one.
func (s *Session) SetScrollCallback(w Window, cb ScrollCallback) (ScrollCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindScroll, boxed, s.lib.SetScrollCallback).(ScrollCallback)
	return prev, s.check()
}

// SetDropCallback installs the file-drop callback for a window and returns
// the previous one.
func (s *Session) SetDropCallback(w Window, cb DropCallback) (DropCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prev, _ := s.installWindow(w, kindDrop, boxed, s.lib.SetDropCallback).(DropCallback)
	return prev, s.check()
}

// SetMonitorCallback installs the monitor connect/disconnect callback and
// returns the previous one.
func (s *Session) SetMonitorCallback(cb MonitorCallback) (MonitorCallback, error) {
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prevAny := s.swap(0, kindMonitor, boxed)
	var native uintptr
	if cb != nil {
		native = s.trampoline(kindMonitor)
	}
	s.lib.SetMonitorCallback(native)
	prev, _ := prevAny.(MonitorCallback)
	return prev, s.check()
}

// SetJoystickCallback installs the joystick connect/disconnect callback and
// returns the previous one. Requires GLFW 3.2.
func (s *Session) SetJoystickCallback(cb JoystickCallback) (JoystickCallback, error) {
	if s.lib.SetJoystickCallback == nil {
		return nil, &NativeError{Code: VersionUnavailable, Description: "glfwSetJoystickCallback requires GLFW 3.2"}
	}
	var boxed any
	if cb != nil {
		boxed = cb
	}
	prevAny := s.swap(0, kindJoystick, boxed)
	var native uintptr
	if cb != nil {
		native = s.trampoline(kindJoystick)
	}
	s.lib.SetJoystickCallback(native)
	prev, _ := prevAny.(JoystickCallback)
	return prev, s.check()
}
