// Package ffi locates the native GLFW shared library at runtime and binds
// its entry points via purego, without cgo. The public glfw package sits on
// top of the call table declared here.
package ffi

import (
	"fmt"
	"reflect"
)

// Lib is the native call table. Every field is bound to the GLFW entry point
// named in its tag when the library is loaded. Pointer-typed native
// parameters are declared as uintptr and converted at the call site; C
// strings owned by the caller travel as Go strings, C strings owned by the
// library come back as uintptr and go through the helpers in strings.go.
//
// Fields tagged with ",optional" may stay nil when the loaded library
// predates the symbol (e.g. GLFW 3.0 has no gamepad API).
type Lib struct {
	Init             func() int32                     `ffi:"glfwInit"`
	Terminate        func()                           `ffi:"glfwTerminate"`
	InitHint         func(hint, value int32)          `ffi:"glfwInitHint,optional"`
	GetVersion       func(major, minor, rev uintptr)  `ffi:"glfwGetVersion"`
	GetVersionString func() string                    `ffi:"glfwGetVersionString"`
	GetError         func(description uintptr) int32  `ffi:"glfwGetError,optional"`
	SetErrorCallback func(trampoline uintptr) uintptr `ffi:"glfwSetErrorCallback"`

	CreateWindow           func(width, height int32, title string, monitor, share uintptr) uintptr `ffi:"glfwCreateWindow"`
	DestroyWindow          func(window uintptr)                                     `ffi:"glfwDestroyWindow"`
	WindowShouldClose      func(window uintptr) int32                               `ffi:"glfwWindowShouldClose"`
	SetWindowShouldClose   func(window uintptr, value int32)                        `ffi:"glfwSetWindowShouldClose"`
	SetWindowTitle         func(window uintptr, title string)                       `ffi:"glfwSetWindowTitle"`
	SetWindowIcon          func(window uintptr, count int32, images uintptr)        `ffi:"glfwSetWindowIcon"`
	GetWindowPos           func(window, xpos, ypos uintptr)                         `ffi:"glfwGetWindowPos"`
	SetWindowPos           func(window uintptr, xpos, ypos int32)                   `ffi:"glfwSetWindowPos"`
	GetWindowSize          func(window, width, height uintptr)                      `ffi:"glfwGetWindowSize"`
	SetWindowSize          func(window uintptr, width, height int32)                `ffi:"glfwSetWindowSize"`
	SetWindowSizeLimits    func(window uintptr, minW, minH, maxW, maxH int32)       `ffi:"glfwSetWindowSizeLimits"`
	SetWindowAspectRatio   func(window uintptr, numer, denom int32)                 `ffi:"glfwSetWindowAspectRatio"`
	GetFramebufferSize     func(window, width, height uintptr)                      `ffi:"glfwGetFramebufferSize"`
	GetWindowFrameSize     func(window, left, top, right, bottom uintptr)           `ffi:"glfwGetWindowFrameSize"`
	GetWindowContentScale  func(window, xscale, yscale uintptr)                     `ffi:"glfwGetWindowContentScale,optional"`
	GetWindowOpacity       func(window uintptr) float32                             `ffi:"glfwGetWindowOpacity,optional"`
	SetWindowOpacity       func(window uintptr, opacity float32)                    `ffi:"glfwSetWindowOpacity,optional"`
	IconifyWindow          func(window uintptr)                                     `ffi:"glfwIconifyWindow"`
	RestoreWindow          func(window uintptr)                                     `ffi:"glfwRestoreWindow"`
	MaximizeWindow         func(window uintptr)                                     `ffi:"glfwMaximizeWindow,optional"`
	ShowWindow             func(window uintptr)                                     `ffi:"glfwShowWindow"`
	HideWindow             func(window uintptr)                                     `ffi:"glfwHideWindow"`
	FocusWindow            func(window uintptr)                                     `ffi:"glfwFocusWindow,optional"`
	RequestWindowAttention func(window uintptr)                                     `ffi:"glfwRequestWindowAttention,optional"`
	GetWindowMonitor       func(window uintptr) uintptr                             `ffi:"glfwGetWindowMonitor"`
	SetWindowMonitor       func(window, monitor uintptr, x, y, w, h, refresh int32) `ffi:"glfwSetWindowMonitor,optional"`
	GetWindowAttrib        func(window uintptr, attrib int32) int32                 `ffi:"glfwGetWindowAttrib"`
	SetWindowAttrib        func(window uintptr, attrib, value int32)                `ffi:"glfwSetWindowAttrib,optional"`
	SetWindowUserPointer   func(window, pointer uintptr)                            `ffi:"glfwSetWindowUserPointer"`
	GetWindowUserPointer   func(window uintptr) uintptr                             `ffi:"glfwGetWindowUserPointer"`
	DefaultWindowHints     func()                                                   `ffi:"glfwDefaultWindowHints"`
	WindowHint             func(hint, value int32)                                  `ffi:"glfwWindowHint"`
	WindowHintString       func(hint int32, value string)                           `ffi:"glfwWindowHintString,optional"`

	PollEvents        func()                `ffi:"glfwPollEvents"`
	WaitEvents        func()                `ffi:"glfwWaitEvents"`
	WaitEventsTimeout func(timeout float64) `ffi:"glfwWaitEventsTimeout,optional"`
	PostEmptyEvent    func()                `ffi:"glfwPostEmptyEvent,optional"`

	GetInputMode            func(window uintptr, mode int32) int32        `ffi:"glfwGetInputMode"`
	SetInputMode            func(window uintptr, mode, value int32)       `ffi:"glfwSetInputMode"`
	RawMouseMotionSupported func() int32                                  `ffi:"glfwRawMouseMotionSupported,optional"`
	GetKey                  func(window uintptr, key int32) int32         `ffi:"glfwGetKey"`
	GetKeyName              func(key, scancode int32) uintptr             `ffi:"glfwGetKeyName,optional"`
	GetKeyScancode          func(key int32) int32                         `ffi:"glfwGetKeyScancode,optional"`
	GetMouseButton          func(window uintptr, button int32) int32      `ffi:"glfwGetMouseButton"`
	GetCursorPos            func(window, xpos, ypos uintptr)              `ffi:"glfwGetCursorPos"`
	SetCursorPos            func(window uintptr, xpos, ypos float64)      `ffi:"glfwSetCursorPos"`
	CreateCursor            func(image uintptr, xhot, yhot int32) uintptr `ffi:"glfwCreateCursor,optional"`
	CreateStandardCursor    func(shape int32) uintptr                     `ffi:"glfwCreateStandardCursor,optional"`
	DestroyCursor           func(cursor uintptr)                          `ffi:"glfwDestroyCursor,optional"`
	SetCursor               func(window, cursor uintptr)                  `ffi:"glfwSetCursor,optional"`
	SetClipboardString      func(window uintptr, str string)              `ffi:"glfwSetClipboardString"`
	GetClipboardString      func(window uintptr) uintptr                  `ffi:"glfwGetClipboardString"`
	GetTime                 func() float64                                `ffi:"glfwGetTime"`
	SetTime                 func(time float64)                            `ffi:"glfwSetTime"`
	GetTimerValue           func() uint64                                 `ffi:"glfwGetTimerValue,optional"`
	GetTimerFrequency       func() uint64                                 `ffi:"glfwGetTimerFrequency,optional"`

	MakeContextCurrent func(window uintptr)         `ffi:"glfwMakeContextCurrent"`
	GetCurrentContext  func() uintptr               `ffi:"glfwGetCurrentContext"`
	SwapBuffers        func(window uintptr)         `ffi:"glfwSwapBuffers"`
	SwapInterval       func(interval int32)         `ffi:"glfwSwapInterval"`
	ExtensionSupported func(extension string) int32 `ffi:"glfwExtensionSupported"`

	GetMonitors            func(count uintptr) uintptr                      `ffi:"glfwGetMonitors"`
	GetPrimaryMonitor      func() uintptr                                   `ffi:"glfwGetPrimaryMonitor"`
	GetMonitorPos          func(monitor, xpos, ypos uintptr)                `ffi:"glfwGetMonitorPos"`
	GetMonitorWorkarea     func(monitor, xpos, ypos, width, height uintptr) `ffi:"glfwGetMonitorWorkarea,optional"`
	GetMonitorPhysicalSize func(monitor, widthMM, heightMM uintptr)         `ffi:"glfwGetMonitorPhysicalSize"`
	GetMonitorContentScale func(monitor, xscale, yscale uintptr)            `ffi:"glfwGetMonitorContentScale,optional"`
	GetMonitorName         func(monitor uintptr) uintptr                    `ffi:"glfwGetMonitorName"`
	SetMonitorUserPointer  func(monitor, pointer uintptr)                   `ffi:"glfwSetMonitorUserPointer,optional"`
	GetMonitorUserPointer  func(monitor uintptr) uintptr                    `ffi:"glfwGetMonitorUserPointer,optional"`
	GetVideoModes          func(monitor, count uintptr) uintptr             `ffi:"glfwGetVideoModes"`
	GetVideoMode           func(monitor uintptr) uintptr                    `ffi:"glfwGetVideoMode"`
	SetGamma               func(monitor uintptr, gamma float32)             `ffi:"glfwSetGamma"`
	GetGammaRamp           func(monitor uintptr) uintptr                    `ffi:"glfwGetGammaRamp"`
	SetGammaRamp           func(monitor, ramp uintptr)                      `ffi:"glfwSetGammaRamp"`

	JoystickPresent        func(jid int32) int32                  `ffi:"glfwJoystickPresent"`
	GetJoystickAxes        func(jid int32, count uintptr) uintptr `ffi:"glfwGetJoystickAxes"`
	GetJoystickButtons     func(jid int32, count uintptr) uintptr `ffi:"glfwGetJoystickButtons"`
	GetJoystickHats        func(jid int32, count uintptr) uintptr `ffi:"glfwGetJoystickHats,optional"`
	GetJoystickName        func(jid int32) uintptr                `ffi:"glfwGetJoystickName"`
	GetJoystickGUID        func(jid int32) uintptr                `ffi:"glfwGetJoystickGUID,optional"`
	SetJoystickUserPointer func(jid int32, pointer uintptr)       `ffi:"glfwSetJoystickUserPointer,optional"`
	GetJoystickUserPointer func(jid int32) uintptr                `ffi:"glfwGetJoystickUserPointer,optional"`
	JoystickIsGamepad      func(jid int32) int32                  `ffi:"glfwJoystickIsGamepad,optional"`
	UpdateGamepadMappings  func(mappings string) int32            `ffi:"glfwUpdateGamepadMappings,optional"`
	GetGamepadName         func(jid int32) uintptr                `ffi:"glfwGetGamepadName,optional"`
	GetGamepadState        func(jid int32, state uintptr) int32   `ffi:"glfwGetGamepadState,optional"`

	SetWindowPosCallback          func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowPosCallback"`
	SetWindowSizeCallback         func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowSizeCallback"`
	SetWindowCloseCallback        func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowCloseCallback"`
	SetWindowRefreshCallback      func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowRefreshCallback"`
	SetWindowFocusCallback        func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowFocusCallback"`
	SetWindowIconifyCallback      func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowIconifyCallback"`
	SetWindowMaximizeCallback     func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowMaximizeCallback,optional"`
	SetFramebufferSizeCallback    func(window, trampoline uintptr) uintptr `ffi:"glfwSetFramebufferSizeCallback"`
	SetWindowContentScaleCallback func(window, trampoline uintptr) uintptr `ffi:"glfwSetWindowContentScaleCallback,optional"`
	SetKeyCallback                func(window, trampoline uintptr) uintptr `ffi:"glfwSetKeyCallback"`
	SetCharCallback               func(window, trampoline uintptr) uintptr `ffi:"glfwSetCharCallback"`
	SetCharModsCallback           func(window, trampoline uintptr) uintptr `ffi:"glfwSetCharModsCallback,optional"`
	SetMouseButtonCallback        func(window, trampoline uintptr) uintptr `ffi:"glfwSetMouseButtonCallback"`
	SetCursorPosCallback          func(window, trampoline uintptr) uintptr `ffi:"glfwSetCursorPosCallback"`
	SetCursorEnterCallback        func(window, trampoline uintptr) uintptr `ffi:"glfwSetCursorEnterCallback"`
	SetScrollCallback             func(window, trampoline uintptr) uintptr `ffi:"glfwSetScrollCallback"`
	SetDropCallback               func(window, trampoline uintptr) uintptr `ffi:"glfwSetDropCallback"`
	SetMonitorCallback            func(trampoline uintptr) uintptr         `ffi:"glfwSetMonitorCallback"`
	SetJoystickCallback           func(trampoline uintptr) uintptr         `ffi:"glfwSetJoystickCallback,optional"`
}

// bind resolves every tagged field of lib against the loaded library handle.
// A missing required symbol fails the whole bind; optional symbols are left
// nil for the caller to feature-check.
func bind(handle uintptr, lib *Lib) error {
	t := reflect.TypeOf(lib).Elem()
	v := reflect.ValueOf(lib).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() != reflect.Func {
			continue
		}
		name, optional := parseTag(field.Tag.Get("ffi"))
		if name == "" {
			continue
		}
		fptr := v.Field(i).Addr().Interface()
		if err := register(fptr, handle, name); err != nil {
			if optional {
				continue
			}
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

func parseTag(tag string) (name string, optional bool) {
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			return tag[:i], tag[i+1:] == "optional"
		}
	}
	return tag, false
}
