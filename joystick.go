package glfw

import (
	"unsafe"

	"github.com/agiangrant/glfw/internal/ffi"
)

// JoystickPresent reports whether a joystick is connected in the slot.
func (s *Session) JoystickPresent(jid Joystick) (bool, error) {
	v := s.lib.JoystickPresent(int32(jid))
	return v != 0, s.check()
}

// GetJoystickAxes reports the axis values of a joystick, or nil when it is
// not present.
func (s *Session) GetJoystickAxes(jid Joystick) ([]float32, error) {
	var count int32
	ptr := s.lib.GetJoystickAxes(int32(jid), ffi.Ptr(&count))
	if err := s.check(); err != nil {
		return nil, err
	}
	if ptr == 0 || count <= 0 {
		return nil, nil
	}
	raw := unsafe.Slice((*float32)(unsafe.Pointer(ptr)), int(count))
	axes := make([]float32, count)
	copy(axes, raw)
	return axes, nil
}

// GetJoystickButtons reports the button states of a joystick, or nil when
// it is not present.
func (s *Session) GetJoystickButtons(jid Joystick) ([]Action, error) {
	var count int32
	ptr := s.lib.GetJoystickButtons(int32(jid), ffi.Ptr(&count))
	if err := s.check(); err != nil {
		return nil, err
	}
	if ptr == 0 || count <= 0 {
		return nil, nil
	}
	raw := unsafe.Slice((*uint8)(unsafe.Pointer(ptr)), int(count))
	buttons := make([]Action, count)
	for i, b := range raw {
		buttons[i] = Action(b)
	}
	return buttons, nil
}

// GetJoystickHats reports the hat states of a joystick. Requires GLFW 3.3.
func (s *Session) GetJoystickHats(jid Joystick) ([]uint8, error) {
	if s.lib.GetJoystickHats == nil {
		return nil, &NativeError{Code: VersionUnavailable, Description: "glfwGetJoystickHats requires GLFW 3.3"}
	}
	var count int32
	ptr := s.lib.GetJoystickHats(int32(jid), ffi.Ptr(&count))
	if err := s.check(); err != nil {
		return nil, err
	}
	if ptr == 0 || count <= 0 {
		return nil, nil
	}
	raw := unsafe.Slice((*uint8)(unsafe.Pointer(ptr)), int(count))
	hats := make([]uint8, count)
	copy(hats, raw)
	return hats, nil
}

// GetJoystickName reports the name of a joystick, or "" when it is not
// present.
func (s *Session) GetJoystickName(jid Joystick) (string, error) {
	ptr := s.lib.GetJoystickName(int32(jid))
	return ffi.GoString(ptr), s.check()
}

// GetJoystickGUID reports the SDL-compatible GUID of a joystick. Requires
// GLFW 3.3.
func (s *Session) GetJoystickGUID(jid Joystick) (string, error) {
	if s.lib.GetJoystickGUID == nil {
		return "", &NativeError{Code: VersionUnavailable, Description: "glfwGetJoystickGUID requires GLFW 3.3"}
	}
	ptr := s.lib.GetJoystickGUID(int32(jid))
	return ffi.GoString(ptr), s.check()
}

// SetJoystickUserPointer associates an arbitrary value with the joystick
// slot. The value lives host-side; only uintptr values reach the native
// slot.
func (s *Session) SetJoystickUserPointer(jid Joystick, value any) error {
	if value == nil {
		delete(s.joystickPointers, jid)
	} else {
		s.joystickPointers[jid] = value
	}
	if s.lib.SetJoystickUserPointer != nil {
		var word uintptr
		if w, ok := value.(uintptr); ok {
			word = w
		}
		s.lib.SetJoystickUserPointer(int32(jid), word)
	}
	return s.check()
}

// GetJoystickUserPointer returns the value associated with the joystick
// slot, or nil.
func (s *Session) GetJoystickUserPointer(jid Joystick) (any, error) {
	if v, ok := s.joystickPointers[jid]; ok {
		return v, s.check()
	}
	if s.lib.GetJoystickUserPointer != nil {
		if word := s.lib.GetJoystickUserPointer(int32(jid)); word != 0 {
			return word, s.check()
		}
	}
	return nil, s.check()
}

// JoystickIsGamepad reports whether the joystick has a gamepad mapping.
// Requires GLFW 3.3.
func (s *Session) JoystickIsGamepad(jid Joystick) (bool, error) {
	if s.lib.JoystickIsGamepad == nil {
		return false, &NativeError{Code: VersionUnavailable, Description: "glfwJoystickIsGamepad requires GLFW 3.3"}
	}
	v := s.lib.JoystickIsGamepad(int32(jid))
	return v != 0, s.check()
}

// UpdateGamepadMappings adds SDL_GameControllerDB format mappings.
// Requires GLFW 3.3.
func (s *Session) UpdateGamepadMappings(mappings string) (bool, error) {
	if s.lib.UpdateGamepadMappings == nil {
		return false, &NativeError{Code: VersionUnavailable, Description: "glfwUpdateGamepadMappings requires GLFW 3.3"}
	}
	v := s.lib.UpdateGamepadMappings(mappings)
	return v != 0, s.check()
}

// GetGamepadName reports the gamepad-mapping name of the joystick.
// Requires GLFW 3.3.
func (s *Session) GetGamepadName(jid Joystick) (string, error) {
	if s.lib.GetGamepadName == nil {
		return "", &NativeError{Code: VersionUnavailable, Description: "glfwGetGamepadName requires GLFW 3.3"}
	}
	ptr := s.lib.GetGamepadName(int32(jid))
	return ffi.GoString(ptr), s.check()
}

// GetGamepadState reads the gamepad-mapped input state of the joystick.
// The second result is false when the joystick is absent or has no
// mapping. Requires GLFW 3.3.
func (s *Session) GetGamepadState(jid Joystick) (GamepadState, bool, error) {
	if s.lib.GetGamepadState == nil {
		return GamepadState{}, false, &NativeError{Code: VersionUnavailable, Description: "glfwGetGamepadState requires GLFW 3.3"}
	}
	var c ffi.GamepadStateC
	ok := s.lib.GetGamepadState(int32(jid), ffi.Ptr(&c))
	if err := s.check(); err != nil {
		return GamepadState{}, false, err
	}
	if ok == 0 {
		return GamepadState{}, false, nil
	}
	return ffi.UnwrapGamepadState(&c), true, nil
}
