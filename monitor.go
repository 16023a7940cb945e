package glfw

import (
	"runtime"
	"unsafe"

	"github.com/agiangrant/glfw/internal/ffi"
)

// GetMonitors reports the currently connected monitors, primary first.
func (s *Session) GetMonitors() ([]Monitor, error) {
	var count int32
	ptr := s.lib.GetMonitors(ffi.Ptr(&count))
	if err := s.check(); err != nil {
		return nil, err
	}
	if ptr == 0 || count <= 0 {
		return nil, nil
	}
	raw := unsafe.Slice((*uintptr)(unsafe.Pointer(ptr)), int(count))
	monitors := make([]Monitor, count)
	for i, h := range raw {
		monitors[i] = Monitor(h)
	}
	return monitors, nil
}

// GetPrimaryMonitor reports the primary monitor, or 0 if none is
// connected.
func (s *Session) GetPrimaryMonitor() (Monitor, error) {
	m := s.lib.GetPrimaryMonitor()
	return Monitor(m), s.check()
}

// GetMonitorPos reports the monitor's position on the virtual desktop.
func (s *Session) GetMonitorPos(m Monitor) (x, y int, err error) {
	var cx, cy int32
	s.lib.GetMonitorPos(uintptr(m), ffi.Ptr(&cx), ffi.Ptr(&cy))
	return int(cx), int(cy), s.check()
}

// GetMonitorWorkarea reports the monitor's work area, excluding taskbars
// and docks. Requires GLFW 3.3.
func (s *Session) GetMonitorWorkarea(m Monitor) (x, y, width, height int, err error) {
	if s.lib.GetMonitorWorkarea == nil {
		return 0, 0, 0, 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetMonitorWorkarea requires GLFW 3.3"}
	}
	var cx, cy, cw, ch int32
	s.lib.GetMonitorWorkarea(uintptr(m), ffi.Ptr(&cx), ffi.Ptr(&cy), ffi.Ptr(&cw), ffi.Ptr(&ch))
	return int(cx), int(cy), int(cw), int(ch), s.check()
}

// GetMonitorPhysicalSize reports the monitor's physical size in
// millimetres.
func (s *Session) GetMonitorPhysicalSize(m Monitor) (widthMM, heightMM int, err error) {
	var cw, ch int32
	s.lib.GetMonitorPhysicalSize(uintptr(m), ffi.Ptr(&cw), ffi.Ptr(&ch))
	return int(cw), int(ch), s.check()
}

// GetMonitorContentScale reports the monitor's content scale. Requires
// GLFW 3.3.
func (s *Session) GetMonitorContentScale(m Monitor) (xscale, yscale float32, err error) {
	if s.lib.GetMonitorContentScale == nil {
		return 0, 0, &NativeError{Code: VersionUnavailable, Description: "glfwGetMonitorContentScale requires GLFW 3.3"}
	}
	s.lib.GetMonitorContentScale(uintptr(m), ffi.Ptr(&xscale), ffi.Ptr(&yscale))
	return xscale, yscale, s.check()
}

// GetMonitorName reports the human-readable monitor name.
func (s *Session) GetMonitorName(m Monitor) (string, error) {
	ptr := s.lib.GetMonitorName(uintptr(m))
	return ffi.GoString(ptr), s.check()
}

// SetMonitorUserPointer associates an arbitrary value with the monitor.
// The same host-side rules apply as for windows: only uintptr values reach
// the native slot. Requires GLFW 3.3 when a native write is needed.
func (s *Session) SetMonitorUserPointer(m Monitor, value any) error {
	if value == nil {
		delete(s.monitorPointers, uintptr(m))
	} else {
		s.monitorPointers[uintptr(m)] = value
	}
	if s.lib.SetMonitorUserPointer != nil {
		var word uintptr
		if w, ok := value.(uintptr); ok {
			word = w
		}
		s.lib.SetMonitorUserPointer(uintptr(m), word)
	}
	return s.check()
}

// GetMonitorUserPointer returns the value associated with the monitor, or
// nil.
func (s *Session) GetMonitorUserPointer(m Monitor) (any, error) {
	if v, ok := s.monitorPointers[uintptr(m)]; ok {
		return v, s.check()
	}
	if s.lib.GetMonitorUserPointer != nil {
		if word := s.lib.GetMonitorUserPointer(uintptr(m)); word != 0 {
			return word, s.check()
		}
	}
	return nil, s.check()
}

// GetVideoModes reports the video modes the monitor supports.
func (s *Session) GetVideoModes(m Monitor) ([]VideoMode, error) {
	var count int32
	ptr := s.lib.GetVideoModes(uintptr(m), ffi.Ptr(&count))
	if err := s.check(); err != nil {
		return nil, err
	}
	return ffi.UnwrapVideoModes(ptr, int(count)), nil
}

// GetVideoMode reports the monitor's current video mode.
func (s *Session) GetVideoMode(m Monitor) (VideoMode, error) {
	ptr := s.lib.GetVideoMode(uintptr(m))
	if err := s.check(); err != nil {
		return VideoMode{}, err
	}
	mode, ok := ffi.UnwrapVideoMode(ptr)
	if !ok {
		return VideoMode{}, &NativeError{Code: PlatformError, Description: "no current video mode"}
	}
	return mode, nil
}

// SetGamma generates an appropriately sized ramp from the exponent and
// sets it.
func (s *Session) SetGamma(m Monitor, gamma float32) error {
	s.lib.SetGamma(uintptr(m), gamma)
	return s.check()
}

// GetGammaRamp reads the monitor's current gamma ramp. With
// NormalizeGammaRamps set the samples come back as floats in [0, 1],
// otherwise as raw integral values in [0, 65535].
func (s *Session) GetGammaRamp(m Monitor) (GammaRamp, error) {
	ptr := s.lib.GetGammaRamp(uintptr(m))
	if err := s.check(); err != nil {
		return GammaRamp{}, err
	}
	ramp, ok := ffi.UnwrapGammaRamp(ptr, s.NormalizeGammaRamps)
	if !ok {
		return GammaRamp{}, &NativeError{Code: PlatformError, Description: "gamma ramp unavailable"}
	}
	return ramp, nil
}

// SetGammaRamp sets the monitor's gamma ramp. Channels of unequal length
// are truncated to the shortest; the normalize setting is read at call
// time, matching GetGammaRamp.
func (s *Session) SetGammaRamp(m Monitor, ramp GammaRamp) error {
	buf := ffi.WrapGammaRamp(ramp, s.NormalizeGammaRamps)
	s.lib.SetGammaRamp(uintptr(m), buf.CPtr())
	runtime.KeepAlive(buf)
	return s.check()
}
