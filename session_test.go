package glfw

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/agiangrant/glfw/internal/ffi"
)

// stubLib returns a call table whose entry points record into the returned
// trace instead of crossing into native code.
func stubLib() (*ffi.Lib, *stubTrace) {
	trace := &stubTrace{nativeUserPointers: make(map[uintptr]uintptr)}
	lib := &ffi.Lib{
		Init:             func() int32 { return 1 },
		Terminate:        func() { trace.terminated++ },
		SetErrorCallback: func(trampoline uintptr) uintptr { return 0 },
		GetVersion: func(major, minor, rev uintptr) {
			*(*int32)(unsafe.Pointer(major)) = 3
			*(*int32)(unsafe.Pointer(minor)) = 3
			*(*int32)(unsafe.Pointer(rev)) = 8
		},
		GetVersionString: func() string { return "3.3.8 stub" },

		CreateWindow:  func(width, height int32, title string, monitor, share uintptr) uintptr { return trace.nextWindow() },
		DestroyWindow: func(window uintptr) { trace.destroyed = append(trace.destroyed, window) },
		PollEvents:    func() { trace.polled++ },

		SetWindowUserPointer: func(window, pointer uintptr) { trace.nativeUserPointers[window] = pointer },
		GetWindowUserPointer: func(window uintptr) uintptr { return trace.nativeUserPointers[window] },

		SetKeyCallback:        func(window, trampoline uintptr) uintptr { trace.keyTrampoline = trampoline; return 0 },
		SetCursorPosCallback:  func(window, trampoline uintptr) uintptr { return 0 },
		SetWindowPosCallback:  func(window, trampoline uintptr) uintptr { return 0 },
		SetMonitorCallback:    func(trampoline uintptr) uintptr { return 0 },
		SetGammaRamp:          func(monitor, ramp uintptr) { trace.lastRamp = ramp },
		GetGammaRamp:          func(monitor uintptr) uintptr { return trace.currentRamp },
		SetJoystickUserPointer: func(jid int32, pointer uintptr) {},
		GetJoystickUserPointer: func(jid int32) uintptr { return 0 },
	}
	return lib, trace
}

type stubTrace struct {
	terminated         int
	polled             int
	windowSeq          uintptr
	destroyed          []uintptr
	nativeUserPointers map[uintptr]uintptr
	keyTrampoline      uintptr
	lastRamp           uintptr
	currentRamp        uintptr
}

func (t *stubTrace) nextWindow() uintptr {
	t.windowSeq += 0x1000
	return t.windowSeq
}

func newStubSession(t *testing.T) (*Session, *stubTrace) {
	t.Helper()
	lib, trace := stubLib()
	s := newSession(lib, "stub")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s, trace
}

func TestVersionFromStub(t *testing.T) {
	s, _ := newStubSession(t)
	got := s.GetVersion()
	want := Version{Major: 3, Minor: 3, Rev: 8}
	if got != want {
		t.Fatalf("GetVersion = %v, want %v", got, want)
	}
	if vs := s.GetVersionString(); vs != "3.3.8 stub" {
		t.Fatalf("GetVersionString = %q", vs)
	}
}

func TestCallbackPanicCapturedAndDrained(t *testing.T) {
	s, _ := newStubSession(t)
	w, err := s.CreateWindow(640, 480, "t", 0, 0)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if _, err := s.SetKeyCallback(w, func(w Window, key, scancode int, action Action, mods int) {
		panic("boom")
	}); err != nil {
		t.Fatalf("SetKeyCallback: %v", err)
	}

	// Native side invokes the key callback during event processing.
	s.dispatch(uintptr(w), kindKey, func(cb any) {
		cb.(KeyCallback)(w, 65, 30, Press, 0)
	})

	err = s.PollEvents()
	var cp *CallbackPanic
	if !errors.As(err, &cp) {
		t.Fatalf("PollEvents error = %v, want CallbackPanic", err)
	}
	if cp.Value != "boom" {
		t.Fatalf("panic value = %v", cp.Value)
	}
	if len(cp.Stack) == 0 {
		t.Fatal("panic captured without a stack")
	}
	if err := s.PollEvents(); err != nil {
		t.Fatalf("second PollEvents returned stale error %v", err)
	}
}

func TestCallbacksSuppressedWhilePanicPending(t *testing.T) {
	s, _ := newStubSession(t)
	w, _ := s.CreateWindow(640, 480, "t", 0, 0)

	var order []string
	s.SetKeyCallback(w, func(Window, int, int, Action, int) {
		order = append(order, "key")
		panic("first")
	})
	s.SetCursorPosCallback(w, func(Window, float64, float64) {
		order = append(order, "cursor")
	})

	// Two queued events inside one processing pass: the first panics, so
	// the second must not run.
	s.dispatch(uintptr(w), kindKey, func(cb any) { cb.(KeyCallback)(w, 65, 30, Press, 0) })
	s.dispatch(uintptr(w), kindCursorPos, func(cb any) { cb.(CursorPosCallback)(w, 1, 2) })

	if len(order) != 1 || order[0] != "key" {
		t.Fatalf("callback order = %v, want just the panicking one", order)
	}
	err := s.PollEvents()
	var cp *CallbackPanic
	if !errors.As(err, &cp) || cp.Value != "first" {
		t.Fatalf("PollEvents error = %v, want panic %q", err, "first")
	}

	// With the slot drained the second callback runs again.
	s.dispatch(uintptr(w), kindCursorPos, func(cb any) { cb.(CursorPosCallback)(w, 1, 2) })
	if len(order) != 2 || order[1] != "cursor" {
		t.Fatalf("callback order after drain = %v", order)
	}
}

func TestNativeErrorRaiseMode(t *testing.T) {
	s, _ := newStubSession(t)

	s.handleNativeError(InvalidValue, "bad argument")
	s.handleNativeError(PlatformError, "second, dropped")

	err := s.PollEvents()
	var ne *NativeError
	if !errors.As(err, &ne) {
		t.Fatalf("PollEvents error = %v, want NativeError", err)
	}
	if ne.Code != InvalidValue || ne.Description != "bad argument" {
		t.Fatalf("surfaced error = %v, want the first report", ne)
	}
	if err := s.PollEvents(); err != nil {
		t.Fatalf("slot not drained: %v", err)
	}
}

func TestNativeErrorIgnoreMode(t *testing.T) {
	s, _ := newStubSession(t)
	s.ErrorReporting = ErrorReporting{Default: Ignore}

	s.handleNativeError(InvalidValue, "ignored")
	if err := s.PollEvents(); err != nil {
		t.Fatalf("ignored error surfaced: %v", err)
	}
}

func TestNativeErrorPerCodeOverride(t *testing.T) {
	s, _ := newStubSession(t)
	s.ErrorReporting = ErrorReporting{
		Default: Raise,
		PerCode: map[ErrorCode]ErrorMode{FormatUnavailable: Ignore},
	}

	s.handleNativeError(FormatUnavailable, "clipboard empty")
	if err := s.PollEvents(); err != nil {
		t.Fatalf("per-code ignored error surfaced: %v", err)
	}

	s.handleNativeError(InvalidEnum, "still raised")
	if err := s.PollEvents(); err == nil {
		t.Fatal("default Raise mode lost")
	}
}

func TestErrorCallbackOverridesReporting(t *testing.T) {
	s, _ := newStubSession(t)

	var got []ErrorCode
	prev := s.SetErrorCallback(func(code ErrorCode, description string) {
		got = append(got, code)
	})
	if prev != nil {
		t.Fatalf("previous error callback = %v, want nil", prev)
	}

	s.handleNativeError(PlatformError, "handled by user")
	if err := s.PollEvents(); err != nil {
		t.Fatalf("error reached the pending slot despite user callback: %v", err)
	}
	if len(got) != 1 || got[0] != PlatformError {
		t.Fatalf("user callback saw %v", got)
	}

	// Uninstalling restores default reporting.
	if prev := s.SetErrorCallback(nil); prev == nil {
		t.Fatal("uninstall did not return the previous callback")
	}
	s.handleNativeError(PlatformError, "back to raising")
	if err := s.PollEvents(); err == nil {
		t.Fatal("default reporting not restored")
	}
}

func TestUserPointerLifecycle(t *testing.T) {
	s, trace := newStubSession(t)
	w, _ := s.CreateWindow(640, 480, "t", 0, 0)

	type payload struct{ n int }
	want := &payload{n: 7}
	if err := s.SetWindowUserPointer(w, want); err != nil {
		t.Fatalf("SetWindowUserPointer: %v", err)
	}
	// Rich values never reach the native slot.
	if trace.nativeUserPointers[uintptr(w)] != 0 {
		t.Fatal("Go value leaked into the native user pointer slot")
	}
	got, err := s.GetWindowUserPointer(w)
	if err != nil {
		t.Fatalf("GetWindowUserPointer: %v", err)
	}
	if got != want {
		t.Fatalf("GetWindowUserPointer = %v, want the stored value", got)
	}

	// A raw word passes through to the native slot.
	if err := s.SetWindowUserPointer(w, uintptr(0xdead)); err != nil {
		t.Fatal(err)
	}
	if trace.nativeUserPointers[uintptr(w)] != 0xdead {
		t.Fatal("raw word not written to the native slot")
	}

	if err := s.DestroyWindow(w); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}
	if v, _ := s.GetWindowUserPointer(w); v == nil {
		// Native slot still carries the word; host entry is gone.
		t.Log("host entry purged")
	}
	if _, ok := s.windowPointers[uintptr(w)]; ok {
		t.Fatal("destroy left a stale user pointer entry")
	}
}

func TestDestroyWindowPurgesCallbacks(t *testing.T) {
	s, _ := newStubSession(t)
	w, _ := s.CreateWindow(640, 480, "t", 0, 0)

	s.SetKeyCallback(w, func(Window, int, int, Action, int) { t.Fatal("callback ran after destroy") })
	if err := s.DestroyWindow(w); err != nil {
		t.Fatalf("DestroyWindow: %v", err)
	}

	// A late event for the dead handle finds no registration.
	s.dispatch(uintptr(w), kindKey, func(cb any) { cb.(KeyCallback)(w, 65, 30, Press, 0) })
	if err := s.PollEvents(); err != nil {
		t.Fatalf("late event produced %v", err)
	}
}

func TestTerminateClearsAllState(t *testing.T) {
	s, trace := newStubSession(t)
	w, _ := s.CreateWindow(640, 480, "t", 0, 0)

	s.SetWindowUserPointer(w, "v")
	s.SetJoystickUserPointer(Joystick1, 42)
	s.SetKeyCallback(w, func(Window, int, int, Action, int) {})
	s.handleNativeError(PlatformError, "in flight at terminate")

	if err := s.Terminate(); err == nil {
		t.Fatal("Terminate swallowed the pending error")
	}
	if trace.terminated != 1 {
		t.Fatalf("native terminate called %d times", trace.terminated)
	}
	if len(s.callbacks) != 0 || len(s.windowPointers) != 0 || len(s.joystickPointers) != 0 {
		t.Fatal("side tables survived Terminate")
	}
	if err := s.PollEvents(); err != nil {
		t.Fatalf("pending slot survived Terminate: %v", err)
	}
}

func TestSetCallbackReturnsPrevious(t *testing.T) {
	s, trace := newStubSession(t)
	w, _ := s.CreateWindow(640, 480, "t", 0, 0)

	first := func(Window, int, int, Action, int) {}
	second := func(Window, int, int, Action, int) {}

	prev, err := s.SetKeyCallback(w, first)
	if err != nil || prev != nil {
		t.Fatalf("first install: prev=%v err=%v", prev, err)
	}
	if trace.keyTrampoline == 0 {
		t.Fatal("no native trampoline installed")
	}
	installed := trace.keyTrampoline

	prev, err = s.SetKeyCallback(w, second)
	if err != nil {
		t.Fatal(err)
	}
	if prev == nil {
		t.Fatal("replacing did not return the previous callback")
	}
	// One trampoline per kind, reused across installs.
	if trace.keyTrampoline != installed {
		t.Fatal("replacement minted a second trampoline")
	}

	prev, err = s.SetKeyCallback(w, nil)
	if err != nil || prev == nil {
		t.Fatalf("uninstall: prev=%v err=%v", prev, err)
	}
	if trace.keyTrampoline != 0 {
		t.Fatal("uninstall left the native trampoline in place")
	}
	if prev, _ := s.SetKeyCallback(w, first); prev != nil {
		t.Fatal("uninstall did not clear the registration")
	}
}

func TestGammaRampNormalizeResolvedPerCall(t *testing.T) {
	s, trace := newStubSession(t)

	s.NormalizeGammaRamps = true
	ramp := GammaRamp{
		Red:   []float64{0, 0.5, 1},
		Green: []float64{0, 0.5, 1},
		Blue:  []float64{0, 0.5, 1},
	}
	if err := s.SetGammaRamp(Monitor(1), ramp); err != nil {
		t.Fatal(err)
	}
	sent := (*ffi.GammarampC)(unsafe.Pointer(trace.lastRamp))
	if sent.Size != 3 {
		t.Fatalf("ramp size = %d", sent.Size)
	}
	if blue := unsafe.Slice(sent.Blue, sent.Size); blue[2] != 65535 {
		t.Fatalf("normalized 1.0 marshaled as %d, want 65535", blue[2])
	}

	// Flipping the flag affects the next call, not retroactively.
	s.NormalizeGammaRamps = false
	raw := GammaRamp{
		Red:   []float64{0, 32768, 65535},
		Green: []float64{0, 32768, 65535},
		Blue:  []float64{0, 32768, 65535},
	}
	if err := s.SetGammaRamp(Monitor(1), raw); err != nil {
		t.Fatal(err)
	}
	sent = (*ffi.GammarampC)(unsafe.Pointer(trace.lastRamp))
	if red := unsafe.Slice(sent.Red, sent.Size); red[1] != 32768 {
		t.Fatalf("raw 32768 marshaled as %d", red[1])
	}
}

func TestGetGammaRampReadsBack(t *testing.T) {
	s, trace := newStubSession(t)

	samples := []uint16{0, 16384, 65535}
	native := ffi.GammarampC{
		Red:   &samples[0],
		Green: &samples[0],
		Blue:  &samples[0],
		Size:  3,
	}
	trace.currentRamp = uintptr(unsafe.Pointer(&native))

	s.NormalizeGammaRamps = false
	ramp, err := s.GetGammaRamp(Monitor(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(ramp.Red) != 3 || ramp.Red[2] != 65535 {
		t.Fatalf("raw readback = %v", ramp.Red)
	}

	s.NormalizeGammaRamps = true
	ramp, err = s.GetGammaRamp(Monitor(1))
	if err != nil {
		t.Fatal(err)
	}
	if ramp.Red[2] != 1.0 {
		t.Fatalf("normalized readback top sample = %v, want 1.0", ramp.Red[2])
	}
}
