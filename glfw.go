// Package glfw binds the native GLFW windowing and input library without
// cgo. The shared library is discovered and loaded at Open time via purego;
// see internal/ffi for the search procedure and the GLFW_LIBRARY /
// GLFW_LIBRARY_VARIANT environment overrides.
//
// A Session owns all binding state: the call table, the callback registry,
// the user-pointer side tables and the pending-failure slot. Sessions are
// not safe for concurrent use; GLFW itself is single-threaded per context,
// and callers must serialize access the same way they would with the C
// API. Most window operations must run on the main thread, so programs
// should call runtime.LockOSThread from main's init.
package glfw

import (
	"github.com/agiangrant/glfw/internal/ffi"
)

// Re-exported value types, marshaled in internal/ffi.
type (
	// VideoMode is a read-only video mode snapshot of a monitor.
	VideoMode = ffi.VideoMode
	// GammaRamp holds one sample sequence per color channel. Whether
	// samples are normalized floats in [0, 1] or raw integers in
	// [0, 65535] is decided by Session.NormalizeGammaRamps at call time.
	GammaRamp = ffi.GammaRamp
	// PixelGrid is a hand-built RGBA pixel grid; it implements
	// image.Image, and any other image.Image works wherever it does.
	PixelGrid = ffi.PixelGrid
	// GamepadState is the state of a gamepad-mapped joystick.
	GamepadState = ffi.GamepadState
	// Version is a GLFW version triple.
	Version = ffi.Version
)

// Opaque native handles. Their lifetime is owned by the native library.
type (
	Window  uintptr
	Monitor uintptr
	Cursor  uintptr
)

// Joystick identifies one of the 16 joystick slots.
type Joystick int

// Action is a key or button state.
type Action int

const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

// Window hints and attributes (the commonly used subset).
const (
	Focused                Hint = 0x00020001
	Resizable              Hint = 0x00020003
	Visible                Hint = 0x00020004
	Decorated              Hint = 0x00020005
	AutoIconify            Hint = 0x00020006
	Floating               Hint = 0x00020007
	Maximized              Hint = 0x00020008
	TransparentFramebuffer Hint = 0x0002000A
	FocusOnShow            Hint = 0x0002000C
	RedBits                Hint = 0x00021001
	GreenBits              Hint = 0x00021002
	BlueBits               Hint = 0x00021003
	AlphaBits              Hint = 0x00021004
	DepthBits              Hint = 0x00021005
	StencilBits            Hint = 0x00021006
	Samples                Hint = 0x0002100D
	RefreshRate            Hint = 0x0002100F
	DoubleBuffer           Hint = 0x00021010
	ClientAPI              Hint = 0x00022001
	ContextVersionMajor    Hint = 0x00022002
	ContextVersionMinor    Hint = 0x00022003
	OpenGLForwardCompat    Hint = 0x00022006
	OpenGLProfile          Hint = 0x00022008
	ScaleToMonitor         Hint = 0x0002200C
)

// Hint is a window hint or attribute identifier.
type Hint int32

// Input modes.
const (
	CursorMode             InputMode = 0x00033001
	StickyKeysMode         InputMode = 0x00033002
	StickyMouseButtonsMode InputMode = 0x00033003
	LockKeyMods            InputMode = 0x00033004
	RawMouseMotion         InputMode = 0x00033005
)

// InputMode selects a per-window input behavior.
type InputMode int32

// Cursor mode values.
const (
	CursorNormal   = 0x00034001
	CursorHidden   = 0x00034002
	CursorDisabled = 0x00034003
)

// Standard cursor shapes.
const (
	ArrowCursor     CursorShape = 0x00036001
	IBeamCursor     CursorShape = 0x00036002
	CrosshairCursor CursorShape = 0x00036003
	HandCursor      CursorShape = 0x00036004
	HResizeCursor   CursorShape = 0x00036005
	VResizeCursor   CursorShape = 0x00036006
)

// CursorShape is a standard cursor shape identifier.
type CursorShape int32

// Joystick slots.
const (
	Joystick1    Joystick = 0
	Joystick16   Joystick = 15
	JoystickLast          = Joystick16
)

// Gamepad buttons.
const (
	GamepadButtonA           = 0
	GamepadButtonB           = 1
	GamepadButtonX           = 2
	GamepadButtonY           = 3
	GamepadButtonLeftBumper  = 4
	GamepadButtonRightBumper = 5
	GamepadButtonBack        = 6
	GamepadButtonStart       = 7
	GamepadButtonGuide       = 8
	GamepadButtonLeftThumb   = 9
	GamepadButtonRightThumb  = 10
	GamepadButtonDpadUp      = 11
	GamepadButtonDpadRight   = 12
	GamepadButtonDpadDown    = 13
	GamepadButtonDpadLeft    = 14
	GamepadButtonLast        = GamepadButtonDpadLeft
)

// Gamepad axes.
const (
	GamepadAxisLeftX        = 0
	GamepadAxisLeftY        = 1
	GamepadAxisRightX       = 2
	GamepadAxisRightY       = 3
	GamepadAxisLeftTrigger  = 4
	GamepadAxisRightTrigger = 5
	GamepadAxisLast         = GamepadAxisRightTrigger
)

// Joystick and monitor connection events.
const (
	Connected    = 0x00040001
	Disconnected = 0x00040002
)

// DontCare may be passed to size limits and refresh rates.
const DontCare = -1

// Config controls library discovery for OpenWith.
type Config struct {
	// LibraryPath names an exact shared-library file, skipping discovery.
	LibraryPath string
	// LibraryVariant forces the "wayland" or "x11" library variant on
	// Linux.
	LibraryVariant string
	// LibrarySearchDirs are checked before the standard system
	// directories.
	LibrarySearchDirs []string
}

// Open locates and loads the native library with default discovery and
// returns a fresh session. The library stays loaded for the life of the
// process; open one session per process.
func Open() (*Session, error) {
	return OpenWith(Config{})
}

// OpenWith is Open with explicit discovery configuration.
func OpenWith(cfg Config) (*Session, error) {
	lib, path, err := ffi.Load(ffi.Options{
		Path:      cfg.LibraryPath,
		Variant:   cfg.LibraryVariant,
		ExtraDirs: cfg.LibrarySearchDirs,
	})
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return newSession(lib, path), nil
}
