package ffi

import (
	"fmt"
	"image"
	"image/color"
	"unsafe"
)

// VidmodeC matches the GLFWvidmode struct layout.
type VidmodeC struct {
	Width       int32
	Height      int32
	RedBits     int32
	GreenBits   int32
	BlueBits    int32
	RefreshRate int32
}

// GammarampC matches the GLFWgammaramp struct layout. The channel pointers
// alias Go-allocated backing arrays; see GammaRampBuf.
type GammarampC struct {
	Red   *uint16
	Green *uint16
	Blue  *uint16
	Size  uint32
}

// ImageC matches the GLFWimage struct layout.
type ImageC struct {
	Width  int32
	Height int32
	Pixels *uint8
}

// GamepadStateC matches the GLFWgamepadstate struct layout: 15 button
// states and 6 axes, fixed by the native ABI.
type GamepadStateC struct {
	Buttons [15]uint8
	Axes    [6]float32
}

// VideoMode is a read-only snapshot of a monitor video mode.
type VideoMode struct {
	Width       int
	Height      int
	RedBits     int
	GreenBits   int
	BlueBits    int
	RefreshRate int
}

// GammaRamp holds one gamma sample sequence per channel. Depending on the
// session's normalize setting the samples are floats in [0, 1] or raw
// integral values in [0, 65535]; the interpretation is decided when the
// ramp is marshaled, not when it is built.
type GammaRamp struct {
	Red   []float64
	Green []float64
	Blue  []float64
}

// GamepadState is the input state of a gamepad-mapped joystick.
type GamepadState struct {
	Buttons [15]uint8
	Axes    [6]float32
}

// PixelGrid is a plain width x height grid of RGBA pixels, for callers that
// build icons and cursors by hand. It implements image.Image, so anything
// accepting an image source takes it too.
type PixelGrid struct {
	Width  int
	Height int
	Pixels [][][4]uint8
}

func (g *PixelGrid) ColorModel() color.Model { return color.RGBAModel }

func (g *PixelGrid) Bounds() image.Rectangle { return image.Rect(0, 0, g.Width, g.Height) }

func (g *PixelGrid) At(x, y int) color.Color {
	p := g.Pixels[y][x]
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (g *PixelGrid) validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("ffi: negative image dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Pixels) != g.Height {
		return fmt.Errorf("ffi: image has %d rows, expected %d", len(g.Pixels), g.Height)
	}
	for y, row := range g.Pixels {
		if len(row) != g.Width {
			return fmt.Errorf("ffi: image row %d has %d pixels, expected %d", y, len(row), g.Width)
		}
	}
	return nil
}

// GammaRampBuf owns the native storage a marshaled ramp points into. The
// native call retains no copy of the arrays, so the buffer must stay alive
// until the call returns.
type GammaRampBuf struct {
	C                GammarampC
	red, green, blue []uint16
}

// CPtr returns the address of the native struct for passing into the call
// table.
func (b *GammaRampBuf) CPtr() uintptr {
	return uintptr(unsafe.Pointer(&b.C))
}

// WrapGammaRamp marshals a host ramp into native layout. Channels of
// unequal length are truncated to the shortest: the native struct carries a
// single size, so min(len(red), len(green), len(blue)) samples is all it
// can describe. With normalize set, samples are scaled from [0, 1] by
// 65535 and truncated to integer; otherwise they pass through as
// already-integral values.
func WrapGammaRamp(ramp GammaRamp, normalize bool) *GammaRampBuf {
	size := min(len(ramp.Red), len(ramp.Green), len(ramp.Blue))
	buf := &GammaRampBuf{
		red:   make([]uint16, size),
		green: make([]uint16, size),
		blue:  make([]uint16, size),
	}
	channels := [3][]float64{ramp.Red, ramp.Green, ramp.Blue}
	storage := [3][]uint16{buf.red, buf.green, buf.blue}
	for c := range channels {
		for i := 0; i < size; i++ {
			v := channels[c][i]
			if normalize {
				v *= 65535
			}
			storage[c][i] = uint16(v)
		}
	}
	buf.C.Size = uint32(size)
	if size > 0 {
		buf.C.Red = unsafe.SliceData(buf.red)
		buf.C.Green = unsafe.SliceData(buf.green)
		buf.C.Blue = unsafe.SliceData(buf.blue)
	}
	return buf
}

// UnwrapGammaRamp reads a native ramp back into host form, dividing by
// 65535 when normalize is set.
func UnwrapGammaRamp(ptr uintptr, normalize bool) (GammaRamp, bool) {
	if ptr == 0 {
		return GammaRamp{}, false
	}
	c := (*GammarampC)(unsafe.Pointer(ptr))
	size := int(c.Size)
	ramp := GammaRamp{
		Red:   make([]float64, size),
		Green: make([]float64, size),
		Blue:  make([]float64, size),
	}
	channels := [3]*uint16{c.Red, c.Green, c.Blue}
	out := [3][]float64{ramp.Red, ramp.Green, ramp.Blue}
	for i, base := range channels {
		if base == nil {
			continue
		}
		samples := unsafe.Slice(base, size)
		for j, s := range samples {
			if normalize {
				out[i][j] = float64(s) / 65535.0
			} else {
				out[i][j] = float64(s)
			}
		}
	}
	return ramp, true
}

// ImageBuf owns the flattened RGBA buffer a marshaled image points into.
type ImageBuf struct {
	C      ImageC
	pixels []uint8
}

func (b *ImageBuf) CPtr() uintptr {
	return uintptr(unsafe.Pointer(&b.C))
}

// WrapImage marshals an icon or cursor image into native layout. Two input
// shapes are accepted: a *PixelGrid is copied row by row, and any other
// image.Image is converted pixel-wise through its color model. Both produce
// the same flattened width*height*4 RGBA buffer.
func WrapImage(src image.Image) (*ImageBuf, error) {
	if src == nil {
		return nil, fmt.Errorf("ffi: nil image source")
	}
	if grid, ok := src.(*PixelGrid); ok {
		return wrapPixelGrid(grid)
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &ImageBuf{pixels: make([]uint8, w*h*4)}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			buf.pixels[i] = uint8(r >> 8)
			buf.pixels[i+1] = uint8(g >> 8)
			buf.pixels[i+2] = uint8(b >> 8)
			buf.pixels[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	buf.C = ImageC{Width: int32(w), Height: int32(h)}
	if len(buf.pixels) > 0 {
		buf.C.Pixels = unsafe.SliceData(buf.pixels)
	}
	return buf, nil
}

func wrapPixelGrid(grid *PixelGrid) (*ImageBuf, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	buf := &ImageBuf{pixels: make([]uint8, grid.Width*grid.Height*4)}
	i := 0
	for _, row := range grid.Pixels {
		for _, px := range row {
			copy(buf.pixels[i:i+4], px[:])
			i += 4
		}
	}
	buf.C = ImageC{Width: int32(grid.Width), Height: int32(grid.Height)}
	if len(buf.pixels) > 0 {
		buf.C.Pixels = unsafe.SliceData(buf.pixels)
	}
	return buf, nil
}

// UnwrapImage reconstructs the nested host form from a native image.
func UnwrapImage(ptr uintptr) (*PixelGrid, bool) {
	if ptr == 0 {
		return nil, false
	}
	c := (*ImageC)(unsafe.Pointer(ptr))
	w, h := int(c.Width), int(c.Height)
	grid := &PixelGrid{Width: w, Height: h, Pixels: make([][][4]uint8, h)}
	var flat []uint8
	if c.Pixels != nil {
		flat = unsafe.Slice(c.Pixels, w*h*4)
	}
	i := 0
	for y := range grid.Pixels {
		row := make([][4]uint8, w)
		for x := range row {
			copy(row[x][:], flat[i:i+4])
			i += 4
		}
		grid.Pixels[y] = row
	}
	return grid, true
}

// UnwrapVideoMode copies a native video mode snapshot.
func UnwrapVideoMode(ptr uintptr) (VideoMode, bool) {
	if ptr == 0 {
		return VideoMode{}, false
	}
	c := (*VidmodeC)(unsafe.Pointer(ptr))
	return videoMode(c), true
}

// UnwrapVideoModes copies a native array of count video modes.
func UnwrapVideoModes(ptr uintptr, count int) []VideoMode {
	if ptr == 0 || count <= 0 {
		return nil
	}
	cs := unsafe.Slice((*VidmodeC)(unsafe.Pointer(ptr)), count)
	modes := make([]VideoMode, count)
	for i := range cs {
		modes[i] = videoMode(&cs[i])
	}
	return modes
}

func videoMode(c *VidmodeC) VideoMode {
	return VideoMode{
		Width:       int(c.Width),
		Height:      int(c.Height),
		RedBits:     int(c.RedBits),
		GreenBits:   int(c.GreenBits),
		BlueBits:    int(c.BlueBits),
		RefreshRate: int(c.RefreshRate),
	}
}

// UnwrapGamepadState copies a native gamepad state element-wise. The 15/6
// sizes are ABI constants; the fixed arrays make them impossible to
// violate.
func UnwrapGamepadState(c *GamepadStateC) GamepadState {
	return GamepadState{Buttons: c.Buttons, Axes: c.Axes}
}
