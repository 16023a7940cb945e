package ffi

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"
)

func TestGammaRampRoundTripNormalized(t *testing.T) {
	ramp := GammaRamp{
		Red:   []float64{0, 0.25, 0.5, 0.75, 1},
		Green: []float64{0.1, 0.2, 0.3, 0.4, 0.5},
		Blue:  []float64{1, 0.9, 0.8, 0.7, 0.6},
	}
	buf := WrapGammaRamp(ramp, true)
	got, ok := UnwrapGammaRamp(buf.CPtr(), true)
	if !ok {
		t.Fatal("UnwrapGammaRamp failed")
	}
	const tolerance = 1.0 / 65535
	channels := []struct {
		name string
		in   []float64
		out  []float64
	}{
		{"red", ramp.Red, got.Red},
		{"green", ramp.Green, got.Green},
		{"blue", ramp.Blue, got.Blue},
	}
	for _, ch := range channels {
		if len(ch.out) != len(ch.in) {
			t.Fatalf("%s: got %d samples, want %d", ch.name, len(ch.out), len(ch.in))
		}
		for i := range ch.in {
			if math.Abs(ch.out[i]-ch.in[i]) > tolerance {
				t.Errorf("%s[%d] = %v, want %v within 1/65535", ch.name, i, ch.out[i], ch.in[i])
			}
		}
	}
}

func TestGammaRampRoundTripRaw(t *testing.T) {
	ramp := GammaRamp{
		Red:   []float64{0, 16384, 32768, 65535},
		Green: []float64{1, 2, 3, 4},
		Blue:  []float64{65535, 65534, 65533, 65532},
	}
	buf := WrapGammaRamp(ramp, false)
	got, ok := UnwrapGammaRamp(buf.CPtr(), false)
	if !ok {
		t.Fatal("UnwrapGammaRamp failed")
	}
	if !reflect.DeepEqual(got, ramp) {
		t.Errorf("raw round trip not exact:\n got %v\nwant %v", got, ramp)
	}
}

func TestGammaRampTruncatesToShortestChannel(t *testing.T) {
	ramp := GammaRamp{
		Red:   make([]float64, 5),
		Green: make([]float64, 7),
		Blue:  make([]float64, 3),
	}
	buf := WrapGammaRamp(ramp, true)
	if buf.C.Size != 3 {
		t.Errorf("ramp size = %d, want 3 (the shortest channel)", buf.C.Size)
	}
	got, _ := UnwrapGammaRamp(buf.CPtr(), true)
	for _, ch := range [][]float64{got.Red, got.Green, got.Blue} {
		if len(ch) != 3 {
			t.Errorf("channel length = %d, want 3", len(ch))
		}
	}
}

func TestGammaRampEmpty(t *testing.T) {
	buf := WrapGammaRamp(GammaRamp{}, true)
	if buf.C.Size != 0 {
		t.Errorf("empty ramp size = %d, want 0", buf.C.Size)
	}
}

func testGrid() *PixelGrid {
	return &PixelGrid{
		Width:  2,
		Height: 2,
		Pixels: [][][4]uint8{
			{{255, 0, 0, 255}, {0, 255, 0, 255}},
			{{0, 0, 255, 255}, {255, 255, 255, 128}},
		},
	}
}

func TestImageRoundTrip(t *testing.T) {
	grid := testGrid()
	buf, err := WrapImage(grid)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := UnwrapImage(buf.CPtr())
	if !ok {
		t.Fatal("UnwrapImage failed")
	}
	if !reflect.DeepEqual(got, grid) {
		t.Errorf("image round trip mismatch:\n got %+v\nwant %+v", got, grid)
	}
}

func TestImageDualInputEquivalence(t *testing.T) {
	grid := testGrid()

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y, row := range grid.Pixels {
		for x, px := range row {
			rgba.SetRGBA(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}

	fromGrid, err := WrapImage(grid)
	if err != nil {
		t.Fatal(err)
	}
	fromImage, err := WrapImage(rgba)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := UnwrapImage(fromGrid.CPtr())
	b, _ := UnwrapImage(fromImage.CPtr())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("grid and image.Image inputs produced different buffers:\n grid  %+v\n image %+v", a, b)
	}
}

func TestImageMalformedGrid(t *testing.T) {
	tests := []struct {
		name string
		grid *PixelGrid
	}{
		{"row count mismatch", &PixelGrid{Width: 2, Height: 3, Pixels: [][][4]uint8{{{0, 0, 0, 0}, {0, 0, 0, 0}}}}},
		{"row width mismatch", &PixelGrid{Width: 2, Height: 1, Pixels: [][][4]uint8{{{0, 0, 0, 0}}}}},
		{"negative dimensions", &PixelGrid{Width: -1, Height: 1, Pixels: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WrapImage(tt.grid); err == nil {
				t.Error("WrapImage accepted a malformed grid")
			}
		})
	}
}

func TestWrapImageNilSource(t *testing.T) {
	if _, err := WrapImage(nil); err == nil {
		t.Error("WrapImage accepted a nil source")
	}
}

func TestUnwrapVideoMode(t *testing.T) {
	c := VidmodeC{Width: 1920, Height: 1080, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 144}
	got, ok := UnwrapVideoMode(Ptr(&c))
	if !ok {
		t.Fatal("UnwrapVideoMode failed")
	}
	want := VideoMode{Width: 1920, Height: 1080, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 144}
	if got != want {
		t.Errorf("UnwrapVideoMode = %+v, want %+v", got, want)
	}
}

func TestUnwrapVideoModes(t *testing.T) {
	cs := []VidmodeC{
		{Width: 640, Height: 480, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 144},
	}
	modes := UnwrapVideoModes(Ptr(&cs[0]), len(cs))
	if len(modes) != 2 {
		t.Fatalf("got %d modes, want 2", len(modes))
	}
	if modes[1].Width != 1920 || modes[1].RefreshRate != 144 {
		t.Errorf("modes[1] = %+v", modes[1])
	}
}

func TestUnwrapGamepadState(t *testing.T) {
	var c GamepadStateC
	c.Buttons[0] = 1
	c.Buttons[14] = 1
	c.Axes[5] = -0.5
	got := UnwrapGamepadState(&c)
	if got.Buttons[0] != 1 || got.Buttons[14] != 1 {
		t.Errorf("buttons not copied: %v", got.Buttons)
	}
	if got.Axes[5] != -0.5 {
		t.Errorf("axes not copied: %v", got.Axes)
	}
	if len(got.Buttons) != 15 || len(got.Axes) != 6 {
		t.Error("gamepad state sizes violated")
	}
}
