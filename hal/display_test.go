package hal

import (
	"errors"
	"image/color"
	"testing"

	"tinygo.org/x/tinyfont/proggy"
)

var (
	testBG = color.RGBA{R: 0, G: 0, B: 0xff, A: 0xff}
	testFG = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func TestFramebufferFillClamps(t *testing.T) {
	fb := NewFramebuffer(8, 4)
	if err := fb.FillRectangle(-2, 2, 5, 10, testFG); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}

	white := rgb565From(testFG)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			want := uint16(0)
			if x < 3 && y >= 2 {
				want = white
			}
			if got := fb.RGB565At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %#04x, want %#04x", x, y, got, want)
			}
		}
	}
}

func TestDisplayDrawTextInksInsideLine(t *testing.T) {
	fb := NewFramebuffer(64, 32)
	d := NewDisplay(fb)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := d.Clear(testBG); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	font := &proggy.TinySZ8pt7b
	if err := d.DrawText(Point{X: 2, Y: 20}, "88", TextStyle{Font: font, Color: testFG}); err != nil {
		t.Fatalf("DrawText: %v", err)
	}

	ink := 0
	white := rgb565From(testFG)
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			if fb.RGB565At(x, y) != white {
				continue
			}
			ink++
			if y > 20+int(font.GetYAdvance()) || x < 2 {
				t.Fatalf("ink at (%d,%d) outside text line", x, y)
			}
		}
	}
	if ink == 0 {
		t.Fatal("expected text pixels")
	}
}

func TestDisplayDrawTextNeedsFont(t *testing.T) {
	d := NewDisplay(NewFramebuffer(8, 8))
	if err := d.DrawText(Point{}, "x", TextStyle{Color: testFG}); err == nil {
		t.Fatal("expected error without font")
	}
}

type brokenPanel struct {
	*Framebuffer
	err error
}

func (p *brokenPanel) Err() error { return p.err }

func TestDisplaySurfacesStickyPanelError(t *testing.T) {
	errBus := errors.New("spi: tx failed")
	d := NewDisplay(&brokenPanel{Framebuffer: NewFramebuffer(16, 16), err: errBus})

	err := d.DrawText(Point{X: 0, Y: 10}, "1", TextStyle{Font: &proggy.TinySZ8pt7b, Color: testFG})
	if !errors.Is(err, errBus) {
		t.Fatalf("DrawText err = %v, want %v", err, errBus)
	}
	if err := d.Clear(testBG); !errors.Is(err, errBus) {
		t.Fatalf("Clear err = %v, want %v", err, errBus)
	}
}
