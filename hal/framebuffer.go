package hal

import (
	"image"
	"image/color"
	"sync"
)

// Framebuffer is an in-memory RGB565 panel (little-endian pixels).
//
// It is safe for one writer and concurrent snapshot readers.
type Framebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	stride := width * 2
	return &Framebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *Framebuffer) Size() (x, y int16) { return int16(f.width), int16(f.height) }

func (f *Framebuffer) Display() error { return nil }

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= f.width || iy < 0 || iy >= f.height {
		return
	}
	pixel := rgb565From(c)

	f.mu.Lock()
	defer f.mu.Unlock()
	off := iy*f.stride + ix*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, f.width)
	y0 := clampInt(int(y), 0, f.height)
	x1 := clampInt(int(x)+int(width), 0, f.width)
	y1 := clampInt(int(y)+int(height), 0, f.height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := rgb565From(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	f.mu.Lock()
	defer f.mu.Unlock()
	for py := y0; py < y1; py++ {
		row := py * f.stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			f.buf[off] = lo
			f.buf[off+1] = hi
		}
	}
	return nil
}

// RGB565At returns the raw pixel at (x, y), or 0 outside the buffer.
func (f *Framebuffer) RGB565At(x, y int) uint16 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// Image converts the current contents to RGBA.
func (f *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.snapshotInto(img)
	return img
}

func (f *Framebuffer) snapshotInto(img *image.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dst := img.Pix
	for i := 0; i+1 < len(f.buf) && i/2*4+3 < len(dst); i += 2 {
		r, g, b := rgb888From565(uint16(f.buf[i]) | uint16(f.buf[i+1])<<8)
		j := (i / 2) * 4
		dst[j+0] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
