//go:build !tinygo && linux && pi

package hal

import (
	"fmt"
	"image/color"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	st7735Width        = 128
	st7735Height       = 128
	st7735ColumnOffset = 2
	st7735RowOffset    = 1

	// spidev rejects transfers above its default buffer size.
	st7735MaxTx = 4096
)

// piST7735 drives an ST7735R 128x128 panel over a periph SPI connection.
//
// The first bus error is kept and reported by Err, Display and every later
// call; SetPixel has no error return of its own.
type piST7735 struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinOut

	txBuf []byte
	err   error
}

func newPiST7735(c conn.Conn, dc, rst gpio.PinOut) *piST7735 {
	return &piST7735{c: c, dc: dc, rst: rst, txBuf: make([]byte, st7735MaxTx)}
}

func (d *piST7735) Init() error {
	if err := d.reset(); err != nil {
		return err
	}

	d.cmd(0x01) // SWRESET
	time.Sleep(150 * time.Millisecond)
	d.cmd(0x11) // SLPOUT
	time.Sleep(500 * time.Millisecond)

	// Frame rate control: normal, idle, partial.
	d.cmd(0xB1, 0x01, 0x2C, 0x2D)
	d.cmd(0xB2, 0x01, 0x2C, 0x2D)
	d.cmd(0xB3, 0x01, 0x2C, 0x2D, 0x01, 0x2C, 0x2D)
	d.cmd(0xB4, 0x07) // INVCTR: no line inversion

	// Power control.
	d.cmd(0xC0, 0xA2, 0x02, 0x84)
	d.cmd(0xC1, 0xC5)
	d.cmd(0xC2, 0x0A, 0x00)
	d.cmd(0xC3, 0x8A, 0x2A)
	d.cmd(0xC4, 0x8A, 0xEE)
	d.cmd(0xC5, 0x0E) // VMCTR1

	d.cmd(0x21)       // INVON: this panel is wired inverted
	d.cmd(0x36, 0xC0) // MADCTL: MY|MX, RGB order
	d.cmd(0x3A, 0x05) // COLMOD: 16bpp

	d.cmd(0x13) // NORON
	time.Sleep(10 * time.Millisecond)
	d.cmd(0x29) // DISPON
	time.Sleep(100 * time.Millisecond)
	return d.err
}

func (d *piST7735) reset() error {
	if err := d.rst.Out(gpio.Low); err != nil {
		return d.fail(err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return d.fail(err)
	}
	time.Sleep(120 * time.Millisecond)
	return nil
}

func (d *piST7735) Size() (x, y int16) { return st7735Width, st7735Height }

func (d *piST7735) SetPixel(x, y int16, c color.RGBA) {
	d.FillRectangle(x, y, 1, 1, c)
}

func (d *piST7735) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.err != nil {
		return d.err
	}
	x0 := clampInt(int(x), 0, st7735Width)
	y0 := clampInt(int(y), 0, st7735Height)
	x1 := clampInt(int(x)+int(width), 0, st7735Width)
	y1 := clampInt(int(y)+int(height), 0, st7735Height)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	d.setWindow(uint16(x0), uint16(y0), uint16(x1-1), uint16(y1-1))

	// The controller expects big-endian RGB565.
	pixel := rgb565From(c)
	chunk := d.txBuf[:len(d.txBuf)&^1]
	for i := 0; i < len(chunk); i += 2 {
		chunk[i] = byte(pixel >> 8)
		chunk[i+1] = byte(pixel)
	}
	remain := (x1 - x0) * (y1 - y0) * 2
	for remain > 0 && d.err == nil {
		n := len(chunk)
		if n > remain {
			n = remain
		}
		d.data(chunk[:n])
		remain -= n
	}
	return d.err
}

func (d *piST7735) Display() error { return d.err }

func (d *piST7735) Err() error { return d.err }

func (d *piST7735) setWindow(x0, y0, x1, y1 uint16) {
	x0 += st7735ColumnOffset
	x1 += st7735ColumnOffset
	y0 += st7735RowOffset
	y1 += st7735RowOffset
	d.cmd(0x2A, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)) // CASET
	d.cmd(0x2B, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)) // RASET
	d.cmd(0x2C)                                               // RAMWR
}

func (d *piST7735) cmd(cmd byte, data ...byte) {
	if d.err != nil {
		return
	}
	if err := d.dc.Out(gpio.Low); err != nil {
		d.fail(err)
		return
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		d.fail(err)
		return
	}
	if len(data) > 0 {
		d.data(data)
	}
}

func (d *piST7735) data(b []byte) {
	if d.err != nil {
		return
	}
	if err := d.dc.Out(gpio.High); err != nil {
		d.fail(err)
		return
	}
	if err := d.c.Tx(b, nil); err != nil {
		d.fail(err)
	}
}

func (d *piST7735) fail(err error) error {
	if d.err == nil {
		d.err = fmt.Errorf("st7735: %w", err)
	}
	return d.err
}
