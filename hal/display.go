package hal

import (
	"errors"
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Panel is a pixel device: a tinygo Displayer that can also fill rectangles.
//
// tinygo.org/x/drivers/st7735 devices satisfy it directly. A panel may also
// implement Init() error, run once by Display.Init, and Err() error, which
// reports a sticky bus error from calls that cannot return one (SetPixel).
type Panel interface {
	drivers.Displayer
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

type panelIniter interface {
	Init() error
}

type panelErrer interface {
	Err() error
}

type panelDisplay struct {
	p Panel
}

// NewDisplay adapts a panel to the Display contract.
func NewDisplay(p Panel) Display {
	return &panelDisplay{p: p}
}

func (d *panelDisplay) Init() error {
	if d.p == nil {
		return errors.New("display: no panel")
	}
	if in, ok := d.p.(panelIniter); ok {
		if err := in.Init(); err != nil {
			return fmt.Errorf("display: init: %w", err)
		}
	}
	return d.err()
}

func (d *panelDisplay) Size() Size {
	w, h := d.p.Size()
	return Size{W: w, H: h}
}

func (d *panelDisplay) Clear(c color.RGBA) error {
	w, h := d.p.Size()
	return d.FillRectangle(Point{}, Size{W: w, H: h}, c)
}

func (d *panelDisplay) FillRectangle(origin Point, size Size, c color.RGBA) error {
	if size.W <= 0 || size.H <= 0 {
		return nil
	}
	if err := d.p.FillRectangle(origin.X, origin.Y, size.W, size.H, c); err != nil {
		return fmt.Errorf("display: fill %dx%d at (%d,%d): %w", size.W, size.H, origin.X, origin.Y, err)
	}
	return d.err()
}

func (d *panelDisplay) DrawText(origin Point, s string, style TextStyle) error {
	if style.Font == nil {
		return errors.New("display: text style has no font")
	}
	tinyfont.WriteLine(d.p, style.Font, origin.X, origin.Y, s, style.Color)
	if err := d.err(); err != nil {
		return fmt.Errorf("display: text %q: %w", s, err)
	}
	return nil
}

func (d *panelDisplay) Flush() error {
	if err := d.p.Display(); err != nil {
		return fmt.Errorf("display: flush: %w", err)
	}
	return d.err()
}

func (d *panelDisplay) err() error {
	if e, ok := d.p.(panelErrer); ok {
		return e.Err()
	}
	return nil
}
