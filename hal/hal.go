package hal

import (
	"errors"
	"image/color"
	"time"

	"tinygo.org/x/tinyfont"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrUnsupported    = errors.New("unsupported")
)

// Point is a pixel coordinate. For text it is the left end of the baseline.
type Point struct {
	X, Y int16
}

// Size is a pixel extent.
type Size struct {
	W, H int16
}

// TextStyle selects the font and ink colour used by DrawText.
type TextStyle struct {
	Font  tinyfont.Fonter
	Color color.RGBA
}

// Display is the drawing surface owned by the refresh loop.
//
// Every method runs in the main loop only; interrupt callbacks never draw.
type Display interface {
	Init() error
	Size() Size
	Clear(c color.RGBA) error
	FillRectangle(origin Point, size Size, c color.RGBA) error
	DrawText(origin Point, s string, style TextStyle) error
	Flush() error
}

// Pull selects the pull resistor configuration of an input.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selects which transitions raise an interrupt.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeFalling
	EdgeRising
	EdgeBoth
)

// InputPin is a digital input with edge interrupts.
//
// The line masks itself after delivering one edge. EnableInterrupt re-arms it.
// The callback passed to SetInterrupt runs in interrupt context: it must not
// block, allocate or perform I/O.
type InputPin interface {
	Name() string
	Configure(pull Pull, edge Edge) error
	SetInterrupt(fn func()) error
	EnableInterrupt() error
	DisableInterrupt() error
}

// ButtonID names the two board buttons.
type ButtonID uint8

const (
	ButtonA ButtonID = iota
	ButtonB
)

func (id ButtonID) String() string {
	switch id {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	default:
		return "?"
	}
}

// Clock is a monotonic time source. Readings are only used for display.
type Clock interface {
	Now() time.Duration
}

// Delay blocks the calling context. Never called from interrupt context.
type Delay interface {
	Sleep(d time.Duration)
}

// HAL provides the only contact point between the application and the board.
//
// A HAL is constructed once by the entry point and handed to the application,
// which takes exclusive ownership of every peripheral it returns.
type HAL interface {
	Logger() Logger
	Display() Display
	Button(id ButtonID) InputPin
	Clock() Clock
	Delay() Delay
}
