// Package app wires the button latches and the refresh loop into a running
// counter board.
package app

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"tally/hal"
	"tally/internal/buildinfo"
	"tally/latch"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	DefaultInterval = 1000 * time.Millisecond
	DefaultMargin   = 4
)

var (
	ColorBlue  = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	ColorWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorRed   = color.RGBA{R: 0xc0, G: 0x10, B: 0x10, A: 0xff}
)

// Config holds the board constants. Zero fields take defaults.
type Config struct {
	// Interval is the sleep between loop iterations.
	Interval time.Duration
	// Iterations stops the loop after that many frames (0 = run forever).
	Iterations uint64

	Background color.RGBA
	Foreground color.RGBA
	Font       tinyfont.Fonter
	Margin     int16
}

// DefaultConfig returns the stock board settings.
func DefaultConfig() Config {
	return Config{
		Interval:   DefaultInterval,
		Background: ColorBlue,
		Foreground: ColorWhite,
		Font:       &proggy.TinySZ8pt7b,
		Margin:     DefaultMargin,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.Background == (color.RGBA{}) && c.Foreground == (color.RGBA{}) {
		c.Background = def.Background
		c.Foreground = def.Foreground
	}
	if c.Font == nil {
		c.Font = def.Font
	}
	if c.Margin <= 0 {
		c.Margin = def.Margin
	}
	return c
}

// System is the assembled board: two armed latches and the refresh loop.
type System struct {
	loop  *Loop
	inc   *latch.Latch
	reset *latch.Latch
}

// New takes ownership of the HAL peripherals, initialises the display and
// arms both buttons. Any error here is a setup failure and must abort.
func New(h hal.HAL, cfg Config) (*System, error) {
	if h == nil {
		return nil, fmt.Errorf("app: nil hal")
	}
	cfg = cfg.withDefaults()
	log := h.Logger()

	disp := h.Display()
	if disp == nil {
		return nil, fmt.Errorf("app: no display")
	}
	if err := disp.Init(); err != nil {
		return nil, err
	}
	if err := disp.Clear(cfg.Background); err != nil {
		return nil, err
	}

	var latches [2]*latch.Latch
	for i, id := range []hal.ButtonID{hal.ButtonA, hal.ButtonB} {
		pin := h.Button(id)
		if pin == nil {
			return nil, fmt.Errorf("app: button %s: %w", id, hal.ErrUnsupported)
		}
		l := latch.New(pin, log)
		if err := l.Arm(); err != nil {
			return nil, err
		}
		latches[i] = l
	}

	loop, err := NewLoop(cfg, disp, h.Clock(), h.Delay(), log, latches[0], latches[1])
	if err != nil {
		return nil, err
	}

	size := disp.Size()
	logf(log, "app: tally %s: %dx%d display, interval %s", buildinfo.Long(), size.W, size.H, cfg.Interval)
	return &System{loop: loop, inc: latches[0], reset: latches[1]}, nil
}

// Run drives the refresh loop until ctx ends, the iteration limit is hit or
// a draw fails. A draw failure is unrecoverable.
func (s *System) Run(ctx context.Context) error { return s.loop.Run(ctx) }

// Count returns the current counter value.
func (s *System) Count() uint32 { return s.loop.Count() }

// Frames returns the number of completed loop iterations.
func (s *System) Frames() uint64 { return s.loop.Frames() }

// Run builds the system and runs it forever.
func Run(h hal.HAL, cfg Config) error {
	s, err := New(h, cfg)
	if err != nil {
		return err
	}
	return s.Run(context.Background())
}

func logf(l hal.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.WriteLineString(fmt.Sprintf(format, args...))
}
