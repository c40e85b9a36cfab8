package app

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"

	"tally/hal"
)

func pack565(c color.RGBA) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

func newTestHost() *hal.Host {
	return hal.NewHost(hal.HostConfig{Clock: clockwork.NewFakeClock()})
}

func TestNewArmsButtonsAndClears(t *testing.T) {
	h := newTestHost()
	cfg := DefaultConfig()
	cfg.Iterations = 1

	s, err := New(h, cfg)
	assert.NilError(t, err)
	assert.Assert(t, h.VirtualButton(hal.ButtonA).Armed())
	assert.Assert(t, h.VirtualButton(hal.ButtonB).Armed())
	assert.Equal(t, h.Framebuffer().RGB565At(0, 127), pack565(ColorBlue))

	assert.NilError(t, s.Run(context.Background()))
	assert.Equal(t, s.Count(), uint32(0))

	h.VirtualButton(hal.ButtonA).Click()
	assert.NilError(t, s.Run(context.Background()))
	assert.Equal(t, s.Count(), uint32(1))
	assert.Equal(t, s.Frames(), uint64(2))
}

func TestNewFailsWhenButtonCannotArm(t *testing.T) {
	h := newTestHost()
	errIRQ := errors.New("irq controller rejected line")
	h.VirtualButton(hal.ButtonB).FailEnable(1, errIRQ)

	_, err := New(h, DefaultConfig())
	assert.Assert(t, errors.Is(err, errIRQ), "got %v", err)
	assert.ErrorContains(t, err, "latch B")
}

func TestShowFatalPaintsScreen(t *testing.T) {
	h := newTestHost()
	_, err := New(h, DefaultConfig())
	assert.NilError(t, err)

	ShowFatal(h, DefaultConfig(), errors.New("display: fill 128x12 at (0,4): spi: tx failed"))
	assert.Equal(t, h.Framebuffer().RGB565At(0, 0), pack565(ColorRed))
	assert.Equal(t, h.Framebuffer().RGB565At(127, 127), pack565(ColorRed))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, cfg.Interval, DefaultInterval)
	assert.Equal(t, cfg.Background, ColorBlue)
	assert.Equal(t, cfg.Foreground, ColorWhite)
	assert.Assert(t, cfg.Font != nil)

	cfg = Config{Interval: 50 * time.Millisecond, Foreground: ColorRed}.withDefaults()
	assert.Equal(t, cfg.Interval, 50*time.Millisecond)
	assert.Equal(t, cfg.Foreground, ColorRed)
}
