package app

import (
	"context"
	"fmt"
	"time"

	"tally/hal"
)

// Poller is the loop's view of an edge latch.
type Poller interface {
	PollAndClear() bool
}

// renderState is what the display currently shows.
type renderState struct {
	valid       bool
	at          time.Duration
	timeText    string
	count       uint32
	counterText string
}

// Loop is the fixed-cadence refresh loop. It owns the counter, the display
// and the render state; none of them are touched outside Step.
type Loop struct {
	cfg    Config
	disp   hal.Display
	clock  hal.Clock
	delay  hal.Delay
	log    hal.Logger
	inc    Poller
	reset  Poller
	layout layout
	style  hal.TextStyle

	count  uint32
	drawn  renderState
	frames uint64
}

// NewLoop builds a loop over an initialised display. inc is polled before
// reset on every iteration.
func NewLoop(cfg Config, disp hal.Display, clock hal.Clock, delay hal.Delay, log hal.Logger, inc, reset Poller) (*Loop, error) {
	cfg = cfg.withDefaults()
	if disp == nil || clock == nil || delay == nil {
		return nil, fmt.Errorf("refresh: missing display, clock or delay")
	}
	if inc == nil || reset == nil {
		return nil, fmt.Errorf("refresh: missing button")
	}
	lay, err := newLayout(disp.Size(), cfg.Font, cfg.Margin)
	if err != nil {
		return nil, err
	}
	return &Loop{
		cfg:    cfg,
		disp:   disp,
		clock:  clock,
		delay:  delay,
		log:    log,
		inc:    inc,
		reset:  reset,
		layout: lay,
		style:  hal.TextStyle{Font: cfg.Font, Color: cfg.Foreground},
	}, nil
}

func (l *Loop) Count() uint32    { return l.count }
func (l *Loop) Frames() uint64   { return l.frames }
func (l *Loop) TimeText() string { return l.drawn.timeText }
func (l *Loop) CounterText() string {
	return l.drawn.counterText
}

// Step runs one iteration without the trailing sleep.
func (l *Loop) Step() error {
	now := l.clock.Now()
	timeText := formatUptime(now)
	if err := l.drawLine(l.layout.time, timeText); err != nil {
		return err
	}
	l.drawn.at = now
	l.drawn.timeText = timeText

	// A before B: when both fired, the reset is applied last and wins.
	incFired := l.inc.PollAndClear()
	resetFired := l.reset.PollAndClear()
	if incFired {
		l.count++
	}
	if resetFired {
		l.count = 0
	}
	if incFired || resetFired {
		logf(l.log, "refresh: buttons a=%t b=%t count=%d", incFired, resetFired, l.count)
	}

	counterText := formatCount(l.count)
	if !l.drawn.valid || counterText != l.drawn.counterText {
		if err := l.drawLine(l.layout.counter, counterText); err != nil {
			return err
		}
		l.drawn.counterText = counterText
	}
	l.drawn.count = l.count

	if err := l.disp.Flush(); err != nil {
		return err
	}
	l.drawn.valid = true
	l.frames++
	return nil
}

// Run repeats Step and the configured sleep. Only ctx, the iteration limit or
// a draw error end it.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(); err != nil {
			logf(l.log, "refresh: frame %d: %v", l.frames, err)
			return fmt.Errorf("refresh: frame %d: %w", l.frames, err)
		}
		if l.cfg.Iterations > 0 && l.frames >= l.cfg.Iterations {
			return nil
		}
		l.delay.Sleep(l.cfg.Interval)
	}
}

// drawLine erases the whole line rectangle, then draws text on its baseline.
func (l *Loop) drawLine(r region, text string) error {
	if err := l.disp.FillRectangle(r.origin, r.size, l.cfg.Background); err != nil {
		return err
	}
	return l.disp.DrawText(r.baseline, text, l.style)
}
