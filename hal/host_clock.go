//go:build !tinygo

package hal

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// WallClock serves both Clock and Delay from a clockwork clock.
//
// Readings are measured from the moment the WallClock was created.
type WallClock struct {
	clk   clockwork.Clock
	epoch time.Time
}

// NewWallClock wraps clk. A nil clk uses the real clock.
func NewWallClock(clk clockwork.Clock) *WallClock {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &WallClock{clk: clk, epoch: clk.Now()}
}

func (c *WallClock) Now() time.Duration { return c.clk.Now().Sub(c.epoch) }

func (c *WallClock) Sleep(d time.Duration) { c.clk.Sleep(d) }

// After fires once d has elapsed on the underlying clock.
func (c *WallClock) After(d time.Duration) <-chan time.Time { return c.clk.After(d) }
