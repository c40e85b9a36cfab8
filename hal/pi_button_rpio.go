//go:build !tinygo && linux && pi && rpio

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/stianeikeland/go-rpio"
)

// rpioPollInterval bounds the edge-to-latch delay of the rpio backend.
const rpioPollInterval = 2 * time.Millisecond

var (
	rpioOnce sync.Once
	rpioErr  error
)

// rpioButton uses the BCM283x event-detect register, itself a hardware
// latch, and forwards each detected edge as an interrupt-style callback.
type rpioButton struct {
	name  string
	pin   rpio.Pin
	edge  Edge
	line  irqLine
	watch sync.Once
}

func newPiButton(name string, bcm int) (InputPin, error) {
	rpioOnce.Do(func() { rpioErr = rpio.Open() })
	if rpioErr != nil {
		return nil, fmt.Errorf("gpio: rpio: %w", rpioErr)
	}
	return &rpioButton{name: name, pin: rpio.Pin(bcm)}, nil
}

func (b *rpioButton) Name() string { return b.name }

func (b *rpioButton) Configure(pull Pull, edge Edge) error {
	if err := validateInput(b.name, pull, edge); err != nil {
		return err
	}
	b.pin.Input()
	switch pull {
	case PullUp:
		b.pin.PullUp()
	case PullDown:
		b.pin.PullDown()
	default:
		b.pin.PullOff()
	}
	switch edge {
	case EdgeFalling:
		b.pin.Detect(rpio.FallEdge)
	case EdgeRising:
		b.pin.Detect(rpio.RiseEdge)
	case EdgeBoth:
		b.pin.Detect(rpio.AnyEdge)
	default:
		b.pin.Detect(rpio.NoEdge)
	}
	b.edge = edge
	return nil
}

func (b *rpioButton) SetInterrupt(fn func()) error {
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil callback", b.name)
	}
	b.line.subscribe(fn)
	return nil
}

func (b *rpioButton) EnableInterrupt() error {
	if b.edge == EdgeNone {
		return fmt.Errorf("gpio: pin %s: no edge configured", b.name)
	}
	b.watch.Do(func() {
		go func() {
			t := time.NewTicker(rpioPollInterval)
			defer t.Stop()
			for range t.C {
				if b.pin.EdgeDetected() {
					b.line.fire()
				}
			}
		}()
	})
	b.line.enable()
	return nil
}

func (b *rpioButton) DisableInterrupt() error {
	b.line.disable()
	return nil
}
