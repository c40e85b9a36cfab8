//go:build !tinygo && linux && pi && !rpio

package hal

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// periphButton turns the kernel's edge notifications into interrupt-style
// callbacks. The watcher goroutine plays the part of interrupt context.
type periphButton struct {
	name  string
	pin   gpio.PinIn
	edge  Edge
	line  irqLine
	watch sync.Once
}

func newPiButton(name string, bcm int) (InputPin, error) {
	pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", bcm))
	if pin == nil {
		return nil, fmt.Errorf("gpio: pin %s: GPIO%d: %w", name, bcm, ErrUnsupported)
	}
	return &periphButton{name: name, pin: pin}, nil
}

func (b *periphButton) Name() string { return b.name }

func (b *periphButton) Configure(pull Pull, edge Edge) error {
	if err := validateInput(b.name, pull, edge); err != nil {
		return err
	}
	var e gpio.Edge
	switch edge {
	case EdgeFalling:
		e = gpio.FallingEdge
	case EdgeRising:
		e = gpio.RisingEdge
	case EdgeBoth:
		e = gpio.BothEdges
	default:
		e = gpio.NoEdge
	}
	if err := b.pin.In(periphPull(pull), e); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", b.name, err)
	}
	b.edge = edge
	return nil
}

func (b *periphButton) SetInterrupt(fn func()) error {
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil callback", b.name)
	}
	b.line.subscribe(fn)
	return nil
}

func (b *periphButton) EnableInterrupt() error {
	if b.edge == EdgeNone {
		return fmt.Errorf("gpio: pin %s: no edge configured", b.name)
	}
	b.watch.Do(func() {
		go func() {
			for b.pin.WaitForEdge(-1) {
				b.line.fire()
			}
		}()
	})
	b.line.enable()
	return nil
}

func (b *periphButton) DisableInterrupt() error {
	b.line.disable()
	return nil
}
