//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"time"
)

type tinyGoClock struct {
	start time.Time
}

func newTinyGoClock() *tinyGoClock { return &tinyGoClock{start: time.Now()} }

func (c *tinyGoClock) Now() time.Duration    { return time.Since(c.start) }
func (c *tinyGoClock) Sleep(d time.Duration) { time.Sleep(d) }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin is a GPIO input whose pin-change interrupt is installed once and
// then gated by a software mask, so it behaves like a line that disables
// itself on fire.
type machinePin struct {
	name      string
	pin       machine.Pin
	change    machine.PinChange
	installed bool
	line      irqLine
	onIRQ     func(machine.Pin)
}

func newMachinePin(name string, pin machine.Pin) *machinePin {
	p := &machinePin{name: name, pin: pin}
	p.onIRQ = p.irq
	return p
}

func (p *machinePin) Name() string { return p.name }

func (p *machinePin) Configure(pull Pull, edge Edge) error {
	if err := validateInput(p.name, pull, edge); err != nil {
		return err
	}
	mode := machine.PinInput
	switch pull {
	case PullUp:
		mode = machine.PinInputPullup
	case PullDown:
		mode = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: mode})

	switch edge {
	case EdgeFalling:
		p.change = machine.PinFalling
	case EdgeRising:
		p.change = machine.PinRising
	case EdgeBoth:
		p.change = machine.PinToggle
	default:
		p.change = 0
	}
	return nil
}

func (p *machinePin) SetInterrupt(fn func()) error {
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil callback", p.name)
	}
	p.line.subscribe(fn)
	return nil
}

func (p *machinePin) EnableInterrupt() error {
	if p.change == 0 {
		return fmt.Errorf("gpio: pin %s: no edge configured", p.name)
	}
	if !p.installed {
		if err := p.pin.SetInterrupt(p.change, p.onIRQ); err != nil {
			return fmt.Errorf("gpio: pin %s: set interrupt: %w", p.name, err)
		}
		p.installed = true
	}
	p.line.enable()
	return nil
}

func (p *machinePin) DisableInterrupt() error {
	p.line.disable()
	return nil
}

// irq runs in interrupt context.
func (p *machinePin) irq(machine.Pin) {
	p.line.fire()
}

// Reset restarts the microcontroller.
func Reset() {
	machine.CPUReset()
}
