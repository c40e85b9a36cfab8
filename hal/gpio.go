package hal

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// irqLine models one interrupt line: a subscriber plus a mask bit.
//
// fire is safe to call from any goroutine or ISR. It delivers at most one edge
// per enable, then leaves the line masked. subscribe must happen before the
// first enable; the mask bit orders the two.
type irqLine struct {
	fn    func()
	armed atomic.Bool
}

func (l *irqLine) subscribe(fn func()) { l.fn = fn }
func (l *irqLine) enable()             { l.armed.Store(true) }
func (l *irqLine) disable()            { l.armed.Store(false) }
func (l *irqLine) enabled() bool       { return l.armed.Load() }

func (l *irqLine) fire() bool {
	if !l.armed.Swap(false) || l.fn == nil {
		return false
	}
	l.fn()
	return true
}

func edgeMatches(edge Edge, falling bool) bool {
	switch edge {
	case EdgeBoth:
		return true
	case EdgeFalling:
		return falling
	case EdgeRising:
		return !falling
	default:
		return false
	}
}

func validateInput(name string, pull Pull, edge Edge) error {
	switch pull {
	case PullNone, PullUp, PullDown:
	default:
		return fmt.Errorf("gpio: pin %s: invalid pull", name)
	}
	switch edge {
	case EdgeNone, EdgeFalling, EdgeRising, EdgeBoth:
	default:
		return fmt.Errorf("gpio: pin %s: invalid edge", name)
	}
	return nil
}

// VirtualPin is a simulated push button wired to ground.
//
// Press and Release drive the level and raise edges the way a pulled-up input
// would. It backs the host builds and the tests.
type VirtualPin struct {
	mu         sync.Mutex
	name       string
	pull       Pull
	edge       Edge
	configured bool
	level      bool
	failEnable int
	enableErr  error

	line irqLine
}

// NewVirtualPin returns an unconfigured virtual input.
func NewVirtualPin(name string) *VirtualPin {
	if strings.TrimSpace(name) == "" {
		name = "VPIN"
	}
	return &VirtualPin{name: name, level: true}
}

func (p *VirtualPin) Name() string { return p.name }

func (p *VirtualPin) Configure(pull Pull, edge Edge) error {
	if err := validateInput(p.name, pull, edge); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pull = pull
	p.edge = edge
	p.level = pull != PullDown
	p.configured = true
	return nil
}

func (p *VirtualPin) SetInterrupt(fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return fmt.Errorf("gpio: pin %s: not configured", p.name)
	}
	if fn == nil {
		return fmt.Errorf("gpio: pin %s: nil callback", p.name)
	}
	p.line.subscribe(fn)
	return nil
}

func (p *VirtualPin) EnableInterrupt() error {
	p.mu.Lock()
	if p.failEnable > 0 {
		p.failEnable--
		err := p.enableErr
		p.mu.Unlock()
		return fmt.Errorf("gpio: pin %s: enable interrupt: %w", p.name, err)
	}
	edge := p.edge
	p.mu.Unlock()

	if edge == EdgeNone {
		return fmt.Errorf("gpio: pin %s: no edge configured", p.name)
	}
	p.line.enable()
	return nil
}

func (p *VirtualPin) DisableInterrupt() error {
	p.line.disable()
	return nil
}

// Armed reports whether the next matching edge will be delivered.
func (p *VirtualPin) Armed() bool { return p.line.enabled() }

// Level returns the current logic level.
func (p *VirtualPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Press pulls the line low. It reports whether an interrupt was delivered.
func (p *VirtualPin) Press() bool { return p.drive(false) }

// Release lets the line return high. It reports whether an interrupt was delivered.
func (p *VirtualPin) Release() bool { return p.drive(true) }

// Click is a full press and release.
func (p *VirtualPin) Click() bool {
	fired := p.Press()
	if p.Release() {
		fired = true
	}
	return fired
}

// FailEnable makes the next n EnableInterrupt calls fail with err.
func (p *VirtualPin) FailEnable(n int, err error) {
	if err == nil {
		err = ErrNotImplemented
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failEnable = n
	p.enableErr = err
}

func (p *VirtualPin) drive(level bool) bool {
	p.mu.Lock()
	prev := p.level
	p.level = level
	edge := p.edge
	p.mu.Unlock()

	if prev == level || !edgeMatches(edge, !level) {
		return false
	}
	return p.line.fire()
}
