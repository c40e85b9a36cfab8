// Package latch captures button edges in interrupt context and hands them to
// a polling loop.
//
// A Latch is a one-bit cell: the interrupt callback sets it, the loop swaps it
// back to false. Several edges between two polls collapse into one
// observation. There is exactly one producer (the interrupt line) and one
// consumer (the loop), so a single atomic word is all the synchronisation
// needed and no lock is ever taken in interrupt context.
package latch

import (
	"fmt"
	"sync/atomic"

	"tally/hal"
)

// Latch owns one input pin for the lifetime of the process.
//
// The registered callback is a method value bound to the heap-allocated
// Latch, so the pending flag stays reachable for as long as the interrupt
// controller holds the callback.
type Latch struct {
	pin hal.InputPin
	log hal.Logger

	pending atomic.Bool
	onEdge  func()

	// Touched by the polling loop only.
	rearmFailed bool
	rearmErrors uint32
}

// New returns an unarmed latch for pin. log may be nil.
func New(pin hal.InputPin, log hal.Logger) *Latch {
	l := &Latch{pin: pin, log: log}
	l.onEdge = l.edge
	return l
}

// Name returns the pin name.
func (l *Latch) Name() string {
	if l.pin == nil {
		return "?"
	}
	return l.pin.Name()
}

// Arm configures the pin as a pulled-up falling-edge input, installs the
// callback and enables interrupt delivery.
func (l *Latch) Arm() error {
	if l.pin == nil {
		return fmt.Errorf("latch: no pin")
	}
	if err := l.pin.Configure(hal.PullUp, hal.EdgeFalling); err != nil {
		return fmt.Errorf("latch %s: configure: %w", l.Name(), err)
	}
	if err := l.pin.SetInterrupt(l.onEdge); err != nil {
		return fmt.Errorf("latch %s: subscribe: %w", l.Name(), err)
	}
	if err := l.pin.EnableInterrupt(); err != nil {
		return fmt.Errorf("latch %s: enable: %w", l.Name(), err)
	}
	return nil
}

// edge runs in interrupt context. The line is already masked by the
// platform; re-enabling is left to PollAndClear.
func (l *Latch) edge() {
	l.pending.Store(true)
}

// PollAndClear reports whether at least one edge fired since the previous
// call, clearing the latch and re-enabling the interrupt when it did.
//
// A failed re-enable is logged and retried on later polls; the button is deaf
// until one succeeds. Must only be called from the polling loop.
func (l *Latch) PollAndClear() bool {
	if !l.pending.Swap(false) {
		if l.rearmFailed {
			l.rearm()
		}
		return false
	}
	l.rearm()
	return true
}

// RearmFailures returns how many re-enable attempts have failed so far.
func (l *Latch) RearmFailures() uint32 { return l.rearmErrors }

func (l *Latch) rearm() {
	err := l.pin.EnableInterrupt()
	if err != nil {
		l.rearmErrors++
		l.rearmFailed = true
		l.logf("latch %s: re-arm: %v", l.Name(), err)
		return
	}
	if l.rearmFailed {
		l.logf("latch %s: re-armed after %d failed attempts", l.Name(), l.rearmErrors)
		l.rearmFailed = false
	}
}

func (l *Latch) logf(format string, args ...any) {
	if l.log == nil {
		return
	}
	l.log.WriteLineString(fmt.Sprintf(format, args...))
}
