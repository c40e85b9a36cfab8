package latch

import (
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	"tally/hal"
)

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *lineLog) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func newArmed(t *testing.T) (*Latch, *hal.VirtualPin, *lineLog) {
	t.Helper()
	pin := hal.NewVirtualPin("A")
	log := &lineLog{}
	l := New(pin, log)
	if err := l.Arm(); err != nil {
		t.Fatalf("Arm: %v", err)
	}
	return l, pin, log
}

func TestArmConfiguresFallingEdge(t *testing.T) {
	_, pin, _ := newArmed(t)
	if !pin.Armed() {
		t.Fatal("expected interrupt enabled after Arm")
	}
	if !pin.Level() {
		t.Fatal("expected pulled-up idle level")
	}
}

func TestArmPropagatesEnableError(t *testing.T) {
	pin := hal.NewVirtualPin("A")
	pin.FailEnable(1, errors.New("irq controller busy"))
	if err := New(pin, nil).Arm(); err == nil {
		t.Fatal("expected Arm error")
	}
	if err := New(nil, nil).Arm(); err == nil {
		t.Fatal("expected error for missing pin")
	}
}

func TestPollAndClearIdempotent(t *testing.T) {
	l, pin, _ := newArmed(t)

	if l.PollAndClear() {
		t.Fatal("PollAndClear() = true before any edge")
	}
	pin.Click()
	if !l.PollAndClear() {
		t.Fatal("PollAndClear() = false after edge")
	}
	if l.PollAndClear() {
		t.Fatal("PollAndClear() = true on second call")
	}
}

func TestEdgesCoalesceBetweenPolls(t *testing.T) {
	l, pin, _ := newArmed(t)

	for i := 0; i < 5; i++ {
		pin.Click()
	}
	if !l.PollAndClear() {
		t.Fatal("PollAndClear() = false after burst")
	}
	for i := 0; i < 3; i++ {
		if l.PollAndClear() {
			t.Fatalf("PollAndClear() = true on call %d after burst", i+2)
		}
	}

	pin.Click()
	if !l.PollAndClear() {
		t.Fatal("expected latch re-armed after poll")
	}
}

func TestRearmFailureIsLoggedAndRetried(t *testing.T) {
	l, pin, log := newArmed(t)
	pin.FailEnable(2, errors.New("nack"))

	pin.Click()
	if !l.PollAndClear() {
		t.Fatal("edge lost on failed re-arm")
	}
	if pin.Armed() {
		t.Fatal("line armed despite failure")
	}
	if pin.Click() || l.PollAndClear() {
		t.Fatal("masked button delivered an edge")
	}
	if l.RearmFailures() != 2 {
		t.Fatalf("RearmFailures() = %d, want 2", l.RearmFailures())
	}

	// Third attempt succeeds from an idle poll.
	if l.PollAndClear() {
		t.Fatal("PollAndClear() = true without edge")
	}
	if !pin.Armed() {
		t.Fatal("expected retry to re-arm line")
	}
	pin.Click()
	if !l.PollAndClear() {
		t.Fatal("expected recovered button")
	}

	log.mu.Lock()
	defer log.mu.Unlock()
	if len(log.lines) != 3 {
		t.Fatalf("log lines = %q, want 2 failures + recovery", log.lines)
	}
	if !strings.Contains(log.lines[0], "re-arm") || !strings.Contains(log.lines[2], "re-armed") {
		t.Fatalf("unexpected log lines %q", log.lines)
	}
}

func TestConcurrentEdgesSingleObservation(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(4)
	defer runtime.GOMAXPROCS(oldProcs)

	l := New(hal.NewVirtualPin("A"), nil)
	const (
		producers = 8
		perProd   = 1000
	)

	var wg sync.WaitGroup
	start := make(chan struct{})
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < perProd; j++ {
				l.edge()
			}
		}()
	}
	close(start)
	wg.Wait()

	if !l.pending.Swap(false) {
		t.Fatal("expected pending after concurrent edges")
	}
	if l.pending.Load() {
		t.Fatal("expected single observation")
	}
}
