package hal

import (
	"errors"
	"testing"
)

func TestVirtualPinDeliversOneEdgePerEnable(t *testing.T) {
	pin := NewVirtualPin("BTN")
	if err := pin.Configure(PullUp, EdgeFalling); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	var fired int
	if err := pin.SetInterrupt(func() { fired++ }); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}

	if pin.Click() {
		t.Fatal("expected no delivery before EnableInterrupt")
	}

	if err := pin.EnableInterrupt(); err != nil {
		t.Fatalf("EnableInterrupt: %v", err)
	}
	if !pin.Click() {
		t.Fatal("expected delivery after EnableInterrupt")
	}
	if pin.Armed() {
		t.Fatal("expected line masked after firing")
	}
	if pin.Click() {
		t.Fatal("expected masked line to swallow edge")
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
}

func TestVirtualPinIgnoresRisingEdge(t *testing.T) {
	pin := NewVirtualPin("BTN")
	if err := pin.Configure(PullUp, EdgeFalling); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if err := pin.SetInterrupt(func() {}); err != nil {
		t.Fatalf("SetInterrupt: %v", err)
	}
	if err := pin.EnableInterrupt(); err != nil {
		t.Fatalf("EnableInterrupt: %v", err)
	}

	if !pin.Press() {
		t.Fatal("expected falling edge delivery")
	}
	if err := pin.EnableInterrupt(); err != nil {
		t.Fatalf("EnableInterrupt: %v", err)
	}
	if pin.Release() {
		t.Fatal("rising edge delivered on falling-edge line")
	}
	if !pin.Armed() {
		t.Fatal("rising edge consumed the arm")
	}
	if pin.Level() != true {
		t.Fatal("expected high level after release")
	}
}

func TestVirtualPinRequiresConfigure(t *testing.T) {
	pin := NewVirtualPin("BTN")
	if err := pin.SetInterrupt(func() {}); err == nil {
		t.Fatal("expected error for unconfigured pin")
	}
	if err := pin.Configure(PullUp, Edge(42)); err == nil {
		t.Fatal("expected error for invalid edge")
	}
}

func TestVirtualPinFailEnable(t *testing.T) {
	errBus := errors.New("bus")
	pin := NewVirtualPin("BTN")
	if err := pin.Configure(PullUp, EdgeFalling); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	pin.FailEnable(1, errBus)

	if err := pin.EnableInterrupt(); !errors.Is(err, errBus) {
		t.Fatalf("EnableInterrupt err = %v, want %v", err, errBus)
	}
	if pin.Armed() {
		t.Fatal("failed enable armed the line")
	}
	if err := pin.EnableInterrupt(); err != nil {
		t.Fatalf("EnableInterrupt: %v", err)
	}
	if !pin.Armed() {
		t.Fatal("expected armed line")
	}
}
