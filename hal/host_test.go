//go:build !tinygo && !pi

package hal

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestWallClockMeasuresFromCreation(t *testing.T) {
	fake := clockwork.NewFakeClock()
	fake.Advance(time.Hour)
	c := NewWallClock(fake)

	if got := c.Now(); got != 0 {
		t.Fatalf("Now() = %v, want 0", got)
	}
	fake.Advance(1500 * time.Millisecond)
	if got := c.Now(); got != 1500*time.Millisecond {
		t.Fatalf("Now() = %v, want 1.5s", got)
	}
}

func TestHostButtons(t *testing.T) {
	h := NewHost(HostConfig{})
	if h.Button(ButtonA) == nil || h.Button(ButtonB) == nil {
		t.Fatal("expected two buttons")
	}
	if h.Button(ButtonID(7)) != nil {
		t.Fatal("expected nil for unknown button")
	}
	if w, hh := h.Framebuffer().Size(); w != 128 || hh != 128 {
		t.Fatalf("Size() = %dx%d, want 128x128", w, hh)
	}
}

func TestRunHeadlessScriptedPress(t *testing.T) {
	fake := clockwork.NewFakeClock()
	cfg := HeadlessConfig{
		Enabled: true,
		PressA:  50 * time.Millisecond,
		Host:    HostConfig{Clock: fake},
	}

	err := RunHeadless(context.Background(), func(ctx context.Context, h HAL) error {
		pin := h.Button(ButtonA)
		fired := make(chan struct{}, 1)
		if err := pin.Configure(PullUp, EdgeFalling); err != nil {
			return err
		}
		if err := pin.SetInterrupt(func() { fired <- struct{}{} }); err != nil {
			return err
		}
		if err := pin.EnableInterrupt(); err != nil {
			return err
		}

		fake.BlockUntil(1)
		fake.Advance(50 * time.Millisecond)
		select {
		case <-fired:
		case <-time.After(5 * time.Second):
			t.Error("scripted press not delivered")
		}
		return nil
	}, cfg)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
}

func TestRunHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	cfg := HeadlessConfig{Enabled: true, Snapshot: path}

	err := RunHeadless(context.Background(), func(ctx context.Context, h HAL) error {
		return h.Display().FillRectangle(Point{X: 0, Y: 0}, Size{W: 4, H: 4}, testFG)
	}, cfg)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if r, g, b, _ := img.At(1, 1).RGBA(); r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Fatalf("pixel (1,1) = %d,%d,%d, want white", r>>8, g>>8, b>>8)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("snapshot bounds = %v", b)
	}
}
