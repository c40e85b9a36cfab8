//go:build !tinygo && !pi

package hal

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"sync"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// PressA and PressB click the buttons periodically (0 = never).
	PressA time.Duration
	PressB time.Duration
	// Snapshot, when set, receives a PNG of the panel once the app returns.
	Snapshot string
	Host     HostConfig
}

// RunHeadless runs app against a simulated board without opening a window.
//
// Scripted presses come from their own goroutines, standing in for the
// interrupt context of real hardware.
func RunHeadless(ctx context.Context, app func(context.Context, HAL) error, cfg HeadlessConfig) error {
	h := NewHost(cfg.Host)
	defer h.Close()

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	for id, period := range [...]time.Duration{ButtonA: cfg.PressA, ButtonB: cfg.PressB} {
		if period <= 0 {
			continue
		}
		period := period // per-iteration copy (go.mod targets go 1.21 loop semantics)
		pin := h.VirtualButton(ButtonID(id))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-h.clock.After(period):
					pin.Click()
				}
			}
		}()
	}

	err := app(ctx, h)
	cancel()
	wg.Wait()

	if cfg.Snapshot != "" {
		if serr := writeSnapshot(h.fb, cfg.Snapshot); serr != nil && err == nil {
			err = serr
		}
	}
	return err
}

func writeSnapshot(fb *Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, fb.Image()); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
