//go:build !tinygo && !pi && cgo

package hal

import (
	"context"
	"errors"
	"image"

	"tally/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale int
	Host  HostConfig
}

// RunWindow shows the simulated panel in a desktop window and runs app in the
// background. Keys A and B are the two buttons. It blocks until the window
// closes or app returns.
func RunWindow(ctx context.Context, app func(context.Context, HAL) error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 3
	}
	h := NewHost(cfg.Host)
	defer h.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- app(ctx, h) }()

	g := &hostGame{h: h, done: done}
	ebiten.SetWindowTitle("tally (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if g.appErr != nil || g.finished {
		return g.appErr
	}

	cancel()
	if appErr := <-done; err == nil && !errors.Is(appErr, context.Canceled) {
		err = appErr
	}
	return err
}

var buttonKeys = [...]ebiten.Key{ButtonA: ebiten.KeyA, ButtonB: ebiten.KeyB}

type hostGame struct {
	h     *Host
	img   *image.RGBA
	fbImg *ebiten.Image

	done     <-chan error
	appErr   error
	finished bool
}

func (g *hostGame) Update() error {
	select {
	case err := <-g.done:
		g.appErr = err
		g.finished = true
		return ebiten.Termination
	default:
	}

	for id, key := range buttonKeys {
		pin := g.h.VirtualButton(ButtonID(id))
		if inpututil.IsKeyJustPressed(key) {
			pin.Press()
		}
		if inpututil.IsKeyJustReleased(key) {
			pin.Release()
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.snapshotInto(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
