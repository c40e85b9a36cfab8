//go:build !tinygo && !pi && !cgo

package hal

import (
	"context"
	"errors"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale int
	Host  HostConfig
}

func RunWindow(_ context.Context, _ func(context.Context, HAL) error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
