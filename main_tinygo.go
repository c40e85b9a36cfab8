//go:build tinygo && baremetal

package main

import (
	"context"
	"time"

	"tally/app"
	"tally/hal"
)

// fatalHold keeps the fatal screen visible before the board resets.
const fatalHold = 3 * time.Second

func main() {
	h := hal.New()
	cfg := app.DefaultConfig()

	s, err := app.New(h, cfg)
	if err != nil {
		// Half-initialised hardware is never run; wait for power cycle.
		app.ShowFatal(h, cfg, err)
		select {}
	}

	err = s.Run(context.Background())
	app.ShowFatal(h, cfg, err)
	time.Sleep(fatalHold)
	hal.Reset()
}
