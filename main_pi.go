//go:build !tinygo && linux && pi

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tally/app"
	"tally/hal"
)

// Exits non-zero on any failure so the service manager restarts it.
func main() {
	var pc hal.PiConfig
	cfg := app.DefaultConfig()
	flag.StringVar(&pc.SPIPort, "spi", "", "SPI port name (default: first port).")
	flag.StringVar(&pc.DC, "dc", "GPIO25", "Display data/command pin.")
	flag.StringVar(&pc.RST, "rst", "GPIO27", "Display reset pin.")
	flag.IntVar(&pc.ButtonA, "button-a", 5, "BCM number of the increment button.")
	flag.IntVar(&pc.ButtonB, "button-b", 6, "BCM number of the reset button.")
	flag.StringVar(&pc.LogFile, "log-file", "", "Also append logs to this file (size-rotated).")
	flag.DurationVar(&cfg.Interval, "interval", app.DefaultInterval, "Delay between loop iterations.")
	flag.Parse()

	h, err := hal.NewPi(pc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer h.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := app.New(h, cfg)
	if err != nil {
		app.ShowFatal(h, cfg, err)
		h.Close()
		os.Exit(1)
	}
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		app.ShowFatal(h, cfg, err)
		h.Close()
		os.Exit(1)
	}
}
