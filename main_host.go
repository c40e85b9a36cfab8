//go:build !tinygo && !pi

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"tally/app"
	"tally/hal"
)

func main() {
	var (
		headless hal.HeadlessConfig
		win      hal.WindowConfig
		logFile  string
	)
	cfg := app.DefaultConfig()
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.Uint64Var(&cfg.Iterations, "ticks", 0, "Stop after N loop iterations (0 = run forever).")
	flag.DurationVar(&cfg.Interval, "interval", app.DefaultInterval, "Delay between loop iterations.")
	flag.DurationVar(&headless.PressA, "press-a", 0, "Headless: click button A at this period (0 = never).")
	flag.DurationVar(&headless.PressB, "press-b", 0, "Headless: click button B at this period (0 = never).")
	flag.StringVar(&headless.Snapshot, "snapshot", "", "Headless: write a PNG of the display on exit.")
	flag.IntVar(&win.Scale, "scale", 3, "Window scale factor.")
	flag.StringVar(&logFile, "log-file", "", "Also append logs to this file (size-rotated).")
	flag.Parse()

	headless.Host.LogFile = logFile
	win.Host.LogFile = logFile

	run := func(ctx context.Context, h hal.HAL) error {
		s, err := app.New(h, cfg)
		if err != nil {
			app.ShowFatal(h, cfg, err)
			return err
		}
		err = s.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			app.ShowFatal(h, cfg, err)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if headless.Enabled {
		err = hal.RunHeadless(ctx, run, headless)
	} else {
		err = hal.RunWindow(ctx, run, win)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
