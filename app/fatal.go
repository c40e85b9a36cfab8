package app

import (
	"strings"
	"unicode/utf8"

	"tally/hal"

	"tinygo.org/x/tinyfont"
)

// ShowFatal logs err and makes a best-effort attempt to paint it on the
// display before the caller restarts. Draw failures here are only logged:
// the bus may be the thing that broke.
func ShowFatal(h hal.HAL, cfg Config, err error) {
	if h == nil || err == nil {
		return
	}
	cfg = cfg.withDefaults()
	log := h.Logger()
	logf(log, "tally: fatal: %v", err)

	disp := h.Display()
	if disp == nil {
		return
	}

	lines := wrapText(cfg.Font, "fatal: "+err.Error(), disp.Size().W-2*cfg.Margin)
	height, ascent, merr := lineMetrics(cfg.Font)
	if merr != nil {
		logf(log, "tally: fatal screen: %v", merr)
		return
	}

	if derr := disp.Clear(ColorRed); derr != nil {
		logf(log, "tally: fatal screen: %v", derr)
		return
	}
	style := hal.TextStyle{Font: cfg.Font, Color: ColorWhite}
	y := cfg.Margin + ascent
	for _, line := range lines {
		if y-ascent+height > disp.Size().H {
			break
		}
		if derr := disp.DrawText(hal.Point{X: cfg.Margin, Y: y}, line, style); derr != nil {
			logf(log, "tally: fatal screen: %v", derr)
			return
		}
		y += height
	}
	if derr := disp.Flush(); derr != nil {
		logf(log, "tally: fatal screen: %v", derr)
	}
}

// wrapText splits s into lines no wider than width pixels.
func wrapText(font tinyfont.Fonter, s string, width int16) []string {
	_, cell := tinyfont.LineWidth(font, "0")
	cols := int16(1)
	if cell > 0 && width > 0 {
		cols = width / int16(cell)
	}
	if cols <= 0 {
		cols = 1
	}

	var lines []string
	for _, para := range strings.Split(s, "\n") {
		for len(para) > 0 {
			chunk, rest := takeRunes(para, cols)
			lines = append(lines, chunk)
			para = strings.TrimLeft(rest, " ")
		}
	}
	return lines
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
