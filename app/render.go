package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tally/hal"

	"tinygo.org/x/tinyfont"
)

// region is the fixed background rectangle owned by one text line.
type region struct {
	origin   hal.Point // top-left of the rectangle
	size     hal.Size
	baseline hal.Point
}

type layout struct {
	time    region
	counter region
}

// lineMetrics derives the cell height and baseline offset covering every
// printable ASCII glyph of font.
func lineMetrics(font tinyfont.Fonter) (height, ascent int16, err error) {
	if font == nil {
		return 0, 0, errors.New("render: nil font")
	}

	minY, maxY := 0, 0
	first := true
	for r := rune(0x20); r < 0x7f; r++ {
		info := font.GetGlyph(r).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if first {
			minY, maxY = top, bottom
			first = false
			continue
		}
		if top < minY {
			minY = top
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	if first {
		return 0, 0, errors.New("render: font has no glyphs")
	}

	h := maxY - minY
	if adv := int(font.GetYAdvance()); adv > h {
		h = adv
	}
	if h <= 0 || minY > 0 {
		return 0, 0, fmt.Errorf("render: invalid metrics: height=%d top=%d", h, minY)
	}
	return int16(h), int16(-minY), nil
}

func newLayout(size hal.Size, font tinyfont.Fonter, margin int16) (layout, error) {
	h, ascent, err := lineMetrics(font)
	if err != nil {
		return layout{}, err
	}
	if 2*h+3*margin > size.H {
		return layout{}, fmt.Errorf("render: %d px display too short for two %d px lines", size.H, h)
	}

	line := func(top int16) region {
		return region{
			origin:   hal.Point{X: 0, Y: top},
			size:     hal.Size{W: size.W, H: h},
			baseline: hal.Point{X: margin, Y: top + ascent},
		}
	}
	timeLine := line(margin)
	return layout{
		time:    timeLine,
		counter: line(timeLine.origin.Y + h + margin),
	}, nil
}

// formatUptime renders a clock reading as "Up hh:mm:ss.mmm".
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("Up %02d:%02d:%02d.%03d", h, m, s, ms%1000)
}

func formatCount(n uint32) string {
	return "Count: " + strconv.FormatUint(uint64(n), 10)
}
