//go:build !tinygo && !pi

package hal

import "github.com/jonboulle/clockwork"

// HostConfig selects host simulation options.
type HostConfig struct {
	Width, Height int
	// LogFile, when set, mirrors log lines into a size-rotated file.
	LogFile string
	// Clock overrides the real clock (tests).
	Clock clockwork.Clock
}

// Host is the desktop simulation of the board.
type Host struct {
	logger  *hostLogger
	fb      *Framebuffer
	disp    Display
	buttons [2]*VirtualPin
	clock   *WallClock
}

// NewHost returns a host HAL: a 128x128 framebuffer, two virtual buttons
// and the real clock unless cfg says otherwise.
func NewHost(cfg HostConfig) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 128
	}
	if cfg.Height <= 0 {
		cfg.Height = 128
	}

	fb := NewFramebuffer(cfg.Width, cfg.Height)
	return &Host{
		logger:  newHostLogger(cfg.LogFile),
		fb:      fb,
		disp:    NewDisplay(fb),
		buttons: [2]*VirtualPin{NewVirtualPin("A"), NewVirtualPin("B")},
		clock:   NewWallClock(cfg.Clock),
	}
}

func (h *Host) Logger() Logger   { return h.logger }
func (h *Host) Display() Display { return h.disp }
func (h *Host) Clock() Clock     { return h.clock }
func (h *Host) Delay() Delay     { return h.clock }

func (h *Host) Button(id ButtonID) InputPin {
	if p := h.VirtualButton(id); p != nil {
		return p
	}
	return nil
}

// VirtualButton exposes the simulated pin so a front end can press it.
func (h *Host) VirtualButton(id ButtonID) *VirtualPin {
	if int(id) >= len(h.buttons) {
		return nil
	}
	return h.buttons[id]
}

// Framebuffer returns the simulated panel memory.
func (h *Host) Framebuffer() *Framebuffer { return h.fb }

// Close flushes and closes the log file, if any.
func (h *Host) Close() error { return h.logger.Close() }
