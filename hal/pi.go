//go:build !tinygo && linux && pi

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// PiConfig names the Raspberry Pi wiring. Zero fields take the defaults below.
type PiConfig struct {
	SPIPort  string // "" = first port (SPI0.0)
	DC       string
	RST      string
	ButtonA  int // BCM numbers
	ButtonB  int
	LogFile  string
	SPISpeed physic.Frequency
}

func (c PiConfig) withDefaults() PiConfig {
	if c.DC == "" {
		c.DC = "GPIO25"
	}
	if c.RST == "" {
		c.RST = "GPIO27"
	}
	if c.ButtonA == 0 {
		c.ButtonA = 5
	}
	if c.ButtonB == 0 {
		c.ButtonB = 6
	}
	if c.SPISpeed == 0 {
		c.SPISpeed = 40 * physic.MegaHertz
	}
	return c
}

// Pi is the Raspberry Pi HAL: an ST7735 on spidev plus two GPIO buttons.
type Pi struct {
	logger  *hostLogger
	port    spi.PortCloser
	disp    Display
	buttons [2]InputPin
	clock   *WallClock
}

// NewPi claims the SPI port and GPIO lines. Call it once.
func NewPi(cfg PiConfig) (*Pi, error) {
	cfg = cfg.withDefaults()
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("pi: host init: %w", err)
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("pi: spi %q: %w", cfg.SPIPort, err)
	}
	conn, err := port.Connect(cfg.SPISpeed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("pi: spi connect: %w", err)
	}

	dc := gpioreg.ByName(cfg.DC)
	rst := gpioreg.ByName(cfg.RST)
	if dc == nil || rst == nil {
		port.Close()
		return nil, fmt.Errorf("pi: dc %s / rst %s: %w", cfg.DC, cfg.RST, ErrUnsupported)
	}

	p := &Pi{
		logger: newHostLogger(cfg.LogFile),
		port:   port,
		disp:   NewDisplay(newPiST7735(conn, dc, rst)),
		clock:  NewWallClock(nil),
	}
	for i, bcm := range [...]int{ButtonA: cfg.ButtonA, ButtonB: cfg.ButtonB} {
		b, err := newPiButton(ButtonID(i).String(), bcm)
		if err != nil {
			port.Close()
			return nil, err
		}
		p.buttons[i] = b
	}
	return p, nil
}

func (p *Pi) Logger() Logger   { return p.logger }
func (p *Pi) Display() Display { return p.disp }
func (p *Pi) Clock() Clock     { return p.clock }
func (p *Pi) Delay() Delay     { return p.clock }

func (p *Pi) Button(id ButtonID) InputPin {
	if int(id) >= len(p.buttons) {
		return nil
	}
	return p.buttons[id]
}

// Close releases the SPI port and the log file.
func (p *Pi) Close() error {
	err := p.port.Close()
	if lerr := p.logger.Close(); err == nil {
		err = lerr
	}
	return err
}

func periphPull(p Pull) gpio.Pull {
	switch p {
	case PullUp:
		return gpio.PullUp
	case PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}
