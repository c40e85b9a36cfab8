//go:build tinygo && baremetal

package hal

import (
	"errors"
	"fmt"
	"image/color"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7735"
)

// Board wiring (Raspberry Pi Pico + 1.44" ST7735 128x128 green tab).
const (
	pinSCK = machine.GP18
	pinSDO = machine.GP19
	pinCS  = machine.GP17
	pinDC  = machine.GP16
	pinRST = machine.GP20

	pinButtonA = machine.GP14
	pinButtonB = machine.GP15

	spiFrequency = 40_000_000

	panelWidth        = 128
	panelHeight       = 128
	panelColumnOffset = 2
	panelRowOffset    = 1
)

type tinyGoHAL struct {
	logger  *uartLogger
	disp    Display
	buttons [2]*machinePin
	clock   *tinyGoClock
}

// New returns the Pico board HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. The display bus is only
// brought up by Display().Init() so that failures reach the caller.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		disp:   NewDisplay(&st7735Panel{spi: machine.SPI0}),
		buttons: [2]*machinePin{
			newMachinePin("GP14", pinButtonA),
			newMachinePin("GP15", pinButtonB),
		},
		clock: newTinyGoClock(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return h.disp }
func (h *tinyGoHAL) Clock() Clock     { return h.clock }
func (h *tinyGoHAL) Delay() Delay     { return h.clock }

func (h *tinyGoHAL) Button(id ButtonID) InputPin {
	if int(id) >= len(h.buttons) {
		return nil
	}
	return h.buttons[id]
}

var errPanelNotReady = errors.New("st7735: not initialised")

// st7735Panel defers bus and controller setup to Init.
type st7735Panel struct {
	spi   *machine.SPI
	dev   st7735.Device
	ready bool
}

func (p *st7735Panel) Init() error {
	err := p.spi.Configure(machine.SPIConfig{
		Frequency: spiFrequency,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       machine.NoPin,
	})
	if err != nil {
		return fmt.Errorf("st7735: spi: %w", err)
	}

	p.dev = st7735.New(p.spi, pinRST, pinDC, pinCS, machine.NoPin)
	p.dev.Configure(st7735.Config{
		Width:        panelWidth,
		Height:       panelHeight,
		Model:        st7735.GREENTAB,
		Rotation:     drivers.Rotation0,
		ColumnOffset: panelColumnOffset,
		RowOffset:    panelRowOffset,
	})
	p.ready = true
	return nil
}

func (p *st7735Panel) Size() (x, y int16) { return panelWidth, panelHeight }

func (p *st7735Panel) SetPixel(x, y int16, c color.RGBA) {
	if p.ready {
		p.dev.SetPixel(x, y, c)
	}
}

func (p *st7735Panel) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !p.ready {
		return errPanelNotReady
	}
	return p.dev.FillRectangle(x, y, width, height, c)
}

func (p *st7735Panel) Display() error {
	if !p.ready {
		return errPanelNotReady
	}
	return p.dev.Display()
}
