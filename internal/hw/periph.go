package hw

import (
	"time"

	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// PeriphBus implements Bus and RecoveryPort on top of periph.io host
// drivers. The SCL/SDA pins are only used for recovery; normal transfers
// go through the kernel i2c device.
type PeriphBus struct {
	name string
	bus  i2c.BusCloser
	scl  gpio.PinIO
	sda  gpio.PinIO
}

// NewPeriphBus opens the named kernel bus (e.g. "1" for /dev/i2c-1) and
// resolves the recovery pins. Empty pin names disable manual recovery;
// Reinit then only reopens the bus.
func NewPeriphBus(busName, sclPin, sdaPin string) (*PeriphBus, error) {
	errFactory := errors.New()

	if _, err := host.Init(); err != nil {
		return nil, errFactory.Wrap(errors.ErrInitFailed, err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errFactory.Wrap(errors.ErrPortOpen, err)
	}

	p := &PeriphBus{name: busName, bus: bus}
	if sclPin != "" {
		p.scl = gpioreg.ByName(sclPin)
	}
	if sdaPin != "" {
		p.sda = gpioreg.ByName(sdaPin)
	}
	if p.scl == nil || p.sda == nil {
		logger.Warn().
			Str("scl", sclPin).
			Str("sda", sdaPin).
			Msg("Recovery pins not resolved, bus recovery limited to reinit")
	}

	return p, nil
}

func (p *PeriphBus) WriteTo(addr uint16, w []byte) error {
	return p.bus.Tx(addr, w, nil)
}

func (p *PeriphBus) ReadFrom(addr uint16, r []byte) error {
	return p.bus.Tx(addr, nil, r)
}

func (p *PeriphBus) Probe(addr uint16) bool {
	var b [1]byte
	return p.bus.Tx(addr, nil, b[:]) == nil
}

func (p *PeriphBus) SetSCL(high bool) {
	if p.scl != nil {
		if err := p.scl.Out(gpio.Level(high)); err != nil {
			logger.Debug().Err(err).Msg("Failed to drive SCL")
		}
	}
}

func (p *PeriphBus) SetSDA(high bool) {
	if p.sda != nil {
		if err := p.sda.Out(gpio.Level(high)); err != nil {
			logger.Debug().Err(err).Msg("Failed to drive SDA")
		}
	}
}

func (p *PeriphBus) DelayMicros(us int) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

func (p *PeriphBus) Reinit() error {
	errFactory := errors.New()

	if err := p.bus.Close(); err != nil {
		logger.Debug().Err(err).Msg("Failed to close bus before reinit")
	}

	bus, err := i2creg.Open(p.name)
	if err != nil {
		return errFactory.Wrap(errors.ErrPortOpen, err)
	}
	p.bus = bus

	return nil
}

func (p *PeriphBus) Close() error {
	return p.bus.Close()
}

// PeriphPin adapts a named GPIO to DigitalPin.
type PeriphPin struct {
	pin gpio.PinIO
}

func NewPeriphPin(name string) (*PeriphPin, error) {
	errFactory := errors.New()

	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errFactory.WithData(errors.ErrDeviceAbsent, name)
	}
	if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, errFactory.Wrap(errors.ErrInitFailed, err)
	}

	return &PeriphPin{pin: pin}, nil
}

func (p *PeriphPin) Read() (bool, error) {
	return bool(p.pin.Read()), nil
}
