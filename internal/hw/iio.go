package hw

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"codeberg.org/witka/biosensord/internal/errors"
)

// IIOPin reads a raw sample from a Linux industrial-IO ADC channel and
// rescales it to the 16-bit range the conditioners expect.
type IIOPin struct {
	path string
	bits uint
}

func NewIIOPin(device, channel int, bits uint) *IIOPin {
	return &IIOPin{
		path: fmt.Sprintf("/sys/bus/iio/devices/iio:device%d/in_voltage%d_raw", device, channel),
		bits: bits,
	}
}

func (p *IIOPin) ReadU16() (uint16, error) {
	errFactory := errors.New()

	b, err := os.ReadFile(p.path)
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrOperationFailed, err)
	}

	v, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, errFactory.Wrap(errors.ErrOperationFailed, err)
	}

	if p.bits < 16 {
		v <<= 16 - p.bits
	}
	if v > 0xFFFF {
		v = 0xFFFF
	}
	if v < 0 {
		v = 0
	}

	return uint16(v), nil
}
