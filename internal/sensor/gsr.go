package sensor

import (
	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/hw"
)

// GSR reads the galvanic skin response signal.
type GSR struct {
	sig hw.ADCPin
}

func NewGSR(sig hw.ADCPin) *GSR {
	return &GSR{sig: sig}
}

func (s *GSR) Read() (GSRReading, error) {
	value, err := s.sig.ReadU16()
	if err != nil {
		return GSRReading{}, errors.New().Wrap(ErrADCRead, err)
	}

	return GSRReading{Value: int(value)}, nil
}
