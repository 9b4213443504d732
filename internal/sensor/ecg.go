package sensor

import (
	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/hw"
)

// ECG reads the analog electrocardiogram output and the two lead-off
// detection lines of the front-end amplifier.
type ECG struct {
	out     hw.ADCPin
	loPlus  hw.DigitalPin
	loMinus hw.DigitalPin
}

func NewECG(out hw.ADCPin, loPlus, loMinus hw.DigitalPin) *ECG {
	return &ECG{out: out, loPlus: loPlus, loMinus: loMinus}
}

func (s *ECG) Read() (ECGReading, error) {
	errFactory := errors.New()

	value, err := s.out.ReadU16()
	if err != nil {
		return ECGReading{}, errFactory.Wrap(ErrADCRead, err)
	}

	plus, err := s.loPlus.Read()
	if err != nil {
		return ECGReading{}, errFactory.Wrap(ErrPinRead, err)
	}

	minus, err := s.loMinus.Read()
	if err != nil {
		return ECGReading{}, errFactory.Wrap(ErrPinRead, err)
	}

	return ECGReading{
		Value:        int(value),
		LeadOffPlus:  plus,
		LeadOffMinus: minus,
		LeadOff:      plus || minus,
	}, nil
}
