package sensor

import (
	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/hw"
)

const (
	muscleVref      = 3.3
	muscleFullScale = 65535.0

	satHighADC  = 64000
	satLowADC   = 200
	satHighVolt = 3.2

	muscleBufLen       = 25
	flatlineMinSamples = 8
	minPeakToPeak      = 300
)

// Classification reasons reported with every muscle reading.
const (
	ReasonOK            = "ok"
	ReasonSaturatedHigh = "saturated_high"
	ReasonSaturatedLow  = "saturated_low"
	ReasonFlatline      = "flatline"
)

// Muscle reads the EMG envelope and classifies each sample as valid,
// saturated or flatlined. Invalid samples report value 0; the measured
// voltage and the classification reason are always reported.
type Muscle struct {
	sig hw.ADCPin

	// ring of recent in-range values, used only for flatline detection
	buf  [muscleBufLen]int
	head int
	size int
}

func NewMuscle(sig hw.ADCPin) *Muscle {
	return &Muscle{sig: sig}
}

func (s *Muscle) Read() (MuscleReading, error) {
	raw, err := s.sig.ReadU16()
	if err != nil {
		return MuscleReading{}, errors.New().Wrap(ErrADCRead, err)
	}

	value := int(raw)
	volts := adcToVolts(value)

	ok, reason := s.assess(value, volts)
	reported := value
	if !ok {
		reported = 0
	}

	return MuscleReading{
		Value:   reported,
		OK:      ok,
		Voltage: volts,
		Reason:  reason,
	}, nil
}

func adcToVolts(value int) float64 {
	return float64(value) / muscleFullScale * muscleVref
}

// assess applies the checks in fixed order: saturation high (raw count or
// voltage), saturation low, then flatline over the recent-value ring once
// it holds enough samples. Only in-range values enter the ring.
func (s *Muscle) assess(value int, volts float64) (bool, string) {
	if value >= satHighADC || volts >= satHighVolt {
		return false, ReasonSaturatedHigh
	}
	if value <= satLowADC {
		return false, ReasonSaturatedLow
	}

	s.buf[s.head] = value
	s.head = (s.head + 1) % muscleBufLen
	if s.size < muscleBufLen {
		s.size++
	}

	if s.size >= flatlineMinSamples {
		lo, hi := s.buf[0], s.buf[0]
		for i := 1; i < s.size; i++ {
			if s.buf[i] < lo {
				lo = s.buf[i]
			}
			if s.buf[i] > hi {
				hi = s.buf[i]
			}
		}
		if hi-lo < minPeakToPeak {
			return false, ReasonFlatline
		}
	}

	return true, ReasonOK
}
