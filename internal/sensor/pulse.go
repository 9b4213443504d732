package sensor

import (
	"codeberg.org/witka/biosensord/internal/hrm"
	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/logger"
)

const (
	// Front-end sampling configuration: 400 Hz decimated by on-chip
	// averaging of 8 gives a 50 Hz acquisition rate.
	pulseSampleRate  = 400
	pulseFIFOAverage = 8

	hrCalcIntervalMS = 2000

	// Reported oxygen saturation is a placeholder when a pulse signal is
	// present. A ratio-of-ratios computation is deliberately absent.
	spo2Placeholder = 98
)

// Pulse drains infrared samples from the optical front end on every read
// and feeds them to the heart-rate monitor. The rate estimate itself is
// recomputed on its own two-second cadence, decoupled from the read rate.
type Pulse struct {
	source  PulseSource
	clock   hw.Clock
	monitor *hrm.Monitor

	lastCalc hw.Ticks
	lastIR   int
}

func NewPulse(source PulseSource, clock hw.Clock) *Pulse {
	return &Pulse{
		source:   source,
		clock:    clock,
		monitor:  hrm.New(pulseSampleRate/pulseFIFOAverage, hrm.DefaultSmoothingWindow),
		lastCalc: clock.Now(),
	}
}

func (s *Pulse) Read() (PulseReading, error) {
	samples, err := s.source.Samples()
	if err != nil {
		// The front end recovers by itself on the next drain; degrade
		// instead of failing the cycle.
		logger.Debug().Err(err).Msg("Pulse source read failed")
	}

	now := s.clock.Now()
	for _, ir := range samples {
		s.lastIR = ir
		s.monitor.Add(float64(ir), now)
	}

	if hw.TicksDiff(now, s.lastCalc) >= hrCalcIntervalMS {
		bpm, updated := s.monitor.Recompute()
		if updated {
			logger.Debug().Int("bpm", bpm).Int("buffered", s.monitor.Len()).Msg("Heart rate updated")
		}
		s.lastCalc = now
	}

	spo2 := 0
	if s.monitor.BPM() > 0 && s.lastIR != 0 {
		spo2 = spo2Placeholder
	}

	return PulseReading{
		BPM:  s.monitor.BPM(),
		SpO2: spo2,
		IR:   s.lastIR,
	}, nil
}

// NullPulseSource yields no samples. It stands in when the optical front
// end fails setup so the channel degrades instead of crashing the process.
type NullPulseSource struct{}

func (NullPulseSource) Samples() ([]int, error) {
	return nil, nil
}
