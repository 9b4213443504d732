package sensor

import (
	"encoding/binary"
	"time"

	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/logger"
)

const (
	bodyTempAttempts       = 6
	bodyTempHoldMS         = 1500
	bodyTempPointerReg     = 0x00
	bodyTempPointerDelayUS = 60
	tempLSBPerDegree       = 256.0

	// Readings below −10°C whose +64 shift lands in [0,100] are in the
	// alternate register-range encoding.
	extendedFormatFloor  = -10.0
	extendedFormatOffset = 64.0

	recoverySettleUS = 50
	recoveryPulseUS  = 6
	recoveryPulses   = 9
)

// Candidate bus addresses probed once at construction.
var bodyTempAddrs = []uint16{0x48, 0x49, 0x4A, 0x4B, 0x4C, 0x4D, 0x4E, 0x4F}

// BodyTemp reads the clinical temperature sensor. Each read retries up to
// six times with linear backoff, runs a manual bus recovery on the third
// consecutive failure, and falls back to a held value when every attempt
// fails. Freshness is only reported for a read that succeeded this cycle.
type BodyTemp struct {
	bus   hw.Bus
	port  hw.RecoveryPort
	clock hw.Clock

	addr  uint16
	found bool

	lastGood   float64
	lastGoodAt hw.Ticks
	hasLast    bool

	lastNonzero float64
	hasNonzero  bool
}

// NewBodyTemp probes the candidate address range once. If no device
// answers the channel is permanently degraded and reports 0.0/stale.
func NewBodyTemp(bus hw.Bus, port hw.RecoveryPort, clock hw.Clock) *BodyTemp {
	s := &BodyTemp{bus: bus, port: port, clock: clock}

	for _, addr := range bodyTempAddrs {
		if bus.Probe(addr) {
			s.addr = addr
			s.found = true
			break
		}
	}
	if s.found {
		logger.Info().Uint16("addr", s.addr).Msg("Body temperature sensor detected")
	} else {
		logger.Warn().Msg("Body temperature sensor not found, channel degraded")
	}

	return s
}

func (s *BodyTemp) Read() (BodyTempReading, error) {
	if !s.found {
		return BodyTempReading{}, nil
	}

	for attempt := 0; attempt < bodyTempAttempts; attempt++ {
		value, err := s.readOnce()
		if err == nil {
			s.lastGood = value
			s.lastGoodAt = s.clock.Now()
			s.hasLast = true
			if value != 0 {
				s.lastNonzero = value
				s.hasNonzero = true
			}
			return BodyTempReading{Celsius: value, Fresh: true}, nil
		}

		logger.Debug().Err(err).Int("attempt", attempt).Msg("Body temperature read failed")
		s.clock.Sleep(time.Duration(5+5*attempt) * time.Millisecond)
		if attempt == 2 {
			s.recoverBus()
		}
	}

	// Fallback ladder: held value within the hold window, then the last
	// nonzero value, then zero. Never fresh.
	now := s.clock.Now()
	switch {
	case s.hasLast && hw.TicksDiff(now, s.lastGoodAt) <= bodyTempHoldMS:
		return BodyTempReading{Celsius: s.lastGood}, nil
	case s.hasNonzero:
		return BodyTempReading{Celsius: s.lastNonzero}, nil
	default:
		return BodyTempReading{}, nil
	}
}

// readOnce performs one pointer-write/read transaction and decodes the
// 16-bit two's-complement big-endian fixed-point value.
func (s *BodyTemp) readOnce() (float64, error) {
	if err := s.bus.WriteTo(s.addr, []byte{bodyTempPointerReg}); err != nil {
		return 0, err
	}
	s.clock.Sleep(bodyTempPointerDelayUS * time.Microsecond)

	var raw [2]byte
	if err := s.bus.ReadFrom(s.addr, raw[:]); err != nil {
		return 0, err
	}

	value := float64(int16(binary.BigEndian.Uint16(raw[:]))) / tempLSBPerDegree
	if value < extendedFormatFloor {
		if shifted := value + extendedFormatOffset; shifted >= 0 && shifted <= 100 {
			value = shifted
		}
	}

	return value, nil
}

// recoverBus releases a wedged bus: nine clock pulses to flush a stuck
// slave, a stop-condition transition on the data line, then bus reinit.
func (s *BodyTemp) recoverBus() {
	logger.Debug().Msg("Running bus recovery")

	s.port.SetSCL(true)
	s.port.SetSDA(true)
	s.port.DelayMicros(recoverySettleUS)

	for i := 0; i < recoveryPulses; i++ {
		s.port.SetSCL(false)
		s.port.DelayMicros(recoveryPulseUS)
		s.port.SetSCL(true)
		s.port.DelayMicros(recoveryPulseUS)
	}

	s.port.SetSDA(false)
	s.port.DelayMicros(recoveryPulseUS)
	s.port.SetSCL(true)
	s.port.DelayMicros(recoveryPulseUS)
	s.port.SetSDA(true)
	s.port.DelayMicros(recoveryPulseUS)

	if err := s.port.Reinit(); err != nil {
		logger.Warn().Err(err).Msg("Bus reinit failed")
	}
}
