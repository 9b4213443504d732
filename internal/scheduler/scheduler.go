package scheduler

import (
	"time"

	"codeberg.org/witka/biosensord/internal/errors"
	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/sensor"
	"codeberg.org/witka/biosensord/internal/telemetry"
)

const (
	// BaseTick is the scheduler tick period.
	BaseTick = 100 * time.Millisecond
	// PrimingTicks is how many ticks run before steady state so the
	// heart-rate window fills before its estimate is first trusted.
	PrimingTicks = 50

	ecgCadenceMS      = 100
	gsrCadenceMS      = 100
	muscleCadenceMS   = 100
	envCadenceMS      = 2000
	bodyTempCadenceMS = 1000
	pulseCadenceMS    = 100
)

// Drivers collects the per-channel drivers the scheduler polls.
type Drivers struct {
	ECG      sensor.ECGDriver
	GSR      sensor.GSRDriver
	Muscle   sensor.MuscleDriver
	Env      sensor.EnvDriver
	BodyTemp sensor.BodyTempDriver
	Pulse    sensor.PulseDriver
}

type channelMeta struct {
	cadenceMS  int32
	lastUpdate hw.Ticks
}

// due uses the wraparound-safe difference; the inclusive boundary counts.
func (m *channelMeta) due(now hw.Ticks) bool {
	return hw.TicksDiff(now, m.lastUpdate) >= m.cadenceMS
}

// Scheduler polls each channel at its own cadence and assembles one
// composite record per tick from the cached last-accepted readings.
// A cycle is all-or-nothing: if any due read fails, no channel's cache or
// timestamp is updated for that tick, even channels read successfully
// earlier in the same cycle, and no record is produced.
type Scheduler struct {
	clock   hw.Clock
	drivers Drivers

	ecgMeta    channelMeta
	gsrMeta    channelMeta
	muscleMeta channelMeta
	envMeta    channelMeta
	bodyMeta   channelMeta
	pulseMeta  channelMeta

	ecgLast    sensor.ECGReading
	gsrLast    sensor.GSRReading
	muscleLast sensor.MuscleReading
	envLast    sensor.EnvReading
	bodyLast   sensor.BodyTempReading
	pulseLast  sensor.PulseReading
}

// New creates a scheduler with safe default caches: valid-but-zero muscle
// state, fresh zero body temperature, zero heart rate.
func New(clock hw.Clock, drivers Drivers) *Scheduler {
	return &Scheduler{
		clock:      clock,
		drivers:    drivers,
		ecgMeta:    channelMeta{cadenceMS: ecgCadenceMS},
		gsrMeta:    channelMeta{cadenceMS: gsrCadenceMS},
		muscleMeta: channelMeta{cadenceMS: muscleCadenceMS},
		envMeta:    channelMeta{cadenceMS: envCadenceMS},
		bodyMeta:   channelMeta{cadenceMS: bodyTempCadenceMS},
		pulseMeta:  channelMeta{cadenceMS: pulseCadenceMS},
		muscleLast: sensor.MuscleReading{OK: true, Reason: sensor.ReasonOK},
		bodyLast:   sensor.BodyTempReading{Fresh: true},
	}
}

// Tick runs one acquisition cycle and returns the composite record, or an
// error if the cycle was abandoned.
func (s *Scheduler) Tick() (*telemetry.Record, error) {
	errFactory := errors.New()
	now := s.clock.Now()

	var (
		ecgStaged    sensor.ECGReading
		gsrStaged    sensor.GSRReading
		muscleStaged sensor.MuscleReading
		envStaged    sensor.EnvReading
		bodyStaged   sensor.BodyTempReading
		pulseStaged  sensor.PulseReading

		ecgDue    = s.ecgMeta.due(now)
		gsrDue    = s.gsrMeta.due(now)
		muscleDue = s.muscleMeta.due(now)
		envDue    = s.envMeta.due(now)
		bodyDue   = s.bodyMeta.due(now)
		pulseDue  = s.pulseMeta.due(now)
	)

	// Read phase: strictly sequential, abort on the first failure without
	// having touched any cache entry.
	var err error
	if ecgDue {
		if ecgStaged, err = s.drivers.ECG.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}
	if gsrDue {
		if gsrStaged, err = s.drivers.GSR.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}
	if muscleDue {
		if muscleStaged, err = s.drivers.Muscle.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}
	if envDue {
		if envStaged, err = s.drivers.Env.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}
	if bodyDue {
		if bodyStaged, err = s.drivers.BodyTemp.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}
	if pulseDue {
		if pulseStaged, err = s.drivers.Pulse.Read(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadCycle, err)
		}
	}

	// Commit phase: only reached when every due read succeeded.
	if ecgDue {
		s.ecgLast, s.ecgMeta.lastUpdate = ecgStaged, now
	}
	if gsrDue {
		s.gsrLast, s.gsrMeta.lastUpdate = gsrStaged, now
	}
	if muscleDue {
		s.muscleLast, s.muscleMeta.lastUpdate = muscleStaged, now
	}
	if envDue {
		s.envLast, s.envMeta.lastUpdate = envStaged, now
	}
	if bodyDue {
		s.bodyLast, s.bodyMeta.lastUpdate = bodyStaged, now
	}
	if pulseDue {
		s.pulseLast, s.pulseMeta.lastUpdate = pulseStaged, now
	}

	return s.record(), nil
}

func (s *Scheduler) record() *telemetry.Record {
	return &telemetry.Record{
		ECGValue:        s.ecgLast.Value,
		GSRValue:        s.gsrLast.Value,
		MuscleValue:     s.muscleLast.Value,
		MuscleOK:        s.muscleLast.OK,
		MuscleVoltage:   s.muscleLast.Voltage,
		MuscleReason:    s.muscleLast.Reason,
		EnvTemperature:  s.envLast.Temperature,
		EnvHumidity:     s.envLast.Humidity,
		BodyTemperature: s.bodyLast.Celsius,
		BodyTempFresh:   s.bodyLast.Fresh,
		HRValue:         s.pulseLast.BPM,
		SpO2Value:       s.pulseLast.SpO2,
		IRValue:         s.pulseLast.IR,
		LeadOffPlus:     s.ecgLast.LeadOffPlus,
		LeadOffMinus:    s.ecgLast.LeadOffMinus,
		LeadOff:         s.ecgLast.LeadOff,
	}
}
