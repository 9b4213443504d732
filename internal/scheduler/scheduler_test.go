package scheduler_test

import (
	"testing"
	"time"

	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/scheduler"
	"codeberg.org/witka/biosensord/internal/sensor"
	"codeberg.org/witka/biosensord/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Counting fakes: each read returns its own call count as the value so a
// record reveals exactly which cycle produced its cached reading.

type fakeECG struct {
	calls int
	fail  bool
}

func (f *fakeECG) Read() (sensor.ECGReading, error) {
	f.calls++
	if f.fail {
		return sensor.ECGReading{}, assert.AnError
	}
	return sensor.ECGReading{Value: f.calls}, nil
}

type fakeGSR struct {
	calls int
	fail  bool
}

func (f *fakeGSR) Read() (sensor.GSRReading, error) {
	f.calls++
	if f.fail {
		return sensor.GSRReading{}, assert.AnError
	}
	return sensor.GSRReading{Value: f.calls}, nil
}

type fakeMuscle struct{ calls int }

func (f *fakeMuscle) Read() (sensor.MuscleReading, error) {
	f.calls++
	return sensor.MuscleReading{Value: f.calls, OK: true, Reason: sensor.ReasonOK}, nil
}

type fakeEnv struct{ calls int }

func (f *fakeEnv) Read() (sensor.EnvReading, error) {
	f.calls++
	return sensor.EnvReading{Temperature: float64(f.calls)}, nil
}

type fakeBodyTemp struct{ calls int }

func (f *fakeBodyTemp) Read() (sensor.BodyTempReading, error) {
	f.calls++
	return sensor.BodyTempReading{Celsius: float64(f.calls), Fresh: true}, nil
}

type fakePulse struct{ calls int }

func (f *fakePulse) Read() (sensor.PulseReading, error) {
	f.calls++
	return sensor.PulseReading{BPM: f.calls}, nil
}

type fixture struct {
	clock    *hw.SimClock
	sched    *scheduler.Scheduler
	ecg      *fakeECG
	gsr      *fakeGSR
	muscle   *fakeMuscle
	env      *fakeEnv
	bodyTemp *fakeBodyTemp
	pulse    *fakePulse
}

func newFixture() *fixture {
	f := &fixture{
		clock:    hw.NewSimClock(),
		ecg:      &fakeECG{},
		gsr:      &fakeGSR{},
		muscle:   &fakeMuscle{},
		env:      &fakeEnv{},
		bodyTemp: &fakeBodyTemp{},
		pulse:    &fakePulse{},
	}
	f.sched = scheduler.New(f.clock, scheduler.Drivers{
		ECG:      f.ecg,
		GSR:      f.gsr,
		Muscle:   f.muscle,
		Env:      f.env,
		BodyTemp: f.bodyTemp,
		Pulse:    f.pulse,
	})
	return f
}

func (f *fixture) tick(t *testing.T) *telemetry.Record {
	t.Helper()
	f.clock.Advance(scheduler.BaseTick)
	rec, err := f.sched.Tick()
	require.NoError(t, err)
	return rec
}

func TestTickEmitsDefaultsBeforeFirstCadence(t *testing.T) {
	f := newFixture()

	// At t=0 no channel is due yet: the record carries the safe defaults.
	rec, err := f.sched.Tick()
	require.NoError(t, err)

	assert.Zero(t, rec.ECGValue)
	assert.True(t, rec.MuscleOK)
	assert.Equal(t, sensor.ReasonOK, rec.MuscleReason)
	assert.True(t, rec.BodyTempFresh)
	assert.Zero(t, f.ecg.calls)
}

func TestTickCadenceGating(t *testing.T) {
	f := newFixture()

	f.tick(t) // t=100ms
	assert.Equal(t, 1, f.ecg.calls)
	assert.Equal(t, 1, f.gsr.calls)
	assert.Equal(t, 1, f.muscle.calls)
	assert.Equal(t, 1, f.pulse.calls)
	assert.Zero(t, f.env.calls)
	assert.Zero(t, f.bodyTemp.calls)

	for i := 0; i < 9; i++ {
		f.tick(t)
	}
	// t=1000ms: elapsed equals the cadence exactly, which counts as due.
	assert.Equal(t, 10, f.ecg.calls)
	assert.Equal(t, 1, f.bodyTemp.calls)
	assert.Zero(t, f.env.calls)

	for i := 0; i < 10; i++ {
		f.tick(t)
	}
	// t=2000ms: environment fires for the first time, body a second time.
	assert.Equal(t, 1, f.env.calls)
	assert.Equal(t, 2, f.bodyTemp.calls)
}

func TestTickRecordCarriesCachedReadings(t *testing.T) {
	f := newFixture()

	rec := f.tick(t)
	assert.Equal(t, 1, rec.ECGValue)
	assert.Equal(t, 1, rec.MuscleValue)
	assert.Zero(t, rec.EnvTemperature, "env not due yet, cache still default")

	rec = f.tick(t)
	assert.Equal(t, 2, rec.ECGValue)
	assert.Equal(t, 2, rec.HRValue)
}

func TestTickAbortsWholeCycle(t *testing.T) {
	f := newFixture()

	rec := f.tick(t)
	require.Equal(t, 1, rec.ECGValue)

	// A failure mid-cycle abandons the cycle: channels read before the
	// failure are not committed either.
	f.gsr.fail = true
	f.clock.Advance(scheduler.BaseTick)
	rec, err := f.sched.Tick()
	assert.Error(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, 2, f.ecg.calls, "ecg was read before the failure")
	assert.Equal(t, 1, f.muscle.calls, "muscle not reached after the failure")

	// The next successful cycle re-reads everything that was due: nothing
	// from the failed cycle leaked into the caches.
	f.gsr.fail = false
	rec = f.tick(t)
	assert.Equal(t, 3, rec.ECGValue)
	assert.Equal(t, 3, rec.GSRValue)
	assert.Equal(t, 2, rec.MuscleValue)
}
