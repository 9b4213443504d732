package sensor_test

import (
	"testing"
	"time"

	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPulseEstimatesRateFromSimulatedBeats(t *testing.T) {
	clock := hw.NewSimClock()
	s := sensor.NewPulse(sensor.NewSimPulseSource(600), clock)

	// Five seconds at the 100 ms read cadence covers two recompute
	// intervals, enough for warm-up artifacts to slide out of the window.
	var r sensor.PulseReading
	var err error
	for i := 0; i < 50; i++ {
		clock.Advance(100 * time.Millisecond)
		r, err = s.Read()
		require.NoError(t, err)
	}

	assert.InDelta(t, 100, r.BPM, 2)
	assert.Equal(t, 98, r.SpO2)
	assert.NotZero(t, r.IR)
}

func TestPulseSpO2ZeroWithoutRate(t *testing.T) {
	clock := hw.NewSimClock()
	s := sensor.NewPulse(sensor.NullPulseSource{}, clock)

	r, err := s.Read()
	require.NoError(t, err)

	assert.Zero(t, r.BPM)
	assert.Zero(t, r.SpO2)
	assert.Zero(t, r.IR)
}
