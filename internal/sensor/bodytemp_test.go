package sensor_test

import (
	"testing"
	"time"

	"codeberg.org/witka/biosensord/internal/hw"
	"codeberg.org/witka/biosensord/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyTempFreshRead(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	s := sensor.NewBodyTemp(bus, bus, clock)

	r, err := s.Read()
	require.NoError(t, err)

	assert.True(t, r.Fresh)
	assert.InDelta(t, 36.8, r.Celsius, 0.01)
	assert.Zero(t, bus.Recoveries)
}

func TestBodyTempAbsentDeviceDegrades(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	bus.Present = false
	s := sensor.NewBodyTemp(bus, bus, clock)

	r, err := s.Read()
	require.NoError(t, err)

	assert.False(t, r.Fresh)
	assert.Zero(t, r.Celsius)
}

func TestBodyTempHeldValueWithinWindow(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	s := sensor.NewBodyTemp(bus, bus, clock)

	r, err := s.Read()
	require.NoError(t, err)
	require.True(t, r.Fresh)

	// All six attempts fail; backoff sleeps total 105 ms, inside the
	// 1500 ms hold window, so the last good value is carried.
	bus.FailNext = 6
	r, err = s.Read()
	require.NoError(t, err)

	assert.False(t, r.Fresh)
	assert.InDelta(t, 36.8, r.Celsius, 0.01)
	assert.Equal(t, 1, bus.Recoveries, "exactly one bus recovery per exhausted read")
}

func TestBodyTempNonzeroFallbackAfterHoldExpires(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	s := sensor.NewBodyTemp(bus, bus, clock)

	r, err := s.Read()
	require.NoError(t, err)
	require.True(t, r.Fresh)

	// A legitimate zero reading becomes the held value but must not
	// displace the last nonzero one.
	bus.Temperature = 0
	r, err = s.Read()
	require.NoError(t, err)
	require.True(t, r.Fresh)
	require.Zero(t, r.Celsius)

	clock.Advance(3 * time.Second) // well past the hold window
	bus.FailNext = 6
	r, err = s.Read()
	require.NoError(t, err)

	assert.False(t, r.Fresh)
	assert.InDelta(t, 36.8, r.Celsius, 0.01)
}

func TestBodyTempZeroFallbackWithoutHistory(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	s := sensor.NewBodyTemp(bus, bus, clock)

	bus.FailNext = 6
	r, err := s.Read()
	require.NoError(t, err)

	assert.False(t, r.Fresh)
	assert.Zero(t, r.Celsius)
}

func TestBodyTempNoRecoveryBeforeThirdFailure(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(36.8)
	s := sensor.NewBodyTemp(bus, bus, clock)

	bus.FailNext = 2
	r, err := s.Read()
	require.NoError(t, err)

	assert.True(t, r.Fresh)
	assert.Zero(t, bus.Recoveries)
}

func TestBodyTempExtendedFormatDecode(t *testing.T) {
	clock := hw.NewSimClock()
	bus := sensor.NewSimBus(-20.0)
	s := sensor.NewBodyTemp(bus, bus, clock)

	r, err := s.Read()
	require.NoError(t, err)

	// Raw −20°C is in the alternate encoding: shift by +64 into range.
	assert.True(t, r.Fresh)
	assert.InDelta(t, 44.0, r.Celsius, 0.01)
}
