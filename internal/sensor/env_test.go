package sensor_test

import (
	"testing"

	"codeberg.org/witka/biosensord/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptEnvProbe struct {
	temperature float64
	humidity    float64
	err         error
}

func (p scriptEnvProbe) Measure() (float64, float64, error) {
	return p.temperature, p.humidity, p.err
}

func TestEnvReportsProbeValues(t *testing.T) {
	s := sensor.NewEnv(scriptEnvProbe{temperature: 24.5, humidity: 41.0})

	r, err := s.Read()
	require.NoError(t, err)

	assert.InDelta(t, 24.5, r.Temperature, 0.001)
	assert.InDelta(t, 41.0, r.Humidity, 0.001)
}

func TestEnvProbeFailureDegradesToZeros(t *testing.T) {
	s := sensor.NewEnv(scriptEnvProbe{err: assert.AnError})

	// Dropped readings are routine on this link: the channel reports
	// zeros and must not fail the acquisition cycle.
	r, err := s.Read()
	require.NoError(t, err)

	assert.Zero(t, r.Temperature)
	assert.Zero(t, r.Humidity)
}
