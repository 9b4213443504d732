package sensor

import (
	"codeberg.org/witka/biosensord/internal/logger"
)

// Env wraps the environmental probe. The DHT-style link drops readings
// routinely, so probe failures yield zero values instead of failing the
// acquisition cycle.
type Env struct {
	probe EnvProbe
}

func NewEnv(probe EnvProbe) *Env {
	return &Env{probe: probe}
}

func (s *Env) Read() (EnvReading, error) {
	temperature, humidity, err := s.probe.Measure()
	if err != nil {
		logger.Debug().Err(err).Msg("Environmental probe read failed")
		return EnvReading{}, nil
	}

	return EnvReading{Temperature: temperature, Humidity: humidity}, nil
}

// NullEnvProbe stands in when no environmental front end is wired; the
// channel then reports zeros.
// TODO: back this with an iio humidity driver once the DHT bridge lands.
type NullEnvProbe struct{}

func (NullEnvProbe) Measure() (float64, float64, error) {
	return 0, 0, nil
}
