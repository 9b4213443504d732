package sensor

// Reading variants, one per sensor kind. The scheduler caches the last
// accepted value of each.

type ECGReading struct {
	Value        int
	LeadOffPlus  bool
	LeadOffMinus bool
	LeadOff      bool
}

type GSRReading struct {
	Value int
}

type MuscleReading struct {
	Value   int
	OK      bool
	Voltage float64
	Reason  string
}

type EnvReading struct {
	Temperature float64
	Humidity    float64
}

type BodyTempReading struct {
	Celsius float64
	Fresh   bool
}

type PulseReading struct {
	BPM  int
	SpO2 int
	IR   int
}

// Per-kind driver contracts consumed by the scheduler.

type ECGDriver interface {
	Read() (ECGReading, error)
}

type GSRDriver interface {
	Read() (GSRReading, error)
}

type MuscleDriver interface {
	Read() (MuscleReading, error)
}

type EnvDriver interface {
	Read() (EnvReading, error)
}

type BodyTempDriver interface {
	Read() (BodyTempReading, error)
}

type PulseDriver interface {
	Read() (PulseReading, error)
}

// EnvProbe is the raw temperature/humidity sensor behind the env channel.
type EnvProbe interface {
	Measure() (temperature, humidity float64, err error)
}

// PulseSource drains buffered infrared samples from the optical front end.
// One call returns every sample accumulated since the previous call.
type PulseSource interface {
	Samples() ([]int, error)
}
