package telemetry

import "context"

// Record is the fixed-schema composite reading emitted once per
// successful acquisition cycle. Field order matches the wire format.
type Record struct {
	ECGValue        int
	GSRValue        int
	MuscleValue     int
	MuscleOK        bool
	MuscleVoltage   float64
	MuscleReason    string
	EnvTemperature  float64
	EnvHumidity     float64
	BodyTemperature float64
	BodyTempFresh   bool
	HRValue         int
	SpO2Value       int
	IRValue         int
	LeadOffPlus     bool
	LeadOffMinus    bool
	LeadOff         bool
}

// Emitter writes one encoded record per successful cycle to the
// configured transport.
type Emitter interface {
	Emit(r *Record) error
	Close() error
}

// Collector archives emitted records.
type Collector interface {
	Record(ctx context.Context, r *Record) error
	Close() error
}

// Repository is the storage backend behind a Collector.
type Repository interface {
	Store(r *Record) error
	Close() error
}
