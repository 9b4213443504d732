package hw

import "time"

// Ticks is a reading of a wrapping monotonic millisecond counter.
type Ticks uint32

// TicksDiff returns a−b in milliseconds, correct across counter wraparound.
func TicksDiff(a, b Ticks) int32 {
	return int32(a - b)
}

// Clock provides monotonic time to the scheduler and fault handlers.
type Clock interface {
	Now() Ticks
	Sleep(d time.Duration)
}

// ADCPin reads a raw 16-bit sample from an analog input.
type ADCPin interface {
	ReadU16() (uint16, error)
}

// DigitalPin reads a logic level from a digital input.
type DigitalPin interface {
	Read() (bool, error)
}

// Bus is a two-wire bus constrained to the operations the sensors need.
type Bus interface {
	WriteTo(addr uint16, w []byte) error
	ReadFrom(addr uint16, r []byte) error
	Probe(addr uint16) bool
}

// RecoveryPort drives the raw bus lines directly so a wedged bus can be
// released with a manual clock-pulse sequence, then reinitialized.
type RecoveryPort interface {
	SetSCL(high bool)
	SetSDA(high bool)
	DelayMicros(us int)
	Reinit() error
}
