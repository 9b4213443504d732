package sensor

import (
	"encoding/binary"
	"math"
	"math/rand"

	"codeberg.org/witka/biosensord/internal/hw"
)

// Simulated hardware so the daemon and its tests run without sensors
// attached. Waveform shapes are plausible rather than physiological.

// SimADC synthesizes a sine wave with additive noise on a 16-bit scale.
type SimADC struct {
	clock     hw.Clock
	base      float64
	amplitude float64
	periodMS  int
	noise     float64
	rng       *rand.Rand
}

func NewSimADC(clock hw.Clock, base, amplitude float64, periodMS int, noise float64) *SimADC {
	return &SimADC{
		clock:     clock,
		base:      base,
		amplitude: amplitude,
		periodMS:  periodMS,
		noise:     noise,
		rng:       rand.New(rand.NewSource(int64(base))),
	}
}

func (p *SimADC) ReadU16() (uint16, error) {
	phase := float64(int(p.clock.Now())%p.periodMS) / float64(p.periodMS)
	v := p.base + p.amplitude*math.Sin(2*math.Pi*phase) + p.noise*(p.rng.Float64()*2-1)
	if v < 0 {
		v = 0
	}
	if v > 65535 {
		v = 65535
	}
	return uint16(v), nil
}

// SimPin is a digital input stuck at a fixed level.
type SimPin struct {
	Level bool
}

func (p SimPin) Read() (bool, error) {
	return p.Level, nil
}

// SimEnvProbe reports slowly drifting room conditions.
type SimEnvProbe struct {
	clock hw.Clock
}

func NewSimEnvProbe(clock hw.Clock) *SimEnvProbe {
	return &SimEnvProbe{clock: clock}
}

func (p *SimEnvProbe) Measure() (float64, float64, error) {
	drift := math.Sin(float64(p.clock.Now()) / 60000.0)
	return 24.5 + drift, 41.0 + 2*drift, nil
}

// SimPulseSource produces a 50 Hz infrared pulse train with a triangular
// systolic peak. Each call yields the samples accumulated since the last.
type SimPulseSource struct {
	BeatPeriodMS int
	sampleIndex  int
}

const (
	simPulseStepMS   = 20 // 50 Hz acquisition
	simSamplesPerGet = 5  // one 100 ms read worth
	simPulseBaseline = 8000
	simPulseAmp      = 4000
	simPulseWidthMS  = 120
)

func NewSimPulseSource(beatPeriodMS int) *SimPulseSource {
	if beatPeriodMS <= 0 {
		beatPeriodMS = 600 // 100 BPM
	}
	return &SimPulseSource{BeatPeriodMS: beatPeriodMS}
}

func (p *SimPulseSource) Samples() ([]int, error) {
	out := make([]int, 0, simSamplesPerGet)
	for i := 0; i < simSamplesPerGet; i++ {
		phase := (p.sampleIndex * simPulseStepMS) % p.BeatPeriodMS
		out = append(out, simPulseBaseline+int(float64(simPulseAmp)*pulseShape(phase)))
		p.sampleIndex++
	}
	return out, nil
}

// pulseShape is a triangle of simPulseWidthMS centred on the beat onset.
func pulseShape(phaseMS int) float64 {
	if phaseMS >= simPulseWidthMS {
		return 0
	}
	half := simPulseWidthMS / 2
	if phaseMS <= half {
		return float64(phaseMS) / float64(half)
	}
	return float64(simPulseWidthMS-phaseMS) / float64(half)
}

// SimBus emulates the clinical temperature sensor at the first candidate
// address. FailNext makes the next N transactions error, to exercise the
// retry and recovery path.
type SimBus struct {
	Temperature float64
	Present     bool
	FailNext    int
	Recoveries  int
}

func NewSimBus(temperature float64) *SimBus {
	return &SimBus{Temperature: temperature, Present: true}
}

func (b *SimBus) Probe(addr uint16) bool {
	return b.Present && addr == 0x48
}

func (b *SimBus) WriteTo(addr uint16, w []byte) error {
	if b.FailNext > 0 {
		b.FailNext--
		return simBusErr{}
	}
	return nil
}

func (b *SimBus) ReadFrom(addr uint16, r []byte) error {
	if b.FailNext > 0 {
		b.FailNext--
		return simBusErr{}
	}
	if len(r) == 2 {
		binary.BigEndian.PutUint16(r, uint16(int16(b.Temperature*256)))
	}
	return nil
}

func (b *SimBus) SetSCL(bool)     {}
func (b *SimBus) SetSDA(bool)     {}
func (b *SimBus) DelayMicros(int) {}

func (b *SimBus) Reinit() error {
	b.Recoveries++
	return nil
}

type simBusErr struct{}

func (simBusErr) Error() string { return "simulated bus fault" }
