package hrm

import (
	"codeberg.org/witka/biosensord/internal/hw"
)

const (
	// WindowSeconds is how much signal the peak detector looks at.
	WindowSeconds = 3
	// DefaultSmoothingWindow is the moving-average width applied to raw samples.
	DefaultSmoothingWindow = 5

	// Computed rates outside this range never replace the current estimate.
	MinBPM = 20
	MaxBPM = 240

	minPeakSamples = 3
	msPerMinute    = 60000
)

// Monitor derives beats per minute from a stream of infrared absorption
// samples. Raw samples, their smoothed counterparts and their timestamps
// live in three lockstep ring buffers sized to WindowSeconds of signal;
// peaks are strict local maxima above a dynamic mid-range threshold.
type Monitor struct {
	capacity  int
	smoothing int

	raw      []float64
	smoothed []float64
	stamps   []hw.Ticks
	head     int // next write slot
	size     int

	bpm int
}

type peak struct {
	stamp hw.Ticks
	value float64
}

// New creates a Monitor for a signal acquired at acquisitionRate samples
// per second. A smoothingWindow of 0 selects the default.
func New(acquisitionRate, smoothingWindow int) *Monitor {
	if acquisitionRate <= 0 {
		acquisitionRate = 1
	}
	if smoothingWindow <= 0 {
		smoothingWindow = DefaultSmoothingWindow
	}

	capacity := acquisitionRate * WindowSeconds

	return &Monitor{
		capacity:  capacity,
		smoothing: smoothingWindow,
		raw:       make([]float64, capacity),
		smoothed:  make([]float64, capacity),
		stamps:    make([]hw.Ticks, capacity),
	}
}

// Add ingests one raw sample. The smoothed value is the mean of the last
// smoothing-window raw samples, or the raw value itself while the buffer
// holds fewer. When the window is full the oldest entry of all three
// sequences is evicted in lockstep.
func (m *Monitor) Add(sample float64, ts hw.Ticks) {
	newest := m.head
	m.raw[newest] = sample
	m.stamps[newest] = ts
	if m.size < m.capacity {
		m.size++
	}
	m.head = (m.head + 1) % m.capacity

	if m.size >= m.smoothing {
		sum := 0.0
		for i := 0; i < m.smoothing; i++ {
			sum += m.raw[(newest-i+m.capacity)%m.capacity]
		}
		m.smoothed[newest] = sum / float64(m.smoothing)
	} else {
		m.smoothed[newest] = sample
	}
}

// Len returns the number of samples currently buffered.
func (m *Monitor) Len() int {
	return m.size
}

// BPM returns the current heart-rate estimate. It is zero until the first
// accepted computation and never resets afterwards.
func (m *Monitor) BPM() int {
	return m.bpm
}

// Recompute runs peak detection over the buffered window and, if it yields
// a rate within [MinBPM, MaxBPM], installs it as the current estimate.
// It returns the (possibly unchanged) estimate and whether it was updated.
func (m *Monitor) Recompute() (int, bool) {
	rate, ok := m.computeRate()
	if !ok {
		return m.bpm, false
	}
	if rate < MinBPM || rate > MaxBPM {
		return m.bpm, false
	}

	m.bpm = rate

	return m.bpm, true
}

// index maps a logical position (0 = oldest) to ring storage.
func (m *Monitor) index(i int) int {
	return (m.head - m.size + i + m.capacity) % m.capacity
}

// findPeaks locates strict local maxima above the dynamic threshold
// min + 0.5*(max-min) computed over the whole smoothed window.
func (m *Monitor) findPeaks() []peak {
	if m.size < minPeakSamples {
		return nil
	}

	minVal := m.smoothed[m.index(0)]
	maxVal := minVal
	for i := 1; i < m.size; i++ {
		v := m.smoothed[m.index(i)]
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	threshold := minVal + (maxVal-minVal)*0.5

	var peaks []peak
	for i := 1; i < m.size-1; i++ {
		cur := m.smoothed[m.index(i)]
		if cur > threshold && m.smoothed[m.index(i-1)] < cur && cur > m.smoothed[m.index(i+1)] {
			peaks = append(peaks, peak{stamp: m.stamps[m.index(i)], value: cur})
		}
	}

	return peaks
}

// computeRate averages the inter-peak intervals. At least two peaks are
// required; otherwise there is no estimate.
func (m *Monitor) computeRate() (int, bool) {
	peaks := m.findPeaks()
	if len(peaks) < 2 {
		return 0, false
	}

	sum := int64(0)
	for i := 1; i < len(peaks); i++ {
		sum += int64(hw.TicksDiff(peaks[i].stamp, peaks[i-1].stamp))
	}
	average := float64(sum) / float64(len(peaks)-1)
	if average <= 0 {
		return 0, false
	}

	return int(msPerMinute / average), true
}
