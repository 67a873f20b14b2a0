package sensor

import "time"

// Reading is a single metric value. A sensor may be absent from the feed,
// so absence is carried explicitly instead of as a zero value.
type Reading struct {
	Value float64
	Valid bool
}

// NewReading returns a valid reading
func NewReading(value float64) Reading {
	return Reading{Value: value, Valid: true}
}

// Snapshot holds the metric values observed at one poll tick.
// A snapshot is immutable once constructed; every tick produces a new one.
type Snapshot struct {
	TakenAt time.Time

	// PollingPeriod is the producer's own sampling period, zero when the
	// source does not advertise one.
	PollingPeriod time.Duration

	CPUTemperature Reading
	CPUPower       Reading
	CPUUsage       Reading
	CPUFrequency   Reading
	CPUFanRPM      Reading

	GPUTemperature Reading
	GPUPower       Reading
	GPUUsage       Reading
	GPUFrequency   Reading
}
