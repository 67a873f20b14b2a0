package hwinfo

import (
	"strings"
	"time"

	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

// Field is a logical metric slot of the snapshot.
type Field int

const (
	FieldCPUTemperature Field = iota
	FieldCPUPower
	FieldCPUUsage
	FieldCPUFrequency
	FieldCPUFanRPM
	FieldGPUTemperature
	FieldGPUPower
	FieldGPUUsage
	FieldGPUFrequency

	fieldCount
)

// Aggregation picks how multiple matching records collapse into one value.
type Aggregation int

const (
	// AggregateFirst keeps the first matching record
	AggregateFirst Aggregation = iota
	// AggregateMean averages all matching records, used for per-core clocks
	AggregateMean
)

// Matcher resolves region records into a logical field. A record matches when
// its reading type equals Type and its label contains any of Labels,
// case-insensitively. HWiNFO assigns table slots dynamically per session, so
// matching is by label and unit class, never by position.
type Matcher struct {
	Field     Field
	Type      ReadingType
	Labels    []string
	Aggregate Aggregation
}

// DefaultMatchers is the built-in field resolution table.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{Field: FieldCPUTemperature, Type: TypeTemp, Labels: []string{"cpu (tctl", "tctl/tdie", "cpu package", "cpu die"}},
		{Field: FieldCPUPower, Type: TypePower, Labels: []string{"cpu package power", "cpu power"}},
		{Field: FieldCPUUsage, Type: TypeUsage, Labels: []string{"total cpu usage", "total cpu utility"}},
		{Field: FieldCPUFrequency, Type: TypeClock, Labels: []string{"perf #", "cpu clock"}, Aggregate: AggregateMean},
		{Field: FieldCPUFanRPM, Type: TypeFan, Labels: []string{"cpu"}},
		{Field: FieldGPUTemperature, Type: TypeTemp, Labels: []string{"gpu temperature"}},
		{Field: FieldGPUPower, Type: TypePower, Labels: []string{"gpu power"}},
		{Field: FieldGPUUsage, Type: TypeUsage, Labels: []string{"gpu core load", "gpu utilization"}},
		{Field: FieldGPUFrequency, Type: TypeClock, Labels: []string{"gpu clock", "gpu core clock"}},
	}
}

// Match reports whether the record belongs to this matcher's field
func (m Matcher) Match(rec Record) bool {
	if rec.Type != m.Type {
		return false
	}

	label := strings.ToLower(rec.Label)
	for _, want := range m.Labels {
		if strings.Contains(label, want) {
			return true
		}
	}

	return false
}

// Resolve walks the record table once and builds a snapshot. Fields with no
// matching record are left absent.
func Resolve(region *Region, matchers []Matcher) *sensor.Snapshot {
	var (
		sums   [fieldCount]float64
		counts [fieldCount]int
	)

	for _, rec := range region.Records {
		for _, m := range matchers {
			if !m.Match(rec) {
				continue
			}
			if m.Aggregate == AggregateFirst && counts[m.Field] > 0 {
				continue
			}
			sums[m.Field] += rec.Value
			counts[m.Field]++
		}
	}

	reading := func(f Field) sensor.Reading {
		if counts[f] == 0 {
			return sensor.Reading{}
		}

		return sensor.NewReading(sums[f] / float64(counts[f]))
	}

	return &sensor.Snapshot{
		TakenAt:        time.Now(),
		PollingPeriod:  region.PollingPeriod,
		CPUTemperature: reading(FieldCPUTemperature),
		CPUPower:       reading(FieldCPUPower),
		CPUUsage:       reading(FieldCPUUsage),
		CPUFrequency:   reading(FieldCPUFrequency),
		CPUFanRPM:      reading(FieldCPUFanRPM),
		GPUTemperature: reading(FieldGPUTemperature),
		GPUPower:       reading(FieldGPUPower),
		GPUUsage:       reading(FieldGPUUsage),
		GPUFrequency:   reading(FieldGPUFrequency),
	}
}
