package display

import (
	"math"
	"testing"

	"github.com/saanuregh/deepcool-ch170/internal/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSnapshot() *sensor.Snapshot {
	return &sensor.Snapshot{
		CPUTemperature: sensor.NewReading(45),
		CPUPower:       sensor.NewReading(65),
		CPUUsage:       sensor.NewReading(12),
		CPUFrequency:   sensor.NewReading(4200),
		CPUFanRPM:      sensor.NewReading(1200),
		GPUTemperature: sensor.NewReading(70),
		GPUPower:       sensor.NewReading(250),
		GPUUsage:       sensor.NewReading(80),
		GPUFrequency:   sensor.NewReading(2400),
	}
}

func TestEncodeFrameInvariants(t *testing.T) {
	enc := NewEncoder(UnitCelsius)

	snapshots := []*sensor.Snapshot{
		fullSnapshot(),
		{}, // everything absent
		{CPUFrequency: sensor.NewReading(1e9)}, // out of range
	}

	for _, snap := range snapshots {
		for _, mode := range Modes {
			frame := enc.Encode(snap, mode)
			payload := frame.Payload()

			require.Len(t, payload, PayloadSize)
			assert.Equal(t, Checksum(payload), payload[PayloadSize-1],
				"checksum byte must match recomputation for mode %s", mode)

			report := frame.Report()
			require.Len(t, report, PayloadSize+1)
			assert.Equal(t, byte(ReportID), report[0])
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	snap := fullSnapshot()

	first := enc.Encode(snap, ModeCPUFrequency)
	second := enc.Encode(snap, ModeCPUFrequency)

	assert.Equal(t, first.Payload(), second.Payload(), "encoding must have no hidden state")
}

func TestEncodePinnedExampleFrame(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	snap := &sensor.Snapshot{
		CPUTemperature: sensor.NewReading(45),
		CPUPower:       sensor.NewReading(65),
		CPUUsage:       sensor.NewReading(12),
		CPUFrequency:   sensor.NewReading(4200),
		CPUFanRPM:      sensor.NewReading(1200),
	}

	frame := enc.Encode(snap, ModeCPUFrequency)

	expected := make([]byte, PayloadSize)
	copy(expected, []byte{
		0x68, 0x01, 0x06, 0x23, 0x01, // header
		0x02,       // mode: cpu frequency
		0x00, 0x41, // cpu power 65 W
		0x00,                   // celsius
		0x42, 0x34, 0x00, 0x00, // cpu temperature 45.0
		0x0C,       // cpu usage 12 %
		0x10, 0x68, // cpu frequency 4200 MHz
		0x04, 0xB0, // cpu fan 1200 RPM
	})
	expected[39] = 0x16 // terminator
	expected[63] = 0x9A // sum of the preceding bytes mod 256

	assert.Equal(t, expected, frame.Payload())

	// Verify the pinned checksum by independent recomputation
	var sum int
	for _, b := range frame.Payload()[:63] {
		sum += int(b)
	}
	assert.Equal(t, byte(sum%256), frame.Payload()[63])
}

func TestEncodeAbsentFieldsUseSentinels(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	snap := &sensor.Snapshot{
		CPUTemperature: sensor.NewReading(45),
		// fan reading absent
	}

	frame := enc.Encode(snap, ModeCPUFan)
	payload := frame.Payload()

	assert.Equal(t, []byte{0xFF, 0xFF}, payload[offCPUFan:offCPUFan+2],
		"absent fan must encode the sentinel, not zero")
	assert.Equal(t, []byte{0xFF, 0xFF}, payload[offCPUPower:offCPUPower+2])
	assert.Equal(t, byte(0xFF), payload[offCPUUsage], "absent percentage sentinel")
}

func TestEncodeAbsentTemperatureIsNaN(t *testing.T) {
	enc := NewEncoder(UnitCelsius)

	frame := enc.Encode(&sensor.Snapshot{}, ModeCPUFrequency)
	payload := frame.Payload()

	assert.Equal(t, []byte{0x7F, 0xC0, 0x00, 0x00}, payload[offCPUTemp:offCPUTemp+4])
}

func TestEncodeSaturatesOutOfRange(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	snap := &sensor.Snapshot{
		CPUFrequency: sensor.NewReading(200000), // beyond u16
		CPUUsage:     sensor.NewReading(180),
		CPUFanRPM:    sensor.NewReading(-50),
	}

	frame := enc.Encode(snap, ModeCPUFrequency)
	payload := frame.Payload()

	assert.Equal(t, []byte{0xFF, 0xFE}, payload[offCPUFreq:offCPUFreq+2],
		"saturated value must stay below the sentinel, never wrap")
	assert.Equal(t, byte(100), payload[offCPUUsage])
	assert.Equal(t, []byte{0x00, 0x00}, payload[offCPUFan:offCPUFan+2], "negative values clamp to zero")
}

func TestEncodeNonFiniteValuesUseSentinels(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	snap := &sensor.Snapshot{
		CPUFrequency: sensor.NewReading(math.NaN()),
		CPUUsage:     sensor.NewReading(math.Inf(1)),
		CPUFanRPM:    sensor.NewReading(math.Inf(-1)),
	}

	frame := enc.Encode(snap, ModeCPUFrequency)
	payload := frame.Payload()

	assert.Equal(t, []byte{0xFF, 0xFF}, payload[offCPUFreq:offCPUFreq+2],
		"NaN from the feed must encode as absent")
	assert.Equal(t, byte(0xFF), payload[offCPUUsage])
	assert.Equal(t, []byte{0xFF, 0xFF}, payload[offCPUFan:offCPUFan+2])
}

func TestEncodeGPUModeLeavesCPUBlockEmpty(t *testing.T) {
	enc := NewEncoder(UnitCelsius)
	frame := enc.Encode(fullSnapshot(), ModeGPU)
	payload := frame.Payload()

	assert.Equal(t, []byte{0x00, 0x00}, payload[offCPUPower:offCPUPower+2])
	assert.Equal(t, []byte{0x00, 0xFA}, payload[offGPUPower:offGPUPower+2], "gpu power 250 W")
	assert.Equal(t, byte(80), payload[offGPUUsage])
}

func TestEncodeFahrenheit(t *testing.T) {
	enc := NewEncoder(UnitFahrenheit)
	snap := &sensor.Snapshot{CPUTemperature: sensor.NewReading(45)}

	frame := enc.Encode(snap, ModeCPUFrequency)
	payload := frame.Payload()

	assert.Equal(t, byte(UnitFahrenheit), payload[offTempUnit])
	// 45°C = 113°F = 0x42E20000 as big-endian float
	assert.Equal(t, []byte{0x42, 0xE2, 0x00, 0x00}, payload[offCPUTemp:offCPUTemp+4])
}
