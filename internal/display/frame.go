package display

import (
	"encoding/binary"
	"math"

	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

const (
	// PayloadSize is the fixed frame payload length
	PayloadSize = 64

	// ReportID prefixes every output report on the wire
	ReportID = 0x10

	terminator = 0x16

	// Sentinels for readings absent from the feed. The firmware renders
	// these as "no data" rather than a real zero reading.
	sentinelU16 = 0xFFFF
	sentinelPct = 0xFF

	// maxU16 is one below the sentinel so a saturated value stays
	// distinguishable from an absent one
	maxU16 = 0xFFFE
	maxPct = 100
)

// frameHeader is the fixed protocol preamble
var frameHeader = [5]byte{0x68, 0x01, 0x06, 0x23, 0x01}

// sentinelF32 is a quiet NaN, the "no data" encoding for float fields
const sentinelF32 = uint32(0x7FC00000)

// Payload offsets
const (
	offMode     = 5
	offCPUPower = 6
	offTempUnit = 8
	offCPUTemp  = 9
	offCPUUsage = 13
	offCPUFreq  = 14
	offCPUFan   = 16
	offGPUPower = 18
	offGPUTemp  = 20
	offGPUUsage = 24
	offGPUFreq  = 25

	offTerminator = 39
	offChecksum   = PayloadSize - 1
)

// Unit is the temperature unit flag carried in the frame
type Unit uint8

const (
	UnitCelsius    Unit = 0
	UnitFahrenheit Unit = 1
)

// Frame is one fixed-length display payload. The report ID is not part of
// the payload; Report prepends it for the wire.
type Frame struct {
	payload [PayloadSize]byte
}

// Payload returns the 64 payload bytes
func (f *Frame) Payload() []byte {
	return f.payload[:]
}

// Report returns the report-ID-prefixed buffer written to the device
func (f *Frame) Report() []byte {
	report := make([]byte, 1+PayloadSize)
	report[0] = ReportID
	copy(report[1:], f.payload[:])

	return report
}

// Encoder serializes snapshots into display frames. It is stateless apart
// from the configured temperature unit, so encoding is deterministic.
type Encoder struct {
	unit Unit
}

func NewEncoder(unit Unit) Encoder {
	return Encoder{unit: unit}
}

// Encode builds the frame for one snapshot and mode. The checksum is
// recomputed on every call, never carried over.
func (e Encoder) Encode(snap *sensor.Snapshot, mode Mode) Frame {
	var f Frame
	p := f.payload[:]

	copy(p, frameHeader[:])
	p[offMode] = byte(mode)
	p[offTempUnit] = byte(e.unit)

	if mode.includesCPU() {
		putU16(p[offCPUPower:], snap.CPUPower)
		putF32(p[offCPUTemp:], e.temperature(snap.CPUTemperature))
		putPct(p[offCPUUsage:], snap.CPUUsage)
		putU16(p[offCPUFreq:], snap.CPUFrequency)
		putU16(p[offCPUFan:], snap.CPUFanRPM)
	}

	if mode.includesGPU() {
		putU16(p[offGPUPower:], snap.GPUPower)
		putF32(p[offGPUTemp:], e.temperature(snap.GPUTemperature))
		putPct(p[offGPUUsage:], snap.GPUUsage)
		putU16(p[offGPUFreq:], snap.GPUFrequency)
	}

	p[offTerminator] = terminator
	p[offChecksum] = Checksum(p)

	return f
}

// temperature applies the configured unit before encoding
func (e Encoder) temperature(r sensor.Reading) sensor.Reading {
	if !r.Valid || e.unit == UnitCelsius {
		return r
	}

	return sensor.NewReading(r.Value*9/5 + 32)
}

// Checksum sums all payload bytes before the checksum slot, modulo 256. The
// firmware recomputes the same sum to reject corrupted transfers.
func Checksum(payload []byte) byte {
	var sum uint16
	for _, b := range payload[:offChecksum] {
		sum += uint16(b)
	}

	return byte(sum % 256)
}

// isFinite guards integer conversions; the feed's values are
// producer-controlled and may carry NaN or infinities
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// putU16 encodes a reading as big-endian u16, saturating out-of-range values
// rather than wrapping them. Non-finite values encode as absent.
func putU16(b []byte, r sensor.Reading) {
	if !r.Valid || !isFinite(r.Value) {
		binary.BigEndian.PutUint16(b, sentinelU16)
		return
	}

	v := math.Round(r.Value)
	if v < 0 {
		v = 0
	}
	if v > maxU16 {
		v = maxU16
	}

	binary.BigEndian.PutUint16(b, uint16(v))
}

// putPct encodes a percentage as a single byte, clamped to 0..100.
// Non-finite values encode as absent.
func putPct(b []byte, r sensor.Reading) {
	if !r.Valid || !isFinite(r.Value) {
		b[0] = sentinelPct
		return
	}

	v := math.Round(r.Value)
	if v < 0 {
		v = 0
	}
	if v > maxPct {
		v = maxPct
	}

	b[0] = byte(v)
}

// putF32 encodes a reading as big-endian IEEE float
func putF32(b []byte, r sensor.Reading) {
	if !r.Valid {
		binary.BigEndian.PutUint32(b, sentinelF32)
		return
	}

	binary.BigEndian.PutUint32(b, math.Float32bits(float32(r.Value)))
}
