package hwinfo

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/saanuregh/deepcool-ch170/internal/errors"
)

// Record is one entry from the region's reading table.
type Record struct {
	Type        ReadingType
	SensorIndex uint32
	ID          uint32
	Label       string
	Unit        string
	Value       float64
}

// Region is a parsed, self-contained copy of the shared memory contents.
type Region struct {
	Version       uint32
	Revision      uint32
	PollTime      time.Time
	PollingPeriod time.Duration
	Sensors       []string
	Records       []Record
}

// ParseRegion decodes a raw copy of the shared memory region.
//
// The region is written concurrently by HWiNFO, so any structural
// inconsistency (section running past the buffer, element smaller than the
// known layout) is reported as a torn read rather than trusted. A bad
// signature means the producer is not there at all.
func ParseRegion(buf []byte) (*Region, error) {
	errFactory := errors.New()

	if len(buf) < headerSize {
		return nil, errFactory.WithMessage(ErrRegionUnavailable, "region smaller than header")
	}

	if binary.LittleEndian.Uint32(buf[hdrSignature:]) != regionSignature {
		return nil, errFactory.WithMessage(ErrRegionUnavailable, "region signature mismatch")
	}

	version := binary.LittleEndian.Uint32(buf[hdrVersion:])
	if version == 0 {
		return nil, errFactory.WithData(ErrRegionUnsupported, version)
	}

	sensorOffset := uint64(binary.LittleEndian.Uint32(buf[hdrSensorOffset:]))
	sensorSize := uint64(binary.LittleEndian.Uint32(buf[hdrSensorSize:]))
	sensorCount := uint64(binary.LittleEndian.Uint32(buf[hdrSensorCount:]))
	readingOffset := uint64(binary.LittleEndian.Uint32(buf[hdrReadingOffset:]))
	readingSize := uint64(binary.LittleEndian.Uint32(buf[hdrReadingSize:]))
	readingCount := uint64(binary.LittleEndian.Uint32(buf[hdrReadingCount:]))

	if sensorSize < sensorElementMin || readingSize < readingElementMin {
		return nil, errFactory.WithMessage(ErrRegionTorn, "element size below known layout")
	}

	bufLen := uint64(len(buf))
	if sensorOffset+sensorCount*sensorSize > bufLen ||
		readingOffset+readingCount*readingSize > bufLen {
		return nil, errFactory.WithMessage(ErrRegionTorn, "section exceeds region bounds")
	}

	region := &Region{
		Version:       version,
		Revision:      binary.LittleEndian.Uint32(buf[hdrRevision:]),
		PollTime:      time.Unix(int64(binary.LittleEndian.Uint64(buf[hdrPollTime:])), 0),
		PollingPeriod: time.Duration(binary.LittleEndian.Uint32(buf[hdrPollingPeriod:])) * time.Millisecond,
		Sensors:       make([]string, 0, sensorCount),
		Records:       make([]Record, 0, readingCount),
	}

	for i := uint64(0); i < sensorCount; i++ {
		el := buf[sensorOffset+i*sensorSize:]
		name := cstring(el[selNameUTF8 : selNameUTF8+labelLen])
		if name == "" {
			name = cstring(el[selNameUser : selNameUser+labelLen])
		}
		region.Sensors = append(region.Sensors, name)
	}

	for i := uint64(0); i < readingCount; i++ {
		el := buf[readingOffset+i*readingSize:]

		label := cstring(el[relLabelUTF8 : relLabelUTF8+labelLen])
		if label == "" {
			label = cstring(el[relLabelUser : relLabelUser+labelLen])
		}
		unit := cstring(el[relUnitUTF8 : relUnitUTF8+unitLen])
		if unit == "" {
			unit = cstring(el[relUnit : relUnit+unitLen])
		}

		region.Records = append(region.Records, Record{
			Type:        ReadingType(binary.LittleEndian.Uint32(el[relType:])),
			SensorIndex: binary.LittleEndian.Uint32(el[relSensorIndex:]),
			ID:          binary.LittleEndian.Uint32(el[relID:]),
			Label:       label,
			Unit:        unit,
			Value:       math.Float64frombits(binary.LittleEndian.Uint64(el[relValue:])),
		})
	}

	return region, nil
}

// cstring returns the bytes up to the first NUL as a string
func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}

	return string(b)
}
