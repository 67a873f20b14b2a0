package hwinfo

// RegionName is the well-known name of the shared memory region published by
// HWiNFO when "Shared Memory Support" is enabled.
const RegionName = `Global\HWiNFO_SENS_SM2`

// regionSignature is "HWiS" read as a little-endian u32.
const regionSignature uint32 = 0x53695748

// Header layout, little-endian, packed.
const (
	hdrSignature     = 0
	hdrVersion       = 4
	hdrRevision      = 8
	hdrPollTime      = 12 // i64, unix seconds
	hdrSensorOffset  = 20
	hdrSensorSize    = 24
	hdrSensorCount   = 28
	hdrReadingOffset = 32
	hdrReadingSize   = 36
	hdrReadingCount  = 40
	hdrPollingPeriod = 44 // u32, milliseconds

	headerSize = 48
)

const (
	labelLen = 128
	unitLen  = 16
)

// Sensor element layout: id, instance, then three NUL-padded name strings
// (original, user-renamed, user-renamed UTF-8).
const (
	selID       = 0
	selInstance = 4
	selNameOrig = 8
	selNameUser = selNameOrig + labelLen
	selNameUTF8 = selNameUser + labelLen

	sensorElementMin = selNameUTF8 + labelLen
)

// Reading element layout: type, owning sensor index, reading id, labels and
// unit, current/min/max/avg values, then UTF-8 copies of label and unit.
const (
	relType        = 0
	relSensorIndex = 4
	relID          = 8
	relLabelOrig   = 12
	relLabelUser   = relLabelOrig + labelLen
	relUnit        = relLabelUser + labelLen
	relValue       = relUnit + unitLen
	relValueMin    = relValue + 8
	relValueMax    = relValueMin + 8
	relValueAvg    = relValueMax + 8
	relLabelUTF8   = relValueAvg + 8
	relUnitUTF8    = relLabelUTF8 + labelLen

	readingElementMin = relUnitUTF8 + unitLen
)

// ReadingType is the unit class HWiNFO assigns to a reading.
type ReadingType uint32

const (
	TypeNone ReadingType = iota
	TypeTemp
	TypeVolt
	TypeFan
	TypeCurrent
	TypePower
	TypeClock
	TypeUsage
	TypeOther
)

func (t ReadingType) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeTemp:
		return "temperature"
	case TypeVolt:
		return "voltage"
	case TypeFan:
		return "fan"
	case TypeCurrent:
		return "current"
	case TypePower:
		return "power"
	case TypeClock:
		return "clock"
	case TypeUsage:
		return "usage"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}
