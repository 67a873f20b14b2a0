package sensor

import "github.com/saanuregh/deepcool-ch170/internal/errors"

const (
	ErrSourceUnavailable = errors.ErrorCode("sensor_source_unavailable")
	ErrSnapshotFailed    = errors.ErrorCode("sensor_snapshot_failed")
	ErrNotOpen           = errors.ErrorCode("sensor_source_not_open")
)
