package hwinfo

import "github.com/saanuregh/deepcool-ch170/internal/errors"

const (
	// Region Errors
	ErrRegionUnavailable = errors.ErrorCode("hwinfo_region_unavailable")
	ErrRegionUnsupported = errors.ErrorCode("hwinfo_region_version_unsupported")
	ErrRegionTorn        = errors.ErrorCode("hwinfo_region_torn")
)
