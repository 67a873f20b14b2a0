package display

import "github.com/saanuregh/deepcool-ch170/internal/errors"

const (
	// Connection Errors
	ErrDeviceNotFound   = errors.ErrorCode("display_device_not_found")
	ErrDeviceOpenFailed = errors.ErrorCode("display_device_open_failed")
	ErrNotConnected     = errors.ErrorCode("display_not_connected")

	// Transfer Errors
	ErrWriteFailed = errors.ErrorCode("display_write_failed")
)
