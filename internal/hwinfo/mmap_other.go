//go:build !windows

package hwinfo

import "github.com/saanuregh/deepcool-ch170/internal/errors"

// HWiNFO only publishes its region on Windows; elsewhere the reader always
// reports the region as unavailable.
func openRegionView() (regionView, error) {
	return nil, errors.New().WithMessage(ErrRegionUnavailable, "HWiNFO shared memory is only published on Windows")
}
