package hwinfo

import (
	"context"

	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

// regionView is a live read-only window onto the shared memory region
type regionView interface {
	bytes() []byte
	close() error
}

// Reader resolves HWiNFO shared memory into sensor snapshots. It implements
// sensor.Source. The mapping is held open for the reader's lifetime; if it is
// lost, the next Snapshot call re-establishes it.
type Reader struct {
	matchers []Matcher
	openView func() (regionView, error)
	view     regionView
}

func NewReader(matchers []Matcher) *Reader {
	if matchers == nil {
		matchers = DefaultMatchers()
	}

	return &Reader{
		matchers: matchers,
		openView: openRegionView,
	}
}

// Open maps the region and validates its header. A missing region is returned
// to the caller, whose retry policy decides what happens next.
func (r *Reader) Open(_ context.Context) error {
	errFactory := errors.New()

	if r.view != nil {
		return nil
	}

	view, err := r.openView()
	if err != nil {
		return errFactory.Wrap(ErrRegionUnavailable, err)
	}

	if _, err := ParseRegion(copyRegion(view)); err != nil && !errors.IsCode(err, ErrRegionTorn) {
		_ = view.close()
		return err
	}

	r.view = view
	logger.Info().Msg("HWiNFO shared memory access established")

	return nil
}

// Snapshot copies the region once and resolves it through the matcher table.
// A torn read is an error for this tick only; the mapping stays open.
func (r *Reader) Snapshot(ctx context.Context) (*sensor.Snapshot, error) {
	if r.view == nil {
		if err := r.Open(ctx); err != nil {
			return nil, err
		}
	}

	region, err := ParseRegion(copyRegion(r.view))
	if err != nil {
		if errors.IsCode(err, ErrRegionUnavailable) {
			// Producer went away, drop the mapping so the next tick remaps
			_ = r.view.close()
			r.view = nil
			logger.Warn().Msg("HWiNFO shared memory access lost")
		}

		return nil, err
	}

	return Resolve(region, r.matchers), nil
}

func (r *Reader) Close() error {
	if r.view == nil {
		return nil
	}

	err := r.view.close()
	r.view = nil
	logger.Info().Msg("HWiNFO shared memory access released")

	return err
}

// copyRegion takes a stable copy so parsing never races the producer
func copyRegion(view regionView) []byte {
	src := view.bytes()
	buf := make([]byte, len(src))
	copy(buf, src)

	return buf
}
