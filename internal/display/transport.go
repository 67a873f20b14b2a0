package display

import (
	"context"
	"sync"

	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/saanuregh/deepcool-ch170/internal/retry"
	"github.com/sstallion/go-hid"
)

// DeepCool CH170 digital display
const (
	VendorID  = 0x363B
	ProductID = 0x0013
)

// ConnectionState tracks the transport's health
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateFailing
)

func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailing:
		return "failing"
	default:
		return "unknown"
	}
}

// hidDevice abstracts the open device handle for testing
type hidDevice interface {
	Write(p []byte) (int, error)
	Close() error
}

// hidOpener abstracts device discovery and opening for testing. Open must
// return errors carrying ErrDeviceNotFound or ErrDeviceOpenFailed codes.
type hidOpener interface {
	Open(vid, pid uint16) (hidDevice, error)
}

var hidInit sync.Once

// hidapiOpener opens the real device through hidapi
type hidapiOpener struct{}

func (hidapiOpener) Open(vid, pid uint16) (hidDevice, error) {
	errFactory := errors.New()

	hidInit.Do(func() {
		if err := hid.Init(); err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize HID API")
		}
	})

	present := false
	_ = hid.Enumerate(vid, pid, func(*hid.DeviceInfo) error {
		present = true
		return nil
	})
	if !present {
		return nil, errFactory.New(ErrDeviceNotFound)
	}

	device, err := hid.OpenFirst(vid, pid)
	if err != nil {
		return nil, errFactory.Wrap(ErrDeviceOpenFailed, err)
	}

	return device, nil
}

// Transport owns the USB HID connection to the display. It never gives up
// permanently: a failed write marks the connection Failing and the next
// Connect attempt recovers it once the device is replugged.
type Transport struct {
	opener  hidOpener
	device  hidDevice
	state   ConnectionState
	connect retry.Policy
	clock   retry.Clock
}

func NewTransport(connect retry.Policy, clock retry.Clock) *Transport {
	return &Transport{
		opener:  hidapiOpener{},
		connect: connect,
		clock:   clock,
	}
}

// State returns the current connection state
func (t *Transport) State() ConnectionState {
	return t.state
}

// Connect opens the display, retrying per the transport's policy. Safe to
// call from any state; an existing handle is released first.
func (t *Transport) Connect(ctx context.Context) error {
	prev := t.state
	t.release()
	t.state = StateConnecting

	err := retry.Do(ctx, t.connect, t.clock, func() error {
		device, err := t.opener.Open(VendorID, ProductID)
		if err != nil {
			return err
		}
		t.device = device

		return nil
	})
	if err != nil {
		// A connection that was Failing keeps failing until a connect
		// succeeds; a fresh connection falls back to Disconnected
		if prev == StateFailing {
			t.state = StateFailing
		} else {
			t.state = StateDisconnected
		}

		return err
	}

	t.state = StateConnected
	logger.Info().
		Int("vendor_id", VendorID).
		Int("product_id", ProductID).
		Msg("HID connection established")

	return nil
}

// Send writes one report-ID-prefixed frame. A failed or short write releases
// the handle and marks the connection Failing; the device was most likely
// unplugged.
func (t *Transport) Send(frame Frame) error {
	errFactory := errors.New()

	if t.state != StateConnected || t.device == nil {
		return errFactory.New(ErrNotConnected)
	}

	report := frame.Report()
	n, err := t.device.Write(report)
	if err != nil {
		t.release()
		t.state = StateFailing

		return errFactory.Wrap(ErrWriteFailed, err)
	}
	if n != len(report) {
		t.release()
		t.state = StateFailing

		return errFactory.WithData(ErrWriteFailed, n)
	}

	return nil
}

// Close releases the device handle; safe to call from any state
func (t *Transport) Close() error {
	t.release()
	t.state = StateDisconnected

	return nil
}

func (t *Transport) release() {
	if t.device != nil {
		_ = t.device.Close()
		t.device = nil
	}
}
