package sensor

import "context"

// Source produces sensor snapshots from some hardware telemetry feed.
//
// Open establishes access to the feed and fails if it is unavailable; the
// caller decides whether and how to retry. Snapshot reads the feed once.
// A metric missing from the feed is an invalid Reading in the returned
// snapshot, never an error.
type Source interface {
	Open(ctx context.Context) error
	Snapshot(ctx context.Context) (*Snapshot, error)
	Close() error
}
