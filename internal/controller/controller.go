// Package controller drives the poll loop: read a sensor snapshot, encode
// the frame for the current display mode, write it over USB HID, advance
// the mode cycle.
package controller

import (
	"context"
	"time"

	"github.com/saanuregh/deepcool-ch170/internal/display"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/saanuregh/deepcool-ch170/internal/metrics"
	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

// Transport is the connection the controller writes frames to
type Transport interface {
	Connect(ctx context.Context) error
	Send(frame display.Frame) error
	State() display.ConnectionState
	Close() error
}

// Config holds the loop parameters
type Config struct {
	Interval      time.Duration
	CyclesPerMode int
	Unit          display.Unit
}

// Controller runs the poll loop until its context is canceled
type Controller struct {
	cfg       Config
	source    sensor.Source
	transport Transport
	cycler    *display.Cycler
	encoder   display.Encoder
	recorder  *metrics.Recorder
}

func New(cfg Config, source sensor.Source, transport Transport, recorder *metrics.Recorder) *Controller {
	return &Controller{
		cfg:       cfg,
		source:    source,
		transport: transport,
		cycler:    display.NewCycler(cfg.CyclesPerMode),
		encoder:   display.NewEncoder(cfg.Unit),
		recorder:  recorder,
	}
}

// Run executes the poll loop. The loop never exits on its own; sensor and
// display failures are logged, counted and retried on later ticks. When the
// telemetry producer advertises its own polling period the ticker follows
// it instead of the configured interval.
func (c *Controller) Run(ctx context.Context) error {
	interval := c.cfg.Interval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			advertised := c.pollOnce(ctx)
			if advertised > 0 && advertised != interval {
				interval = advertised
				ticker.Reset(interval)
				logger.Debug().
					Dur("interval", interval).
					Msg("Following producer polling period")
			}
		}
	}
}

// pollOnce performs one tick and returns the producer's advertised polling
// period, zero when unknown. The mode cycle advances on every tick so the
// display resumes at the right position after an outage.
func (c *Controller) pollOnce(ctx context.Context) time.Duration {
	mode := c.cycler.Current()
	defer c.cycler.Advance()
	c.recorder.PollCycle()

	snap, err := c.source.Snapshot(ctx)
	if err != nil {
		c.recorder.PollError(metrics.StageSensor)
		logger.Warn().Err(err).Msg("Sensor snapshot failed; keeping last frame on display")

		return 0
	}
	c.recorder.ObserveSnapshot(snap)

	if c.transport.State() != display.StateConnected {
		if err := c.transport.Connect(ctx); err != nil {
			logger.Debug().Err(err).Msg("Display not reachable; will retry next tick")

			return snap.PollingPeriod
		}
		c.recorder.Reconnect()
	}

	frame := c.encoder.Encode(snap, mode)
	if err := c.transport.Send(frame); err != nil {
		c.recorder.PollError(metrics.StageWrite)
		logger.Warn().Err(err).Str("mode", mode.String()).Msg("Frame write failed")

		// One immediate recovery attempt; the device may have been
		// replugged since the handle went stale
		if err := c.transport.Connect(ctx); err != nil {
			return snap.PollingPeriod
		}
		c.recorder.Reconnect()

		if err := c.transport.Send(frame); err != nil {
			c.recorder.PollError(metrics.StageWrite)

			return snap.PollingPeriod
		}
	}
	c.recorder.FrameWritten()

	logger.Debug().
		Str("mode", mode.String()).
		Uint64("tick", c.cycler.Tick()).
		Msg("Frame written")

	return snap.PollingPeriod
}
