package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saanuregh/deepcool-ch170/internal/config"
	"github.com/saanuregh/deepcool-ch170/internal/controller"
	"github.com/saanuregh/deepcool-ch170/internal/display"
	"github.com/saanuregh/deepcool-ch170/internal/hwinfo"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/saanuregh/deepcool-ch170/internal/metrics"
	"github.com/saanuregh/deepcool-ch170/internal/retry"
	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	recorder := metrics.NewRecorder()
	if cfg.MetricsListen != "" {
		go func() {
			if err := recorder.Serve(ctx, cfg.MetricsListen); err != nil {
				logger.Error().Err(err).Msg("Metrics listener failed")
			}
		}()
	}

	source, err := openSource(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("No sensor source available")
	}
	defer source.Close()

	// Steady-state reconnects are a single attempt per tick; the poll loop
	// itself provides the retry cadence and must not block between ticks
	transport := display.NewTransport(retry.Policy{MaxAttempts: 1}, retry.NewClock())
	defer transport.Close()

	// A missing display at startup gets a short grace period and is still
	// not fatal; the loop reconnects once the device shows up
	startup := retry.Policy{MaxAttempts: 3, Delay: 5 * time.Second}
	if err := retry.Do(ctx, startup, retry.NewClock(), func() error {
		return transport.Connect(ctx)
	}); err != nil {
		logger.Warn().Err(err).Msg("Display not connected yet; waiting for device")
	}

	unit := display.UnitCelsius
	if cfg.Fahrenheit() {
		unit = display.UnitFahrenheit
	}

	ctrl := controller.New(controller.Config{
		Interval:      time.Duration(cfg.Interval) * time.Second,
		CyclesPerMode: cfg.CyclesPerMode,
		Unit:          unit,
	}, source, transport, recorder)

	if err := ctrl.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
	}
}

// openSource picks the telemetry feed per configuration. Auto prefers the
// shared memory feed and falls back to local sampling when it never comes up.
func openSource(ctx context.Context) (sensor.Source, error) {
	policy := retry.Policy{MaxAttempts: 3, Delay: 5 * time.Second}
	clock := retry.NewClock()

	switch cfg.Source {
	case config.SourceLocal:
		local := sensor.NewLocalSource()
		if err := local.Open(ctx); err != nil {
			return nil, err
		}
		logger.Info().Msg("Using local hardware sampling")

		return local, nil

	case config.SourceHWiNFO:
		reader := hwinfo.NewReader(nil)
		err := retry.Do(ctx, policy, clock, func() error {
			return reader.Open(ctx)
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Using shared memory sensor feed")

		return reader, nil

	default: // auto
		reader := hwinfo.NewReader(nil)
		err := retry.Do(ctx, policy, clock, func() error {
			return reader.Open(ctx)
		})
		if err == nil {
			logger.Info().Msg("Using shared memory sensor feed")

			return reader, nil
		}
		logger.Warn().Err(err).Msg("Sensor feed unavailable; falling back to local sampling")

		local := sensor.NewLocalSource()
		if err := local.Open(ctx); err != nil {
			return nil, err
		}
		logger.Info().Msg("Using local hardware sampling")

		return local, nil
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
