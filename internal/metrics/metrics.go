// Package metrics exposes the daemon's poll loop counters and the last
// observed sensor values as Prometheus metrics. The HTTP listener is
// opt-in; when no listen address is configured nothing is served and
// recording is a cheap in-process update.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/saanuregh/deepcool-ch170/internal/sensor"
)

// Stage labels a poll loop failure site
const (
	StageSensor = "sensor"
	StageWrite  = "write"
)

// Recorder collects poll loop activity on its own registry
type Recorder struct {
	registry *prometheus.Registry

	pollCycles    prometheus.Counter
	pollErrors    *prometheus.CounterVec
	framesWritten prometheus.Counter
	writeFailures prometheus.Counter
	reconnects    prometheus.Counter
	sensorValues  *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pollCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deepcool_poll_cycles_total",
			Help: "Poll ticks executed",
		}),
		pollErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deepcool_poll_errors_total",
			Help: "Poll ticks that failed, by stage",
		}, []string{"stage"}),
		framesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deepcool_frames_written_total",
			Help: "Frames successfully written to the display",
		}),
		writeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deepcool_write_failures_total",
			Help: "Frame writes rejected by the device",
		}),
		reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deepcool_reconnects_total",
			Help: "Successful reconnects after a connection failure",
		}),
		sensorValues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "deepcool_sensor_value",
			Help: "Last observed sensor value, by field",
		}, []string{"field"}),
	}

	r.registry.MustRegister(
		r.pollCycles,
		r.pollErrors,
		r.framesWritten,
		r.writeFailures,
		r.reconnects,
		r.sensorValues,
	)

	return r
}

// PollCycle records one completed poll tick
func (r *Recorder) PollCycle() {
	r.pollCycles.Inc()
}

// PollError records a failed tick at the given stage
func (r *Recorder) PollError(stage string) {
	r.pollErrors.WithLabelValues(stage).Inc()
	if stage == StageWrite {
		r.writeFailures.Inc()
	}
}

// FrameWritten records a frame accepted by the display
func (r *Recorder) FrameWritten() {
	r.framesWritten.Inc()
}

// Reconnect records a successful recovery of the HID connection
func (r *Recorder) Reconnect() {
	r.reconnects.Inc()
}

// ObserveSnapshot exports the snapshot's valid readings. Absent readings
// keep their previous gauge value rather than reporting zero.
func (r *Recorder) ObserveSnapshot(snap *sensor.Snapshot) {
	fields := []struct {
		name    string
		reading sensor.Reading
	}{
		{"cpu_temperature", snap.CPUTemperature},
		{"cpu_power", snap.CPUPower},
		{"cpu_usage", snap.CPUUsage},
		{"cpu_frequency", snap.CPUFrequency},
		{"cpu_fan_rpm", snap.CPUFanRPM},
		{"gpu_temperature", snap.GPUTemperature},
		{"gpu_power", snap.GPUPower},
		{"gpu_usage", snap.GPUUsage},
		{"gpu_frequency", snap.GPUFrequency},
	}
	for _, f := range fields {
		if f.reading.Valid {
			r.sensorValues.WithLabelValues(f.name).Set(f.reading.Value)
		}
	}
}

// Handler serves the recorder's registry
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	errFactory := errors.New()

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info().Str("addr", addr).Msg("Metrics listener started")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errFactory.Wrap(errors.ErrServeMetrics, err)
		}

		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errFactory.Wrap(errors.ErrServeMetrics, err)
		}

		return nil
	}
}
