package sensor

import (
	"context"
	"strings"
	"time"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/saanuregh/deepcool-ch170/internal/logger"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

const milliWattsToWatts = 1000

// cpuTempKeys are hwmon sensor key fragments that identify the CPU package
// temperature across common platform drivers.
var cpuTempKeys = []string{
	"k10temp_tctl",
	"zenpower_tdie",
	"coretemp_package",
	"cpu_thermal",
}

// LocalSource samples the host directly: CPU metrics via gopsutil and GPU
// metrics via NVML. It is the fallback when the HWiNFO feed is not in use.
// Metrics the host cannot provide (CPU package power, cooler RPM) stay absent.
type LocalSource struct {
	device nvml.Device
	nvmlUp bool
	open   bool
}

func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (s *LocalSource) Open(_ context.Context) error {
	if s.open {
		return nil
	}

	if ret := nvml.Init(); ret == nvml.SUCCESS {
		device, ret := nvml.DeviceGetHandleByIndex(0)
		if ret == nvml.SUCCESS {
			s.device = device
			s.nvmlUp = true
			if name, ret := device.GetName(); ret == nvml.SUCCESS {
				logger.Info().Msgf("Detected GPU: %v", name)
			}
		} else {
			logger.Warn().Msgf("No NVML device found, GPU readings unavailable: %v", nvml.ErrorString(ret))
			_ = nvml.Shutdown()
		}
	} else {
		logger.Warn().Msg("NVML unavailable, GPU readings unavailable")
	}

	s.open = true

	return nil
}

func (s *LocalSource) Snapshot(ctx context.Context) (*Snapshot, error) {
	errFactory := errors.New()
	if !s.open {
		return nil, errFactory.New(ErrNotOpen)
	}

	snap := &Snapshot{TakenAt: time.Now()}

	if usage, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(usage) > 0 {
		snap.CPUUsage = NewReading(usage[0])
	}

	if info, err := cpu.InfoWithContext(ctx); err == nil && len(info) > 0 && info[0].Mhz > 0 {
		snap.CPUFrequency = NewReading(info[0].Mhz)
	}

	if temps, err := host.SensorsTemperaturesWithContext(ctx); err == nil {
		if temp, ok := matchCPUTemperature(temps); ok {
			snap.CPUTemperature = NewReading(temp)
		}
	}

	if s.nvmlUp {
		s.sampleGPU(snap)
	}

	return snap, nil
}

func (s *LocalSource) sampleGPU(snap *Snapshot) {
	if temp, ret := s.device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		snap.GPUTemperature = NewReading(float64(temp))
	}

	if power, ret := s.device.GetPowerUsage(); ret == nvml.SUCCESS {
		snap.GPUPower = NewReading(float64(power) / milliWattsToWatts)
	}

	if util, ret := s.device.GetUtilizationRates(); ret == nvml.SUCCESS {
		snap.GPUUsage = NewReading(float64(util.Gpu))
	}

	if clock, ret := s.device.GetClockInfo(nvml.CLOCK_GRAPHICS); ret == nvml.SUCCESS {
		snap.GPUFrequency = NewReading(float64(clock))
	}
}

func (s *LocalSource) Close() error {
	if !s.open {
		return nil
	}

	s.open = false

	if s.nvmlUp {
		s.nvmlUp = false
		if ret := nvml.Shutdown(); ret != nvml.SUCCESS {
			errFactory := errors.New()
			return errFactory.WithData(errors.ErrShutdownFailed, nvml.ErrorString(ret))
		}
	}

	return nil
}

func matchCPUTemperature(temps []host.TemperatureStat) (float64, bool) {
	for _, key := range cpuTempKeys {
		for _, t := range temps {
			if strings.Contains(strings.ToLower(t.SensorKey), key) {
				return t.Temperature, true
			}
		}
	}

	return 0, false
}
