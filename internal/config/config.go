package config

import (
	"os"
	"strings"

	"github.com/saanuregh/deepcool-ch170/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval      = 2
	DefaultCyclesPerMode = 5
	DefaultSource        = SourceAuto
	DefaultTempUnit      = TempUnitCelsius
)

// Sensor source selection
const (
	SourceAuto   = "auto"
	SourceHWiNFO = "hwinfo"
	SourceLocal  = "local"
)

// Temperature unit selection
const (
	TempUnitCelsius    = "celsius"
	TempUnitFahrenheit = "fahrenheit"
)

type Config struct {
	Interval        int    `mapstructure:"interval"`
	CyclesPerMode   int    `mapstructure:"cycles-per-mode"`
	TemperatureUnit string `mapstructure:"temperature-unit"`
	Source          string `mapstructure:"source"`
	MetricsListen   string `mapstructure:"metrics-listen"`
	Debug           bool   `mapstructure:"debug"`
	Verbose         bool   `mapstructure:"verbose"`
}

// Load reads configuration from command line flags and DEEPCOOL_* environment
// variables. Configuration files are not read.
func Load() (*Config, error) {
	errFactory := errors.New()

	flags := pflag.NewFlagSet("deepcool-ch170", pflag.ContinueOnError)
	flags.Int("interval", DefaultInterval, "Fallback polling interval in seconds when the sensor feed does not advertise one")
	flags.Int("cycles-per-mode", DefaultCyclesPerMode, "Number of polling cycles before switching display mode")
	flags.String("temperature-unit", DefaultTempUnit, "Temperature unit shown on the display (celsius or fahrenheit)")
	flags.String("source", DefaultSource, "Sensor source (auto, hwinfo or local)")
	flags.String("metrics-listen", "", "Listen address for the Prometheus endpoint (empty disables it)")
	flags.Bool("debug", false, "Enable debugging mode")
	flags.Bool("verbose", false, "Enable verbose logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v.SetEnvPrefix("DEEPCOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval < 1 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.CyclesPerMode < 1 {
		return errFactory.WithData(errors.ErrInvalidCyclesPerMode, c.CyclesPerMode)
	}

	switch c.Source {
	case SourceAuto, SourceHWiNFO, SourceLocal:
	default:
		return errFactory.WithData(errors.ErrInvalidSensorSource, c.Source)
	}

	switch c.TemperatureUnit {
	case TempUnitCelsius, TempUnitFahrenheit:
	default:
		return errFactory.WithData(errors.ErrInvalidTempUnit, c.TemperatureUnit)
	}

	return nil
}

// Fahrenheit reports whether the display should render temperatures in Fahrenheit
func (c *Config) Fahrenheit() bool {
	return c.TemperatureUnit == TempUnitFahrenheit
}
