package config

import (
	"os"
	"strings"

	"codeberg.org/witka/biosensord/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultLogLevel = "info"

type Config struct {
	Port       string `mapstructure:"port"`
	BaudRate   int    `mapstructure:"baudrate"`
	Simulation bool   `mapstructure:"simulation"`
	I2CBus     string `mapstructure:"i2c_bus"`
	SCLPin     string `mapstructure:"scl_pin"`
	SDAPin     string `mapstructure:"sda_pin"`
	Archive    bool   `mapstructure:"archive"`
	Database   string `mapstructure:"database"`
	LogLevel   string `mapstructure:"log_level"`
	Debug      bool   `mapstructure:"debug"`
	Verbose    bool   `mapstructure:"verbose"`
}

// Load reads configuration from the TOML file (BIOSENSORD_CONFIG, /etc or
// the working directory) and lets command-line flags override it.
func Load() (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet("biosensord", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.String("port", "", "Serial port for telemetry output (empty: console only)")
	fs.Int("baudrate", 115200, "Serial baud rate")
	fs.Bool("simulation", false, "Use simulated sensors instead of hardware")
	fs.String("i2c-bus", "1", "Kernel bus for the body temperature sensor")
	fs.String("scl-pin", "GPIO3", "Clock line GPIO used for bus recovery")
	fs.String("sda-pin", "GPIO2", "Data line GPIO used for bus recovery")
	fs.Bool("archive", false, "Archive emitted records to the database")
	fs.String("database", "/var/lib/biosensord/telemetry.db", "Archive database path")
	fs.String("log-level", "", "Log level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	v := viper.New()
	v.SetDefault("port", "")
	v.SetDefault("baudrate", 115200)
	v.SetDefault("simulation", false)
	v.SetDefault("i2c_bus", "1")
	v.SetDefault("scl_pin", "GPIO3")
	v.SetDefault("sda_pin", "GPIO2")
	v.SetDefault("archive", false)
	v.SetDefault("database", "/var/lib/biosensord/telemetry.db")
	v.SetDefault("log_level", DefaultLogLevel)

	if path := os.Getenv("BIOSENSORD_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("biosensord")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errFactory.WithMessage(errors.ErrReadConfig, "Failed to read config file").WithData(err.Error())
		}
	}

	// Explicit flags override file values.
	fs.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	switch {
	case config.Debug:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case config.Verbose:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(level)
	}

	return config, nil
}

func parseLogLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warning", "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
	}
}
