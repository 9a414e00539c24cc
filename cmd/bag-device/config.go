package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/discovery"
	"github.com/weightaware/bag-go/pkg/motion"
	"github.com/weightaware/bag-go/pkg/transport"
)

// Config holds the device configuration.
type Config struct {
	// DataDir is the root of the storage partition.
	DataDir string `yaml:"data_dir"`

	// Ephemeral keeps the trust record in memory only.
	Ephemeral bool `yaml:"ephemeral"`

	// EraseOnCorrupt erases an unreadable namespace instead of refusing to boot.
	EraseOnCorrupt bool `yaml:"erase_on_corrupt"`

	// DeviceName is the advertised name.
	DeviceName string `yaml:"device_name"`

	// ListenAddress is the link simulator address.
	ListenAddress string `yaml:"listen_address"`

	MDNS MDNSConfig `yaml:"mdns"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ProtocolLog is the path of a .blog capture file (optional).
	ProtocolLog string `yaml:"protocol_log"`

	ConnParams  ble.ConnParams              `yaml:"conn_params"`
	Supervision transport.SupervisionConfig `yaml:"supervision"`
	Motion      MotionConfig                `yaml:"motion"`

	// Interactive starts the command console.
	Interactive bool `yaml:"interactive"`
}

// MDNSConfig configures advertising of the link simulator.
type MDNSConfig struct {
	Enabled bool `yaml:"enabled"`

	discovery.AdvertiserConfig `yaml:",inline"`
}

// MotionConfig configures the movement sensor.
type MotionConfig struct {
	// Simulated replaces the sensor with a simulation that always answers.
	// When false the simulation reports no device.
	Simulated bool `yaml:"simulated"`

	motion.Config `yaml:",inline"`
}

// defaultConfig returns the configuration used when nothing is set.
func defaultConfig() Config {
	return Config{
		DataDir:       "bag-data",
		DeviceName:    ble.DeviceName,
		ListenAddress: transport.DefaultAddress,
		MDNS: MDNSConfig{
			Enabled:          true,
			AdvertiserConfig: discovery.DefaultAdvertiserConfig(),
		},
		LogLevel:    "info",
		ConnParams:  ble.DefaultConnParams(),
		Supervision: transport.DefaultSupervisionConfig(),
		Motion: MotionConfig{
			Simulated: true,
			Config:    motion.DefaultConfig(),
		},
	}
}

// loadConfig builds the configuration from defaults, the optional YAML
// file named by -config, and finally the flags given on the command line.
func loadConfig(args []string, output io.Writer) (Config, error) {
	config := defaultConfig()
	var flagged Config
	var configFile string

	fs := flag.NewFlagSet("bag-device", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&configFile, "config", "", "Configuration file path (YAML)")
	fs.StringVar(&flagged.DataDir, "data-dir", config.DataDir, "Storage partition directory")
	fs.BoolVar(&flagged.Ephemeral, "ephemeral", false, "Keep the trust record in memory only")
	fs.BoolVar(&flagged.EraseOnCorrupt, "erase-on-corrupt", false, "Erase unreadable storage instead of failing")
	fs.StringVar(&flagged.DeviceName, "name", config.DeviceName, "Advertised device name")
	fs.StringVar(&flagged.ListenAddress, "listen", config.ListenAddress, "Link simulator listen address")
	fs.BoolVar(&flagged.MDNS.Enabled, "mdns", config.MDNS.Enabled, "Advertise the link simulator via mDNS")
	fs.StringVar(&flagged.MDNS.Interface, "mdns-interface", "", "Network interface for mDNS (default: all)")
	fs.StringVar(&flagged.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&flagged.ProtocolLog, "protocol-log", "", "Write a protocol capture to this .blog file")
	fs.BoolVar(&flagged.Interactive, "interactive", false, "Start the interactive console")
	fs.BoolVar(&flagged.Motion.Simulated, "sim-motion", config.Motion.Simulated, "Simulate the movement sensor")
	fs.StringVar(&flagged.Motion.Bus, "i2c-bus", config.Motion.Bus, "I2C bus of the movement sensor")
	fs.IntVar(&flagged.Motion.SDA, "i2c-sda", config.Motion.SDA, "I2C data pin")
	fs.IntVar(&flagged.Motion.SCL, "i2c-scl", config.Motion.SCL, "I2C clock pin")
	fs.IntVar(&flagged.Motion.Baudrate, "i2c-baud", config.Motion.Baudrate, "I2C clock in Hz")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if configFile != "" {
		if err := readConfigFile(configFile, &config); err != nil {
			return Config{}, err
		}
	}

	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data-dir":
			config.DataDir = flagged.DataDir
		case "ephemeral":
			config.Ephemeral = flagged.Ephemeral
		case "erase-on-corrupt":
			config.EraseOnCorrupt = flagged.EraseOnCorrupt
		case "name":
			config.DeviceName = flagged.DeviceName
		case "listen":
			config.ListenAddress = flagged.ListenAddress
		case "mdns":
			config.MDNS.Enabled = flagged.MDNS.Enabled
		case "mdns-interface":
			config.MDNS.Interface = flagged.MDNS.Interface
		case "log-level":
			config.LogLevel = flagged.LogLevel
		case "protocol-log":
			config.ProtocolLog = flagged.ProtocolLog
		case "interactive":
			config.Interactive = flagged.Interactive
		case "sim-motion":
			config.Motion.Simulated = flagged.Motion.Simulated
		case "i2c-bus":
			config.Motion.Bus = flagged.Motion.Bus
		case "i2c-sda":
			config.Motion.SDA = flagged.Motion.SDA
		case "i2c-scl":
			config.Motion.SCL = flagged.Motion.SCL
		case "i2c-baud":
			config.Motion.Baudrate = flagged.Motion.Baudrate
		}
	})

	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// readConfigFile decodes a YAML file over config. Keys absent from the
// file keep their current values.
func readConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.DataDir == "" && !c.Ephemeral {
		return errors.New("data dir is required unless running ephemeral")
	}
	if c.ListenAddress == "" {
		return errors.New("listen address is required")
	}
	if err := discovery.ValidateInstanceName(c.DeviceName); err != nil {
		return fmt.Errorf("invalid device name: %w", err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := c.ConnParams.Validate(); err != nil {
		return fmt.Errorf("invalid connection parameters: %w", err)
	}
	if c.Supervision.Enabled() && (c.Supervision.PongTimeout <= 0 || c.Supervision.MaxMissed <= 0) {
		return errors.New("supervision needs pong_timeout and max_missed")
	}
	if err := c.Motion.Validate(); err != nil {
		return err
	}
	return nil
}

// parseLogLevel maps a level name to its slog level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
	}
}
