package motion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Defaults matching the bag's wiring.
const (
	DefaultBus      = "i2c0"
	DefaultSDA      = 21
	DefaultSCL      = 22
	DefaultBaudrate = 100_000

	// MaxBaudrate is the I2C fast-mode-plus ceiling.
	MaxBaudrate = 1_000_000

	// MPU6050Address is the sensor's I2C address with AD0 low.
	MPU6050Address = 0x68
)

// Motion errors.
var (
	ErrInvalidConfig = errors.New("invalid motion sensor config")
	ErrNoDevice      = errors.New("no device answered on the bus")
)

// Config describes how the sensor is wired.
type Config struct {
	// Bus names the I2C peripheral.
	Bus string `yaml:"bus"`

	// SDA is the data pin.
	SDA int `yaml:"sda"`

	// SCL is the clock pin.
	SCL int `yaml:"scl"`

	// Baudrate is the bus clock in Hz.
	Baudrate int `yaml:"baudrate"`
}

// DefaultConfig returns the wiring of the production board.
func DefaultConfig() Config {
	return Config{
		Bus:      DefaultBus,
		SDA:      DefaultSDA,
		SCL:      DefaultSCL,
		Baudrate: DefaultBaudrate,
	}
}

// Validate checks the wiring.
func (c Config) Validate() error {
	if c.Bus == "" {
		return fmt.Errorf("%w: bus is required", ErrInvalidConfig)
	}
	if c.SDA < 0 || c.SCL < 0 {
		return fmt.Errorf("%w: negative pin number", ErrInvalidConfig)
	}
	if c.SDA == c.SCL {
		return fmt.Errorf("%w: sda and scl share pin %d", ErrInvalidConfig, c.SDA)
	}
	if c.Baudrate <= 0 || c.Baudrate > MaxBaudrate {
		return fmt.Errorf("%w: baudrate %d out of range (1..%d)", ErrInvalidConfig, c.Baudrate, MaxBaudrate)
	}
	return nil
}

// Sensor is a motion sensor driver.
type Sensor interface {
	// Name identifies the driver in logs.
	Name() string

	// Init opens the bus and configures the sensor.
	Init(ctx context.Context) error
}

// Initialize runs the boot step for sensor. Errors are wrapped with the
// step that failed.
func Initialize(ctx context.Context, sensor Sensor, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Info("initializing movement sensor", "driver", sensor.Name())
	start := time.Now()
	if err := sensor.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", sensor.Name(), err)
	}
	logger.Info("movement sensor ready", "driver", sensor.Name(), "took", time.Since(start))
	return nil
}

// SimSensor stands in for the MPU-6050 when no hardware is attached.
type SimSensor struct {
	config Config

	// Present controls whether the simulated device answers.
	Present bool

	// Delay simulates the power-up time of the sensor.
	Delay time.Duration

	mu          sync.Mutex
	initialized bool
}

// NewSimSensor creates a simulated sensor wired as config.
func NewSimSensor(config Config) *SimSensor {
	return &SimSensor{config: config, Present: true}
}

// Name implements Sensor.
func (s *SimSensor) Name() string {
	return fmt.Sprintf("mpu6050@%s:0x%02x", s.config.Bus, MPU6050Address)
}

// Init implements Sensor.
func (s *SimSensor) Init(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("failed to initialize i2c driver: %w", err)
	}

	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if !s.Present {
		return fmt.Errorf("%w at 0x%02x", ErrNoDevice, MPU6050Address)
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// Initialized reports whether Init succeeded.
func (s *SimSensor) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Compile-time interface satisfaction check.
var _ Sensor = (*SimSensor)(nil)
