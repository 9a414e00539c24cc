package motion

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"no bus", func(c *Config) { c.Bus = "" }, true},
		{"negative pin", func(c *Config) { c.SDA = -1 }, true},
		{"shared pin", func(c *Config) { c.SCL = c.SDA }, true},
		{"zero baud", func(c *Config) { c.Baudrate = 0 }, true},
		{"too fast", func(c *Config) { c.Baudrate = MaxBaudrate + 1 }, true},
		{"fast mode", func(c *Config) { c.Baudrate = 400_000 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitializeSimSensor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := NewSimSensor(DefaultConfig())
	require.NoError(t, Initialize(context.Background(), s, logger))
	assert.True(t, s.Initialized())
	assert.Contains(t, buf.String(), "movement sensor ready")
	assert.Contains(t, buf.String(), "mpu6050@i2c0:0x68")
}

func TestInitializeFailures(t *testing.T) {
	t.Run("absent device", func(t *testing.T) {
		s := NewSimSensor(DefaultConfig())
		s.Present = false
		err := Initialize(context.Background(), s, nil)
		assert.ErrorIs(t, err, ErrNoDevice)
		assert.Contains(t, err.Error(), "failed to initialize mpu6050")
		assert.False(t, s.Initialized())
	})

	t.Run("bad wiring", func(t *testing.T) {
		c := DefaultConfig()
		c.Baudrate = 0
		err := Initialize(context.Background(), NewSimSensor(c), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
		assert.Contains(t, err.Error(), "i2c driver")
	})

	t.Run("cancelled during power-up", func(t *testing.T) {
		s := NewSimSensor(DefaultConfig())
		s.Delay = time.Hour
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, Initialize(ctx, s, nil), context.Canceled)
	})
}
