package main

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weightaware/bag-go/pkg/ble"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := loadConfig(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), config)
	assert.Equal(t, ble.DeviceName, config.DeviceName)
	assert.Equal(t, ble.DefaultConnParams(), config.ConnParams)
	assert.True(t, config.MDNS.Enabled)
	assert.True(t, config.Motion.Simulated)
	assert.Equal(t, "i2c0", config.Motion.Bus)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
data_dir: /var/lib/bag
device_name: Hall Bag
listen_address: 0.0.0.0:7500
log_level: debug
mdns:
  enabled: false
  interface: eth0
  ttl: 60s
conn_params:
  min_interval: 40
  max_interval: 80
  latency: 2
  supervision_timeout: 400
supervision:
  ping_interval: 2s
  pong_timeout: 1s
  max_missed: 5
motion:
  bus: i2c1
  sda: 4
  scl: 5
  baudrate: 400000
`)

	config, err := loadConfig([]string{"-config", path}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/bag", config.DataDir)
	assert.Equal(t, "Hall Bag", config.DeviceName)
	assert.Equal(t, "0.0.0.0:7500", config.ListenAddress)
	assert.Equal(t, "debug", config.LogLevel)
	assert.False(t, config.MDNS.Enabled)
	assert.Equal(t, "eth0", config.MDNS.Interface)
	assert.Equal(t, 60*time.Second, config.MDNS.TTL)
	assert.Equal(t, ble.ConnParams{MinInterval: 40, MaxInterval: 80, Latency: 2, SupervisionTimeout: 400}, config.ConnParams)
	assert.Equal(t, 2*time.Second, config.Supervision.PingInterval)
	assert.Equal(t, 5, config.Supervision.MaxMissed)
	assert.Equal(t, "i2c1", config.Motion.Bus)
	assert.Equal(t, 400000, config.Motion.Baudrate)

	// Keys the file leaves out keep their defaults.
	assert.True(t, config.Motion.Simulated)
	assert.False(t, config.Interactive)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, `
device_name: From File
log_level: warn
listen_address: 127.0.0.1:9000
`)

	config, err := loadConfig([]string{
		"-config", path,
		"-name", "From Flag",
		"-ephemeral",
		"-mdns=false",
		"-i2c-baud", "400000",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "From Flag", config.DeviceName)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "127.0.0.1:9000", config.ListenAddress)
	assert.True(t, config.Ephemeral)
	assert.False(t, config.MDNS.Enabled)
	assert.Equal(t, 400000, config.Motion.Baudrate)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		file string
	}{
		{name: "bad log level", args: []string{"-log-level", "loud"}},
		{name: "no data dir", args: []string{"-data-dir", ""}},
		{name: "empty name", args: []string{"-name", ""}},
		{name: "long name", args: []string{"-name", "a-very-long-device-name-that-does-not-fit-into-a-single-dns-label"}},
		{name: "bad baud", args: []string{"-i2c-baud", "0"}},
		{name: "stray argument", args: []string{"extra"}},
		{name: "unknown flag", args: []string{"-radio"}},
		{name: "missing file", args: []string{"-config", "/nonexistent/bag.yaml"}},
		{name: "bad params", file: "conn_params:\n  min_interval: 1\n"},
		{name: "half supervision", file: "supervision:\n  ping_interval: 1s\n  pong_timeout: 0s\n"},
		{name: "bad yaml", file: "device_name: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.file != "" {
				args = append([]string{"-config", writeConfigFile(t, tt.file)}, args...)
			}
			_, err := loadConfig(args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigEphemeralNeedsNoDataDir(t *testing.T) {
	config, err := loadConfig([]string{"-data-dir", "", "-ephemeral"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, config.Ephemeral)
}

func TestLoadConfigHelp(t *testing.T) {
	_, err := loadConfig([]string{"-h"}, io.Discard)
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}

func TestSetupProtocolLog(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelInfo}))
	verbose := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

	config := defaultConfig()
	logger, closeFn, err := setupProtocolLog(config, quiet)
	require.NoError(t, err)
	assert.Nil(t, logger)
	closeFn()

	config.ProtocolLog = filepath.Join(t.TempDir(), "capture.blog")
	logger, closeFn, err = setupProtocolLog(config, verbose)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	closeFn()

	_, err = os.Stat(config.ProtocolLog)
	assert.NoError(t, err)
}
