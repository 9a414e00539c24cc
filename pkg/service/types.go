package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/pairing"
	"github.com/weightaware/bag-go/pkg/transport"
)

// Service errors.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrAlreadyStarted = errors.New("service already started")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNoPartition    = errors.New("storage partition is required")
)

// ServiceState represents the service state.
type ServiceState uint8

const (
	// StateIdle - service created but not started.
	StateIdle ServiceState = iota

	// StateStarting - service is booting.
	StateStarting

	// StateRunning - service is running normally.
	StateRunning

	// StateStopping - service is shutting down.
	StateStopping

	// StateStopped - service has stopped.
	StateStopped
)

// String returns the state name.
func (s ServiceState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateStarting:
		return "STARTING"
	case StateRunning:
		return "RUNNING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}

// DeviceConfig configures a DeviceService.
type DeviceConfig struct {
	// ListenAddress is the link simulator address (e.g., "127.0.0.1:7430").
	ListenAddress string

	// DeviceName is the advertised device name.
	DeviceName string

	// ConnParams are requested from every allowed central.
	ConnParams ble.ConnParams

	// Supervision configures link supervision. Zero disables it.
	Supervision transport.SupervisionConfig

	// EventQueueSize bounds the pending link events (default: 16).
	EventQueueSize int

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger captures link and pairing events (optional).
	ProtocolLogger log.Logger
}

// DefaultDeviceConfig returns a DeviceConfig with sensible defaults.
func DefaultDeviceConfig() DeviceConfig {
	return DeviceConfig{
		ListenAddress:  transport.DefaultAddress,
		DeviceName:     ble.DeviceName,
		ConnParams:     ble.DefaultConnParams(),
		Supervision:    transport.DefaultSupervisionConfig(),
		EventQueueSize: ble.DefaultQueueSize,
	}
}

// Validate checks the configuration.
func (c DeviceConfig) Validate() error {
	if c.ListenAddress == "" {
		return fmt.Errorf("%w: listen address is required", ErrInvalidConfig)
	}
	if c.DeviceName == "" {
		return fmt.Errorf("%w: device name is required", ErrInvalidConfig)
	}
	if err := c.ConnParams.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Supervision.Enabled() && (c.Supervision.PongTimeout <= 0 || c.Supervision.MaxMissed <= 0) {
		return fmt.Errorf("%w: supervision needs a pong timeout and a miss limit", ErrInvalidConfig)
	}
	if c.EventQueueSize < 0 {
		return fmt.Errorf("%w: negative event queue size", ErrInvalidConfig)
	}
	return nil
}

// EventType identifies a service event.
type EventType uint8

const (
	// EventConnected - a central connected and was decided on.
	EventConnected EventType = iota

	// EventDisconnected - a link dropped.
	EventDisconnected

	// EventPaired - the first central was recorded as owner.
	EventPaired
)

// String returns the event type name.
func (e EventType) String() string {
	switch e {
	case EventConnected:
		return "CONNECTED"
	case EventDisconnected:
		return "DISCONNECTED"
	case EventPaired:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

// Event represents a service event.
type Event struct {
	// Type is the event type.
	Type EventType

	// Handle is the link handle.
	Handle ble.ConnHandle

	// Peer is the central's identity.
	Peer identity.DeviceIdentity

	// Decision is the pairing outcome (for connect events).
	Decision pairing.Decision

	// Reason is the termination reason (for disconnect events).
	Reason ble.DisconnectReason
}

// EventHandler handles service events.
type EventHandler func(Event)
