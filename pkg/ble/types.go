package ble

import (
	"errors"
	"fmt"
	"time"

	"github.com/weightaware/bag-go/pkg/identity"
)

// ConnHandle identifies one live link. Handles are assigned by the host
// stack and may be reused after the link drops.
type ConnHandle uint16

// String returns the handle in decimal.
func (h ConnHandle) String() string {
	return fmt.Sprintf("%d", uint16(h))
}

// DisconnectReason is an HCI error code carried by a link termination.
type DisconnectReason uint8

// HCI reason codes used by the device.
const (
	// ReasonAuthenticationFailure reports a failed pairing procedure.
	ReasonAuthenticationFailure DisconnectReason = 0x05

	// ReasonSupervisionTimeout reports a link that went silent.
	ReasonSupervisionTimeout DisconnectReason = 0x08

	// ReasonRemoteUserTerminated is sent to a peer that is not allowed to
	// stay connected.
	ReasonRemoteUserTerminated DisconnectReason = 0x13

	// ReasonLocalHostTerminated reports a termination initiated by this side.
	ReasonLocalHostTerminated DisconnectReason = 0x16

	// ReasonConnectionFailed reports a link that never came up.
	ReasonConnectionFailed DisconnectReason = 0x3E
)

// String returns the reason name.
func (r DisconnectReason) String() string {
	switch r {
	case ReasonAuthenticationFailure:
		return "AUTHENTICATION_FAILURE"
	case ReasonSupervisionTimeout:
		return "SUPERVISION_TIMEOUT"
	case ReasonRemoteUserTerminated:
		return "REMOTE_USER_TERMINATED"
	case ReasonLocalHostTerminated:
		return "LOCAL_HOST_TERMINATED"
	case ReasonConnectionFailed:
		return "CONNECTION_FAILED"
	default:
		return fmt.Sprintf("HCI_0x%02X", uint8(r))
	}
}

// Event is a link message posted by the host stack.
type Event interface {
	// ConnHandle returns the handle of the link the event refers to.
	ConnHandle() ConnHandle
}

// ConnectEvent reports a central that established a link.
type ConnectEvent struct {
	// Handle is the handle assigned to the link.
	Handle ConnHandle

	// Peer is the identity reported for the central.
	Peer identity.DeviceIdentity

	// ConnID correlates log events for this link.
	ConnID string
}

// ConnHandle implements Event.
func (e ConnectEvent) ConnHandle() ConnHandle { return e.Handle }

// DisconnectEvent reports a link that dropped.
type DisconnectEvent struct {
	// Handle is the handle the link had.
	Handle ConnHandle

	// Peer is the identity of the central, if it was known.
	Peer identity.DeviceIdentity

	// Reason is the HCI reason reported for the termination.
	Reason DisconnectReason

	// ConnID correlates log events for this link.
	ConnID string
}

// ConnHandle implements Event.
func (e DisconnectEvent) ConnHandle() ConnHandle { return e.Handle }

// Link errors.
var (
	// ErrUnknownHandle indicates an operation on a handle with no live link.
	ErrUnknownHandle = errors.New("unknown connection handle")

	// ErrInvalidConnParams indicates connection parameters outside the HCI ranges.
	ErrInvalidConnParams = errors.New("invalid connection parameters")
)

// Link operations reported in a TransportFault.
const (
	OpDisconnect       = "disconnect"
	OpUpdateConnParams = "update_conn_params"
)

// TransportFault reports a failed request to the host stack.
type TransportFault struct {
	// Op is the failed operation (OpDisconnect, OpUpdateConnParams).
	Op string

	// Handle is the link the request targeted.
	Handle ConnHandle

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (f *TransportFault) Error() string {
	return fmt.Sprintf("transport fault: %s handle %d: %v", f.Op, f.Handle, f.Err)
}

// Unwrap returns the underlying error.
func (f *TransportFault) Unwrap() error {
	return f.Err
}

// ConnParams are the connection parameters requested from a central.
// Intervals are in units of 1.25 ms, the supervision timeout in units of 10 ms.
type ConnParams struct {
	MinInterval        uint16 `cbor:"1,keyasint" yaml:"min_interval"`
	MaxInterval        uint16 `cbor:"2,keyasint" yaml:"max_interval"`
	Latency            uint16 `cbor:"3,keyasint" yaml:"latency"`
	SupervisionTimeout uint16 `cbor:"4,keyasint" yaml:"supervision_timeout"`
}

// HCI parameter ranges.
const (
	MinConnInterval        = 6    // 7.5 ms
	MaxConnInterval        = 3200 // 4 s
	MaxPeripheralLatency   = 499
	MinSupervisionTimeout  = 10   // 100 ms
	MaxSupervisionTimeout  = 3200 // 32 s
	connIntervalUnit       = 1250 * time.Microsecond
	supervisionTimeoutUnit = 10 * time.Millisecond
)

// DefaultConnParams returns the parameters the device asks every accepted
// central for: 30-60 ms interval, no latency, 600 ms supervision timeout.
func DefaultConnParams() ConnParams {
	return ConnParams{
		MinInterval:        24,
		MaxInterval:        48,
		Latency:            0,
		SupervisionTimeout: 60,
	}
}

// Validate checks the parameters against the HCI ranges. The supervision
// timeout must exceed the effective interval (1 + latency) * max interval * 2.
func (p ConnParams) Validate() error {
	if p.MinInterval < MinConnInterval || p.MinInterval > MaxConnInterval {
		return fmt.Errorf("%w: min interval %d out of range", ErrInvalidConnParams, p.MinInterval)
	}
	if p.MaxInterval < MinConnInterval || p.MaxInterval > MaxConnInterval {
		return fmt.Errorf("%w: max interval %d out of range", ErrInvalidConnParams, p.MaxInterval)
	}
	if p.MinInterval > p.MaxInterval {
		return fmt.Errorf("%w: min interval %d > max interval %d", ErrInvalidConnParams, p.MinInterval, p.MaxInterval)
	}
	if p.Latency > MaxPeripheralLatency {
		return fmt.Errorf("%w: latency %d out of range", ErrInvalidConnParams, p.Latency)
	}
	if p.SupervisionTimeout < MinSupervisionTimeout || p.SupervisionTimeout > MaxSupervisionTimeout {
		return fmt.Errorf("%w: supervision timeout %d out of range", ErrInvalidConnParams, p.SupervisionTimeout)
	}
	if p.SupervisionTimeoutDuration() <= 2*time.Duration(1+int(p.Latency))*p.MaxIntervalDuration() {
		return fmt.Errorf("%w: supervision timeout %v too short for interval %v with latency %d",
			ErrInvalidConnParams, p.SupervisionTimeoutDuration(), p.MaxIntervalDuration(), p.Latency)
	}
	return nil
}

// MinIntervalDuration returns the minimum connection interval.
func (p ConnParams) MinIntervalDuration() time.Duration {
	return time.Duration(p.MinInterval) * connIntervalUnit
}

// MaxIntervalDuration returns the maximum connection interval.
func (p ConnParams) MaxIntervalDuration() time.Duration {
	return time.Duration(p.MaxInterval) * connIntervalUnit
}

// SupervisionTimeoutDuration returns the supervision timeout.
func (p ConnParams) SupervisionTimeoutDuration() time.Duration {
	return time.Duration(p.SupervisionTimeout) * supervisionTimeoutUnit
}

// String returns a human-readable form of the parameters.
func (p ConnParams) String() string {
	return fmt.Sprintf("interval=%v-%v latency=%d timeout=%v",
		p.MinIntervalDuration(), p.MaxIntervalDuration(), p.Latency, p.SupervisionTimeoutDuration())
}
