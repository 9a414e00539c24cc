package log

import "time"

// Event represents a log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the link (UUID).
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Handle is the transport connection handle.
	Handle uint16 `cbor:"3,keyasint,omitempty"`

	// Peer is the peer identity in display form.
	Peer string `cbor:"4,keyasint,omitempty"`

	// Direction indicates frame flow (link layer only).
	Direction Direction `cbor:"5,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"6,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"7,keyasint"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Link layer
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"` // Connection/pairing state
	Decision    *DecisionEvent    `cbor:"12,keyasint,omitempty"` // Pairing decisions
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of frame flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming frame.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing frame.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerLink is the transport link (frames, connect/disconnect).
	LayerLink Layer = 0
	// LayerPairing is the pairing authority.
	LayerPairing Layer = 1
	// LayerStorage is the trust store.
	LayerStorage Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerLink:
		return "LINK"
	case LayerPairing:
		return "PAIRING"
	case LayerStorage:
		return "STORAGE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFrame indicates a link frame.
	CategoryFrame Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryDecision indicates an access-control decision.
	CategoryDecision Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryState:
		return "STATE"
	case CategoryDecision:
		return "DECISION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the link layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures link and pairing lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityConnection indicates a link state change.
	StateEntityConnection StateEntity = 0
	// StateEntityPairing indicates a device pairing state change.
	StateEntityPairing StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityConnection:
		return "CONNECTION"
	case StateEntityPairing:
		return "PAIRING"
	default:
		return "UNKNOWN"
	}
}

// DecisionEvent records the outcome of evaluating a connection.
type DecisionEvent struct {
	// Outcome is the decision name (e.g. "PAIRED", "REJECTED").
	Outcome string `cbor:"1,keyasint"`

	// Owner is the owner on record in display form, if known.
	Owner string `cbor:"2,keyasint,omitempty"`

	// Allowed reports whether the link was left up.
	Allowed bool `cbor:"3,keyasint"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the error code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
