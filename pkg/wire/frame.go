package wire

import (
	"errors"
	"fmt"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
)

// FrameType identifies a link frame.
type FrameType uint8

const (
	// FrameHello opens a link (central to peripheral).
	FrameHello FrameType = 1

	// FrameConnected confirms a link and carries its handle (peripheral to central).
	FrameConnected FrameType = 2

	// FrameConnParams requests new connection parameters (peripheral to central).
	FrameConnParams FrameType = 3

	// FrameTerminate ends a link with a reason (either direction).
	FrameTerminate FrameType = 4

	// FramePing probes link supervision (peripheral to central).
	FramePing FrameType = 5

	// FramePong answers a ping with the same sequence number.
	FramePong FrameType = 6
)

// String returns the frame type name.
func (t FrameType) String() string {
	switch t {
	case FrameHello:
		return "HELLO"
	case FrameConnected:
		return "CONNECTED"
	case FrameConnParams:
		return "CONN_PARAMS"
	case FrameTerminate:
		return "TERMINATE"
	case FramePing:
		return "PING"
	case FramePong:
		return "PONG"
	default:
		return fmt.Sprintf("FRAME_%d", uint8(t))
	}
}

// Frame validation errors.
var (
	ErrUnknownFrameType = errors.New("unknown frame type")
	ErrMissingField     = errors.New("missing field")
)

// PeerAddress is a device identity as carried on the wire.
// Address holds the six little-endian address bytes.
type PeerAddress struct {
	Address []byte `cbor:"1,keyasint"`
	Kind    uint8  `cbor:"2,keyasint"`
}

// NewPeerAddress converts an identity for the wire.
func NewPeerAddress(id identity.DeviceIdentity) *PeerAddress {
	b := id.LEBytes()
	return &PeerAddress{Address: b[:], Kind: uint8(id.Kind)}
}

// Identity converts the wire form back into an identity.
func (p *PeerAddress) Identity() (identity.DeviceIdentity, error) {
	kind := identity.AddressKind(p.Kind)
	if !kind.Valid() {
		return identity.DeviceIdentity{}, fmt.Errorf("%w: %d", identity.ErrInvalidKind, p.Kind)
	}
	return identity.FromSlice(p.Address, kind)
}

// Frame is one message on the simulated link.
type Frame struct {
	Type    FrameType       `cbor:"1,keyasint"`
	Seq     uint32          `cbor:"2,keyasint,omitempty"`
	Peer    *PeerAddress    `cbor:"3,keyasint,omitempty"`
	Handle  uint16          `cbor:"4,keyasint,omitempty"`
	Params  *ble.ConnParams `cbor:"5,keyasint,omitempty"`
	Reason  uint8           `cbor:"6,keyasint,omitempty"`
	Version string          `cbor:"7,keyasint,omitempty"`
}

// Validate checks that the fields required by the frame type are present.
func (f *Frame) Validate() error {
	switch f.Type {
	case FrameHello:
		if f.Peer == nil {
			return fmt.Errorf("%w: hello without peer", ErrMissingField)
		}
		if f.Version == "" {
			return fmt.Errorf("%w: hello without version", ErrMissingField)
		}
		if _, err := f.Peer.Identity(); err != nil {
			return err
		}
	case FrameConnected:
		// Handle 0 is a valid handle.
	case FrameConnParams:
		if f.Params == nil {
			return fmt.Errorf("%w: conn_params without params", ErrMissingField)
		}
	case FrameTerminate, FramePing, FramePong:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFrameType, f.Type)
	}
	return nil
}

// Hello returns a hello frame announcing id.
func Hello(id identity.DeviceIdentity, version string) *Frame {
	return &Frame{Type: FrameHello, Peer: NewPeerAddress(id), Version: version}
}

// Connected returns a connected frame for handle.
func Connected(handle ble.ConnHandle) *Frame {
	return &Frame{Type: FrameConnected, Handle: uint16(handle)}
}

// ConnParams returns a connection parameter request.
func ConnParams(params ble.ConnParams) *Frame {
	return &Frame{Type: FrameConnParams, Params: &params}
}

// Terminate returns a terminate frame with reason.
func Terminate(reason ble.DisconnectReason) *Frame {
	return &Frame{Type: FrameTerminate, Reason: uint8(reason)}
}

// Ping returns a supervision ping.
func Ping(seq uint32) *Frame {
	return &Frame{Type: FramePing, Seq: seq}
}

// Pong returns the answer to a ping.
func Pong(seq uint32) *Frame {
	return &Frame{Type: FramePong, Seq: seq}
}
