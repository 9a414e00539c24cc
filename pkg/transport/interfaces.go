package transport

import (
	"context"
	"net"

	"github.com/weightaware/bag-go/pkg/ble"
)

// EventSink receives link events from the server.
// Implemented by ble.Dispatcher.
type EventSink interface {
	Post(ev ble.Event) error
}

// LinkServer is the peripheral side of the simulated radio.
// Implemented by Server.
type LinkServer interface {
	// Start begins accepting links.
	Start(ctx context.Context) error

	// Stop terminates all links and stops accepting new ones.
	Stop() error

	// Addr returns the listen address.
	Addr() net.Addr

	// Disconnect terminates the link with the given reason.
	Disconnect(handle ble.ConnHandle, reason ble.DisconnectReason) error

	// UpdateConnParams asks the central of a link for new parameters.
	UpdateConnParams(handle ble.ConnHandle, params ble.ConnParams) error

	// Links returns a snapshot of the live links.
	Links() []LinkInfo
}

// FrameReadWriter provides length-prefixed frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	ReadFrame() ([]byte, error)
	WriteFrame(data []byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ LinkServer      = (*Server)(nil)
	_ FrameReadWriter = (*Framer)(nil)
	_ EventSink       = (*ble.Dispatcher)(nil)
)
