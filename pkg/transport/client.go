package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/version"
	"github.com/weightaware/bag-go/pkg/wire"
)

// DefaultDialTimeout bounds Dial when the context has no deadline.
const DefaultDialTimeout = 5 * time.Second

// Client errors.
var (
	// ErrRejected indicates the peripheral terminated the link during the handshake.
	ErrRejected = errors.New("link rejected")

	// ErrLinkClosed indicates the link ended without a terminate frame.
	ErrLinkClosed = errors.New("link closed")
)

// DialConfig configures the central side of a link.
type DialConfig struct {
	// Timeout bounds the handshake (default: 5s).
	Timeout time.Duration

	// MaxMessageSize is the maximum frame size (default: 517).
	MaxMessageSize uint32

	// Version is the link protocol version announced (default: version.Current).
	Version string

	// IgnorePings leaves supervision pings unanswered, simulating a central
	// that went out of range.
	IgnorePings bool

	// ProtocolLogger captures frames (optional).
	ProtocolLogger log.Logger
}

// ClientConn is the central side of one link.
type ClientConn struct {
	conn   net.Conn
	framer *Framer
	handle ble.ConnHandle
	peer   identity.DeviceIdentity
	config DialConfig

	params chan ble.ConnParams
	done   chan struct{}

	closeOnce sync.Once

	mu         sync.Mutex
	last       *ble.ConnParams
	terminated bool
	termReason ble.DisconnectReason
}

// Dial connects to a link simulator at address as the central peer.
// It returns once the peripheral assigned a connection handle.
func Dial(ctx context.Context, address string, peer identity.DeviceIdentity, config DialConfig) (*ClientConn, error) {
	if config.Timeout == 0 {
		config.Timeout = DefaultDialTimeout
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.Version == "" {
		config.Version = version.Current
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	framer := NewFramerWithMaxSize(conn, config.MaxMessageSize)
	if config.ProtocolLogger != nil {
		framer.SetLogger(config.ProtocolLogger, "")
	}

	handle, err := clientHandshake(ctx, conn, framer, peer, config.Version)
	if err != nil {
		conn.Close()
		return nil, err
	}
	framer.SetLink(uint16(handle), peer.String())

	c := &ClientConn{
		conn:   conn,
		framer: framer,
		handle: handle,
		peer:   peer,
		config: config,
		params: make(chan ble.ConnParams, 8),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func clientHandshake(ctx context.Context, conn net.Conn, framer *Framer, peer identity.DeviceIdentity, ver string) (ble.ConnHandle, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
		defer conn.SetDeadline(time.Time{})
	}

	if err := sendFrame(framer, wire.Hello(peer, ver)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	data, err := framer.ReadFrame()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	f, err := wire.DecodeFrame(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	switch f.Type {
	case wire.FrameConnected:
		return ble.ConnHandle(f.Handle), nil
	case wire.FrameTerminate:
		return 0, fmt.Errorf("%w: %s", ErrRejected, ble.DisconnectReason(f.Reason))
	default:
		return 0, fmt.Errorf("%w: expected CONNECTED, got %s", ErrHandshake, f.Type)
	}
}

// Handle returns the connection handle assigned by the peripheral.
func (c *ClientConn) Handle() ble.ConnHandle {
	return c.handle
}

// Peer returns the identity announced for this central.
func (c *ClientConn) Peer() identity.DeviceIdentity {
	return c.peer
}

// ConnParamsUpdates delivers parameter requests from the peripheral.
// Requests arriving while the channel is full are only kept as the last value.
func (c *ClientConn) ConnParamsUpdates() <-chan ble.ConnParams {
	return c.params
}

// LastConnParams returns the most recent parameter request.
func (c *ClientConn) LastConnParams() (ble.ConnParams, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return ble.ConnParams{}, false
	}
	return *c.last, true
}

// Done is closed when the link has ended.
func (c *ClientConn) Done() <-chan struct{} {
	return c.done
}

// TerminateReason returns the reason sent by the peripheral, if it
// terminated the link.
func (c *ClientConn) TerminateReason() (ble.DisconnectReason, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.termReason, c.terminated
}

// Wait blocks until the link ends. It returns the peripheral's terminate
// reason, or ErrLinkClosed if the link ended without one.
func (c *ClientConn) Wait(ctx context.Context) (ble.DisconnectReason, error) {
	select {
	case <-c.done:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	if reason, ok := c.TerminateReason(); ok {
		return reason, nil
	}
	return 0, ErrLinkClosed
}

// Close terminates the link from the central side.
func (c *ClientConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		_ = sendFrame(c.framer, wire.Terminate(ble.ReasonRemoteUserTerminated))
		err = c.conn.Close()
	})
	return err
}

// Abort drops the stream without a terminate frame, like a central that
// went out of range.
func (c *ClientConn) Abort() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

func (c *ClientConn) readLoop() {
	defer close(c.done)

	for {
		data, err := c.framer.ReadFrame()
		if err != nil {
			c.closeOnce.Do(func() { c.conn.Close() })
			return
		}

		f, err := wire.DecodeFrame(data)
		if err != nil {
			continue
		}

		switch f.Type {
		case wire.FrameConnParams:
			c.mu.Lock()
			p := *f.Params
			c.last = &p
			c.mu.Unlock()
			select {
			case c.params <- p:
			default:
			}
		case wire.FrameTerminate:
			c.mu.Lock()
			c.terminated = true
			c.termReason = ble.DisconnectReason(f.Reason)
			c.mu.Unlock()
			c.closeOnce.Do(func() { c.conn.Close() })
			return
		case wire.FramePing:
			if !c.config.IgnorePings {
				_ = sendFrame(c.framer, wire.Pong(f.Seq))
			}
		}
	}
}
