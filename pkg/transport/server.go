package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/version"
	"github.com/weightaware/bag-go/pkg/wire"
)

// Server defaults.
const (
	// DefaultAddress is the loopback address the simulator listens on.
	DefaultAddress = "127.0.0.1:7430"

	// DefaultHelloTimeout bounds the wait for a central's hello frame.
	DefaultHelloTimeout = 5 * time.Second

	// maxHandle is the highest connection handle the host stack assigns.
	maxHandle = 0x0EFF
)

// Server errors.
var (
	ErrServerRunning = errors.New("server already running")
	ErrNoEventSink   = errors.New("event sink is required")
	ErrNoFreeHandle  = errors.New("no free connection handle")
	ErrHandshake     = errors.New("link handshake failed")
)

// ServerConfig configures a Server.
type ServerConfig struct {
	// Address to listen on (default: 127.0.0.1:7430).
	Address string

	// MaxMessageSize is the maximum frame size (default: 517).
	MaxMessageSize uint32

	// HelloTimeout bounds the handshake (default: 5s).
	HelloTimeout time.Duration

	// Supervision configures link supervision. Zero disables it.
	Supervision SupervisionConfig

	// Events receives ConnectEvent and DisconnectEvent messages (required).
	Events EventSink

	// Logger for operational output (optional).
	Logger *slog.Logger

	// ProtocolLogger captures frames and link state changes (optional).
	ProtocolLogger log.Logger
}

// LinkInfo describes a live link.
type LinkInfo struct {
	Handle     ble.ConnHandle
	Peer       identity.DeviceIdentity
	ConnID     string
	RemoteAddr string
	Since      time.Time

	// Params are the last parameters requested from the central, nil if
	// none were requested yet.
	Params *ble.ConnParams
}

// Server is the peripheral side of the link simulator.
type Server struct {
	config   ServerConfig
	listener net.Listener

	// Live links by handle
	mu         sync.RWMutex
	links      map[ble.ConnHandle]*serverLink
	nextHandle uint16

	// State
	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewServer creates a link simulator server.
func NewServer(config ServerConfig) (*Server, error) {
	if config.Events == nil {
		return nil, ErrNoEventSink
	}
	if config.Address == "" {
		config.Address = DefaultAddress
	}
	if config.MaxMessageSize == 0 {
		config.MaxMessageSize = DefaultMaxMessageSize
	}
	if config.HelloTimeout == 0 {
		config.HelloTimeout = DefaultHelloTimeout
	}

	return &Server{
		config: config,
		links:  make(map[ble.ConnHandle]*serverLink),
	}, nil
}

// Start starts listening and accepting links.
func (s *Server) Start(ctx context.Context) error {
	if s.running.Load() {
		return ErrServerRunning
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running.Store(true)

	s.wg.Add(1)
	go s.acceptLoop()

	s.infoLog("link simulator listening", "addr", listener.Addr().String())
	return nil
}

// Stop closes the listener and every live link, then waits for the link
// goroutines to post their disconnect events.
func (s *Server) Stop() error {
	if !s.running.Swap(false) {
		return nil
	}

	s.cancel()
	s.listener.Close()

	s.mu.RLock()
	for _, l := range s.links {
		l.end(ble.ReasonLocalHostTerminated)
	}
	s.mu.RUnlock()

	s.wg.Wait()
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() net.Addr {
	if s.listener != nil {
		return s.listener.Addr()
	}
	return nil
}

// LinkCount returns the number of live links.
func (s *Server) LinkCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}

// Links returns the live links ordered by handle.
func (s *Server) Links() []LinkInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LinkInfo, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, l.info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Disconnect sends a terminate frame with reason and closes the link. The
// link's disconnect event reports LOCAL_HOST_TERMINATED, as a host stack
// does for terminations it initiated.
func (s *Server) Disconnect(handle ble.ConnHandle, reason ble.DisconnectReason) error {
	l := s.lookup(handle)
	if l == nil {
		return &ble.TransportFault{Op: ble.OpDisconnect, Handle: handle, Err: ble.ErrUnknownHandle}
	}

	err := sendFrame(l.framer, wire.Terminate(reason))
	l.end(ble.ReasonLocalHostTerminated)
	if err != nil {
		return &ble.TransportFault{Op: ble.OpDisconnect, Handle: handle, Err: err}
	}
	s.debugLog("link terminated", "handle", handle, "reason", reason.String())
	return nil
}

// UpdateConnParams sends a connection parameter request to the central.
func (s *Server) UpdateConnParams(handle ble.ConnHandle, params ble.ConnParams) error {
	if err := params.Validate(); err != nil {
		return &ble.TransportFault{Op: ble.OpUpdateConnParams, Handle: handle, Err: err}
	}

	l := s.lookup(handle)
	if l == nil {
		return &ble.TransportFault{Op: ble.OpUpdateConnParams, Handle: handle, Err: ble.ErrUnknownHandle}
	}

	if err := sendFrame(l.framer, wire.ConnParams(params)); err != nil {
		return &ble.TransportFault{Op: ble.OpUpdateConnParams, Handle: handle, Err: err}
	}
	l.setParams(params)
	s.debugLog("connection parameters requested", "handle", handle, "params", params.String())
	return nil
}

func (s *Server) lookup(handle ble.ConnHandle) *serverLink {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.links[handle]
}

// acceptLoop accepts incoming links.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for s.running.Load() {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if s.running.Load() {
				s.errorLog("accept failed", "error", err)
			}
			continue
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection runs one link from hello to close.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	connID := uuid.New().String()
	framer := NewFramerWithMaxSize(conn, s.config.MaxMessageSize)
	if s.config.ProtocolLogger != nil {
		framer.SetLogger(s.config.ProtocolLogger, connID)
	}

	peer, err := s.handshake(conn, framer)
	if err != nil {
		conn.Close()
		s.logError(connID, 0, "", "handshake", err)
		s.debugLog("handshake failed", "remote", conn.RemoteAddr().String(), "error", err)
		return
	}

	l, err := s.register(conn, framer, peer, connID)
	if err != nil {
		_ = sendFrame(framer, wire.Terminate(ble.ReasonConnectionFailed))
		conn.Close()
		s.logError(connID, 0, peer.String(), "register", err)
		return
	}
	framer.SetLink(uint16(l.handle), peer.String())

	if err := sendFrame(framer, wire.Connected(l.handle)); err != nil {
		l.end(ble.ReasonConnectionFailed)
		s.unregister(l)
		s.logError(connID, uint16(l.handle), peer.String(), "connected", err)
		return
	}

	s.logState(l, "", "CONNECTED", "")
	s.infoLog("link up", "handle", l.handle, "peer", peer.Describe(), "conn_id", connID)

	if s.config.Supervision.Enabled() {
		l.sup = newSupervisor(s.config.Supervision,
			func(seq uint32) error { return sendFrame(framer, wire.Ping(seq)) },
			func() {
				s.infoLog("supervision timeout", "handle", l.handle)
				l.end(ble.ReasonSupervisionTimeout)
			})
		l.sup.start(s.ctx)
	}

	if err := s.config.Events.Post(ble.ConnectEvent{Handle: l.handle, Peer: peer, ConnID: connID}); err != nil {
		s.errorLog("failed to post connect event", "handle", l.handle, "error", err)
		s.logError(connID, uint16(l.handle), peer.String(), "post connect", err)
		_ = sendFrame(framer, wire.Terminate(ble.ReasonConnectionFailed))
		l.end(ble.ReasonConnectionFailed)
	}

	l.readLoop()

	if l.sup != nil {
		l.sup.stop()
	}
	s.unregister(l)

	reason := l.reason()
	s.logState(l, "CONNECTED", "DISCONNECTED", reason.String())
	s.infoLog("link down", "handle", l.handle, "peer", peer.Describe(), "reason", reason.String())

	ev := ble.DisconnectEvent{Handle: l.handle, Peer: peer, Reason: reason, ConnID: connID}
	if err := s.config.Events.Post(ev); err != nil {
		s.errorLog("failed to post disconnect event", "handle", l.handle, "error", err)
	}
}

// handshake reads the hello frame and checks the announced version.
func (s *Server) handshake(conn net.Conn, framer *Framer) (identity.DeviceIdentity, error) {
	_ = conn.SetReadDeadline(time.Now().Add(s.config.HelloTimeout))
	defer conn.SetReadDeadline(time.Time{})

	data, err := framer.ReadFrame()
	if err != nil {
		return identity.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	f, err := wire.DecodeFrame(data)
	if err != nil {
		return identity.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	if f.Type != wire.FrameHello {
		return identity.DeviceIdentity{}, fmt.Errorf("%w: expected HELLO, got %s", ErrHandshake, f.Type)
	}
	if err := version.CheckPeer(f.Version); err != nil {
		_ = sendFrame(framer, wire.Terminate(ble.ReasonConnectionFailed))
		return identity.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrHandshake, err)
	}

	peer, err := f.Peer.Identity()
	if err != nil {
		return identity.DeviceIdentity{}, fmt.Errorf("%w: %v", ErrHandshake, err)
	}
	return peer, nil
}

// register assigns the next free handle to a new link.
func (s *Server) register(conn net.Conn, framer *Framer, peer identity.DeviceIdentity, connID string) (*serverLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxHandle; i++ {
		s.nextHandle = s.nextHandle%maxHandle + 1
		handle := ble.ConnHandle(s.nextHandle)
		if _, used := s.links[handle]; used {
			continue
		}
		l := &serverLink{
			server: s,
			conn:   conn,
			framer: framer,
			handle: handle,
			peer:   peer,
			connID: connID,
			since:  time.Now(),
		}
		s.links[handle] = l
		return l, nil
	}
	return nil, ErrNoFreeHandle
}

func (s *Server) unregister(l *serverLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.links[l.handle] == l {
		delete(s.links, l.handle)
	}
}

func (s *Server) logState(l *serverLink, oldState, newState, reason string) {
	if s.config.ProtocolLogger == nil {
		return
	}
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: l.connID,
		Handle:       uint16(l.handle),
		Peer:         l.peer.String(),
		Layer:        log.LayerLink,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (s *Server) logError(connID string, handle uint16, peer, op string, err error) {
	if s.config.ProtocolLogger == nil {
		return
	}
	s.config.ProtocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Handle:       handle,
		Peer:         peer,
		Layer:        log.LayerLink,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerLink,
			Message: err.Error(),
			Context: op,
		},
	})
}

func (s *Server) debugLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, args...)
	}
}

func (s *Server) infoLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, args...)
	}
}

func (s *Server) errorLog(msg string, args ...any) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, args...)
	}
}

// serverLink is one live link on the server.
type serverLink struct {
	server *Server
	conn   net.Conn
	framer *Framer
	handle ble.ConnHandle
	peer   identity.DeviceIdentity
	connID string
	since  time.Time
	sup    *supervisor

	mu        sync.Mutex
	params    *ble.ConnParams
	ended     bool
	endReason ble.DisconnectReason
}

// end records why the link ended and closes the stream. The first reason
// recorded wins.
func (l *serverLink) end(reason ble.DisconnectReason) {
	l.mu.Lock()
	if l.ended {
		l.mu.Unlock()
		return
	}
	l.ended = true
	l.endReason = reason
	l.mu.Unlock()

	l.conn.Close()
}

func (l *serverLink) reason() ble.DisconnectReason {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.endReason
}

func (l *serverLink) setParams(p ble.ConnParams) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.params = &p
}

func (l *serverLink) info() LinkInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	info := LinkInfo{
		Handle:     l.handle,
		Peer:       l.peer,
		ConnID:     l.connID,
		RemoteAddr: l.conn.RemoteAddr().String(),
		Since:      l.since,
	}
	if l.params != nil {
		p := *l.params
		info.Params = &p
	}
	return info
}

// readLoop handles frames from the central until the stream ends.
func (l *serverLink) readLoop() {
	for {
		data, err := l.framer.ReadFrame()
		if err != nil {
			// A stream that ends without a terminate frame is a central
			// that went away: the radio reports a supervision timeout.
			l.end(ble.ReasonSupervisionTimeout)
			return
		}

		f, err := wire.DecodeFrame(data)
		if err != nil {
			l.server.logError(l.connID, uint16(l.handle), l.peer.String(), "decode", err)
			continue
		}

		switch f.Type {
		case wire.FrameTerminate:
			l.end(ble.DisconnectReason(f.Reason))
			return
		case wire.FramePong:
			if l.sup != nil {
				l.sup.pongReceived(f.Seq)
			}
		case wire.FramePing:
			_ = sendFrame(l.framer, wire.Pong(f.Seq))
		default:
			l.server.debugLog("ignoring frame", "handle", l.handle, "type", f.Type.String())
		}
	}
}

// sendFrame encodes and writes one frame.
func sendFrame(fw FrameReadWriter, f *wire.Frame) error {
	data, err := wire.EncodeFrame(f)
	if err != nil {
		return err
	}
	return fw.WriteFrame(data)
}
