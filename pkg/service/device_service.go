package service

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/discovery"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/motion"
	"github.com/weightaware/bag-go/pkg/pairing"
	"github.com/weightaware/bag-go/pkg/persistence"
	"github.com/weightaware/bag-go/pkg/transport"
	"github.com/weightaware/bag-go/pkg/truststore"
	"github.com/weightaware/bag-go/pkg/version"
)

// DeviceService orchestrates the bag firmware.
type DeviceService struct {
	mu sync.RWMutex

	config    DeviceConfig
	partition persistence.Partition
	state     ServiceState

	// Components, created by Start
	store            *truststore.Store
	authority        *pairing.Authority
	dispatcher       *ble.Dispatcher
	server           *transport.Server
	discoveryManager *discovery.DiscoveryManager

	// Injected before Start (optional)
	advertiser discovery.Advertiser
	sensor     motion.Sensor

	// Event handlers
	eventHandlers []EventHandler

	// Logger for operational output (optional)
	logger *slog.Logger

	// Protocol logger for structured event capture (optional)
	protocolLogger log.Logger

	// Context for cancellation
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDeviceService creates a device service over partition.
func NewDeviceService(partition persistence.Partition, config DeviceConfig) (*DeviceService, error) {
	if partition == nil {
		return nil, ErrNoPartition
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &DeviceService{
		config:         config,
		partition:      partition,
		state:          StateIdle,
		logger:         config.Logger,
		protocolLogger: config.ProtocolLogger,
	}, nil
}

// SetAdvertiser sets the mDNS advertiser. Must be called before Start.
// Without one, the link simulator is not advertised.
func (s *DeviceService) SetAdvertiser(advertiser discovery.Advertiser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advertiser = advertiser
}

// SetSensor sets the movement sensor initialized at boot. Must be called
// before Start.
func (s *DeviceService) SetSensor(sensor motion.Sensor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensor = sensor
}

// State returns the current service state.
func (s *DeviceService) State() ServiceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnEvent registers an event handler.
func (s *DeviceService) OnEvent(handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventHandlers = append(s.eventHandlers, handler)
}

// Start boots the device. A failing step aborts the boot, releases what
// earlier steps acquired and returns the error.
func (s *DeviceService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle && s.state != StateStopped {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.state = StateStarting
	advertiser := s.advertiser
	sensor := s.sensor
	s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)

	store, err := truststore.Open(s.partition, truststore.WithLogger(s.logger))
	if err != nil {
		s.abortStart()
		return fmt.Errorf("failed to open trust store: %w", err)
	}
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()

	dispatcher := ble.NewDispatcher(ble.DispatcherConfig{
		QueueSize: s.config.EventQueueSize,
		Logger:    s.logger,
	})

	server, err := transport.NewServer(transport.ServerConfig{
		Address:        s.config.ListenAddress,
		Supervision:    s.config.Supervision,
		Events:         dispatcher,
		Logger:         s.logger,
		ProtocolLogger: s.protocolLogger,
	})
	if err != nil {
		s.abortStart()
		return err
	}

	authority := pairing.NewAuthority(store, server,
		pairing.WithLogger(s.logger),
		pairing.WithProtocolLogger(s.protocolLogger),
		pairing.WithConnParams(s.config.ConnParams),
		pairing.WithOnPaired(s.handlePaired))

	s.mu.Lock()
	s.dispatcher = dispatcher
	s.server = server
	s.authority = authority
	s.mu.Unlock()

	dispatcher.OnConnect(s.handleConnect)
	dispatcher.OnDisconnect(s.handleDisconnect)
	dispatcher.Start(s.ctx)

	if err := server.Start(s.ctx); err != nil {
		s.abortStart()
		return err
	}

	if advertiser != nil {
		if err := s.startAdvertising(advertiser); err != nil {
			s.abortStart()
			return fmt.Errorf("failed to advertise: %w", err)
		}
	}

	if sensor != nil {
		if err := motion.Initialize(s.ctx, sensor, s.logger); err != nil {
			s.abortStart()
			return err
		}
	}

	s.mu.Lock()
	s.state = StateRunning
	s.mu.Unlock()

	s.infoLog("device started",
		"addr", server.Addr().String(),
		"name", s.config.DeviceName,
		"conn_params", s.config.ConnParams.String())
	return nil
}

func (s *DeviceService) startAdvertising(advertiser discovery.Advertiser) error {
	_, paired, err := s.store.OwnerIdentity()
	if err != nil {
		// The flag only tells browsers whether to bother. Advertise as
		// unpaired and let the authority decide on connect.
		s.warnLog("failed to read owner for advertising", "error", err)
	}

	manager := discovery.NewDiscoveryManager(advertiser)
	manager.OnStateChange(func(old, new discovery.AdvertState) {
		s.debugLog("advertising state changed", "from", old.String(), "to", new.String())
	})

	info := discovery.DeviceInfo{
		Name:        s.config.DeviceName,
		ServiceUUID: ble.ServiceUUID,
		Paired:      paired,
		Version:     version.Current,
		Firmware:    version.Firmware,
		Port:        portOf(s.server.Addr()),
	}
	if err := manager.Start(s.ctx, info); err != nil {
		return err
	}

	s.mu.Lock()
	s.discoveryManager = manager
	s.mu.Unlock()
	return nil
}

// abortStart undoes a partial boot.
func (s *DeviceService) abortStart() {
	s.teardown()
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

// Stop shuts the device down. Live links are terminated.
func (s *DeviceService) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.state = StateStopping
	s.mu.Unlock()

	err := s.teardown()

	s.mu.Lock()
	s.state = StateStopped
	s.mu.Unlock()

	s.infoLog("device stopped")
	return err
}

// teardown stops every component that was started, in reverse boot order.
func (s *DeviceService) teardown() error {
	s.mu.Lock()
	manager := s.discoveryManager
	server := s.server
	dispatcher := s.dispatcher
	store := s.store
	s.discoveryManager = nil
	s.server = nil
	s.store = nil
	s.mu.Unlock()

	if manager != nil {
		if err := manager.Stop(); err != nil {
			s.warnLog("failed to stop advertising", "error", err)
		}
	}
	if server != nil {
		_ = server.Stop()
	}
	if dispatcher != nil {
		dispatcher.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.mu.Lock()
	s.dispatcher = nil
	s.authority = nil
	s.mu.Unlock()

	if store != nil {
		return store.Close()
	}
	return nil
}

// handleConnect runs on the dispatcher goroutine.
func (s *DeviceService) handleConnect(ev ble.ConnectEvent) {
	decision := s.authority.HandleConnect(ev)
	s.emitEvent(Event{
		Type:     EventConnected,
		Handle:   ev.Handle,
		Peer:     ev.Peer,
		Decision: decision,
	})
}

// handleDisconnect runs on the dispatcher goroutine.
func (s *DeviceService) handleDisconnect(ev ble.DisconnectEvent) {
	s.authority.HandleDisconnect(ev)
	s.emitEvent(Event{
		Type:   EventDisconnected,
		Handle: ev.Handle,
		Peer:   ev.Peer,
		Reason: ev.Reason,
	})
}

// handlePaired refreshes the advertised paired flag once an owner has been
// committed.
func (s *DeviceService) handlePaired(owner identity.DeviceIdentity) {
	s.mu.RLock()
	manager := s.discoveryManager
	s.mu.RUnlock()

	if manager != nil {
		if err := manager.SetPaired(true); err != nil {
			s.warnLog("failed to update advertisement", "error", err)
		}
	}
	s.emitEvent(Event{Type: EventPaired, Peer: owner})
}

// emitEvent sends an event to all registered handlers.
func (s *DeviceService) emitEvent(event Event) {
	s.mu.RLock()
	handlers := s.eventHandlers
	s.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

// Addr returns the link simulator address, or "" when not running.
func (s *DeviceService) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRunning || s.server == nil || s.server.Addr() == nil {
		return ""
	}
	return s.server.Addr().String()
}

// ConnParams returns the parameters requested from allowed centrals.
func (s *DeviceService) ConnParams() ble.ConnParams {
	return s.config.ConnParams
}

// Owner returns the owner on record.
func (s *DeviceService) Owner() (identity.DeviceIdentity, bool, error) {
	store, err := s.runningStore()
	if err != nil {
		return identity.DeviceIdentity{}, false, err
	}
	return store.OwnerIdentity()
}

// Record returns the complete trust record.
func (s *DeviceService) Record() (truststore.Record, error) {
	store, err := s.runningStore()
	if err != nil {
		return truststore.Record{}, err
	}
	return store.Read()
}

// SetSetupFinished writes the provisioning flag.
func (s *DeviceService) SetSetupFinished(finished bool) error {
	store, err := s.runningStore()
	if err != nil {
		return err
	}
	return store.SetSetupFinished(finished)
}

// Stats returns the pairing decision counters.
func (s *DeviceService) Stats() pairing.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.authority == nil {
		return pairing.Stats{}
	}
	return s.authority.Stats()
}

// AdvertState returns the mDNS advertising state.
func (s *DeviceService) AdvertState() discovery.AdvertState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.discoveryManager == nil {
		return discovery.StateUnregistered
	}
	return s.discoveryManager.State()
}

// Links returns the live links.
func (s *DeviceService) Links() []transport.LinkInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.server == nil {
		return nil
	}
	return s.server.Links()
}

// Drop terminates the link with handle as if the device's application had
// closed it.
func (s *DeviceService) Drop(handle ble.ConnHandle) error {
	s.mu.RLock()
	server := s.server
	running := s.state == StateRunning
	s.mu.RUnlock()

	if !running {
		return ErrNotStarted
	}
	return server.Disconnect(handle, ble.ReasonRemoteUserTerminated)
}

func (s *DeviceService) runningStore() (*truststore.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRunning {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

func portOf(addr net.Addr) uint16 {
	if addr == nil {
		return 0
	}
	_, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return 0
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0
	}
	return uint16(port)
}

func (s *DeviceService) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *DeviceService) infoLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *DeviceService) warnLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
