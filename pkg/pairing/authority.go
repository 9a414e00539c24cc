package pairing

import (
	"log/slog"
	"sync"
	"time"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/truststore"
)

// Option configures an Authority.
type Option func(*Authority)

// WithLogger sets the logger for operational output.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Authority) { a.logger = logger }
}

// WithProtocolLogger sets the logger for structured decision events.
func WithProtocolLogger(logger log.Logger) Option {
	return func(a *Authority) { a.protocolLogger = logger }
}

// WithConnParams overrides the parameters applied to allowed connections.
func WithConnParams(params ble.ConnParams) Option {
	return func(a *Authority) { a.params = params }
}

// WithOnPaired registers a callback run after an owner has been committed.
// It runs on the handler goroutine and must not block.
func WithOnPaired(fn func(owner identity.DeviceIdentity)) Option {
	return func(a *Authority) { a.onPaired = fn }
}

// Authority evaluates connection events against the trust record.
// Handlers may run concurrently.
type Authority struct {
	store  OwnerStore
	link   Link
	params ble.ConnParams

	onPaired func(identity.DeviceIdentity)

	// Logger for operational output (optional)
	logger *slog.Logger

	// Protocol logger for structured event capture (optional)
	protocolLogger log.Logger

	statsMu sync.Mutex
	stats   Stats
}

// NewAuthority creates an authority over store that drives link.
// Allowed connections get ble.DefaultConnParams unless overridden.
func NewAuthority(store OwnerStore, link Link, opts ...Option) *Authority {
	a := &Authority{
		store:  store,
		link:   link,
		params: ble.DefaultConnParams(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ConnParams returns the parameters applied to allowed connections.
func (a *Authority) ConnParams() ble.ConnParams {
	return a.params
}

// State reads the pairing state from the store.
func (a *Authority) State() (State, error) {
	_, ok, err := a.store.OwnerIdentity()
	if err != nil {
		return StateUnpaired, err
	}
	if ok {
		return StatePaired, nil
	}
	return StateUnpaired, nil
}

// Stats returns a snapshot of the decision counters.
func (a *Authority) Stats() Stats {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	return a.stats
}

// HandleConnect evaluates a new connection and acts on the outcome.
// It runs to completion and never returns an error; failures are logged.
func (a *Authority) HandleConnect(ev ble.ConnectEvent) Decision {
	a.infoLog("new connection",
		"handle", ev.Handle,
		"peer", ev.Peer.Describe(),
		"conn_id", ev.ConnID)

	if !ev.Peer.Kind.IsIdentity() {
		a.warnLog("peer did not present an identity address",
			"handle", ev.Handle,
			"peer", ev.Peer.Describe())
	}

	owner, committed, err := a.store.ClaimOwner(ev.Peer)

	var decision Decision
	switch {
	case err != nil && truststore.IsWriteFault(err):
		// The peer was the first to connect. Let it in anyway.
		a.errorLog("failed to set paired id address", "handle", ev.Handle, "error", err)
		a.logStorageError(ev, "set owner", err)
		decision = DecisionPairedUncommitted

	case err != nil:
		a.errorLog("failed to get paired id address", "handle", ev.Handle, "error", err)
		a.logStorageError(ev, "get owner", err)
		a.finish(ev, DecisionStorageFault, nil)
		return DecisionStorageFault

	case committed:
		a.infoLog("paired with device",
			"handle", ev.Handle,
			"owner", owner.String())
		if owner.Kind != ev.Peer.Kind {
			a.warnLog("owner recorded with a different address kind and will only match reconnects of that kind",
				"presented", ev.Peer.Kind.String(),
				"recorded", owner.Kind.String())
		}
		a.logPairingState(ev)
		decision = DecisionPaired

	case owner.Equal(ev.Peer):
		a.debugLog("owner reconnected", "handle", ev.Handle)
		decision = DecisionOwner

	default:
		a.infoLog("connection is unrecognized, disconnecting",
			"handle", ev.Handle,
			"peer", ev.Peer.Describe())
		if err := a.link.Disconnect(ev.Handle, ble.ReasonRemoteUserTerminated); err != nil {
			a.errorLog("failed to disconnect unpaired device",
				"handle", ev.Handle,
				"error", err)
			a.logTransportError(ev, "disconnect", err)
		}
		a.finish(ev, DecisionRejected, &owner)
		return DecisionRejected
	}

	if err := a.link.UpdateConnParams(ev.Handle, a.params); err != nil {
		a.errorLog("failed to update connection parameters",
			"handle", ev.Handle,
			"params", a.params.String(),
			"error", err)
		a.logTransportError(ev, "update conn params", err)
	}

	var recorded *identity.DeviceIdentity
	if decision != DecisionPairedUncommitted {
		recorded = &owner
	}
	a.finish(ev, decision, recorded)

	if decision == DecisionPaired && a.onPaired != nil {
		a.onPaired(owner)
	}
	return decision
}

// HandleDisconnect records a terminated connection. It does not touch the
// trust record.
func (a *Authority) HandleDisconnect(ev ble.DisconnectEvent) {
	a.infoLog("client disconnected",
		"handle", ev.Handle,
		"peer", ev.Peer.Describe(),
		"reason", ev.Reason.String())

	a.statsMu.Lock()
	a.stats.Disconnects++
	a.statsMu.Unlock()

	if a.protocolLogger == nil {
		return
	}
	a.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ev.ConnID,
		Handle:       uint16(ev.Handle),
		Peer:         ev.Peer.String(),
		Layer:        log.LayerPairing,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			NewState: "DISCONNECTED",
			Reason:   ev.Reason.String(),
		},
	})
}

func (a *Authority) finish(ev ble.ConnectEvent, d Decision, owner *identity.DeviceIdentity) {
	a.statsMu.Lock()
	switch d {
	case DecisionPaired:
		a.stats.Paired++
	case DecisionPairedUncommitted:
		a.stats.PairedUncommitted++
	case DecisionOwner:
		a.stats.Owner++
	case DecisionRejected:
		a.stats.Rejected++
	case DecisionStorageFault:
		a.stats.StorageFaults++
	}
	a.statsMu.Unlock()

	if a.protocolLogger == nil {
		return
	}
	de := &log.DecisionEvent{Outcome: d.String(), Allowed: d.Allowed()}
	if owner != nil {
		de.Owner = owner.String()
	}
	a.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ev.ConnID,
		Handle:       uint16(ev.Handle),
		Peer:         ev.Peer.String(),
		Layer:        log.LayerPairing,
		Category:     log.CategoryDecision,
		Decision:     de,
	})
}

func (a *Authority) logPairingState(ev ble.ConnectEvent) {
	if a.protocolLogger == nil {
		return
	}
	a.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ev.ConnID,
		Handle:       uint16(ev.Handle),
		Peer:         ev.Peer.String(),
		Layer:        log.LayerPairing,
		Category:     log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityPairing,
			OldState: StateUnpaired.String(),
			NewState: StatePaired.String(),
			Reason:   "first connection",
		},
	})
}

func (a *Authority) logStorageError(ev ble.ConnectEvent, op string, err error) {
	a.logError(ev, log.LayerStorage, op, err)
}

func (a *Authority) logTransportError(ev ble.ConnectEvent, op string, err error) {
	a.logError(ev, log.LayerLink, op, err)
}

func (a *Authority) logError(ev ble.ConnectEvent, layer log.Layer, op string, err error) {
	if a.protocolLogger == nil {
		return
	}
	a.protocolLogger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: ev.ConnID,
		Handle:       uint16(ev.Handle),
		Peer:         ev.Peer.String(),
		Layer:        log.LayerPairing,
		Category:     log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   layer,
			Message: err.Error(),
			Context: op,
		},
	})
}

func (a *Authority) debugLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *Authority) infoLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}

func (a *Authority) warnLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}

func (a *Authority) errorLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, args...)
	}
}
