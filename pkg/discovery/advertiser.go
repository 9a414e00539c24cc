package discovery

import (
	"context"
	"sync"
	"time"
)

// Advertiser provides mDNS service advertising capabilities.
type Advertiser interface {
	// Advertise starts advertising the bag, replacing any earlier
	// registration.
	Advertise(ctx context.Context, info *DeviceInfo) error

	// Update replaces the TXT records of the running advertisement.
	Update(info *DeviceInfo) error

	// Stop withdraws the advertisement. Stopping twice is a no-op.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string `yaml:"interface"`

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration `yaml:"ttl"`
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}

// NoopAdvertiser satisfies Advertiser without touching the network.
// It is used when mDNS is disabled.
type NoopAdvertiser struct{}

// Advertise implements Advertiser.
func (NoopAdvertiser) Advertise(context.Context, *DeviceInfo) error { return nil }

// Update implements Advertiser.
func (NoopAdvertiser) Update(*DeviceInfo) error { return nil }

// Stop implements Advertiser.
func (NoopAdvertiser) Stop() error { return nil }

// AdvertState is the advertising state of the bag.
type AdvertState uint8

const (
	// StateUnregistered means nothing is advertised.
	StateUnregistered AdvertState = iota

	// StateUnpaired means the bag is advertised as available for pairing.
	StateUnpaired

	// StatePaired means the bag is advertised as owned.
	StatePaired
)

// String returns the state name.
func (s AdvertState) String() string {
	switch s {
	case StateUnregistered:
		return "UNREGISTERED"
	case StateUnpaired:
		return "UNPAIRED"
	case StatePaired:
		return "PAIRED"
	default:
		return "UNKNOWN"
	}
}

// DiscoveryManager keeps the advertisement in step with the pairing state.
type DiscoveryManager struct {
	mu sync.Mutex

	state      AdvertState
	advertiser Advertiser
	info       DeviceInfo

	// Callback for state changes
	onStateChange func(old, new AdvertState)
}

// NewDiscoveryManager creates a new discovery manager.
func NewDiscoveryManager(advertiser Advertiser) *DiscoveryManager {
	return &DiscoveryManager{
		state:      StateUnregistered,
		advertiser: advertiser,
	}
}

// State returns the current advertising state.
func (m *DiscoveryManager) State() AdvertState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Info returns a copy of the payload being advertised.
func (m *DiscoveryManager) Info() DeviceInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info
}

// OnStateChange sets a callback for state changes.
// The callback runs with the manager locked and must not call back into it.
func (m *DiscoveryManager) OnStateChange(fn func(old, new AdvertState)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onStateChange = fn
}

// Start validates info and begins advertising it.
func (m *DiscoveryManager) Start(ctx context.Context, info DeviceInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.advertiser.Advertise(ctx, &info); err != nil {
		return err
	}
	m.info = info
	m.setState(stateFor(info.Paired))
	return nil
}

// SetPaired refreshes the paired flag. It is a no-op when the flag is
// unchanged.
func (m *DiscoveryManager) SetPaired(paired bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateUnregistered {
		return ErrNotAdvertising
	}
	if m.info.Paired == paired {
		return nil
	}

	next := m.info
	next.Paired = paired
	if err := m.advertiser.Update(&next); err != nil {
		return err
	}
	m.info = next
	m.setState(stateFor(paired))
	return nil
}

// Stop withdraws the advertisement.
func (m *DiscoveryManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateUnregistered {
		return nil
	}
	err := m.advertiser.Stop()
	m.setState(StateUnregistered)
	return err
}

func (m *DiscoveryManager) setState(s AdvertState) {
	old := m.state
	m.state = s
	if m.onStateChange != nil && old != s {
		m.onStateChange(old, s)
	}
}

func stateFor(paired bool) AdvertState {
	if paired {
		return StatePaired
	}
	return StateUnpaired
}
