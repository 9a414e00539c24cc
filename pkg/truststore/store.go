package truststore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/persistence"
)

// Persisted layout.
const (
	// Namespace isolates the trust record from other persisted state.
	Namespace = "config"

	// KeyPairedIDAddress holds the owner address as a 6-byte blob.
	KeyPairedIDAddress = "paired_id_address"

	// KeySetupFinished holds the provisioning flag as a u8.
	KeySetupFinished = "setup_finished"
)

// PersistedKind is the address kind given to identities read back from
// flash. Only the address bytes are stored.
const PersistedKind = identity.KindPublicID

// ErrClosed is returned (wrapped in a StorageFault) after Close.
var ErrClosed = errors.New("trust store closed")

// Record is the complete trust record.
type Record struct {
	// Owner is the paired owner, nil while unpaired.
	Owner *identity.DeviceIdentity

	// SetupFinished reports whether provisioning completed.
	// An absent flag reads as false.
	SetupFinished bool
}

// Paired reports whether an owner is on record.
func (r Record) Paired() bool {
	return r.Owner != nil
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is the trust record manager. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	ns     persistence.Namespace
	closed bool
	logger *slog.Logger
}

// Open opens the trust record namespace read-write on partition, creating it
// on first boot. The returned Store owns the namespace handle until Close.
func Open(partition persistence.Partition, opts ...Option) (*Store, error) {
	if partition == nil {
		return nil, fault(OpOpen, "", persistence.ErrPartitionUnmounted)
	}

	ns, err := partition.OpenNamespace(Namespace, true)
	if err != nil {
		return nil, fault(OpOpen, "", err)
	}

	s := &Store{ns: ns}
	for _, opt := range opts {
		opt(s)
	}
	s.debugLog("trust store opened", "namespace", Namespace, "keys", ns.Keys())
	return s, nil
}

// OwnerIdentity returns the owner on record.
// The boolean is false if no owner was ever written.
func (s *Store) OwnerIdentity() (identity.DeviceIdentity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ownerLocked()
}

// SetOwnerIdentity records id as the owner, replacing any previous owner.
func (s *Store) SetOwnerIdentity(id identity.DeviceIdentity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setOwnerLocked(id)
}

// ClaimOwner records candidate as the owner unless an owner is already on
// record, as a single operation. It returns the owner on record afterwards
// (in persisted form) and whether this call wrote it.
//
// A read failure returns a get fault and writes nothing. A write failure
// returns a set fault together with the candidate in persisted form.
func (s *Store) ClaimOwner(candidate identity.DeviceIdentity) (identity.DeviceIdentity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok, err := s.ownerLocked()
	if err != nil {
		return identity.DeviceIdentity{}, false, err
	}
	if ok {
		return owner, false, nil
	}

	persisted := candidate.WithKind(PersistedKind)
	if err := s.setOwnerLocked(candidate); err != nil {
		return persisted, false, err
	}
	return persisted, true, nil
}

// SetupFinished returns the provisioning flag.
// The second result is false if the flag was never written.
func (s *Store) SetupFinished() (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setupFinishedLocked()
}

// SetSetupFinished writes the provisioning flag.
func (s *Store) SetSetupFinished(finished bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fault(OpSet, KeySetupFinished, ErrClosed)
	}

	var v uint8
	if finished {
		v = 1
	}
	if err := s.ns.SetU8(KeySetupFinished, v); err != nil {
		return fault(OpSet, KeySetupFinished, err)
	}
	s.debugLog("setup flag written", "finished", finished)
	return nil
}

// Read loads the complete trust record in one critical section.
func (s *Store) Read() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec Record

	owner, ok, err := s.ownerLocked()
	if err != nil {
		return Record{}, err
	}
	if ok {
		rec.Owner = &owner
	}

	finished, _, err := s.setupFinishedLocked()
	if err != nil {
		return Record{}, err
	}
	rec.SetupFinished = finished

	return rec, nil
}

// Close releases the namespace handle. Further operations fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.ns.Close(); err != nil {
		return fault(OpClose, "", err)
	}
	return nil
}

func (s *Store) ownerLocked() (identity.DeviceIdentity, bool, error) {
	if s.closed {
		return identity.DeviceIdentity{}, false, fault(OpGet, KeyPairedIDAddress, ErrClosed)
	}

	blob, ok, err := s.ns.GetBlob(KeyPairedIDAddress)
	if err != nil {
		return identity.DeviceIdentity{}, false, fault(OpGet, KeyPairedIDAddress, err)
	}
	if !ok {
		return identity.DeviceIdentity{}, false, nil
	}

	id, err := identity.FromSlice(blob, PersistedKind)
	if err != nil {
		return identity.DeviceIdentity{}, false, fault(OpGet, KeyPairedIDAddress,
			fmt.Errorf("%w: %v", persistence.ErrCorrupt, err))
	}
	return id, true, nil
}

func (s *Store) setOwnerLocked(id identity.DeviceIdentity) error {
	if s.closed {
		return fault(OpSet, KeyPairedIDAddress, ErrClosed)
	}

	b := id.LEBytes()
	if err := s.ns.SetBlob(KeyPairedIDAddress, b[:]); err != nil {
		return fault(OpSet, KeyPairedIDAddress, err)
	}
	s.debugLog("owner identity written", "owner", id.String())
	return nil
}

func (s *Store) setupFinishedLocked() (bool, bool, error) {
	if s.closed {
		return false, false, fault(OpGet, KeySetupFinished, ErrClosed)
	}

	v, ok, err := s.ns.GetU8(KeySetupFinished)
	if err != nil {
		return false, false, fault(OpGet, KeySetupFinished, err)
	}
	if !ok {
		return false, false, nil
	}
	return v != 0, true, nil
}

func (s *Store) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
