package persistence

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Limits mirroring the NVS substrate.
const (
	// MaxKeyLen is the maximum length of keys and namespace names.
	// ESP-IDF NVS allows 15; the firmware's "paired_id_address" key needs more.
	MaxKeyLen = 32

	// MaxBlobSize is the maximum blob size accepted by SetBlob.
	MaxBlobSize = 508
)

// Persistence errors.
var (
	ErrInvalidKey         = errors.New("invalid key")
	ErrInvalidNamespace   = errors.New("invalid namespace name")
	ErrNamespaceNotFound  = errors.New("namespace not found")
	ErrNamespaceBusy      = errors.New("namespace already open for writing")
	ErrTypeMismatch       = errors.New("value type mismatch")
	ErrValueTooLarge      = errors.New("value too large")
	ErrReadOnly           = errors.New("namespace opened read-only")
	ErrClosed             = errors.New("namespace closed")
	ErrCorrupt            = errors.New("namespace data corrupt")
	ErrPartitionUnmounted = errors.New("partition not mounted")
)

// ValueType tags a stored entry.
type ValueType uint8

const (
	// TypeU8 is an unsigned 8-bit integer.
	TypeU8 ValueType = 1

	// TypeBlob is an opaque byte string.
	TypeBlob ValueType = 2
)

// String returns the type name.
func (t ValueType) String() string {
	switch t {
	case TypeU8:
		return "U8"
	case TypeBlob:
		return "BLOB"
	default:
		return "UNKNOWN"
	}
}

// Partition is a mounted key/value partition.
type Partition interface {
	// OpenNamespace opens the named namespace. With readWrite set, a missing
	// namespace is created; otherwise ErrNamespaceNotFound is returned.
	// At most one read-write handle per namespace may be open at a time.
	OpenNamespace(name string, readWrite bool) (Namespace, error)
}

// Namespace is a handle to one namespace of a Partition.
// Implementations are safe for concurrent use.
type Namespace interface {
	// Name returns the namespace name.
	Name() string

	// GetBlob returns the blob stored under key.
	// The boolean is false if the key has never been written.
	GetBlob(key string) ([]byte, bool, error)

	// SetBlob stores a blob under key, replacing any previous value.
	SetBlob(key string, value []byte) error

	// GetU8 returns the 8-bit integer stored under key.
	// The boolean is false if the key has never been written.
	GetU8(key string) (uint8, bool, error)

	// SetU8 stores an 8-bit integer under key, replacing any previous value.
	SetU8(key string, value uint8) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Keys returns the stored keys in sorted order.
	Keys() []string

	// Close releases the handle.
	Close() error
}

// entry is one stored value.
type entry struct {
	Type ValueType `cbor:"1,keyasint"`
	Data []byte    `cbor:"2,keyasint"`
}

// backend persists a whole namespace. store must be atomic: on error the
// previously stored entries remain what load returns.
type backend interface {
	load(name string) (map[string]entry, bool, error)
	store(name string, entries map[string]entry) error
}

// releaser is notified when a read-write handle closes.
type releaser interface {
	release(name string)
}

// namespace implements Namespace on top of a backend. Entries are cached
// after open; the cache only changes after the backend accepted a write.
type namespace struct {
	mu        sync.RWMutex
	name      string
	readWrite bool
	closed    bool
	entries   map[string]entry
	backend   backend
	owner     releaser
}

// Compile-time interface satisfaction check.
var _ Namespace = (*namespace)(nil)

func openNamespace(b backend, owner releaser, name string, readWrite bool) (*namespace, error) {
	entries, exists, err := b.load(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		if !readWrite {
			return nil, fmt.Errorf("%w: %s", ErrNamespaceNotFound, name)
		}
		entries = make(map[string]entry)
		if err := b.store(name, entries); err != nil {
			return nil, fmt.Errorf("create namespace %s: %w", name, err)
		}
	}

	return &namespace{
		name:      name,
		readWrite: readWrite,
		entries:   entries,
		backend:   b,
		owner:     owner,
	}, nil
}

func (n *namespace) Name() string {
	return n.name
}

func (n *namespace) GetBlob(key string) ([]byte, bool, error) {
	e, ok, err := n.get(key, TypeBlob)
	if err != nil || !ok {
		return nil, ok, err
	}
	out := make([]byte, len(e.Data))
	copy(out, e.Data)
	return out, true, nil
}

func (n *namespace) SetBlob(key string, value []byte) error {
	if len(value) > MaxBlobSize {
		return fmt.Errorf("%w: %d > %d bytes", ErrValueTooLarge, len(value), MaxBlobSize)
	}
	data := make([]byte, len(value))
	copy(data, value)
	return n.set(key, entry{Type: TypeBlob, Data: data})
}

func (n *namespace) GetU8(key string) (uint8, bool, error) {
	e, ok, err := n.get(key, TypeU8)
	if err != nil || !ok {
		return 0, ok, err
	}
	if len(e.Data) != 1 {
		return 0, false, fmt.Errorf("%w: key %s has %d bytes for U8", ErrCorrupt, key, len(e.Data))
	}
	return e.Data[0], true, nil
}

func (n *namespace) SetU8(key string, value uint8) error {
	return n.set(key, entry{Type: TypeU8, Data: []byte{value}})
}

func (n *namespace) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.writableLocked(); err != nil {
		return err
	}
	if _, exists := n.entries[key]; !exists {
		return nil
	}

	next := n.cloneLocked()
	delete(next, key)
	if err := n.backend.store(n.name, next); err != nil {
		return err
	}
	n.entries = next
	return nil
}

func (n *namespace) Keys() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	keys := make([]string, 0, len(n.entries))
	for k := range n.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *namespace) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil
	}
	n.closed = true
	if n.readWrite && n.owner != nil {
		n.owner.release(n.name)
	}
	return nil
}

func (n *namespace) get(key string, want ValueType) (entry, bool, error) {
	if err := validateKey(key); err != nil {
		return entry{}, false, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		return entry{}, false, ErrClosed
	}
	e, exists := n.entries[key]
	if !exists {
		return entry{}, false, nil
	}
	if e.Type != want {
		return entry{}, false, fmt.Errorf("%w: key %s is %s, want %s", ErrTypeMismatch, key, e.Type, want)
	}
	return e, true, nil
}

func (n *namespace) set(key string, e entry) error {
	if err := validateKey(key); err != nil {
		return err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.writableLocked(); err != nil {
		return err
	}
	if old, exists := n.entries[key]; exists && old.Type != e.Type {
		return fmt.Errorf("%w: key %s is %s, want %s", ErrTypeMismatch, key, old.Type, e.Type)
	}

	next := n.cloneLocked()
	next[key] = e
	if err := n.backend.store(n.name, next); err != nil {
		return err
	}
	n.entries = next
	return nil
}

func (n *namespace) writableLocked() error {
	if n.closed {
		return ErrClosed
	}
	if !n.readWrite {
		return ErrReadOnly
	}
	return nil
}

func (n *namespace) cloneLocked() map[string]entry {
	next := make(map[string]entry, len(n.entries)+1)
	for k, v := range n.entries {
		next[k] = v
	}
	return next
}

func validateKey(key string) error {
	if key == "" || len(key) > MaxKeyLen {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func validateNamespace(name string) error {
	if name == "" || len(name) > MaxKeyLen {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, name)
	}
	return nil
}

// writers tracks namespaces with an open read-write handle.
type writers struct {
	mu   sync.Mutex
	open map[string]bool
}

func (w *writers) acquire(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.open == nil {
		w.open = make(map[string]bool)
	}
	if w.open[name] {
		return fmt.Errorf("%w: %s", ErrNamespaceBusy, name)
	}
	w.open[name] = true
	return nil
}

func (w *writers) release(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.open, name)
}
