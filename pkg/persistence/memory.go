package persistence

import "sync"

// MemoryPartition is an in-memory Partition.
// Namespace contents outlive their handles, so closing and re-opening a
// namespace behaves like a restart against the same flash.
type MemoryPartition struct {
	mu         sync.Mutex
	namespaces map[string][]byte
	writers    writers
}

// NewMemoryPartition creates an empty in-memory partition.
func NewMemoryPartition() *MemoryPartition {
	return &MemoryPartition{namespaces: make(map[string][]byte)}
}

// OpenNamespace opens a namespace. See Partition.
func (p *MemoryPartition) OpenNamespace(name string, readWrite bool) (Namespace, error) {
	if err := validateNamespace(name); err != nil {
		return nil, err
	}

	if readWrite {
		if err := p.writers.acquire(name); err != nil {
			return nil, err
		}
	}

	ns, err := openNamespace(p, &p.writers, name, readWrite)
	if err != nil {
		if readWrite {
			p.writers.release(name)
		}
		return nil, err
	}
	return ns, nil
}

// load implements backend. Contents are kept encoded so that readers never
// share memory with a writer.
func (p *MemoryPartition) load(name string) (map[string]entry, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, exists := p.namespaces[name]
	if !exists {
		return nil, false, nil
	}
	entries, err := decodeEntries(data)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// store implements backend.
func (p *MemoryPartition) store(name string, entries map[string]entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.namespaces[name] = data
	return nil
}

// Compile-time interface satisfaction check.
var _ Partition = (*MemoryPartition)(nil)
