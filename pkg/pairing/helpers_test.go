package pairing_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weightaware/bag-go/pkg/persistence"
)

// faultyNamespace wraps an in-memory namespace and fails reads or writes
// on demand.
type faultyNamespace struct {
	persistence.Namespace

	mu       sync.Mutex
	getErr   error
	setErr   error
	setCalls int
}

func newFaultyNamespace(t *testing.T) *faultyNamespace {
	t.Helper()
	inner, err := persistence.NewMemoryPartition().OpenNamespace("config", true)
	require.NoError(t, err)
	return &faultyNamespace{Namespace: inner}
}

func (f *faultyNamespace) partition() persistence.Partition {
	return faultyPartition{ns: f}
}

func (f *faultyNamespace) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setCalls
}

func (f *faultyNamespace) GetBlob(key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.Namespace.GetBlob(key)
}

func (f *faultyNamespace) GetU8(key string) (uint8, bool, error) {
	if f.getErr != nil {
		return 0, false, f.getErr
	}
	return f.Namespace.GetU8(key)
}

func (f *faultyNamespace) SetBlob(key string, value []byte) error {
	f.mu.Lock()
	f.setCalls++
	f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	return f.Namespace.SetBlob(key, value)
}

func (f *faultyNamespace) SetU8(key string, value uint8) error {
	f.mu.Lock()
	f.setCalls++
	f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	return f.Namespace.SetU8(key, value)
}

type faultyPartition struct {
	ns *faultyNamespace
}

func (p faultyPartition) OpenNamespace(string, bool) (persistence.Namespace, error) {
	return p.ns, nil
}
