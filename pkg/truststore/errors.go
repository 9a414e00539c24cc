package truststore

import (
	"errors"
	"fmt"
)

// ErrStorage matches every StorageFault.
var ErrStorage = errors.New("storage fault")

// Fault operations.
const (
	OpOpen  = "open"
	OpGet   = "get"
	OpSet   = "set"
	OpClose = "close"
)

// StorageFault reports a failed access to the backing partition.
type StorageFault struct {
	// Op is the failed operation (OpOpen, OpGet, OpSet, OpClose).
	Op string

	// Key is the affected key, empty for namespace-level operations.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements error.
func (f *StorageFault) Error() string {
	if f.Key == "" {
		return fmt.Sprintf("storage fault: %s %s: %v", f.Op, Namespace, f.Err)
	}
	return fmt.Sprintf("storage fault: %s %s/%s: %v", f.Op, Namespace, f.Key, f.Err)
}

// Unwrap returns the underlying error.
func (f *StorageFault) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrStorage.
func (f *StorageFault) Is(target error) bool {
	return target == ErrStorage
}

// IsReadFault reports whether err is a StorageFault raised while reading.
func IsReadFault(err error) bool {
	var f *StorageFault
	return errors.As(err, &f) && f.Op == OpGet
}

// IsWriteFault reports whether err is a StorageFault raised while writing.
func IsWriteFault(err error) bool {
	var f *StorageFault
	return errors.As(err, &f) && f.Op == OpSet
}

func fault(op, key string, err error) error {
	return &StorageFault{Op: op, Key: key, Err: err}
}
