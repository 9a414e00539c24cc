package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File naming for namespace documents.
const (
	namespaceExt = ".nvs"
	tempSuffix   = ".tmp"
)

// FileOption configures a FilePartition.
type FileOption func(*FilePartition)

// WithEraseOnCorrupt makes OpenNamespace discard an unreadable namespace
// and start it empty, the way NVS flash is erased and re-initialized when
// its pages cannot be parsed. Without it, corruption is reported as ErrCorrupt.
func WithEraseOnCorrupt() FileOption {
	return func(p *FilePartition) { p.eraseOnCorrupt = true }
}

// WithFileLogger sets the logger for recovery diagnostics.
func WithFileLogger(logger *slog.Logger) FileOption {
	return func(p *FilePartition) { p.logger = logger }
}

// FilePartition is a Partition backed by a directory.
// Each namespace is one file named <namespace>.nvs.
type FilePartition struct {
	root           string
	eraseOnCorrupt bool
	logger         *slog.Logger

	// fileMu serializes file replacement across namespaces.
	fileMu  sync.Mutex
	writers writers
}

// MountFilePartition mounts the partition rooted at dir, creating the
// directory if needed. Leftover temporary files from an interrupted write
// are removed; the document they were meant to replace is still intact.
func MountFilePartition(dir string, opts ...FileOption) (*FilePartition, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty root directory", ErrPartitionUnmounted)
	}

	p := &FilePartition{root: dir}
	for _, opt := range opts {
		opt(p)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartitionUnmounted, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartitionUnmounted, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), namespaceExt+tempSuffix) {
			p.debugLog("removing interrupted write", "file", e.Name())
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}

	return p, nil
}

// Root returns the partition directory.
func (p *FilePartition) Root() string {
	return p.root
}

// OpenNamespace opens a namespace. See Partition.
func (p *FilePartition) OpenNamespace(name string, readWrite bool) (Namespace, error) {
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

// Erase removes a namespace document. Open handles keep their cached view.
func (p *FilePartition) Erase(name string) error {
	if err := validateNamespace(name); err != nil {
		return err
	}

	p.fileMu.Lock()
	defer p.fileMu.Unlock()

	err := os.Remove(p.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (p *FilePartition) path(name string) string {
	return filepath.Join(p.root, name+namespaceExt)
}

// load implements backend.
func (p *FilePartition) load(name string) (map[string]entry, bool, error) {
	p.fileMu.Lock()
	defer p.fileMu.Unlock()

	data, err := os.ReadFile(p.path(name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	entries, err := decodeEntries(data)
	if err != nil {
		if p.eraseOnCorrupt && errors.Is(err, ErrCorrupt) {
			p.debugLog("erasing corrupt namespace", "namespace", name, "error", err)
			if rmErr := os.Remove(p.path(name)); rmErr != nil && !os.IsNotExist(rmErr) {
				return nil, false, rmErr
			}
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("namespace %s: %w", name, err)
	}
	return entries, true, nil
}

// store implements backend. The document is written to a temporary file,
// synced, then renamed over the previous document.
func (p *FilePartition) store(name string, entries map[string]entry) error {
	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	p.fileMu.Lock()
	defer p.fileMu.Unlock()

	final := p.path(name)
	tmp := final + tempSuffix

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", final, err)
	}

	return syncDir(p.root)
}

func (p *FilePartition) debugLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

// syncDir flushes the directory entry of a rename. Platforms that cannot
// sync directories report an error on Sync, which is ignored.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	_ = d.Sync()
	return nil
}

// Compile-time interface satisfaction check.
var _ Partition = (*FilePartition)(nil)
