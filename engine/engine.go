// Package engine defines the narrow interface the benchmark drives an
// embedded key-value store through: open/close, point reads, atomically
// committed batches of puts and deletes, forward iteration, and
// introspection of engine-reported statistics and memory usage.
//
// Backends register themselves at init time. The goleveldb backend is always
// available; the rocksdb backend requires the "rocksdb" build tag and a cgo
// toolchain with librocksdb installed.
package engine

import (
	"errors"
	"fmt"
	"sort"
)

// BackendType names a registered storage backend.
type BackendType string

const (
	GoLevelDBBackend BackendType = "goleveldb"
	RocksDBBackend   BackendType = "rocksdb"
)

var (
	ErrKeyEmpty     = errors.New("key cannot be empty")
	ErrValueNil     = errors.New("value cannot be nil")
	ErrBatchClosed  = errors.New("batch has been written or closed")
	ErrEngineClosed = errors.New("engine has been closed")
)

// Engine is an open handle to one instance of an embedded key-value store.
// Implementations are not required to be safe for concurrent use; the
// benchmark drives a handle from a single goroutine.
type Engine interface {
	// Get returns the value for key, or (nil, nil) if the key is absent.
	Get(key []byte) ([]byte, error)

	// Has reports whether key is present. No backend is assumed to offer a
	// lighter key-only probe, so implementations may read the full value.
	Has(key []byte) (bool, error)

	// NewBatch returns an empty write batch. A batch, once written, is
	// closed and cannot accumulate further operations.
	NewBatch() Batch

	// Iterator iterates the full key range in ascending key order,
	// visiting every live pair exactly once.
	Iterator() (Iterator, error)

	// Stats returns engine-reported statistics as opaque property strings.
	Stats() map[string]string

	// MemoryStats returns the engine-internal memory breakdown. Fields a
	// backend cannot report are zero.
	MemoryStats() MemoryStats

	Close() error
}

// Batch is an ordered set of pending puts and deletes submitted together
// for one atomic commit.
type Batch interface {
	Set(key, value []byte) error
	Delete(key []byte) error

	// Count returns the number of pending operations.
	Count() int

	// Write commits the batch with the engine's default durability.
	Write() error

	// WriteSync commits the batch and does not return until the write is
	// durably persisted.
	WriteSync() error

	Close() error
}

// Iterator walks key/value pairs in ascending key order. Callers must check
// Error after iteration and must Close the iterator when done.
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Error() error
	Close() error
}

// MemoryStats is a point-in-time engine-internal memory breakdown, in bytes.
type MemoryStats struct {
	BlockCache   uint64 `json:"block_cache"`
	Memtables    uint64 `json:"memtables"`
	TableReaders uint64 `json:"table_readers"`
}

// Total returns the sum of all reported components.
func (m MemoryStats) Total() uint64 {
	return m.BlockCache + m.Memtables + m.TableReaders
}

type creator func(path string, profile Profile) (Engine, error)

type destroyer func(path string, profile Profile) error

type backend struct {
	open    creator
	destroy destroyer
}

var backends = map[BackendType]backend{}

func registerBackend(t BackendType, open creator, destroy destroyer) {
	if _, ok := backends[t]; ok {
		panic(fmt.Sprintf("backend %q registered twice", t))
	}

	backends[t] = backend{open: open, destroy: destroy}
}

// Backends returns the names of all compiled-in backends.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for t := range backends {
		names = append(names, string(t))
	}

	sort.Strings(names)

	return names
}

// Open opens (creating if missing, per the profile) an engine instance
// rooted at path.
func Open(t BackendType, path string, profile Profile) (Engine, error) {
	b, ok := backends[t]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (compiled in: %v)",
			t, Backends())
	}

	eng, err := b.open(path, profile)
	if err != nil {
		return nil, fmt.Errorf("open %s at %s: %w", t, path, err)
	}

	return eng, nil
}

// Destroy removes all on-disk state for the engine instance rooted at path.
// Destroying a path that does not exist is not an error.
func Destroy(t BackendType, path string, profile Profile) error {
	b, ok := backends[t]
	if !ok {
		return fmt.Errorf("unknown backend %q (compiled in: %v)",
			t, Backends())
	}

	if err := b.destroy(path, profile); err != nil {
		return fmt.Errorf("destroy %s at %s: %w", t, path, err)
	}

	return nil
}

// cp returns a copy of bz. Backends use it to detach returned keys and
// values from memory the engine may reuse or free.
func cp(bz []byte) []byte {
	if bz == nil {
		return nil
	}

	ret := make([]byte, len(bz))
	copy(ret, bz)

	return ret
}
