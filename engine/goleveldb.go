package engine

import (
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

func init() {
	registerBackend(GoLevelDBBackend,
		func(path string, profile Profile) (Engine, error) {
			return NewGoLevelDB(path, profile)
		},
		destroyGoLevelDB,
	)
}

// GoLevelDB is the default, pure-Go backend, built on syndtr/goleveldb.
type GoLevelDB struct {
	db *leveldb.DB
}

var _ Engine = (*GoLevelDB)(nil)

// NewGoLevelDB opens a goleveldb store at path with the given profile.
func NewGoLevelDB(path string, profile Profile) (*GoLevelDB, error) {
	o := &opt.Options{
		ErrorIfMissing:         !profile.CreateIfMissing,
		ErrorIfExist:           profile.ErrorIfExists,
		BlockCacheCapacity:     profile.BlockCacheSize,
		BlockSize:              profile.BlockSize,
		WriteBuffer:            profile.WriteBufferSize,
		OpenFilesCacheCapacity: profile.MaxOpenFiles,
		CompactionTableSize:    int(profile.TargetFileSize),
		CompactionTotalSize:    int(profile.MaxBytesForLevelBase),
	}

	if !profile.Compression {
		o.Compression = opt.NoCompression
	}

	if profile.BloomFilter {
		o.Filter = filter.NewBloomFilter(10)
	}

	db, err := leveldb.OpenFile(path, o)
	if err != nil {
		return nil, err
	}

	return &GoLevelDB{db: db}, nil
}

// Get implements Engine.
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrKeyEmpty
	}

	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == errors.ErrNotFound {
			return nil, nil
		}

		return nil, err
	}

	return res, nil
}

// Has implements Engine. goleveldb has no lighter key-only probe, so this
// reads the value and discards it.
func (db *GoLevelDB) Has(key []byte) (bool, error) {
	bytes, err := db.Get(key)
	if err != nil {
		return false, err
	}

	return bytes != nil, nil
}

// NewBatch implements Engine.
func (db *GoLevelDB) NewBatch() Batch {
	return newGoLevelDBBatch(db)
}

// Iterator implements Engine.
func (db *GoLevelDB) Iterator() (Iterator, error) {
	itr := db.db.NewIterator(nil, nil)

	return newGoLevelDBIterator(itr), nil
}

// Stats implements Engine.
func (db *GoLevelDB) Stats() map[string]string {
	keys := []string{
		"leveldb.stats",
		"leveldb.iostats",
		"leveldb.sstables",
		"leveldb.blockpool",
		"leveldb.cachedblock",
		"leveldb.openedtables",
		"leveldb.alivesnaps",
		"leveldb.aliveiters",
	}

	stats := make(map[string]string, len(keys))

	for _, key := range keys {
		str, err := db.db.GetProperty(key)
		if err == nil {
			stats[key] = str
		}
	}

	return stats
}

// MemoryStats implements Engine. goleveldb only exposes the block cache
// size; memtable and table-reader memory are reported as zero.
func (db *GoLevelDB) MemoryStats() MemoryStats {
	var s leveldb.DBStats
	if err := db.db.Stats(&s); err != nil {
		return MemoryStats{}
	}

	return MemoryStats{BlockCache: uint64(s.BlockCacheSize)}
}

// Close implements Engine.
func (db *GoLevelDB) Close() error {
	return db.db.Close()
}

func destroyGoLevelDB(path string, _ Profile) error {
	return os.RemoveAll(path)
}
