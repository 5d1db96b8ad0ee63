//go:build rocksdb
// +build rocksdb

package engine

import (
	"strconv"

	"github.com/tecbot/gorocksdb"
)

func init() {
	registerBackend(RocksDBBackend,
		func(path string, profile Profile) (Engine, error) {
			return NewRocksDB(path, profile)
		},
		destroyRocksDB,
	)
}

// RocksDB is the cgo RocksDB backend, built on tecbot/gorocksdb. It requires
// the "rocksdb" build tag.
type RocksDB struct {
	db     *gorocksdb.DB
	opts   *gorocksdb.Options
	ro     *gorocksdb.ReadOptions
	wo     *gorocksdb.WriteOptions
	woSync *gorocksdb.WriteOptions
}

var _ Engine = (*RocksDB)(nil)

// NewRocksDB opens a RocksDB store at path with the given profile.
func NewRocksDB(path string, profile Profile) (*RocksDB, error) {
	opts := rocksDBOptions(profile)

	db, err := gorocksdb.OpenDb(opts, path)
	if err != nil {
		opts.Destroy()

		return nil, err
	}

	ro := gorocksdb.NewDefaultReadOptions()
	wo := gorocksdb.NewDefaultWriteOptions()
	woSync := gorocksdb.NewDefaultWriteOptions()
	woSync.SetSync(true)

	return &RocksDB{
		db:     db,
		opts:   opts,
		ro:     ro,
		wo:     wo,
		woSync: woSync,
	}, nil
}

func rocksDBOptions(profile Profile) *gorocksdb.Options {
	bbto := gorocksdb.NewDefaultBlockBasedTableOptions()
	bbto.SetBlockCache(gorocksdb.NewLRUCache(profile.BlockCacheSize))
	bbto.SetBlockSize(profile.BlockSize)

	if profile.BloomFilter {
		bbto.SetFilterPolicy(gorocksdb.NewBloomFilter(10))
	}

	opts := gorocksdb.NewDefaultOptions()
	opts.SetBlockBasedTableFactory(bbto)
	opts.SetCreateIfMissing(profile.CreateIfMissing)
	opts.SetErrorIfExists(profile.ErrorIfExists)

	if !profile.Compression {
		opts.SetCompression(gorocksdb.NoCompression)
	}

	opts.SetWriteBufferSize(profile.WriteBufferSize)
	opts.SetMaxWriteBufferNumber(profile.MaxWriteBuffers)
	opts.SetMinWriteBufferNumberToMerge(profile.MinWriteBuffersToMerge)
	opts.SetNumLevels(profile.NumLevels)
	opts.SetTargetFileSizeBase(profile.TargetFileSize)
	opts.SetMaxBytesForLevelBase(profile.MaxBytesForLevelBase)
	opts.SetMaxBackgroundCompactions(profile.BackgroundCompactions)
	opts.SetMaxBackgroundFlushes(profile.BackgroundFlushes)
	opts.SetMaxOpenFiles(profile.MaxOpenFiles)
	opts.SetAllowMmapReads(profile.MmapReads)
	opts.SetAllowMmapWrites(profile.MmapWrites)

	if profile.EnableStatistics {
		opts.EnableStatistics()
	}

	return opts
}

// Get implements Engine.
func (db *RocksDB) Get(key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrKeyEmpty
	}

	res, err := db.db.Get(db.ro, key)
	if err != nil {
		return nil, err
	}

	return moveSliceToBytes(res), nil
}

// Has implements Engine. RocksDB has no exists probe that skips the value
// read, so this costs the same as Get.
func (db *RocksDB) Has(key []byte) (bool, error) {
	bytes, err := db.Get(key)
	if err != nil {
		return false, err
	}

	return bytes != nil, nil
}

// NewBatch implements Engine.
func (db *RocksDB) NewBatch() Batch {
	return newRocksDBBatch(db)
}

// Iterator implements Engine.
func (db *RocksDB) Iterator() (Iterator, error) {
	itr := db.db.NewIterator(db.ro)

	return newRocksDBIterator(itr), nil
}

// Stats implements Engine. When statistics are enabled in the profile the
// "rocksdb.options-statistics" entry carries the ticker counters
// (keys written, keys read, keys updated) as text.
func (db *RocksDB) Stats() map[string]string {
	keys := []string{
		"rocksdb.stats",
		"rocksdb.options-statistics",
		"rocksdb.num-snapshots",
		"rocksdb.cur-size-all-mem-tables",
		"rocksdb.estimate-table-readers-mem",
		"rocksdb.block-cache-usage",
	}

	stats := make(map[string]string, len(keys))

	for _, key := range keys {
		stats[key] = db.db.GetProperty(key)
	}

	return stats
}

// MemoryStats implements Engine.
func (db *RocksDB) MemoryStats() MemoryStats {
	return MemoryStats{
		BlockCache:   db.propertyUint("rocksdb.block-cache-usage"),
		Memtables:    db.propertyUint("rocksdb.cur-size-all-mem-tables"),
		TableReaders: db.propertyUint("rocksdb.estimate-table-readers-mem"),
	}
}

func (db *RocksDB) propertyUint(name string) uint64 {
	v, err := strconv.ParseUint(db.db.GetProperty(name), 10, 64)
	if err != nil {
		return 0
	}

	return v
}

// Close implements Engine.
func (db *RocksDB) Close() error {
	db.ro.Destroy()
	db.wo.Destroy()
	db.woSync.Destroy()
	db.db.Close()
	db.opts.Destroy()

	return nil
}

func destroyRocksDB(path string, profile Profile) error {
	opts := rocksDBOptions(profile)
	defer opts.Destroy()

	return gorocksdb.DestroyDb(path, opts)
}

// moveSliceToBytes copies and frees a gorocksdb slice. Missing keys come
// back as nil.
func moveSliceToBytes(s *gorocksdb.Slice) []byte {
	defer s.Free()

	if !s.Exists() {
		return nil
	}

	return cp(s.Data())
}
