//go:build rocksdb
// +build rocksdb

package engine

import "github.com/tecbot/gorocksdb"

type rocksDBBatch struct {
	db    *RocksDB
	batch *gorocksdb.WriteBatch
}

var _ Batch = (*rocksDBBatch)(nil)

func newRocksDBBatch(db *RocksDB) *rocksDBBatch {
	return &rocksDBBatch{
		db:    db,
		batch: gorocksdb.NewWriteBatch(),
	}
}

// Set implements Batch.
func (b *rocksDBBatch) Set(key, value []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrValueNil
	}
	if b.batch == nil {
		return ErrBatchClosed
	}

	b.batch.Put(key, value)

	return nil
}

// Delete implements Batch.
func (b *rocksDBBatch) Delete(key []byte) error {
	if len(key) == 0 {
		return ErrKeyEmpty
	}
	if b.batch == nil {
		return ErrBatchClosed
	}

	b.batch.Delete(key)

	return nil
}

// Count implements Batch.
func (b *rocksDBBatch) Count() int {
	if b.batch == nil {
		return 0
	}

	return b.batch.Count()
}

// Write implements Batch.
func (b *rocksDBBatch) Write() error {
	return b.write(b.db.wo)
}

// WriteSync implements Batch.
func (b *rocksDBBatch) WriteSync() error {
	return b.write(b.db.woSync)
}

func (b *rocksDBBatch) write(wo *gorocksdb.WriteOptions) error {
	if b.batch == nil {
		return ErrBatchClosed
	}

	err := b.db.db.Write(wo, b.batch)
	if err != nil {
		return err
	}

	// Make sure batch cannot be used afterwards. Callers should still call
	// Close(), for errors.
	return b.Close()
}

// Close implements Batch.
func (b *rocksDBBatch) Close() error {
	if b.batch != nil {
		b.batch.Destroy()
		b.batch = nil
	}

	return nil
}
