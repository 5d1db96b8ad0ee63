//go:build rocksdb
// +build rocksdb

package engine

import "github.com/tecbot/gorocksdb"

type rocksDBIterator struct {
	source *gorocksdb.Iterator
}

var _ Iterator = (*rocksDBIterator)(nil)

func newRocksDBIterator(source *gorocksdb.Iterator) *rocksDBIterator {
	source.SeekToFirst()

	return &rocksDBIterator{source: source}
}

// Valid implements Iterator.
func (itr *rocksDBIterator) Valid() bool {
	return itr.source.Valid()
}

// Next implements Iterator.
func (itr *rocksDBIterator) Next() {
	itr.assertIsValid()
	itr.source.Next()
}

// Key implements Iterator. The returned slice is a copy and remains valid
// after Next.
func (itr *rocksDBIterator) Key() []byte {
	itr.assertIsValid()

	return moveSliceToBytes(itr.source.Key())
}

// Value implements Iterator.
func (itr *rocksDBIterator) Value() []byte {
	itr.assertIsValid()

	return moveSliceToBytes(itr.source.Value())
}

// Error implements Iterator.
func (itr *rocksDBIterator) Error() error {
	return itr.source.Err()
}

// Close implements Iterator.
func (itr *rocksDBIterator) Close() error {
	itr.source.Close()

	return nil
}

func (itr *rocksDBIterator) assertIsValid() {
	if !itr.Valid() {
		panic("iterator is invalid")
	}
}
