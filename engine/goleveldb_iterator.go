package engine

import (
	"github.com/syndtr/goleveldb/leveldb/iterator"
)

type goLevelDBIterator struct {
	source iterator.Iterator
	valid  bool
}

var _ Iterator = (*goLevelDBIterator)(nil)

func newGoLevelDBIterator(source iterator.Iterator) *goLevelDBIterator {
	return &goLevelDBIterator{
		source: source,
		valid:  source.First(),
	}
}

// Valid implements Iterator.
func (itr *goLevelDBIterator) Valid() bool {
	return itr.valid
}

// Next implements Iterator.
func (itr *goLevelDBIterator) Next() {
	itr.assertIsValid()
	itr.valid = itr.source.Next()
}

// Key implements Iterator. The returned slice is a copy and remains valid
// after Next.
func (itr *goLevelDBIterator) Key() []byte {
	itr.assertIsValid()

	return cp(itr.source.Key())
}

// Value implements Iterator.
func (itr *goLevelDBIterator) Value() []byte {
	itr.assertIsValid()

	return cp(itr.source.Value())
}

// Error implements Iterator.
func (itr *goLevelDBIterator) Error() error {
	return itr.source.Error()
}

// Close implements Iterator.
func (itr *goLevelDBIterator) Close() error {
	itr.source.Release()

	return nil
}

func (itr *goLevelDBIterator) assertIsValid() {
	if !itr.valid {
		panic("iterator is invalid")
	}
}
