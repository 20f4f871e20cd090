// iterator.go -- full iteration over live (key, value) pairs
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

// Iterator walks every live record in a Database. The order entries are
// yielded in depends on hash distribution and is unspecified. An Iterator
// borrows its Database and must not outlive it; it uses the database's
// cached in-memory hash-page offsets, so a Put that fills a slot in a page
// the iterator has already passed is not seen by it -- mutating during
// iteration is undefined, per spec.
type Iterator struct {
	db        *Database
	pageIndex int
	slotIndex uint64
	done      bool
}

// Iterator creates a new iterator over db, starting before the first entry.
func (db *Database) Iterator() *Iterator {
	return &Iterator{db: db}
}

// Next advances to the next live entry and reports whether one was found.
// On a true return, key and value are populated; on false with a nil err,
// iteration is exhausted; a non-nil err reports a failure.
func (it *Iterator) Next() (key, value []byte, ok bool, err error) {
	db := it.db
	if db.closed {
		return nil, nil, false, ErrClosed
	}

	for !it.done {
		if it.pageIndex >= db.pc.len() {
			it.done = true
			break
		}

		off := db.pc.page(it.pageIndex).slot(it.slotIndex)
		it.advanceCursor()

		if off == 0 {
			continue
		}

		rec := make([]byte, 1+db.g.keySize+db.g.valueSize)
		if err := db.f.readAt(rec, int64(off)); err != nil {
			return nil, nil, false, err
		}

		if rec[0] == 0 {
			continue
		}

		k := make([]byte, db.g.keySize)
		v := make([]byte, db.g.valueSize)
		copy(k, rec[1:1+db.g.keySize])
		copy(v, rec[1+db.g.keySize:])

		return k, v, true, nil
	}

	return nil, nil, false, nil
}

func (it *Iterator) advanceCursor() {
	it.slotIndex++
	if it.slotIndex >= it.db.g.hashTableSize {
		it.slotIndex = 0
		it.pageIndex++
	}
}
