// kvdb.go -- the record engine: Open/Close/Get/Put/Delete
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

// keyCompareChunk bounds the stack buffer used while streaming a candidate
// record's key past the caller's key for comparison. Key width is capped at
// 255 bytes (spec section 4.1), matching the original C implementation's
// 256-byte scratch buffer (1 byte reserved for the status byte it reads in
// the same pass).
const keyCompareChunk = 255

// Database is an open handle on a kvdb file: the file substrate, its fixed
// geometry, and an in-memory copy of every hash page in the chain.
//
// A Database is not safe for concurrent use; the engine is single-threaded
// by design (spec section 5). Callers sharing a handle across goroutines must
// provide their own synchronization.
type Database struct {
	f      file
	g      geometry
	pc     *pageChain
	cache  *readCache
	closed bool
}

// Open opens (or creates) a database at path under mode. hashTableSize,
// keySize and valueSize are only consulted when the file is being created;
// for an existing file they're read back from the header and any values
// passed here are ignored.
func Open(path string, mode OpenMode, hashTableSize, keySize, valueSize uint64) (*Database, error) {
	return OpenCached(path, mode, hashTableSize, keySize, valueSize, 0)
}

// OpenCached is Open with an additional opportunistic read cache of up to
// cacheSize recently-read (key -> value) pairs. cacheSize <= 0 disables the
// cache entirely, same as Open.
func OpenCached(path string, mode OpenMode, hashTableSize, keySize, valueSize uint64, cacheSize int) (*Database, error) {
	want := geometry{hashTableSize: hashTableSize, keySize: keySize, valueSize: valueSize}

	f, _, err := openFile(path, mode)
	if err != nil {
		return nil, err
	}

	g, err := readOrWriteHeader(f, want)
	if err != nil {
		f.close()
		return nil, err
	}

	pc, err := loadPageChain(f, g)
	if err != nil {
		f.close()
		return nil, err
	}

	db := &Database{
		f:  f,
		g:  g,
		pc: pc,
	}
	if cacheSize > 0 {
		c, err := newReadCache(cacheSize)
		if err != nil {
			f.close()
			return nil, err
		}
		db.cache = c
	}

	return db, nil
}

// HashTableSize, KeySize and ValueSize return this database's fixed geometry.
func (db *Database) HashTableSize() uint64 { return db.g.hashTableSize }
func (db *Database) KeySize() uint64       { return db.g.keySize }
func (db *Database) ValueSize() uint64     { return db.g.valueSize }

// Close releases the file handle and all in-memory hash-page state. The
// handle must not be used again afterwards.
func (db *Database) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true
	if db.cache != nil {
		db.cache.purge()
	}
	return db.f.close()
}

// Get looks up key and copies its value into a newly allocated slice. It
// returns ErrNotFound if the key has no live record.
func (db *Database) Get(key []byte) ([]byte, error) {
	if db.closed {
		return nil, ErrClosed
	}
	if len(key) != int(db.g.keySize) {
		return nil, ErrInvalidParameters
	}

	if db.cache != nil {
		if v, ok := db.cache.get(key); ok {
			cp := make([]byte, len(v))
			copy(cp, v)
			return cp, nil
		}
	}

	h := slotFor(key, db.g)

	for i := 0; i < db.pc.len(); i++ {
		off := db.pc.page(i).slot(h)
		if off == 0 {
			return nil, ErrNotFound
		}

		status, matched, err := db.readStatusAndCompare(off, key)
		if err != nil {
			return nil, err
		}
		if !matched {
			continue
		}
		if status == 0 {
			return nil, ErrNotFound
		}

		val := make([]byte, db.g.valueSize)
		if err := db.f.readAt(val, int64(off)+1+int64(db.g.keySize)); err != nil {
			return nil, err
		}

		if db.cache != nil {
			db.cache.add(key, val)
		}
		return val, nil
	}

	return nil, ErrNotFound
}

// Put inserts or overwrites key with value. Overwriting an existing live key
// rewrites its value in place and never changes the file's size; inserting a
// brand new key appends a record (and, if necessary, a new hash page) at
// end-of-file.
func (db *Database) Put(key, value []byte) error {
	if db.closed {
		return ErrClosed
	}
	if len(key) != int(db.g.keySize) || len(value) != int(db.g.valueSize) {
		return ErrInvalidParameters
	}
	if err := db.putOrDelete(key, value, false); err != nil {
		return err
	}
	if db.cache != nil {
		db.cache.invalidate(key)
	}
	return nil
}

// Delete tombstones key's record so it's no longer returned by Get or
// iteration. Its slot is retained and reused if the key is later re-inserted.
// Deleting a key that was never inserted returns ErrIO, matching the
// original KVDB behavior (spec section 9, open question 1) rather than
// ErrNotFound.
func (db *Database) Delete(key []byte) error {
	if db.closed {
		return ErrClosed
	}
	if len(key) != int(db.g.keySize) {
		return ErrInvalidParameters
	}
	if err := db.putOrDelete(key, nil, true); err != nil {
		return err
	}
	if db.cache != nil {
		db.cache.invalidate(key)
	}
	return nil
}

// putOrDelete implements both Put and Delete: walk the chain looking for a
// matching key or an empty slot; append a record (and possibly a new page)
// when neither is found.
func (db *Database) putOrDelete(key, value []byte, del bool) error {
	h := slotFor(key, db.g)

	for i := 0; i < db.pc.len(); i++ {
		off := db.pc.page(i).slot(h)

		if off != 0 {
			status, matched, err := db.readStatusAndCompare(off, key)
			if err != nil {
				return err
			}
			if !matched {
				continue
			}

			if del {
				if err := db.writeStatus(off, 0); err != nil {
					return err
				}
				return db.f.flush()
			}

			if status == 0 {
				if err := db.writeStatus(off, 1); err != nil {
					return err
				}
				if err := db.f.writeAt(key, int64(off)+1); err != nil {
					return err
				}
			}
			if err := db.f.writeAt(value, int64(off)+1+int64(db.g.keySize)); err != nil {
				return err
			}
			return db.f.flush()
		}

		// empty slot
		if del {
			return ErrIO
		}

		rec := db.encodeRecord(key, value)
		recOff, err := db.f.append(rec)
		if err != nil {
			return err
		}
		if err := patchSlot(db.f, db.pc, i, h, uint64(recOff)); err != nil {
			return err
		}
		return db.f.flush()
	}

	if del {
		return ErrIO
	}

	i, err := appendPage(db.f, db.pc, h)
	if err != nil {
		return err
	}

	recOff := db.pc.offsets[i] + db.g.hashPageBytes()
	rec := db.encodeRecord(key, value)
	if err := db.f.writeAt(rec, int64(recOff)); err != nil {
		return err
	}
	return db.f.flush()
}

func (db *Database) encodeRecord(key, value []byte) []byte {
	buf := make([]byte, 1+len(key)+len(value))
	buf[0] = 1
	copy(buf[1:], key)
	copy(buf[1+len(key):], value)
	return buf
}

// readStatusAndCompare reads the status byte at off and streams the record's
// key (immediately following it) for comparison against key, in chunks of up
// to keyCompareChunk bytes.
func (db *Database) readStatusAndCompare(off uint64, key []byte) (status byte, matched bool, err error) {
	var sb [1]byte
	if err := db.f.readAt(sb[:], int64(off)); err != nil {
		return 0, false, err
	}
	status = sb[0]

	var chunk [keyCompareChunk]byte
	pos := int64(off) + 1
	remaining := key

	for len(remaining) > 0 {
		n := len(remaining)
		if n > keyCompareChunk {
			n = keyCompareChunk
		}
		if err := db.f.readAt(chunk[:n], pos); err != nil {
			return status, false, err
		}
		for i := 0; i < n; i++ {
			if chunk[i] != remaining[i] {
				return status, false, nil
			}
		}
		remaining = remaining[n:]
		pos += int64(n)
	}

	return status, true, nil
}

func (db *Database) writeStatus(off uint64, status byte) error {
	b := [1]byte{status}
	return db.f.writeAt(b[:], int64(off))
}
