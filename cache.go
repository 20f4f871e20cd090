// cache.go -- an optional opportunistic read cache in front of Get
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import (
	lru "github.com/opencoff/golang-lru"
)

// readCache caches recently read (key -> value) pairs behind an ARC policy,
// exactly the way the teacher's DBReader caches decoded records. Unlike that
// read-only constant DB, this engine's records can change, so every Put and
// Delete invalidates the corresponding cache entry -- the cache can mirror a
// live record, but it can never outlive it.
type readCache struct {
	c *lru.ARCCache
}

func newReadCache(size int) (*readCache, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, ErrMalloc
	}
	return &readCache{c: c}, nil
}

func (rc *readCache) get(key []byte) ([]byte, bool) {
	v, ok := rc.c.Get(string(key))
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

func (rc *readCache) add(key, value []byte) {
	// Store a copy: the caller's buffers may be reused or mutated.
	cp := make([]byte, len(value))
	copy(cp, value)
	rc.c.Add(string(key), cp)
}

func (rc *readCache) invalidate(key []byte) {
	rc.c.Remove(string(key))
}

func (rc *readCache) purge() {
	rc.c.Purge()
}
