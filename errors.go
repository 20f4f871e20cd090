// errors.go -- error sentinels for go-kvdb
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import "errors"

var (
	// ErrIO is returned for any underlying seek/read/write/open failure, a
	// short read where a full record was expected, or (per the
	// original KVDB behavior) a delete targeting a key that isn't present.
	ErrIO = errors.New("kvdb: i/o error")

	// ErrMalloc is returned when the in-memory hash-page array can't grow.
	ErrMalloc = errors.New("kvdb: out of memory")

	// ErrInvalidParameters is returned when creating a new database without
	// supplying non-zero hash_table_size, key_size and value_size, or with a
	// key_size above 255.
	ErrInvalidParameters = errors.New("kvdb: invalid parameters")

	// ErrCorrupt is returned when the file's magic, version, or geometry
	// fields don't pass validation, or when the hash-page chain ends partway
	// through a page. This unifies the original C header's
	// KVDB_ERROR_CORRUPT_DBFILE and the implementation's distinct (and
	// never-declared) KVDB_ERROR_CORRUPT_KVDBFILE into one name.
	ErrCorrupt = errors.New("kvdb: corrupt database file")

	// ErrNotFound is returned by Get when a key has no live record. It is a
	// normal outcome, not a failure, but is exposed as an error so that Get's
	// signature stays idiomatic; callers should check errors.Is(err, ErrNotFound).
	ErrNotFound = errors.New("kvdb: key not found")

	// ErrClosed is returned by any operation attempted on a closed database.
	ErrClosed = errors.New("kvdb: database closed")
)

// Code maps an error returned by this package to the original KVDB integer
// ABI (spec section 6.3): negative for errors, 1 for ErrNotFound. Callers
// that don't need source-level ABI compatibility can use errors.Is instead.
func Code(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotFound):
		return 1
	case errors.Is(err, ErrIO):
		return -1
	case errors.Is(err, ErrMalloc):
		return -2
	case errors.Is(err, ErrInvalidParameters):
		return -3
	case errors.Is(err, ErrCorrupt):
		return -4
	default:
		return -1
	}
}
