// doc.go -- package documentation for go-kvdb
//
// (c) 2024 the go-kvdb authors
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

// Package kvdb implements an embedded, single-process, persistent key-value
// store with fixed-width keys and fixed-width values.
//
// Records are addressed through a chained hash table: each hash page holds a
// fixed number of slots plus a pointer to the next page in the chain. A key
// that collides with an already-occupied slot spills into the next page,
// appending a fresh page to the chain when none of the existing pages have a
// free slot or a matching key. Records themselves live in an append-only
// region of the same file; overwriting a key rewrites its record in place,
// deleting one flips a tombstone byte, and re-inserting a deleted key reuses
// its old slot and record.
//
// The format is deliberately small and single-writer: there is no
// transaction log, no compaction, and no support for concurrent or
// multi-process access. Callers needing those properties should layer them on
// top, or use a different store.
package kvdb
