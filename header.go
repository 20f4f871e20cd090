// header.go -- the 28-byte database preamble: magic, version, geometry
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import "encoding/binary"

// OpenMode selects how Open treats an existing (or missing) database file.
type OpenMode int

const (
	// RDONLY opens an existing database for reading only; fails if missing.
	RDONLY OpenMode = iota + 1

	// RDWR opens an existing database for reading and writing; fails if missing.
	RDWR

	// RWCREAT opens for reading and writing, creating the file if it's missing.
	RWCREAT

	// RWREPLACE truncates an existing file (or creates one) and opens it for
	// reading and writing.
	RWREPLACE
)

const (
	// version is the on-disk format identifier; it changes whenever the
	// binary layout changes incompatibly.
	version byte = 1

	headerSize = 28 // 4 bytes magic+version + 3 x 8-byte geometry words
)

var magic = [3]byte{'K', 'V', 'B'}

// geometry is the triple (S, K, V) fixed at database creation.
type geometry struct {
	hashTableSize uint64 // S: slots per hash page
	keySize       uint64 // K: key width in bytes, 1..255
	valueSize     uint64 // V: value width in bytes
}

// recordSize is the width of one record: 1 status byte + K key bytes + V value bytes.
func (g geometry) recordSize() uint64 {
	return 1 + g.keySize + g.valueSize
}

// hashPageWords is S+1: S slots plus the trailing next-pointer cell.
func (g geometry) hashPageWords() uint64 {
	return g.hashTableSize + 1
}

// hashPageBytes is 8 * (S+1).
func (g geometry) hashPageBytes() uint64 {
	return 8 * g.hashPageWords()
}

// readOrWriteHeader establishes the header for a freshly opened file: it
// writes a new header when the file is shorter than headerSize (requiring
// non-zero geometry from the caller), or reads and validates an existing one
// (ignoring any caller-supplied geometry, per spec).
func readOrWriteHeader(f file, want geometry) (geometry, error) {
	sz, err := f.size()
	if err != nil {
		return geometry{}, err
	}

	if sz < headerSize {
		if want.hashTableSize == 0 || want.keySize == 0 || want.valueSize == 0 {
			return geometry{}, ErrInvalidParameters
		}
		if want.keySize > 255 {
			return geometry{}, ErrInvalidParameters
		}
		if err := writeHeader(f, want); err != nil {
			return geometry{}, err
		}
		return want, nil
	}

	return readHeader(f)
}

func writeHeader(f file, g geometry) error {
	var buf [headerSize]byte

	buf[0], buf[1], buf[2] = magic[0], magic[1], magic[2]
	buf[3] = version

	le := binary.LittleEndian
	le.PutUint64(buf[4:12], g.hashTableSize)
	le.PutUint64(buf[12:20], g.keySize)
	le.PutUint64(buf[20:28], g.valueSize)

	if err := f.writeAt(buf[:], 0); err != nil {
		return err
	}
	return f.flush()
}

func readHeader(f file) (geometry, error) {
	var buf [headerSize]byte

	if err := f.readAt(buf[:], 0); err != nil {
		return geometry{}, err
	}

	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] || buf[3] != version {
		return geometry{}, ErrCorrupt
	}

	le := binary.LittleEndian
	g := geometry{
		hashTableSize: le.Uint64(buf[4:12]),
		keySize:       le.Uint64(buf[12:20]),
		valueSize:     le.Uint64(buf[20:28]),
	}

	if g.hashTableSize == 0 || g.keySize == 0 || g.valueSize == 0 {
		return geometry{}, ErrCorrupt
	}

	return g, nil
}
