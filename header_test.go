// header_test.go -- test suite for the header codec
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import (
	"os"
	"testing"
)

func tempFile(t *testing.T) (*osFile, string) {
	t.Helper()
	fn := tempDBPath()
	f, _, err := openFile(fn, RWCREAT)
	if err != nil {
		t.Fatalf("openFile: %s", err)
	}
	return f, fn
}

func TestHeaderWriteThenRead(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	want := geometry{hashTableSize: 128, keySize: 16, valueSize: 32}
	got, err := readOrWriteHeader(f, want)
	assert(err == nil, "write header: %s", err)
	assert(got == want, "geometry mismatch: exp %+v, saw %+v", want, got)

	// Reading the header straight back from the now-populated file (as if
	// from a fresh process) yields the geometry that was written.
	got2, err := readHeader(f)
	assert(err == nil, "read header: %s", err)
	assert(got2 == want, "reread geometry mismatch: exp %+v, saw %+v", want, got2)
}

func TestHeaderCallerGeometryIgnoredOnExistingFile(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	orig := geometry{hashTableSize: 4, keySize: 8, valueSize: 8}
	_, err := readOrWriteHeader(f, orig)
	assert(err == nil, "initial write: %s", err)

	bogus := geometry{hashTableSize: 999, keySize: 999, valueSize: 999}
	got, err := readOrWriteHeader(f, bogus)
	assert(err == nil, "reopen read: %s", err)
	assert(got == orig, "caller geometry should have been ignored: saw %+v", got)
}

func TestHeaderRejectsAllZeroGeometryOnCreate(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	_, err := readOrWriteHeader(f, geometry{})
	assert(err == ErrInvalidParameters, "expected ErrInvalidParameters, got %v", err)
}

func TestHeaderBadMagic(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	_, err := readOrWriteHeader(f, geometry{hashTableSize: 4, keySize: 4, valueSize: 4})
	assert(err == nil, "write: %s", err)

	var b [1]byte
	b[0] = 'X'
	assert(f.writeAt(b[:], 0) == nil, "corrupt magic")

	_, err = readHeader(f)
	assert(err == ErrCorrupt, "expected ErrCorrupt, got %v", err)
}
