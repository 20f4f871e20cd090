// pages_test.go -- test suite for the hash-page chain
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import (
	"os"
	"testing"
)

func TestPageChainAppendAndLoad(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	g := geometry{hashTableSize: 4, keySize: 4, valueSize: 4}
	_, err := readOrWriteHeader(f, g)
	assert(err == nil, "header: %s", err)

	pc, err := loadPageChain(f, g)
	assert(err == nil, "load: %s", err)
	assert(pc.len() == 0, "expected empty chain, got %d pages", pc.len())

	i, err := appendPage(f, pc, 2)
	assert(err == nil, "append: %s", err)
	assert(i == 0, "expected index 0, got %d", i)
	assert(pc.len() == 1, "expected 1 page, got %d", pc.len())
	assert(pc.page(0).slot(2) != 0, "slot 2 should be pre-populated")

	i2, err := appendPage(f, pc, 1)
	assert(err == nil, "append2: %s", err)
	assert(i2 == 1, "expected index 1, got %d", i2)
	assert(pc.page(0).next(g) == pc.offsets[1], "previous page's next-pointer not patched")

	// Reload from disk and confirm it mirrors the in-memory chain.
	pc2, err := loadPageChain(f, g)
	assert(err == nil, "reload: %s", err)
	assert(pc2.len() == 2, "expected 2 pages on reload, got %d", pc2.len())
	assert(pc2.page(0).slot(2) == pc.page(0).slot(2), "slot 2 mismatch after reload")
	assert(pc2.page(0).next(g) == pc.offsets[1], "next-pointer mismatch after reload")
	assert(pc2.page(1).slot(1) == pc.page(1).slot(1), "slot 1 mismatch after reload")
}

func TestPatchSlot(t *testing.T) {
	assert := newAsserter(t)

	f, fn := tempFile(t)
	defer os.Remove(fn)
	defer f.close()

	g := geometry{hashTableSize: 4, keySize: 4, valueSize: 4}
	_, err := readOrWriteHeader(f, g)
	assert(err == nil, "header: %s", err)

	pc, err := loadPageChain(f, g)
	assert(err == nil, "load: %s", err)

	_, err = appendPage(f, pc, 0)
	assert(err == nil, "append: %s", err)

	assert(patchSlot(f, pc, 0, 3, 12345) == nil, "patch failed")
	assert(pc.page(0).slot(3) == 12345, "in-memory slot not updated")

	pc2, err := loadPageChain(f, g)
	assert(err == nil, "reload: %s", err)
	assert(pc2.page(0).slot(3) == 12345, "on-disk slot not updated")
}
