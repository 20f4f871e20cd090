// pages.go -- the hash-page chain: an in-memory mirror of an on-disk singly
// linked list of fixed-width hash pages.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package kvdb

import "encoding/binary"

// hashPage is one page of the chain: S slots (record offsets, 0 == empty)
// followed by one next-pointer cell (file offset of the next page, or 0 for
// tail). Modeled as a dense []uint64 of length S+1, indexed by slot rather
// than by manual byte-stride arithmetic.
type hashPage []uint64

func newHashPage(g geometry) hashPage {
	return make(hashPage, g.hashPageWords())
}

func (p hashPage) slot(i uint64) uint64 {
	return p[i]
}

func (p hashPage) setSlot(i uint64, off uint64) {
	p[i] = off
}

func (p hashPage) next(g geometry) uint64 {
	return p[g.hashTableSize]
}

func (p hashPage) setNext(g geometry, off uint64) {
	p[g.hashTableSize] = off
}

func (p hashPage) marshal() []byte {
	buf := make([]byte, len(p)*8)
	le := binary.LittleEndian
	for i, w := range p {
		le.PutUint64(buf[i*8:i*8+8], w)
	}
	return buf
}

func unmarshalHashPage(buf []byte) hashPage {
	n := len(buf) / 8
	p := make(hashPage, n)
	le := binary.LittleEndian
	for i := range p {
		p[i] = le.Uint64(buf[i*8 : i*8+8])
	}
	return p
}

// pageChain is the owned, growable array of hash pages mirroring the on-disk
// chain, plus the byte offset each page lives at (needed to patch a
// predecessor's next-pointer when a new page is appended).
type pageChain struct {
	g       geometry
	pages   []hashPage
	offsets []uint64 // offsets[i] is the on-disk offset of pages[i]
}

// loadPageChain reads every hash page starting immediately after the header,
// following next-pointers until the chain ends.
//
// The original C loader treats any short read of a page as "end of chain",
// which conflates a legitimately empty database (nothing written past the
// header yet) with a file truncated mid-page. We distinguish the two: a read
// of zero bytes at a page boundary is benign; a read of 1..hashPageBytes-1
// bytes is corruption.
func loadPageChain(f file, g geometry) (*pageChain, error) {
	pc := &pageChain{g: g}

	pageBytes := g.hashPageBytes()
	off := uint64(headerSize)

	for {
		buf := make([]byte, pageBytes)
		n, err := f.readPartial(buf, int64(off))
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		if uint64(n) != pageBytes {
			return nil, ErrCorrupt
		}

		p := unmarshalHashPage(buf)
		pc.pages = append(pc.pages, p)
		pc.offsets = append(pc.offsets, off)

		next := p.next(g)
		if next == 0 {
			break
		}
		off = next
	}

	return pc, nil
}

func (pc *pageChain) len() int {
	return len(pc.pages)
}

func (pc *pageChain) page(i int) hashPage {
	return pc.pages[i]
}

// appendPage appends a new hash page at end-of-file, pre-populating the
// slot at index h with the offset the caller's record will occupy (the
// byte immediately following the new page), patches the previous tail
// page's on-disk next-pointer to point at it, and returns the new page's
// index in the chain.
func appendPage(f file, pc *pageChain, h uint64) (int, error) {
	p := newHashPage(pc.g)

	sz, err := f.size()
	if err != nil {
		return 0, err
	}
	newPageOffset := uint64(sz)

	p.setSlot(h, newPageOffset+pc.g.hashPageBytes())

	if err := f.writeAt(p.marshal(), int64(newPageOffset)); err != nil {
		return 0, err
	}

	if n := pc.len(); n > 0 {
		prevOff := pc.offsets[n-1]
		patchOff := prevOff + 8*pc.g.hashTableSize

		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], newPageOffset)
		if err := f.writeAt(b[:], int64(patchOff)); err != nil {
			return 0, err
		}
		pc.pages[n-1].setNext(pc.g, newPageOffset)
	}

	pc.pages = append(pc.pages, p)
	pc.offsets = append(pc.offsets, newPageOffset)

	return pc.len() - 1, nil
}

// patchSlot rewrites slot h of page i both on disk and in memory.
func patchSlot(f file, pc *pageChain, i int, h uint64, recordOffset uint64) error {
	pageOff := pc.offsets[i]
	slotOff := pageOff + 8*h

	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], recordOffset)
	if err := f.writeAt(b[:], int64(slotOff)); err != nil {
		return err
	}

	pc.pages[i].setSlot(h, recordOffset)
	return nil
}
