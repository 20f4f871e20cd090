// keyenc.go -- turn a human-friendly string into a fixed-width key
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import "github.com/opencoff/go-fasthash"

// stringToKey maps an arbitrary string to a keySize-byte key by hashing it
// with fasthash (seeded with a fixed constant so the mapping is stable
// across runs) and then truncating or zero-extending the 8-byte digest to
// fit. This is purely a CLI convenience for addressing records by a readable
// name instead of raw hex -- the core engine only ever sees keySize-byte
// buffers and has no notion of string keys.
func stringToKey(s string, keySize int) []byte {
	const seed = 0x6b766462

	h := fasthash.Hash64(seed, []byte(s))

	key := make([]byte, keySize)
	var digest [8]byte
	for i := 0; i < 8; i++ {
		digest[i] = byte(h >> (8 * uint(i)))
	}

	if keySize <= 8 {
		copy(key, digest[:keySize])
		return key
	}

	copy(key, digest[:])
	return key
}
