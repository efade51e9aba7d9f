// Package hash fingerprints encoded cost schedules with blake3.
package hash

import (
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"
)

// Size of the fingerprint in bytes.
const Size = 32

// Hash32 is a blake3 fingerprint.
type Hash32 [Size]byte

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

// ShortString returns the first five bytes of the fingerprint in hex, for logs.
func (h Hash32) ShortString() string {
	return hex.EncodeToString(h[:5])
}

var pool = &sync.Pool{
	New: func() any {
		return blake3.New()
	},
}

// GetHasher will get a blake3 hasher from the pool.
// Consumers are expected to call PutHasher once done, the hasher is reset there.
func GetHasher() *blake3.Hasher {
	return pool.Get().(*blake3.Hasher)
}

// PutHasher resets the hasher and returns it back to the pool.
func PutHasher(hasher *blake3.Hasher) {
	hasher.Reset()
	pool.Put(hasher)
}
