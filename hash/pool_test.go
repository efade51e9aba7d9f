package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func sum(chunks ...[]byte) (rst Hash32) {
	hasher := GetHasher()
	defer PutHasher(hasher)
	for _, chunk := range chunks {
		hasher.Write(chunk)
	}
	hasher.Sum(rst[:0])
	return rst
}

func TestPooledHasher(t *testing.T) {
	expected := blake3.Sum256([]byte("tiered costs"))
	require.Equal(t, Hash32(expected), sum([]byte("tiered"), []byte(" costs")))
	require.Equal(t, Hash32(expected), sum([]byte("tiered costs")))
	require.NotEqual(t, sum([]byte("a")), sum([]byte("b")))
}

func TestPooledHasherIsReset(t *testing.T) {
	hasher := GetHasher()
	hasher.Write([]byte("garbage"))
	PutHasher(hasher)

	require.Equal(t, Hash32(blake3.Sum256(nil)), sum())
}

func TestHashString(t *testing.T) {
	h := Hash32{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02}
	require.Equal(t, "deadbeef01", h.ShortString())
	require.Len(t, h.String(), 2*Size)
}
