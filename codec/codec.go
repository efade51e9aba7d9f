// Package codec encodes cost schedules with the scale codec.
package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/spacemeshos/go-scale"
)

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value scale.Encodable) (int, error) {
	n, err := value.EncodeScale(scale.NewEncoder(w))
	if err != nil {
		return n, fmt.Errorf("encode scale: %w", err)
	}
	return n, nil
}

func decodeFrom(r io.Reader, value scale.Decodable) (int, error) {
	n, err := value.DecodeScale(scale.NewDecoder(r))
	if err != nil {
		return n, fmt.Errorf("decode scale: %w", err)
	}
	return n, nil
}

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(64)
		return b
	},
}

func getEncoderBuffer() *bytes.Buffer {
	return encoderPool.Get().(*bytes.Buffer)
}

func putEncoderBuffer(b *bytes.Buffer) {
	b.Reset()
	encoderPool.Put(b)
}

// Encode value to a byte buffer.
func Encode(value scale.Encodable) ([]byte, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	if _, err := EncodeTo(b, value); err != nil {
		return nil, err
	}
	return bytes.Clone(b.Bytes()), nil
}

// Decode value from a byte buffer. Trailing bytes are an error.
func Decode(buf []byte, value scale.Decodable) error {
	n, err := decodeFrom(bytes.NewReader(buf), value)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("decode: %d trailing bytes", len(buf)-n)
	}
	return nil
}
