package vector

import (
	"encoding/binary"
	"fmt"
	"math"
)

const elemSize = 4

// Encode serializes an embedding to little-endian float32 bytes for BLOB storage.
func Encode(v []float32) []byte {
	out := make([]byte, len(v)*elemSize)
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*elemSize:(i+1)*elemSize], math.Float32bits(f))
	}
	return out
}

// Decode deserializes little-endian float32 bytes back into an embedding.
// Returns an error if the blob length is not a multiple of four.
func Decode(b []byte) ([]float32, error) {
	if len(b)%elemSize != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of %d", len(b), elemSize)
	}
	out := make([]float32, len(b)/elemSize)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*elemSize : (i+1)*elemSize]))
	}
	return out, nil
}
