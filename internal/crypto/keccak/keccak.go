// Package keccak implements sn_keccak, the Keccak-256 digest truncated to
// its low 250 bits so that it always fits in a field element.
package keccak

import (
	"golang.org/x/crypto/sha3"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

// StarknetKeccak returns Keccak-256(data) (legacy padding) masked to 250
// bits.
func StarknetKeccak(data []byte) field.Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	digest := h.Sum(nil)
	digest[0] &= 0x03

	f, err := field.FeltFromBytes(digest)
	if err != nil {
		// 250 bits are always below p.
		panic(err)
	}
	return f
}

// Selector returns the entry point selector for a function name.
func Selector(name string) field.Felt {
	return StarknetKeccak([]byte(name))
}
