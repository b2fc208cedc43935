// Package pedersen implements the Starknet Pedersen hash over the STARK
// curve.
package pedersen

import (
	"github.com/smallyu/go-stark-crypto/internal/crypto/curves"
	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

// Hash returns the x-coordinate of
//
//	shift + a_low*P1 + a_high*P2 + b_low*P3 + b_high*P4
//
// where x_low is the low 248 bits of x and x_high the rest.
func Hash(a, b field.Felt) field.Felt {
	acc := shiftPoint.Projective()
	acc = addElement(acc, a, lowA, highA)
	acc = addElement(acc, b, lowB, highB)
	return acc.ToAffine().X()
}

func addElement(acc curves.Projective, x field.Felt, low, high table) curves.Projective {
	buf := x.Bytes()
	// Byte 31 holds bits 0..7, byte 1 holds bits 240..247.
	acc = low.accumulate(acc, func(w int) byte {
		b := buf[field.FeltBytes-1-w/2]
		if w%2 == 0 {
			return b & 0x0f
		}
		return b >> 4
	})
	// Byte 0 holds bits 248..255, of which only 248..251 can be set.
	return high.accumulate(acc, func(int) byte {
		return buf[0] & 0x0f
	})
}

// HashOnElements folds Hash over elems starting from zero and finishes
// with the element count: H(...H(H(0, e0), e1)..., len).
func HashOnElements(elems []field.Felt) field.Felt {
	h := field.Zero
	for _, e := range elems {
		h = Hash(h, e)
	}
	return Hash(h, field.FeltFromUint64(uint64(len(elems))))
}
