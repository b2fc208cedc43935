// Package poseidon implements the Starknet Poseidon hash: the Hades
// permutation over a width-3 state with a rate-2 sponge on top.
package poseidon

//go:generate go run genconstants.go

import "github.com/smallyu/go-stark-crypto/internal/crypto/field"

const (
	stateWidth    = 3
	fullRounds    = 8
	partialRounds = 83
	numRounds     = fullRounds + partialRounds
)

// Permute applies the Hades permutation to state and returns the result.
func Permute(state [stateWidth]field.Felt) [stateWidth]field.Felt {
	permute(&state)
	return state
}

func permute(s *[stateWidth]field.Felt) {
	for r := 0; r < numRounds; r++ {
		rc := &roundConstants[r]
		s[0] = s[0].Add(rc[0])
		s[1] = s[1].Add(rc[1])
		s[2] = s[2].Add(rc[2])

		if r < fullRounds/2 || r >= fullRounds/2+partialRounds {
			s[0] = cube(s[0])
			s[1] = cube(s[1])
		}
		s[2] = cube(s[2])

		mix(s)
	}
}

func cube(x field.Felt) field.Felt {
	return x.Square().Mul(x)
}

// mix multiplies the state by the MDS matrix
//
//	[ 3  1  1 ]
//	[ 1 -1  1 ]
//	[ 1  1 -2 ]
func mix(s *[stateWidth]field.Felt) {
	t := s[0].Add(s[1]).Add(s[2])
	s0 := t.Add(s[0].Double())
	s1 := t.Sub(s[1].Double())
	s2 := t.Sub(s[2].Double().Add(s[2]))
	s[0], s[1], s[2] = s0, s1, s2
}

// Hash returns the Poseidon hash of two elements.
func Hash(x, y field.Felt) field.Felt {
	s := [stateWidth]field.Felt{x, y, field.FeltFromUint64(2)}
	permute(&s)
	return s[0]
}

// HashSingle returns the Poseidon hash of one element.
func HashSingle(x field.Felt) field.Felt {
	s := [stateWidth]field.Felt{x, field.Zero, field.One}
	permute(&s)
	return s[0]
}

// HashMany hashes a sequence of elements with the rate-2 sponge. The tail
// is padded with a single 1, so sequences of different lengths never
// collide by padding.
func HashMany(xs []field.Felt) field.Felt {
	var h Hasher
	for _, x := range xs {
		h.Update(x)
	}
	return h.Finalize()
}
