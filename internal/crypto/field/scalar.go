package field

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fr"
)

// ScalarBits is the bit length of the curve order. Scalar multiplication
// walks exactly this many bits.
const ScalarBits = fr.Bits

var (
	order       = fr.Modulus()
	orderMinus2 = new(big.Int).Sub(order, big.NewInt(2))
	orderBytes  = func() (b [FeltBytes]byte) {
		order.FillBytes(b[:])
		return b
	}()
)

// Scalar is an integer modulo the curve order n.
type Scalar struct {
	v fr.Element
}

// Order returns a copy of the curve order n.
func Order() *big.Int {
	return new(big.Int).Set(order)
}

// NewScalar returns v as a scalar. It fails with ErrOutOfRange unless
// 0 <= v < n.
func NewScalar(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(order) >= 0 {
		return Scalar{}, fmt.Errorf("%w: scalar is not below the curve order", ErrOutOfRange)
	}
	var s Scalar
	s.v.SetBigInt(v)
	return s, nil
}

// NewPrivateScalar returns v as a secret scalar. It fails with
// ErrInvalidScalar unless 1 <= v < n. The range check does not depend on
// the position of the first differing bit.
func NewPrivateScalar(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 8*FeltBytes {
		return Scalar{}, ErrInvalidScalar
	}
	var b [FeltBytes]byte
	v.FillBytes(b[:])
	return PrivateScalarFromBytes(b)
}

// PrivateScalarFromFelt converts a field element holding a secret into a
// scalar, with the same range rules as NewPrivateScalar.
func PrivateScalarFromFelt(f Felt) (Scalar, error) {
	return PrivateScalarFromBytes(f.Bytes())
}

// PrivateScalarFromBytes interprets b as a big-endian secret scalar.
func PrivateScalarFromBytes(b [FeltBytes]byte) (Scalar, error) {
	if !IsValidPrivateScalarBytes(&b) {
		return Scalar{}, ErrInvalidScalar
	}
	var s Scalar
	s.v.SetBytes(b[:])
	return s, nil
}

// IsValidPrivateScalarBytes reports whether b encodes an integer in [1, n).
func IsValidPrivateScalarBytes(b *[FeltBytes]byte) bool {
	return ctIsNonZero(b[:])&ctLess(b, &orderBytes) == 1
}

// ScalarFromBigInt reduces v modulo n.
func ScalarFromBigInt(v *big.Int) Scalar {
	var s Scalar
	s.v.SetBigInt(v)
	return s
}

// ScalarFromFelt reduces the canonical representative of f modulo n.
func ScalarFromFelt(f Felt) Scalar {
	b := f.Bytes()
	var s Scalar
	s.v.SetBytes(b[:])
	return s
}

// ScalarFromUint64 returns u as a scalar.
func ScalarFromUint64(u uint64) Scalar {
	var s Scalar
	s.v.SetUint64(u)
	return s
}

// RandomScalar draws a uniformly random scalar in [1, n) from r by
// rejection sampling.
func RandomScalar(r io.Reader) (Scalar, error) {
	var b [FeltBytes]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return Scalar{}, fmt.Errorf("field: reading randomness: %w", err)
		}
		// n < 2^252, so keep the low 252 bits.
		b[0] &= 0x0f
		if s, err := PrivateScalarFromBytes(b); err == nil {
			return s, nil
		}
	}
}

func (s Scalar) Add(t Scalar) Scalar {
	var r Scalar
	r.v.Add(&s.v, &t.v)
	return r
}

func (s Scalar) Sub(t Scalar) Scalar {
	var r Scalar
	r.v.Sub(&s.v, &t.v)
	return r
}

func (s Scalar) Mul(t Scalar) Scalar {
	var r Scalar
	r.v.Mul(&s.v, &t.v)
	return r
}

func (s Scalar) Neg() Scalar {
	var r Scalar
	r.v.Neg(&s.v)
	return r
}

// Inverse returns s^-1 computed as s^(n-2).
func (s Scalar) Inverse() (Scalar, error) {
	if s.IsZero() {
		return Scalar{}, ErrDivisionByZero
	}
	var r Scalar
	r.v.Exp(s.v, orderMinus2)
	return r, nil
}

func (s Scalar) IsZero() bool {
	return s.v.IsZero()
}

func (s Scalar) Equal(t Scalar) bool {
	return s.v.Equal(&t.v)
}

// Bit returns bit i of the canonical representative, 0 <= i < ScalarBits.
func (s Scalar) Bit(i int) uint64 {
	b := s.v.Bytes()
	return uint64(b[FeltBytes-1-i/8]>>(uint(i)%8)) & 1
}

// Felt returns s as a field element. Every scalar is below p.
func (s Scalar) Felt() Felt {
	b := s.v.Bytes()
	var f Felt
	f.v.SetBytes(b[:])
	return f
}

// BigInt returns the canonical representative of s in [0, n).
func (s Scalar) BigInt() *big.Int {
	return s.v.BigInt(new(big.Int))
}

// Bytes returns the 32-byte big-endian encoding of s.
func (s Scalar) Bytes() [FeltBytes]byte {
	return s.v.Bytes()
}

func (s Scalar) String() string {
	return "0x" + s.BigInt().Text(16)
}
