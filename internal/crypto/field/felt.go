package field

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

var (
	// ErrOutOfRange is returned when a value does not fit the target range.
	ErrOutOfRange = errors.New("field: value out of range")

	// ErrDivisionByZero is returned when inverting zero.
	ErrDivisionByZero = errors.New("field: division by zero")

	// ErrInvalidScalar is returned when a secret scalar is not in [1, n).
	ErrInvalidScalar = errors.New("field: scalar must be in [1, n)")
)

// FeltBytes is the size of the canonical big-endian encoding of a Felt.
const FeltBytes = fp.Bytes

var (
	modulus       = fp.Modulus()
	modulusMinus2 = new(big.Int).Sub(modulus, big.NewInt(2))
)

// Felt is an element of the STARK prime field, p = 2^251 + 17*2^192 + 1.
// The zero value is the field element 0. Felt is an immutable value type.
type Felt struct {
	v fp.Element
}

var (
	// Zero is the additive identity.
	Zero = Felt{}

	// One is the multiplicative identity.
	One = FeltFromUint64(1)
)

// Modulus returns a copy of the field modulus p.
func Modulus() *big.Int {
	return new(big.Int).Set(modulus)
}

// NewFelt returns v as a field element. It fails with ErrOutOfRange when v is
// nil, negative or not below p.
func NewFelt(v *big.Int) (Felt, error) {
	if v == nil {
		return Felt{}, fmt.Errorf("%w: nil value", ErrOutOfRange)
	}
	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return Felt{}, fmt.Errorf("%w: %s is not below the field modulus", ErrOutOfRange, v.Text(16))
	}
	var f Felt
	f.v.SetBigInt(v)
	return f, nil
}

// FeltFromBigInt reduces v modulo p.
func FeltFromBigInt(v *big.Int) Felt {
	var f Felt
	f.v.SetBigInt(v)
	return f
}

// FeltFromUint64 returns u as a field element.
func FeltFromUint64(u uint64) Felt {
	var f Felt
	f.v.SetUint64(u)
	return f
}

// FeltFromHex parses a hex string with an optional 0x prefix.
func FeltFromHex(s string) (Felt, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Felt{}, fmt.Errorf("field: invalid hex string %q", s)
	}
	return NewFelt(v)
}

// MustFeltFromHex is like FeltFromHex but panics on error. It is meant for
// hard-coded constants only.
func MustFeltFromHex(s string) Felt {
	f, err := FeltFromHex(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FeltFromBytes interprets b as a big-endian integer of at most 32 bytes.
func FeltFromBytes(b []byte) (Felt, error) {
	if len(b) > FeltBytes {
		return Felt{}, fmt.Errorf("%w: %d bytes", ErrOutOfRange, len(b))
	}
	return NewFelt(new(big.Int).SetBytes(b))
}

func (f Felt) Add(g Felt) Felt {
	var r Felt
	r.v.Add(&f.v, &g.v)
	return r
}

func (f Felt) Sub(g Felt) Felt {
	var r Felt
	r.v.Sub(&f.v, &g.v)
	return r
}

func (f Felt) Mul(g Felt) Felt {
	var r Felt
	r.v.Mul(&f.v, &g.v)
	return r
}

func (f Felt) Square() Felt {
	var r Felt
	r.v.Square(&f.v)
	return r
}

func (f Felt) Double() Felt {
	var r Felt
	r.v.Double(&f.v)
	return r
}

func (f Felt) Neg() Felt {
	var r Felt
	r.v.Neg(&f.v)
	return r
}

// Exp returns f^e. e must be non-negative.
func (f Felt) Exp(e *big.Int) Felt {
	if e.Sign() < 0 {
		panic("field: negative exponent")
	}
	var r Felt
	r.v.Exp(f.v, e)
	return r
}

// Inverse returns f^-1 computed as f^(p-2).
func (f Felt) Inverse() (Felt, error) {
	if f.IsZero() {
		return Felt{}, ErrDivisionByZero
	}
	return f.Exp(modulusMinus2), nil
}

// Div returns f / g.
func (f Felt) Div(g Felt) (Felt, error) {
	inv, err := g.Inverse()
	if err != nil {
		return Felt{}, err
	}
	return f.Mul(inv), nil
}

// Sqrt returns a square root of f. ok is false when f is not a quadratic
// residue.
func (f Felt) Sqrt() (root Felt, ok bool) {
	if root.v.Sqrt(&f.v) == nil {
		return Felt{}, false
	}
	return root, true
}

func (f Felt) Equal(g Felt) bool {
	return f.v.Equal(&g.v)
}

func (f Felt) IsZero() bool {
	return f.v.IsZero()
}

// IsOdd reports whether the canonical representative of f is odd.
func (f Felt) IsOdd() bool {
	b := f.v.Bytes()
	return b[FeltBytes-1]&1 == 1
}

// Cmp compares the canonical representatives of f and g.
func (f Felt) Cmp(g Felt) int {
	return f.v.Cmp(&g.v)
}

// BitLen returns the bit length of the canonical representative.
func (f Felt) BitLen() int {
	return f.BigInt().BitLen()
}

// BigInt returns the canonical representative of f in [0, p).
func (f Felt) BigInt() *big.Int {
	return f.v.BigInt(new(big.Int))
}

// Bytes returns the 32-byte big-endian encoding of f.
func (f Felt) Bytes() [FeltBytes]byte {
	return f.v.Bytes()
}

// Text returns f in the given base without prefix.
func (f Felt) Text(base int) string {
	return f.BigInt().Text(base)
}

func (f Felt) String() string {
	return "0x" + f.Text(16)
}
