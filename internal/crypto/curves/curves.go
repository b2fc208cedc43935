package curves

import (
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

// Curve exposes the STARK curve through the standard library's
// elliptic.Curve interface, for callers that work with big.Int coordinates.
// The point at infinity is encoded as (0, 0), as crypto/elliptic does.
type Curve interface {
	elliptic.Curve

	// NewScalar generates a random private scalar in [1, n)
	NewScalar() (*big.Int, error)
}

type starkCurve struct {
	params *elliptic.CurveParams
}

var stark = &starkCurve{
	params: &elliptic.CurveParams{
		Name:    "stark-curve",
		P:       field.Modulus(),
		N:       field.Order(),
		B:       beta.BigInt(),
		Gx:      generator.x.BigInt(),
		Gy:      generator.y.BigInt(),
		BitSize: field.ScalarBits,
	},
}

// Stark returns the STARK curve. Note that Params().B alone does not
// describe the curve: alpha is 1, not -3.
func Stark() Curve {
	return stark
}

func (c *starkCurve) Params() *elliptic.CurveParams {
	return c.params
}

func (c *starkCurve) NewScalar() (*big.Int, error) {
	k, err := field.RandomScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	return k.BigInt(), nil
}

func (c *starkCurve) IsOnCurve(x, y *big.Int) bool {
	p, ok := toPoint(x, y)
	return ok && !p.IsInfinity()
}

// Add, Double and ScalarMult panic on an invalid point, as the
// crypto/elliptic curves do.
func (c *starkCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	p := mustPoint("Add", x1, y1)
	q := mustPoint("Add", x2, y2)
	return fromPoint(p.Add(q))
}

func (c *starkCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	p := mustPoint("Double", x1, y1)
	return fromPoint(p.Double())
}

func (c *starkCurve) ScalarMult(x1, y1 *big.Int, k []byte) (*big.Int, *big.Int) {
	p := mustPoint("ScalarMult", x1, y1)
	return fromPoint(p.ScalarMul(field.ScalarFromBigInt(new(big.Int).SetBytes(k))))
}

func (c *starkCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return fromPoint(generator.ScalarMul(field.ScalarFromBigInt(new(big.Int).SetBytes(k))))
}

// toPoint converts big.Int coordinates; (0, 0) is the identity. Invalid
// input yields the identity and ok == false.
func toPoint(x, y *big.Int) (Point, bool) {
	if x.Sign() == 0 && y.Sign() == 0 {
		return Infinity(), true
	}
	fx, err := field.NewFelt(x)
	if err != nil {
		return Infinity(), false
	}
	fy, err := field.NewFelt(y)
	if err != nil {
		return Infinity(), false
	}
	p, err := NewPoint(fx, fy)
	if err != nil {
		return Infinity(), false
	}
	return p, true
}

func mustPoint(op string, x, y *big.Int) Point {
	p, ok := toPoint(x, y)
	if !ok {
		panic("curves: " + op + " was called on an invalid point")
	}
	return p
}

func fromPoint(p Point) (*big.Int, *big.Int) {
	if p.IsInfinity() {
		return new(big.Int), new(big.Int)
	}
	return p.x.BigInt(), p.y.BigInt()
}
