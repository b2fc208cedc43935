package curves

import (
	"errors"
	"fmt"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

var (
	// ErrInvalidPublicKey is returned when an x-coordinate has no point on
	// the curve.
	ErrInvalidPublicKey = errors.New("curves: x-coordinate is not on the curve")

	// ErrNotOnCurve is returned by NewPoint for coordinates off the curve.
	ErrNotOnCurve = errors.New("curves: point is not on the curve")
)

// Point is an affine point on the STARK curve, or the point at infinity.
// The zero value is not a valid point; use Infinity for the identity.
type Point struct {
	x, y field.Felt
	inf  bool
}

// Infinity returns the group identity.
func Infinity() Point {
	return Point{inf: true}
}

// NewPoint validates (x, y) and returns it as a point.
func NewPoint(x, y field.Felt) (Point, error) {
	p := Point{x: x, y: y}
	if !p.IsOnCurve() {
		return Point{}, fmt.Errorf("%w: (%s, %s)", ErrNotOnCurve, x, y)
	}
	return p, nil
}

// FromX returns the point with the given x-coordinate and an even
// y-coordinate. The other point with that x is its negation.
func FromX(x field.Felt) (Point, error) {
	y, ok := rhs(x).Sqrt()
	if !ok {
		return Point{}, fmt.Errorf("%w: %s", ErrInvalidPublicKey, x)
	}
	if y.IsOdd() {
		y = y.Neg()
	}
	return Point{x: x, y: y}, nil
}

// rhs evaluates x^3 + alpha*x + beta.
func rhs(x field.Felt) field.Felt {
	return x.Square().Mul(x).Add(alpha.Mul(x)).Add(beta)
}

func (p Point) X() field.Felt { return p.x }
func (p Point) Y() field.Felt { return p.y }

func (p Point) IsInfinity() bool { return p.inf }

// IsOnCurve reports whether p satisfies the curve equation. The identity is
// on the curve.
func (p Point) IsOnCurve() bool {
	if p.inf {
		return true
	}
	return p.y.Square().Equal(rhs(p.x))
}

func (p Point) Equal(q Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Equal(q.x) && p.y.Equal(q.y)
}

// Projective lifts p to projective coordinates.
func (p Point) Projective() Projective {
	if p.inf {
		return ProjectiveInfinity()
	}
	return Projective{x: p.x, y: p.y, z: field.One}
}

// ToAffine returns p. Points are always kept in affine form; the method
// exists so both representations share it.
func (p Point) ToAffine() Point { return p }

func (p Point) Neg() Point {
	if p.inf {
		return p
	}
	return Point{x: p.x, y: p.y.Neg()}
}

func (p Point) Add(q Point) Point {
	return p.Projective().Add(q.Projective()).ToAffine()
}

func (p Point) Sub(q Point) Point {
	return p.Add(q.Neg())
}

func (p Point) Double() Point {
	return p.Projective().Double().ToAffine()
}

// ScalarMul returns k*p in constant time with respect to k.
func (p Point) ScalarMul(k field.Scalar) Point {
	return p.Projective().ScalarMul(k).ToAffine()
}

func (p Point) String() string {
	if p.inf {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
