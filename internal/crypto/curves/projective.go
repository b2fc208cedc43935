package curves

import "github.com/smallyu/go-stark-crypto/internal/crypto/field"

// Projective is a curve point in homogeneous projective coordinates
// (X : Y : Z), representing the affine point (X/Z, Y/Z). The identity is
// (0 : 1 : 0). Addition and doubling use the complete formulas of Renes,
// Costello and Batina (algorithms 1 and 3, specialised to a = 1), so no
// input needs special casing.
type Projective struct {
	x, y, z field.Felt
}

// ProjectiveInfinity returns the identity (0 : 1 : 0).
func ProjectiveInfinity() Projective {
	return Projective{y: field.One}
}

// IsInfinity reports whether p is the identity.
func (p Projective) IsInfinity() bool {
	return p.z.IsZero()
}

// Add returns p + q.
func (p Projective) Add(q Projective) Projective {
	var t0, t1, t2, t3, t4, t5 field.Felt
	var x3, y3, z3 field.Felt

	t0 = p.x.Mul(q.x)
	t1 = p.y.Mul(q.y)
	t2 = p.z.Mul(q.z)
	t3 = p.x.Add(p.y).Mul(q.x.Add(q.y))
	t4 = t0.Add(t1)
	t3 = t3.Sub(t4)
	t4 = p.x.Add(p.z).Mul(q.x.Add(q.z))
	t5 = t0.Add(t2)
	t4 = t4.Sub(t5)
	t5 = p.y.Add(p.z).Mul(q.y.Add(q.z))
	x3 = t1.Add(t2)
	t5 = t5.Sub(x3)

	// a = 1, so a*t4 = t4 and a*t2 = t2.
	z3 = t4
	x3 = b3.Mul(t2)
	z3 = x3.Add(z3)
	x3 = t1.Sub(z3)
	z3 = t1.Add(z3)
	y3 = x3.Mul(z3)
	t1 = t0.Add(t0)
	t1 = t1.Add(t0)
	t4 = b3.Mul(t4)
	t1 = t1.Add(t2)
	t2 = t0.Sub(t2)
	t4 = t4.Add(t2)
	t0 = t1.Mul(t4)
	y3 = y3.Add(t0)
	t0 = t5.Mul(t4)
	x3 = t3.Mul(x3)
	x3 = x3.Sub(t0)
	t0 = t3.Mul(t1)
	z3 = t5.Mul(z3)
	z3 = z3.Add(t0)

	return Projective{x: x3, y: y3, z: z3}
}

// Double returns 2p.
func (p Projective) Double() Projective {
	var t0, t1, t2, t3 field.Felt
	var x3, y3, z3 field.Felt

	t0 = p.x.Square()
	t1 = p.y.Square()
	t2 = p.z.Square()
	t3 = p.x.Mul(p.y).Double()
	z3 = p.x.Mul(p.z).Double()
	x3 = z3
	y3 = b3.Mul(t2)
	y3 = x3.Add(y3)
	x3 = t1.Sub(y3)
	y3 = t1.Add(y3)
	y3 = x3.Mul(y3)
	x3 = t3.Mul(x3)
	z3 = b3.Mul(z3)
	t3 = t0.Sub(t2)
	t3 = t3.Add(z3)
	z3 = t0.Add(t0)
	t0 = z3.Add(t0)
	t0 = t0.Add(t2)
	t0 = t0.Mul(t3)
	y3 = y3.Add(t0)
	t2 = p.y.Mul(p.z).Double()
	t0 = t2.Mul(t3)
	x3 = x3.Sub(t0)
	z3 = t2.Mul(t1).Double().Double()

	return Projective{x: x3, y: y3, z: z3}
}

// Neg returns -p.
func (p Projective) Neg() Projective {
	return Projective{x: p.x, y: p.y.Neg(), z: p.z}
}

// Sub returns p - q.
func (p Projective) Sub(q Projective) Projective {
	return p.Add(q.Neg())
}

// Equal reports whether p and q represent the same point.
func (p Projective) Equal(q Projective) bool {
	return p.x.Mul(q.z).Equal(q.x.Mul(p.z)) && p.y.Mul(q.z).Equal(q.y.Mul(p.z))
}

// ScalarMul returns k*p using a Montgomery ladder over all ScalarBits bits
// of k. Every step performs one addition and one doubling, and the operands
// are exchanged with masked swaps.
func (p Projective) ScalarMul(k field.Scalar) Projective {
	r0 := ProjectiveInfinity()
	r1 := p
	for i := field.ScalarBits - 1; i >= 0; i-- {
		bit := k.Bit(i)
		condSwap(bit, &r0, &r1)
		r1 = r0.Add(r1)
		r0 = r0.Double()
		condSwap(bit, &r0, &r1)
	}
	return r0
}

func condSwap(c uint64, p, q *Projective) {
	field.CondSwap(c, &p.x, &q.x)
	field.CondSwap(c, &p.y, &q.y)
	field.CondSwap(c, &p.z, &q.z)
}

// ToAffine normalises p with a single inversion.
func (p Projective) ToAffine() Point {
	if p.IsInfinity() {
		return Infinity()
	}
	zInv, _ := p.z.Inverse()
	return Point{x: p.x.Mul(zInv), y: p.y.Mul(zInv)}
}

// BatchToAffine normalises all points with one field inversion
// (Montgomery's trick). Identities map to the affine identity.
func BatchToAffine(points []Projective) []Point {
	out := make([]Point, len(points))
	prefix := make([]field.Felt, len(points))
	acc := field.One
	for i, p := range points {
		prefix[i] = acc
		if !p.IsInfinity() {
			acc = acc.Mul(p.z)
		}
	}
	accInv, err := acc.Inverse()
	if err != nil {
		// acc is a product of non-zero values.
		panic(err)
	}
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if p.IsInfinity() {
			out[i] = Infinity()
			continue
		}
		zInv := accInv.Mul(prefix[i])
		accInv = accInv.Mul(p.z)
		out[i] = Point{x: p.x.Mul(zInv), y: p.y.Mul(zInv)}
	}
	return out
}
