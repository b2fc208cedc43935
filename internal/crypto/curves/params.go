package curves

import "github.com/smallyu/go-stark-crypto/internal/crypto/field"

// The STARK curve: y^2 = x^3 + alpha*x + beta over F_p.
var (
	alpha = field.One
	beta  = field.MustFeltFromHex("0x6f21413efbe40de150e596d72f7a8c5609ad26c15c915c1f4cdfcb99cee9e89")

	// b3 = 3*beta, used by the complete addition formulas.
	b3 = beta.Add(beta).Add(beta)

	generator = Point{
		x: field.MustFeltFromHex("0x1ef15c18599971b7beced415a40f0c7deacfd9b0d1819e03d723d8bc943cfca"),
		y: field.MustFeltFromHex("0x5668060aa49730b7be4801df46ec62de53ecd11abe43a32873000c36e8dc1f"),
	}
)

// Alpha returns the curve coefficient alpha.
func Alpha() field.Felt { return alpha }

// Beta returns the curve coefficient beta.
func Beta() field.Felt { return beta }

// Generator returns the base point G.
func Generator() Point { return generator }
