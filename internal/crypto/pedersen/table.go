package pedersen

import "github.com/smallyu/go-stark-crypto/internal/crypto/curves"

// table holds j * 16^w * P at [w][j] for one generator P.
type table [][windowSize]curves.Point

var (
	lowA, highA, lowB, highB table
)

func init() {
	gens := []curves.Point{p1, p2, p3, p4}
	windows := []int{lowBits / windowBits, 1, lowBits / windowBits, 1}

	var flat []curves.Projective
	for i, g := range gens {
		flat = append(flat, windowMultiples(g, windows[i])...)
	}
	affine := curves.BatchToAffine(flat)

	tables := make([]table, len(gens))
	for i := range gens {
		tables[i] = make(table, windows[i])
		for w := range tables[i] {
			copy(tables[i][w][:], affine[:windowSize])
			affine = affine[windowSize:]
		}
	}
	lowA, highA, lowB, highB = tables[0], tables[1], tables[2], tables[3]
}

// windowMultiples returns the table rows for g in projective form, row by
// row.
func windowMultiples(g curves.Point, windows int) []curves.Projective {
	out := make([]curves.Projective, 0, windows*windowSize)
	base := g.Projective()
	for w := 0; w < windows; w++ {
		acc := curves.ProjectiveInfinity()
		for j := 0; j < windowSize; j++ {
			out = append(out, acc)
			acc = acc.Add(base)
		}
		// acc is now 16 * base.
		base = acc
	}
	return out
}

// accumulate adds the table entries selected by the nibbles of the
// little-endian window sequence. Inputs are public, so lookups index the
// table directly.
func (t table) accumulate(acc curves.Projective, nibble func(w int) byte) curves.Projective {
	for w := range t {
		if j := nibble(w); j != 0 {
			acc = acc.Add(t[w][j].Projective())
		}
	}
	return acc
}
