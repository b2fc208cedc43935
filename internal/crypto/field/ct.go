package field

import "crypto/subtle"

// CondSwap swaps a and b when c == 1 and leaves them alone when c == 0,
// without branching on c. It is built from fp.Element.Select.
func CondSwap(c uint64, a, b *Felt) {
	t := a.v
	a.v.Select(int(c), &a.v, &b.v)
	b.v.Select(int(c), &b.v, &t)
}

// ctIsNonZero returns 1 if any byte of b is set, 0 otherwise.
func ctIsNonZero(b []byte) int {
	var acc byte
	for _, x := range b {
		acc |= x
	}
	return 1 ^ subtle.ConstantTimeByteEq(acc, 0)
}

// ctLess returns 1 if a < b as big-endian integers, 0 otherwise. It always
// scans every byte.
func ctLess(a, b *[FeltBytes]byte) int {
	borrow := 0
	for i := FeltBytes - 1; i >= 0; i-- {
		d := int(a[i]) - int(b[i]) - borrow
		borrow = (d >> 8) & 1
	}
	return borrow
}
