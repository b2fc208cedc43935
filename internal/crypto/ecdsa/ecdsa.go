// Package ecdsa implements the Starknet variant of ECDSA over the STARK
// curve. Public keys are identified by their x-coordinate only, and the
// message hash, r and s are all bounded by 2^251.
package ecdsa

import (
	"errors"
	"fmt"
	"io"

	"github.com/smallyu/go-stark-crypto/internal/crypto/curves"
	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
	"github.com/smallyu/go-stark-crypto/internal/crypto/rfc6979"
)

// ElementBits bounds the message hash and the signature components:
// all of them must be below 2^ElementBits.
const ElementBits = 251

var (
	// ErrInvalidInput is returned when r, s or w = s^-1 is out of range.
	ErrInvalidInput = errors.New("ecdsa: signature component out of range")

	// ErrInvalidPublicKey is returned for an x-coordinate with no curve point.
	ErrInvalidPublicKey = curves.ErrInvalidPublicKey

	// ErrSigningRetryRequired is returned when the nonce produced r or s
	// outside the valid range. Signing again with another nonce fixes it.
	ErrSigningRetryRequired = errors.New("ecdsa: degenerate signature, retry with another nonce")

	// ErrInvalidRecoveryID is returned when v is neither 0 nor 1.
	ErrInvalidRecoveryID = errors.New("ecdsa: recovery id must be 0 or 1")
)

// Signature is an ECDSA signature. V is the parity of the y-coordinate of
// the nonce point and lets Recover find the public key.
type Signature struct {
	R field.Felt
	S field.Felt
	V uint8
}

// GenerateKey returns a random private key in [1, n).
func GenerateKey(rand io.Reader) (field.Felt, error) {
	d, err := field.RandomScalar(rand)
	if err != nil {
		return field.Felt{}, err
	}
	return d.Felt(), nil
}

// GetPublicKey returns the x-coordinate of privateKey*G.
func GetPublicKey(privateKey field.Felt) (field.Felt, error) {
	d, err := field.PrivateScalarFromFelt(privateKey)
	if err != nil {
		return field.Felt{}, err
	}
	return curves.Generator().ScalarMul(d).X(), nil
}

// Sign signs msgHash with privateKey using the nonce k.
func Sign(privateKey, msgHash field.Felt, k field.Scalar) (Signature, error) {
	if !belowBound(msgHash) {
		return Signature{}, fmt.Errorf("%w: message hash must be below 2^%d", field.ErrOutOfRange, ElementBits)
	}
	d, err := field.PrivateScalarFromFelt(privateKey)
	if err != nil {
		return Signature{}, err
	}
	kInv, err := k.Inverse()
	if err != nil {
		return Signature{}, fmt.Errorf("%w: zero nonce", field.ErrInvalidScalar)
	}

	// 1. R = k*G, r = R.x
	R := curves.Generator().ScalarMul(k)
	r := R.X()
	if r.IsZero() || !belowBound(r) {
		return Signature{}, ErrSigningRetryRequired
	}

	// 2. s = k^-1 * (z + r*d) mod n. Both z and r are below 2^251 < n.
	z := field.ScalarFromFelt(msgHash)
	s := kInv.Mul(z.Add(field.ScalarFromFelt(r).Mul(d))).Felt()
	if s.IsZero() || !belowBound(s) {
		return Signature{}, ErrSigningRetryRequired
	}

	var v uint8
	if R.Y().IsOdd() {
		v = 1
	}
	return Signature{R: r, S: s, V: v}, nil
}

// SignWithSeed derives the nonce with rfc6979.GenerateK and signs. A nil
// seed is the same as a zero seed.
func SignWithSeed(privateKey, msgHash field.Felt, seed *field.Felt) (Signature, error) {
	return Sign(privateKey, msgHash, rfc6979.GenerateK(msgHash, privateKey, seed))
}

// Verify checks a signature against the x-coordinate of a public key.
// Since only Q.x is known, both Q and -Q are accepted. A well-formed but
// wrong signature returns false and no error.
func Verify(publicKey, msgHash, r, s field.Felt) (bool, error) {
	if !belowBound(msgHash) {
		return false, fmt.Errorf("%w: message hash must be below 2^%d", field.ErrOutOfRange, ElementBits)
	}
	if r.IsZero() || !belowBound(r) {
		return false, fmt.Errorf("%w: r", ErrInvalidInput)
	}
	if s.IsZero() || !belowBound(s) {
		return false, fmt.Errorf("%w: s", ErrInvalidInput)
	}
	q, err := curves.FromX(publicKey)
	if err != nil {
		return false, err
	}

	w, err := field.ScalarFromFelt(s).Inverse()
	if err != nil {
		return false, fmt.Errorf("%w: s", ErrInvalidInput)
	}
	if !belowBound(w.Felt()) {
		return false, fmt.Errorf("%w: w", ErrInvalidInput)
	}

	u1 := field.ScalarFromFelt(msgHash).Mul(w)
	u2 := field.ScalarFromFelt(r).Mul(w)
	zG := curves.Generator().Projective().ScalarMul(u1)
	rQ := q.Projective().ScalarMul(u2)

	for _, candidate := range []curves.Projective{zG.Add(rQ), zG.Sub(rQ)} {
		p := candidate.ToAffine()
		if !p.IsInfinity() && p.X().Equal(r) {
			return true, nil
		}
	}
	return false, nil
}

// Recover returns the x-coordinate of the public key that produced the
// signature (r, s, v) over msgHash.
func Recover(msgHash field.Felt, sig Signature) (field.Felt, error) {
	if !belowBound(msgHash) {
		return field.Felt{}, fmt.Errorf("%w: message hash must be below 2^%d", field.ErrOutOfRange, ElementBits)
	}
	if sig.R.IsZero() || !belowBound(sig.R) {
		return field.Felt{}, fmt.Errorf("%w: r", ErrInvalidInput)
	}
	if sig.S.IsZero() || sig.S.BigInt().Cmp(field.Order()) >= 0 {
		return field.Felt{}, fmt.Errorf("%w: s", ErrInvalidInput)
	}
	if sig.V > 1 {
		return field.Felt{}, ErrInvalidRecoveryID
	}

	R, err := curves.FromX(sig.R)
	if err != nil {
		return field.Felt{}, fmt.Errorf("%w: no curve point for r", ErrInvalidInput)
	}
	if R.Y().IsOdd() != (sig.V == 1) {
		R = R.Neg()
	}

	// Q = r^-1 * (s*R - z*G)
	rInv, _ := field.ScalarFromFelt(sig.R).Inverse()
	sR := R.Projective().ScalarMul(field.ScalarFromFelt(sig.S))
	zG := curves.Generator().Projective().ScalarMul(field.ScalarFromFelt(msgHash))
	q := sR.Sub(zG).ScalarMul(rInv).ToAffine()
	if q.IsInfinity() {
		return field.Felt{}, fmt.Errorf("%w: recovered the point at infinity", ErrInvalidInput)
	}
	return q.X(), nil
}

// belowBound reports whether f < 2^251.
func belowBound(f field.Felt) bool {
	return f.BitLen() <= ElementBits
}
