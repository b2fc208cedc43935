// Package starkcrypto is the public API for the STARK curve primitives:
// key derivation, Pedersen and Poseidon hashing, and ECDSA signatures.
// Every value crosses the API as a *big.Int; field inputs must be in
// [0, p), private keys in [1, n) and message hashes below 2^251.
//
// All functions are pure and safe for concurrent use.
package starkcrypto

import (
	"crypto/elliptic"
	"fmt"
	"io"
	"math/big"

	"github.com/smallyu/go-stark-crypto/internal/crypto/curves"
	"github.com/smallyu/go-stark-crypto/internal/crypto/ecdsa"
	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
	"github.com/smallyu/go-stark-crypto/internal/crypto/keccak"
	"github.com/smallyu/go-stark-crypto/internal/crypto/pedersen"
	"github.com/smallyu/go-stark-crypto/internal/crypto/poseidon"
	"github.com/smallyu/go-stark-crypto/internal/crypto/rfc6979"
)

// Signature is a signature with its recovery id.
type Signature struct {
	R *big.Int
	S *big.Int
	V uint8
}

// Curve returns the STARK curve as an elliptic.Curve.
func Curve() elliptic.Curve {
	return curves.Stark()
}

// Prime returns the field modulus p.
func Prime() *big.Int {
	return field.Modulus()
}

// Order returns the curve order n.
func Order() *big.Int {
	return field.Order()
}

func toFelt(name string, v *big.Int) (field.Felt, error) {
	f, err := field.NewFelt(v)
	if err != nil {
		return field.Felt{}, wrap(fmt.Sprintf("invalid %s", name), err)
	}
	return f, nil
}

func toFelts(name string, vs []*big.Int) ([]field.Felt, error) {
	out := make([]field.Felt, len(vs))
	for i, v := range vs {
		f, err := toFelt(fmt.Sprintf("%s[%d]", name, i), v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// GetPublicKey returns the x-coordinate of privateKey*G.
func GetPublicKey(privateKey *big.Int) (*big.Int, error) {
	d, err := toPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	pub, err := ecdsa.GetPublicKey(d)
	if err != nil {
		return nil, wrap("get public key", err)
	}
	return pub.BigInt(), nil
}

func toPrivateKey(v *big.Int) (field.Felt, error) {
	if _, err := field.NewPrivateScalar(v); err != nil {
		return field.Felt{}, wrap("invalid private key", err)
	}
	return field.FeltFromBigInt(v), nil
}

// GenerateKeyPair returns a random private key and its public key.
func GenerateKeyPair(rand io.Reader) (privateKey, publicKey *big.Int, err error) {
	d, err := ecdsa.GenerateKey(rand)
	if err != nil {
		return nil, nil, newError(ErrRandomSource, "generate key pair", err)
	}
	pub, err := ecdsa.GetPublicKey(d)
	if err != nil {
		return nil, nil, wrap("generate key pair", err)
	}
	return d.BigInt(), pub.BigInt(), nil
}

// PedersenHash returns the Pedersen hash of a and b.
func PedersenHash(a, b *big.Int) (*big.Int, error) {
	fa, err := toFelt("left input", a)
	if err != nil {
		return nil, err
	}
	fb, err := toFelt("right input", b)
	if err != nil {
		return nil, err
	}
	return pedersen.Hash(fa, fb).BigInt(), nil
}

// PedersenHashOnElements returns the Pedersen array hash of elems.
func PedersenHashOnElements(elems []*big.Int) (*big.Int, error) {
	fs, err := toFelts("element", elems)
	if err != nil {
		return nil, err
	}
	return pedersen.HashOnElements(fs).BigInt(), nil
}

// PoseidonHash returns the Poseidon hash of x and y.
func PoseidonHash(x, y *big.Int) (*big.Int, error) {
	fx, err := toFelt("x", x)
	if err != nil {
		return nil, err
	}
	fy, err := toFelt("y", y)
	if err != nil {
		return nil, err
	}
	return poseidon.Hash(fx, fy).BigInt(), nil
}

// PoseidonHashSingle returns the Poseidon hash of x.
func PoseidonHashSingle(x *big.Int) (*big.Int, error) {
	fx, err := toFelt("x", x)
	if err != nil {
		return nil, err
	}
	return poseidon.HashSingle(fx).BigInt(), nil
}

// PoseidonHashMany returns the Poseidon sponge hash of inputs.
func PoseidonHashMany(inputs []*big.Int) (*big.Int, error) {
	fs, err := toFelts("input", inputs)
	if err != nil {
		return nil, err
	}
	return poseidon.HashMany(fs).BigInt(), nil
}

// StarknetKeccak returns Keccak-256(data) truncated to 250 bits.
func StarknetKeccak(data []byte) *big.Int {
	return keccak.StarknetKeccak(data).BigInt()
}

// GenerateK returns the deterministic nonce for (msgHash, privateKey, seed).
// A nil seed is treated as zero.
func GenerateK(msgHash, privateKey, seed *big.Int) (*big.Int, error) {
	z, err := toFelt("message hash", msgHash)
	if err != nil {
		return nil, err
	}
	d, err := toPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	s, err := toSeed(seed)
	if err != nil {
		return nil, err
	}
	return rfc6979.GenerateK(z, d, s).BigInt(), nil
}

func toSeed(seed *big.Int) (*field.Felt, error) {
	if seed == nil {
		return nil, nil
	}
	s, err := toFelt("seed", seed)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Sign signs msgHash with privateKey, deriving the nonce from seed. When it
// fails with ErrSigningRetryRequired, call again with a different seed.
func Sign(privateKey, msgHash, seed *big.Int) (r, s *big.Int, err error) {
	sig, err := SignRecoverable(privateKey, msgHash, seed)
	if err != nil {
		return nil, nil, err
	}
	return sig.R, sig.S, nil
}

// SignRecoverable is like Sign but also returns the recovery id.
func SignRecoverable(privateKey, msgHash, seed *big.Int) (*Signature, error) {
	d, err := toPrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	z, err := toFelt("message hash", msgHash)
	if err != nil {
		return nil, err
	}
	sd, err := toSeed(seed)
	if err != nil {
		return nil, err
	}
	sig, err := ecdsa.SignWithSeed(d, z, sd)
	if err != nil {
		return nil, wrap("sign", err)
	}
	return &Signature{R: sig.R.BigInt(), S: sig.S.BigInt(), V: sig.V}, nil
}

// Verify reports whether (r, s) is a valid signature of msgHash by the key
// whose x-coordinate is publicKey. Malformed inputs return an error; a
// well-formed wrong signature returns false.
func Verify(publicKey, msgHash, r, s *big.Int) (bool, error) {
	q, err := toFelt("public key", publicKey)
	if err != nil {
		return false, err
	}
	z, err := toFelt("message hash", msgHash)
	if err != nil {
		return false, err
	}
	fr, err := toFelt("r", r)
	if err != nil {
		return false, err
	}
	fs, err := toFelt("s", s)
	if err != nil {
		return false, err
	}
	ok, err := ecdsa.Verify(q, z, fr, fs)
	if err != nil {
		return false, wrap("verify", err)
	}
	return ok, nil
}

// Recover returns the public key x-coordinate that produced the signature.
func Recover(msgHash, r, s *big.Int, v uint8) (*big.Int, error) {
	z, err := toFelt("message hash", msgHash)
	if err != nil {
		return nil, err
	}
	fr, err := toFelt("r", r)
	if err != nil {
		return nil, err
	}
	fs, err := toFelt("s", s)
	if err != nil {
		return nil, err
	}
	pub, err := ecdsa.Recover(z, ecdsa.Signature{R: fr, S: fs, V: v})
	if err != nil {
		return nil, wrap("recover", err)
	}
	return pub.BigInt(), nil
}
