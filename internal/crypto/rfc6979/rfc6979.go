// Package rfc6979 derives deterministic ECDSA nonces for the STARK curve
// with HMAC-DRBG (RFC 6979, section 3.2) over SHA-256.
package rfc6979

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

// GenerateK returns the nonce for signing msgHash with privateKey. The
// optional seed is mixed in as additional data with its leading zero bytes
// stripped, so a nil seed and a zero seed give the same nonce. The result is
// always in [1, n).
func GenerateK(msgHash, privateKey field.Felt, seed *field.Felt) field.Scalar {
	x := privateKey.Bytes()
	h := msgHash.Bytes()

	var extra []byte
	if seed != nil {
		sb := seed.Bytes()
		i := 0
		for i < len(sb) && sb[i] == 0 {
			i++
		}
		extra = sb[i:]
	}

	d := newDRBG(x[:], h[:], extra)
	for {
		// Each candidate is the top 252 bits of a 256-bit block.
		k := shiftRight4(d.next())
		if s, err := field.PrivateScalarFromBytes(k); err == nil {
			return s
		}
		d.reseed()
	}
}

// drbg is the HMAC_DRBG state (K, V) from RFC 6979 section 3.2.
type drbg struct {
	k []byte
	v []byte
}

func newDRBG(entropy, nonce, extra []byte) *drbg {
	d := &drbg{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range d.v {
		d.v[i] = 0x01
	}
	for _, sep := range []byte{0x00, 0x01} {
		d.k = d.mac(d.v, []byte{sep}, entropy, nonce, extra)
		d.v = d.mac(d.v)
	}
	return d
}

func (d *drbg) next() [field.FeltBytes]byte {
	d.v = d.mac(d.v)
	var out [field.FeltBytes]byte
	copy(out[:], d.v)
	return out
}

// reseed is step 3.2.h.3: K = HMAC_K(V || 0x00), V = HMAC_K(V).
func (d *drbg) reseed() {
	d.k = d.mac(d.v, []byte{0x00})
	d.v = d.mac(d.v)
}

func (d *drbg) mac(parts ...[]byte) []byte {
	m := hmac.New(sha256.New, d.k)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func shiftRight4(b [field.FeltBytes]byte) [field.FeltBytes]byte {
	var out [field.FeltBytes]byte
	for i := len(b) - 1; i > 0; i-- {
		out[i] = b[i]>>4 | b[i-1]<<4
	}
	out[0] = b[0] >> 4
	return out
}
