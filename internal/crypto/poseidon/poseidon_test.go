package poseidon

import (
	"crypto/sha256"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

func felt(t *testing.T, s string) field.Felt {
	t.Helper()
	f, err := field.FeltFromHex(s)
	require.NoError(t, err)
	return f
}

func feltsOf(vs ...uint64) []field.Felt {
	out := make([]field.Felt, len(vs))
	for i, v := range vs {
		out[i] = field.FeltFromUint64(v)
	}
	return out
}

func TestRoundConstants(t *testing.T) {
	p := field.Modulus()
	for r := 0; r < numRounds; r++ {
		for j := 0; j < stateWidth; j++ {
			sum := sha256.Sum256([]byte(fmt.Sprintf("Hades%d", stateWidth*r+j)))
			want := new(big.Int).SetBytes(sum[:])
			want.Mod(want, p)
			require.Equal(t, 0, want.Cmp(roundConstants[r][j].BigInt()), "round %d index %d", r, j)
		}
	}
	assert.Equal(t, "0x6861759ea556a2339dd92f9562a30b9e58e2ad98109ae4780b7fd8eac77fe6f", roundConstants[0][0].String())
}

func TestMix(t *testing.T) {
	s := [stateWidth]field.Felt{field.FeltFromUint64(1), field.FeltFromUint64(2), field.FeltFromUint64(3)}
	mix(&s)
	// [3 1 1; 1 -1 1; 1 1 -2] * (1, 2, 3) = (8, 2, -3)
	assert.True(t, s[0].Equal(field.FeltFromUint64(8)))
	assert.True(t, s[1].Equal(field.FeltFromUint64(2)))
	assert.True(t, s[2].Equal(field.FeltFromUint64(3).Neg()))
}

func TestPermute(t *testing.T) {
	got := Permute([stateWidth]field.Felt{})
	assert.Equal(t, "0x79e8d1e78258000a28fc9d49e233bc6852357968577b1e386550ed6a9086133", got[0].String())
	assert.Equal(t, "0x3840d003d0f3f96dbb796ff6aa6a63be5b5404b91ccaabca256154cbb6fb984", got[1].String())
	assert.Equal(t, "0x1eb39da3f7d3b04142d0ac83d9da00c9325a61fb2ef326e50b70eaa8a3c7cc7", got[2].String())
}

func TestHash(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want string
	}{
		{
			name: "published vector",
			x:    "0xb662f9017fa7956fd70e26129b1833e10ad000fd37b4d9f4e0ce6884b7bbe",
			y:    "0x1fe356bf76102cdae1bfbdc173602ead228b12904c00dad9cf16e035468bea",
			want: "0x75540825a6ecc5dc7d7c2f5f868164182742227f1367d66c43ee51ec7937a81",
		},
		{
			name: "one two",
			x:    "0x1",
			y:    "0x2",
			want: "0x5d44a3decb2b2e0cc71071f7b802f45dd792d064f0fc7316c46514f70f9891a",
		},
		{
			name: "zeros",
			x:    "0x0",
			y:    "0x0",
			want: "0x293d3e8a80f400daaaffdd5932e2bcc8814bab8f414a75dcacf87318f8b14c5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hash(felt(t, tt.x), felt(t, tt.y)).String())
		})
	}
}

func TestHashSingle(t *testing.T) {
	tests := []struct {
		x, want string
	}{
		{"0x9dad5d6f502ccbcb6d34ede04f0337df3b98936aaf782f4cc07d147e3a4fd6", "0x11222854783f17f1c580ff64671bc3868de034c236f956216e8ed4ab7533455"},
		{"0x1", "0x6d226d4c804cd74567f5ac59c6a4af1fe2a6eced19fb7560a9124579877da25"},
		{"0x0", "0x60009f680a43e6f760790f76214b26243464cdd4f31fdc460baf66d32897c1b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HashSingle(felt(t, tt.x)).String(), "x=%s", tt.x)
	}
}

func TestHashMany(t *testing.T) {
	tests := []struct {
		in   []uint64
		want string
	}{
		{nil, "0x2272be0f580fd156823304800919530eaa97430e972d7213ee13f4fbf7a5dbc"},
		{[]uint64{1}, "0x579e8877c7755365d5ec1ec7d3a94a457eff5d1f40482bbe9729c064cdead2"},
		{[]uint64{1, 2}, "0x371cb6995ea5e7effcd2e174de264b5b407027a75a231a70c2c8d196107f0e7"},
		{[]uint64{1, 2, 3}, "0x2f0d8840bcf3bc629598d8a6cc80cb7c0d9e52d93dab244bbf9cd0dca0ad082"},
		{[]uint64{1, 2, 3, 4}, "0x26e3ad8b876e02bc8a4fc43dad40a8f81a6384083cabffa190bcf40d512ae1d"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(len(tt.in)), func(t *testing.T) {
			assert.Equal(t, tt.want, HashMany(feltsOf(tt.in...)).String())
		})
	}
}

func TestHashManyPadding(t *testing.T) {
	// The sponge domain-separates by padding, so neither the empty input nor
	// short inputs coincide with the fixed-arity hashes.
	one := field.One
	assert.False(t, HashMany([]field.Felt{one}).Equal(HashSingle(one)))
	assert.False(t, HashMany(feltsOf(1, 2)).Equal(Hash(one, field.FeltFromUint64(2))))
	assert.False(t, HashMany(feltsOf(1)).Equal(HashMany(feltsOf(1, 0))))
	assert.False(t, HashMany(nil).Equal(HashMany(feltsOf(0))))
}

func TestHasherMatchesHashMany(t *testing.T) {
	h := NewHasher()
	for n := uint64(0); n < 7; n++ {
		want := HashMany(feltsOf(seq(n)...))
		assert.True(t, h.Finalize().Equal(want), "n=%d", n)
		h.Update(field.FeltFromUint64(n + 1))
	}

	h.Reset()
	assert.True(t, h.Finalize().Equal(HashMany(nil)))

	var zero Hasher
	zero.Update(field.One)
	assert.True(t, zero.Finalize().Equal(HashMany(feltsOf(1))))
}

func seq(n uint64) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = uint64(i) + 1
	}
	return out
}

func FuzzHashManyMatchesHasher(f *testing.F) {
	f.Add([]byte{1, 2, 3})
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, data []byte) {
		xs := make([]field.Felt, len(data))
		h := NewHasher()
		for i, b := range data {
			xs[i] = field.FeltFromUint64(uint64(b))
			h.Update(xs[i])
		}
		if !HashMany(xs).Equal(h.Finalize()) {
			t.Fatalf("HashMany and Hasher disagree on %x", data)
		}
	})
}
