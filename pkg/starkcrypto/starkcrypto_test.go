package starkcrypto

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-stark-crypto/internal/crypto/field"
)

func hexInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 0)
	require.True(t, ok, "bad constant %s", s)
	return v
}

func assertHex(t *testing.T, want string, got *big.Int) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want, "0x"+got.Text(16))
}

const (
	privateKey = "0x3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc"
	publicKey  = "0x77a3b314db07c45076d11f62b6f9e748a39790441823307743cf00d6597ea43"
	msgHash    = "0x1e542e2da71b3f5d7b4e9d329b4d30ac0b5d6f266ebef7364bf61c39aac35d0"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, 0, Prime().Cmp(Curve().Params().P))
	assert.Equal(t, 0, Order().Cmp(Curve().Params().N))
}

func TestGetPublicKey(t *testing.T) {
	pub, err := GetPublicKey(hexInt(t, privateKey))
	require.NoError(t, err)
	assertHex(t, publicKey, pub)

	for _, bad := range []*big.Int{nil, big.NewInt(0), big.NewInt(-1), Order()} {
		_, err := GetPublicKey(bad)
		assert.ErrorIs(t, err, ErrInvalidScalar)
		assert.ErrorIs(t, err, field.ErrInvalidScalar)
	}
}

func TestPedersen(t *testing.T) {
	h, err := PedersenHash(
		hexInt(t, "0x3d937c035c878245caf64531a5756109c53068da139362728feb561405371cb"),
		hexInt(t, "0x208a0a10250e382e1e4bbe2880906c2791bf6275695e02fbbc6aeff9cd8b31a"),
	)
	require.NoError(t, err)
	assertHex(t, "0x30e480bed5fe53fa909cc0f8c4d99b8f9f2c016be4c41e13a4848797979c662", h)

	_, err = PedersenHash(Prime(), big.NewInt(0))
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = PedersenHash(big.NewInt(0), big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	h, err = PedersenHashOnElements([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)})
	require.NoError(t, err)
	assertHex(t, "0xf9d95fbf356fbeda26538c92f7040abe51bf142350f73c9ee5ba7c660bae71", h)

	_, err = PedersenHashOnElements([]*big.Int{big.NewInt(1), Prime()})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestPoseidon(t *testing.T) {
	h, err := PoseidonHash(
		hexInt(t, "0xb662f9017fa7956fd70e26129b1833e10ad000fd37b4d9f4e0ce6884b7bbe"),
		hexInt(t, "0x1fe356bf76102cdae1bfbdc173602ead228b12904c00dad9cf16e035468bea"),
	)
	require.NoError(t, err)
	assertHex(t, "0x75540825a6ecc5dc7d7c2f5f868164182742227f1367d66c43ee51ec7937a81", h)

	h, err = PoseidonHashSingle(hexInt(t, "0x9dad5d6f502ccbcb6d34ede04f0337df3b98936aaf782f4cc07d147e3a4fd6"))
	require.NoError(t, err)
	assertHex(t, "0x11222854783f17f1c580ff64671bc3868de034c236f956216e8ed4ab7533455", h)

	h, err = PoseidonHashMany([]*big.Int{big.NewInt(1), big.NewInt(2)})
	require.NoError(t, err)
	assertHex(t, "0x371cb6995ea5e7effcd2e174de264b5b407027a75a231a70c2c8d196107f0e7", h)

	h, err = PoseidonHashMany(nil)
	require.NoError(t, err)
	assertHex(t, "0x2272be0f580fd156823304800919530eaa97430e972d7213ee13f4fbf7a5dbc", h)

	_, err = PoseidonHash(big.NewInt(0), Prime())
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = PoseidonHashSingle(nil)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = PoseidonHashMany([]*big.Int{Prime()})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSignVerifyRecover(t *testing.T) {
	d := hexInt(t, privateKey)
	z := hexInt(t, msgHash)
	pub := hexInt(t, publicKey)

	r, s, err := Sign(d, z, big.NewInt(0))
	require.NoError(t, err)
	assertHex(t, "0x1408ea79096199916cbf2c7a5162aa8973704dbd325cdb4e7d9dcef4dc686f7", r)
	assertHex(t, "0x5635c32072ffbb750006652e6185bd1d2fcbd71306ec500d103530d687139d3", s)

	ok, err := Verify(pub, z, r, s)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify(pub, new(big.Int).Add(z, big.NewInt(1)), r, s)
	require.NoError(t, err)
	assert.False(t, ok)

	sig, err := SignRecoverable(d, z, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, uint8(1), sig.V)
	recovered, err := Recover(z, sig.R, sig.S, sig.V)
	require.NoError(t, err)
	assert.Equal(t, 0, pub.Cmp(recovered))

	k, err := GenerateK(z, d, nil)
	require.NoError(t, err)
	assertHex(t, "0x48a705a92e51ac6911eb4ccf9ee4ce32b65c654fd293129969bc3e9dc0ee844", k)
}

func TestSignErrors(t *testing.T) {
	d := hexInt(t, privateKey)
	bound := new(big.Int).Lsh(big.NewInt(1), 251)

	_, _, err := Sign(d, bound, nil)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, _, err = Sign(big.NewInt(0), big.NewInt(1), nil)
	assert.ErrorIs(t, err, ErrInvalidScalar)

	_, _, err = Sign(d, big.NewInt(1), Prime())
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestVerifyErrors(t *testing.T) {
	pub := hexInt(t, publicKey)
	z := hexInt(t, msgHash)
	bound := new(big.Int).Lsh(big.NewInt(1), 251)
	one := big.NewInt(1)

	_, err := Verify(pub, z, big.NewInt(0), one)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify(pub, z, one, Order())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Verify(pub, bound, one, one)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Verify(big.NewInt(0), z, one, one)
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = Verify(Prime(), z, one, one)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = Recover(z, one, one, 7)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestError(t *testing.T) {
	inner := errors.New("inner")
	err := newError(ErrInvalidInput, "something", inner)
	assert.Equal(t, "something: inner", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, inner)
	assert.NotErrorIs(t, err, ErrOutOfRange)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrInvalidInput, e.Kind)

	bare := newError(ErrDivisionByZero, "bare", nil)
	assert.Equal(t, "bare", bare.Error())
	assert.ErrorIs(t, bare, ErrDivisionByZero)

	assert.Nil(t, wrap("nothing", nil))
	assert.Equal(t, "ErrOutOfRange", ErrOutOfRange.Error())
}

func TestGenerateKeyPair(t *testing.T) {
	priv, pub, err := GenerateKeyPair(rand.Reader)
	require.NoError(t, err)
	want, err := GetPublicKey(priv)
	require.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(pub))

	t.Run("failing reader", func(t *testing.T) {
		readErr := errors.New("entropy exhausted")
		priv, pub, err := GenerateKeyPair(iotest.ErrReader(readErr))
		assert.Nil(t, priv)
		assert.Nil(t, pub)
		assert.ErrorIs(t, err, ErrRandomSource)
		assert.ErrorIs(t, err, readErr)

		var e *Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, ErrRandomSource, e.Kind)
	})
}

func TestVerifyBatch(t *testing.T) {
	d := hexInt(t, privateKey)
	pub := hexInt(t, publicKey)

	var items []VerifyItem
	for i := int64(1); i <= 6; i++ {
		z := big.NewInt(i * 1000)
		r, s, err := Sign(d, z, nil)
		require.NoError(t, err)
		if i%2 == 0 {
			z = new(big.Int).Add(z, big.NewInt(1))
		}
		items = append(items, VerifyItem{PublicKey: pub, MsgHash: z, R: r, S: s})
	}

	results, err := VerifyBatch(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false, true, false}, results)

	items[3].R = big.NewInt(0)
	_, err = VerifyBatch(context.Background(), items)
	assert.ErrorIs(t, err, ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = VerifyBatch(ctx, items[:1])
	assert.ErrorIs(t, err, context.Canceled)

	results, err = VerifyBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
