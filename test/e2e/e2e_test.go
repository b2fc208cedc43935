package e2e

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-stark-crypto/pkg/starkcrypto"
)

var messageBound = new(big.Int).Lsh(big.NewInt(1), 251)

func TestKeyLifecycle(t *testing.T) {
	// Simulate 3 independent signers
	nSigners := 3
	privs := make([]*big.Int, nSigners)
	pubs := make([]*big.Int, nSigners)

	// 1. Key generation
	for i := 0; i < nSigners; i++ {
		d, q, err := starkcrypto.GenerateKeyPair(rand.Reader)
		if err != nil {
			t.Fatalf("signer %d failed to generate key: %v", i, err)
		}
		privs[i], pubs[i] = d, q
	}

	// 2. Every signer signs the same Poseidon digest
	digest, err := starkcrypto.PoseidonHashMany([]*big.Int{big.NewInt(12345), big.NewInt(10)})
	require.NoError(t, err)
	msg := new(big.Int).Mod(digest, messageBound)

	items := make([]starkcrypto.VerifyItem, 0, nSigners*nSigners)
	for i := 0; i < nSigners; i++ {
		sig, err := signWithRetry(privs[i], msg)
		if err != nil {
			t.Fatalf("signer %d failed to sign: %v", i, err)
		}

		// 3. The signature recovers to the signer's key
		recovered, err := starkcrypto.Recover(msg, sig.R, sig.S, sig.V)
		require.NoError(t, err)
		assert.Equal(t, 0, recovered.Cmp(pubs[i]), "signer %d", i)

		// 4. Cross-check against every key
		for j := 0; j < nSigners; j++ {
			items = append(items, starkcrypto.VerifyItem{PublicKey: pubs[j], MsgHash: msg, R: sig.R, S: sig.S})
		}
	}

	results, err := starkcrypto.VerifyBatch(context.Background(), items)
	require.NoError(t, err)
	for i := 0; i < nSigners; i++ {
		for j := 0; j < nSigners; j++ {
			assert.Equal(t, i == j, results[i*nSigners+j], "signature %d against key %d", i, j)
		}
	}
}

func signWithRetry(d, z *big.Int) (*starkcrypto.Signature, error) {
	var err error
	for seed := int64(0); seed < 8; seed++ {
		var sig *starkcrypto.Signature
		sig, err = starkcrypto.SignRecoverable(d, z, big.NewInt(seed))
		if err == nil {
			return sig, nil
		}
	}
	return nil, err
}

func TestHashChains(t *testing.T) {
	// A Pedersen chain folded by hand equals the array hash.
	elems := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}
	acc := big.NewInt(0)
	for _, e := range elems {
		var err error
		acc, err = starkcrypto.PedersenHash(acc, e)
		require.NoError(t, err)
	}
	folded, err := starkcrypto.PedersenHash(acc, big.NewInt(int64(len(elems))))
	require.NoError(t, err)
	array, err := starkcrypto.PedersenHashOnElements(elems)
	require.NoError(t, err)
	assert.Equal(t, 0, folded.Cmp(array))

	// Hash outputs are valid inputs for the next round.
	h := big.NewInt(0)
	for i := 0; i < 10; i++ {
		h, err = starkcrypto.PoseidonHash(h, big.NewInt(int64(i)))
		require.NoError(t, err)
		assert.Equal(t, -1, h.Cmp(starkcrypto.Prime()))
	}
}

func TestSelectorSigning(t *testing.T) {
	d, _ := new(big.Int).SetString("3c1e9550e66958296d11b60f8e8e7a7ad990d07fa65d5f7652c4a6c87d4e3cc", 16)
	pub, err := starkcrypto.GetPublicKey(d)
	require.NoError(t, err)

	// sn_keccak output is 250 bits, always a valid message hash.
	z := starkcrypto.StarknetKeccak([]byte("transfer"))
	r, s, err := starkcrypto.Sign(d, z, nil)
	require.NoError(t, err)

	ok, err := starkcrypto.Verify(pub, z, r, s)
	require.NoError(t, err)
	assert.True(t, ok)

	// Signatures are deterministic.
	r2, s2, err := starkcrypto.Sign(d, z, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Cmp(r2))
	assert.Equal(t, 0, s.Cmp(s2))
}
