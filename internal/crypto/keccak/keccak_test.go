package keccak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStarknetKeccak(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0x1d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"hello", "0x8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8"},
		{"transfer", "0x83afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StarknetKeccak([]byte(tt.in))
			assert.Equal(t, tt.want, got.String())
			assert.LessOrEqual(t, got.BitLen(), 250)
		})
	}
}

func TestSelector(t *testing.T) {
	assert.True(t, Selector("transfer").Equal(StarknetKeccak([]byte("transfer"))))
	assert.False(t, Selector("transfer").Equal(Selector("approve")))
}
