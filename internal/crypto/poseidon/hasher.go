package poseidon

import "github.com/smallyu/go-stark-crypto/internal/crypto/field"

// Hasher is an incremental form of HashMany. The zero value is ready to
// use. A Hasher must not be shared between goroutines.
type Hasher struct {
	state    [stateWidth]field.Felt
	buffer   field.Felt
	buffered bool
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Update absorbs one element.
func (h *Hasher) Update(x field.Felt) {
	if !h.buffered {
		h.buffer = x
		h.buffered = true
		return
	}
	h.state[0] = h.state[0].Add(h.buffer)
	h.state[1] = h.state[1].Add(x)
	permute(&h.state)
	h.buffer = field.Zero
	h.buffered = false
}

// Finalize pads the absorbed input and returns the digest. The Hasher is
// left unchanged, so more elements can be absorbed afterwards.
func (h *Hasher) Finalize() field.Felt {
	s := h.state
	if h.buffered {
		s[0] = s[0].Add(h.buffer)
		s[1] = s[1].Add(field.One)
	} else {
		s[0] = s[0].Add(field.One)
	}
	permute(&s)
	return s[0]
}

// Reset returns h to its empty state.
func (h *Hasher) Reset() {
	*h = Hasher{}
}
