package shared

import (
	"bytes"
	"fmt"

	"github.com/nullstyle/go-xdr/xdr3"
)

// Proof is what a prover hands to a verifier: the data generated from the nonce and the
// number of zero bytes (the key) that have to be prepended to it to meet the difficulty.
type Proof struct {
	Data []byte
	Key  uint64
}

// MarshalBinary encodes the proof using XDR: variable length opaque data followed by an
// unsigned hyper key.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var w bytes.Buffer
	if _, err := xdr.Marshal(&w, p); err != nil {
		return nil, fmt.Errorf("serialization failure: %w", err)
	}
	return w.Bytes(), nil
}

// UnmarshalBinary decodes an XDR encoded proof. Trailing bytes are rejected.
func (p *Proof) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)
	var proof Proof
	if _, err := xdr.Unmarshal(r, &proof); err != nil {
		return fmt.Errorf("deserialization failure: %w", err)
	}
	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes after proof", ErrInvalidInput, r.Len())
	}
	*p = proof
	return nil
}
