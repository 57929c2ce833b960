// Package puzzle exposes the ECDLP range solvers: given a bounded range
// [Start, End] of candidate private keys and a target (a P2PKH address,
// or the public key itself when known), find the scalar k with k*G
// mapping to the target.
//
// Two solvers are provided. BruteForceSolver walks the range
// sequentially in O(n) point additions and needs only an address.
// KangarooSolver runs Pollard's lambda method in O(sqrt(n)) expected
// operations but requires the public key.
package puzzle

import (
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecdlp/internal/crypto/address"
	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

// Target identifies what a solved key must map to. It is one of two
// kinds: an address-only target, or a known public key. The kind decides
// which solvers are legal; both kinds are validated eagerly at
// construction so malformed input surfaces before a solve starts.
type Target struct {
	addr    string
	hash160 []byte
	point   *curve.Point // nil for address-only targets
}

// AddressTarget builds a target from a mainnet P2PKH address. The address
// is check-decoded up front; its hash160 is what the brute-force hot loop
// compares against.
func AddressTarget(addr string) (*Target, error) {
	h, err := address.ToHash160(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	return &Target{addr: addr, hash160: h}, nil
}

// PublicKeyTarget builds a target from a hex public key, compressed
// (33 bytes) or uncompressed (65 bytes). The derived compressed address
// is kept alongside so the brute-force solver can also serve this kind.
func PublicKeyTarget(hexKey string) (*Target, error) {
	p, err := address.ParsePublicKey(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	return &Target{
		addr:    address.FromPoint(p),
		hash160: address.Hash160(address.SerializeCompressed(p)),
		point:   p,
	}, nil
}

// HasPublicKey reports whether the public key is known.
func (t *Target) HasPublicKey() bool { return t.point != nil }

// Address returns the P2PKH address of the target.
func (t *Target) Address() string { return t.addr }

// Hash160 returns the 20-byte hash160 of the target's compressed public
// key. Callers must not mutate the returned slice.
func (t *Target) Hash160() []byte { return t.hash160 }

// Point returns the target public key point, or nil for address-only
// targets.
func (t *Target) Point() *curve.Point { return t.point }

// Puzzle is one solve invocation: a candidate range and a target.
// Immutable after construction.
type Puzzle struct {
	Start  *big.Int
	End    *big.Int
	Target *Target
}

// NewPuzzle validates 1 <= start <= end < N and pairs the range with its
// target.
func NewPuzzle(start, end *big.Int, target *Target) (*Puzzle, error) {
	if target == nil {
		return nil, ErrInvalidTarget
	}
	if start == nil || end == nil || start.Sign() < 1 || start.Cmp(end) > 0 || end.Cmp(field.N) >= 0 {
		return nil, ErrInvalidRange
	}
	return &Puzzle{
		Start:  new(big.Int).Set(start),
		End:    new(big.Int).Set(end),
		Target: target,
	}, nil
}

// RangeSize returns End - Start.
func (p *Puzzle) RangeSize() *big.Int {
	return new(big.Int).Sub(p.End, p.Start)
}
