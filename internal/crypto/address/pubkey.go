package address

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

// P2PKH version byte for Bitcoin mainnet.
const mainnetVersion = 0x00

var (
	// ErrInvalidPubKey is returned for public keys that fail to parse or
	// do not lie on the curve.
	ErrInvalidPubKey = errors.New("address: invalid public key")

	// ErrInvalidAddress is returned for strings that are not mainnet
	// P2PKH addresses.
	ErrInvalidAddress = errors.New("address: invalid P2PKH address")
)

// SerializeCompressed returns the 33-byte compressed encoding of p: a
// parity prefix (0x02 for even y, 0x03 for odd) followed by the 32-byte
// big-endian x coordinate.
func SerializeCompressed(p *curve.Point) []byte {
	out := make([]byte, 33)
	if p.Y().Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	p.X().FillBytes(out[1:])
	return out
}

// SerializeUncompressed returns the 65-byte 0x04-prefixed encoding of p.
func SerializeUncompressed(p *curve.Point) []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	p.X().FillBytes(out[1:33])
	p.Y().FillBytes(out[33:])
	return out
}

// ParsePublicKey parses a hex public key, either 33-byte compressed
// (02/03 prefix) or 65-byte uncompressed (04 prefix), and validates that
// the result is on the curve.
func ParsePublicKey(s string) (*curve.Point, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
	}
	switch {
	case len(raw) == 33 && (raw[0] == 0x02 || raw[0] == 0x03):
		return decompress(raw[0], new(big.Int).SetBytes(raw[1:]))
	case len(raw) == 65 && raw[0] == 0x04:
		p, err := curve.NewPoint(
			new(big.Int).SetBytes(raw[1:33]),
			new(big.Int).SetBytes(raw[33:]),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPubKey, err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported length %d", ErrInvalidPubKey, len(raw))
	}
}

// decompress recovers y from x via y^2 = x^3 + 7. The square root is
// x^((P+1)/4); the prefix picks between y and P-y by parity.
func decompress(prefix byte, x *big.Int) (*curve.Point, error) {
	if x.Cmp(field.P) >= 0 {
		return nil, fmt.Errorf("%w: x out of range", ErrInvalidPubKey)
	}
	ySquared := field.Add(field.Mul(field.Square(x), x), field.B)
	y := field.Sqrt(ySquared)
	if field.Square(y).Cmp(ySquared) != 0 {
		// x^3+7 was not a quadratic residue: no such point exists.
		return nil, fmt.Errorf("%w: not a curve x-coordinate", ErrInvalidPubKey)
	}
	wantOdd := prefix == 0x03
	if (y.Bit(0) == 1) != wantOdd {
		y = field.Sub(big.NewInt(0), y)
	}
	return curve.NewPoint(x, y)
}

// FromPoint returns the mainnet P2PKH address of the compressed form
// of p.
func FromPoint(p *curve.Point) string {
	payload := append([]byte{mainnetVersion}, Hash160(SerializeCompressed(p))...)
	return Base58CheckEncode(payload)
}

// ToHash160 check-decodes a mainnet P2PKH address and returns its 20-byte
// hash160 payload.
func ToHash160(addr string) ([]byte, error) {
	payload, err := Base58CheckDecode(addr)
	if err != nil {
		return nil, err
	}
	if len(payload) != 21 || payload[0] != mainnetVersion {
		return nil, ErrInvalidAddress
	}
	return payload[1:], nil
}
