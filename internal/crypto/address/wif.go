package address

import (
	"errors"
	"math/big"
)

const wifVersion = 0x80

// ErrInvalidWIF is returned by DecodeWIF for malformed input.
var ErrInvalidWIF = errors.New("address: invalid WIF")

// EncodeWIF encodes a private key in Wallet Import Format:
// Base58Check(0x80 || key32 || [0x01 if compressed]).
func EncodeWIF(key *big.Int, compressed bool) string {
	payload := make([]byte, 33, 34)
	payload[0] = wifVersion
	key.FillBytes(payload[1:33])
	if compressed {
		payload = append(payload, 0x01)
	}
	return Base58CheckEncode(payload)
}

// DecodeWIF decodes a WIF string, returning the key and whether it
// encodes a compressed public key.
func DecodeWIF(s string) (*big.Int, bool, error) {
	payload, err := Base58CheckDecode(s)
	if err != nil {
		return nil, false, err
	}
	if len(payload) == 0 || payload[0] != wifVersion {
		return nil, false, ErrInvalidWIF
	}
	switch len(payload) {
	case 33:
		return new(big.Int).SetBytes(payload[1:]), false, nil
	case 34:
		if payload[33] != 0x01 {
			return nil, false, ErrInvalidWIF
		}
		return new(big.Int).SetBytes(payload[1:33]), true, nil
	default:
		return nil, false, ErrInvalidWIF
	}
}
