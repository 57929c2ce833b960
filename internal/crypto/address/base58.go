package address

import (
	"bytes"
	"errors"
	"math/big"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	// ErrInvalidBase58 is returned when decoding input that contains a
	// character outside the Bitcoin alphabet.
	ErrInvalidBase58 = errors.New("address: invalid base58 character")

	// ErrChecksum is returned by Base58CheckDecode when the embedded
	// 4-byte checksum does not match the payload.
	ErrChecksum = errors.New("address: base58check checksum mismatch")

	bigRadix = big.NewInt(58)
)

// Base58Encode encodes b into the Bitcoin base58 alphabet. Each leading
// zero byte of b maps to one leading '1' in the output; big-integer base
// conversion alone would drop them.
func Base58Encode(b []byte) string {
	n := new(big.Int).SetBytes(b)
	mod := new(big.Int)

	var out []byte
	for n.Sign() > 0 {
		n.DivMod(n, bigRadix, mod)
		out = append(out, base58Alphabet[mod.Int64()])
	}
	for _, c := range b {
		if c != 0 {
			break
		}
		out = append(out, base58Alphabet[0])
	}

	// The digits were produced least significant first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// Base58Decode is the exact inverse of Base58Encode.
func Base58Decode(s string) ([]byte, error) {
	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		idx := bytes.IndexByte([]byte(base58Alphabet), s[i])
		if idx < 0 {
			return nil, ErrInvalidBase58
		}
		n.Mul(n, bigRadix)
		n.Add(n, big.NewInt(int64(idx)))
	}

	leadingOnes := 0
	for leadingOnes < len(s) && s[leadingOnes] == base58Alphabet[0] {
		leadingOnes++
	}
	return append(make([]byte, leadingOnes), n.Bytes()...), nil
}

// Base58CheckEncode appends the first four bytes of the double-SHA256 of
// payload and base58-encodes the result.
func Base58CheckEncode(payload []byte) string {
	checksum := DoubleSha256(payload)[:4]
	return Base58Encode(append(append([]byte{}, payload...), checksum...))
}

// Base58CheckDecode decodes s and verifies its trailing 4-byte checksum,
// returning the payload with the checksum stripped.
func Base58CheckDecode(s string) ([]byte, error) {
	raw, err := Base58Decode(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < 5 {
		return nil, ErrChecksum
	}
	payload, checksum := raw[:len(raw)-4], raw[len(raw)-4:]
	if !bytes.Equal(DoubleSha256(payload)[:4], checksum) {
		return nil, ErrChecksum
	}
	return payload, nil
}
