// Package address implements the Bitcoin byte-level codec used by the
// solvers: SHA-256/RIPEMD-160 hashing, Base58Check, compressed public key
// serialization, P2PKH addresses and WIF.
package address

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // required by the Bitcoin address format
)

// Sha256 returns the SHA-256 digest of b.
func Sha256(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

// DoubleSha256 returns SHA256(SHA256(b)), the checksum hash of
// Base58Check.
func DoubleSha256(b []byte) []byte {
	return Sha256(Sha256(b))
}

// Ripemd160 returns the RIPEMD-160 digest of b.
func Ripemd160(b []byte) []byte {
	h := ripemd160.New()
	h.Write(b)
	return h.Sum(nil)
}

// Hash160 returns RIPEMD160(SHA256(b)), the payload of a P2PKH address.
func Hash160(b []byte) []byte {
	return Ripemd160(Sha256(b))
}
