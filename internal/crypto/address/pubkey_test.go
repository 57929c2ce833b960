package address

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"

	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

func randKeyPoint(t *testing.T) (*big.Int, *curve.Point) {
	t.Helper()
	k, err := rand.Int(rand.Reader, field.N)
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	if k.Sign() == 0 {
		k.SetInt64(1)
	}
	return k, curve.ScalarBaseMult(k)
}

func TestSerializeCompressedMatchesDecred(t *testing.T) {
	for i := 0; i < 8; i++ {
		k, p := randKeyPoint(t)

		priv := secp256k1.PrivKeyFromBytes(k.FillBytes(make([]byte, 32)))
		want := priv.PubKey().SerializeCompressed()
		assert.Equal(t, want, SerializeCompressed(p))
	}
}

func TestParsePublicKeyRoundTrip(t *testing.T) {
	_, p := randKeyPoint(t)

	compressed, err := ParsePublicKey(hex.EncodeToString(SerializeCompressed(p)))
	assert.NoError(t, err)
	assert.True(t, compressed.Equal(p), "compressed round trip")

	uncompressed, err := ParsePublicKey(hex.EncodeToString(SerializeUncompressed(p)))
	assert.NoError(t, err)
	assert.True(t, uncompressed.Equal(p), "uncompressed round trip")
}

func TestParsePublicKeyRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"zz",
		"02",   // truncated
		"0479", // wrong length for its prefix
		// valid length, x not on the curve (x=0 gives y^2=7, a non-residue)
		"020000000000000000000000000000000000000000000000000000000000000000",
	}
	for _, s := range cases {
		_, err := ParsePublicKey(s)
		assert.ErrorIs(t, err, ErrInvalidPubKey, "input %q", s)
	}
}

func TestDecompressParity(t *testing.T) {
	for i := 0; i < 8; i++ {
		_, p := randKeyPoint(t)
		ser := SerializeCompressed(p)
		got, err := ParsePublicKey(hex.EncodeToString(ser))
		assert.NoError(t, err)
		assert.Equal(t, p.Y().Bit(0), got.Y().Bit(0), "parity prefix must pick the right root")
	}
}

func TestAddressRoundTrip(t *testing.T) {
	payload := randBytes(t, 20)
	addr := Base58CheckEncode(append([]byte{0x00}, payload...))
	got, err := ToHash160(addr)
	assert.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFromPointMatchesBtcutil(t *testing.T) {
	_, p := randKeyPoint(t)
	h := Hash160(SerializeCompressed(p))

	want, err := btcutil.NewAddressPubKeyHash(h, &chaincfg.MainNetParams)
	assert.NoError(t, err)
	assert.Equal(t, want.EncodeAddress(), FromPoint(p))

	// And btcutil can decode what we produce, back to the same hash160.
	decoded, err := btcutil.DecodeAddress(FromPoint(p), &chaincfg.MainNetParams)
	assert.NoError(t, err)
	pkh, ok := decoded.(*btcutil.AddressPubKeyHash)
	assert.True(t, ok)
	assert.Equal(t, h, pkh.Hash160()[:])
}

func TestToHash160RejectsWrongVersion(t *testing.T) {
	// 0x05 is the P2SH version byte; the solvers only target P2PKH.
	payload := randBytes(t, 20)
	addr := Base58CheckEncode(append([]byte{0x05}, payload...))
	_, err := ToHash160(addr)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
