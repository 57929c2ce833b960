package field

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func randElement(t *testing.T) *big.Int {
	t.Helper()
	n, err := rand.Int(rand.Reader, P)
	if err != nil {
		t.Fatalf("rand: %v", err)
	}
	return n
}

func TestConstants(t *testing.T) {
	// The sqrt shortcut x^((P+1)/4) relies on P = 3 mod 4.
	assert.Equal(t, int64(3), new(big.Int).Mod(P, big.NewInt(4)).Int64())
	assert.Equal(t, 256, P.BitLen())
	assert.Equal(t, 256, N.BitLen())
	assert.True(t, N.Cmp(P) < 0)

	// G must satisfy the curve equation.
	lhs := Square(Gy)
	rhs := Add(Mul(Square(Gx), Gx), B)
	assert.Equal(t, 0, lhs.Cmp(rhs))
}

func TestInverse(t *testing.T) {
	one := big.NewInt(1)
	for i := 0; i < 32; i++ {
		a := randElement(t)
		if a.Sign() == 0 {
			continue
		}
		got := Mul(a, Inverse(a))
		if got.Cmp(one) != 0 {
			t.Fatalf("a * a^-1 = %s, want 1", got)
		}
	}
}

func TestInverseOfZeroPanics(t *testing.T) {
	assert.Panics(t, func() { Inverse(big.NewInt(0)) })
	assert.Panics(t, func() { Inverse(new(big.Int).Set(P)) })
}

func TestSqrt(t *testing.T) {
	for i := 0; i < 32; i++ {
		a := randElement(t)
		square := Square(a)
		root := Sqrt(square)
		// Sqrt may return either root; it must square back either way.
		if Square(root).Cmp(square) != 0 {
			t.Fatalf("Sqrt(%s)^2 != %s", a, square)
		}
	}
}

func TestReduceModN(t *testing.T) {
	assert.Equal(t, 0, ReduceModN(N).Sign())
	assert.Equal(t, int64(1), ReduceModN(new(big.Int).Add(N, big.NewInt(1))).Int64())

	// Negative scalars reduce into [0, N).
	got := ReduceModN(big.NewInt(-1))
	want := new(big.Int).Sub(N, big.NewInt(1))
	assert.Equal(t, 0, got.Cmp(want))
}

func TestSubWrapsNegative(t *testing.T) {
	got := Sub(big.NewInt(1), big.NewInt(2))
	want := new(big.Int).Sub(P, big.NewInt(1))
	assert.Equal(t, 0, got.Cmp(want))
}
