// Package field implements modular arithmetic over the secp256k1 prime
// field Fp and the scalar field Zn (the group order).
//
// All functions operate on *big.Int and return freshly allocated values;
// arguments are never mutated. Field elements are ~256 bits, so no
// fixed-width fast path is attempted here.
package field

import "math/big"

// secp256k1 domain parameters (SEC 2, section 2.4.1).
var (
	// P is the field prime: 2^256 - 2^32 - 977.
	P = mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")

	// N is the order of the base point G.
	N = mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	// B is the constant term of the curve equation y^2 = x^3 + B.
	B = big.NewInt(7)

	// Gx, Gy are the affine coordinates of the generator.
	Gx = mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	Gy = mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")

	// sqrtExp = (P+1)/4. Because P = 3 mod 4, x^sqrtExp is a square root
	// of x whenever x is a quadratic residue mod P.
	sqrtExp = new(big.Int).Rsh(new(big.Int).Add(P, big.NewInt(1)), 2)

	// invExp = P-2, the Fermat inverse exponent.
	invExp = new(big.Int).Sub(P, big.NewInt(2))
)

func mustHex(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("field: invalid hex constant " + s)
	}
	return n
}

// Add returns a+b mod P.
func Add(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), P)
}

// Sub returns a-b mod P.
func Sub(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), P)
}

// Mul returns a*b mod P.
func Mul(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), P)
}

// Square returns a^2 mod P.
func Square(a *big.Int) *big.Int {
	return Mul(a, a)
}

// Inverse returns a^-1 mod P via Fermat's little theorem. P is prime, so
// every nonzero element is invertible. Passing zero is a programming
// error and panics.
func Inverse(a *big.Int) *big.Int {
	if new(big.Int).Mod(a, P).Sign() == 0 {
		panic("field: inverse of zero")
	}
	return new(big.Int).Exp(a, invExp, P)
}

// Sqrt returns a square root of a mod P, computed as a^((P+1)/4). The
// result is only a valid root when a is a quadratic residue; callers that
// cannot guarantee that must square the result and compare.
func Sqrt(a *big.Int) *big.Int {
	return new(big.Int).Exp(a, sqrtExp, P)
}

// Mod returns a reduced into [0, P).
func Mod(a *big.Int) *big.Int {
	return new(big.Int).Mod(a, P)
}

// ReduceModN returns k reduced into [0, N).
func ReduceModN(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, N)
}
