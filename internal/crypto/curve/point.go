// Package curve implements the secp256k1 group law in affine coordinates
// (y^2 = x^3 + 7 over Fp) together with scalar multiplication.
//
// Points are immutable: every operation allocates its result. The package
// intentionally stays in affine form; the solvers that sit on top of it
// spend almost all of their time in single point additions, where affine
// formulas with one Fermat inversion per step are simple and correct.
package curve

import (
	"errors"
	"math/big"

	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

// Point is a point on secp256k1, or the point at infinity.
type Point struct {
	x, y *big.Int
	inf  bool
}

// ErrNotOnCurve is returned by NewPoint for coordinates that do not
// satisfy the curve equation.
var ErrNotOnCurve = errors.New("curve: point is not on secp256k1")

// Infinity returns the identity element.
func Infinity() *Point {
	return &Point{inf: true}
}

// NewPoint constructs a point from affine coordinates, validating that it
// lies on the curve.
func NewPoint(x, y *big.Int) (*Point, error) {
	p := &Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
	if !p.IsOnCurve() {
		return nil, ErrNotOnCurve
	}
	return p, nil
}

// Generator returns the base point G.
func Generator() *Point {
	return &Point{x: new(big.Int).Set(field.Gx), y: new(big.Int).Set(field.Gy)}
}

// X returns the affine x coordinate. Undefined for the point at infinity.
func (p *Point) X() *big.Int { return p.x }

// Y returns the affine y coordinate. Undefined for the point at infinity.
func (p *Point) Y() *big.Int { return p.y }

// IsInfinity reports whether p is the identity.
func (p *Point) IsInfinity() bool { return p.inf }

// IsOnCurve reports whether p satisfies y^2 = x^3 + 7 mod P. The point at
// infinity is considered on the curve.
func (p *Point) IsOnCurve() bool {
	if p.inf {
		return true
	}
	lhs := field.Square(p.y)
	rhs := field.Add(field.Mul(field.Square(p.x), p.x), field.B)
	return lhs.Cmp(rhs) == 0
}

// Equal reports coordinate-wise equality.
func (p *Point) Equal(q *Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// Negate returns -p, i.e. (x, P-y). The identity negates to itself.
func (p *Point) Negate() *Point {
	if p.inf {
		return Infinity()
	}
	return &Point{x: new(big.Int).Set(p.x), y: field.Sub(big.NewInt(0), p.y)}
}

// Add returns p+q under the group law. It handles all special cases:
// either operand being the identity, q == -p (result is the identity),
// and q == p (doubling).
func (p *Point) Add(q *Point) *Point {
	if p.inf {
		return q
	}
	if q.inf {
		return p
	}
	if p.x.Cmp(q.x) == 0 {
		if p.y.Cmp(q.y) != 0 || p.y.Sign() == 0 {
			// q == -p: vertical line, no third intersection.
			return Infinity()
		}
		return p.Double()
	}
	// lambda = (y2 - y1) / (x2 - x1)
	lambda := field.Mul(field.Sub(q.y, p.y), field.Inverse(field.Sub(q.x, p.x)))
	x3 := field.Sub(field.Sub(field.Square(lambda), p.x), q.x)
	y3 := field.Sub(field.Mul(lambda, field.Sub(p.x, x3)), p.y)
	return &Point{x: x3, y: y3}
}

// Double returns 2p.
func (p *Point) Double() *Point {
	if p.inf || p.y.Sign() == 0 {
		return Infinity()
	}
	// lambda = 3x^2 / 2y (the a coefficient of secp256k1 is zero)
	three := big.NewInt(3)
	two := big.NewInt(2)
	lambda := field.Mul(
		field.Mul(three, field.Square(p.x)),
		field.Inverse(field.Mul(two, p.y)),
	)
	x3 := field.Sub(field.Sub(field.Square(lambda), p.x), p.x)
	y3 := field.Sub(field.Mul(lambda, field.Sub(p.x, x3)), p.y)
	return &Point{x: x3, y: y3}
}

// ScalarMult returns k*p by double-and-add over the bits of k, least
// significant first. k is reduced mod N; k = 0 yields the identity; a
// negative k multiplies -p by |k|.
func ScalarMult(k *big.Int, p *Point) *Point {
	if k.Sign() < 0 {
		return ScalarMult(new(big.Int).Neg(k), p.Negate())
	}
	k = field.ReduceModN(k)
	result := Infinity()
	addend := p
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.Add(addend)
		}
		addend = addend.Double()
	}
	return result
}
