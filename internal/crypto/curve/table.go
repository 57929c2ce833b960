package curve

import (
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

// The generator table holds table[i] = 2^i * G for i in [0, 256). Building
// it costs ~256 doublings once per process; afterwards every base-point
// multiplication is a pure sequence of additions. The table is written
// exactly once inside the sync.Once body and read-only thereafter, so it
// is safe to share across concurrently running solvers.
var (
	genTableOnce   sync.Once
	genTable       [256]*Point
	genTableBuilds atomic.Uint64
)

func generatorTable() *[256]*Point {
	genTableOnce.Do(func() {
		p := Generator()
		for i := range genTable {
			genTable[i] = p
			p = p.Double()
		}
		genTableBuilds.Add(1)
	})
	return &genTable
}

// TableBuilds returns how many times the generator table has been
// constructed. It is always 0 or 1; exposed so tests can observe that
// concurrent first use does not build the table twice.
func TableBuilds() uint64 {
	return genTableBuilds.Load()
}

// ScalarBaseMult returns k*G using the precomputed power-of-two table:
// the entries whose bit is set in k are summed, so the hot path performs
// no doublings at all. k is reduced mod N first; k = 0 yields the
// identity.
func ScalarBaseMult(k *big.Int) *Point {
	if k.Sign() < 0 {
		k = new(big.Int).Neg(k)
		return ScalarBaseMult(k).Negate()
	}
	k = field.ReduceModN(k)
	table := generatorTable()
	result := Infinity()
	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.Add(table[i])
		}
	}
	return result
}
