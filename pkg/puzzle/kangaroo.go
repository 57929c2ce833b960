package puzzle

import (
	"math"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
	"github.com/smallyu/go-ecdlp/internal/crypto/field"
)

// numJumps is the number of precomputed jump sizes. Both walks pick a
// jump from the current x-coordinate mod numJumps, so the walk is a
// function of position and the two paths merge after they first meet.
const numJumps = 16

// KangarooSolver runs Pollard's kangaroo (lambda) method: a tame walk
// anchored at End*G and a wild walk anchored at the target public key
// take pseudo-random jumps; each records its distinguished points, and a
// collision between the herds reveals the discrete logarithm. Expected
// cost is about 2.1*sqrt(End-Start) group operations.
type KangarooSolver struct {
	puzzle  *Puzzle
	cfg     Config
	stopped atomic.Bool
}

// kangaroo is one walk: its current point, the distance accumulated from
// its anchor, and the distinguished points it has recorded.
type kangaroo struct {
	point *curve.Point
	dist  *big.Int
	table map[string]*big.Int // x-coordinate hex -> distance
}

// NewKangarooSolver builds a solver for p, which must carry a known
// public key. A nil cfg uses defaults.
func NewKangarooSolver(p *Puzzle, cfg *Config) (*KangarooSolver, error) {
	if !p.Target.HasPublicKey() {
		return nil, ErrPubKeyRequired
	}
	s := &KangarooSolver{puzzle: p}
	if cfg != nil {
		s.cfg = *cfg
	}
	return s, nil
}

// Stop requests cancellation. Safe to call from any goroutine.
func (s *KangarooSolver) Stop() {
	s.stopped.Store(true)
}

// Solve blocks until the key is found and verified, Stop is called, or
// Config.MaxOps is exceeded. A kangaroo search has no natural exhaustion:
// without a cap a fruitless range keeps running until cancelled. The
// returned error is non-nil only for a failed collision verification.
func (s *KangarooSolver) Solve() (*Result, error) {
	target := s.puzzle.Target.Point()
	r := s.puzzle.RangeSize()
	one := big.NewInt(1)

	// Jump sizes are powers of two capped near sqrt(r)/4 so the mean hop
	// keeps both walks inside a window proportional to the range.
	maxPow := r.BitLen()/2 - 2
	if maxPow < 1 {
		maxPow = 1
	}
	jumpSizes := make([]*big.Int, numJumps)
	jumpPoints := make([]*curve.Point, numJumps)
	for i := range jumpSizes {
		jumpSizes[i] = new(big.Int).Lsh(one, uint(i*maxPow/numJumps))
		jumpPoints[i] = curve.ScalarBaseMult(jumpSizes[i])
	}

	// A point is distinguished when the low maskBits of its x-coordinate
	// are zero. Width ~ log2(sqrt(r))/2 balances table memory against
	// how long a collision stays undetected after the walks merge.
	maskBits := r.BitLen() / 4
	if maskBits < 1 {
		maskBits = 1
	}
	if maskBits > 24 {
		maskBits = 24
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(one, uint(maskBits)), one)

	herds := [2]*kangaroo{
		{ // tame: anchored at the known top of the range
			point: curve.ScalarBaseMult(s.puzzle.End),
			dist:  new(big.Int),
			table: make(map[string]*big.Int),
		},
		{ // wild: anchored at the unknown target
			point: target,
			dist:  new(big.Int),
			table: make(map[string]*big.Int),
		},
	}

	rFloat, _ := new(big.Float).SetInt(r).Float64()
	expected := 2.1 * math.Sqrt(rFloat)
	interval := s.cfg.interval()
	start := time.Now()
	var ops uint64
	distinguishedCount := 0

	for {
		if s.stopped.Load() {
			return s.finish(Cancelled, nil, ops, distinguishedCount, start, expected), nil
		}
		if s.cfg.MaxOps > 0 && ops >= s.cfg.MaxOps {
			return s.finish(NotFound, nil, ops, distinguishedCount, start, expected), nil
		}

		for i, k := range herds {
			idx := jumpIndex(k.point)
			k.point = k.point.Add(jumpPoints[idx])
			k.dist = new(big.Int).Add(k.dist, jumpSizes[idx])
			ops++

			if !isDistinguished(k.point, mask) {
				continue
			}
			xKey := k.point.X().Text(16)
			other := herds[1-i]
			d, hit := other.table[xKey]
			if !hit {
				// First visit: record and keep walking. Revisits just
				// overwrite, which is harmless.
				k.table[xKey] = new(big.Int).Set(k.dist)
				distinguishedCount++
				continue
			}

			// The herds collided. End + tameDist == key + wildDist at
			// the shared point, so the key falls out directly.
			tameDist, wildDist := k.dist, d
			if i == 1 {
				tameDist, wildDist = d, k.dist
			}
			key := new(big.Int).Add(s.puzzle.End, tameDist)
			key.Sub(key, wildDist)
			key = field.ReduceModN(key)

			// Tables key on x alone, which can collide without the
			// walks having met; the reconstruction must be checked.
			if !curve.ScalarBaseMult(key).Equal(target) {
				return nil, &VerificationError{Stage: "distinguished point", Key: key}
			}
			return s.finish(Solved, key, ops, distinguishedCount, start, expected), nil
		}

		if s.cfg.Progress != nil && ops%interval < 2 {
			s.emit(ops, distinguishedCount, start, expected, false, nil)
		}
	}
}

func jumpIndex(p *curve.Point) int {
	if p.IsInfinity() {
		return 0
	}
	return int(new(big.Int).Mod(p.X(), big.NewInt(numJumps)).Int64())
}

func isDistinguished(p *curve.Point, mask *big.Int) bool {
	if p.IsInfinity() {
		return false
	}
	return new(big.Int).And(p.X(), mask).Sign() == 0
}

func (s *KangarooSolver) emit(ops uint64, dp int, start time.Time, expected float64, solved bool, key *big.Int) {
	elapsed := time.Since(start)
	var speed float64
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(ops) / secs
	}
	s.cfg.Progress(Progress{
		Ops:                 ops,
		DistinguishedPoints: dp,
		Elapsed:             elapsed,
		Speed:               speed,
		Expected:            expected,
		Solved:              solved,
		Key:                 key,
	})
}

func (s *KangarooSolver) finish(outcome Outcome, key *big.Int, ops uint64, dp int, start time.Time, expected float64) *Result {
	if s.cfg.Progress != nil {
		s.emit(ops, dp, start, expected, outcome == Solved, key)
	}
	return &Result{
		Outcome: outcome,
		Key:     key,
		Ops:     ops,
		Elapsed: time.Since(start),
	}
}
