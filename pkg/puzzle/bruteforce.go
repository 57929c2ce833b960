package puzzle

import (
	"bytes"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/smallyu/go-ecdlp/internal/crypto/address"
	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
)

// BruteForceSolver searches [Start, End] sequentially. The hot loop costs
// one point addition per candidate: after the initial Start*G, each next
// point is current + G rather than a fresh scalar multiplication. The
// per-candidate check is a raw hash160 byte comparison; the full address
// is only re-encoded once, to confirm a hit.
type BruteForceSolver struct {
	puzzle  *Puzzle
	cfg     Config
	stopped atomic.Bool
}

// NewBruteForceSolver builds a solver for p. A nil cfg uses defaults.
// Works for both target kinds; a known public key reduces to its
// hash160.
func NewBruteForceSolver(p *Puzzle, cfg *Config) *BruteForceSolver {
	s := &BruteForceSolver{puzzle: p}
	if cfg != nil {
		s.cfg = *cfg
	}
	return s
}

// Stop requests cancellation. Safe to call from any goroutine; the solve
// observes it within one loop iteration.
func (s *BruteForceSolver) Stop() {
	s.stopped.Store(true)
}

// Solve runs to completion, cancellation, or range exhaustion. It blocks;
// run it on a dedicated goroutine for non-blocking use. The returned
// error is non-nil only for a verification failure, which indicates an
// internal bug rather than an unsolved puzzle.
func (s *BruteForceSolver) Solve() (*Result, error) {
	targetHash := s.puzzle.Target.Hash160()
	g := curve.Generator()
	current := curve.ScalarBaseMult(s.puzzle.Start)
	k := new(big.Int).Set(s.puzzle.Start)
	one := big.NewInt(1)

	interval := s.cfg.interval()
	expected, _ := new(big.Float).SetInt(new(big.Int).Add(s.puzzle.RangeSize(), one)).Float64()
	start := time.Now()
	var ops uint64

	for k.Cmp(s.puzzle.End) <= 0 {
		if s.stopped.Load() {
			return s.finish(Cancelled, nil, ops, start, expected), nil
		}
		if s.cfg.MaxOps > 0 && ops >= s.cfg.MaxOps {
			return s.finish(NotFound, nil, ops, start, expected), nil
		}

		if bytes.Equal(address.Hash160(address.SerializeCompressed(current)), targetHash) {
			key := new(big.Int).Set(k)
			if err := s.verify(current, key); err != nil {
				return nil, err
			}
			return s.finish(Solved, key, ops+1, start, expected), nil
		}

		current = current.Add(g)
		k.Add(k, one)
		ops++
		if s.cfg.Progress != nil && ops%interval == 0 {
			s.emit(ops, start, expected, false, nil)
		}
	}
	return s.finish(NotFound, nil, ops, start, expected), nil
}

// verify confirms a hash160 hit against the full target before it is
// reported. A mismatch here means the arithmetic is broken or a genuine
// hash collision occurred; both abort the solve visibly.
func (s *BruteForceSolver) verify(p *curve.Point, key *big.Int) error {
	if address.FromPoint(p) != s.puzzle.Target.Address() {
		return &VerificationError{Stage: "hash160", Key: key}
	}
	if s.puzzle.Target.HasPublicKey() && !p.Equal(s.puzzle.Target.Point()) {
		return &VerificationError{Stage: "hash160", Key: key}
	}
	return nil
}

func (s *BruteForceSolver) emit(ops uint64, start time.Time, expected float64, solved bool, key *big.Int) {
	elapsed := time.Since(start)
	var speed float64
	if secs := elapsed.Seconds(); secs > 0 {
		speed = float64(ops) / secs
	}
	s.cfg.Progress(Progress{
		Ops:      ops,
		Elapsed:  elapsed,
		Speed:    speed,
		Expected: expected,
		Solved:   solved,
		Key:      key,
	})
}

func (s *BruteForceSolver) finish(outcome Outcome, key *big.Int, ops uint64, start time.Time, expected float64) *Result {
	if s.cfg.Progress != nil {
		s.emit(ops, start, expected, outcome == Solved, key)
	}
	return &Result{
		Outcome: outcome,
		Key:     key,
		Ops:     ops,
		Elapsed: time.Since(start),
	}
}
