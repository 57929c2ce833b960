package puzzle

import (
	"math/big"
	"time"
)

// Outcome is the terminal state of a solve.
type Outcome int

const (
	// Solved means the key was found and verified.
	Solved Outcome = iota
	// NotFound means the range was exhausted (brute force) or the
	// configured operation cap was reached (kangaroo) without a match.
	// It is a normal outcome for unsolved ranges, not an error.
	NotFound
	// Cancelled means Stop was called before the solve finished.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case NotFound:
		return "not found"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is what a completed solve returns.
type Result struct {
	Outcome Outcome
	Key     *big.Int // set only when Outcome == Solved
	Ops     uint64
	Elapsed time.Duration
}

// Progress is a read-only snapshot handed to the caller's callback. The
// solver never retains it.
type Progress struct {
	Ops                 uint64
	DistinguishedPoints int // kangaroo only
	Elapsed             time.Duration
	Speed               float64 // operations per second
	Expected            float64 // estimated total operations, for percentages
	Solved              bool
	Key                 *big.Int // set only on the final snapshot of a solved run
}

// ProgressFunc receives progress snapshots. It runs synchronously on the
// solving goroutine: a slow callback stalls the search, and it must not
// call back into the solver. Hand the snapshot to a channel if more work
// is needed.
type ProgressFunc func(Progress)

// Config tunes a solver. The zero value is usable: no callback, default
// reporting interval, no operation cap.
type Config struct {
	// Progress, when non-nil, is invoked every ProgressInterval
	// operations and once more on completion.
	Progress ProgressFunc

	// ProgressInterval is the number of operations between snapshots.
	// Zero means DefaultProgressInterval. Cancellation is polled every
	// iteration regardless.
	ProgressInterval uint64

	// MaxOps, when nonzero, ends the solve with NotFound once that many
	// operations have run. It is the only way a kangaroo search over a
	// fruitless range terminates on its own.
	MaxOps uint64
}

// DefaultProgressInterval is the snapshot spacing used when
// Config.ProgressInterval is zero.
const DefaultProgressInterval = 4096

func (c *Config) interval() uint64 {
	if c == nil || c.ProgressInterval == 0 {
		return DefaultProgressInterval
	}
	return c.ProgressInterval
}
