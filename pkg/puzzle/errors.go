package puzzle

import (
	"errors"
	"fmt"
	"math/big"
)

// Common errors returned when constructing puzzles and solvers.
var (
	ErrInvalidRange   = errors.New("puzzle: invalid scalar range")
	ErrInvalidTarget  = errors.New("puzzle: invalid target")
	ErrPubKeyRequired = errors.New("puzzle: solver requires a known public key")
)

// VerificationError reports a candidate key that matched the search
// criterion but failed final cryptographic verification. It indicates an
// internal arithmetic bug (or a genuine hash collision) rather than a
// user error, and aborts the solve instead of being silently skipped.
type VerificationError struct {
	Stage string   // which check matched, e.g. "hash160" or "distinguished point"
	Key   *big.Int // the candidate that failed verification
	Err   error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("puzzle: %s match failed verification for key %064x: %v", e.Stage, e.Key, e.Err)
	}
	return fmt.Sprintf("puzzle: %s match failed verification for key %064x", e.Stage, e.Key)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}
