package puzzle

import (
	"encoding/hex"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smallyu/go-ecdlp/internal/crypto/address"
	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
)

func TestKangarooRequiresPublicKey(t *testing.T) {
	_, _, addr := plantKey(t, big.NewInt(1), big.NewInt(1<<16))
	target, err := AddressTarget(addr)
	assert.NoError(t, err)
	p, err := NewPuzzle(big.NewInt(1), big.NewInt(1<<16), target)
	assert.NoError(t, err)

	_, err = NewKangarooSolver(p, nil)
	assert.ErrorIs(t, err, ErrPubKeyRequired)
}

func TestKangarooFindsPlantedKey(t *testing.T) {
	// A ~22-bit range keeps the expected sqrt-cost walk short enough
	// for a unit test while still exercising real collisions.
	lo := new(big.Int).Lsh(big.NewInt(1), 21)
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 22), big.NewInt(1))
	secret, point, _ := plantKey(t, lo, hi)

	target, err := PublicKeyTarget(hex.EncodeToString(address.SerializeCompressed(point)))
	assert.NoError(t, err)
	p, err := NewPuzzle(lo, hi, target)
	assert.NoError(t, err)

	solver, err := NewKangarooSolver(p, nil)
	assert.NoError(t, err)
	result, err := solver.Solve()
	assert.NoError(t, err)

	assert.Equal(t, Solved, result.Outcome)
	assert.Equal(t, 0, result.Key.Cmp(secret))
	// The solution must hold under scalar multiplication, not just table
	// bookkeeping.
	assert.True(t, curve.ScalarBaseMult(result.Key).Equal(point))
}

func TestKangarooProgress(t *testing.T) {
	lo := new(big.Int).Lsh(big.NewInt(1), 19)
	hi := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 20), big.NewInt(1))
	_, point, _ := plantKey(t, lo, hi)

	target, err := PublicKeyTarget(hex.EncodeToString(address.SerializeCompressed(point)))
	assert.NoError(t, err)
	p, err := NewPuzzle(lo, hi, target)
	assert.NoError(t, err)

	var snapshots []Progress
	solver, err := NewKangarooSolver(p, &Config{
		ProgressInterval: 256,
		Progress:         func(pr Progress) { snapshots = append(snapshots, pr) },
	})
	assert.NoError(t, err)
	result, err := solver.Solve()
	assert.NoError(t, err)
	assert.Equal(t, Solved, result.Outcome)

	assert.NotEmpty(t, snapshots)
	final := snapshots[len(snapshots)-1]
	assert.True(t, final.Solved)
	assert.Equal(t, 0, final.Key.Cmp(result.Key))
	assert.Greater(t, final.Expected, 0.0)
	// Some distinguished points must have been recorded along the way.
	assert.Greater(t, final.DistinguishedPoints, 0)
}

func TestKangarooMaxOps(t *testing.T) {
	// The secret is far outside the searched range, so no collision can
	// be verified; the caller-imposed cap is the only terminator.
	_, point, _ := plantKey(t, new(big.Int).Lsh(big.NewInt(1), 40), new(big.Int).Lsh(big.NewInt(1), 41))

	target, err := PublicKeyTarget(hex.EncodeToString(address.SerializeCompressed(point)))
	assert.NoError(t, err)
	p, err := NewPuzzle(big.NewInt(1), big.NewInt(1<<16), target)
	assert.NoError(t, err)

	solver, err := NewKangarooSolver(p, &Config{MaxOps: 2000})
	assert.NoError(t, err)
	result, err := solver.Solve()
	assert.NoError(t, err)
	assert.Equal(t, NotFound, result.Outcome)
	assert.Nil(t, result.Key)
	assert.GreaterOrEqual(t, result.Ops, uint64(2000))
}

func TestKangarooCancellation(t *testing.T) {
	_, point, _ := plantKey(t, new(big.Int).Lsh(big.NewInt(1), 40), new(big.Int).Lsh(big.NewInt(1), 41))

	target, err := PublicKeyTarget(hex.EncodeToString(address.SerializeCompressed(point)))
	assert.NoError(t, err)
	p, err := NewPuzzle(big.NewInt(1), new(big.Int).Lsh(big.NewInt(1), 32), target)
	assert.NoError(t, err)

	solver, err := NewKangarooSolver(p, nil)
	assert.NoError(t, err)

	done := make(chan *Result, 1)
	go func() {
		result, err := solver.Solve()
		assert.NoError(t, err)
		done <- result
	}()

	time.Sleep(20 * time.Millisecond)
	solver.Stop()

	select {
	case result := <-done:
		assert.Equal(t, Cancelled, result.Outcome)
		assert.Nil(t, result.Key)
	case <-time.After(5 * time.Second):
		t.Fatal("solver did not observe Stop")
	}
}
