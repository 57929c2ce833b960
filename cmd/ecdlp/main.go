// Command ecdlp runs the range solvers against puzzles described in a
// YAML file. Example puzzles.yaml:
//
//	puzzles:
//	  - name: puzzle-20
//	    start: "80000"
//	    end: "fffff"
//	    address: "1HsMJxNiV7TLxmoF6uJNkydxPFDog4NQum"
//	  - name: puzzle-30
//	    start: "20000000"
//	    end: "3fffffff"
//	    pubkey: "030d282cf2ff536d2c42f105d0b8588821a915dc3f9a05bd98bb23af67a2e92a5b"
//
// Ranges are hex. A puzzle with a pubkey is solved with the kangaroo
// solver by default; address-only puzzles always use brute force.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-ecdlp/internal/crypto/address"
	"github.com/smallyu/go-ecdlp/internal/crypto/curve"
	"github.com/smallyu/go-ecdlp/pkg/puzzle"
)

type puzzleEntry struct {
	Name    string `yaml:"name"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	Address string `yaml:"address"`
	PubKey  string `yaml:"pubkey"`
}

type puzzleFile struct {
	Puzzles []puzzleEntry `yaml:"puzzles"`
}

func main() {
	configPath := flag.String("config", "puzzles.yaml", "path to the puzzle definitions file")
	name := flag.String("puzzle", "", "puzzle name to solve (default: first entry)")
	solverName := flag.String("solver", "", "force a solver: brute or kangaroo")
	maxOps := flag.Uint64("max-ops", 0, "stop with 'not found' after this many operations (0 = unlimited)")
	flag.Parse()

	entry, err := loadEntry(*configPath, *name)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	puz, err := buildPuzzle(entry)
	if err != nil {
		log.Fatalf("puzzle %q: %v", entry.Name, err)
	}

	cfg := &puzzle.Config{
		MaxOps:   *maxOps,
		Progress: printProgress,
	}

	fmt.Printf("Puzzle:  %s\n", entry.Name)
	fmt.Printf("Range:   [%s, %s]\n", puz.Start.Text(16), puz.End.Text(16))
	fmt.Printf("Target:  %s\n", puz.Target.Address())

	result, err := run(puz, cfg, *solverName)
	if err != nil {
		log.Fatalf("solve: %v", err)
	}

	fmt.Printf("\nOutcome: %s\n", result.Outcome)
	fmt.Printf("Ops:     %d in %s\n", result.Ops, result.Elapsed.Round(time.Millisecond))
	if result.Outcome == puzzle.Solved {
		fmt.Printf("Key:     %064x\n", result.Key)
		fmt.Printf("WIF:     %s\n", address.EncodeWIF(result.Key, true))
		fmt.Printf("Address: %s\n", address.FromPoint(curve.ScalarBaseMult(result.Key)))
	}
}

func loadEntry(path, name string) (*puzzleEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file puzzleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Puzzles) == 0 {
		return nil, fmt.Errorf("no puzzles in %s", path)
	}
	if name == "" {
		return &file.Puzzles[0], nil
	}
	for i := range file.Puzzles {
		if file.Puzzles[i].Name == name {
			return &file.Puzzles[i], nil
		}
	}
	return nil, fmt.Errorf("puzzle %q not found in %s", name, path)
}

func buildPuzzle(entry *puzzleEntry) (*puzzle.Puzzle, error) {
	start, ok := new(big.Int).SetString(entry.Start, 16)
	if !ok {
		return nil, fmt.Errorf("invalid start %q", entry.Start)
	}
	end, ok := new(big.Int).SetString(entry.End, 16)
	if !ok {
		return nil, fmt.Errorf("invalid end %q", entry.End)
	}

	var target *puzzle.Target
	var err error
	if entry.PubKey != "" {
		target, err = puzzle.PublicKeyTarget(entry.PubKey)
	} else if entry.Address != "" {
		target, err = puzzle.AddressTarget(entry.Address)
	} else {
		return nil, fmt.Errorf("entry has neither address nor pubkey")
	}
	if err != nil {
		return nil, err
	}
	return puzzle.NewPuzzle(start, end, target)
}

func run(puz *puzzle.Puzzle, cfg *puzzle.Config, solverName string) (*puzzle.Result, error) {
	useKangaroo := puz.Target.HasPublicKey()
	switch solverName {
	case "":
	case "brute":
		useKangaroo = false
	case "kangaroo":
		if !puz.Target.HasPublicKey() {
			return nil, puzzle.ErrPubKeyRequired
		}
	default:
		return nil, fmt.Errorf("unknown solver %q", solverName)
	}

	if useKangaroo {
		fmt.Println("Solver:  kangaroo")
		solver, err := puzzle.NewKangarooSolver(puz, cfg)
		if err != nil {
			return nil, err
		}
		stopOnInterrupt(solver.Stop)
		return solver.Solve()
	}

	fmt.Println("Solver:  brute force")
	solver := puzzle.NewBruteForceSolver(puz, cfg)
	stopOnInterrupt(solver.Stop)
	return solver.Solve()
}

// stopOnInterrupt makes the first Ctrl-C cancel the solve cleanly; a
// second one kills the process the usual way.
func stopOnInterrupt(stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		fmt.Println("\nstopping...")
		stop()
		signal.Stop(ch)
	}()
}

func printProgress(p puzzle.Progress) {
	if p.Solved {
		return
	}
	percent := 0.0
	if p.Expected > 0 {
		percent = 100 * float64(p.Ops) / p.Expected
	}
	line := fmt.Sprintf("ops=%d speed=%.0f/s elapsed=%s", p.Ops, p.Speed, p.Elapsed.Round(time.Second))
	if p.DistinguishedPoints > 0 {
		line += fmt.Sprintf(" dp=%d", p.DistinguishedPoints)
	}
	fmt.Printf("\r%s (%.1f%%)", line, percent)
}
