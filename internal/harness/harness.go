// Package harness drives a SuffixStack and a naive oracle through the same
// randomized operation sequence, asserting after every step that they agree
// (spec §8, scenario S6). cmd/suffstack exposes it as a standalone run;
// this package's own tests run it with fixed seeds for reproducibility.
package harness

import (
	"fmt"
	"math/rand"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"

	"github.com/datatrails/go-suffixstack/indexedstring"
	"github.com/datatrails/go-suffixstack/stack"
	"github.com/datatrails/go-suffixstack/tree"

	"github.com/datatrails/go-suffixstack/internal/naive"
)

// Config controls one harness run. It is populated from flags/env by
// cmd/suffstack via viper; tests construct it directly.
type Config struct {
	// NoLogConfig skips structured logger setup (obslog.New) in favor of a
	// discarding logger, for callers (tests) that set up their own.
	NoLogConfig bool

	// PrintOps echoes every generated operation before applying it.
	PrintOps bool

	// PrintVecs echoes both stacks' full contents after every op. Expensive;
	// only useful while chasing down a mismatch by hand.
	PrintVecs bool

	// MaxPush bounds the length of a single generated append.
	MaxPush uint64

	// PopRatio is the probability, in [0,1], that a generated op is a pop
	// rather than an append or a has_suffix check.
	PopRatio float64

	// RandomCount is the number of operations to run (S6's R).
	RandomCount uint64

	// RandomSeed seeds the harness's PRNG.
	RandomSeed int64
}

// DefaultConfig mirrors spec §8 S6's minimum (R >= 1024).
func DefaultConfig() Config {
	return Config{
		MaxPush:     32,
		PopRatio:    0.35,
		RandomCount: 1024,
		RandomSeed:  1,
	}
}

type harnessError string

func (e harnessError) Error() string { return "suffixstack/harness: " + string(e) }

// Result summarizes a completed run.
type Result struct {
	RunID      string
	Operations uint64
	FinalSize  uint64
}

// Run executes cfg.RandomCount randomized operations against a freshly
// built SuffixStack[int] and a mirrored naive.Stack[int], returning an error
// at the first point of disagreement. A nil error means the two structures
// agreed on every Len(), Back(), HasSuffix and reverse-iteration check for
// the whole run.
func Run(cfg Config, log logger.Logger) (Result, error) {
	runID := uuid.NewString()
	log.Infof("harness run %s: starting %d operations", runID, cfg.RandomCount)

	rng := rand.New(rand.NewSource(cfg.RandomSeed))
	arena := tree.NewArena[int](nil)
	s := stack.New[int](arena)
	oracle := naive.New[int]()

	res := Result{RunID: runID}

	for i := uint64(0); i < cfg.RandomCount; i++ {
		op := chooseOp(rng, cfg, oracle.Len())
		if cfg.PrintOps {
			log.Infof("op %d: %s", i, op)
		}

		switch op.kind {
		case opAppend:
			values := randomValues(rng, op.n)
			s.Append(indexedstring.FromSequence(arena, values))
			oracle.Append(values)
		case opPop:
			s.Pop(op.n)
			oracle.Pop(op.n)
		case opHasSuffix:
			values := op.values
			itree := indexedstring.FromSequence(arena, values)
			got := s.HasSuffix(itree)
			want := oracle.HasSuffix(values, intEqual)
			if got != want {
				return res, harnessError(fmt.Sprintf(
					"has_suffix mismatch at op %d: stack=%v naive=%v len(x)=%d", i, got, want, len(values)))
			}
		}

		if s.Len() != oracle.Len() {
			return res, harnessError(fmt.Sprintf("len mismatch at op %d: stack=%d naive=%d", i, s.Len(), oracle.Len()))
		}
		if !s.IsEmpty() {
			if got, want := s.Back(), oracle.Back(); got != want {
				return res, harnessError(fmt.Sprintf("back mismatch at op %d: stack=%d naive=%d", i, got, want))
			}
		}
		if err := checkReverse(s, oracle); err != nil {
			return res, harnessError(fmt.Sprintf("reverse-iteration mismatch at op %d: %v", i, err))
		}

		if cfg.PrintVecs {
			var stackVals []int
			for it := s.RBegin(); !it.Over(); it.Advance() {
				stackVals = append(stackVals, it.Value())
			}
			log.Infof("op %d (newest first): stack=%v naive=%v", i, stackVals, oracle.ReverseValues())
		}
		res.Operations++
	}

	res.FinalSize = s.Len()
	return res, nil
}

func intEqual(a, b int) bool { return a == b }

type opKind int

const (
	opAppend opKind = iota
	opPop
	opHasSuffix
)

type operation struct {
	kind   opKind
	n      uint64
	values []int
}

func (o operation) String() string {
	switch o.kind {
	case opAppend:
		return fmt.Sprintf("append(len=%d)", o.n)
	case opPop:
		return fmt.Sprintf("pop(%d)", o.n)
	default:
		return fmt.Sprintf("has_suffix(len=%d)", len(o.values))
	}
}

func chooseOp(rng *rand.Rand, cfg Config, curSize uint64) operation {
	roll := rng.Float64()
	switch {
	case roll < cfg.PopRatio && curSize > 0:
		return operation{kind: opPop, n: uint64(rng.Int63n(int64(curSize) + 1))}
	case roll < cfg.PopRatio+(1-cfg.PopRatio)/2 || curSize == 0:
		n := uint64(0)
		if cfg.MaxPush > 0 {
			n = uint64(rng.Int63n(int64(cfg.MaxPush))) + 1
		}
		return operation{kind: opAppend, n: n}
	default:
		return operation{kind: opHasSuffix, values: randomSuffixCandidate(rng, curSize)}
	}
}

// randomSuffixCandidate picks a candidate to check has_suffix against: when
// the stack is empty, or with probability 0.3, a random sequence of length
// 0..7; otherwise a random sequence of length 1..curSize. Both are filled
// with fresh random values, not copied from the stack, so a positive answer
// comes from the empty candidate or from values that happen to match. The
// caller compares against the oracle either way.
func randomSuffixCandidate(rng *rand.Rand, curSize uint64) []int {
	if curSize == 0 || rng.Float64() < 0.3 {
		return randomValues(rng, uint64(rng.Int63n(8)))
	}
	k := uint64(rng.Int63n(int64(curSize))) + 1
	return randomValues(rng, k)
}

func randomValues(rng *rand.Rand, n uint64) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(64)
	}
	return out
}

func checkReverse(s *stack.SuffixStack[int], oracle *naive.Stack[int]) error {
	want := oracle.ReverseValues()
	it := s.RBegin()
	for i, w := range want {
		if it.Over() {
			return harnessError(fmt.Sprintf("stack ended early at position %d", i))
		}
		if got := it.Value(); got != w {
			return harnessError(fmt.Sprintf("position %d: stack=%d naive=%d", i, got, w))
		}
		it.Advance()
	}
	if !it.Over() {
		return harnessError("stack has extra trailing elements")
	}
	return nil
}
