package stack

import (
	"testing"

	"github.com/datatrails/go-suffixstack/indexedstring"
	"github.com/datatrails/go-suffixstack/internal/bitclass"
	"github.com/datatrails/go-suffixstack/tree"
)

func seq(a *tree.Arena[int], vs ...int) *indexedstring.IndexedString[int] {
	return indexedstring.FromSequence(a, vs)
}

func reverseValues(s *SuffixStack[int]) []int {
	var out []int
	for it := s.RBegin(); !it.Over(); it.Advance() {
		out = append(out, it.Value())
	}
	return out
}

// checkTreeShape asserts P6: trees[b] is present iff bit b of size is set,
// and len(trees) == bit_width(size).
func checkTreeShape(t *testing.T, s *SuffixStack[int]) {
	t.Helper()
	want := bitclass.Width(s.size)
	if uint64(len(s.trees)) != want {
		t.Fatalf("len(trees) = %d, want bit_width(size)=%d", len(s.trees), want)
	}
	for b := uint64(0); b < want; b++ {
		present := s.trees[b] != nil
		wantPresent := bitclass.Bit(s.size, b)
		if present != wantPresent {
			t.Fatalf("trees[%d] present=%v, want %v (size=%d)", b, present, wantPresent, s.size)
		}
	}
}

// TestScenarioS1 through TestScenarioS5 transcribe the end-to-end scenarios.
func TestScenarioS1(t *testing.T) {
	a := tree.NewArena[int](nil)
	x := seq(a, 0, 0, 1, 1, 2)
	s := New[int](a)
	s.Append(x)
	s.Append(x)
	checkTreeShape(t, s)

	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	if !s.HasSuffix(x) {
		t.Error("expected has_suffix(x)")
	}
	if !s.HasSuffix(seq(a)) {
		t.Error("expected has_suffix(empty)")
	}
	if s.HasSuffix(seq(a, 2, 2)) {
		t.Error("expected !has_suffix([2,2])")
	}
}

func TestScenarioS2(t *testing.T) {
	a := tree.NewArena[int](nil)
	x := seq(a, 0, 0, 1, 1, 2)
	s := New[int](a)
	s.Append(x)
	s.Append(x)
	s.Pop(5)
	checkTreeShape(t, s)

	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
	if !s.HasSuffix(x) {
		t.Error("expected has_suffix(x)")
	}
	if !s.HasSuffix(seq(a, 1, 2)) {
		t.Error("expected has_suffix([1,2])")
	}
}

func TestScenarioS3(t *testing.T) {
	a := tree.NewArena[int](nil)
	x := seq(a, 0, 0, 1, 1, 2)
	s := New[int](a)
	s.Append(x)
	s.Append(x)
	s.Pop(5)
	s.Pop(2)
	s.Append(seq(a, 0, 0, 1))
	s.Append(seq(a, 1, 2))
	checkTreeShape(t, s)

	if s.Len() != 8 {
		t.Errorf("Len() = %d, want 8", s.Len())
	}
	if !s.HasSuffix(seq(a, 0, 0, 1, 1, 2)) {
		t.Error("expected has_suffix([0,0,1,1,2])")
	}
}

func TestScenarioS4(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)

	prefix := make([]int, 19)
	for i := range prefix {
		prefix[i] = i + 1
	}
	s.Append(indexedstring.FromSequence(a, prefix))

	ones := make([]int, 157)
	for i := range ones {
		ones[i] = 1
	}
	s.Append(indexedstring.FromSequence(a, ones))
	s.Truncate(19)
	checkTreeShape(t, s)

	if s.Len() != 19 {
		t.Errorf("Len() = %d, want 19", s.Len())
	}
	if !s.HasSuffix(indexedstring.FromSequence(a, prefix)) {
		t.Error("expected has_suffix(1..=19)")
	}
}

func TestScenarioS5(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 2))
	checkTreeShape(t, s)

	if s.Back() != 2 {
		t.Errorf("Back() = %d, want 2", s.Back())
	}
	if !s.HasSuffix(seq(a, 2)) {
		t.Error("expected has_suffix([2])")
	}
	if got := reverseValues(s); len(got) != 1 || got[0] != 2 {
		t.Errorf("reverse iteration = %v, want [2]", got)
	}
}

// TestLawAppendPopInverse checks L1: append(x); pop(x.len()) restores the
// prior reverse-iteration order.
func TestLawAppendPopInverse(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 5, 6, 7))
	before := reverseValues(s)

	x := seq(a, 1, 2, 3, 4)
	s.Append(x)
	s.Pop(x.Len())

	after := reverseValues(s)
	if len(before) != len(after) {
		t.Fatalf("length changed: before=%v after=%v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("mismatch at %d: before=%v after=%v", i, before, after)
		}
	}
}

// TestLawTruncateIdempotent checks L2.
func TestLawTruncateIdempotent(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 1, 2, 3, 4, 5, 6, 7))
	s.Truncate(3)
	once := reverseValues(s)
	s.Truncate(3)
	twice := reverseValues(s)
	if len(once) != len(twice) {
		t.Fatalf("length changed across idempotent truncate: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("mismatch at %d: %v vs %v", i, once, twice)
		}
	}
}

// TestLawHasSuffixReflexive checks L3.
func TestLawHasSuffixReflexive(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	x := seq(a, 9, 8, 7, 6)
	s.Append(x)
	if !s.HasSuffix(x) {
		t.Error("expected has_suffix of exactly-appended sequence to be true")
	}
}

// TestLawHasSuffixEmpty checks L4.
func TestLawHasSuffixEmpty(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	if !s.HasSuffix(seq(a)) {
		t.Error("expected empty stack to have_suffix(empty)")
	}
	s.Append(seq(a, 1, 2, 3))
	if !s.HasSuffix(seq(a)) {
		t.Error("expected non-empty stack to have_suffix(empty)")
	}
}

// TestLawHasSuffixOversized checks L5.
func TestLawHasSuffixOversized(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 1, 2))
	if s.HasSuffix(seq(a, 0, 1, 2)) {
		t.Error("expected has_suffix to be false when the candidate is longer than the stack")
	}
}

func TestBackPanicsOnEmpty(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	defer func() {
		if recover() == nil {
			t.Fatal("expected Back() on empty stack to panic")
		}
	}()
	s.Back()
}

func TestTruncatePanicsPastSize(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 1, 2))
	defer func() {
		if recover() == nil {
			t.Fatal("expected Truncate beyond size to panic")
		}
	}()
	s.Truncate(5)
}

func TestPopClampsPastSize(t *testing.T) {
	a := tree.NewArena[int](nil)
	s := New[int](a)
	s.Append(seq(a, 1, 2, 3))
	s.Pop(100)
	if !s.IsEmpty() {
		t.Errorf("expected Pop(100) on a 3-element stack to empty it, Len()=%d", s.Len())
	}
}
