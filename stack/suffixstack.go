// Package stack implements SuffixStack: a sequence container backed by
// interned perfect binary trees (see package tree), where append, truncate
// and has_suffix all run in O(log size) rather than the O(size) a flat
// slice would need.
package stack

import (
	"github.com/datatrails/go-suffixstack/indexedstring"
	"github.com/datatrails/go-suffixstack/internal/bitclass"
	"github.com/datatrails/go-suffixstack/tree"
)

// SuffixStack holds at most one tree per bit-class of its size: trees[b] is
// present iff bit b of size is set (invariant I2). Bit-class b covers the
// leaves at [offset, offset+2^b) where offset sums the sizes of all present
// trees of a strictly higher bit-class (invariant I3) — so lower bit-class
// trees sit closer to the tail, and back()/append/truncate all pivot around
// the smallest present bit.
type SuffixStack[V comparable] struct {
	arena *tree.Arena[V]
	trees []*tree.Child[V]
	size  uint64
}

// New constructs an empty SuffixStack that interns new nodes into arena.
func New[V comparable](arena *tree.Arena[V]) *SuffixStack[V] {
	return &SuffixStack[V]{arena: arena}
}

// Len returns the number of leaves currently on the stack.
func (s *SuffixStack[V]) Len() uint64 { return s.size }

// IsEmpty reports whether the stack holds no leaves.
func (s *SuffixStack[V]) IsEmpty() bool { return s.size == 0 }

type stackError string

func (e stackError) Error() string { return "suffixstack/stack: " + string(e) }

// deref panics with a precondition violation rather than segfaulting or
// silently misbehaving, per spec §7's "prefer a checked trap" guidance.
func deref[V comparable](c *tree.Child[V]) tree.Child[V] {
	if c == nil {
		panic(stackError("internal invariant violated: expected tree slot to be present"))
	}
	return *c
}

// Back returns the most recently appended leaf still present. Panics if the
// stack is empty.
func (s *SuffixStack[V]) Back() V {
	if s.size == 0 {
		panic(stackError("Back called on empty stack"))
	}
	bit := bitclass.TrailingZeros(s.size)
	child := deref(s.trees[bit])
	for ; bit > 0; bit-- {
		child = child.Node().Rhs()
	}
	return child.Leaf()
}

// Append grafts itree's leaves onto the top (tail) of the stack. See spec
// §4.5: the leaves split into a portion that lands directly into currently
// empty tree slots (on_right) and a portion that carries into the existing
// smallest present tree, propagating like binary addition (on_left).
func (s *SuffixStack[V]) Append(itree *indexedstring.IndexedString[V]) {
	m := itree.Len()
	if m == 0 {
		return
	}

	newSize := s.size + m
	onRight := bitclass.Association(newSize, m)
	onLeft := m - onRight
	split := itree.Split(onRight)

	newTrees := make([]*tree.Child[V], bitclass.Width(newSize))
	copy(newTrees, s.trees)
	s.trees = newTrees

	if onLeft > 0 {
		bitNo := bitclass.TrailingZeros(onLeft)
		var constructing *tree.Child[V]
		if s.trees[bitNo] != nil {
			c := *s.trees[bitNo]
			constructing = &c
		}
		s.trees[bitNo] = nil

		for ; (uint64(1) << bitNo) <= onLeft; bitNo++ {
			if bitclass.Bit(onLeft, bitNo) {
				n := s.arena.Intern(deref(constructing), deref(split.Left[bitNo]))
				c := tree.InnerChild(n)
				constructing = &c
			} else {
				n := s.arena.Intern(deref(s.trees[bitNo]), deref(constructing))
				c := tree.InnerChild(n)
				constructing = &c
				s.trees[bitNo] = nil
			}
		}
		for s.trees[bitNo] != nil {
			n := s.arena.Intern(deref(s.trees[bitNo]), deref(constructing))
			c := tree.InnerChild(n)
			constructing = &c
			s.trees[bitNo] = nil
			bitNo++
		}
		s.trees[bitNo] = constructing
	}

	remainingRight := onRight
	srcIdx, dstIdx := uint64(0), uint64(0)
	for remainingRight != 0 {
		step := bitclass.TrailingZeros(remainingRight)
		srcIdx += step
		dstIdx += step
		if s.trees[dstIdx] != nil {
			panic(stackError("append: right-hand plant slot already occupied"))
		}
		s.trees[dstIdx] = split.Right[srcIdx]
		dstIdx++
		srcIdx++
		remainingRight >>= step + 1
	}

	s.size = newSize
}

// Truncate shrinks the stack to its first newSize leaves. See spec §4.6:
// the inverse of Append, borrowing from (rather than carrying into) the
// smallest tree above the discarded suffix.
func (s *SuffixStack[V]) Truncate(newSize uint64) {
	if newSize > s.size {
		panic(stackError("Truncate: newSize exceeds current size"))
	}
	toRemove := s.size - newSize
	onRight := bitclass.Association(s.size, toRemove)
	onLeft := toRemove - onRight

	rightIter := onRight
	idx := uint64(0)
	for rightIter != 0 {
		step := bitclass.TrailingZeros(rightIter)
		idx += step
		if s.trees[idx] == nil {
			panic(stackError("truncate: right-hand removal slot already empty"))
		}
		s.trees[idx] = nil
		idx++
		rightIter >>= step + 1
	}

	if onLeft > 0 {
		toDeconstruct := bitclass.TrailingZeros(s.size - onRight)
		toRemain := (uint64(1) << toDeconstruct) - onLeft
		splitting := deref(s.trees[toDeconstruct])
		s.trees[toDeconstruct] = nil

		for bitNo := int64(toDeconstruct) - 1; bitNo >= 0; bitNo-- {
			branch := splitting.Node()
			if bitclass.Bit(toRemain, uint64(bitNo)) {
				lhs := branch.Lhs()
				s.trees[bitNo] = &lhs
				splitting = branch.Rhs()
			} else {
				splitting = branch.Lhs()
			}
		}
	}

	s.size = newSize
	s.trees = s.trees[:bitclass.Width(newSize)]
}

// Pop is Truncate(max(0, Len()-k)).
func (s *SuffixStack[V]) Pop(k uint64) {
	if k > s.size {
		s.Truncate(0)
		return
	}
	s.Truncate(s.size - k)
}

// HasSuffix reports whether the stack's last itree.Len() leaves equal
// itree's own sequence. See spec §4.4.
func (s *SuffixStack[V]) HasSuffix(itree *indexedstring.IndexedString[V]) bool {
	m := itree.Len()
	if s.size < m {
		return false
	}
	if m == 0 {
		return true
	}

	onRight := bitclass.Association(s.size, m)
	onLeft := m - onRight
	split := itree.Split(onRight)

	for b := uint64(0); b < uint64(len(split.Right)); b++ {
		mine, theirs := s.trees[b], split.Right[b]
		if (mine == nil) != (theirs == nil) {
			return false
		}
		if mine != nil && *mine != *theirs {
			return false
		}
	}

	if onLeft == 0 {
		return true
	}

	borrowedBit := bitclass.TrailingZeros(s.size - onRight)
	borrowed := deref(s.trees[borrowedBit])
	leftBit := uint64(len(split.Left))
	for borrowedBit > leftBit {
		borrowed = borrowed.Node().Rhs()
		borrowedBit--
	}

	for ; leftBit > 0; leftBit-- {
		leftTree := split.Left[leftBit-1]
		branch := borrowed.Node()
		if bitclass.Bit(onLeft, leftBit-1) {
			if leftTree == nil || branch.Rhs() != *leftTree {
				return false
			}
			borrowed = branch.Lhs()
		} else {
			borrowed = branch.Rhs()
		}
	}

	return true
}
