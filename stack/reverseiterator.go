package stack

import (
	"github.com/datatrails/go-suffixstack/internal/bitclass"
	"github.com/datatrails/go-suffixstack/tree"
)

// ReverseIterator walks a SuffixStack from Back() toward the front, one
// leaf at a time. Internally it holds a tree.Iterator positioned inside
// whichever bit-class tree currently owns the walk, and hops up to the
// next-larger present bit-class each time that tree's iterator runs off
// its low end (see spec §4.7 and §4.8 for the forward analogue).
type ReverseIterator[V comparable] struct {
	owner *SuffixStack[V]
	size  uint64
	bit   uint64
	nodes *tree.Iterator[V]
	over  bool
}

// RBegin returns a ReverseIterator positioned at the last leaf of s
// (equivalently, s.Back()). If s is empty the returned iterator is
// already Over.
func (s *SuffixStack[V]) RBegin() *ReverseIterator[V] {
	return newReverseIterator(s, false)
}

// REnd returns the sentinel one-past-the-front ReverseIterator: the value
// an RBegin() walk compares equal to once it has visited every leaf.
func (s *SuffixStack[V]) REnd() *ReverseIterator[V] {
	return newReverseIterator(s, true)
}

func newReverseIterator[V comparable](s *SuffixStack[V], end bool) *ReverseIterator[V] {
	it := &ReverseIterator[V]{owner: s, size: s.size}
	if it.size == 0 {
		it.over = true
		return it
	}

	if end {
		it.bit = uint64(len(s.trees)) - 1
	} else {
		it.bit = bitclass.TrailingZeros(it.size)
	}

	idx := uint64(0)
	if !end {
		idx = (uint64(1) << it.bit) - 1
	}
	it.nodes = tree.NewIterator(it.bit, deref(s.trees[it.bit]), idx)
	it.over = end
	if end {
		it.nodes.Retreat()
	}
	return it
}

// Over reports whether the walk has exhausted every leaf (only true for
// REnd() itself, and for RBegin() advanced size() times).
func (it *ReverseIterator[V]) Over() bool { return it.over }

// Value returns the leaf at the current position. Panics if Over.
func (it *ReverseIterator[V]) Value() V {
	if it.over {
		panic(stackError("ReverseIterator.Value called on exhausted iterator"))
	}
	return it.nodes.Value().Leaf()
}

// Advance moves the cursor one leaf toward the front of the stack,
// hopping to the next-larger present bit-class tree whenever the
// current tree's iterator runs past its own low end.
func (it *ReverseIterator[V]) Advance() {
	it.nodes.Retreat()
	if !it.nodes.Over() {
		return
	}
	remaining := it.size &^ ((uint64(1) << (it.bit + 1)) - 1)
	if remaining == 0 {
		it.over = true
		return
	}
	it.bit = bitclass.TrailingZeros(remaining)
	it.nodes = tree.NewIterator(it.bit, deref(it.owner.trees[it.bit]), (uint64(1)<<it.bit)-1)
}

// Equal compares two iterators over the same stack.
func (it *ReverseIterator[V]) Equal(o *ReverseIterator[V]) bool {
	if it.over != o.over {
		return false
	}
	if it.over {
		return true
	}
	return it.bit == o.bit && it.nodes.Equal(o.nodes)
}
