// Package indexedstring preprocesses a flat sequence of leaves into every
// split a suffix stack operation could need against it: for each possible
// boundary k, the perfect-tree decomposition of the leaves on either side.
// Building this ahead of time is what lets SuffixStack's append, truncate,
// and has_suffix run in O(log N) instead of re-deriving a decomposition on
// every call.
package indexedstring

import (
	"github.com/datatrails/go-suffixstack/tree"
)

// Split is the pair of tree-forests straddling one boundary of an
// IndexedString: Left holds the perfect trees covering the leaves to the
// left of the boundary (indexed by bit-class of their count), Right the
// trees covering the leaves to the right of it. Entries are nil at bit
// positions absent from that count's binary representation.
type Split[V comparable] struct {
	Left  []*tree.Child[V]
	Right []*tree.Child[V]
}

// IndexedString holds, for an underlying sequence of N leaves, the split at
// every boundary 0..N. Space and construction time are both O(N log N).
type IndexedString[V comparable] struct {
	// assocs[s] is the split naturally addressed by prefix length s: Left
	// decomposes the first s leaves (present bits = bits of s), Right
	// decomposes the last (N-s) leaves (present bits = bits of N-s).
	// Split(onRight) re-addresses this from the other end, per spec §3's
	// "index A from the right" convention: Split(onRight) == assocs[M-onRight]
	// where M is the total length, so its own Left has present bits equal
	// to the bits of onLeft = M-onRight, and its Right has present bits
	// equal to the bits of onRight.
	assocs []Split[V]
}

// FromSequence indexes a flat sequence of leaves against arena, populating
// arena with every intermediate perfect tree the sequence could supply to a
// graft or ungraft at any alignment.
func FromSequence[V comparable](arena *tree.Arena[V], leaves []V) *IndexedString[V] {
	n := len(leaves)
	assocs := make([]Split[V], n+1)
	if n == 0 {
		return &IndexedString[V]{assocs: assocs}
	}

	paired := make([]tree.Child[V], n)
	for i, v := range leaves {
		paired[i] = tree.LeafChild(v)
	}

	for bit := uint64(0); ; bit++ {
		bitM := uint64(1) << bit
		for sz := bitM; sz <= uint64(n); sz++ {
			set := sz&bitM != 0
			rightIdx := uint64(n) - sz
			if set {
				offset := sz & (bitM - 1)
				left := paired[offset]
				right := paired[uint64(len(paired))-1-offset]
				assocs[sz].Left = append(assocs[sz].Left, &left)
				assocs[rightIdx].Right = append(assocs[rightIdx].Right, &right)
			} else {
				assocs[sz].Left = append(assocs[sz].Left, nil)
				assocs[rightIdx].Right = append(assocs[rightIdx].Right, nil)
			}
		}
		if (uint64(1) << (bit + 1)) > uint64(n) {
			break
		}
		pairings := uint64(len(paired)) - bitM
		for i := uint64(0); i < pairings; i++ {
			paired[i] = tree.InnerChild(arena.Intern(paired[i], paired[i+bitM]))
		}
		paired = paired[:pairings]
	}

	return &IndexedString[V]{assocs: assocs}
}

// FromSingle builds the (trivial) IndexedString for a one-leaf sequence,
// without needing an Arena: a single leaf never requires interning.
func FromSingle[V comparable](v V) *IndexedString[V] {
	a := tree.LeafChild(v)
	b := tree.LeafChild(v)
	return &IndexedString[V]{assocs: []Split[V]{
		{Right: []*tree.Child[V]{&a}},
		{Left: []*tree.Child[V]{&b}},
	}}
}

// Len returns the number of leaves in the indexed sequence.
func (s *IndexedString[V]) Len() uint64 { return uint64(len(s.assocs) - 1) }

// IsEmpty reports whether the indexed sequence has zero leaves.
func (s *IndexedString[V]) IsEmpty() bool { return s.Len() == 0 }

// Split returns the decomposition to use when onRight of this string's
// leaves are to be matched/grafted against the stack's own trees directly,
// and the remaining (Len()-onRight) leaves are to be matched/grafted via a
// borrowed/carried stack tree.
func (s *IndexedString[V]) Split(onRight uint64) Split[V] {
	return s.assocs[s.Len()-onRight]
}
