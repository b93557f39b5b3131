package tree

import "github.com/datatrails/go-suffixstack/internal/bitclass"

// Iterator is a bidirectional cursor over the 2^bit leaves of a single
// perfect tree, positioned at index idx. It caches the descent path from
// the root to the current leaf (one Child per bit-class) so that a move
// which stays within a subtree only re-resolves the levels below the
// point where the index actually changed, rather than re-descending from
// the root every time.
type Iterator[V comparable] struct {
	bit   uint64
	idx   uint64
	stack []Child[V] // stack[b] is the Child at bit-class b on the path to idx; stack[bit] is the root.
	over  bool
}

// NewIterator builds an iterator over the tree rooted at root, which must
// have exactly 2^bit leaves, initially positioned at leaf idx.
func NewIterator[V comparable](bit uint64, root Child[V], idx uint64) *Iterator[V] {
	it := &Iterator[V]{bit: bit, idx: idx, stack: make([]Child[V], bit+1)}
	it.stack[bit] = root
	it.resolveFrom(bit)
	return it
}

func (it *Iterator[V]) size() uint64 { return uint64(1) << it.bit }

// Bit returns the bit-class of the tree being iterated.
func (it *Iterator[V]) Bit() uint64 { return it.bit }

// Index returns the current leaf position, in [0, 2^bit).
func (it *Iterator[V]) Index() uint64 { return it.idx }

// Over reports whether the last Advance/Retreat/MoveBy attempted to move
// past an end and was clamped. It is part of iterator identity: a clamped
// iterator at index 0 (or 2^bit-1) is distinct from one that legitimately
// sits there without having overrun.
func (it *Iterator[V]) Over() bool { return it.over }

// Value returns the leaf at the current position.
func (it *Iterator[V]) Value() Child[V] { return it.stack[0] }

// Clone returns an independent copy of it, for callers that need a
// pre-move snapshot (the standard-postfix-increment idiom: clone, then
// advance the original).
func (it *Iterator[V]) Clone() *Iterator[V] {
	cp := &Iterator[V]{bit: it.bit, idx: it.idx, over: it.over, stack: make([]Child[V], len(it.stack))}
	copy(cp.stack, it.stack)
	return cp
}

// Advance moves one leaf toward higher indices.
func (it *Iterator[V]) Advance() { it.MoveBy(1) }

// Retreat moves one leaf toward lower indices.
func (it *Iterator[V]) Retreat() { it.MoveBy(-1) }

// MoveBy shifts the position by delta, clamping to [0, 2^bit-1] and
// setting Over if clamping occurred.
func (it *Iterator[V]) MoveBy(delta int64) {
	if delta == 0 {
		return
	}
	oldIdx := it.idx
	var newIdx uint64
	switch {
	case delta < 0 && oldIdx < uint64(-delta):
		it.over = true
		newIdx = 0
	case delta > 0 && it.size()-1-oldIdx < uint64(delta):
		it.over = true
		newIdx = it.size() - 1
	default:
		it.over = false
		newIdx = uint64(int64(oldIdx) + delta)
	}
	changed := newIdx ^ oldIdx
	if changed == 0 {
		return
	}
	it.idx = newIdx
	it.resolveFrom(bitclass.Width(changed))
}

// resolveFrom re-descends stack[width-1..0] from stack[width], the highest
// level whose subtree still contains both the old and new index.
func (it *Iterator[V]) resolveFrom(width uint64) {
	for b := int64(width) - 1; b >= 0; b-- {
		parent := it.stack[b+1].Node()
		if bitclass.Bit(it.idx, uint64(b)) {
			it.stack[b] = parent.Rhs()
		} else {
			it.stack[b] = parent.Lhs()
		}
	}
}

// Equal compares two iterators over the same tree. Per the source's design
// notes, only (bit, idx, over) need to be compared — the cached descent
// stacks are always determined by those three values.
func (it *Iterator[V]) Equal(o *Iterator[V]) bool {
	return it.bit == o.bit && it.idx == o.idx && it.over == o.over
}
