package tree

// Arena is a hash-consing store: it returns a canonical (reference-equal)
// *Node for any given (lhs, rhs) child pair. Subtree sharing is therefore
// automatic, and tree equality reduces to pointer equality (invariant I1).
//
// An Arena may have a parent. Intern first consults the parent chain; if an
// equal pair is already interned there, that Node is returned directly with
// no copy made into the child arena. Insertion always targets the receiver,
// never a parent. This supports scoped sub-computations — building a
// temporary IndexedString in a throwaway child Arena — that can be dropped
// wholesale without polluting a long-lived ancestor, while still sharing its
// canonical nodes.
//
// Arena is not safe for concurrent use: callers sharing one Arena across
// goroutines must serialize access themselves (see spec §5).
type Arena[V comparable] struct {
	parent *Arena[V]
	nodes  map[pairKey[V]]*Node[V]
}

// pairKey is the map key under which a (lhs, rhs) pair is hash-consed. Since
// V is constrained comparable and Child[V] embeds only a *Node[V] and a V,
// Child[V] itself is comparable, so the key is just the two child slots.
type pairKey[V comparable] struct {
	lhs, rhs Child[V]
}

// NewArena constructs an empty Arena, optionally chained to a parent whose
// canonical nodes remain visible through Intern.
func NewArena[V comparable](parent *Arena[V]) *Arena[V] {
	return &Arena[V]{parent: parent, nodes: make(map[pairKey[V]]*Node[V])}
}

// Intern returns the canonical Node for (lhs, rhs), walking the parent chain
// first. A new Node is allocated and inserted into the receiver only if no
// ancestor already has one for this key.
func (a *Arena[V]) Intern(lhs, rhs Child[V]) *Node[V] {
	key := pairKey[V]{lhs: lhs, rhs: rhs}
	if n := a.lookup(key); n != nil {
		return n
	}
	n := &Node[V]{lhs: lhs, rhs: rhs}
	a.nodes[key] = n
	return n
}

// lookup walks the parent chain without inserting, returning nil if the key
// is interned nowhere in the chain.
func (a *Arena[V]) lookup(key pairKey[V]) *Node[V] {
	for arena := a; arena != nil; arena = arena.parent {
		if n, ok := arena.nodes[key]; ok {
			return n
		}
	}
	return nil
}

// Len reports the number of Nodes interned directly in the receiver (not
// counting its parent chain). Exposed for tests and diagnostics only.
func (a *Arena[V]) Len() int { return len(a.nodes) }
