// Package tree implements the immutable perfect-binary-tree layer that
// backs the suffix stack: nodes with exactly two children, hash-consed in
// an Arena so that structurally equal trees collapse to one pointer and
// tree equality reduces to pointer equality.
//
// The bit-class of a tree is its depth: a tree of bit-class b covers
// exactly 2^b leaves, with its left child covering the first 2^(b-1) and
// its right child the last 2^(b-1). A tree of bit-class 0 is a single leaf;
// at bit-class 1 both children are leaves; at every higher bit-class both
// children are Nodes. Which case
// applies is always known from context (the caller's own bit-class
// bookkeeping), so a Node never carries its own bit-class.
package tree

// Child is a single slot of a Node: either a reference to another Node, or
// a leaf value of V. A nil Node pointer discriminates the leaf case, the
// memory-safe analogue of the source's practice of reinterpreting a small
// value's bits as a child pointer.
type Child[V comparable] struct {
	node *Node[V]
	leaf V
}

// LeafChild builds a Child holding a leaf value directly.
func LeafChild[V comparable](v V) Child[V] {
	return Child[V]{leaf: v}
}

// InnerChild builds a Child referencing an interned Node.
func InnerChild[V comparable](n *Node[V]) Child[V] {
	if n == nil {
		panic(treeError("InnerChild: nil node"))
	}
	return Child[V]{node: n}
}

// IsLeaf reports whether this slot holds a leaf value rather than a Node.
func (c Child[V]) IsLeaf() bool { return c.node == nil }

// Node returns the child Node. Panics if the slot holds a leaf.
func (c Child[V]) Node() *Node[V] {
	if c.node == nil {
		panic(treeError("Child.Node: slot holds a leaf"))
	}
	return c.node
}

// Leaf returns the leaf value. Panics if the slot holds a Node.
func (c Child[V]) Leaf() V {
	if c.node != nil {
		panic(treeError("Child.Leaf: slot holds a node"))
	}
	return c.leaf
}

// Node is an immutable perfect-binary-tree node. Nodes are only ever
// produced by Arena.Intern, which guarantees the canonicalization
// invariant: two Nodes in the same Arena (or its parent chain) with equal
// (Lhs, Rhs) are the same pointer.
type Node[V comparable] struct {
	lhs, rhs Child[V]
}

// Lhs returns the first (leaves [0, 2^(b-1))) child slot.
func (n *Node[V]) Lhs() Child[V] { return n.lhs }

// Rhs returns the second (leaves [2^(b-1), 2^b)) child slot.
func (n *Node[V]) Rhs() Child[V] { return n.rhs }

type treeError string

func (e treeError) Error() string { return "suffixstack/tree: " + string(e) }
