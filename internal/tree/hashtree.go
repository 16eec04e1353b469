// Package tree implements HashTree, the ordered map-of-maps structure that
// holds the compiled test plan, and the traversal visitors that operate on
// it (spec.md §3, §4.3). Grounded on original_source/pymeter/engine/traverser.py
// and pymeter's HashTree (an insertion-ordered dict of node -> child tree).
package tree

// Node is any value that can sit in a HashTree. Concrete node types
// (controllers, samplers, configs, listeners, ...) implement whichever
// capability interfaces apply to them; HashTree itself is agnostic.
type Node any

// HashTree is an ordered mapping from a node to its child HashTree.
type HashTree struct {
	children map[Node]*HashTree
	order    []Node
}

// New returns an empty HashTree.
func New() *HashTree {
	return &HashTree{children: map[Node]*HashTree{}}
}

// Put installs node with the given subtree, replacing any existing entry
// but preserving its position if node was already present.
func (t *HashTree) Put(node Node, subtree *HashTree) {
	if _, exists := t.children[node]; !exists {
		t.order = append(t.order, node)
	}
	if subtree == nil {
		subtree = New()
	}
	t.children[node] = subtree
}

// Add installs node with an empty subtree if not already present, and
// returns its (possibly pre-existing) subtree.
func (t *HashTree) Add(node Node) *HashTree {
	if sub, ok := t.children[node]; ok {
		return sub
	}
	sub := New()
	t.Put(node, sub)
	return sub
}

// AddUnder installs node as a child of parent's subtree, creating parent's
// entry first if necessary.
func (t *HashTree) AddUnder(parent, node Node) *HashTree {
	return t.Add(parent).Add(node)
}

// Get returns node's child HashTree, or nil if node is not present.
func (t *HashTree) Get(node Node) *HashTree {
	return t.children[node]
}

// List returns the top-level keys in insertion order.
func (t *HashTree) List() []Node {
	return append([]Node(nil), t.order...)
}

// Size returns the number of top-level keys.
func (t *HashTree) Size() int { return len(t.order) }

// ListByTreePath returns the keys of the subtree identified by walking path
// (a sequence of ancestors) from the root, or nil if any segment is absent.
func (t *HashTree) ListByTreePath(path []Node) []Node {
	cur := t
	for _, p := range path {
		cur = cur.Get(p)
		if cur == nil {
			return nil
		}
	}
	return cur.List()
}

// Visitor is the traversal protocol consumed by Traverse: AddNode on
// descent, SubtractNode on ascent, ProcessPath when a leaf is reached.
type Visitor interface {
	AddNode(node Node, subtree *HashTree)
	SubtractNode()
	ProcessPath()
}

// Traverse walks the tree depth-first, calling v.AddNode before descending
// into each node's children, v.ProcessPath when a node has no children,
// and v.SubtractNode after finishing each node's subtree.
func (t *HashTree) Traverse(v Visitor) {
	for _, node := range t.order {
		sub := t.children[node]
		v.AddNode(node, sub)
		if sub == nil || sub.Size() == 0 {
			v.ProcessPath()
		} else {
			sub.Traverse(v)
		}
		v.SubtractNode()
	}
}
