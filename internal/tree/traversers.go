package tree

import (
	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/element"
)

// SearchByClass collects every node matching a predicate, along with the
// one-node-deep subtree rooted at each match. Grounded on
// original_source/pymeter/engine/traverser.py's SearchByClass.
type SearchByClass struct {
	Match func(Node) bool

	found    []Node
	subtrees map[Node]*HashTree
}

func NewSearchByClass(match func(Node) bool) *SearchByClass {
	return &SearchByClass{Match: match, subtrees: map[Node]*HashTree{}}
}

func (s *SearchByClass) Result() []Node { return append([]Node(nil), s.found...) }

func (s *SearchByClass) Subtree(node Node) *HashTree { return s.subtrees[node] }

func (s *SearchByClass) AddNode(node Node, subtree *HashTree) {
	if s.Match(node) {
		s.found = append(s.found, node)
		t := New()
		t.Put(node, subtree)
		s.subtrees[node] = t
	}
}

func (s *SearchByClass) SubtractNode() {}
func (s *SearchByClass) ProcessPath()  {}

// TreeCloner builds a parallel HashTree, cloning every core.Cloneable node
// via its CloneNode() method. Nodes implementing element.NoThreadClone
// are passed through unclonned when SkipNoClone is set, so shared
// collaborators (a result collector, a connection pool) are referenced, not
// duplicated, across worker clones. Grounded on
// original_source/pymeter/engine/traverser.py's TreeCloner.
type TreeCloner struct {
	SkipNoClone bool

	newTree  *HashTree
	treePath []Node
}

func NewTreeCloner(skipNoClone bool) *TreeCloner {
	return &TreeCloner{SkipNoClone: skipNoClone, newTree: New()}
}

func (c *TreeCloner) ClonedTree() *HashTree { return c.newTree }

func (c *TreeCloner) AddNode(node Node, subtree *HashTree) {
	cloned := node
	_, noClone := node.(element.NoThreadClone)
	skip := c.SkipNoClone && noClone
	if cloneable, ok := node.(core.Cloneable); ok && !skip {
		cloned = cloneable.CloneNode()
	}

	addByTreePath(c.newTree, c.treePath, cloned)
	c.treePath = append(c.treePath, cloned)
}

// ChildrenSetter is implemented by controllers whose Next()/iteration logic
// walks an explicit ordered Children slice (spec.md §4.5's GenericController
// base). A shallow CloneNode copies that slice by reference to the
// pre-clone children, so once a node's entire subtree has been cloned,
// SubtractNode rebuilds its Children from the parallel cloned subtree.
type ChildrenSetter interface {
	SetChildren([]Node)
}

func (c *TreeCloner) SubtractNode() {
	if len(c.treePath) == 0 {
		return
	}
	node := c.treePath[len(c.treePath)-1]
	if setter, ok := node.(ChildrenSetter); ok {
		setter.SetChildren(c.newTree.ListByTreePath(c.treePath))
	}
	c.treePath = c.treePath[:len(c.treePath)-1]
}

func (c *TreeCloner) ProcessPath() {}

// addByTreePath installs node as a child of the subtree reached by walking
// path from root, creating intermediate subtrees as needed.
func addByTreePath(root *HashTree, path []Node, node Node) {
	cur := root
	for _, p := range path {
		cur = cur.Add(p)
	}
	cur.Add(node)
}

// FindTestElementsUpToRoot records every node visited from the tree's root
// up to (and including) target, then stops recording. ControllersToRoot
// filters that path down to Controller nodes in target-to-root order
// (closest ancestor first), used by the on_sample_error ancestor walk
// (spec.md §4.6). Grounded on
// original_source/pymeter/engine/traverser.py's FindTestElementsUpToRoot.
type FindTestElementsUpToRoot struct {
	Target Node

	isController  func(Node) bool
	nodes         []Node
	stopRecording bool
}

func NewFindTestElementsUpToRoot(target Node, isController func(Node) bool) *FindTestElementsUpToRoot {
	return &FindTestElementsUpToRoot{Target: target, isController: isController}
}

func (f *FindTestElementsUpToRoot) AddNode(node Node, subtree *HashTree) {
	if f.stopRecording {
		return
	}
	if node == f.Target {
		f.stopRecording = true
	}
	f.nodes = append(f.nodes, node)
}

func (f *FindTestElementsUpToRoot) SubtractNode() {
	if f.stopRecording {
		return
	}
	if len(f.nodes) > 0 {
		f.nodes = f.nodes[:len(f.nodes)-1]
	}
}

func (f *FindTestElementsUpToRoot) ProcessPath() {}

// ControllersToRoot returns the recorded Controller nodes in target-to-root
// order (closest ancestor first), matching how the on_sample_error dispatch
// walks outward looking for the nearest controller of interest.
func (f *FindTestElementsUpToRoot) ControllersToRoot() []Node {
	var out []Node
	for i := len(f.nodes) - 1; i >= 0; i-- {
		if f.isController(f.nodes[i]) {
			out = append(out, f.nodes[i])
		}
	}
	return out
}
