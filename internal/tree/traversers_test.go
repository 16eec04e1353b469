package tree

import (
	"testing"

	"github.com/blackcoderx/surge/internal/core"
)

// cloneableNode is a minimal core.Cloneable + ChildrenSetter node used to
// exercise TreeCloner without depending on any concrete controller/sampler
// package.
type cloneableNode struct {
	id       string
	children []Node
}

func (n *cloneableNode) CloneNode() core.Node {
	return &cloneableNode{id: n.id}
}

func (n *cloneableNode) SetChildren(children []Node) { n.children = children }

// noCloneNode implements element.NoThreadClone and is never itself Cloneable,
// so TreeCloner must pass it through by reference.
type noCloneNode struct{ id string }

func (n *noCloneNode) NoThreadClone() {}

func TestTreeClonerClonesCloneableNodes(t *testing.T) {
	root := New()
	parent := &cloneableNode{id: "parent"}
	child := &cloneableNode{id: "child"}
	root.AddUnder(parent, child)

	cloner := NewTreeCloner(true)
	root.Traverse(cloner)

	cloned := cloner.ClonedTree()
	clonedNodes := cloned.List()
	if len(clonedNodes) != 1 {
		t.Fatalf("expected 1 top-level cloned node, got %d", len(clonedNodes))
	}
	clonedParent, ok := clonedNodes[0].(*cloneableNode)
	if !ok {
		t.Fatalf("expected a *cloneableNode, got %T", clonedNodes[0])
	}
	if clonedParent == parent {
		t.Fatal("expected the parent to be cloned into a distinct instance")
	}
	if clonedParent.id != "parent" {
		t.Fatalf("expected the clone to preserve id, got %q", clonedParent.id)
	}
}

func TestTreeClonerRebuildsChildrenFromClonedSubtree(t *testing.T) {
	root := New()
	parent := &cloneableNode{id: "parent"}
	child := &cloneableNode{id: "child"}
	root.AddUnder(parent, child)

	cloner := NewTreeCloner(true)
	root.Traverse(cloner)

	clonedNodes := cloner.ClonedTree().List()
	clonedParent := clonedNodes[0].(*cloneableNode)

	if len(clonedParent.children) != 1 {
		t.Fatalf("expected SetChildren to install 1 cloned child, got %d", len(clonedParent.children))
	}
	clonedChild, ok := clonedParent.children[0].(*cloneableNode)
	if !ok || clonedChild == child {
		t.Fatal("expected the parent's children slice to reference the cloned child, not the original")
	}
}

func TestTreeClonerPassesThroughNoThreadCloneNodesByReference(t *testing.T) {
	root := New()
	shared := &noCloneNode{id: "shared"}
	root.Add(shared)

	cloner := NewTreeCloner(true)
	root.Traverse(cloner)

	clonedNodes := cloner.ClonedTree().List()
	if len(clonedNodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(clonedNodes))
	}
	if clonedNodes[0] != Node(shared) {
		t.Fatal("expected a NoThreadClone node to be passed through unchanged")
	}
}

func TestFindTestElementsUpToRootRecordsAncestorsAndStopsAtTarget(t *testing.T) {
	root := New()
	root.AddUnder("grandparent", "parent")
	root.Get("grandparent").Get("parent").Add("target")
	root.Get("grandparent").Get("parent").Add("sibling-of-target")

	isController := func(n Node) bool {
		s, _ := n.(string)
		return s == "grandparent" || s == "parent"
	}

	f := NewFindTestElementsUpToRoot("target", isController)
	root.Traverse(f)

	controllers := f.ControllersToRoot()
	if len(controllers) != 2 || controllers[0] != Node("parent") || controllers[1] != Node("grandparent") {
		t.Fatalf("expected [parent grandparent] (closest ancestor first), got %v", controllers)
	}
}

func TestFindTestElementsUpToRootDoesNotRecordNodesAfterTarget(t *testing.T) {
	root := New()
	root.AddUnder("parent", "target")
	root.Get("parent").Add("after")

	f := NewFindTestElementsUpToRoot("target", func(Node) bool { return true })
	root.Traverse(f)

	controllers := f.ControllersToRoot()
	for _, c := range controllers {
		if c == Node("after") {
			t.Fatal("expected nodes visited after the target to not be recorded")
		}
	}
}

var _ core.Cloneable = (*cloneableNode)(nil)
