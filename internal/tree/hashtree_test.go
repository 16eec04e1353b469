package tree

import "testing"

func TestHashTreePutAndGetPreservesInsertionOrder(t *testing.T) {
	root := New()
	root.Add("a")
	root.Add("b")
	root.Add("c")

	got := root.List()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected [a b c], got %v", got)
	}
}

func TestHashTreeAddIsIdempotent(t *testing.T) {
	root := New()
	first := root.Add("a")
	first.Add("child")

	second := root.Add("a")
	if second != first {
		t.Fatal("expected re-adding an existing node to return its existing subtree")
	}
	if second.Size() != 1 {
		t.Fatalf("expected the pre-existing subtree to retain its child, got size %d", second.Size())
	}
}

func TestHashTreeAddUnderCreatesParentAutomatically(t *testing.T) {
	root := New()
	root.AddUnder("parent", "child")

	sub := root.Get("parent")
	if sub == nil {
		t.Fatal("expected AddUnder to create the parent node")
	}
	if sub.Get("child") == nil {
		t.Fatal("expected AddUnder to install the child under the parent")
	}
}

func TestHashTreeListByTreePath(t *testing.T) {
	root := New()
	root.AddUnder("a", "b")
	root.Get("a").Add("b").Add("c")

	got := root.ListByTreePath([]Node{"a", "b"})
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("expected [c], got %v", got)
	}
}

func TestHashTreeListByTreePathMissingSegmentReturnsNil(t *testing.T) {
	root := New()
	root.Add("a")
	if got := root.ListByTreePath([]Node{"a", "nonexistent"}); got != nil {
		t.Fatalf("expected nil for a missing path segment, got %v", got)
	}
}

// recordingVisitor records the sequence of AddNode/SubtractNode/ProcessPath
// calls Traverse makes, to verify depth-first descend/ascend order.
type recordingVisitor struct {
	events []string
}

func (r *recordingVisitor) AddNode(node Node, subtree *HashTree) {
	r.events = append(r.events, "add:"+node.(string))
}
func (r *recordingVisitor) SubtractNode() { r.events = append(r.events, "subtract") }
func (r *recordingVisitor) ProcessPath()  { r.events = append(r.events, "leaf") }

func TestHashTreeTraverseVisitsDepthFirst(t *testing.T) {
	root := New()
	root.AddUnder("a", "a1")
	root.Add("b")

	v := &recordingVisitor{}
	root.Traverse(v)

	want := []string{"add:a", "add:a1", "leaf", "subtract", "subtract", "add:b", "leaf", "subtract"}
	if len(v.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, v.events)
	}
	for i := range want {
		if v.events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, v.events)
		}
	}
}

func TestSearchByClassCollectsMatchingNodesWithSubtrees(t *testing.T) {
	root := New()
	root.AddUnder("keep-1", "leaf-a")
	root.Add("skip")
	root.AddUnder("keep-2", "leaf-b")

	s := NewSearchByClass(func(n Node) bool {
		str, ok := n.(string)
		return ok && len(str) > 4 && str[:5] == "keep-"
	})
	root.Traverse(s)

	found := s.Result()
	if len(found) != 2 || found[0] != "keep-1" || found[1] != "keep-2" {
		t.Fatalf("expected [keep-1 keep-2], got %v", found)
	}
	if s.Subtree("keep-1").Get("keep-1").Size() != 1 {
		t.Fatal("expected the matched node's one-level subtree to be recorded")
	}
}
