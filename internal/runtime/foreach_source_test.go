package runtime

import "testing"

func TestVariableForeachSourceSplitsOnSeparator(t *testing.T) {
	vars := NewVariables()
	vars.Put("csv", "a|b|c")

	src := NewVariableForeachSource("csv", "item", "|")
	src.BindVariables(vars)

	items, err := src.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 3 || items[0] != "a" || items[1] != "b" || items[2] != "c" {
		t.Fatalf("expected [a b c], got %v", items)
	}
}

func TestVariableForeachSourceDefaultsToComma(t *testing.T) {
	vars := NewVariables()
	vars.Put("csv", "x,y")

	src := NewVariableForeachSource("csv", "item", "")
	src.BindVariables(vars)

	items, err := src.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || items[0] != "x" || items[1] != "y" {
		t.Fatalf("expected [x y], got %v", items)
	}
}

func TestVariableForeachSourceMissingVariableYieldsNoItems(t *testing.T) {
	vars := NewVariables()
	src := NewVariableForeachSource("missing", "item", ",")
	src.BindVariables(vars)

	items, err := src.Items()
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if items != nil {
		t.Fatalf("expected a nil item list for a missing variable, got %v", items)
	}
}

func TestVariableForeachSourceUnboundIsAnError(t *testing.T) {
	src := NewVariableForeachSource("csv", "item", ",")
	if _, err := src.Items(); err == nil {
		t.Fatal("expected an error when the source has never been bound to a thread")
	}
}

func TestVariableForeachSourceAssignWritesReturnName(t *testing.T) {
	vars := NewVariables()
	src := NewVariableForeachSource("csv", "item", ",")
	src.BindVariables(vars)

	src.Assign("hello")
	got, ok := vars.Get("item")
	if !ok || got != "hello" {
		t.Fatalf("expected item=hello, got %q ok=%v", got, ok)
	}
}

func TestVariableForeachSourceCloneDropsBinding(t *testing.T) {
	vars := NewVariables()
	src := NewVariableForeachSource("csv", "item", ",")
	src.BindVariables(vars)

	cloned := src.Clone().(*VariableForeachSource)
	if cloned.Vars != nil {
		t.Fatal("expected Clone to drop the bound Variables")
	}
	if cloned.InputName != "csv" || cloned.ReturnName != "item" {
		t.Fatal("expected Clone to preserve static configuration")
	}
}
