package element

import "testing"

func TestTestElementSetPropertyAndGet(t *testing.T) {
	e := NewTestElement("e")
	if err := e.SetProperty("name", "value"); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if e.GetPropertyAsString("name") != "value" {
		t.Fatalf("expected \"value\", got %q", e.GetPropertyAsString("name"))
	}
}

func TestTestElementSetPropertyRejectsEmptyKey(t *testing.T) {
	e := NewTestElement("e")
	if err := e.SetProperty("", "value"); err == nil {
		t.Fatal("expected an error for an empty property key")
	}
}

func TestTestElementGetPropertyOnMissingKeyIsNone(t *testing.T) {
	e := NewTestElement("e")
	p := e.GetProperty("missing")
	if !IsNone(p) {
		t.Fatal("expected a missing property to resolve to the NoneProperty sentinel")
	}
}

func TestTestElementPropertyNamesPreservesInsertionOrder(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("z", "1")
	e.SetProperty("a", "2")
	e.SetProperty("m", "3")

	names := e.PropertyNames()
	if len(names) != 3 || names[0] != "z" || names[1] != "a" || names[2] != "m" {
		t.Fatalf("expected insertion order [z a m], got %v", names)
	}
}

func TestTestElementSetPropertyMutatesInPlaceWhileRunning(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("name", "original")

	e.SetRunningVersion(true)
	e.SetProperty("name", "mutated")

	if e.GetPropertyAsString("name") != "mutated" {
		t.Fatalf("expected the in-place mutation to be visible, got %q", e.GetPropertyAsString("name"))
	}

	e.RecoverRunningVersion()
	if e.GetPropertyAsString("name") != "original" {
		t.Fatalf("expected recovery to restore the pre-run value, got %q", e.GetPropertyAsString("name"))
	}
}

func TestTestElementRecoverRunningVersionDropsTemporaryProperties(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("permanent", "1")

	e.SetRunningVersion(true)
	e.SetProperty("temp", "2")

	if e.GetPropertyAsString("temp") != "2" {
		t.Fatal("expected the temporary property to be visible while running")
	}

	e.RecoverRunningVersion()

	if !IsNone(e.GetProperty("temp")) {
		t.Fatal("expected the property added while running to be removed on recovery")
	}
	if e.GetPropertyAsString("permanent") != "1" {
		t.Fatalf("expected the permanent property to survive, got %q", e.GetPropertyAsString("permanent"))
	}
	for _, n := range e.PropertyNames() {
		if n == "temp" {
			t.Fatal("expected \"temp\" to be removed from PropertyNames after recovery")
		}
	}
}

func TestTestElementCloneIsIndependent(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("name", "1")

	cloned := e.Clone()
	cloned.SetProperty("name", "2")

	if e.GetPropertyAsString("name") != "1" {
		t.Fatalf("expected the original to be unaffected by mutating the clone, got %q", e.GetPropertyAsString("name"))
	}
	if cloned.GetPropertyAsString("name") != "2" {
		t.Fatalf("expected the clone to hold the new value, got %q", cloned.GetPropertyAsString("name"))
	}
}

func TestTestElementAddTestElementMergesProperties(t *testing.T) {
	base := NewTestElement("base")
	base.SetProperty("a", "1")

	overlay := NewTestElement("overlay")
	overlay.SetProperty("b", "2")

	base.AddTestElement(overlay)

	if base.GetPropertyAsString("a") != "1" || base.GetPropertyAsString("b") != "2" {
		t.Fatalf("expected both properties present after merge, got a=%q b=%q",
			base.GetPropertyAsString("a"), base.GetPropertyAsString("b"))
	}
}

func TestTestElementGetPropertyAsStringForIterationFallsBackToPlainScalar(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("name", "static")

	got, err := e.GetPropertyAsStringForIteration("name", nil, 0)
	if err != nil {
		t.Fatalf("GetPropertyAsStringForIteration: %v", err)
	}
	if got != "static" {
		t.Fatalf("expected \"static\", got %q", got)
	}
}

func TestTestElementSetRunningVersionPropagatesToProperties(t *testing.T) {
	e := NewTestElement("e")
	e.SetProperty("name", "original")

	e.SetRunningVersion(true)
	if !e.RunningVersion() {
		t.Fatal("expected the element to report running")
	}

	prop := e.GetProperty("name").(*ScalarProperty)
	if !prop.RunningVersion() {
		t.Fatal("expected SetRunningVersion to propagate down to the held property")
	}
}
