package element

import "testing"

func TestScalarPropertyBasicAccessors(t *testing.T) {
	p := NewScalarProperty("n", "42")
	if p.GetString() != "42" {
		t.Fatalf("expected \"42\", got %q", p.GetString())
	}
	if p.GetInt() != 42 {
		t.Fatalf("expected 42, got %d", p.GetInt())
	}
	if p.GetFloat() != 42 {
		t.Fatalf("expected 42.0, got %v", p.GetFloat())
	}
}

func TestScalarPropertyGetBoolRecognizesTrueVariants(t *testing.T) {
	if !NewScalarProperty("n", "true").GetBool() {
		t.Fatal("expected \"true\" to be truthy")
	}
	if !NewScalarProperty("n", "True").GetBool() {
		t.Fatal("expected \"True\" to be truthy")
	}
	if NewScalarProperty("n", "false").GetBool() {
		t.Fatal("expected \"false\" to be falsy")
	}
	if NewScalarProperty("n", "garbage").GetBool() {
		t.Fatal("expected an unrecognized string to be falsy")
	}
}

func TestScalarPropertyInvalidIntDefaultsToZero(t *testing.T) {
	if got := NewScalarProperty("n", "not-a-number").GetInt(); got != 0 {
		t.Fatalf("expected 0 for an unparseable int, got %d", got)
	}
}

func TestScalarPropertyRunningVersionSnapshotAndRecover(t *testing.T) {
	p := NewScalarProperty("n", "original")
	p.SetRunningVersion(true)
	p.Set("mutated")

	if p.GetString() != "mutated" {
		t.Fatalf("expected the live value to read back as mutated, got %q", p.GetString())
	}

	p.RecoverRunningVersion(nil)
	if p.GetString() != "original" {
		t.Fatalf("expected recovery to restore the pre-run value, got %q", p.GetString())
	}
}

func TestScalarPropertyCloneIsIndependent(t *testing.T) {
	p := NewScalarProperty("n", "x")
	cloned := p.Clone().(*ScalarProperty)
	cloned.Set("y")
	if p.GetString() != "x" {
		t.Fatalf("expected the original to be unaffected by mutating the clone, got %q", p.GetString())
	}
}

func TestNonePropertyAlwaysReturnsZeroValues(t *testing.T) {
	p := NewNoneProperty("missing")
	if p.GetString() != "" || p.GetInt() != 0 || p.GetFloat() != 0 || p.GetBool() != false {
		t.Fatal("expected every accessor on a NoneProperty to return its zero value")
	}
	if !IsNone(p) {
		t.Fatal("expected IsNone to recognize a NoneProperty")
	}
	if IsNone(NewScalarProperty("n", "x")) {
		t.Fatal("expected IsNone to reject a ScalarProperty")
	}
}

func TestCollectionPropertyAppendAndRunningVersionRecovery(t *testing.T) {
	cp := NewCollectionProperty("list", nil)
	cp.Append(NewScalarProperty("0", "a"))
	cp.SetRunningVersion(true)
	cp.Append(NewScalarProperty("1", "b"))

	if cp.Len() != 2 {
		t.Fatalf("expected 2 elements while running, got %d", cp.Len())
	}

	cp.RecoverRunningVersion(nil)
	if cp.Len() != 1 {
		t.Fatalf("expected recovery to drop the element added while running, got %d", cp.Len())
	}
	if cp.Get(0).GetString() != "a" {
		t.Fatalf("expected the surviving element to be \"a\", got %q", cp.Get(0).GetString())
	}
}

func TestMapPropertyPreservesInsertionOrder(t *testing.T) {
	mp := NewMapProperty("m")
	mp.Put("z", NewScalarProperty("z", "1"))
	mp.Put("a", NewScalarProperty("a", "2"))

	got := mp.iterator()
	if len(got) != 2 || got[0].GetString() != "1" || got[1].GetString() != "2" {
		t.Fatalf("expected insertion order [z a], got %v", got)
	}
}

func TestMapPropertyCloneIsIndependent(t *testing.T) {
	mp := NewMapProperty("m")
	mp.Put("a", NewScalarProperty("a", "1"))

	cloned := mp.Clone().(*MapProperty)
	v, _ := cloned.Get("a")
	v.(*ScalarProperty).Set("2")

	orig, _ := mp.Get("a")
	if orig.GetString() != "1" {
		t.Fatalf("expected the original map's property to be unaffected, got %q", orig.GetString())
	}
}
