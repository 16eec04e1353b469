package runtime

import (
	"context"
	"testing"

	"github.com/blackcoderx/surge/internal/core"
	"github.com/blackcoderx/surge/internal/result"
)

// fakeAssertion always returns a fixed AssertionResult and records whether
// it was invoked, so tests can tell a later assertion still ran after an
// earlier one failed.
type fakeAssertion struct {
	name string
	out  result.AssertionResult
	ran  bool
}

func (f *fakeAssertion) Assert(context.Context, *result.SampleResult) result.AssertionResult {
	f.ran = true
	return f.out
}

var _ core.Assertion = (*fakeAssertion)(nil)

func TestCheckAssertionsRunsEveryAssertionEvenAfterAFailure(t *testing.T) {
	u := &executionUnit{}

	first := &fakeAssertion{name: "a", out: result.AssertionResult{Name: "a", Failure: true}}
	second := &fakeAssertion{name: "b", out: result.AssertionResult{Name: "b"}}

	res := result.NewSampleResult("s")
	u.checkAssertions(context.Background(), []core.Assertion{first, second}, res)

	if !first.ran || !second.ran {
		t.Fatal("expected every assertion to run regardless of an earlier failure")
	}
	if len(res.Assertions) != 2 {
		t.Fatalf("expected 2 recorded assertion results, got %d", len(res.Assertions))
	}
	if !res.Assertions[0].Failure {
		t.Fatal("expected the first assertion's failure to be recorded")
	}
	if res.Assertions[1].Failure {
		t.Fatal("expected the second assertion's success to be recorded independently")
	}
}
