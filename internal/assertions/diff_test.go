package assertions

import (
	"context"
	"strings"
	"testing"
)

func TestExactBodyAssertionMatchesIdenticalBody(t *testing.T) {
	a := NewExactBodyAssertion("exact", "hello world")
	out := a.Assert(context.Background(), newResult("200", "hello world"))
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestExactBodyAssertionFailsOnMismatchWithDiff(t *testing.T) {
	a := NewExactBodyAssertion("exact", "hello world")
	out := a.Assert(context.Background(), newResult("200", "hello there"))
	if !out.Failure {
		t.Fatalf("expected a failure for a mismatched body, got %+v", out)
	}
	if !strings.Contains(out.Message, "hello") {
		t.Fatalf("expected the diff message to reference the body, got %q", out.Message)
	}
}
