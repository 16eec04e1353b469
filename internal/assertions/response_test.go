package assertions

import (
	"context"
	"testing"

	"github.com/blackcoderx/surge/internal/result"
)

func newResult(code, body string) *result.SampleResult {
	r := result.NewSampleResult("s")
	r.ResponseCode = code
	r.ResponseData = body
	return r
}

func TestResponseAssertionEqualsOnResponseCode(t *testing.T) {
	a := NewResponseAssertion("a", FieldResponseCode, TestEquals, "200")
	out := a.Assert(context.Background(), newResult("200", ""))
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}

	out = a.Assert(context.Background(), newResult("404", ""))
	if !out.Failure {
		t.Fatalf("expected a failure for a mismatched code, got %+v", out)
	}
}

func TestResponseAssertionContainsOnBody(t *testing.T) {
	a := NewResponseAssertion("a", FieldResponseBody, TestContains, "hello")
	out := a.Assert(context.Background(), newResult("200", "say hello world"))
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}

	out = a.Assert(context.Background(), newResult("200", "goodbye"))
	if !out.Failure {
		t.Fatal("expected a failure when the body doesn't contain the pattern")
	}
}

func TestResponseAssertionMatchesRegex(t *testing.T) {
	a := NewResponseAssertion("a", FieldResponseBody, TestMatches, `^\d+$`)
	out := a.Assert(context.Background(), newResult("200", "12345"))
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}

	out = a.Assert(context.Background(), newResult("200", "abc"))
	if !out.Failure {
		t.Fatal("expected a failure for non-matching text")
	}
}

func TestResponseAssertionInvalidRegexIsAnError(t *testing.T) {
	a := NewResponseAssertion("a", FieldResponseBody, TestMatches, `(`)
	out := a.Assert(context.Background(), newResult("200", "anything"))
	if !out.Error {
		t.Fatalf("expected an assertion error for an invalid regex, got %+v", out)
	}
}

func TestResponseAssertionNegate(t *testing.T) {
	a := NewResponseAssertion("a", FieldResponseBody, TestContains, "hello")
	a.Negate = true

	out := a.Assert(context.Background(), newResult("200", "say hello world"))
	if !out.Failure {
		t.Fatal("expected a negated contains-match to fail")
	}

	out = a.Assert(context.Background(), newResult("200", "goodbye"))
	if out.Failure || out.Error {
		t.Fatalf("expected a negated non-match to succeed, got %+v", out)
	}
}

func TestResponseAssertionHeaderLookup(t *testing.T) {
	a := NewResponseAssertion("a", FieldHeader, TestEquals, "application/json")
	a.HeaderName = "Content-Type"

	r := newResult("200", "")
	r.ResponseHeaders["Content-Type"] = "application/json"

	out := a.Assert(context.Background(), r)
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}
}
