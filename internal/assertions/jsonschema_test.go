package assertions

import (
	"context"
	"testing"
)

const samplePersonSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer"}
  },
  "required": ["name", "age"]
}`

func TestJSONSchemaAssertionAcceptsMatchingDocument(t *testing.T) {
	a := NewJSONSchemaAssertion("schema", samplePersonSchema)
	out := a.Assert(context.Background(), newResult("200", `{"name":"ada","age":30}`))
	if out.Failure || out.Error {
		t.Fatalf("expected success, got %+v", out)
	}
}

func TestJSONSchemaAssertionRejectsMissingRequiredField(t *testing.T) {
	a := NewJSONSchemaAssertion("schema", samplePersonSchema)
	out := a.Assert(context.Background(), newResult("200", `{"name":"ada"}`))
	if !out.Failure {
		t.Fatalf("expected a failure for a missing required field, got %+v", out)
	}
	if out.Message == "" {
		t.Fatal("expected a non-empty failure message describing the violation")
	}
}

func TestJSONSchemaAssertionMalformedBodyIsAnError(t *testing.T) {
	a := NewJSONSchemaAssertion("schema", samplePersonSchema)
	out := a.Assert(context.Background(), newResult("200", `not json at all`))
	if !out.Error {
		t.Fatalf("expected an assertion error for a malformed response body, got %+v", out)
	}
}
