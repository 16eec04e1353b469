package threadctx

import (
	"context"
	"testing"
)

type stubEval struct{}

func (stubEval) GetVariable(string) (string, bool) { return "", false }
func (stubEval) GetProperty(string) (string, bool) { return "", false }

func TestWithAndFromRoundTripsBinding(t *testing.T) {
	b := Binding{Eval: stubEval{}, Iteration: 3}
	ctx := With(context.Background(), b)

	got, ok := From(ctx)
	if !ok {
		t.Fatal("expected From to find the attached binding")
	}
	if got.Iteration != 3 {
		t.Fatalf("expected Iteration=3, got %d", got.Iteration)
	}
}

func TestFromOnBareContextIsNotOK(t *testing.T) {
	_, ok := From(context.Background())
	if ok {
		t.Fatal("expected From to report false on a context with no attached binding")
	}
}
