// Package threadctx carries a calling execution unit's per-thread state
// (variables, properties, current iteration) through a context.Context, so
// that samplers and processors can resolve "${...}" compound-variable
// expressions and extract values without either package importing
// internal/runtime (which would create an import cycle, since
// internal/runtime depends on both for its SamplePackage execution loop).
package threadctx

import "context"

// EvalContext mirrors funcs.EvalContext structurally; *runtime.ThreadContext
// satisfies it.
type EvalContext interface {
	GetVariable(name string) (string, bool)
	GetProperty(name string) (string, bool)
}

// VariableSink is the minimal surface a post-processor needs to write an
// extracted value as a thread variable.
type VariableSink interface {
	Put(name, value string)
}

// Binding is everything a sampler or processor needs from the calling
// thread, attached to ctx once per sample by internal/runtime.
type Binding struct {
	Eval      EvalContext
	Vars      VariableSink
	Iteration int
}

type bindingKey struct{}

// With attaches b to ctx.
func With(ctx context.Context, b Binding) context.Context {
	return context.WithValue(ctx, bindingKey{}, b)
}

// From retrieves the Binding attached by With, if any.
func From(ctx context.Context) (Binding, bool) {
	b, ok := ctx.Value(bindingKey{}).(Binding)
	return b, ok
}
