package funcs

import "strings"

// EvalContext is what a CompoundVariable and the built-in Functions need to
// resolve "${name}" references: the per-worker thread variables first, then
// the engine-wide properties. Kept minimal and passed explicitly (no
// goroutine-local lookup) per spec.md §9's design note about ContextService.
type EvalContext interface {
	GetVariable(name string) (string, bool)
	GetProperty(name string) (string, bool)
}

// Function is a compiled, parameterized "__name(...)" call. Concrete
// functions (out of scope for the core per spec.md §1, but a small builtin
// set is supplied by internal/funcs/builtin) implement this.
type Function interface {
	// RefKey is the function's invocation name, e.g. "__year".
	RefKey() string
	// SetParameters validates argument count/shape against compiled
	// CompoundVariable arguments.
	SetParameters(args []*CompoundVariable) error
	// Execute evaluates the function for the current context.
	Execute(ctx EvalContext) (string, error)
}

// Registry looks up Function constructors by RefKey.
type Registry struct {
	factories map[string]func() Function
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]func() Function{}}
}

func (r *Registry) Register(refKey string, factory func() Function) {
	r.factories[refKey] = factory
}

func (r *Registry) lookup(name string) (Function, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// resolved is a bound, ready-to-evaluate piece: a literal run, a variable
// reference, or a function call whose Function has already had
// SetParameters applied (or that decayed to a variable reference because
// its name was unknown to the registry).
type resolved struct {
	literal string
	isVar   bool
	varName string
	fn      Function
}

// CompoundVariable is a compiled "${...}"-interleaved string: the unit of
// evaluation for a FunctionProperty and for Function arguments.
type CompoundVariable struct {
	pieces    []Piece
	raw       string
	resolved  []resolved
	dynamic   bool
	hasCached bool
	cached    string
}

// Compile parses raw and binds any function calls against reg. Unknown
// function names decay to a SimpleVariableRef per spec.md §4.2.
func Compile(raw string, reg *Registry) (*CompoundVariable, error) {
	pieces, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	cv := &CompoundVariable{pieces: pieces, raw: raw}
	if err := cv.bind(reg); err != nil {
		return nil, err
	}
	return cv, nil
}

func (cv *CompoundVariable) bind(reg *Registry) error {
	cv.resolved = make([]resolved, 0, len(cv.pieces))
	cv.dynamic = false
	for _, pc := range cv.pieces {
		switch v := pc.(type) {
		case Literal:
			cv.resolved = append(cv.resolved, resolved{literal: string(v)})
		case SimpleVariableRef:
			cv.dynamic = true
			cv.resolved = append(cv.resolved, resolved{isVar: true, varName: v.Name})
		case FunctionCall:
			cv.dynamic = true
			for _, arg := range v.Args {
				if err := arg.bind(reg); err != nil {
					return err
				}
			}
			fn, ok := reg.lookup(v.Name)
			if !ok {
				// Unknown function decays to a simple variable reference
				// using the function's own name.
				cv.resolved = append(cv.resolved, resolved{isVar: true, varName: v.Name})
				continue
			}
			if err := fn.SetParameters(v.Args); err != nil {
				return err
			}
			cv.resolved = append(cv.resolved, resolved{fn: fn})
		}
	}
	return nil
}

// RawText returns the unevaluated source text, used when a FunctionProperty
// is read outside running_version.
func (cv *CompoundVariable) RawText() string { return cv.raw }

// IsDynamic reports whether the compound variable contains any function or
// variable reference (as opposed to pure literal text).
func (cv *CompoundVariable) IsDynamic() bool { return cv.dynamic }

// HasFunction reports whether the compound variable contains at least one
// function call (matching pymeter.function.has_function).
func (cv *CompoundVariable) HasFunction() bool {
	for _, pc := range cv.pieces {
		if _, ok := pc.(FunctionCall); ok {
			return true
		}
	}
	return false
}

// Execute evaluates the compound variable. Non-dynamic results are cached
// permanently after the first evaluation per spec.md §4.2.
func (cv *CompoundVariable) Execute(ctx EvalContext) (string, error) {
	if !cv.dynamic && cv.hasCached {
		return cv.cached, nil
	}

	var sb strings.Builder
	for _, r := range cv.resolved {
		switch {
		case r.fn != nil:
			v, err := r.fn.Execute(ctx)
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
		case r.isVar:
			sb.WriteString(resolveSimpleVariable(ctx, r.varName))
		default:
			sb.WriteString(r.literal)
		}
	}

	result := sb.String()
	if !cv.dynamic {
		cv.cached = result
		cv.hasCached = true
	}
	return result, nil
}

func resolveSimpleVariable(ctx EvalContext, name string) string {
	if ctx != nil {
		if v, ok := ctx.GetVariable(name); ok {
			return v
		}
		if v, ok := ctx.GetProperty(name); ok {
			return v
		}
	}
	return "${" + name + "}"
}
