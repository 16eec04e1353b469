package funcs

import "testing"

type mapCtx struct {
	vars  map[string]string
	props map[string]string
}

func (m mapCtx) GetVariable(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

func (m mapCtx) GetProperty(name string) (string, bool) {
	v, ok := m.props[name]
	return v, ok
}

func TestCompileLiteralHasNoDynamicPieces(t *testing.T) {
	cv, err := Compile("hello world", NewRegistry())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cv.IsDynamic() {
		t.Fatal("expected a plain literal to not be dynamic")
	}
	out, err := cv.Execute(mapCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", out)
	}
}

func TestCompileSimpleVariableResolvesFromVariablesThenProperties(t *testing.T) {
	cv, err := Compile("user=${name}", NewRegistry())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !cv.IsDynamic() {
		t.Fatal("expected a variable reference to be dynamic")
	}

	out, err := cv.Execute(mapCtx{vars: map[string]string{"name": "ada"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "user=ada" {
		t.Fatalf("expected %q, got %q", "user=ada", out)
	}

	out, err = cv.Execute(mapCtx{props: map[string]string{"name": "grace"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "user=grace" {
		t.Fatalf("expected property fallback %q, got %q", "user=grace", out)
	}
}

func TestCompileUnresolvedVariableFallsBackToLiteralPlaceholder(t *testing.T) {
	cv, err := Compile("${missing}", NewRegistry())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	out, err := cv.Execute(mapCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "${missing}" {
		t.Fatalf("expected the unresolved placeholder back verbatim, got %q", out)
	}
}

func TestCompileCachesNonDynamicResultsPermanently(t *testing.T) {
	cv, err := Compile("static", NewRegistry())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	first, _ := cv.Execute(mapCtx{})
	second, _ := cv.Execute(mapCtx{vars: map[string]string{"irrelevant": "x"}})
	if first != second || first != "static" {
		t.Fatalf("expected the cached literal result on every call, got %q then %q", first, second)
	}
}

// stubFunction is a minimal funcs.Function for exercising CompoundVariable's
// function-call binding without depending on internal/funcs/builtin.
type stubFunction struct {
	args []*CompoundVariable
}

func (s *stubFunction) RefKey() string { return "__stub" }

func (s *stubFunction) SetParameters(args []*CompoundVariable) error {
	s.args = args
	return nil
}

func (s *stubFunction) Execute(ctx EvalContext) (string, error) {
	if len(s.args) == 0 {
		return "stub", nil
	}
	v, err := s.args[0].Execute(ctx)
	if err != nil {
		return "", err
	}
	return "stub:" + v, nil
}

func TestCompileBindsRegisteredFunctionCalls(t *testing.T) {
	reg := NewRegistry()
	reg.Register("__stub", func() Function { return &stubFunction{} })

	cv, err := Compile("${__stub(${name})}", reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	out, err := cv.Execute(mapCtx{vars: map[string]string{"name": "ada"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "stub:ada" {
		t.Fatalf("expected %q, got %q", "stub:ada", out)
	}
}

func TestCompileUnknownFunctionDecaysToVariableReference(t *testing.T) {
	cv, err := Compile("${__doesNotExist()}", NewRegistry())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	out, err := cv.Execute(mapCtx{vars: map[string]string{"__doesNotExist": "fallback"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != "fallback" {
		t.Fatalf("expected the unknown function name to resolve as a variable, got %q", out)
	}
}

func TestParseRejectsUnterminatedPlaceholder(t *testing.T) {
	if _, err := Parse("${name"); err == nil {
		t.Fatal("expected an error for an unterminated placeholder")
	}
}

func TestParseRejectsUnterminatedFunctionCall(t *testing.T) {
	if _, err := Parse("${__fn(a,b}"); err == nil {
		t.Fatal("expected an error for an unterminated function call")
	}
}
