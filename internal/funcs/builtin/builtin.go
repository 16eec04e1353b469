// Package builtin supplies a small set of concrete __functions, the kind
// spec.md §1 explicitly treats as "out of scope" for the core but which a
// complete engine ships anyway (see SPEC_FULL.md §4). Grounded on
// original_source/pymeter/functions/{year,random,base64}.py for shape and
// parameter-count validation, and on the teacher's shared/auth.go for the
// OAuth2 and AI-assertion variants.
package builtin

import (
	"fmt"

	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/pkg/llm"
)

// checkParamCount validates a function's argument count, mirroring
// pymeter.functions.function.Function.check_parameter_{min,max,count}.
func checkParamCount(refKey string, args []*funcs.CompoundVariable, min, max int) error {
	n := len(args)
	if n < min || (max >= 0 && n > max) {
		return fmt.Errorf("function %s: expected between %d and %d arguments, got %d", refKey, min, max, n)
	}
	return nil
}

func execArg(arg *funcs.CompoundVariable, ctx funcs.EvalContext) (string, error) {
	if arg == nil {
		return "", nil
	}
	return arg.Execute(ctx)
}

// Register installs the full built-in set into reg.
func Register(reg *funcs.Registry) {
	reg.Register("__year", func() funcs.Function { return &Year{} })
	reg.Register("__time", func() funcs.Function { return &Time{} })
	reg.Register("__Random", func() funcs.Function { return &Random{} })
	reg.Register("__UUID", func() funcs.Function { return &UUID{} })
	reg.Register("__base64Encode", func() funcs.Function { return &Base64Encode{} })
	reg.Register("__counter", func() funcs.Function { return &Counter{} })
	reg.Register("__oauth2Token", func() funcs.Function { return &OAuth2Token{} })
}

// RegisterAI additionally installs the __aiJudge function bound to client.
// Kept separate from Register because it requires an external collaborator
// (an LLM client) that most test plans never reference.
func RegisterAI(reg *funcs.Registry, client llm.LLMClient) {
	reg.Register("__aiJudge", func() funcs.Function { return NewAIJudge(client) })
}
