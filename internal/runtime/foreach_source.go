package runtime

import (
	"fmt"
	"strings"

	"github.com/blackcoderx/surge/internal/controllers"
)

// VariableForeachSource reads a delimited thread variable as a
// ForeachController's item list and writes the current item back under
// ReturnName, mirroring
// original_source/pymeter/controls/foreach_controller.py's
// init_foreach/iterate_data. Vars is bound once per thread by the
// execution unit after cloning (internal/runtime/unit.go's
// bindThreadScoped); Clone returns a fresh, unbound copy so the
// controller's own per-thread CloneNode never lets two threads write
// through the same *Variables.
type VariableForeachSource struct {
	Vars       *Variables
	InputName  string
	ReturnName string
	Separator  string
}

func NewVariableForeachSource(inputName, returnName, separator string) *VariableForeachSource {
	return &VariableForeachSource{InputName: inputName, ReturnName: returnName, Separator: separator}
}

// BindVariables installs the calling thread's Variables, called once per
// clone before the controller's first Next().
func (s *VariableForeachSource) BindVariables(vars *Variables) { s.Vars = vars }

func (s *VariableForeachSource) Items() ([]any, error) {
	if s.Vars == nil {
		return nil, fmt.Errorf("foreach source %q: not bound to a thread", s.InputName)
	}
	raw, ok := s.Vars.Get(s.InputName)
	if !ok || raw == "" {
		return nil, nil
	}
	sep := s.Separator
	if sep == "" {
		sep = ","
	}
	parts := strings.Split(raw, sep)
	items := make([]any, len(parts))
	for i, p := range parts {
		items[i] = p
	}
	return items, nil
}

func (s *VariableForeachSource) Assign(item any) {
	if s.Vars == nil {
		return
	}
	s.Vars.Put(s.ReturnName, fmt.Sprint(item))
}

// Clone satisfies the interface internal/controllers.ForeachController's
// CloneNode checks for; the returned copy carries this source's static
// configuration only, not Vars, so BindVariables must be called again on it.
func (s *VariableForeachSource) Clone() controllers.ForeachSource {
	return &VariableForeachSource{InputName: s.InputName, ReturnName: s.ReturnName, Separator: s.Separator}
}
