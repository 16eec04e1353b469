package builtin

import (
	"encoding/base64"

	"github.com/blackcoderx/surge/internal/funcs"
)

// Base64Encode encodes its single argument as standard base64, grounded on
// original_source/pymeter/functions/base64.py.
type Base64Encode struct {
	data *funcs.CompoundVariable
}

func (f *Base64Encode) RefKey() string { return "__base64Encode" }

func (f *Base64Encode) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 1, 1); err != nil {
		return err
	}
	f.data = args[0]
	return nil
}

func (f *Base64Encode) Execute(ctx funcs.EvalContext) (string, error) {
	raw, err := execArg(f.data, ctx)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}
