package builtin

import (
	"strconv"
	"strings"
	"time"

	"github.com/blackcoderx/surge/internal/funcs"
)

// Year returns the current year, optionally shifted by an integer offset.
// Grounded on original_source/pymeter/functions/year.py.
type Year struct {
	offset *funcs.CompoundVariable
}

func (f *Year) RefKey() string { return "__year" }

func (f *Year) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		f.offset = args[0]
	}
	return nil
}

func (f *Year) Execute(ctx funcs.EvalContext) (string, error) {
	now := time.Now().UTC()
	if f.offset != nil {
		raw, err := execArg(f.offset, ctx)
		if err != nil {
			return "", err
		}
		shift, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return "", err
		}
		now = now.AddDate(shift, 0, 0)
	}
	return strconv.Itoa(now.Year()), nil
}

// Time returns the current UTC time formatted per an optional Go layout
// argument (default RFC3339).
type Time struct {
	layout *funcs.CompoundVariable
}

func (f *Time) RefKey() string { return "__time" }

func (f *Time) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		f.layout = args[0]
	}
	return nil
}

func (f *Time) Execute(ctx funcs.EvalContext) (string, error) {
	layout := time.RFC3339
	if f.layout != nil {
		raw, err := execArg(f.layout, ctx)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(raw) != "" {
			layout = raw
		}
	}
	return time.Now().UTC().Format(layout), nil
}
