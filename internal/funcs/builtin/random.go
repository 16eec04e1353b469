package builtin

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/google/uuid"
)

// Random returns a string of N random digits (default, with no argument: a
// random integer in [0, 1000000000) in decimal), grounded on
// original_source/pymeter/functions/random.py.
type Random struct {
	length *funcs.CompoundVariable
}

func (f *Random) RefKey() string { return "__Random" }

func (f *Random) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		f.length = args[0]
	}
	return nil
}

func (f *Random) Execute(ctx funcs.EvalContext) (string, error) {
	if f.length == nil {
		n, err := rand.Int(rand.Reader, big.NewInt(1_000_000_000))
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n.Int64(), 10), nil
	}

	raw, err := execArg(f.length, ctx)
	if err != nil {
		return "", err
	}
	length, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := 0; i < length; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "%d", d.Int64())
	}
	return sb.String(), nil
}

// UUID returns a random (v4) UUID, using google/uuid — a dependency the
// teacher's go.mod does not carry but the rest of the example pack
// (pumped-fn-pumped-go, theRebelliousNerd-codenerd, giantswarm-muster) uses
// pervasively for identifiers.
type UUID struct{}

func (f *UUID) RefKey() string { return "__UUID" }

func (f *UUID) SetParameters(args []*funcs.CompoundVariable) error {
	return checkParamCount(f.RefKey(), args, 0, 0)
}

func (f *UUID) Execute(funcs.EvalContext) (string, error) {
	return uuid.NewString(), nil
}

// Counter returns a monotonically increasing integer, optionally reset per
// TRUE/FALSE first argument (matching JMeter's __counter(reset)).
type Counter struct {
	resetArg *funcs.CompoundVariable
	n        int64
}

func (f *Counter) RefKey() string { return "__counter" }

func (f *Counter) SetParameters(args []*funcs.CompoundVariable) error {
	if err := checkParamCount(f.RefKey(), args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		f.resetArg = args[0]
	}
	return nil
}

func (f *Counter) Execute(ctx funcs.EvalContext) (string, error) {
	if f.resetArg != nil {
		raw, err := execArg(f.resetArg, ctx)
		if err != nil {
			return "", err
		}
		if strings.EqualFold(strings.TrimSpace(raw), "true") {
			atomic.StoreInt64(&f.n, 0)
		}
	}
	v := atomic.AddInt64(&f.n, 1)
	return strconv.FormatInt(v, 10), nil
}
