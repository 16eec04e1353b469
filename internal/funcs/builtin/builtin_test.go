package builtin

import (
	"encoding/base64"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/blackcoderx/surge/internal/funcs"
)

type noopCtx struct{}

func (noopCtx) GetVariable(string) (string, bool) { return "", false }
func (noopCtx) GetProperty(string) (string, bool) { return "", false }

func compile(t *testing.T, reg *funcs.Registry, raw string) *funcs.CompoundVariable {
	t.Helper()
	cv, err := funcs.Compile(raw, reg)
	if err != nil {
		t.Fatalf("Compile(%q): %v", raw, err)
	}
	return cv
}

func TestYearDefaultsToCurrentYear(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__year()}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := strconv.Itoa(time.Now().UTC().Year())
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestYearAppliesIntegerOffset(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__year(-1)}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := strconv.Itoa(time.Now().UTC().Year() - 1)
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestTimeDefaultsToRFC3339(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__time()}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, out); err != nil {
		t.Fatalf("expected an RFC3339 timestamp, got %q: %v", out, err)
	}
}

func TestTimeHonorsCustomLayout(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__time(2006)}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected a 4-digit year layout output, got %q", out)
	}
}

func TestRandomProducesRequestedDigitCount(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__Random(5)}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 5 {
		t.Fatalf("expected 5 digits, got %q", out)
	}
	for _, c := range out {
		if c < '0' || c > '9' {
			t.Fatalf("expected only digits, got %q", out)
		}
	}
}

func TestUUIDProducesDistinctValues(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	cv := compile(t, reg, "${__UUID()}")
	first, err := cv.Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := cv.Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first == second {
		t.Fatal("expected two distinct UUIDs across calls")
	}
	if len(first) != 36 {
		t.Fatalf("expected a canonical 36-character UUID, got %q", first)
	}
}

func TestBase64EncodeMatchesStandardEncoding(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	out, err := compile(t, reg, "${__base64Encode(hello)}").Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := base64.StdEncoding.EncodeToString([]byte("hello"))
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestCounterIncrementsAndResets(t *testing.T) {
	c := &Counter{}
	if err := c.SetParameters(nil); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}

	first, err := c.Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	second, err := c.Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first != "1" || second != "2" {
		t.Fatalf("expected counter to increment 1, 2; got %s, %s", first, second)
	}

	reg := funcs.NewRegistry()
	resetArg, err := funcs.Compile("true", reg)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := c.SetParameters([]*funcs.CompoundVariable{resetArg}); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
	third, err := c.Execute(noopCtx{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if third != "1" {
		t.Fatalf("expected the counter to reset to 1, got %s", third)
	}
}

func TestCheckParamCountRejectsOutOfRange(t *testing.T) {
	reg := funcs.NewRegistry()
	Register(reg)

	if _, err := funcs.Compile("${__base64Encode()}", reg); err == nil {
		t.Fatal("expected Compile to surface the minimum-argument error for __base64Encode")
	} else if !strings.Contains(err.Error(), "__base64Encode") {
		t.Fatalf("expected the error to name the function, got %v", err)
	}
}
