package builtin

import (
	"testing"

	"github.com/blackcoderx/surge/internal/funcs"
)

func TestOAuth2TokenRequiresAtLeastThreeArguments(t *testing.T) {
	f := &OAuth2Token{}
	if err := f.SetParameters(nil); err == nil {
		t.Fatal("expected an error with no arguments")
	}
}

func TestOAuth2TokenAcceptsOptionalScopeArgument(t *testing.T) {
	reg := funcs.NewRegistry()
	url := compile(t, reg, "https://example.com/token")
	id := compile(t, reg, "client-id")
	secret := compile(t, reg, "client-secret")
	scope := compile(t, reg, "read write")

	f := &OAuth2Token{}
	if err := f.SetParameters([]*funcs.CompoundVariable{url, id, secret, scope}); err != nil {
		t.Fatalf("SetParameters: %v", err)
	}
}
