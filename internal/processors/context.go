package processors

import (
	"context"

	"github.com/blackcoderx/surge/internal/threadctx"
)

// variablesFrom recovers the calling thread's variable sink from ctx,
// attached once per sample by internal/runtime's executeSamplePackage.
func variablesFrom(ctx context.Context) (threadctx.VariableSink, bool) {
	b, ok := threadctx.From(ctx)
	if !ok {
		return nil, false
	}
	return b.Vars, true
}
