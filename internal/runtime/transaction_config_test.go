package runtime_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blackcoderx/surge/internal/funcs"
	"github.com/blackcoderx/surge/internal/loader"
	"github.com/blackcoderx/surge/internal/runtime"
)

// TestTransactionScopedConfigMergesIntoDescendantSamplers proves spec.md
// §4.4 step 3's transaction-scoped config merge end to end: an
// httpHeaderManager marked transactionScoped, placed as a direct child of a
// transactionController, must be merged into every sampler that controller
// wraps but not into a sibling sampler outside the transaction.
func TestTransactionScopedConfigMergesIntoDescendantSamplers(t *testing.T) {
	var insideAuth, outsideAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/inside":
			insideAuth = append(insideAuth, r.Header.Get("Authorization"))
		case "/outside":
			outsideAuth = append(outsideAuth, r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	plan := fmt.Sprintf(`
planVersion: "1.0.0"
plan:
  - name: worker1
    class: testWorker
    property:
      numberOfThreads: 1
      loops: 1
    child:
      - name: txn
        class: transactionController
        child:
          - name: txnHeaders
            class: httpHeaderManager
            property:
              transactionScoped: true
              headers:
                Authorization: "Bearer txn-token"
          - name: inside
            class: httpSampler
            property:
              method: GET
              url: %q
  - name: worker2
    class: testWorker
    property:
      numberOfThreads: 1
      loops: 1
    child:
      - name: outside
        class: httpSampler
        property:
          method: GET
          url: %q
`, srv.URL+"/inside", srv.URL+"/outside")

	_, nodes, err := loader.LoadPlanFile([]byte(plan))
	if err != nil {
		t.Fatalf("LoadPlanFile: %v", err)
	}

	b := loader.NewBuilder(funcs.NewRegistry())
	root, err := b.Build(nodes)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	engine := runtime.NewEngine(root, runtime.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(insideAuth) != 1 || insideAuth[0] != "Bearer txn-token" {
		t.Fatalf("expected the transaction-scoped header to reach the in-transaction sampler, got %v", insideAuth)
	}
	if len(outsideAuth) != 1 || outsideAuth[0] != "" {
		t.Fatalf("expected the transaction-scoped header to NOT reach the out-of-transaction sampler, got %v", outsideAuth)
	}
}
