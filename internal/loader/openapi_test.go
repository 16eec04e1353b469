package loader

import "testing"

const sampleOpenAPIDoc = `
openapi: "3.0.0"
info:
  title: Sample API
  version: "1.0"
servers:
  - url: https://api.example.com
paths:
  /widgets:
    get:
      summary: List widgets
      responses:
        "200":
          description: ok
        "404":
          description: not found
    post:
      summary: Create widget
      responses:
        "201":
          description: created
`

func TestFromOpenAPIBuildsOneSamplerPerOperation(t *testing.T) {
	nodes, err := FromOpenAPI([]byte(sampleOpenAPIDoc))
	if err != nil {
		t.Fatalf("FromOpenAPI: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 operations (GET, POST), got %d", len(nodes))
	}

	byName := map[string]Node{}
	for _, n := range nodes {
		byName[n.Name] = n
	}

	get, ok := byName["List widgets"]
	if !ok {
		t.Fatal("expected a node named \"List widgets\"")
	}
	if get.Class != "httpSampler" {
		t.Fatalf("expected httpSampler, got %q", get.Class)
	}
	if url := decodeProp(t, get, "url"); url != "https://api.example.com/widgets" {
		t.Fatalf("unexpected url: %q", url)
	}
	if len(get.Child) != 1 {
		t.Fatalf("expected exactly 1 responseAssertion (only the 2xx code), got %d", len(get.Child))
	}
	if pattern := decodeProp(t, get.Child[0], "pattern"); pattern != "200" {
		t.Fatalf("expected assertion pattern 200, got %q", pattern)
	}

	create, ok := byName["Create widget"]
	if !ok {
		t.Fatal("expected a node named \"Create widget\"")
	}
	if method := decodeProp(t, create, "method"); method != "POST" {
		t.Fatalf("expected POST, got %q", method)
	}
}
