package loader

import "testing"

func TestDetectAndConvertPostman(t *testing.T) {
	nodes, err := DetectAndConvert([]byte(samplePostmanCollection))
	if err != nil {
		t.Fatalf("DetectAndConvert: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Class != "transactionController" {
		t.Fatalf("expected the postman collection to route through FromPostmanCollection, got %+v", nodes)
	}
}

func TestDetectAndConvertOpenAPIYAML(t *testing.T) {
	nodes, err := DetectAndConvert([]byte(sampleOpenAPIDoc))
	if err != nil {
		t.Fatalf("DetectAndConvert: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected the openapi doc to route through FromOpenAPI, got %d nodes", len(nodes))
	}
}

func TestDetectAndConvertNativePlanFile(t *testing.T) {
	nodes, err := DetectAndConvert([]byte(samplePlan))
	if err != nil {
		t.Fatalf("DetectAndConvert: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Class != "testWorker" {
		t.Fatalf("expected the planVersion document to route through LoadPlanFile, got %+v", nodes)
	}
}

func TestDetectAndConvertBareNodeList(t *testing.T) {
	nodes, err := DetectAndConvert([]byte(`
- name: only
  class: loopController
  property:
    loops: 1
`))
	if err != nil {
		t.Fatalf("DetectAndConvert: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "only" {
		t.Fatalf("expected the bare node list to route through ParsePlan, got %+v", nodes)
	}
}
