package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestSARIFFormatterProducesValidReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewSARIFFormatterWithWriter(&buf, nil)
	if err := f.Format(sampleFindings()); err != nil {
		t.Fatal(err)
	}

	var report map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}

	runs, ok := report["runs"].([]interface{})
	if !ok || len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %v", report["runs"])
	}
	run := runs[0].(map[string]interface{})
	tool := run["tool"].(map[string]interface{})
	driver := tool["driver"].(map[string]interface{})
	if driver["name"] != "Guardrail" {
		t.Errorf("expected driver name Guardrail, got %v", driver["name"])
	}

	results, ok := run["results"].([]interface{})
	if !ok || len(results) != 2 {
		t.Fatalf("expected 2 results, got %v", run["results"])
	}
}

func TestSARIFFormatterEmptyFindings(t *testing.T) {
	var buf bytes.Buffer
	f := NewSARIFFormatterWithWriter(&buf, nil)
	if err := f.Format(nil); err != nil {
		t.Fatal(err)
	}
	var report map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
}
