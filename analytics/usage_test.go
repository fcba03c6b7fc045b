package analytics

import (
	"testing"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/output"
)

func TestSummarizeFindings_Empty(t *testing.T) {
	counts := SummarizeFindings(nil)
	if counts.TotalFindings != 0 || counts.RequiredMisses != 0 || counts.PairedViolations != 0 || counts.RulesWithFindings != 0 {
		t.Fatalf("expected all-zero counts for no findings, got %+v", counts)
	}
}

func TestSummarizeFindings_MixedKinds(t *testing.T) {
	findings := []*output.Finding{
		{Kind: output.FindingRequired, RuleName: "payment-requires-auth"},
		{Kind: output.FindingRequired, RuleName: "payment-requires-auth"},
		{Kind: output.FindingPaired, RuleName: "checkout-must-charge"},
	}

	counts := SummarizeFindings(findings)

	if counts.TotalFindings != 3 {
		t.Errorf("TotalFindings = %d, want 3", counts.TotalFindings)
	}
	if counts.RequiredMisses != 2 {
		t.Errorf("RequiredMisses = %d, want 2", counts.RequiredMisses)
	}
	if counts.PairedViolations != 1 {
		t.Errorf("PairedViolations = %d, want 1", counts.PairedViolations)
	}
	if counts.RulesWithFindings != 2 {
		t.Errorf("RulesWithFindings = %d, want 2", counts.RulesWithFindings)
	}
}

func TestRunCounts_Properties_NoPII(t *testing.T) {
	findings := []*output.Finding{
		{
			Kind:     output.FindingRequired,
			RuleName: "payment-requires-auth",
			Entry:    core.EntryPoint{File: "/src/Controller/PaymentController.php", Class: "PaymentController", Method: "charge"},
		},
	}

	props := SummarizeFindings(findings).Properties()

	for key, value := range props {
		if s, ok := value.(string); ok && s != "" {
			t.Errorf("property %q carries a string value %q; only counts are expected", key, s)
		}
	}
	if props["total_findings"] != 1 {
		t.Errorf("total_findings = %v, want 1", props["total_findings"])
	}
}
