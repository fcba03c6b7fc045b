package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

func sampleRuleResult() core.RuleResult {
	rule := core.Rule{
		Name:     "auth-required",
		Requires: []core.MethodRef{{Class: "App\\B", Method: "auth"}},
		Message:  "must call B::auth",
	}
	return core.RuleResult{
		Rule: rule,
		Results: []core.AnalysisResult{
			{
				Entry:    core.EntryPoint{Class: "App\\A", Method: "run", File: "/proj/src/A.php"},
				Required: rule.Requires[0],
				Found:    false,
				Message:  rule.Message,
			},
			{
				Entry:    core.EntryPoint{Class: "App\\C", Method: "run", File: "/proj/src/C.php"},
				Required: rule.Requires[0],
				Found:    true,
				Witness: []core.MethodCall{
					{CallerClass: "App\\C", CallerMethod: "run", CalleeClass: "App\\B", CalleeMethod: "auth", Line: 10},
				},
			},
		},
		PairedViolations: []core.PairedCallViolation{
			{
				Entry: core.EntryPoint{Class: "App\\S", Method: "exec", File: "/proj/src/S.php"},
				Obligation: core.PairedCallObligation{
					Trigger:     core.MethodRef{Class: "App\\DB", Method: "beginTransaction"},
					Completions: []core.MethodRef{{Class: "App\\DB", Method: "commit"}},
					Message:     "begin without commit/rollback",
				},
				Witness: []core.MethodCall{
					{CallerClass: "App\\S", CallerMethod: "exec", CalleeClass: "App\\DB", CalleeMethod: "beginTransaction", Line: 20},
				},
			},
		},
	}
}

func TestBuildFindings(t *testing.T) {
	findings := BuildFindings([]core.RuleResult{sampleRuleResult()})

	if len(findings) != 2 {
		t.Fatalf("expected 2 findings (1 required miss + 1 paired violation), got %d", len(findings))
	}
	if findings[0].Kind != FindingRequired {
		t.Errorf("expected first finding to be a required-call miss, got %s", findings[0].Kind)
	}
	if findings[0].Entry.Class != "App\\A" {
		t.Errorf("expected violation for App\\A, got %s", findings[0].Entry.Class)
	}
	if findings[1].Kind != FindingPaired {
		t.Errorf("expected second finding to be a paired-call violation, got %s", findings[1].Kind)
	}
	if findings[1].Location.Line != 20 {
		t.Errorf("expected paired violation location line 20 (from witness), got %d", findings[1].Location.Line)
	}
}

func TestBuildFindingsSkipsSatisfied(t *testing.T) {
	rr := sampleRuleResult()
	findings := BuildFindings([]core.RuleResult{rr})
	for _, f := range findings {
		if f.Entry.Class == "App\\C" {
			t.Errorf("satisfied entry point App\\C should not produce a finding")
		}
	}
}

func TestBuildSummary(t *testing.T) {
	findings := BuildFindings([]core.RuleResult{sampleRuleResult()})
	summary := BuildSummary(findings, 1)

	if summary.TotalFindings != 2 {
		t.Errorf("expected 2 total findings, got %d", summary.TotalFindings)
	}
	if summary.RequiredMisses != 1 || summary.PairedViolations != 1 {
		t.Errorf("expected 1 required miss + 1 paired violation, got %d/%d", summary.RequiredMisses, summary.PairedViolations)
	}
	if summary.ByRule["auth-required"] != 2 {
		t.Errorf("expected both findings attributed to auth-required, got %d", summary.ByRule["auth-required"])
	}
}

func TestEnricherResolvesRelPathAndSnippet(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "A.php")
	content := "<?php\nclass A {\n  function run() {\n    $this->doAuth();\n  }\n}\n"
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	f := &Finding{
		Location: Location{FilePath: file, Line: 4},
	}
	e := NewEnricher(&OutputOptions{ProjectRoot: dir, ContextLines: 1})
	e.Enrich(f)

	if f.Location.RelPath != "A.php" {
		t.Errorf("expected RelPath A.php, got %q", f.Location.RelPath)
	}
	if len(f.Snippet.Lines) == 0 {
		t.Fatal("expected a non-empty snippet")
	}
	found := false
	for _, l := range f.Snippet.Lines {
		if l.IsHighlight && l.Number == 4 {
			found = true
		}
	}
	if !found {
		t.Error("expected highlighted line 4 in snippet")
	}
}

func TestEnricherSkipsFindingWithNoFile(t *testing.T) {
	f := &Finding{}
	e := NewEnricher(nil)
	e.Enrich(f)
	if f.Location.RelPath != "" {
		t.Error("expected no enrichment for a finding without a file path")
	}
}
