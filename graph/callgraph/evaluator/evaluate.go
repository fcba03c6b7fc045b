package evaluator

import "github.com/guardrail-go/guardrail/graph/callgraph/core"

// EvaluateRule checks one rule against every entry point it applies to and
// returns the combined result: one AnalysisResult per entry point (when the
// rule declares required calls) plus every paired-call violation found
// (when the rule declares obligations). A rule with both populated is
// evaluated on both axes independently.
func EvaluateRule(cg *core.CallGraph, rule core.Rule, entries []core.EntryPoint) core.RuleResult {
	result := core.RuleResult{Rule: rule}

	for _, entry := range entries {
		if !appliesTo(rule, entry) {
			continue
		}
		if len(rule.Requires) > 0 {
			result.Results = append(result.Results, evaluateRequires(cg, entry, rule))
		}
		for _, obligation := range rule.Obligations {
			if violation, violated := evaluateObligation(cg, entry, obligation); violated {
				result.PairedViolations = append(result.PairedViolations, violation)
			}
		}
	}

	return result
}

// appliesTo implements the rule's entry-point source selector: an empty
// EntryClass matches any entry point; an empty EntryMethod matches any
// method on EntryClass. A rule naming neither narrows nothing, matching
// every entry point the collaborator discovered (spec.md §4.10's
// degenerate-pass case when the collaborator itself yields zero entries).
func appliesTo(rule core.Rule, entry core.EntryPoint) bool {
	if rule.EntryClass != "" && rule.EntryClass != entry.Class {
		return false
	}
	if rule.EntryMethod != "" && rule.EntryMethod != entry.Method {
		return false
	}
	return true
}

// evaluateRequires implements the any-of semantics over rule.Requires: the
// entry point satisfies the rule as soon as one required target is
// reachable from it. The witness path is the first one FindPath locates;
// the targets are tried in declared order, so the result is deterministic
// even when more than one is reachable.
func evaluateRequires(cg *core.CallGraph, entry core.EntryPoint, rule core.Rule) core.AnalysisResult {
	entryID := entry.ID()

	for _, req := range rule.Requires {
		if path, ok := cg.FindPath(entryID, req.ID()); ok {
			return core.AnalysisResult{
				Entry:    entry,
				Required: req,
				Found:    true,
				Witness:  path,
				Message:  rule.Message,
			}
		}
	}

	var reported core.MethodRef
	if len(rule.Requires) > 0 {
		reported = rule.Requires[0]
	}
	return core.AnalysisResult{
		Entry:    entry,
		Required: reported,
		Found:    false,
		Message:  rule.Message,
	}
}

// evaluateObligation implements the paired trigger/completion rule: an
// entry point that never reaches the trigger satisfies the obligation
// vacuously (there is nothing to pair). An entry point that does reach the
// trigger must also reach at least one of the declared completions; if none
// is reachable, the obligation is violated and the witness is the path from
// the entry to the trigger (the thing that was left unpaired).
func evaluateObligation(cg *core.CallGraph, entry core.EntryPoint, obligation core.PairedCallObligation) (core.PairedCallViolation, bool) {
	entryID := entry.ID()
	triggerID := obligation.Trigger.ID()

	triggerPath, triggerReachable := cg.FindPath(entryID, triggerID)
	if !triggerReachable {
		return core.PairedCallViolation{}, false
	}

	for _, completion := range obligation.Completions {
		if cg.HasPath(entryID, completion.ID()) {
			return core.PairedCallViolation{}, false
		}
	}

	return core.PairedCallViolation{
		Entry:      entry,
		Obligation: obligation,
		Witness:    triggerPath,
	}, true
}
