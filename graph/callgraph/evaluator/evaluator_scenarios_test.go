package evaluator_test

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/graph/callgraph/builder"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/graph/callgraph/evaluator"
)

// parseSource parses an inline PHP snippet the same way DiscoverFiles does,
// without touching the filesystem.
func parseSource(t *testing.T, path, source string) *graph.SourceFile {
	t.Helper()
	parser := sitter.NewParser()
	parser.SetLanguage(php.GetLanguage())
	tree, err := parser.ParseCtx(nil, nil, []byte(source))
	require.NoError(t, err)
	return &graph.SourceFile{Path: path, Source: []byte(source), Tree: tree}
}

func buildFrom(t *testing.T, files ...*graph.SourceFile) builder.Result {
	t.Helper()
	defs := make([]builder.FileDefs, len(files))
	for i, f := range files {
		defs[i] = builder.CollectDefinitions(f)
	}
	hierarchy, registry := builder.MergeDefinitions(defs)

	cg := core.NewCallGraph()
	for _, f := range files {
		for _, e := range builder.AnalyzeFile(f, hierarchy, registry) {
			cg.Add(e)
		}
	}
	builder.LinkTraits(hierarchy, cg)
	builder.LinkInterfaces(hierarchy, cg)

	return builder.Result{CallGraph: cg, Hierarchy: hierarchy, Registry: registry}
}

func TestDirectCallSatisfiesRequiredTarget(t *testing.T) {
	src := `<?php
class OrderController {
    private PaymentGateway $gateway;
    public function __construct(PaymentGateway $gateway) { $this->gateway = $gateway; }
    public function checkout() {
        $this->gateway->charge();
    }
}
class PaymentGateway {
    public function charge() {}
}
`
	result := buildFrom(t, parseSource(t, "order.php", src))

	rule := core.Rule{
		Name:        "checkout-must-charge",
		EntryClass:  "OrderController",
		EntryMethod: "checkout",
		Requires:    []core.MethodRef{{Class: "PaymentGateway", Method: "charge"}},
	}
	entry := core.EntryPoint{Class: "OrderController", Method: "checkout"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.Results, 1)
	assert.True(t, ruleResult.Results[0].Found)
	assert.False(t, ruleResult.Violations())
}

func TestTwoHopIndirectCallIsFound(t *testing.T) {
	src := `<?php
class OrderController {
    private OrderService $service;
    public function checkout() { $this->service->place(); }
}
class OrderService {
    private PaymentGateway $gateway;
    public function place() { $this->gateway->charge(); }
}
class PaymentGateway {
    public function charge() {}
}
`
	result := buildFrom(t, parseSource(t, "order.php", src))

	rule := core.Rule{
		Name:     "checkout-must-charge",
		Requires: []core.MethodRef{{Class: "PaymentGateway", Method: "charge"}},
	}
	entry := core.EntryPoint{Class: "OrderController", Method: "checkout"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.Results, 1)
	assert.True(t, ruleResult.Results[0].Found)
	assert.Len(t, ruleResult.Results[0].Witness, 2)
}

func TestMissingRequiredCallIsAViolation(t *testing.T) {
	src := `<?php
class OrderController {
    public function checkout() {
        $this->log("checked out");
    }
    private function log($msg) {}
}
class PaymentGateway {
    public function charge() {}
}
`
	result := buildFrom(t, parseSource(t, "order.php", src))

	rule := core.Rule{
		Requires: []core.MethodRef{{Class: "PaymentGateway", Method: "charge"}},
	}
	entry := core.EntryPoint{Class: "OrderController", Method: "checkout"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.Results, 1)
	assert.False(t, ruleResult.Results[0].Found)
	assert.True(t, ruleResult.Violations())
}

func TestTraitMethodCarriesTheCall(t *testing.T) {
	src := `<?php
trait Chargeable {
    public function checkout() { $this->gateway->charge(); }
}
class OrderController {
    use Chargeable;
    private PaymentGateway $gateway;
}
class PaymentGateway {
    public function charge() {}
}
`
	result := buildFrom(t, parseSource(t, "order.php", src))

	rule := core.Rule{Requires: []core.MethodRef{{Class: "PaymentGateway", Method: "charge"}}}
	entry := core.EntryPoint{Class: "OrderController", Method: "checkout"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.Results, 1)
	assert.True(t, ruleResult.Results[0].Found, "checkout is only defined on the trait, reached via resolve_method_class")
}

func TestInterfaceFanOutReachesEveryImplementor(t *testing.T) {
	src := `<?php
interface PaymentGateway {
    public function charge();
}
class StripeGateway implements PaymentGateway {
    public function charge() { $this->record(); }
    private function record() {}
}
class Checkout {
    private PaymentGateway $gateway;
    public function run() { $this->gateway->charge(); }
}
`
	result := buildFrom(t, parseSource(t, "order.php", src))

	rule := core.Rule{Requires: []core.MethodRef{{Class: "StripeGateway", Method: "record"}}}
	entry := core.EntryPoint{Class: "Checkout", Method: "run"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.Results, 1)
	assert.True(t, ruleResult.Results[0].Found, "Checkout::run calls the interface method, which fans out to StripeGateway::charge")
}

func TestPairedCallSatisfiedAcrossClasses(t *testing.T) {
	src := `<?php
class TransactionManager {
    private Connection $conn;
    public function run() {
        $this->conn->beginTransaction();
        $this->conn->commit();
    }
}
class Connection {
    public function beginTransaction() {}
    public function commit() {}
    public function rollback() {}
}
`
	result := buildFrom(t, parseSource(t, "tx.php", src))

	rule := core.Rule{
		Obligations: []core.PairedCallObligation{{
			Trigger:     core.MethodRef{Class: "Connection", Method: "beginTransaction"},
			Completions: []core.MethodRef{{Class: "Connection", Method: "commit"}, {Class: "Connection", Method: "rollback"}},
		}},
	}
	entry := core.EntryPoint{Class: "TransactionManager", Method: "run"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	assert.Empty(t, ruleResult.PairedViolations)
}

func TestPairedCallViolatedWhenNoCompletionReachable(t *testing.T) {
	src := `<?php
class TransactionManager {
    private Connection $conn;
    public function run() {
        $this->conn->beginTransaction();
    }
}
class Connection {
    public function beginTransaction() {}
    public function commit() {}
    public function rollback() {}
}
`
	result := buildFrom(t, parseSource(t, "tx.php", src))

	rule := core.Rule{
		Obligations: []core.PairedCallObligation{{
			Trigger:     core.MethodRef{Class: "Connection", Method: "beginTransaction"},
			Completions: []core.MethodRef{{Class: "Connection", Method: "commit"}, {Class: "Connection", Method: "rollback"}},
		}},
	}
	entry := core.EntryPoint{Class: "TransactionManager", Method: "run"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	require.Len(t, ruleResult.PairedViolations, 1)
	assert.Equal(t, "beginTransaction", ruleResult.PairedViolations[0].Obligation.Trigger.Method)
}

func TestUnreachableTriggerIsVacuouslySatisfied(t *testing.T) {
	src := `<?php
class TransactionManager {
    public function run() {
        $this->log();
    }
    private function log() {}
}
class Connection {
    public function beginTransaction() {}
    public function commit() {}
}
`
	result := buildFrom(t, parseSource(t, "tx.php", src))

	rule := core.Rule{
		Obligations: []core.PairedCallObligation{{
			Trigger:     core.MethodRef{Class: "Connection", Method: "beginTransaction"},
			Completions: []core.MethodRef{{Class: "Connection", Method: "commit"}},
		}},
	}
	entry := core.EntryPoint{Class: "TransactionManager", Method: "run"}

	ruleResult := evaluator.EvaluateRule(result.CallGraph, rule, []core.EntryPoint{entry})
	assert.Empty(t, ruleResult.PairedViolations, "run never calls beginTransaction, so the obligation never triggers")
}
