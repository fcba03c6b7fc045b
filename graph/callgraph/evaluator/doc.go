// Package evaluator decides, given a built call graph and a
// rule, decide for every entry point whether the rule's required calls are
// reachable and whether its paired trigger/completion obligations hold.
//
// Grounded on the teacher's rule-evaluation shape in graph/callgraph
// (walk entry points, query the graph, accumulate violations) retargeted
// from taint-sink reachability to plain call-graph reachability and paired
// obligations, neither of which the teacher's engine tracked.
package evaluator
