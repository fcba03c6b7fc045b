// Package core implements "DATA MODEL" and the read side of
// §4.3/§4.4/§4.8: ClassHierarchy, TypeRegistry, and CallGraph.
//
// Grounded on the teacher's graph/callgraph/core/types.go (CallGraph with
// forward/reverse multimaps keyed by fully-qualified identifier) and its
// graph/callgraph/resolution/callsites.go (receiver/return-type lookup
// across inheritance). The teacher modeled a flat function-FQN call graph
// for Python; this package generalizes that shape to method identifiers
// that carry a separate class half, because the spec's reachability rules
// (resolve_method_class through traits-before-parent, interface fan-out)
// only make sense once class identity is first-class.
package core
