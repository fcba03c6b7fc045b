package builder

import "github.com/guardrail-go/guardrail/graph/callgraph/core"

// LinkTraits wires every trait-consuming class through to the trait body
// that actually carries a method's edges. Pass 2 analyzes a trait's method
// bodies once, against the trait's own FQCN, so without this a rule whose
// entry point is the *consuming* class (the common case — entry points are
// always concrete classes) would see no outgoing edges at all for a method
// it only inherits from a trait. For every class using a trait, the edge
// points at resolve_method_class's answer rather than the trait directly,
// so an override on the consuming class (or a nearer trait) is respected
// instead of always landing on this particular trait.
func LinkTraits(hierarchy *core.ClassHierarchy, cg *core.CallGraph) {
	for _, trait := range hierarchy.AllTraits() {
		for _, method := range hierarchy.TraitMethods(trait) {
			for _, user := range hierarchy.FindClassesUsingTrait(trait) {
				owner, ok := hierarchy.ResolveMethodClass(user, method)
				if !ok || owner == user {
					continue
				}
				cg.Add(core.MethodCall{
					CallerClass:  user,
					CallerMethod: method,
					CalleeClass:  owner,
					CalleeMethod: method,
					Line:         0,
					Static:       false,
					Receiver:     "trait:" + trait,
				})
			}
		}
	}
}

// LinkInterfaces runs Pass 3: for every interface method and every class
// recorded as implementing that interface, synthesize an edge from the
// interface's method to the implementor's true defining class (found via
// resolve_method_class, so an implementor that only inherits the method
// from a parent still gets linked to the class that actually defines it).
// Synthetic edges always carry Line 0 and are deduped by CallGraph.Add, so
// running LinkInterfaces more than once over the same graph is a no-op.
func LinkInterfaces(hierarchy *core.ClassHierarchy, cg *core.CallGraph) {
	for _, iface := range hierarchy.AllInterfaces() {
		for _, method := range hierarchy.InterfaceMethods(iface) {
			for _, implementor := range hierarchy.FindClassesImplementing(iface) {
				owner, ok := hierarchy.ResolveMethodClass(implementor, method)
				if !ok {
					continue
				}
				cg.Add(core.MethodCall{
					CallerClass:  iface,
					CallerMethod: method,
					CalleeClass:  owner,
					CalleeMethod: method,
					Line:         0,
					Static:       false,
					Receiver:     "interface:" + iface,
				})
			}
		}
	}
}
