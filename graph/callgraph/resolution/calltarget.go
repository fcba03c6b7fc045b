package resolution

import "github.com/guardrail-go/guardrail/graph/php"

// ResolveCallTarget implements call-edge emission rules: given
// a call site found by php.WalkMethodBody, determine the class that owns
// the body the call actually lands on. Returns ("", false) when the
// receiver, scope, or method could not be resolved — the caller still
// records the edge,
// just with an empty callee class.
func (c *Context) ResolveCallTarget(cs php.CallSite) (string, bool) {
	switch cs.Kind {
	case php.CallInstance:
		recv, ok := c.receiverClassOf(cs.Receiver)
		if !ok {
			return "", false
		}
		// A receiver statically typed as an interface has no method body of
		// its own to resolve to; the edge targets the interface method
		// directly, and the interface linker (Pass 3) fans it out to every
		// implementor's true defining class.
		if c.Hierarchy.IsInterface(recv) {
			return recv, true
		}
		return c.Hierarchy.ResolveMethodClass(recv, cs.MethodName)

	case php.CallStatic:
		if cs.Scope == nil {
			return "", false
		}
		scopeText := cs.Scope.Content(c.Source)
		switch scopeText {
		case "parent":
			return c.Hierarchy.ResolveMethodClassThroughParent(c.CurrentClass, cs.MethodName)
		case "self", "static":
			return c.Hierarchy.ResolveMethodClass(c.CurrentClass, cs.MethodName)
		default:
			resolved := c.Resolver.Resolve(scopeText)
			return c.Hierarchy.ResolveMethodClass(resolved, cs.MethodName)
		}

	case php.CallInvocable:
		recv, ok := c.receiverClassOf(cs.Receiver)
		if !ok {
			return "", false
		}
		return c.Hierarchy.ResolveMethodClass(recv, "__invoke")

	default:
		return "", false
	}
}
