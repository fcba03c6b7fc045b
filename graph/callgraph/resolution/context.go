package resolution

import (
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// Context bundles the frozen hierarchy/registry tables and the transient
// per-method scope that expression-type resolution needs. One Context is built per method body and discarded once Pass 2
// moves to the next method.
type Context struct {
	Hierarchy    *core.ClassHierarchy
	Registry     *core.TypeRegistry
	Scope        *core.MethodScope
	Resolver     NameResolver
	Source       []byte
	CurrentClass string
}

// settleOwnerForMethod resolves `C` (a raw class-name token already produced by
// NameResolver, e.g. from a static scope or a `new T` expression) through
// resolve_method_class when it names the current class, so the edge lands
// on the body's true defining site.
func (c *Context) settleOwnerForMethod(class, method string) string {
	if class == "" {
		return class
	}
	if class == c.CurrentClass {
		if owner, ok := c.Hierarchy.ResolveMethodClass(class, method); ok {
			return owner
		}
	}
	return class
}
