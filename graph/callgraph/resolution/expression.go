package resolution

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guardrail-go/guardrail/graph/php"
)

// ExpressionType implements expression-type table. It is
// also what "receiver-class(e)" means throughout the spec: the same
// function, since $this, property fetches on $this, and nested chains are
// just particular forms of this one table.
//
// Returns ("", false) for any form the table does not cover ("anything
// else → none").
func (c *Context) ExpressionType(node *sitter.Node) (string, bool) {
	if node == nil {
		return "", false
	}

	switch node.Type() {
	case "object_creation_expression":
		return c.newExpressionType(node)

	case "scoped_property_access_expression":
		return c.scopedPropertyType(node)

	case "member_access_expression":
		return c.propertyAccessType(node)

	case "variable_name":
		return c.variableType(node)

	case "member_call_expression", "nullsafe_member_call_expression":
		return c.instanceCallReturnType(node)

	case "scoped_call_expression":
		return c.staticCallReturnType(node)

	case "conditional_expression":
		return c.ternaryType(node)

	case "clone_expression":
		return c.cloneType(node)

	case "binary_expression":
		return c.nullCoalesceType(node)

	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return c.ExpressionType(node.NamedChild(0))
		}
		return "", false

	default:
		return "", false
	}
}

func (c *Context) newExpressionType(node *sitter.Node) (string, bool) {
	classNode := node.ChildByFieldName("class")
	if classNode == nil {
		return "", false
	}
	name := php.NamespaceName(classNode, c.Source)
	if name == "" {
		return "", false
	}
	return c.Resolver.Resolve(name), true
}

// scopedPropertyType handles `self::$p` and `C::$p`.
func (c *Context) scopedPropertyType(node *sitter.Node) (string, bool) {
	scopeNode := node.ChildByFieldName("scope")
	nameNode := node.ChildByFieldName("name")
	if scopeNode == nil || nameNode == nil {
		return "", false
	}
	scope := c.resolveScope(scopeNode)
	prop := trimVariableSigil(nameNode.Content(c.Source))
	return c.Registry.ResolvePropertyType(scope, prop)
}

// propertyAccessType handles `$this->p` and `e->p` (nested property fetch).
func (c *Context) propertyAccessType(node *sitter.Node) (string, bool) {
	object := node.ChildByFieldName("object")
	nameNode := node.ChildByFieldName("name")
	if object == nil || nameNode == nil {
		return "", false
	}
	prop := nameNode.Content(c.Source)

	var receiverClass string
	if object.Type() == "variable_name" && trimVariableSigil(object.Content(c.Source)) == "this" {
		receiverClass = c.CurrentClass
	} else {
		cls, ok := c.ExpressionType(object)
		if !ok {
			return "", false
		}
		receiverClass = cls
	}
	return c.Registry.ResolvePropertyType(receiverClass, prop)
}

// variableType handles a bare local-variable reference, including `$this`.
func (c *Context) variableType(node *sitter.Node) (string, bool) {
	name := trimVariableSigil(node.Content(c.Source))
	if name == "this" {
		if c.CurrentClass == "" {
			return "", false
		}
		return c.CurrentClass, true
	}
	return c.Scope.TypeOf(name)
}

// instanceCallReturnType handles `e->m(...)` / `e?->m(...)` used as an
// expression (e.g. on an assignment's right-hand side, or chained further).
func (c *Context) instanceCallReturnType(node *sitter.Node) (string, bool) {
	object := node.ChildByFieldName("object")
	nameNode := node.ChildByFieldName("name")
	if object == nil || nameNode == nil {
		return "", false
	}
	receiverClass, ok := c.receiverClassOf(object)
	if !ok {
		return "", false
	}
	method := nameNode.Content(c.Source)
	return c.Hierarchy.ResolveMethodReturnType(receiverClass, method)
}

// staticCallReturnType handles `C::m(...)` used as an expression.
func (c *Context) staticCallReturnType(node *sitter.Node) (string, bool) {
	scopeNode := node.ChildByFieldName("scope")
	nameNode := node.ChildByFieldName("name")
	if scopeNode == nil || nameNode == nil {
		return "", false
	}
	scope := c.resolveStaticScope(scopeNode)
	method := nameNode.Content(c.Source)
	return c.Hierarchy.ResolveMethodReturnType(scope, method)
}

func (c *Context) ternaryType(node *sitter.Node) (string, bool) {
	var body, alt *sitter.Node
	if b := node.ChildByFieldName("body"); b != nil {
		body = b
	}
	if a := node.ChildByFieldName("alternative"); a != nil {
		alt = a
	}
	if body != nil {
		if t, ok := c.ExpressionType(body); ok {
			return t, true
		}
	}
	if alt != nil {
		return c.ExpressionType(alt)
	}
	return "", false
}

func (c *Context) cloneType(node *sitter.Node) (string, bool) {
	target := node.ChildByFieldName("argument")
	if target == nil && node.NamedChildCount() > 0 {
		target = node.NamedChild(0)
	}
	return c.ExpressionType(target)
}

// nullCoalesceType handles `a ?? b`; any other binary operator is not part
// of the expression-type table and yields ("", false).
func (c *Context) nullCoalesceType(node *sitter.Node) (string, bool) {
	opNode := node.ChildByFieldName("operator")
	if opNode == nil || opNode.Content(c.Source) != "??" {
		return "", false
	}
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if t, ok := c.ExpressionType(left); ok {
		return t, true
	}
	return c.ExpressionType(right)
}

// receiverClassOf resolves the receiver of an instance/null-safe call to a
// class, applying the $this special case directly rather than recursing
// through ExpressionType's variable_name branch, since `$this` on the LHS
// of `->` is overwhelmingly the common case and deserves the cheap path.
func (c *Context) receiverClassOf(object *sitter.Node) (string, bool) {
	if object.Type() == "variable_name" && trimVariableSigil(object.Content(c.Source)) == "this" {
		return c.CurrentClass, c.CurrentClass != ""
	}
	return c.ExpressionType(object)
}

// resolveScope resolves the scope half of `self::$p` / `C::$p`.
func (c *Context) resolveScope(scopeNode *sitter.Node) string {
	text := scopeNode.Content(c.Source)
	switch text {
	case "self", "static":
		return c.CurrentClass
	default:
		return c.Resolver.Resolve(text)
	}
}

// resolveStaticScope resolves the scope half of a static *call*
// `C::m(...)`: `parent` resolves to parent(currentClass); `self`/`static`
// resolve to currentClass then resolve_method_class picks the true owner
//.
func (c *Context) resolveStaticScope(scopeNode *sitter.Node) string {
	text := scopeNode.Content(c.Source)
	switch text {
	case "parent":
		if p, ok := c.Hierarchy.Parent(c.CurrentClass); ok {
			return p
		}
		return ""
	case "self", "static":
		return c.settleOwnerForMethod(c.CurrentClass, "")
	default:
		return c.Resolver.Resolve(text)
	}
}

func trimVariableSigil(text string) string {
	if len(text) > 0 && text[0] == '$' {
		return text[1:]
	}
	return text
}
