package php

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// TypeText reduces a type-hint node to its "type expressions"
// rule: nullable T resolves to T; union/intersection types collapse to the
// first concrete class-like member. Scalar hints (int, string, bool, array,
// void, mixed, etc.) are still returned as-is — the caller (the expression
// resolver) is responsible for deciding whether a name looks class-like.
func TypeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Type() {
	case "optional_type":
		// child 0 is "?", child 1 is the underlying type.
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			if c.Type() != "?" {
				return TypeText(c, source)
			}
		}
		return ""
	case "union_type", "intersection_type":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.Type() == "null" || c.Type() == "primitive_type" {
				continue
			}
			if t := TypeText(c, source); t != "" {
				return t
			}
		}
		return ""
	case "named_type":
		if node.NamedChildCount() > 0 {
			return TypeText(node.NamedChild(0), source)
		}
		return strings.TrimPrefix(node.Content(source), "?")
	default:
		return strings.TrimPrefix(node.Content(source), "\\")
	}
}

// NamespaceName extracts the dotted/backslash name text of a
// namespace_name, qualified_name, or plain name node.
func NamespaceName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Content(source)
}

// childrenOfType returns every direct child of node whose Type() matches
// any of types, in document order.
func childrenOfType(node *sitter.Node, types ...string) []*sitter.Node {
	if node == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// walk calls visit for node and every descendant, depth-first, pre-order.
// visit returns false to skip descending into that node's children (used to
// avoid crossing into nested function/class bodies when the caller wants
// only the current scope).
func walk(node *sitter.Node, visit func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visit(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walk(node.Child(i), visit)
	}
}
