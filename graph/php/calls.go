package php

import sitter "github.com/smacker/go-tree-sitter"

// CallKind classifies a call site the way PHP distinguishes call forms.
type CallKind int

const (
	CallInstance  CallKind = iota // recv->m(...) or recv?->m(...)
	CallStatic                    // C::m(...)
	CallInvocable                 // e(...) where e is a variable or $this->p
)

// CallSite is one call expression found in a method body. Receiver/Scope
// are still raw nodes — resolving them to a class is the resolution
// package's job, not this package's.
type CallSite struct {
	Kind       CallKind
	Receiver   *sitter.Node // CallInstance/CallInvocable: the object/callee expression
	Scope      *sitter.Node // CallStatic: the scope expression (self/static/parent/ClassName)
	MethodName string
	NullSafe   bool
	LineNumber int
}

// Assignment is a simple local-variable assignment `v = expr` found in a
// method body. Non-simple targets (destructuring, property
// writes) are not local-variable assignments and are skipped.
type Assignment struct {
	VarName    string
	Value      *sitter.Node
	LineNumber int
}

// WalkMethodBody visits every call site and simple assignment within a
// method body in source order, without descending into nested
// anonymous_function_creation_expression / arrow_function bodies — local
// variable scope is confined to a single method body, and
// treating a closure's interior as part of the enclosing scope would blur
// that boundary.
func WalkMethodBody(body *sitter.Node, source []byte, onCall func(CallSite), onAssignment func(Assignment)) {
	if body == nil {
		return
	}
	walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case "anonymous_function_creation_expression", "arrow_function":
			return false
		case "assignment_expression":
			if a, ok := parseAssignment(n, source); ok && onAssignment != nil {
				onAssignment(a)
			}
		case "member_call_expression", "nullsafe_member_call_expression":
			if cs, ok := parseInstanceCall(n, source); ok && onCall != nil {
				onCall(cs)
			}
		case "scoped_call_expression":
			if cs, ok := parseStaticCall(n, source); ok && onCall != nil {
				onCall(cs)
			}
		case "function_call_expression":
			if cs, ok := parseInvocableCall(n, source); ok && onCall != nil {
				onCall(cs)
			}
		}
		return true
	})
}

func parseAssignment(node *sitter.Node, source []byte) (Assignment, bool) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || right == nil || left.Type() != "variable_name" {
		return Assignment{}, false
	}
	return Assignment{
		VarName:    trimDollar(left.Content(source)),
		Value:      right,
		LineNumber: int(node.StartPoint().Row) + 1,
	}, true
}

func parseInstanceCall(node *sitter.Node, source []byte) (CallSite, bool) {
	object := node.ChildByFieldName("object")
	nameNode := node.ChildByFieldName("name")
	if object == nil || nameNode == nil {
		return CallSite{}, false
	}
	return CallSite{
		Kind:       CallInstance,
		Receiver:   object,
		MethodName: nameNode.Content(source),
		NullSafe:   node.Type() == "nullsafe_member_call_expression",
		LineNumber: int(node.StartPoint().Row) + 1,
	}, true
}

func parseStaticCall(node *sitter.Node, source []byte) (CallSite, bool) {
	scope := node.ChildByFieldName("scope")
	nameNode := node.ChildByFieldName("name")
	if scope == nil || nameNode == nil {
		return CallSite{}, false
	}
	return CallSite{
		Kind:       CallStatic,
		Scope:      scope,
		MethodName: nameNode.Content(source),
		LineNumber: int(node.StartPoint().Row) + 1,
	}, true
}

func parseInvocableCall(node *sitter.Node, source []byte) (CallSite, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return CallSite{}, false
	}
	switch fn.Type() {
	case "variable_name", "member_access_expression":
		return CallSite{
			Kind:       CallInvocable,
			Receiver:   fn,
			MethodName: "__invoke",
			LineNumber: int(node.StartPoint().Row) + 1,
		}, true
	default:
		return CallSite{}, false
	}
}
