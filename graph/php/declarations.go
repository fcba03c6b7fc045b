package php

import sitter "github.com/smacker/go-tree-sitter"

// Kind distinguishes the three declaration forms this package tracks.
type Kind int

const (
	KindClass Kind = iota
	KindTrait
	KindInterface
)

// Param describes one formal parameter, including constructor promotion.
type Param struct {
	Name      string
	Type      string
	Promoted  bool // visibility modifier present -> constructor-promoted property
	Static    bool
}

// MethodDecl is a single method_declaration extracted from a class-like body.
type MethodDecl struct {
	Name       string
	ReturnType string
	Params     []Param
	LineNumber int
	HasBody    bool // false for interface method signatures
}

// PropertyDecl is a single declared (non-promoted) property.
type PropertyDecl struct {
	Name   string
	Type   string
	Static bool
}

// ClassLike is the result of parsing one class_declaration, trait_declaration,
// or interface_declaration node.
type ClassLike struct {
	Kind       Kind
	Name       string // already namespace-qualified by the caller
	ParentRaw  string // raw name text, resolved by the caller's NameResolver
	Interfaces []string
	Traits     []string
	Methods    []MethodDecl
	Properties []PropertyDecl
	LineNumber int
}

// ParseClassLike extracts a ClassLike from a class_declaration,
// trait_declaration, or interface_declaration node. The returned Name,
// ParentRaw, Interfaces and Traits are raw source text — name resolution
// (namespace + import map) is the caller's responsibility.
func ParseClassLike(node *sitter.Node, source []byte) *ClassLike {
	if node == nil {
		return nil
	}

	var kind Kind
	switch node.Type() {
	case "class_declaration":
		kind = KindClass
	case "trait_declaration":
		kind = KindTrait
	case "interface_declaration":
		kind = KindInterface
	default:
		return nil
	}

	result := &ClassLike{Kind: kind, LineNumber: int(node.StartPoint().Row) + 1}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		result.Name = nameNode.Content(source)
	}

	if baseClause := node.ChildByFieldName("base_clause"); baseClause != nil {
		names := extractQualifiedNames(baseClause, source)
		if kind == KindInterface {
			// interface extends one-or-more parent interfaces; treated the
			// same as "implements" for reachability purposes.
			result.Interfaces = append(result.Interfaces, names...)
		} else if len(names) > 0 {
			result.ParentRaw = names[0]
		}
	}

	if ifaceClause := node.ChildByFieldName("interfaces"); ifaceClause != nil {
		result.Interfaces = append(result.Interfaces, extractQualifiedNames(ifaceClause, source)...)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return result
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "method_declaration":
			result.Methods = append(result.Methods, parseMethodDeclaration(member, source))
		case "property_declaration":
			result.Properties = append(result.Properties, parsePropertyDeclaration(member, source)...)
		case "use_declaration":
			result.Traits = append(result.Traits, extractQualifiedNames(member, source)...)
		}
	}

	return result
}

// extractQualifiedNames returns the text of every name/qualified_name child
// under node (used for base_clause, class_interface_clause, use_declaration).
func extractQualifiedNames(node *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		switch c.Type() {
		case "name", "qualified_name":
			names = append(names, c.Content(source))
		}
	}
	return names
}

func parseMethodDeclaration(node *sitter.Node, source []byte) MethodDecl {
	decl := MethodDecl{LineNumber: int(node.StartPoint().Row) + 1}

	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		decl.Name = nameNode.Content(source)
	}

	if retNode := node.ChildByFieldName("return_type"); retNode != nil {
		decl.ReturnType = TypeText(retNode, source)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		decl.Params = parseParameters(params, source)
	}

	decl.HasBody = node.ChildByFieldName("body") != nil

	return decl
}

func parseParameters(paramList *sitter.Node, source []byte) []Param {
	var params []Param
	for i := 0; i < int(paramList.NamedChildCount()); i++ {
		p := paramList.NamedChild(i)
		switch p.Type() {
		case "simple_parameter":
			param := Param{}
			if nameNode := p.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(source)
			}
			if typeNode := p.ChildByFieldName("type"); typeNode != nil {
				param.Type = TypeText(typeNode, source)
			}
			params = append(params, param)
		case "property_promotion_parameter":
			// constructor-promoted property: `public B $b` in the ctor
			// parameter list also declares a property of the same type.
			param := Param{Promoted: true}
			if nameNode := p.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(source)
			}
			if typeNode := p.ChildByFieldName("type"); typeNode != nil {
				param.Type = TypeText(typeNode, source)
			}
			params = append(params, param)
		case "variadic_parameter":
			param := Param{}
			if nameNode := p.ChildByFieldName("name"); nameNode != nil {
				param.Name = nameNode.Content(source)
			}
			if typeNode := p.ChildByFieldName("type"); typeNode != nil {
				param.Type = TypeText(typeNode, source)
			}
			params = append(params, param)
		}
	}
	return params
}

func parsePropertyDeclaration(node *sitter.Node, source []byte) []PropertyDecl {
	isStatic := false
	var declType string

	if modsNode := node.ChildByFieldName("modifiers"); modsNode != nil {
		if containsModifier(modsNode, source, "static") {
			isStatic = true
		}
	}
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		declType = TypeText(typeNode, source)
	}

	var props []PropertyDecl
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() != "property_element" {
			continue
		}
		var name string
		if varNode := c.ChildByFieldName("name"); varNode != nil {
			name = varNode.Content(source)
		} else if c.NamedChildCount() > 0 {
			name = c.NamedChild(0).Content(source)
		}
		props = append(props, PropertyDecl{Name: trimDollar(name), Type: declType, Static: isStatic})
	}
	return props
}

func containsModifier(node *sitter.Node, source []byte, keyword string) bool {
	found := false
	walk(node, func(n *sitter.Node) bool {
		if n.Content(source) == keyword {
			found = true
		}
		return !found
	})
	return found
}

func trimDollar(name string) string {
	if len(name) > 0 && name[0] == '$' {
		return name[1:]
	}
	return name
}
