package php

import sitter "github.com/smacker/go-tree-sitter"

// FindClassLikeNodes returns every class_declaration, trait_declaration, and
// interface_declaration node in the file, at any nesting depth (top-level or
// inside a braced namespace block). It does not descend into method bodies,
// since PHP does not nest class declarations inside methods.
func FindClassLikeNodes(program *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	walk(program, func(n *sitter.Node) bool {
		switch n.Type() {
		case "class_declaration", "trait_declaration", "interface_declaration":
			out = append(out, n)
			return false
		case "method_declaration", "function_definition":
			return false
		}
		return true
	})
	return out
}
