package php

import sitter "github.com/smacker/go-tree-sitter"

// FileContext is the namespace + import map in effect for a parsed unit,
// extracted once per file .5 ("Namespaces and import
// maps are pushed on entry and popped on exit, restoring the outer scope").
// PHP files conventionally declare at most one namespace block, so a single
// top-level scan is sufficient; a braced namespace block's import
// declarations are also picked up because namespace_use_declaration can
// appear as either a top-level sibling or a direct child of the namespace
// body.
type FileContext struct {
	Namespace string
	Imports   map[string]string // short name -> FQCN
}

// CollectFileContext walks program's direct children (and, for a braced
// namespace, its body's direct children) collecting the namespace name and
// import map.
func CollectFileContext(program *sitter.Node, source []byte) FileContext {
	ctx := FileContext{Imports: make(map[string]string)}
	if program == nil {
		return ctx
	}

	scan := func(n *sitter.Node) {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "namespace_use_declaration":
				collectUseClauses(child, source, ctx.Imports)
			}
		}
	}

	for i := 0; i < int(program.NamedChildCount()); i++ {
		child := program.NamedChild(i)
		if child.Type() == "namespace_definition" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				ctx.Namespace = nameNode.Content(source)
			}
			if body := child.ChildByFieldName("body"); body != nil {
				scan(body)
			}
		}
	}
	scan(program)

	return ctx
}

func collectUseClauses(decl *sitter.Node, source []byte, imports map[string]string) {
	walk(decl, func(n *sitter.Node) bool {
		if n.Type() == "namespace_use_clause" {
			var fqcn, alias string
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				fqcn = nameNode.Content(source)
			}
			if aliasNode := n.ChildByFieldName("alias"); aliasNode != nil {
				alias = aliasNode.Content(source)
			}
			if fqcn != "" {
				short := alias
				if short == "" {
					short = lastSegment(fqcn)
				}
				imports[short] = fqcn
			}
		}
		return true
	})
}

func lastSegment(name string) string {
	last := name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '\\' {
			last = name[i+1:]
			break
		}
	}
	return last
}
