package builder

import (
	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/graph/callgraph/resolution"
	"github.com/guardrail-go/guardrail/graph/php"
)

// CollectDefinitions runs Pass 1 over a single parsed file: find every
// class-like declaration, name-resolve its parent/interfaces/traits and
// every method/property type, and return the result as a value independent
// of every other file.
func CollectDefinitions(sf *graph.SourceFile) FileDefs {
	fileCtx := php.CollectFileContext(sf.RootNode(), sf.Source)

	defs := FileDefs{Path: sf.Path}
	for _, node := range php.FindClassLikeNodes(sf.RootNode()) {
		decl := php.ParseClassLike(node, sf.Source)
		if decl == nil || decl.Name == "" {
			continue
		}

		fqcn := qualify(fileCtx.Namespace, decl.Name)
		resolver := resolution.NameResolver{
			Namespace:    fileCtx.Namespace,
			Imports:      fileCtx.Imports,
			CurrentClass: fqcn,
		}

		def := ClassDef{FQCN: fqcn, Kind: decl.Kind, LineNumber: decl.LineNumber}
		if decl.ParentRaw != "" {
			def.ParentFQCN = resolver.Resolve(decl.ParentRaw)
		}
		for _, raw := range decl.Interfaces {
			def.Interfaces = append(def.Interfaces, resolver.Resolve(raw))
		}
		for _, raw := range decl.Traits {
			def.Traits = append(def.Traits, resolver.Resolve(raw))
		}

		for _, m := range decl.Methods {
			returnType := resolveTypeExpr(resolver, m.ReturnType)
			def.Methods = append(def.Methods, MethodDef{
				Name:       m.Name,
				ReturnType: returnType,
				HasBody:    m.HasBody,
				LineNumber: m.LineNumber,
			})
			for _, p := range m.Params {
				if !p.Promoted {
					continue
				}
				def.Properties = append(def.Properties, PropertyDef{
					Name: p.Name,
					Type: resolveTypeExpr(resolver, p.Type),
				})
			}
		}
		for _, p := range decl.Properties {
			def.Properties = append(def.Properties, PropertyDef{
				Name: p.Name,
				Type: resolveTypeExpr(resolver, p.Type),
			})
		}

		defs.Classes = append(defs.Classes, def)
	}

	return defs
}

func resolveTypeExpr(resolver resolution.NameResolver, typeExpr string) string {
	if typeExpr == "" || isScalarType(typeExpr) {
		return ""
	}
	return resolver.Resolve(typeExpr)
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "\\" + name
}
