package builder

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/graph/callgraph/resolution"
	"github.com/guardrail-go/guardrail/graph/php"
)

// AnalyzeFile runs Pass 2 over a single parsed file against the frozen
// hierarchy/registry Pass 1 + MergeDefinitions produced: for every method
// body, bind parameter types into a fresh MethodScope, walk the body
// tracking local assignments and call sites, and emit one core.MethodCall
// per call site. Edges are returned in source order
// (declaration order of classes/methods in the file, call order within a
// method body) — Build folds per-file results into the CallGraph in
// sorted-path order so the whole pipeline stays deterministic.
func AnalyzeFile(sf *graph.SourceFile, hierarchy *core.ClassHierarchy, registry *core.TypeRegistry) []core.MethodCall {
	fileCtx := php.CollectFileContext(sf.RootNode(), sf.Source)
	var edges []core.MethodCall

	for _, node := range php.FindClassLikeNodes(sf.RootNode()) {
		decl := php.ParseClassLike(node, sf.Source)
		if decl == nil || decl.Name == "" || decl.Kind == php.KindInterface {
			continue
		}
		fqcn := qualify(fileCtx.Namespace, decl.Name)
		resolver := resolution.NameResolver{
			Namespace:    fileCtx.Namespace,
			Imports:      fileCtx.Imports,
			CurrentClass: fqcn,
		}

		methodNodes := findMethodBodies(node, sf.Source)
		for _, methodDecl := range decl.Methods {
			if !methodDecl.HasBody {
				continue
			}
			bodyNode := methodNodes[methodDecl.Name]
			if bodyNode == nil {
				continue
			}

			scope := core.NewMethodScope()
			for _, p := range methodDecl.Params {
				scope.Bind(p.Name, resolveTypeExpr(resolver, p.Type))
			}

			ctx := &resolution.Context{
				Hierarchy:    hierarchy,
				Registry:     registry,
				Scope:        scope,
				Resolver:     resolver,
				Source:       sf.Source,
				CurrentClass: fqcn,
			}

			php.WalkMethodBody(bodyNode, sf.Source,
				func(cs php.CallSite) {
					calleeClass, _ := ctx.ResolveCallTarget(cs)
					edges = append(edges, core.MethodCall{
						CallerClass:  fqcn,
						CallerMethod: methodDecl.Name,
						CalleeClass:  calleeClass,
						CalleeMethod: cs.MethodName,
						Line:         cs.LineNumber,
						Static:       cs.Kind == php.CallStatic,
						Receiver:     receiverLabel(cs, sf.Source),
					})
				},
				func(a php.Assignment) {
					t, _ := ctx.ExpressionType(a.Value)
					scope.Bind(a.VarName, t)
				},
			)
		}
	}

	return edges
}

// findMethodBodies maps method name -> body node for one class-like node,
// so Pass 2 doesn't re-walk the declaration header to re-find each body.
func findMethodBodies(classNode *sitter.Node, source []byte) map[string]*sitter.Node {
	out := make(map[string]*sitter.Node)
	body := classNode.ChildByFieldName("body")
	if body == nil {
		return out
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		if member.Type() != "method_declaration" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		bodyNode := member.ChildByFieldName("body")
		if nameNode == nil || bodyNode == nil {
			continue
		}
		out[nameNode.Content(source)] = bodyNode
	}
	return out
}

func receiverLabel(cs php.CallSite, source []byte) string {
	switch cs.Kind {
	case php.CallStatic:
		if cs.Scope != nil {
			return cs.Scope.Content(source)
		}
	case php.CallInstance, php.CallInvocable:
		if cs.Receiver != nil {
			return cs.Receiver.Content(source)
		}
	}
	return ""
}
