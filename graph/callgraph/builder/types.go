package builder

import "github.com/guardrail-go/guardrail/graph/php"

// MethodDef is a single method signature collected from one class-like body,
// with its name already left as-is (methods are never namespace-qualified)
// and its return type resolved to a FQCN where applicable.
type MethodDef struct {
	Name       string
	ReturnType string
	HasBody    bool
	LineNumber int
}

// PropertyDef is a single declared-or-promoted property, with its type
// already resolved to a FQCN where applicable.
type PropertyDef struct {
	Name string
	Type string
}

// ClassDef is one class_declaration/trait_declaration/interface_declaration,
// fully name-resolved: every raw name php.ClassLike carried has been run
// through a NameResolver bound to the declaring file's namespace and import
// map.
type ClassDef struct {
	FQCN       string
	Kind       php.Kind
	ParentFQCN string // "" if none
	Interfaces []string
	Traits     []string
	Methods    []MethodDef
	Properties []PropertyDef
	LineNumber int
}

// FileDefs is Pass 1's output for a single file: every class-like
// declaration it contains, name-resolved and otherwise independent of every
// other file. Safe to produce in parallel; merge.go folds FileDefs values
// into the shared hierarchy/registry in deterministic file order.
type FileDefs struct {
	Path    string
	Classes []ClassDef
}

// scalarTypes are PHP's builtin type-expression keywords: never namespace
// qualified, never looked up in the import map.
var scalarTypes = map[string]bool{
	"int": true, "float": true, "string": true, "bool": true,
	"array": true, "object": true, "mixed": true, "void": true,
	"never": true, "iterable": true, "callable": true, "false": true,
	"true": true, "null": true,
}

func isScalarType(name string) bool {
	return scalarTypes[name]
}
