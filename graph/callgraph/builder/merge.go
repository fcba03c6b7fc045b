package builder

import (
	"sort"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/graph/php"
)

// MergeDefinitions folds every file's Pass 1 output into one shared
// ClassHierarchy and TypeRegistry, in sorted-by-path order, so that the
// insertion-ordered reads those tables expose (FindClassesImplementing,
// FindClassesUsingTrait, InterfaceMethods) never depend on the order
// CollectDefinitions happened to finish in across goroutines.
func MergeDefinitions(defs []FileDefs) (*core.ClassHierarchy, *core.TypeRegistry) {
	ordered := make([]FileDefs, len(defs))
	copy(ordered, defs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Path < ordered[j].Path })

	hierarchy := core.NewClassHierarchy()
	registry := core.NewTypeRegistry(hierarchy)

	for _, fd := range ordered {
		for _, cd := range fd.Classes {
			switch cd.Kind {
			case php.KindTrait:
				hierarchy.MarkTrait(cd.FQCN)
			case php.KindInterface:
				hierarchy.MarkInterface(cd.FQCN)
			}

			hierarchy.SetParent(cd.FQCN, cd.ParentFQCN)
			hierarchy.SetTraits(cd.FQCN, cd.Traits)
			hierarchy.SetInterfaces(cd.FQCN, cd.Interfaces)

			for _, m := range cd.Methods {
				switch cd.Kind {
				case php.KindInterface:
					hierarchy.AddInterfaceMethod(cd.FQCN, m.Name)
				case php.KindTrait:
					hierarchy.AddTraitMethod(cd.FQCN, m.Name)
					if m.HasBody {
						hierarchy.AddMethodDef(cd.FQCN, m.Name)
					}
				default:
					if m.HasBody {
						hierarchy.AddMethodDef(cd.FQCN, m.Name)
					}
				}
				hierarchy.AddReturnType(cd.FQCN, m.Name, m.ReturnType)
			}
			for _, p := range cd.Properties {
				registry.AddPropertyType(cd.FQCN, p.Name, p.Type)
			}
		}
	}

	return hierarchy, registry
}
