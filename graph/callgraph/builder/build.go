package builder

import (
	"sync"

	"github.com/guardrail-go/guardrail/graph"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// Result is the fully built call graph plus the tables that produced it —
// evaluator.EvaluateRule needs the CallGraph; explain-style tooling wants the
// hierarchy to answer "why" a resolution happened.
type Result struct {
	CallGraph *core.CallGraph
	Hierarchy *core.ClassHierarchy
	Registry  *core.TypeRegistry
	Files     []*graph.SourceFile
	Skipped   []string
	// Defs is Pass 1's per-file output, in the same sorted-by-path order as
	// Files. Entry-point collaborators (see the entrypoint package) use it
	// to enumerate which classes and methods a file declares without
	// re-parsing; the core pipeline itself never reads it back.
	Defs []FileDefs
}

// Build runs the full three-pass pipeline over every PHP file discovered
// under root: Pass 1 (parallel, per file), merge, Pass 2
// (parallel, per file, against the frozen tables), then a single Pass 3
// sweep. File-level parallelism never affects the result, since every edge
// is folded into the CallGraph in sorted-by-path order afterward.
func Build(root string, cfg graph.ScanConfig) Result {
	files, skipped := graph.DiscoverFiles(root, cfg)

	defs := mapFiles(files, CollectDefinitions)
	hierarchy, registry := MergeDefinitions(defs)

	edgeSets := mapFiles(files, func(sf *graph.SourceFile) []core.MethodCall {
		return AnalyzeFile(sf, hierarchy, registry)
	})

	cg := core.NewCallGraph()
	for _, edges := range edgeSets {
		for _, e := range edges {
			cg.Add(e)
		}
	}
	LinkTraits(hierarchy, cg)
	LinkInterfaces(hierarchy, cg)

	return Result{
		CallGraph: cg,
		Hierarchy: hierarchy,
		Registry:  registry,
		Files:     files,
		Skipped:   skipped,
		Defs:      defs,
	}
}

// mapFiles runs fn over every file concurrently and returns the results in
// the same order as files — the order DiscoverFiles already sorted by path.
func mapFiles[T any](files []*graph.SourceFile, fn func(*graph.SourceFile) T) []T {
	out := make([]T, len(files))
	var wg sync.WaitGroup
	for i, sf := range files {
		wg.Add(1)
		go func(i int, sf *graph.SourceFile) {
			defer wg.Done()
			out[i] = fn(sf)
		}(i, sf)
	}
	wg.Wait()
	return out
}
