// Package builder runs the three-pass construction pipeline over a set of
// parsed PHP files: Pass 1 collects class-hierarchy
// and property-type definitions, Pass 2 walks method bodies to emit
// call-graph edges, Pass 3 synthesizes interface-to-implementor edges.
//
// Grounded on the teacher's graph/callgraph/builder two-pass pipeline
// (definition collection, then call-site analysis over the frozen
// definitions) and its deterministic merge-by-sorted-path discipline.
package builder
