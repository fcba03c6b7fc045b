// Package resolution implements name resolver and §4.6's
// expression-type table. Grounded on the teacher's
// graph/callgraph/resolution/imports.go (namespace + import-map
// resolution) and its resolution/strategies package (a dispatch table of
// independent resolution strategies for attribute access, chained calls,
// self-reference, and instance calls) — the same per-expression-form table
// shape, just retargeted from Python attribute
// chains to PHP's self::/$this->/?->  vocabulary.
package resolution
