// Package graph discovers and parses PHP source files into tree-sitter ASTs.
//
// It is the parser frontend of: given a root path and a scan
// configuration it produces an ordered, deterministic sequence of parsed
// source units. Everything downstream (definition collection, call
// analysis) consumes the SourceFile values this package produces.
package graph

import sitter "github.com/smacker/go-tree-sitter"

// SourceFile is a single parsed PHP compilation unit.
type SourceFile struct {
	// Path is the absolute, resolved path used for deterministic ordering.
	Path string
	// Source is the raw UTF-8 file content.
	Source []byte
	// Tree is the tree-sitter parse tree rooted at program.
	Tree *sitter.Tree
}

// RootNode returns the parse tree's root node for convenience.
func (f *SourceFile) RootNode() *sitter.Node {
	if f.Tree == nil {
		return nil
	}
	return f.Tree.RootNode()
}

// ScanConfig controls which files DiscoverFiles considers.
type ScanConfig struct {
	// Paths restricts discovery to these root-relative sub-paths. Empty means
	// the whole root.
	Paths []string
	// Excludes is a list of glob patterns (matched against the path relative
	// to root) to skip, e.g. "vendor/*", "*/tests/*".
	Excludes []string
}

// excluded reports whether a root-relative path should be excluded.
func (c ScanConfig) excluded(relPath string) bool {
	for _, pattern := range c.Excludes {
		if ok, _ := matchGlob(pattern, relPath); ok {
			return true
		}
	}
	return false
}
