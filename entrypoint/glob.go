package entrypoint

import (
	"path/filepath"
	"strings"

	"github.com/guardrail-go/guardrail/graph/callgraph/builder"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// GlobConfig selects entry points out of a built call graph by namespace
// and file-path pattern, the generic fallback spec.md §6 calls "namespace/
// path glob + exclusion patterns over the class hierarchy" — the
// find_classes_implementing-style filtering, but over plain name shape
// instead of an interface.
type GlobConfig struct {
	// ClassPattern is matched against each FQCN with backslashes folded to
	// slashes, so "App\Controller\*" is written as "App/Controller/*" and
	// matched segment-by-segment the way filepath.Match matches paths.
	// "" matches every class.
	ClassPattern string
	// MethodPattern is matched against each method name with
	// filepath.Match. "" matches every method.
	MethodPattern string
	// PathExcludes skips files whose path matches any of these glob
	// patterns, mirroring graph.ScanConfig's exclusion semantics.
	PathExcludes []string
	// MethodsOnlyWithBody skips abstract/interface method declarations,
	// which can never be the start of a reachability walk.
	MethodsOnlyWithBody bool
}

// Glob enumerates every (class, method) pair in result.Defs whose class
// FQCN matches cfg.ClassPattern and whose method name matches
// cfg.MethodPattern, in the same sorted-by-file order result.Defs already
// carries.
func Glob(result builder.Result, cfg GlobConfig) []core.EntryPoint {
	var entries []core.EntryPoint
	for _, fd := range result.Defs {
		if pathExcluded(fd.Path, cfg.PathExcludes) {
			continue
		}
		for _, class := range fd.Classes {
			if !matchClass(cfg.ClassPattern, class.FQCN) {
				continue
			}
			for _, m := range class.Methods {
				if cfg.MethodsOnlyWithBody && !m.HasBody {
					continue
				}
				if !matchName(cfg.MethodPattern, m.Name) {
					continue
				}
				entries = append(entries, core.EntryPoint{
					Class:  class.FQCN,
					Method: m.Name,
					File:   fd.Path,
				})
			}
		}
	}
	return entries
}

func matchClass(pattern, fqcn string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(toSlashFQCN(pattern), toSlashFQCN(fqcn))
	return err == nil && ok
}

func matchName(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}

func toSlashFQCN(fqcn string) string {
	return strings.ReplaceAll(fqcn, "\\", "/")
}

// pathExcluded mirrors graph.ScanConfig's exclusion semantics: a pattern
// with no "/" matches any single path segment; a pattern with "/" is
// matched against the whole path.
func pathExcluded(path string, excludes []string) bool {
	rel := filepath.ToSlash(path)
	for _, pattern := range excludes {
		if !strings.Contains(pattern, "/") {
			for _, part := range strings.Split(rel, "/") {
				if ok, err := filepath.Match(pattern, part); err == nil && ok {
					return true
				}
			}
			continue
		}
		if ok, err := filepath.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
