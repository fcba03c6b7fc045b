package entrypoint

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guardrail-go/guardrail/graph/callgraph/builder"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/graph/callgraph/patterns"
)

// symfonyRoutesFile is the shape of a Symfony config/routes.yaml document:
// a map of route name to its definition. Only the fields guardrail needs
// to resolve an entry point are modeled; everything else is ignored by
// yaml.v3 on unmarshal.
type symfonyRoutesFile map[string]symfonyRoute

type symfonyRoute struct {
	Path       string   `yaml:"path"`
	Controller string   `yaml:"controller"` // "App\Controller\OrderController::show"
	Methods    []string `yaml:"methods"`
}

// Routes discovers entry points by the PHP web-framework routing
// conventions spec.md §6 leaves to a concrete collaborator: Symfony-style
// config/routes.yaml files, PHP 8 #[Route] attributes, Laravel's Route::
// facade, and PSR-15 request handlers. Each source is independent; the
// returned slice may contain duplicates if more than one convention names
// the same (class, method). Duplicates are not removed, here or by
// evaluator.EvaluateRule, so each copy is evaluated and reported on its own.
func Routes(result builder.Result) []core.EntryPoint {
	var entries []core.EntryPoint
	entries = append(entries, attributeRouteEntries(result)...)
	entries = append(entries, facadeRouteEntries(result)...)
	entries = append(entries, yamlRouteEntries(result)...)
	entries = append(entries, psr15Entries(result)...)
	return entries
}

// attributeRouteEntries scans every parsed file for PHP 8 #[Route]
// attributes and assigns each annotated method to the first class in the
// same file's Pass 1 definitions that declares a method of that name,
// since the attribute regex only ever sees the method name.
func attributeRouteEntries(result builder.Result) []core.EntryPoint {
	var entries []core.EntryPoint
	for i, sf := range result.Files {
		matches := patterns.DetectAttributeRoutes(sf.Source)
		if len(matches) == 0 {
			continue
		}
		fd := defsForFile(result, i, sf.Path)
		for _, m := range matches {
			class := classOwningMethod(fd, m.Action)
			if class == "" {
				continue
			}
			entries = append(entries, core.EntryPoint{
				Class:      class,
				Method:     m.Action,
				File:       sf.Path,
				RoutePath:  m.Path,
				HTTPMethod: m.HTTPMethod,
			})
		}
	}
	return entries
}

// facadeRouteEntries scans every parsed file for Laravel Route:: facade
// calls and resolves the named controller's bare class name to a FQCN via
// resolveBareClass (classes declared in the same file first, then in every
// other file of result.Defs), falling back to the bare name when no
// declared class has that short name.
func facadeRouteEntries(result builder.Result) []core.EntryPoint {
	var entries []core.EntryPoint
	for i, sf := range result.Files {
		matches := patterns.DetectFacadeRoutes(sf.Source)
		if len(matches) == 0 {
			continue
		}
		fd := defsForFile(result, i, sf.Path)
		for _, m := range matches {
			class := resolveBareClass(result, fd, m.Controller)
			if class == "" {
				continue
			}
			entries = append(entries, core.EntryPoint{
				Class:      class,
				Method:     m.Action,
				File:       sf.Path,
				RoutePath:  m.Path,
				HTTPMethod: m.HTTPMethod,
			})
		}
	}
	return entries
}

// yamlRouteEntries parses every routes.yaml (or routes.yml) path listed in
// result.Defs, resolving "Class::method" controller strings directly —
// Symfony's own convention never shortens them. builder.Build fills
// result.Defs from .php files only, so a Result produced by Build lists no
// routes file and this source contributes no entries for it.
func yamlRouteEntries(result builder.Result) []core.EntryPoint {
	var entries []core.EntryPoint
	for _, path := range routesYAMLCandidates(result) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var doc symfonyRoutesFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			continue
		}
		for _, route := range doc {
			class, method := splitControllerRef(route.Controller)
			if class == "" || method == "" {
				continue
			}
			httpMethod := ""
			if len(route.Methods) > 0 {
				httpMethod = strings.ToUpper(route.Methods[0])
			}
			entries = append(entries, core.EntryPoint{
				Class:      class,
				Method:     method,
				File:       path,
				RoutePath:  route.Path,
				HTTPMethod: httpMethod,
			})
		}
	}
	return entries
}

func routesYAMLCandidates(result builder.Result) []string {
	var paths []string
	for _, fd := range result.Defs {
		base := filepath.Base(fd.Path)
		if base == "routes.yaml" || base == "routes.yml" {
			paths = append(paths, fd.Path)
		}
	}
	return paths
}

// psr15Entries recognizes every class implementing
// Psr\Http\Server\RequestHandlerInterface as an entry point at its
// handle() method, needing no route file at all.
func psr15Entries(result builder.Result) []core.EntryPoint {
	var entries []core.EntryPoint
	for _, class := range patterns.DetectPSR15Handlers(result.Hierarchy) {
		entries = append(entries, core.EntryPoint{Class: class, Method: "handle"})
	}
	return entries
}

func defsForFile(result builder.Result, fileIndex int, path string) *builder.FileDefs {
	if fileIndex < len(result.Defs) && result.Defs[fileIndex].Path == path {
		return &result.Defs[fileIndex]
	}
	for i := range result.Defs {
		if result.Defs[i].Path == path {
			return &result.Defs[i]
		}
	}
	return nil
}

func classOwningMethod(fd *builder.FileDefs, method string) string {
	if fd == nil {
		return ""
	}
	for _, class := range fd.Classes {
		for _, m := range class.Methods {
			if m.Name == method {
				return class.FQCN
			}
		}
	}
	return ""
}

// resolveBareClass matches a bare class name (no namespace) against every
// class declared in the same file first, then against every class in the
// whole result, returning the first FQCN whose last namespace segment
// equals bare. ref that already looks fully qualified (contains "\") is
// returned unchanged.
func resolveBareClass(result builder.Result, fd *builder.FileDefs, bare string) string {
	if bare == "" {
		return ""
	}
	if strings.Contains(bare, "\\") {
		return bare
	}
	if fd != nil {
		if fqcn := findByShortName(fd.Classes, bare); fqcn != "" {
			return fqcn
		}
	}
	for _, other := range result.Defs {
		if fqcn := findByShortName(other.Classes, bare); fqcn != "" {
			return fqcn
		}
	}
	return bare
}

func findByShortName(classes []builder.ClassDef, bare string) string {
	for _, c := range classes {
		if shortName(c.FQCN) == bare {
			return c.FQCN
		}
	}
	return ""
}

func shortName(fqcn string) string {
	if i := strings.LastIndex(fqcn, "\\"); i >= 0 {
		return fqcn[i+1:]
	}
	return fqcn
}

func splitControllerRef(ref string) (class, method string) {
	parts := strings.SplitN(ref, "::", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
