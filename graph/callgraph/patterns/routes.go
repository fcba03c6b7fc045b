package patterns

import (
	"regexp"
	"strings"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// RouteMatch is one web-framework route binding discovered in source: the
// concrete instance of spec.md §6's "concrete route-file parser for
// web-framework entry discovery", the piece the core explicitly leaves to a
// collaborator. entrypoint.Routes turns these into core.EntryPoint values.
type RouteMatch struct {
	HTTPMethod string // "GET", "POST", ... ; "" when the annotation omitted it
	Path       string
	Controller string // class name as written in a facade route; "" for attribute routes
	Action     string // method name
	Line       int    // 1-based line of the match in the scanned text
}

// attributeRoutePattern matches a PHP 8 Symfony-style #[Route(...)] or
// #[Get(...)]/#[Post(...)] attribute followed, a few lines later, by the
// method declaration it annotates. Deliberately a line-oriented regex scan
// rather than a tree-sitter field walk: attribute_group placement varies
// across grammar versions. The legacy PHP config loader likewise avoids a
// full parse: it locates the return statement with a regex and reads the
// array literal with a small hand-written parser.
var attributeRoutePattern = regexp.MustCompile(
	`(?s)#\[\s*(?:Route|Get|Post|Put|Patch|Delete)\s*\(\s*(?:path\s*:\s*)?['"]([^'"]*)['"]` +
		`(?:[^)]*?methods\s*:\s*\[\s*['"]([A-Za-z]+)['"])?[^)]*\)\s*\]` +
		`\s*(?:public|protected|private)?\s*function\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`,
)

// facadeRoutePattern matches Laravel-style `Route::get('/path', [Ctrl::class, 'action'])`
// or the legacy `Route::get('/path', 'Ctrl@action')` string-callable form.
var facadeRoutePattern = regexp.MustCompile(
	`Route::(get|post|put|patch|delete|any|match)\s*\(\s*['"]([^'"]*)['"]\s*,\s*` +
		`(?:\[\s*([A-Za-z0-9_\\]+)\s*::class\s*,\s*['"]([A-Za-z_][A-Za-z0-9_]*)['"]\s*\]` +
		`|['"]([A-Za-z0-9_\\]+)@([A-Za-z_][A-Za-z0-9_]*)['"])`,
)

// DetectAttributeRoutes scans source for PHP 8 attribute-based routes.
// Controller is left empty: the regex only sees the annotated method's
// name, and entrypoint.Routes assigns it to a class from the same file's
// Pass 1 definitions, since a route file is always also a member of the
// scanned file set.
func DetectAttributeRoutes(source []byte) []RouteMatch {
	var matches []RouteMatch
	text := string(source)
	for _, m := range attributeRoutePattern.FindAllStringSubmatchIndex(text, -1) {
		path := submatch(text, m, 1)
		method := strings.ToUpper(submatch(text, m, 2))
		action := submatch(text, m, 3)
		matches = append(matches, RouteMatch{
			HTTPMethod: method,
			Path:       path,
			Action:     action,
			Line:       1 + strings.Count(text[:m[0]], "\n"),
		})
	}
	return matches
}

// DetectFacadeRoutes scans source (typically a routes.php file) for
// Laravel-style Route:: facade registrations, resolving the controller and
// action straight out of the call site.
func DetectFacadeRoutes(source []byte) []RouteMatch {
	var matches []RouteMatch
	text := string(source)
	for _, m := range facadeRoutePattern.FindAllStringSubmatchIndex(text, -1) {
		controller := submatch(text, m, 3)
		action := submatch(text, m, 4)
		if controller == "" {
			controller = submatch(text, m, 5)
			action = submatch(text, m, 6)
		}
		matches = append(matches, RouteMatch{
			HTTPMethod: strings.ToUpper(submatch(text, m, 1)),
			Path:       submatch(text, m, 2),
			Controller: controller,
			Action:     action,
			Line:       1 + strings.Count(text[:m[0]], "\n"),
		})
	}
	return matches
}

// DetectPSR15Handlers returns every class in hierarchy that implements
// Psr\Http\Server\RequestHandlerInterface and itself defines handle() —
// the PSR-15 convention for a single-action request handler, recognized as
// an entry point without needing any route file at all.
func DetectPSR15Handlers(hierarchy *core.ClassHierarchy) []string {
	const iface = "Psr\\Http\\Server\\RequestHandlerInterface"
	var handlers []string
	for _, class := range hierarchy.FindClassesImplementing(iface) {
		if hierarchy.HasMethodDef(class, "handle") {
			handlers = append(handlers, class)
		}
	}
	return handlers
}

func submatch(text string, idx []int, group int) string {
	lo, hi := idx[2*group], idx[2*group+1]
	if lo < 0 || hi < 0 {
		return ""
	}
	return text[lo:hi]
}
