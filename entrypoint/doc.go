// Package entrypoint supplies guardrail's two concrete entry-point
// collaborators, the piece spec.md §1 and §6 deliberately leave external to
// the core reachability engine:
//
//   - Glob selects (class, method) pairs out of an already-built
//     graph/callgraph/builder.Result by namespace/path pattern, the
//     generic fallback that works without any framework convention at all.
//   - Routes recognizes PHP web-framework routing conventions (Symfony
//     YAML route files, PHP 8 #[Route] attributes, Laravel's Route::
//     facade, PSR-15 request handlers) and turns each into a
//     core.EntryPoint carrying RoutePath/HTTPMethod.
//
// Both collaborators return []core.EntryPoint; callers typically combine
// the two (route-derived entries for diagnostics-friendly RoutePath/
// HTTPMethod, glob-derived entries to catch anything routing missed).
package entrypoint
