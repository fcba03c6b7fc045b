// Package patterns recognizes PHP web-framework conventions that guardrail's
// entry-point collaborators (see the entrypoint package) use to discover
// entry points beyond a bare namespace glob: PHP 8 attribute routes
// (#[Route]), Laravel-style Route:: facade calls, and PSR-15 request
// handlers. It also carries a small catalog of recognized third-party
// framework namespaces so diagnostics can name an unresolved call site's
// vendor framework instead of reporting a bare unresolved receiver.
//
// # Route discovery
//
//	matches := patterns.DetectAttributeRoutes(source)
//	for _, m := range matches {
//	    fmt.Printf("%s %s -> %s\n", m.HTTPMethod, m.Path, m.Action)
//	}
//
// # Framework catalog
//
//	if ok, fw := patterns.IsKnownFramework("Illuminate\\Support\\Collection"); ok {
//	    fmt.Println(fw.Name, fw.Category)
//	}
package patterns
