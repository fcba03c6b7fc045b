package patterns

import "strings"

// FrameworkDefinition represents a known external PHP framework or library.
// Calls into a recognized framework namespace have no source body to
// analyze (the vendor code is never part of the scanned file set), so the
// call graph can never walk into them; recording the catalog lets
// entry-point discovery and diagnostics name what a call site is actually
// reaching instead of reporting a bare unresolved receiver.
type FrameworkDefinition struct {
	Name        string   // Display name (e.g., "Laravel")
	Prefixes    []string // FQCN prefixes to match (e.g., "Illuminate\\")
	Description string
	Category    string // "web", "orm", "http", "testing", "logging"
}

// builtinFrameworks lists the PHP frameworks and libraries this analyzer
// recognizes by namespace prefix. Coverage favors the frameworks that
// define entry points (controllers dispatched by a router) since that is
// where guardrail's entry-point collaborators need real signal.
var builtinFrameworks = []FrameworkDefinition{
	{
		Name:        "Laravel",
		Prefixes:    []string{"Illuminate\\"},
		Description: "Laravel web framework",
		Category:    "web",
	},
	{
		Name:        "Symfony",
		Prefixes:    []string{"Symfony\\"},
		Description: "Symfony web framework",
		Category:    "web",
	},
	{
		Name:        "Slim",
		Prefixes:    []string{"Slim\\"},
		Description: "Slim micro-framework",
		Category:    "web",
	},
	{
		Name:        "Laminas",
		Prefixes:    []string{"Laminas\\", "Zend\\"},
		Description: "Laminas (formerly Zend Framework)",
		Category:    "web",
	},
	{
		Name:        "PSR-7/PSR-15 HTTP messages",
		Prefixes:    []string{"Psr\\Http\\"},
		Description: "HTTP message and server request handler interfaces",
		Category:    "http",
	},
	{
		Name:        "Doctrine ORM",
		Prefixes:    []string{"Doctrine\\ORM\\", "Doctrine\\DBAL\\"},
		Description: "Doctrine object-relational mapper",
		Category:    "orm",
	},
	{
		Name:        "Eloquent",
		Prefixes:    []string{"Illuminate\\Database\\Eloquent\\"},
		Description: "Laravel's Eloquent ORM",
		Category:    "orm",
	},
	{
		Name:        "Guzzle",
		Prefixes:    []string{"GuzzleHttp\\"},
		Description: "Guzzle HTTP client",
		Category:    "http",
	},
	{
		Name:        "Monolog",
		Prefixes:    []string{"Monolog\\"},
		Description: "Monolog logging library",
		Category:    "logging",
	},
	{
		Name:        "PHPUnit",
		Prefixes:    []string{"PHPUnit\\"},
		Description: "PHPUnit testing framework",
		Category:    "testing",
	},
}

// LoadFrameworks returns the recognized framework catalog.
func LoadFrameworks() []FrameworkDefinition {
	return builtinFrameworks
}

// IsKnownFramework reports whether fqcn belongs to a recognized framework
// namespace and, if so, which one.
func IsKnownFramework(fqcn string) (bool, *FrameworkDefinition) {
	for i := range builtinFrameworks {
		fw := &builtinFrameworks[i]
		for _, prefix := range fw.Prefixes {
			if fqcn == strings.TrimSuffix(prefix, "\\") || strings.HasPrefix(fqcn, prefix) {
				return true, fw
			}
		}
	}
	return false, nil
}

// GetFrameworkCategory returns fqcn's framework category, or "" if unknown.
func GetFrameworkCategory(fqcn string) string {
	if ok, fw := IsKnownFramework(fqcn); ok {
		return fw.Category
	}
	return ""
}

// GetFrameworkName returns fqcn's framework display name, or "" if unknown.
func GetFrameworkName(fqcn string) string {
	if ok, fw := IsKnownFramework(fqcn); ok {
		return fw.Name
	}
	return ""
}
