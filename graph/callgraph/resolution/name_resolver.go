package resolution

import "strings"

// NameResolver resolves a short name used at a
// particular point in a file to a fully-qualified class name, given the
// current namespace and the file's import map.
type NameResolver struct {
	Namespace    string
	Imports      map[string]string // short name -> FQCN
	CurrentClass string            // "" outside any class/trait/interface
}

// Resolve implements the five resolution rules in declared order.
func (r NameResolver) Resolve(name string) string {
	if name == "" {
		return name
	}

	// Rule 1: fully qualified.
	if strings.HasPrefix(name, "\\") {
		return strings.TrimPrefix(name, "\\")
	}

	// Rule 2: self/static.
	if name == "self" || name == "static" {
		if r.CurrentClass != "" {
			return r.CurrentClass
		}
		return name
	}

	// Rule 3: first segment is a key in the import map.
	first := name
	rest := ""
	if i := strings.Index(name, "\\"); i >= 0 {
		first = name[:i]
		rest = name[i:]
	}
	if fqcn, ok := r.Imports[first]; ok {
		return fqcn + rest
	}

	// Rule 4: inside a namespace.
	if r.Namespace != "" {
		return r.Namespace + "\\" + name
	}

	// Rule 5: as given.
	return name
}
