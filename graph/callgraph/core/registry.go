package core

// TypeRegistry implements the mapping
// (class, property-name) -> declared class type, with resolution through
// traits and up the parent chain.
type TypeRegistry struct {
	hierarchy *ClassHierarchy
	types     map[classMethod]string // reuses classMethod as (class, property)
}

// NewTypeRegistry creates a registry bound to a hierarchy. The hierarchy
// reference is required because rule (2) of resolve_property_type needs to
// enumerate the classes that use a trait.
func NewTypeRegistry(hierarchy *ClassHierarchy) *TypeRegistry {
	return &TypeRegistry{
		hierarchy: hierarchy,
		types:     make(map[classMethod]string),
	}
}

// AddPropertyType records a declared property type, including
// constructor-promoted parameters and static-property declarations (both
// just look like an ordinary (class, property) -> type write to this
// table; the distinction only matters to the caller in Pass 1).
func (r *TypeRegistry) AddPropertyType(class, property, declaredType string) {
	if declaredType == "" {
		return
	}
	r.types[classMethod{class, property}] = declaredType
}

// ResolvePropertyType implements resolve_property_type(C, p):
//  1. direct hit on (C, p)
//  2. if C is a trait, search every class that uses that trait (first hit
//     in class-insertion order wins) — this is what lets `$this->p` inside
//     a trait method resolve to the type the *consuming* class declared.
//  3. otherwise recurse into parent(C)
//
// Cycle-safe via a visited set.
func (r *TypeRegistry) ResolvePropertyType(class, property string) (string, bool) {
	return r.resolve(class, property, make(map[string]bool))
}

func (r *TypeRegistry) resolve(class, property string, visited map[string]bool) (string, bool) {
	if class == "" || visited[class] {
		return "", false
	}
	visited[class] = true

	if t, ok := r.types[classMethod{class, property}]; ok {
		return t, true
	}

	if r.hierarchy.IsTrait(class) {
		for _, user := range r.hierarchy.FindClassesUsingTrait(class) {
			if t, ok := r.resolve(user, property, visited); ok {
				return t, true
			}
		}
		return "", false
	}

	if parent, ok := r.hierarchy.Parent(class); ok {
		return r.resolve(parent, property, visited)
	}
	return "", false
}
