package core

// ClassHierarchy is the write-once-then-frozen table of: parent
// links, used traits, implemented interfaces, method-definition sites,
// declared return types, and the trait/interface marker sets.
//
// Invariants: a class name appears in at most one of
// trait-set / interface-set / neither; parent links form a forest (cycles,
// if any slip in from malformed input, are tolerated by a visited set in
// the resolvers below, never by rejecting the write).
type ClassHierarchy struct {
	parent     map[string]string
	hasParent  map[string]bool
	traits     map[string][]string
	interfaces map[string][]string

	// methodDefClass maps (class, method) -> the class that lexically owns
	// the method body. Populated directly on the defining class/trait/
	// interface FQCN by Pass 1; resolve_method_class walks outward from a
	// use-site class to find it.
	methodDefClass map[classMethod]string
	returnType     map[classMethod]string

	isTrait     map[string]bool
	isInterface map[string]bool

	// implementors and traitUsers preserve insertion order, required by
	// find_classes_implementing / find_classes_using_trait.
	implementors map[string][]string
	traitUsers   map[string][]string

	// interfaceMethods records the method names declared on an interface
	// (signatures only, no body) in declaration order. The interface
	// linker (Pass 3) walks this to know which methods to fan out to
	// every implementor.
	interfaceMethods map[string][]string

	// interfaceOrder preserves the order interfaces were first marked, so
	// Pass 3 can enumerate "every interface" deterministically.
	interfaceOrder []string

	// traitMethods and traitOrder mirror interfaceMethods/interfaceOrder for
	// traits: the names a trait declares, and the order traits were first
	// marked. A trait's own call-graph edges are emitted against the
	// trait's FQCN (Pass 2 walks its body once, not once per consumer), so
	// the trait linker needs this to wire every consuming class's method
	// through to where the edges actually live.
	traitMethods map[string][]string
	traitOrder   []string
}

type classMethod struct {
	class  string
	method string
}

// NewClassHierarchy returns an empty hierarchy ready for Pass 1 writes.
func NewClassHierarchy() *ClassHierarchy {
	return &ClassHierarchy{
		parent:         make(map[string]string),
		hasParent:      make(map[string]bool),
		traits:         make(map[string][]string),
		interfaces:     make(map[string][]string),
		methodDefClass: make(map[classMethod]string),
		returnType:     make(map[classMethod]string),
		isTrait:        make(map[string]bool),
		isInterface:    make(map[string]bool),
		implementors:     make(map[string][]string),
		traitUsers:       make(map[string][]string),
		interfaceMethods: make(map[string][]string),
		traitMethods:     make(map[string][]string),
	}
}

// --- write-once APIs (Pass 1) ---

// SetParent records C's parent class. An empty parent means "no parent".
func (h *ClassHierarchy) SetParent(class, parent string) {
	if parent == "" {
		return
	}
	h.parent[class] = parent
	h.hasParent[class] = true
}

// SetTraits records the ordered list of traits a class uses.
func (h *ClassHierarchy) SetTraits(class string, traits []string) {
	h.traits[class] = traits
	for _, t := range traits {
		if !containsString(h.traitUsers[t], class) {
			h.traitUsers[t] = append(h.traitUsers[t], class)
		}
	}
}

// SetInterfaces records the ordered list of interfaces a class implements.
func (h *ClassHierarchy) SetInterfaces(class string, ifaces []string) {
	h.interfaces[class] = ifaces
	for _, i := range ifaces {
		if !containsString(h.implementors[i], class) {
			h.implementors[i] = append(h.implementors[i], class)
		}
	}
}

// MarkTrait marks an identifier as a trait.
func (h *ClassHierarchy) MarkTrait(name string) {
	if !h.isTrait[name] {
		h.traitOrder = append(h.traitOrder, name)
	}
	h.isTrait[name] = true
}

// AllTraits returns every trait name marked so far, in first-seen order.
func (h *ClassHierarchy) AllTraits() []string { return h.traitOrder }

// AddTraitMethod records a method name declared on a trait.
func (h *ClassHierarchy) AddTraitMethod(trait, method string) {
	if !containsString(h.traitMethods[trait], method) {
		h.traitMethods[trait] = append(h.traitMethods[trait], method)
	}
}

// TraitMethods returns the method names declared on a trait, in declaration
// order.
func (h *ClassHierarchy) TraitMethods(trait string) []string {
	return h.traitMethods[trait]
}

// MarkInterface marks an identifier as an interface.
func (h *ClassHierarchy) MarkInterface(name string) {
	if !h.isInterface[name] {
		h.interfaceOrder = append(h.interfaceOrder, name)
	}
	h.isInterface[name] = true
}

// AllInterfaces returns every interface name marked so far, in first-seen
// order.
func (h *ClassHierarchy) AllInterfaces() []string { return h.interfaceOrder }

// AddInterfaceMethod records a method signature declared on an interface.
func (h *ClassHierarchy) AddInterfaceMethod(iface, method string) {
	if !containsString(h.interfaceMethods[iface], method) {
		h.interfaceMethods[iface] = append(h.interfaceMethods[iface], method)
	}
}

// InterfaceMethods returns the method names declared on an interface, in
// declaration order.
func (h *ClassHierarchy) InterfaceMethods(iface string) []string {
	return h.interfaceMethods[iface]
}

// AddMethodDef records that method is defined (has a body) on class.
func (h *ClassHierarchy) AddMethodDef(class, method string) {
	h.methodDefClass[classMethod{class, method}] = class
}

// AddReturnType records a method's declared return type on class.
func (h *ClassHierarchy) AddReturnType(class, method, returnType string) {
	if returnType == "" {
		return
	}
	h.returnType[classMethod{class, method}] = returnType
}

// --- read APIs (Pass 2 + evaluator) ---

// Parent returns C's parent class and whether one is recorded.
func (h *ClassHierarchy) Parent(class string) (string, bool) {
	p, ok := h.hasParent[class]
	if !ok || !p {
		return "", false
	}
	return h.parent[class], true
}

// Traits returns the ordered list of traits used by class.
func (h *ClassHierarchy) Traits(class string) []string { return h.traits[class] }

// Interfaces returns the ordered list of interfaces implemented by class.
func (h *ClassHierarchy) Interfaces(class string) []string { return h.interfaces[class] }

// IsTrait reports whether name was marked as a trait.
func (h *ClassHierarchy) IsTrait(name string) bool { return h.isTrait[name] }

// IsInterface reports whether name was marked as an interface.
func (h *ClassHierarchy) IsInterface(name string) bool { return h.isInterface[name] }

// HasMethodDef reports whether class itself (not an ancestor) defines method.
func (h *ClassHierarchy) HasMethodDef(class, method string) bool {
	_, ok := h.methodDefClass[classMethod{class, method}]
	return ok
}

// ResolveMethodClass implements resolve_method_class(C, m):
// search order is (1) C itself, (2) each trait used by C in declaration
// order, (3) recursively parent(C). Cycle-safe via a visited set. Returns
// ("", false) if the method is nowhere in the chain.
func (h *ClassHierarchy) ResolveMethodClass(class, method string) (string, bool) {
	return h.resolveMethodClass(class, method, make(map[string]bool))
}

func (h *ClassHierarchy) resolveMethodClass(class, method string, visited map[string]bool) (string, bool) {
	if class == "" || visited[class] {
		return "", false
	}
	visited[class] = true

	if h.HasMethodDef(class, method) {
		return class, true
	}
	for _, t := range h.traits[class] {
		if owner, ok := h.resolveMethodClass(t, method, visited); ok {
			return owner, true
		}
	}
	if parent, ok := h.Parent(class); ok {
		return h.resolveMethodClass(parent, method, visited)
	}
	return "", false
}

// ResolveMethodReturnType mirrors ResolveMethodClass's search order over the
// declared-return-type table.
func (h *ClassHierarchy) ResolveMethodReturnType(class, method string) (string, bool) {
	return h.resolveMethodReturnType(class, method, make(map[string]bool))
}

func (h *ClassHierarchy) resolveMethodReturnType(class, method string, visited map[string]bool) (string, bool) {
	if class == "" || visited[class] {
		return "", false
	}
	visited[class] = true

	if rt, ok := h.returnType[classMethod{class, method}]; ok {
		return rt, true
	}
	for _, t := range h.traits[class] {
		if rt, ok := h.resolveMethodReturnType(t, method, visited); ok {
			return rt, true
		}
	}
	if parent, ok := h.Parent(class); ok {
		return h.resolveMethodReturnType(parent, method, visited)
	}
	return "", false
}

// ResolveMethodClassThroughParent resolves `parent::m()` calls: parent
// resolution walks strictly through the parent
// chain and deliberately bypasses the current class's own traits.
func (h *ClassHierarchy) ResolveMethodClassThroughParent(fromClass, method string) (string, bool) {
	parent, ok := h.Parent(fromClass)
	if !ok {
		return "", false
	}
	return h.ResolveMethodClass(parent, method)
}

// FindClassesImplementing returns every class recorded as implementing
// interface I, in insertion order.
func (h *ClassHierarchy) FindClassesImplementing(iface string) []string {
	return h.implementors[iface]
}

// FindClassesUsingTrait returns every class recorded as using trait T, in
// insertion order.
func (h *ClassHierarchy) FindClassesUsingTrait(trait string) []string {
	return h.traitUsers[trait]
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
