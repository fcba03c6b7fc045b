package core

import "fmt"

// EntryPoint is the (class, method) pair at which reachability analysis
// begins. File/route metadata is carried for diagnostics and
// for collaborator-driven discovery (see the entrypoint package); the core
// itself only ever needs Class/Method.
type EntryPoint struct {
	Class       string
	Method      string
	File        string
	RoutePath   string // optional, populated by a route-file collaborator
	HTTPMethod  string // optional
	Description string
}

// ID returns the entry point's method identifier.
func (e EntryPoint) ID() MethodID { return NewMethodID(e.Class, e.Method) }

// MethodRef names a method target without committing to a specific class —
// used for a rule's required-callee list and for paired-call obligations,
// where the target is usually a wildcard-free FQCN::method string supplied
// by configuration.
type MethodRef struct {
	Class  string
	Method string
}

// ID returns the method identifier this reference names.
func (r MethodRef) ID() MethodID { return NewMethodID(r.Class, r.Method) }

func (r MethodRef) String() string { return string(r.ID()) }

// PairedCallObligation is the (trigger, completions, message): the
// occurrence of Trigger anywhere in the transitive graph requires that one
// of Completions also occurs.
type PairedCallObligation struct {
	Trigger     MethodRef
	Completions []MethodRef // any-of semantics
	Message     string
}

// Rule is the (name, entry-point source, required callees,
// path-condition tag, paired obligations, message).
type Rule struct {
	Name         string
	EntryClass   string // entry-point source selector: FQCN, "" = any
	EntryMethod  string // "" = any method on EntryClass
	Requires     []MethodRef // any-of semantics, declared order
	PathTag      string      // opaque path-condition label, carried for diagnostics
	Obligations  []PairedCallObligation
	Message      string
}

// Validate implements category-1 configuration error: a
// rule with neither required calls nor obligations is a builder-time
// error, not a runtime analysis failure. A paired obligation declared with
// no completions is equally a configuration error (it could never be
// satisfied).
func (r Rule) Validate() error {
	if len(r.Requires) == 0 && len(r.Obligations) == 0 {
		return &ConfigError{Rule: r.Name, Reason: "rule has neither required calls nor paired obligations"}
	}
	for _, ob := range r.Obligations {
		if len(ob.Completions) == 0 {
			return &ConfigError{Rule: r.Name, Reason: fmt.Sprintf("paired obligation on trigger %q has no completions", ob.Trigger)}
		}
	}
	return nil
}

// ConfigError is the category 1: a configuration error raised at
// rule-construction time. It is fatal to the run (never swallowed).
type ConfigError struct {
	Rule   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid rule %q: %s", e.Rule, e.Reason)
}
