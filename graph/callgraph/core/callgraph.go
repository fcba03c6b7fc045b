package core

// MethodCall is a single call-graph edge. Immutable once
// emitted by the call analyzer (Pass 2) or synthesized by the interface
// linker (Pass 3, where Line is always 0).
type MethodCall struct {
	CallerClass  string // optional ("" for top-level scripts, though those never reach the graph)
	CallerMethod string
	CalleeClass  string // "" when the receiver/callee could not be resolved
	CalleeMethod string
	Line         int // 0 for synthesized edges
	Static       bool
	Receiver     string // diagnostic label, e.g. "$this->repo" or "parent"
}

// Caller returns the edge's caller identifier.
func (m MethodCall) Caller() MethodID { return NewMethodID(m.CallerClass, m.CallerMethod) }

// Callee returns the edge's callee identifier. Resolved reports whether the
// callee class is known; an edge with Resolved()==false still lives in the
// graph for diagnostics
// but never contributes to reachability.
func (m MethodCall) Callee() MethodID { return NewMethodID(m.CalleeClass, m.CalleeMethod) }

// Resolved reports whether the callee class was determined.
func (m MethodCall) Resolved() bool { return m.CalleeClass != "" }

// CallGraph is the directed multigraph of: two multimaps
// keyed by method identifier, insertion-order preserving. It is built once
// per run and frozen before the evaluator queries it.
type CallGraph struct {
	outgoing map[MethodID][]MethodCall
	incoming map[MethodID][]MethodCall
	// seen dedupes synthetic interface edges by (caller, callee, line,
	// static).
	seen map[edgeKey]bool
}

type edgeKey struct {
	caller MethodID
	callee MethodID
	line   int
	static bool
}

// NewCallGraph returns an empty, writable call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{
		outgoing: make(map[MethodID][]MethodCall),
		incoming: make(map[MethodID][]MethodCall),
		seen:     make(map[edgeKey]bool),
	}
}

// Add appends an edge to the outgoing bucket keyed by the caller, and, when
// the callee class is known, to the incoming bucket keyed by the callee
//. Duplicate edges (same caller, callee,
// line, static-flag) are deduped so repeated interface-linker passes stay
// idempotent.
func (g *CallGraph) Add(call MethodCall) {
	key := edgeKey{call.Caller(), call.Callee(), call.Line, call.Static}
	if g.seen[key] {
		return
	}
	g.seen[key] = true

	g.outgoing[call.Caller()] = append(g.outgoing[call.Caller()], call)
	if call.Resolved() {
		g.incoming[call.Callee()] = append(g.incoming[call.Callee()], call)
	}
}

// Outgoing returns every edge whose caller is id, in insertion order.
func (g *CallGraph) Outgoing(id MethodID) []MethodCall { return g.outgoing[id] }

// Incoming returns every edge whose callee is id, in insertion order.
func (g *CallGraph) Incoming(id MethodID) []MethodCall { return g.incoming[id] }

// HasPath implements has_path(from, to): depth-first,
// visited-set bounded, cycle-safe.
func (g *CallGraph) HasPath(from, to MethodID) bool {
	if from == to {
		return true
	}
	visited := make(map[MethodID]bool)
	return g.hasPath(from, to, visited)
}

func (g *CallGraph) hasPath(from, to MethodID, visited map[MethodID]bool) bool {
	if visited[from] {
		return false
	}
	visited[from] = true

	for _, edge := range g.outgoing[from] {
		if !edge.Resolved() {
			continue
		}
		callee := edge.Callee()
		if callee == to {
			return true
		}
		if g.hasPath(callee, to, visited) {
			return true
		}
	}
	return false
}

// FindPath implements find_path(from, to): returns the first
// path discovered, edges ordered parent-before-child, ties broken by
// edge-insertion order. Returns (nil, false) when no path exists.
func (g *CallGraph) FindPath(from, to MethodID) ([]MethodCall, bool) {
	visited := make(map[MethodID]bool)
	path, ok := g.findPath(from, to, visited)
	if !ok {
		return nil, false
	}
	return path, true
}

func (g *CallGraph) findPath(from, to MethodID, visited map[MethodID]bool) ([]MethodCall, bool) {
	if visited[from] {
		return nil, false
	}
	visited[from] = true

	for _, edge := range g.outgoing[from] {
		if !edge.Resolved() {
			continue
		}
		callee := edge.Callee()
		if callee == to {
			return []MethodCall{edge}, true
		}
		if rest, ok := g.findPath(callee, to, visited); ok {
			return append([]MethodCall{edge}, rest...), true
		}
	}
	return nil, false
}
