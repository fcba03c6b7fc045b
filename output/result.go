package output

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// FindingKind distinguishes the two violation shapes
// produces: a required-callee miss and a paired-call (trigger/completion)
// miss.
type FindingKind string

const (
	// FindingRequired is an AnalysisResult with Found == false: the entry
	// point never reached any of the rule's required targets.
	FindingRequired FindingKind = "required_call"
	// FindingPaired is a PairedCallViolation: the entry point reached the
	// trigger but none of the declared completions.
	FindingPaired FindingKind = "paired_call"
)

// Location pins a Finding to a place in source, resolved from the entry
// point's file (required misses have no witness to localize against) or
// from the trigger witness's final edge (paired misses — the call site
// that should have been followed by a completion).
type Location struct {
	FilePath string
	RelPath  string
	Line     int
	Class    string
	Method   string
}

// SnippetLine is one line of source context around a Location.
type SnippetLine struct {
	Number      int
	Content     string
	IsHighlight bool
}

// CodeSnippet is a window of source lines around a Finding's Location.
type CodeSnippet struct {
	StartLine int
	Lines     []SnippetLine
}

// Finding is the reportable unit every formatter consumes: one violation
// surfaced by evaluator.EvaluateRule (core.RuleResult), flattened and
// carrying everything a human- or machine-readable report needs.
type Finding struct {
	Kind     FindingKind
	RuleName string
	Message  string
	Entry    core.EntryPoint
	Target   core.MethodRef    // required target (FindingRequired) or trigger (FindingPaired)
	Witness  []core.MethodCall // path to the trigger, for FindingPaired; empty for FindingRequired
	Location Location
	Snippet  CodeSnippet
}

// BuildFindings flattens every rule's violations (and, for paired
// obligations, only the violated ones — satisfied obligations produce no
// PairedCallViolation per evaluator.evaluateObligation) into a single
// ordered list, rule order preserved, then entry-point order within a rule.
func BuildFindings(results []core.RuleResult) []*Finding {
	var findings []*Finding
	for _, rr := range results {
		for _, res := range rr.Results {
			if res.Found {
				continue
			}
			findings = append(findings, &Finding{
				Kind:     FindingRequired,
				RuleName: rr.Rule.Name,
				Message:  res.Message,
				Entry:    res.Entry,
				Target:   res.Required,
				Location: Location{FilePath: res.Entry.File, Class: res.Entry.Class, Method: res.Entry.Method},
			})
		}
		for _, pv := range rr.PairedViolations {
			loc := Location{FilePath: pv.Entry.File, Class: pv.Entry.Class, Method: pv.Entry.Method}
			if len(pv.Witness) > 0 {
				last := pv.Witness[len(pv.Witness)-1]
				loc.Line = last.Line
				loc.Class = last.CallerClass
				loc.Method = last.CallerMethod
			}
			findings = append(findings, &Finding{
				Kind:     FindingPaired,
				RuleName: rr.Rule.Name,
				Message:  pv.Obligation.Message,
				Entry:    pv.Entry,
				Target:   pv.Obligation.Trigger,
				Witness:  pv.Witness,
				Location: loc,
			})
		}
	}
	return findings
}

// Summary aggregates a set of Findings for the report header/footer every
// formatter renders (text writeSummary, JSONSummary, SARIF run stats).
type Summary struct {
	TotalFindings    int
	RequiredMisses   int
	PairedViolations int
	RulesExecuted    int
	ByRule           map[string]int
	FilesScanned     int
	Duration         string
}

// BuildSummary tallies findings by kind and by originating rule.
func BuildSummary(findings []*Finding, rulesExecuted int) *Summary {
	s := &Summary{
		TotalFindings: len(findings),
		RulesExecuted: rulesExecuted,
		ByRule:        make(map[string]int),
	}
	for _, f := range findings {
		switch f.Kind {
		case FindingRequired:
			s.RequiredMisses++
		case FindingPaired:
			s.PairedViolations++
		}
		s.ByRule[f.RuleName]++
	}
	return s
}

// Enricher resolves a Finding's Location against the project root and
// attaches a source snippet around the violation line. Grounded on the
// teacher's enricher.go, which performs the equivalent FQN-to-file
// resolution and cached line reads for its own finding shape.
type Enricher struct {
	options   *OutputOptions
	fileCache map[string][]string
}

// NewEnricher creates an enricher for the given project root/options.
func NewEnricher(opts *OutputOptions) *Enricher {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &Enricher{
		options:   opts,
		fileCache: make(map[string][]string),
	}
}

// Enrich resolves RelPath and attaches a code snippet for one finding.
func (e *Enricher) Enrich(f *Finding) {
	if f.Location.FilePath == "" {
		return
	}
	if e.options.ProjectRoot != "" {
		if rel, err := filepath.Rel(e.options.ProjectRoot, f.Location.FilePath); err == nil {
			f.Location.RelPath = rel
		}
	}
	if f.Location.Line <= 0 {
		return
	}
	lines, err := e.readFileLines(f.Location.FilePath)
	if err != nil {
		return
	}
	f.Snippet = e.buildSnippet(f.Location.Line, lines)
}

// EnrichAll enriches every finding in place.
func (e *Enricher) EnrichAll(findings []*Finding) {
	for _, f := range findings {
		e.Enrich(f)
	}
}

func (e *Enricher) buildSnippet(line int, lines []string) CodeSnippet {
	contextLines := e.options.ContextLines
	if contextLines == 0 {
		contextLines = 3
	}

	start := line - contextLines
	if start < 1 {
		start = 1
	}
	end := line + contextLines
	if end > len(lines) {
		end = len(lines)
	}

	snippet := CodeSnippet{StartLine: start}
	for i := start; i <= end; i++ {
		if i > 0 && i <= len(lines) {
			snippet.Lines = append(snippet.Lines, SnippetLine{
				Number:      i,
				Content:     lines[i-1],
				IsHighlight: i == line,
			})
		}
	}
	return snippet
}

func (e *Enricher) readFileLines(path string) ([]string, error) {
	if lines, ok := e.fileCache[path]; ok {
		return lines, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	e.fileCache[path] = lines
	return lines, nil
}
