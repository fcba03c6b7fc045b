package output

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JSONFormatter formats findings as JSON.
type JSONFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(opts *OutputOptions) *JSONFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &JSONFormatter{
		writer:  os.Stdout,
		options: opts,
	}
}

// NewJSONFormatterWithWriter creates a formatter with custom writer (for testing).
func NewJSONFormatterWithWriter(w io.Writer, opts *OutputOptions) *JSONFormatter {
	jf := NewJSONFormatter(opts)
	jf.writer = w
	return jf
}

// JSONOutput represents the complete JSON output structure.
type JSONOutput struct {
	Tool    JSONTool     `json:"tool"`
	Scan    JSONScan     `json:"scan"`
	Results []JSONResult `json:"results"`
	Summary JSONSummary  `json:"summary"`
	Errors  []string     `json:"errors,omitempty"`
}

// JSONTool contains tool metadata.
type JSONTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// JSONScan contains scan metadata.
type JSONScan struct {
	Target        string  `json:"target"`
	Timestamp     string  `json:"timestamp"`
	Duration      float64 `json:"duration"`
	RulesExecuted int     `json:"rules_executed"` //nolint:tagliatelle
}

// JSONResult represents a single finding.
type JSONResult struct {
	Kind     string       `json:"kind"`
	RuleName string       `json:"rule_name"` //nolint:tagliatelle
	Message  string       `json:"message,omitempty"`
	Entry    JSONEntry    `json:"entry"`
	Target   string       `json:"target"`
	Location JSONLocation `json:"location"`
	Witness  []JSONEdge   `json:"witness,omitempty"`
}

// JSONEntry identifies the entry point a finding belongs to.
type JSONEntry struct {
	Class      string `json:"class"`
	Method     string `json:"method"`
	RoutePath  string `json:"route_path,omitempty"`  //nolint:tagliatelle
	HTTPMethod string `json:"http_method,omitempty"` //nolint:tagliatelle
}

// JSONLocation contains finding location.
type JSONLocation struct {
	File    string       `json:"file"`
	Line    int          `json:"line,omitempty"`
	Snippet *JSONSnippet `json:"snippet,omitempty"`
}

// JSONSnippet contains code context.
type JSONSnippet struct {
	StartLine int      `json:"start_line"` //nolint:tagliatelle
	EndLine   int      `json:"end_line"`   //nolint:tagliatelle
	Lines     []string `json:"lines"`
}

// JSONEdge is one call-graph edge in a witness path.
type JSONEdge struct {
	Caller string `json:"caller"`
	Callee string `json:"callee"`
	Line   int    `json:"line,omitempty"`
	Static bool   `json:"static,omitempty"`
}

// JSONSummary contains aggregated statistics.
type JSONSummary struct {
	Total            int            `json:"total"`
	RequiredMisses   int            `json:"required_misses"`   //nolint:tagliatelle
	PairedViolations int            `json:"paired_violations"` //nolint:tagliatelle
	ByRule           map[string]int `json:"by_rule"`           //nolint:tagliatelle
}

// ScanInfo contains metadata about the scan.
type ScanInfo struct {
	Target        string
	Version       string
	Duration      time.Duration
	RulesExecuted int
	Errors        []string
}

// Format outputs every finding as JSON.
func (f *JSONFormatter) Format(findings []*Finding, summary *Summary, scanInfo ScanInfo) error {
	output := f.buildOutput(findings, summary, scanInfo)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func (f *JSONFormatter) buildOutput(findings []*Finding, summary *Summary, scanInfo ScanInfo) JSONOutput {
	version := scanInfo.Version
	if version == "" {
		version = "unknown"
	}

	return JSONOutput{
		Tool: JSONTool{
			Name:    "Guardrail",
			Version: version,
			URL:     "https://github.com/guardrail-go/guardrail",
		},
		Scan: JSONScan{
			Target:        scanInfo.Target,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Duration:      scanInfo.Duration.Seconds(),
			RulesExecuted: scanInfo.RulesExecuted,
		},
		Results: f.buildResults(findings),
		Summary: JSONSummary{
			Total:            summary.TotalFindings,
			RequiredMisses:   summary.RequiredMisses,
			PairedViolations: summary.PairedViolations,
			ByRule:           summary.ByRule,
		},
		Errors: scanInfo.Errors,
	}
}

func (f *JSONFormatter) buildResults(findings []*Finding) []JSONResult {
	results := make([]JSONResult, 0, len(findings))
	for _, finding := range findings {
		results = append(results, JSONResult{
			Kind:     string(finding.Kind),
			RuleName: finding.RuleName,
			Message:  finding.Message,
			Entry: JSONEntry{
				Class:      finding.Entry.Class,
				Method:     finding.Entry.Method,
				RoutePath:  finding.Entry.RoutePath,
				HTTPMethod: finding.Entry.HTTPMethod,
			},
			Target:   finding.Target.String(),
			Location: f.buildLocation(finding),
			Witness:  f.buildWitness(finding),
		})
	}
	return results
}

func (f *JSONFormatter) buildLocation(finding *Finding) JSONLocation {
	loc := JSONLocation{
		File: finding.Location.RelPath,
		Line: finding.Location.Line,
	}
	if loc.File == "" {
		loc.File = finding.Location.FilePath
	}

	if len(finding.Snippet.Lines) > 0 {
		lines := make([]string, len(finding.Snippet.Lines))
		for i, sl := range finding.Snippet.Lines {
			lines[i] = sl.Content
		}
		loc.Snippet = &JSONSnippet{
			StartLine: finding.Snippet.StartLine,
			EndLine:   finding.Snippet.StartLine + len(finding.Snippet.Lines) - 1,
			Lines:     lines,
		}
	}

	return loc
}

func (f *JSONFormatter) buildWitness(finding *Finding) []JSONEdge {
	if len(finding.Witness) == 0 {
		return nil
	}
	edges := make([]JSONEdge, 0, len(finding.Witness))
	for _, e := range finding.Witness {
		edges = append(edges, JSONEdge{
			Caller: string(e.Caller()),
			Callee: string(e.Callee()),
			Line:   e.Line,
			Static: e.Static,
		})
	}
	return edges
}
