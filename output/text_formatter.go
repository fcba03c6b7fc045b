package output

import (
	"fmt"
	"io"
	"os"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
)

// TextFormatter formats findings as human-readable text.
type TextFormatter struct {
	writer  io.Writer
	options *OutputOptions
	logger  *Logger
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(opts *OutputOptions, logger *Logger) *TextFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &TextFormatter{
		writer:  os.Stdout,
		options: opts,
		logger:  logger,
	}
}

// NewTextFormatterWithWriter creates a formatter with custom writer (for testing).
func NewTextFormatterWithWriter(w io.Writer, opts *OutputOptions, logger *Logger) *TextFormatter {
	tf := NewTextFormatter(opts, logger)
	tf.writer = w
	return tf
}

// Format outputs every finding as formatted text.
func (f *TextFormatter) Format(findings []*Finding, summary *Summary) error {
	if len(findings) == 0 {
		f.writeNoFindings()
		return nil
	}

	f.writeHeader()
	f.writeResults(findings)
	f.writeSummary(summary)

	if f.options.ShouldShowStatistics() {
		f.writeStatistics(summary)
	}

	return nil
}

func (f *TextFormatter) writeHeader() {
	fmt.Fprintln(f.writer, "Guardrail Security Scan")
	fmt.Fprintln(f.writer)
}

func (f *TextFormatter) writeNoFindings() {
	fmt.Fprintln(f.writer, "Guardrail Security Scan")
	fmt.Fprintln(f.writer)
	fmt.Fprintln(f.writer, "No violations found — every entry point reached its required targets.")
}

func (f *TextFormatter) writeResults(findings []*Finding) {
	fmt.Fprintln(f.writer, "Results:")
	fmt.Fprintln(f.writer)

	grouped := f.groupByRule(findings)
	for _, rule := range ruleOrder(findings) {
		f.writeRuleGroup(rule, grouped[rule])
	}
}

// ruleOrder returns rule names in first-seen order so the report stays
// deterministic without depending on map iteration order.
func ruleOrder(findings []*Finding) []string {
	seen := make(map[string]bool)
	var order []string
	for _, finding := range findings {
		if !seen[finding.RuleName] {
			seen[finding.RuleName] = true
			order = append(order, finding.RuleName)
		}
	}
	return order
}

func (f *TextFormatter) groupByRule(findings []*Finding) map[string][]*Finding {
	grouped := make(map[string][]*Finding)
	for _, finding := range findings {
		grouped[finding.RuleName] = append(grouped[finding.RuleName], finding)
	}
	return grouped
}

func (f *TextFormatter) writeRuleGroup(rule string, findings []*Finding) {
	fmt.Fprintf(f.writer, "%s (%d):\n\n", rule, len(findings))
	for _, finding := range findings {
		f.writeFinding(finding)
	}
	fmt.Fprintln(f.writer)
}

func (f *TextFormatter) writeFinding(finding *Finding) {
	fmt.Fprintf(f.writer, "  [%s] %s::%s\n", kindLabel(finding.Kind), finding.Entry.Class, finding.Entry.Method)

	switch finding.Kind {
	case FindingRequired:
		fmt.Fprintf(f.writer, "    never reaches %s\n", finding.Target)
	case FindingPaired:
		fmt.Fprintf(f.writer, "    calls %s but never a completion\n", finding.Target)
	}

	if finding.Message != "" {
		fmt.Fprintf(f.writer, "    %s\n", finding.Message)
	}

	if loc := f.formatLocation(finding.Location); loc != "" {
		fmt.Fprintf(f.writer, "    %s\n", loc)
	}

	if len(finding.Snippet.Lines) > 0 {
		f.writeCodeSnippet(finding.Snippet)
	}

	if len(finding.Witness) > 0 {
		f.writeWitness(finding.Witness)
	}
	fmt.Fprintln(f.writer)
}

func kindLabel(k FindingKind) string {
	switch k {
	case FindingRequired:
		return "required-call"
	case FindingPaired:
		return "paired-call"
	default:
		return string(k)
	}
}

func (f *TextFormatter) formatLocation(loc Location) string {
	path := loc.RelPath
	if path == "" {
		path = loc.FilePath
	}
	if path == "" {
		return ""
	}
	if loc.Line > 0 {
		return fmt.Sprintf("%s:%d", path, loc.Line)
	}
	return path
}

func (f *TextFormatter) writeCodeSnippet(snippet CodeSnippet) {
	maxLineNum := 0
	for _, line := range snippet.Lines {
		if line.Number > maxLineNum {
			maxLineNum = line.Number
		}
	}
	lineWidth := len(fmt.Sprintf("%d", maxLineNum))

	for _, line := range snippet.Lines {
		marker := " "
		if line.IsHighlight {
			marker = ">"
		}
		fmt.Fprintf(f.writer, "      %s %*d | %s\n", marker, lineWidth, line.Number, line.Content)
	}
}

// witnessIndent is how far each witness edge is indented before the terminal
// width budget for the edge text itself is computed.
const witnessIndent = 6

func (f *TextFormatter) writeWitness(witness []core.MethodCall) {
	fmt.Fprintln(f.writer, "    witness:")
	width := GetTerminalWidth(f.writer)
	for _, edge := range witness {
		line := fmt.Sprintf("%s::%s -> %s::%s", edge.CallerClass, edge.CallerMethod, edge.CalleeClass, edge.CalleeMethod)
		budget := width - witnessIndent
		if budget > 0 && len(line) > budget {
			line = line[:budget-1] + "…"
		}
		fmt.Fprintf(f.writer, "      %s\n", line)
	}
}

func (f *TextFormatter) writeSummary(summary *Summary) {
	fmt.Fprintln(f.writer, "Summary:")
	fmt.Fprintf(f.writer, "  %d violations across %d rules (%d required-call misses, %d paired-call violations)\n",
		summary.TotalFindings, summary.RulesExecuted, summary.RequiredMisses, summary.PairedViolations)
	fmt.Fprintln(f.writer)
}

func (f *TextFormatter) writeStatistics(summary *Summary) {
	fmt.Fprintln(f.writer, "By rule:")
	for rule, count := range summary.ByRule {
		fmt.Fprintf(f.writer, "  %s: %d\n", rule, count)
	}
	fmt.Fprintln(f.writer)
}
