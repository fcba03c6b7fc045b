package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	sarif "github.com/owenrumney/go-sarif/v2/sarif"
)

// SARIFFormatter formats findings as SARIF 2.1.0, for CI annotations.
type SARIFFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewSARIFFormatter creates a SARIF formatter.
func NewSARIFFormatter(opts *OutputOptions) *SARIFFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &SARIFFormatter{
		writer:  os.Stdout,
		options: opts,
	}
}

// NewSARIFFormatterWithWriter creates a formatter with custom writer (for testing).
func NewSARIFFormatterWithWriter(w io.Writer, opts *OutputOptions) *SARIFFormatter {
	sf := NewSARIFFormatter(opts)
	sf.writer = w
	return sf
}

// Format outputs every finding as SARIF. ruleId is the originating rule
// name; physical location is the witness edge's (or entry point's) source
// line.
func (f *SARIFFormatter) Format(findings []*Finding) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("Guardrail", "https://github.com/guardrail-go/guardrail")

	f.buildRules(findings, run)
	for _, finding := range findings {
		f.buildResult(finding, run)
	}

	report.AddRun(run)

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (f *SARIFFormatter) buildRules(findings []*Finding, run *sarif.Run) {
	seen := make(map[string]bool)
	for _, finding := range findings {
		if seen[finding.RuleName] {
			continue
		}
		seen[finding.RuleName] = true

		sarifRule := run.AddRule(finding.RuleName).
			WithName(finding.RuleName).
			WithHelpURI("https://github.com/guardrail-go/guardrail")

		sarifRule.WithDefaultConfiguration(sarif.NewReportingConfiguration().WithLevel("error"))
		sarifRule.WithProperties(map[string]interface{}{"tags": []string{"call-graph-reachability"}})
	}
}

func (f *SARIFFormatter) buildResult(finding *Finding, run *sarif.Run) {
	var message string
	switch finding.Kind {
	case FindingRequired:
		message = fmt.Sprintf("%s::%s never reaches %s", finding.Entry.Class, finding.Entry.Method, finding.Target)
	case FindingPaired:
		message = fmt.Sprintf("%s::%s calls %s but reaches no completion", finding.Entry.Class, finding.Entry.Method, finding.Target)
	}
	if finding.Message != "" {
		message += ": " + finding.Message
	}

	result := run.CreateResultForRule(finding.RuleName).
		WithMessage(sarif.NewTextMessage(message))

	f.addLocation(finding, result)
	if len(finding.Witness) > 1 {
		f.addCodeFlow(finding, result)
	}
}

func (f *SARIFFormatter) addLocation(finding *Finding, result *sarif.Result) {
	filePath := finding.Location.RelPath
	if filePath == "" {
		filePath = finding.Location.FilePath
	}
	if filePath == "" {
		return
	}

	region := sarif.NewRegion()
	if finding.Location.Line > 0 {
		region.WithStartLine(finding.Location.Line)
	}

	location := sarif.NewLocation().
		WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filePath)).
				WithRegion(region),
		)

	result.AddLocation(location)
}

// addCodeFlow renders the witness path (the chain of edges proving
// reachability from the entry point to the trigger) as a SARIF thread
// flow, one location per edge.
func (f *SARIFFormatter) addCodeFlow(finding *Finding, result *sarif.Result) {
	filePath := finding.Location.RelPath
	if filePath == "" {
		filePath = finding.Location.FilePath
	}
	if filePath == "" {
		return
	}

	locations := make([]*sarif.ThreadFlowLocation, 0, len(finding.Witness))
	for _, edge := range finding.Witness {
		msg := fmt.Sprintf("%s::%s -> %s::%s", edge.CallerClass, edge.CallerMethod, edge.CalleeClass, edge.CalleeMethod)
		loc := sarif.NewLocation().
			WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filePath)).
					WithRegion(sarif.NewRegion().WithStartLine(edge.Line)),
			).
			WithMessage(sarif.NewTextMessage(msg))
		locations = append(locations, sarif.NewThreadFlowLocation().WithLocation(loc))
	}

	threadFlow := sarif.NewThreadFlow().WithLocations(locations)
	codeFlow := sarif.NewCodeFlow().
		WithThreadFlows([]*sarif.ThreadFlow{threadFlow}).
		WithMessage(sarif.NewTextMessage("witness path to trigger"))

	result.WithCodeFlows([]*sarif.CodeFlow{codeFlow})
}
