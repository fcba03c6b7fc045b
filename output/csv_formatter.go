package output

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// CSVFormatter formats findings as CSV.
type CSVFormatter struct {
	writer  io.Writer
	options *OutputOptions
}

// NewCSVFormatter creates a CSV formatter.
func NewCSVFormatter(opts *OutputOptions) *CSVFormatter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &CSVFormatter{
		writer:  os.Stdout,
		options: opts,
	}
}

// NewCSVFormatterWithWriter creates a formatter with custom writer (for testing).
func NewCSVFormatterWithWriter(w io.Writer, opts *OutputOptions) *CSVFormatter {
	cf := NewCSVFormatter(opts)
	cf.writer = w
	return cf
}

// CSVHeaders returns the CSV column headers.
func CSVHeaders() []string {
	return []string{
		"kind",
		"rule_name",
		"entry_class",
		"entry_method",
		"target",
		"file",
		"line",
		"message",
	}
}

// Format outputs every finding as CSV.
func (f *CSVFormatter) Format(findings []*Finding) error {
	w := csv.NewWriter(f.writer)
	defer w.Flush()

	if err := w.Write(CSVHeaders()); err != nil {
		return err
	}

	for _, finding := range findings {
		if err := w.Write(f.buildRow(finding)); err != nil {
			return err
		}
	}

	return w.Error()
}

func (f *CSVFormatter) buildRow(finding *Finding) []string {
	file := finding.Location.RelPath
	if file == "" {
		file = finding.Location.FilePath
	}

	return []string{
		string(finding.Kind),
		finding.RuleName,
		finding.Entry.Class,
		finding.Entry.Method,
		finding.Target.String(),
		file,
		intToString(finding.Location.Line),
		finding.Message,
	}
}

func intToString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
