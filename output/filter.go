package output

// DiffFilter restricts a finding set to only those whose entry-point file
// changed, enabling fast diff-aware CI re-checks  without re-running the full analysis.
type DiffFilter struct {
	changedFiles map[string]bool // set of relative file paths
}

// NewDiffFilter creates a filter from a list of changed file paths. Paths
// should be relative to the project root (matching Location.RelPath).
func NewDiffFilter(changedFiles []string) *DiffFilter {
	fileSet := make(map[string]bool, len(changedFiles))
	for _, f := range changedFiles {
		fileSet[f] = true
	}
	return &DiffFilter{changedFiles: fileSet}
}

// Filter returns only findings whose RelPath is in the changed-files set.
// If no changed files were provided, every finding is returned (full scan).
func (f *DiffFilter) Filter(findings []*Finding) []*Finding {
	if len(f.changedFiles) == 0 {
		return findings
	}
	filtered := make([]*Finding, 0, len(findings))
	for _, finding := range findings {
		if f.changedFiles[finding.Location.RelPath] {
			filtered = append(filtered, finding)
		}
	}
	return filtered
}

// FilteredCount returns the number of findings that would be removed.
func (f *DiffFilter) FilteredCount(findings []*Finding) int {
	if len(f.changedFiles) == 0 {
		return 0
	}
	count := 0
	for _, finding := range findings {
		if !f.changedFiles[finding.Location.RelPath] {
			count++
		}
	}
	return count
}

// ChangedFileCount returns the number of changed files in the filter set.
func (f *DiffFilter) ChangedFileCount() int {
	return len(f.changedFiles)
}
