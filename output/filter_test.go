package output

import "testing"

func findingsForFiles(paths ...string) []*Finding {
	findings := make([]*Finding, len(paths))
	for i, p := range paths {
		findings[i] = &Finding{Location: Location{RelPath: p}}
	}
	return findings
}

func TestDiffFilterEmptyPassesEverything(t *testing.T) {
	filter := NewDiffFilter(nil)
	findings := findingsForFiles("a.php", "b.php")
	got := filter.Filter(findings)
	if len(got) != 2 {
		t.Fatalf("expected no filtering with empty changed set, got %d", len(got))
	}
}

func TestDiffFilterRestrictsToChanged(t *testing.T) {
	filter := NewDiffFilter([]string{"a.php"})
	findings := findingsForFiles("a.php", "b.php")
	got := filter.Filter(findings)
	if len(got) != 1 || got[0].Location.RelPath != "a.php" {
		t.Fatalf("expected only a.php to survive, got %+v", got)
	}
}

func TestDiffFilterCounts(t *testing.T) {
	filter := NewDiffFilter([]string{"a.php"})
	findings := findingsForFiles("a.php", "b.php", "c.php")
	if got := filter.FilteredCount(findings); got != 2 {
		t.Errorf("expected 2 filtered out, got %d", got)
	}
	if got := filter.ChangedFileCount(); got != 1 {
		t.Errorf("expected 1 changed file, got %d", got)
	}
}
