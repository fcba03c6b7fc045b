package output

import "testing"

func TestDetermineExitCodeSuccess(t *testing.T) {
	if got := DetermineExitCode(nil, false); got != ExitCodeSuccess {
		t.Errorf("expected ExitCodeSuccess, got %d", got)
	}
}

func TestDetermineExitCodeFindings(t *testing.T) {
	findings := []*Finding{{Kind: FindingRequired}}
	if got := DetermineExitCode(findings, false); got != ExitCodeFindings {
		t.Errorf("expected ExitCodeFindings, got %d", got)
	}
}

func TestDetermineExitCodeErrorTakesPrecedence(t *testing.T) {
	findings := []*Finding{{Kind: FindingRequired}}
	if got := DetermineExitCode(findings, true); got != ExitCodeError {
		t.Errorf("expected ExitCodeError even with findings present, got %d", got)
	}
	if got := DetermineExitCode(nil, true); got != ExitCodeError {
		t.Errorf("expected ExitCodeError with no findings but hadErrors, got %d", got)
	}
}
