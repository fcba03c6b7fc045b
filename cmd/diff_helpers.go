package cmd

import (
	"os"

	"github.com/guardrail-go/guardrail/diff"
	"github.com/guardrail-go/guardrail/output"
)

// githubOptions holds GitHub API context for diff computation and PR comments.
type githubOptions struct {
	Token    string
	Owner    string
	Repo     string
	PRNumber int
}

// resolveBaseRef auto-detects the baseline ref from CI environment variables.
// Used by check --diff-aware when --base is not explicitly provided.
// Returns empty string if no baseline can be detected; check then stops
// with an error.
func resolveBaseRef() string {
	// GitHub Actions.
	if ref := os.Getenv("GITHUB_BASE_REF"); ref != "" {
		return "origin/" + ref
	}
	// GitLab CI.
	if ref := os.Getenv("CI_MERGE_REQUEST_TARGET_BRANCH_NAME"); ref != "" {
		return "origin/" + ref
	}
	// Explicit env var override.
	if ref := os.Getenv("GUARDRAIL_BASELINE_REF"); ref != "" {
		return ref
	}
	return "" // No baseline detected.
}

// computeChangedFiles resolves changed files using the best available provider.
func computeChangedFiles(baseRef, headRef, projectRoot string, ghOpts githubOptions, logger *output.Logger) ([]string, error) {
	provider, err := diff.NewChangedFilesProvider(diff.ProviderOptions{
		ProjectRoot: projectRoot,
		BaseRef:     baseRef,
		HeadRef:     headRef,
		GitHubToken: ghOpts.Token,
		Owner:       ghOpts.Owner,
		Repo:        ghOpts.Repo,
		PRNumber:    ghOpts.PRNumber,
	})
	if err != nil {
		return nil, err
	}

	changedFiles, err := provider.GetChangedFiles()
	if err != nil {
		return nil, err
	}

	logger.Progress("Changed files: %d", len(changedFiles))
	return changedFiles, nil
}

// applyDiffFilter filters findings to only those in changed files.
func applyDiffFilter(allFindings []*output.Finding, changedFiles []string, logger *output.Logger) []*output.Finding {
	totalBefore := len(allFindings)
	diffFilter := output.NewDiffFilter(changedFiles)
	filtered := diffFilter.Filter(allFindings)
	logger.Progress("Diff filter: %d/%d findings in changed files", len(filtered), totalBefore)
	return filtered
}
