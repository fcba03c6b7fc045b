package diff

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitDiffProvider resolves the set of files a diff-aware check should
// re-evaluate: every file that changed between BaseRef and HeadRef. The
// caller (cmd's check --diff-aware) keeps only the findings whose entry-point
// file is in this list, so a changed composer.json or CI
// workflow file simply never matches anything and drops out downstream —
// this provider only needs to get the raw changed-path list right.
type GitDiffProvider struct {
	// ProjectRoot is the absolute path to the git repository root.
	ProjectRoot string

	// BaseRef is the baseline git ref (e.g., "origin/main", "abc123", "HEAD~1").
	BaseRef string

	// HeadRef is the head git ref (defaults to "HEAD").
	HeadRef string
}

// GetChangedFiles validates BaseRef and HeadRef, then returns the relative
// file paths changed between them. It diffs from their merge-base rather
// than directly between the two refs, so commits merged into BaseRef after
// HeadRef branched off don't leak into the result:
//
//	main:    A --- B --- C
//	              \
//	feature:       D --- E (HEAD)
//
// merge-base(main, feature) is B, so B..HEAD reports only D and E's changes.
func (p *GitDiffProvider) GetChangedFiles() ([]string, error) {
	if err := p.validateRefs(); err != nil {
		return nil, fmt.Errorf("invalid ref for diff-aware check: %w", err)
	}

	mergeBase, err := p.findMergeBase()
	if err != nil {
		return nil, fmt.Errorf("failed to find merge-base between %s and %s: %w", p.BaseRef, p.HeadRef, err)
	}

	return p.diffFiles(mergeBase)
}

// validateRefs confirms both refs exist before shelling out for the diff
// itself, so a shallow CI checkout reports a fetch-depth hint rather than an
// opaque merge-base failure.
func (p *GitDiffProvider) validateRefs() error {
	if err := ValidateGitRef(p.ProjectRoot, p.BaseRef); err != nil {
		return err
	}
	return ValidateGitRef(p.ProjectRoot, p.HeadRef)
}

// findMergeBase runs git merge-base to find the common ancestor.
func (p *GitDiffProvider) findMergeBase() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "merge-base", p.BaseRef, p.HeadRef)
	cmd.Dir = p.ProjectRoot

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git merge-base timed out after 30s")
		}
		return "", fmt.Errorf("git merge-base failed: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// diffFiles runs git diff --name-only to list changed files from merge-base to head.
// Uses --diff-filter=ACMR to include Added, Copied, Modified, and Renamed files only
// — a rule can only be re-checked against an entry point whose defining file still
// exists at HeadRef, so deletions are excluded by construction.
func (p *GitDiffProvider) diffFiles(mergeBase string) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	diffRange := mergeBase + ".." + p.HeadRef
	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", "--diff-filter=ACMR", diffRange)
	cmd.Dir = p.ProjectRoot

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("git diff timed out after 30s")
		}
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	return parseFileList(string(output)), nil
}

// parseFileList splits newline-separated file paths, filtering empty lines.
func parseFileList(output string) []string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	var files []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			files = append(files, trimmed)
		}
	}
	return files
}
