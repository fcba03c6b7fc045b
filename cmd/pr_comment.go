package cmd

import (
	"fmt"
	"strings"

	"github.com/guardrail-go/guardrail/github"
	"github.com/guardrail-go/guardrail/output"
)

// prCommentOptions holds the flags needed for PR commenting.
type prCommentOptions struct {
	Token    string
	Repo     string // "owner/repo" format
	PRNumber int
	Comment  bool // Post summary comment.
	Inline   bool // Post inline review comments.
}

// enabled returns true if any PR commenting feature is requested.
func (o *prCommentOptions) enabled() bool {
	return o.Comment || o.Inline
}

// validate checks that required fields are present when commenting is enabled.
func (o *prCommentOptions) validate() error {
	if !o.enabled() {
		return nil
	}
	if o.Token == "" {
		return fmt.Errorf("--github-token is required for PR commenting")
	}
	if o.Repo == "" {
		return fmt.Errorf("--github-repo is required for PR commenting")
	}
	if o.PRNumber <= 0 {
		return fmt.Errorf("--github-pr must be a positive number")
	}
	if _, _, err := parseGitHubRepo(o.Repo); err != nil {
		return err
	}
	return nil
}

// parseGitHubRepo splits "owner/repo" into owner and repo.
func parseGitHubRepo(repo string) (string, string, error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("--github-repo must be in owner/repo format, got %q", repo)
	}
	return parts[0], parts[1], nil
}

// newGitHubClient creates a GitHub API client. Variable to allow testing with mock server.
var newGitHubClient = github.NewClient

// postPRComments posts summary and/or inline comments on a GitHub PR.
// Thin CLI wrapper around github.PostPRComments: resolves the client and
// flags, then delegates the posting logic to the github package.
func postPRComments(
	opts prCommentOptions,
	findings []*output.Finding,
	metrics github.ScanMetrics,
	logger *output.Logger,
) error {
	owner, repo, _ := parseGitHubRepo(opts.Repo) // Already validated.
	client := newGitHubClient(opts.Token, owner, repo)

	return github.PostPRComments(client, github.PRCommentOptions{
		PRNumber: opts.PRNumber,
		Comment:  opts.Comment,
		Inline:   opts.Inline,
	}, findings, metrics, logger.Progress)
}
