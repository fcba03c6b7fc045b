package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/output"
)

// ReviewManager handles posting inline review comments on a PR.
type ReviewManager struct {
	client    *Client
	prNumber  int
	commitSHA string
}

// NewReviewManager creates a review manager for the given PR and commit.
func NewReviewManager(client *Client, prNumber int, commitSHA string) *ReviewManager {
	return &ReviewManager{
		client:    client,
		prNumber:  prNumber,
		commitSHA: commitSHA,
	}
}

// PostInlineComments posts inline review comments for findings with a
// resolvable location. Findings are batched into a single review request
// (atomic). Existing comments with matching markers are updated; new ones
// are created.
func (rm *ReviewManager) PostInlineComments(ctx context.Context, findings []*output.Finding) error {
	eligible := filterEligible(findings)
	if len(eligible) == 0 {
		return nil
	}

	// Fetch existing review comments for marker comparison.
	existing, err := rm.client.ListReviewComments(ctx, rm.prNumber)
	if err != nil {
		return fmt.Errorf("list existing review comments: %w", err)
	}
	existingByMarker := indexByMarker(existing)

	// Separate findings into updates vs new comments.
	newComments := make([]ReviewCommentInput, 0, len(eligible))
	for _, f := range eligible {
		marker := ReviewCommentMarker(f)
		body := FormatInlineComment(f)

		if commentID, ok := existingByMarker[marker]; ok {
			// Update existing review comment in-place (uses pulls/comments endpoint).
			if _, err := rm.client.UpdateReviewComment(ctx, commentID, body); err != nil {
				return fmt.Errorf("update inline comment: %w", err)
			}
			continue
		}

		newComments = append(newComments, ReviewCommentInput{
			Path: f.Location.RelPath,
			Line: f.Location.Line,
			Side: "RIGHT",
			Body: body,
		})
	}

	// Post new comments as a single atomic review.
	if len(newComments) > 0 {
		if err := rm.client.CreateReview(ctx, rm.prNumber, rm.commitSHA, "", newComments); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
	}

	return nil
}

// ReviewCommentMarker generates a hidden HTML marker for a finding.
// Used to match existing comments for update-in-place.
func ReviewCommentMarker(f *output.Finding) string {
	return fmt.Sprintf("<!-- guardrail-%s-%s-%d -->", f.RuleName, f.Location.RelPath, f.Location.Line)
}

// FormatInlineComment builds the markdown body for a single inline comment.
func FormatInlineComment(f *output.Finding) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s **%s**\n\n", kindEmoji(f.Kind), f.RuleName))
	sb.WriteString(f.Message)
	sb.WriteString("\n\n")

	if len(f.Witness) > 0 {
		writeWitnessPath(&sb, f.Entry, f.Witness)
	}

	// Hidden marker for update-in-place.
	// Trim trailing whitespace to avoid excess blank lines.
	body := strings.TrimRight(sb.String(), "\n")
	return body + "\n\n" + ReviewCommentMarker(f) + "\n"
}

// filterEligible returns only findings with a resolvable file/line location.
func filterEligible(findings []*output.Finding) []*output.Finding {
	result := make([]*output.Finding, 0, len(findings))
	for _, f := range findings {
		if f.Location.RelPath != "" && f.Location.Line > 0 {
			result = append(result, f)
		}
	}
	return result
}

// indexByMarker builds a map from marker string to comment ID for existing comments.
func indexByMarker(comments []*ReviewComment) map[string]int64 {
	m := make(map[string]int64, len(comments))
	for _, c := range comments {
		// Extract marker from comment body.
		if idx := strings.Index(c.Body, "<!-- guardrail-"); idx != -1 {
			end := strings.Index(c.Body[idx:], "-->")
			if end != -1 {
				marker := c.Body[idx : idx+end+3]
				m[marker] = c.ID
			}
		}
	}
	return m
}

func kindEmoji(k output.FindingKind) string {
	switch k {
	case output.FindingRequired:
		return "🔴"
	case output.FindingPaired:
		return "🟠"
	default:
		return "⚠️"
	}
}

// writeWitnessPath writes the call chain from the entry point to the
// trigger call that was never followed by a completion.
func writeWitnessPath(sb *strings.Builder, entry core.EntryPoint, witness []core.MethodCall) {
	sb.WriteString("**Path:**\n")
	sb.WriteString(fmt.Sprintf("- `%s::%s`\n", entry.Class, entry.Method))
	for _, call := range witness {
		sb.WriteString(fmt.Sprintf("  - → `%s::%s` (line %d)\n", call.CalleeClass, call.CalleeMethod, call.Line))
	}
	sb.WriteString("\n")
}
