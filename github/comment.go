package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/guardrail-go/guardrail/output"
)

// summaryMarker is an invisible HTML comment embedded in every summary comment.
// Used to find and update existing comments instead of creating duplicates.
const summaryMarker = "<!-- guardrail-summary -->"

// ScanMetrics captures aggregate scan statistics for the summary comment.
type ScanMetrics struct {
	FilesScanned  int
	RulesExecuted int
	BlobBaseURL   string // e.g. "https://github.com/owner/repo/blob/sha" — enables file links.
}

// CommentManager handles creating and updating PR summary comments.
type CommentManager struct {
	client   *Client
	prNumber int
}

// NewCommentManager creates a comment manager for the given PR.
func NewCommentManager(client *Client, prNumber int) *CommentManager {
	return &CommentManager{client: client, prNumber: prNumber}
}

// PostOrUpdate posts a new summary comment or updates the existing one.
// It searches for a comment containing the marker to avoid duplicates.
func (cm *CommentManager) PostOrUpdate(ctx context.Context, markdown string) error {
	body := summaryMarker + "\n" + markdown

	existingID, err := cm.findExisting(ctx)
	if err != nil {
		return fmt.Errorf("find existing comment: %w", err)
	}

	if existingID != 0 {
		_, err = cm.client.UpdateComment(ctx, existingID, body)
		if err != nil {
			return fmt.Errorf("update summary comment: %w", err)
		}
		return nil
	}

	_, err = cm.client.CreateComment(ctx, cm.prNumber, body)
	if err != nil {
		return fmt.Errorf("create summary comment: %w", err)
	}
	return nil
}

// findExisting returns the ID of an existing summary comment, or 0 if none.
func (cm *CommentManager) findExisting(ctx context.Context) (int64, error) {
	comments, err := cm.client.ListComments(ctx, cm.prNumber)
	if err != nil {
		return 0, err
	}
	for _, c := range comments {
		if strings.Contains(c.Body, summaryMarker) {
			return c.ID, nil
		}
	}
	return 0, nil
}

// FormatSummaryComment builds the markdown body for a PR summary comment.
func FormatSummaryComment(findings []*output.Finding, metrics ScanMetrics) string {
	summary := output.BuildSummary(findings, metrics.RulesExecuted)
	var sb strings.Builder

	sb.WriteString("## [Guardrail](https://guardrail.dev) Security Scan\n\n")

	if summary.TotalFindings == 0 {
		sb.WriteString(statusBadge("Pass", "success"))
	} else {
		sb.WriteString(statusBadge("Violations Found", "critical"))
	}
	sb.WriteString(" ")
	sb.WriteString(kindBadge("Required-call misses", summary.RequiredMisses))
	sb.WriteString(" ")
	sb.WriteString(kindBadge("Paired-call violations", summary.PairedViolations))
	sb.WriteString("\n\n")

	if len(findings) == 0 {
		sb.WriteString("**No guardrail violations detected.**\n\n")
	} else {
		writeFindingsTable(&sb, findings, metrics.BlobBaseURL)
	}

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|:-------|------:|\n")
	sb.WriteString(fmt.Sprintf("| Files Scanned | %d |\n", metrics.FilesScanned))
	sb.WriteString(fmt.Sprintf("| Rules | %d |\n", metrics.RulesExecuted))

	sb.WriteString("\n---\n")
	sb.WriteString("<sub>Powered by <a href=\"https://guardrail.dev\">Guardrail</a></sub>\n")

	return sb.String()
}

func statusBadge(label, color string) string {
	safe := strings.ReplaceAll(label, " ", "_")
	return fmt.Sprintf("![%s](https://img.shields.io/badge/Guardrail-%s-%s?style=flat-square)", label, safe, color)
}

func kindBadge(label string, count int) string {
	color := "success"
	if count > 0 {
		color = "critical"
	}
	return fmt.Sprintf("![%s](https://img.shields.io/badge/%s-%d-%s?style=flat-square)", label, strings.ReplaceAll(label, " ", "_"), count, color)
}

func kindLabelMarkdown(k output.FindingKind) string {
	switch k {
	case output.FindingRequired:
		return "🔴 **Required**"
	case output.FindingPaired:
		return "🟠 Paired"
	default:
		return string(k)
	}
}

func writeFindingsTable(sb *strings.Builder, findings []*output.Finding, blobBaseURL string) {
	sb.WriteString("### Findings\n\n")
	if blobBaseURL != "" {
		sb.WriteString("| Kind | File | Line | Rule | |\n")
		sb.WriteString("|:-----|:-----|-----:|:-----|:-:|\n")
	} else {
		sb.WriteString("| Kind | File | Line | Rule |\n")
		sb.WriteString("|:-----|:-----|-----:|:-----|\n")
	}
	for _, f := range findings {
		if blobBaseURL != "" {
			link := fmt.Sprintf("[%s](%s/%s#L%d)", "🔗", blobBaseURL, f.Location.RelPath, f.Location.Line)
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %d | %s | %s |\n",
				kindLabelMarkdown(f.Kind), f.Location.RelPath, f.Location.Line, f.RuleName, link))
		} else {
			sb.WriteString(fmt.Sprintf("| %s | `%s` | %d | %s |\n",
				kindLabelMarkdown(f.Kind), f.Location.RelPath, f.Location.Line, f.RuleName))
		}
	}
	sb.WriteString("\n")
}
