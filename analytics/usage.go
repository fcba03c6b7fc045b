package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"

	"github.com/guardrail-go/guardrail/output"
)

// Event names for the check command's lifecycle — the only command that
// reports usage events, so the only surface this package needs to track.
const (
	CheckStarted       = "guardrail:check_started"
	CheckCompleted     = "guardrail:check_completed"
	CheckFailed        = "guardrail:check_failed"
	RuleViolationFound = "guardrail:rule_violation_found"
)

var (
	PublicKey     string
	enableMetrics bool
	appVersion    string
)

func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

func SetVersion(version string) {
	appVersion = version
}

// RunCounts aggregates a check run's findings into the shape CheckCompleted
// reports: how many violations of each kind, split across how many rules.
// No file path, class, or method name ever enters this struct — only
// counts, so ReportEventWithProperties stays PII-free by construction
// instead of by the caller remembering to filter fields.
type RunCounts struct {
	TotalFindings     int
	RequiredMisses    int
	PairedViolations  int
	RulesWithFindings int
}

// SummarizeFindings reduces a check run's findings to a RunCounts. Mirrors
// output.BuildSummary's tally but drops everything BuildSummary keeps for
// human display (per-rule breakdown by name, duration, files scanned) since
// a rule's name can itself be project-specific and isn't safe to ship as
// anonymous telemetry.
func SummarizeFindings(findings []*output.Finding) RunCounts {
	var counts RunCounts
	rulesWithFindings := make(map[string]bool)
	for _, f := range findings {
		counts.TotalFindings++
		switch f.Kind {
		case output.FindingRequired:
			counts.RequiredMisses++
		case output.FindingPaired:
			counts.PairedViolations++
		}
		rulesWithFindings[f.RuleName] = true
	}
	counts.RulesWithFindings = len(rulesWithFindings)
	return counts
}

// Properties renders the counts as the property map ReportEventWithProperties
// expects for a CheckCompleted event.
func (c RunCounts) Properties() map[string]interface{} {
	return map[string]interface{}{
		"total_findings":      c.TotalFindings,
		"required_misses":     c.RequiredMisses,
		"paired_violations":   c.PairedViolations,
		"rules_with_findings": c.RulesWithFindings,
	}
}

func createEnvFile() {
	homeDir, err := os.UserHomeDir()
	envFile := filepath.Join(homeDir, ".guardrail", ".env")
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}
	// create .env file
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// create directory
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{
			"uuid": uuid.New().String(),
		}
		err = godotenv.Write(env, envFile)
		if err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

func LoadEnvFile() {
	createEnvFile()
	envFile := filepath.Join(os.Getenv("HOME"), ".guardrail", ".env")
	err := godotenv.Load(envFile)
	if err != nil {
		return
	}
}

func ReportEvent(event string) {
	ReportEventWithProperties(event, nil)
}

// ReportEventWithProperties sends an event with additional properties.
// Properties should not contain any PII (no file paths, code, user info).
func ReportEventWithProperties(event string, properties map[string]interface{}) {
	if enableMetrics && PublicKey != "" {
		// Enable GeoIP resolution by setting DisableGeoIP to false (pointer to bool)
		disableGeoIP := false
		client, err := posthog.NewWithConfig(
			PublicKey,
			posthog.Config{
				Endpoint:     "https://us.i.posthog.com",
				DisableGeoIP: &disableGeoIP, // Enable GeoIP resolution for location analytics
			},
		)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer client.Close()

		capture := posthog.Capture{
			DistinctId: os.Getenv("uuid"),
			Event:      event,
		}

		// Create properties with automatic platform metadata
		captureProperties := posthog.NewProperties()

		// Add runtime metadata automatically
		captureProperties.Set("os", runtime.GOOS)
		captureProperties.Set("arch", runtime.GOARCH)
		captureProperties.Set("go_version", runtime.Version())
		if appVersion != "" {
			captureProperties.Set("guardrail_version", appVersion)
		}

		// Merge user-provided properties
		if properties != nil {
			for k, v := range properties {
				captureProperties.Set(k, v)
			}
		}

		capture.Properties = captureProperties

		err = client.Enqueue(capture)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}
