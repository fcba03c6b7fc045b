package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/guardrail-go/guardrail/analytics"
	"github.com/guardrail-go/guardrail/entrypoint"
	"github.com/guardrail-go/guardrail/github"
	"github.com/guardrail-go/guardrail/graph/callgraph/builder"
	"github.com/guardrail-go/guardrail/graph/callgraph/core"
	"github.com/guardrail-go/guardrail/graph/callgraph/evaluator"
	"github.com/guardrail-go/guardrail/output"
	"github.com/guardrail-go/guardrail/ruleset"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify entry points reach required calls and paired obligations are satisfied",
	Long: `Check builds the call graph for a PHP project and evaluates every configured
rule against it: a rule's entry points must reach at least one of its required
callees, and any trigger call (beginTransaction, etc.) must be paired with a
reachable completion (commit/rollback) somewhere in the transitive graph.

Examples:
  # Check the current directory, default config lookup
  guardrail check

  # Check a specific project with an explicit config file
  guardrail check --project /path/to/project --config guardrail.yaml

  # Restrict the run to a subset of configured rules
  guardrail check --rule payment-requires-auth --rule checkout-must-charge

  # Diff-aware CI re-check: only report violations in changed files
  guardrail check --diff-aware --base origin/main --output sarif --output-file results.sarif`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringP("project", "p", ".", "Path to the project directory to check")
	checkCmd.Flags().StringP("config", "c", "", "Path to guardrail.yaml (or legacy guardrail.config.php/guardrail.php); defaults to the default lookup inside --project")
	checkCmd.Flags().StringArray("rule", nil, "Restrict the run to this rule name; can be repeated. Default: every rule in the config")
	checkCmd.Flags().Int("memory-limit", 0, "Soft memory limit hint in MiB, applied via runtime/debug.SetMemoryLimit; 0 disables it")
	checkCmd.Flags().StringP("output", "o", "text", "Output format: text, json, sarif, or csv")
	checkCmd.Flags().StringP("output-file", "f", "", "Write output to a file instead of stdout")
	checkCmd.Flags().Bool("debug", false, "Show detailed debug diagnostics with file-level progress")
	checkCmd.Flags().Bool("stats", false, "Include a per-rule breakdown in the text report")
	checkCmd.Flags().Bool("diff-aware", false, "Diff-aware mode: only report violations whose entry point's file changed")
	checkCmd.Flags().String("base", "", "Base git ref for --diff-aware; auto-detected from CI env vars when omitted")
	checkCmd.Flags().String("head", "HEAD", "Head git ref for --diff-aware")
	checkCmd.Flags().String("github-token", "", "GitHub token for PR commenting and API-based diff")
	checkCmd.Flags().String("github-repo", "", "GitHub repository in owner/repo form")
	checkCmd.Flags().Int("github-pr", 0, "GitHub pull request number")
	checkCmd.Flags().Bool("post-pr-comment", false, "Post a summary comment on the PR")
	checkCmd.Flags().Bool("post-pr-inline", false, "Post inline review comments on violating lines")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	startTime := time.Now()

	projectPath, _ := cmd.Flags().GetString("project")
	configPath, _ := cmd.Flags().GetString("config")
	ruleFilter, _ := cmd.Flags().GetStringArray("rule")
	memoryLimitMB, _ := cmd.Flags().GetInt("memory-limit")
	outputFormat, _ := cmd.Flags().GetString("output")
	outputFile, _ := cmd.Flags().GetString("output-file")
	debugMode, _ := cmd.Flags().GetBool("debug")
	showStats, _ := cmd.Flags().GetBool("stats")
	diffAware, _ := cmd.Flags().GetBool("diff-aware")
	baseRef, _ := cmd.Flags().GetString("base")
	headRef, _ := cmd.Flags().GetString("head")

	prOpts := prCommentOptions{}
	prOpts.Token, _ = cmd.Flags().GetString("github-token")
	prOpts.Repo, _ = cmd.Flags().GetString("github-repo")
	prOpts.PRNumber, _ = cmd.Flags().GetInt("github-pr")
	prOpts.Comment, _ = cmd.Flags().GetBool("post-pr-comment")
	prOpts.Inline, _ = cmd.Flags().GetBool("post-pr-inline")
	if err := prOpts.validate(); err != nil {
		return err
	}

	if memoryLimitMB > 0 {
		debug.SetMemoryLimit(int64(memoryLimitMB) * 1024 * 1024)
	}

	if outputFormat != "text" && outputFormat != "json" && outputFormat != "sarif" && outputFormat != "csv" {
		return fmt.Errorf("--output must be 'text', 'json', 'sarif', or 'csv'")
	}

	absProjectPath, err := filepath.Abs(projectPath)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}
	projectPath = absProjectPath

	verbosity := output.VerbosityDefault
	if debugMode {
		verbosity = output.VerbosityDebug
	} else if verboseFlag {
		verbosity = output.VerbosityVerbose
	}
	logger := output.NewLogger(verbosity)

	analytics.ReportEventWithProperties(analytics.CheckStarted, map[string]interface{}{
		"output_format": outputFormat,
		"diff_aware":    diffAware,
		"rule_filter":   len(ruleFilter),
	})

	cfg, err := ruleset.LoadConfig(firstNonEmpty(configPath, projectPath))
	if err != nil {
		analytics.ReportEventWithProperties(analytics.CheckFailed, map[string]interface{}{"error_type": "config"})
		return fmt.Errorf("failed to load config: %w", err)
	}
	if ruleset.IsLegacy(cfg.Source) {
		logger.Warning("%s uses the deprecated PHP-literal config format; prefer guardrail.yaml", cfg.Source)
	}

	rules, err := cfg.BuildRules()
	if err != nil {
		analytics.ReportEventWithProperties(analytics.CheckFailed, map[string]interface{}{"error_type": "rule_config"})
		return fmt.Errorf("invalid rule configuration: %w", err)
	}
	rules = filterRulesByName(rules, ruleFilter)
	if len(rules) == 0 {
		analytics.ReportEventWithProperties(analytics.CheckFailed, map[string]interface{}{"error_type": "no_rules"})
		return fmt.Errorf("no rules to evaluate (check guardrail.yaml and --rule filters)")
	}

	var changedFiles []string
	if diffAware {
		if baseRef == "" {
			baseRef = resolveBaseRef()
		}
		if baseRef == "" {
			return fmt.Errorf("--diff-aware requires --base (or a detectable CI baseline)")
		}
		ghOpts := githubOptions{Token: prOpts.Token, PRNumber: prOpts.PRNumber}
		if prOpts.Repo != "" {
			ghOpts.Owner, ghOpts.Repo, _ = parseGitHubRepo(prOpts.Repo)
		}
		changedFiles, err = computeChangedFiles(baseRef, headRef, projectPath, ghOpts, logger)
		if err != nil {
			return fmt.Errorf("failed to compute changed files: %w", err)
		}
	}

	logger.StartProgress("Building call graph", -1)
	result := builder.Build(projectPath, cfg.ScanConfig())
	logger.FinishProgress()
	if len(result.Files) == 0 {
		analytics.ReportEventWithProperties(analytics.CheckFailed, map[string]interface{}{"error_type": "empty_project"})
		return fmt.Errorf("no PHP source files found under %s", projectPath)
	}
	logger.Statistic("Parsed %d files (%d skipped)", len(result.Files), len(result.Skipped))
	for _, skipped := range result.Skipped {
		logger.Debug("skipped (parse error): %s", skipped)
	}

	entries := entrypoint.Routes(result)
	entries = append(entries, entrypoint.Glob(result, entrypoint.GlobConfig{
		PathExcludes:        cfg.Excludes,
		MethodsOnlyWithBody: true,
	})...)
	logger.Statistic("Discovered %d candidate entry points", len(entries))

	var ruleResults []core.RuleResult
	logger.StartProgress("Evaluating rules", len(rules))
	for _, rule := range rules {
		ruleResults = append(ruleResults, evaluator.EvaluateRule(result.CallGraph, rule, entries))
		logger.UpdateProgress(1)
	}
	logger.FinishProgress()

	findings := output.BuildFindings(ruleResults)
	enricher := output.NewEnricher(&output.OutputOptions{
		ProjectRoot:  projectPath,
		ContextLines: 3,
		Verbosity:    verbosity,
		Statistics:   showStats,
	})
	enricher.EnrichAll(findings)

	if diffAware {
		before := len(findings)
		findings = output.NewDiffFilter(changedFiles).Filter(findings)
		logger.Progress("Diff filter: %d/%d findings in changed files", len(findings), before)
	}

	summary := output.BuildSummary(findings, len(rules))
	summary.FilesScanned = len(result.Files)
	summary.Duration = time.Since(startTime).Round(time.Millisecond).String()

	if err := writeCheckOutput(outputFormat, outputFile, findings, summary, projectPath, len(rules), logger); err != nil {
		return err
	}

	if prOpts.enabled() {
		metrics := github.ScanMetrics{FilesScanned: len(result.Files), RulesExecuted: len(rules)}
		if err := postPRComments(prOpts, findings, metrics, logger); err != nil {
			logger.Warning("failed to post PR comments: %v", err)
		}
	}

	for _, f := range findings {
		analytics.ReportEventWithProperties(analytics.RuleViolationFound, map[string]interface{}{
			"kind": string(f.Kind),
		})
	}

	exitCode := output.DetermineExitCode(findings, false)
	completed := analytics.SummarizeFindings(findings).Properties()
	completed["duration_ms"] = time.Since(startTime).Milliseconds()
	completed["rules_count"] = len(rules)
	completed["findings_count"] = len(findings)
	completed["diff_aware"] = diffAware
	completed["exit_code"] = int(exitCode)
	analytics.ReportEventWithProperties(analytics.CheckCompleted, completed)

	if exitCode != output.ExitCodeSuccess {
		os.Exit(int(exitCode))
	}
	return nil
}

func writeCheckOutput(format, outputFile string, findings []*output.Finding, summary *output.Summary, projectPath string, rulesExecuted int, logger *output.Logger) error {
	var w *os.File
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "text":
		var formatter *output.TextFormatter
		if w != nil {
			formatter = output.NewTextFormatterWithWriter(w, &output.OutputOptions{}, logger)
		} else {
			formatter = output.NewTextFormatter(&output.OutputOptions{}, logger)
		}
		return formatter.Format(findings, summary)
	case "json":
		scanInfo := output.ScanInfo{Target: projectPath, Version: Version, RulesExecuted: rulesExecuted}
		var formatter *output.JSONFormatter
		if w != nil {
			formatter = output.NewJSONFormatterWithWriter(w, nil)
		} else {
			formatter = output.NewJSONFormatter(nil)
		}
		return formatter.Format(findings, summary, scanInfo)
	case "sarif":
		var formatter *output.SARIFFormatter
		if w != nil {
			formatter = output.NewSARIFFormatterWithWriter(w, nil)
		} else {
			formatter = output.NewSARIFFormatter(nil)
		}
		return formatter.Format(findings)
	case "csv":
		var formatter *output.CSVFormatter
		if w != nil {
			formatter = output.NewCSVFormatterWithWriter(w, nil)
		} else {
			formatter = output.NewCSVFormatter(nil)
		}
		return formatter.Format(findings)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func filterRulesByName(rules []core.Rule, names []string) []core.Rule {
	if len(names) == 0 {
		return rules
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var filtered []core.Rule
	for _, r := range rules {
		if wanted[r.Name] {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
