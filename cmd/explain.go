package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardrail-go/guardrail/ruleset"
)

var explainCmd = &cobra.Command{
	Use:   "explain <rule-name>",
	Short: "Print a configured rule's entry-point selector, required calls, and obligations",
	Long: `Explain is a read-only diagnostic: it loads the same guardrail.yaml "check"
would, finds the named rule, and prints what it requires, without building a
call graph or running any analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().StringP("project", "p", ".", "Path to the project directory (used only to locate the config)")
	explainCmd.Flags().StringP("config", "c", "", "Path to guardrail.yaml; defaults to the default lookup inside --project")
}

func runExplain(cmd *cobra.Command, args []string) error {
	ruleName := args[0]
	projectPath, _ := cmd.Flags().GetString("project")
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := ruleset.LoadConfig(firstNonEmpty(configPath, projectPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	for _, rc := range cfg.Rules {
		if rc.Name != ruleName {
			continue
		}
		printRuleConfig(rc)
		return nil
	}
	return fmt.Errorf("no rule named %q in %s", ruleName, cfg.Source)
}

func printRuleConfig(rc ruleset.RuleConfig) {
	fmt.Printf("Rule: %s\n", rc.Name)
	switch {
	case rc.Entry.Class == "":
		fmt.Println("Entry points: any entry point discovered by the check command")
	case rc.Entry.Method == "":
		fmt.Printf("Entry points: any method on %s\n", rc.Entry.Class)
	default:
		fmt.Printf("Entry points: %s::%s\n", rc.Entry.Class, rc.Entry.Method)
	}

	if len(rc.Requires) == 0 {
		fmt.Println("Required calls: none")
	} else {
		fmt.Println("Required calls (any-of):")
		for _, r := range rc.Requires {
			fmt.Printf("  - %s\n", r)
		}
	}

	if len(rc.Pairs) == 0 {
		fmt.Println("Paired obligations: none")
		return
	}
	fmt.Println("Paired obligations:")
	for _, p := range rc.Pairs {
		fmt.Printf("  - trigger %s requires one of:\n", p.Trigger)
		for _, c := range p.Completions {
			fmt.Printf("      %s\n", c)
		}
		if p.Message != "" {
			fmt.Printf("    message: %s\n", p.Message)
		}
	}
	if rc.Message != "" {
		fmt.Printf("Message: %s\n", rc.Message)
	}
}
