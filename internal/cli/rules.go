package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/postlint/internal/logging"
	"github.com/yaklabco/postlint/pkg/gate"
	_ "github.com/yaklabco/postlint/pkg/gate/rules" // Register built-in rules
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Mutates     bool   `json:"mutates"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available check rules",
		Long: `List all available check rules with their IDs, descriptions,
and whether they rewrite the posting content.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			rules := gate.DefaultRegistry.Rules()

			// Handle JSON output format.
			if flags.format == formatJSON {
				return outputRulesJSON(rules)
			}

			// Default to text output.
			logger := logging.NewInteractive()

			if len(rules) == 0 {
				logger.Info("no rules registered")
				return nil
			}

			logger.Info("available rules")

			for _, rule := range rules {
				mutates := "-"
				if rule.Mutates() {
					mutates = "yes"
				}

				logger.Info(rule.ID(),
					logging.FieldMutates, mutates,
					logging.FieldDescription, rule.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(rules []gate.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Description: rule.Description(),
			Mutates:     rule.Mutates(),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
