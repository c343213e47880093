// Package cli provides the Cobra command structure for postlint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/postlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root postlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var verbose bool
	var quiet bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "postlint",
		Short: "Pre-commit quality gate for blog postings",
		Long: `postlint checks Markdown blog postings before publishing.

It runs a configurable battery of rules over each posting: frontmatter
hygiene, tag conventions, link quality, code block formatting, and bundled
asset checks. Warnings can be suppressed per posting through the
'suppresswarnings' frontmatter list; a small set of fixes rewrites files
in place.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logging.SetLevel("debug")
			}
			if quiet {
				logging.SetLevel("error")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "be more verbose")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "run quietly")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
