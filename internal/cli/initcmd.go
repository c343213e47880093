package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/postlint/internal/logging"
	"github.com/yaklabco/postlint/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new postlint configuration file",
		Long: `Create a new .postlint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable checks
and configure their parameters.

Examples:
  postlint init                   Create minimal .postlint.yml
  postlint init --full            Create full config with all checks documented
  postlint init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all checks documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .postlint.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	// Determine output path
	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".postlint.yml"
	}

	// Make path absolute
	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			if !isInteractive() {
				return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
			}
			overwrite, err := promptOverwrite(outputPath)
			if err != nil {
				return err
			}
			if !overwrite {
				logger.Info("keeping existing file", logging.FieldPath, outputPath)
				return nil
			}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)

	return nil
}

// promptOverwrite asks whether to replace an existing config file.
func promptOverwrite(path string) (bool, error) {
	if _, err := os.Stdout.WriteString("File " + path + " already exists\n"); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}
	if _, err := os.Stdout.WriteString("Overwrite? [y/N] "); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
