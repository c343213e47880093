package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/postlint/internal/configloader"
	"github.com/yaklabco/postlint/internal/logging"
	"github.com/yaklabco/postlint/pkg/config"
	"github.com/yaklabco/postlint/pkg/gate"
	_ "github.com/yaklabco/postlint/pkg/gate/rules" // Register built-in rules
	"github.com/yaklabco/postlint/pkg/reporter"
	"github.com/yaklabco/postlint/pkg/runner"
)

// ErrCheckFailed is returned when a posting failed the gate.
var ErrCheckFailed = errors.New("check failed")

type checkFlags struct {
	all          bool
	dryRun       bool
	printDry     bool
	strict       bool
	failOnChange bool
	format       string
	jobs         int
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check blog postings",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.all, "all", "a", false,
		"process all postings, not only those newer than the config file")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false,
		"don't change anything")
	cmd.Flags().BoolVarP(&flags.printDry, "print", "p", false,
		"print resulting content in dry-run mode")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"treat warnings as failures for the exit code")
	cmd.Flags().BoolVar(&flags.failOnChange, "fail-on-change", false,
		"fail when a posting was (or would be) rewritten")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}

const checkLongDescription = `Check Markdown blog postings before publishing.

Without arguments, scans the Hugo content directories for postings newer
than the config file (plus drafts). Arguments name individual postings or
page bundle directories; a directory stands for its index.md.

Examples:
  postlint check                       # Check recent postings
  postlint check --all                 # Check everything
  postlint check content/post/foo/     # Check one page bundle
  postlint check -n -p some-post.md    # Dry-run, print the result
  postlint check --format json         # Output as JSON for CI`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
	})
	if err != nil {
		return errors.Join(ErrConfig, err)
	}

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	cfg := loadResult.Config
	cfg.All = flags.all
	cfg.DryRun = flags.dryRun
	cfg.PrintDry = flags.printDry
	cfg.Strict = flags.strict
	cfg.FailOnChange = flags.failOnChange
	cfg.Jobs = flags.jobs
	cfg.Format = config.OutputFormat(format.String())

	logger.Debug("configuration loaded",
		logging.FieldConfigFile, loadResult.Path,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldAll, cfg.All,
		logging.FieldJobs, cfg.Jobs,
	)

	engine := gate.NewEngine(gate.DefaultRegistry)
	pipeline := gate.NewPipeline(engine)
	checkRunner := runner.New(pipeline)

	result, err := checkRunner.Run(ctx, runner.Options{
		Paths:         args,
		WorkingDir:    workDir,
		ConfigModTime: loadResult.ModTime,
		Jobs:          cfg.Jobs,
		Config:        cfg,
	})
	if err != nil {
		if errors.Is(err, runner.ErrNotMarkdown) {
			return errors.Join(ErrUsage, err)
		}
		return errors.Join(errors.New("check run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.DryRun && cfg.PrintDry {
		printDryRunContent(cmd, result)
	}

	if ExitCodeFromResult(result, cfg) != ExitSuccess {
		return ErrCheckFailed
	}

	return nil
}

// printDryRunContent prints the would-be content of every changed posting.
func printDryRunContent(cmd *cobra.Command, result *runner.Result) {
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		fr := file.Result.FileResult
		if !fr.Changed {
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n%s", file.Path, fr.Content)
	}
}
