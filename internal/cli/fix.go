package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
	_ "github.com/yaklabco/mdfix/pkg/fixer/stages" // Register built-in stages
	"github.com/yaklabco/mdfix/pkg/reporter"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// stdinPath is the path argument that selects standard input.
const stdinPath = "-"

type fixFlags struct {
	stageFlags
	fileFlags

	dryRun  bool
	check   bool
	format  string
	verbose bool
	compact bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix <paths...>",
		Short: "Fix Markdown files in place",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, flags)
		},
	}

	flags.stageFlags.register(cmd)
	flags.fileFlags.register(cmd)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&flags.check, "check", false,
		"exit with status 1 if any file would change (implies --dry-run)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list unchanged files too")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON output")

	return cmd
}

const fixLongDescription = `Fix Markdown files in place.

Every enabled stage runs over each file in a fixed order: whitespace cleanup,
block spacing, code fence languages, duplicate headings, list markers, bare
URLs, emphasis style, line wrapping and the final newline. Directories are
walked recursively for .md and .markdown files.

Use "-" as the only path to fix standard input and write the result to
standard output.

Examples:
  mdfix fix README.md                 # Fix a single file
  mdfix fix docs/                     # Fix every Markdown file under docs
  mdfix fix --dry-run --format diff . # Show the changes as a diff
  mdfix fix --check .                 # Fail in CI if anything would change
  mdfix fix --disable MD013 docs/     # Skip line wrapping
  cat notes.md | mdfix fix -          # Fix standard input`

func (f *fixFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	f.stageFlags.apply(cmd, cfg)
	f.fileFlags.apply(cmd, cfg)
	cfg.DryRun = f.dryRun
	cfg.Check = f.check
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	return cfg
}

func runFix(cmd *cobra.Command, args []string, flags *fixFlags) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no input paths; pass files, directories or - for stdin", ErrUsage)
	}
	if len(args) > 1 && slices.Contains(args, stdinPath) {
		return fmt.Errorf("%w: - cannot be combined with other paths", ErrUsage)
	}

	cliCfg := flags.cliConfig(cmd)
	if err := checkFlags(cliCfg); err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	pipeline, err := newPipeline(cmd, cfg)
	if err != nil {
		return err
	}

	if args[0] == stdinPath {
		return fixStdin(cmd, pipeline, cfg)
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	runOpts := runnerOptions(cfg, args, workDir)

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, runErr := runner.New(pipeline).Run(ctx, runOpts)
	if result == nil {
		return fmt.Errorf("fix run failed: %w", runErr)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		DryRun:      runOpts.Pipeline.DryRun,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("fix run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldFixes, result.Stats.FixesApplied,
	)

	if runErr != nil {
		return runErr
	}
	return resultError(result, cfg.Check)
}

// fixStdin fixes standard input and writes the document to standard output.
// With --check nothing is written; the exit status tells whether the input
// would change.
func fixStdin(cmd *cobra.Command, pipeline *fixer.Pipeline, cfg *config.Config) error {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return fmt.Errorf("%w: refusing to read Markdown from a terminal; pipe a document into -", ErrUsage)
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	opts := fixer.PipelineOptionsFromConfig(cfg)
	result, err := pipeline.ProcessContent(commandContext(cmd), "<stdin>", content, opts)
	if err != nil {
		return fmt.Errorf("fix stdin: %w", err)
	}

	logger := logging.FromContext(commandContext(cmd))
	if result.Skipped {
		logger.Warn("stdin left unchanged", logging.FieldReason, result.SkipReason)
	}
	logger.Debug("stdin fixed", logging.FieldFixes, result.Fix.FixCount)

	if cfg.Check {
		if result.Modified && !result.Skipped {
			return ErrChangesFound
		}
		return nil
	}

	output := content
	if result.Modified && !result.Skipped {
		output = []byte(result.Fix.Text)
	}
	if _, err := cmd.OutOrStdout().Write(output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
