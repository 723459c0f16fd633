package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/runner"
)

type watchFlags struct {
	stageFlags
	fileFlags

	verbose bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <paths...>",
		Short: "Fix Markdown files whenever they are saved",
		Long: `Fix the given files once, then keep fixing them each time they are
written until interrupted. New Markdown files created in the watched
directories are picked up too. Subdirectories created later are not.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	flags.stageFlags.register(cmd)
	flags.fileFlags.register(cmd)
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "report unchanged files too")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no input paths", ErrUsage)
	}

	cliCfg := &config.Config{}
	flags.stageFlags.apply(cmd, cliCfg)
	flags.fileFlags.apply(cmd, cliCfg)
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

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	logging.NewInteractive().Info("watching for changes; press Ctrl+C to stop", logging.FieldPaths, args)

	report := func(outcome runner.FileOutcome) {
		_, _ = io.WriteString(out, styles.FormatOutcome(runner.Relative(workDir, outcome.Path), outcome, flags.verbose))
	}

	if err := runner.New(pipeline).Watch(commandContext(cmd), runnerOptions(cfg, args, workDir), report); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
