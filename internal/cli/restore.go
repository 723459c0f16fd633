package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/runner"
)

type restoreFlags struct {
	fileFlags
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore <paths...>",
		Short: "Undo fixes from .mdfix.bak backups",
		Long: `Copy the .mdfix.bak backup written by "mdfix fix --backup" back over each
Markdown file found under the given paths. Files without a backup are left
alone. Backups are kept after restoring.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, flags)
		},
	}

	flags.fileFlags.register(cmd)

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, flags *restoreFlags) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no input paths", ErrUsage)
	}

	cliCfg := &config.Config{}
	flags.fileFlags.apply(cmd, cliCfg)
	if err := checkFlags(cliCfg); err != nil {
		return err
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger := logging.NewInteractive()
	restored, err := runner.Restore(commandContext(cmd), runnerOptions(cfg, args, workDir))
	for _, path := range restored {
		logger.Info("restored", logging.FieldPath, runner.Relative(workDir, path))
	}
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if len(restored) == 0 {
		logger.Info("no backups found")
	}
	return nil
}
