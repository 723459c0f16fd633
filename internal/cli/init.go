package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/fixer"
	"github.com/yaklabco/mdfix/pkg/fsutil"
)

const defaultConfigFile = ".mdfix.yml"

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	stages bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented .mdfix.yml",
		Long: `Create a new .mdfix.yml configuration file in the current directory
holding the defaults, with every option documented in comments.

Examples:
  mdfix init                      Create .mdfix.yml
  mdfix init --stages             Also list every stage under "stages"
  mdfix init --output docs.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.stages, "stages", false, "list every stage in the generated file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	opts := config.TemplateOptions{}
	if flags.stages {
		opts.Stages = fixer.StageInfos(fixer.DefaultRegistry)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, config.GenerateTemplate(opts), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdfix stages' to see every stage you can switch off")

	return nil
}
