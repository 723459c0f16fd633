package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/fixer"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a markdownlint configuration to .mdfix.yml",
		Long: `Convert an existing markdownlint configuration file (.markdownlint.json,
.markdownlint.jsonc, .markdownlint.yaml or .markdownlint.yml) to .mdfix.yml.

Rules that have a matching stage are enabled or disabled accordingly, and
MD013 line_length and MD029 style carry over. Rules mdfix has no stage for
are skipped.

If no input file is specified, the current directory is searched.

Examples:
  mdfix migrate                       Auto-detect and convert
  mdfix migrate .markdownlint.json    Convert a specific file
  mdfix migrate --output custom.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd, input, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, inputPath string, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindMarkdownlintConfig(cwd)
		if inputPath == "" {
			return errors.New("no markdownlint configuration file found in current directory")
		}

		logger.Info("found markdownlint config", logging.FieldPath, inputPath)
	}

	result, err := configloader.ConvertMarkdownlintConfig(inputPath, fixer.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.Skipped) > 0 {
		logger.Info("rules without a stage were skipped", "rules", result.Skipped)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	header := configloader.MigrationHeader(inputPath)
	if err := configloader.WriteConfig(commandContext(cmd), result.Config, absOutput, header, flags.force); err != nil {
		return err
	}

	logger.Info("migration complete", logging.FieldPath, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
