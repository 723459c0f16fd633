package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/config"
)

type configFlags struct {
	env bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration mdfix would use from the current directory as
YAML, after merging defaults, config files and MDFIX_* environment variables.
The files that contributed are listed in a comment at the top.

With --env, list the supported environment variables and their current
values instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.env {
				return outputEnvVars(cmd)
			}
			return outputEffectiveConfig(cmd)
		},
	}

	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")

	return cmd
}

func outputEffectiveConfig(cmd *cobra.Command) error {
	loadResult, _, err := resolveConfig(cmd, &config.Config{})
	if err != nil {
		return err
	}

	data, err := loadResult.Config.ToYAML()
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}

	var b strings.Builder
	if len(loadResult.LoadedFrom) == 0 {
		b.WriteString("# no configuration files found; showing defaults\n")
	}
	for _, path := range loadResult.LoadedFrom {
		b.WriteString("# from " + path + "\n")
	}
	b.Write(data)

	if _, err := io.WriteString(cmd.OutOrStdout(), b.String()); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func outputEnvVars(cmd *cobra.Command) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	vars := configloader.ListEnvVars()
	table := pretty.Table{
		Headers: []string{"VARIABLE", "VALUE", "DESCRIPTION"},
		Rows: lo.Map(configloader.SortedEnvVarNames(), func(name string, _ int) []string {
			return []string{name, os.Getenv(name), vars[name]}
		}),
	}

	if _, err := io.WriteString(out, styles.FormatTable(table, terminalWidth(out))); err != nil {
		return fmt.Errorf("write environment variables: %w", err)
	}
	return nil
}
