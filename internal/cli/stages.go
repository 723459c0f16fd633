package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/fixer"
)

const formatJSON = "json"

// stageInfo represents a stage in JSON output.
type stageInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Order       int      `json:"order"`
	Tags        []string `json:"tags"`
}

type stagesFlags struct {
	format string
	tag    string
}

func newStagesCommand() *cobra.Command {
	flags := &stagesFlags{}

	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the fix stages in pipeline order",
		Long: `List every fix stage with its markdownlint ID, name, tags and what it
rewrites. Stages run in the order shown. Any ID, name or tag can be passed to
--enable and --disable, or used as a key under "stages" in .mdfix.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages := fixer.DefaultRegistry.Stages()
			if flags.tag != "" {
				stages = fixer.DefaultRegistry.Tagged(flags.tag)
			}

			switch flags.format {
			case formatJSON:
				return outputStagesJSON(cmd.OutOrStdout(), stages)
			case "text":
				return outputStagesTable(cmd, stages)
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list stages carrying this tag")

	return cmd
}

func outputStagesTable(cmd *cobra.Command, stages []fixer.Stage) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	table := pretty.Table{
		Headers: []string{"#", "ID", "NAME", "TAGS", "DESCRIPTION"},
		Rows: lo.Map(stages, func(stage fixer.Stage, i int) []string {
			return []string{
				strconv.Itoa(i + 1),
				stage.ID(),
				stage.Name(),
				strings.Join(stage.Tags(), ","),
				stage.Description(),
			}
		}),
	}

	if _, err := io.WriteString(out, styles.FormatTable(table, terminalWidth(out))); err != nil {
		return fmt.Errorf("write stages: %w", err)
	}
	return nil
}

// terminalWidth returns the width of w when it is a terminal, 0 otherwise.
func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// outputStagesJSON outputs stages as a JSON array.
func outputStagesJSON(w io.Writer, stages []fixer.Stage) error {
	infos := lo.Map(stages, func(stage fixer.Stage, _ int) stageInfo {
		return stageInfo{
			ID:          stage.ID(),
			Name:        stage.Name(),
			Description: stage.Description(),
			Order:       stage.Order(),
			Tags:        stage.Tags(),
		}
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding stages: %w", err)
	}
	return nil
}
