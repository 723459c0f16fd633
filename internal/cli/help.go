package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	Example    lipgloss.Style

	// Dim is used for flag value types and defaults.
	Dim lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command:    plain,
			Heading:    plain,
			Subcommand: plain,
			Flag:       plain,
			Example:    plain,
			Dim:        plain,
		}
	}
	return &HelpStyles{
		Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Example:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if _, err := io.WriteString(command.OutOrStdout(), h.Help(command)); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if _, err := io.WriteString(command.OutOrStderr(), h.Usage(command)); err != nil {
			return fmt.Errorf("write usage: %w", err)
		}
		return nil
	})
}

// Help renders the description of cmd followed by its usage.
func (h *HelpFormatter) Help(cmd *cobra.Command) string {
	var b strings.Builder
	if desc := cmd.Long; desc != "" || cmd.Short != "" {
		if desc == "" {
			desc = cmd.Short
		}
		b.WriteString(trimTrailingWhitespaces(desc))
		b.WriteString("\n\n")
	}
	b.WriteString(h.Usage(cmd))
	return b.String()
}

// Usage renders the usage line, examples, subcommands and flags of cmd.
func (h *HelpFormatter) Usage(cmd *cobra.Command) string {
	s := h.styles
	var b strings.Builder

	b.WriteString(s.Heading.Render("Usage:") + "\n")
	if cmd.Runnable() {
		b.WriteString("  " + s.Command.Render(cmd.UseLine()) + "\n")
	}
	if cmd.HasAvailableSubCommands() {
		b.WriteString("  " + s.Command.Render(cmd.CommandPath()+" [command]") + "\n")
	}

	if len(cmd.Aliases) > 0 {
		b.WriteString("\n" + s.Heading.Render("Aliases:") + "\n")
		b.WriteString("  " + strings.Join(cmd.Aliases, ", ") + "\n")
	}

	if cmd.HasExample() {
		b.WriteString("\n" + s.Heading.Render("Examples:") + "\n")
		b.WriteString(s.Example.Render(cmd.Example) + "\n")
	}

	if cmd.HasAvailableSubCommands() {
		b.WriteString("\n" + s.Heading.Render("Available Commands:") + "\n")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			b.WriteString("  " + s.Subcommand.Render(rpad(sub.Name(), sub.NamePadding())) + " " + sub.Short + "\n")
		}
	}

	if cmd.HasAvailableLocalFlags() {
		b.WriteString("\n" + s.Heading.Render("Flags:") + "\n")
		b.WriteString(h.flagUsages(cmd.LocalFlags()))
	}

	if cmd.HasAvailableInheritedFlags() {
		b.WriteString("\n" + s.Heading.Render("Global Flags:") + "\n")
		b.WriteString(h.flagUsages(cmd.InheritedFlags()))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "\nUse \"%s\" for more information about a command.\n",
			s.Command.Render(cmd.CommandPath()+" [command] --help"))
	}

	return b.String()
}

type flagLine struct {
	name    string
	varName string
	usage   string
	def     string
}

// flagUsages lists the visible flags of fs with their names aligned.
func (h *HelpFormatter) flagUsages(fs *pflag.FlagSet) string {
	var (
		lines []flagLine
		width int
	)
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		line := flagLine{name: "    --" + flag.Name}
		if flag.Shorthand != "" {
			line.name = "-" + flag.Shorthand + ", --" + flag.Name
		}
		line.varName, line.usage = pflag.UnquoteUsage(flag)
		line.def = defaultText(flag)

		n := len(line.name)
		if line.varName != "" {
			n += 1 + len(line.varName)
		}
		width = max(width, n)
		lines = append(lines, line)
	})

	var b strings.Builder
	for _, line := range lines {
		left := h.styles.Flag.Render(line.name)
		n := len(line.name)
		if line.varName != "" {
			left += " " + h.styles.Dim.Render(line.varName)
			n += 1 + len(line.varName)
		}
		b.WriteString("  " + left + strings.Repeat(" ", width-n) + "   " + line.usage)
		if line.def != "" {
			b.WriteString(" " + h.styles.Dim.Render("(default "+line.def+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// defaultText returns the default of flag as shown in help, or "" when the
// default is a zero value.
func defaultText(flag *pflag.Flag) string {
	switch flag.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if flag.Value.Type() == "string" {
		return fmt.Sprintf("%q", flag.DefValue)
	}
	return flag.DefValue
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
