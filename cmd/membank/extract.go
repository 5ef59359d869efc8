package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
)

// newExtractCmd creates the extract command.
func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <section>",
		Short: "Print one section of the template",
		Long: `Print the body of one template section exactly as it would be installed.

The body is the text between the section's BEGIN and END markers with
surrounding blank lines removed and a single trailing newline.

Examples:
  membank extract PROJECT.md
  membank extract TASK.md > TASK.md
  membank extract CLAUDE.md --json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSectionNames,
		RunE:              runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	doc, err := env.loadTemplate()
	if err != nil {
		return err
	}

	name := args[0]
	body, ok := doc.Extract(name)
	if !ok {
		msg := fmt.Sprintf("section %q not found in template", name)
		if names := doc.Sections(); len(names) > 0 {
			msg += " (available: " + strings.Join(names, ", ") + ")"
		}
		exitErr := output.NewUserError(msg)
		env.printer.Error(exitErr)
		return exitErr
	}

	if env.printer.IsJSON() {
		data := map[string]any{"name": name, "body": body}
		if entry, ok := bank.Lookup(bank.DefaultMapping(), name); ok {
			data["destination"] = entry.Path
		}
		return env.printer.WriteJSON(data)
	}

	env.printer.Print("%s", body)
	return nil
}

// completeSectionNames offers the section names of the default template.
func completeSectionNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, 4)
	for _, entry := range bank.DefaultMapping() {
		names = append(names, entry.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
