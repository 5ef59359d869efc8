package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/bank"
)

// sectionRow is one line of the sections listing.
type sectionRow struct {
	Name        string `json:"name"`
	Destination string `json:"destination,omitempty"`
	Bytes       int    `json:"bytes"`
}

// newSectionsCmd creates the sections command.
func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List the sections of the template",
		Long: `List every well-formed section of the template in document order,
with the file it is installed to. Sections without a destination are
listed but never installed; mapped sections the template lacks are
reported as missing.

Examples:
  membank sections
  membank sections --template ./my-template.md
  membank sections --json`,
		Args: cobra.NoArgs,
		RunE: runSections,
	}
}

func runSections(cmd *cobra.Command, _ []string) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	doc, err := env.loadTemplate()
	if err != nil {
		return err
	}

	mapping := bank.DefaultMapping()
	names := doc.Sections()
	present := make(map[string]bool, len(names))

	rows := make([]sectionRow, 0, len(names))
	for _, name := range names {
		present[name] = true
		body, _ := doc.Extract(name)
		row := sectionRow{Name: name, Bytes: len(body)}
		if entry, ok := bank.Lookup(mapping, name); ok {
			row.Destination = entry.Path
		}
		rows = append(rows, row)
	}

	missing := []string{}
	for _, entry := range mapping {
		if !present[entry.Name] {
			missing = append(missing, entry.Name)
		}
	}

	printer := env.printer
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"template": describeTemplate(doc),
			"sections": rows,
			"missing":  missing,
		})
	}

	printer.Section("Template")
	printer.KeyValue("source", doc.Describe())
	if doc.Meta.Name != "" {
		printer.KeyValue("name", doc.Meta.Name)
	}
	if doc.Meta.Description != "" {
		printer.KeyValue("description", doc.Meta.Description)
	}

	printer.Section("Sections")
	if len(rows) == 0 {
		printer.Println("  (none)")
	} else {
		table := make([][]string, 0, len(rows))
		for _, row := range rows {
			dest := row.Destination
			if dest == "" {
				dest = "(not installed)"
			}
			table = append(table, []string{row.Name, dest, formatBytes(row.Bytes)})
		}
		printer.Table([]string{"NAME", "DESTINATION", "SIZE"}, table)
	}

	for _, name := range missing {
		printer.Warn("template has no %s section", name)
	}
	return nil
}
