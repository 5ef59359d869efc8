package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
	"github.com/gorewood/membank/internal/template"
)

// Document states reported by status.
const (
	stateAbsent   = "absent"
	stateCurrent  = "current"
	stateModified = "modified"
)

// documentStatus describes one mapped document.
type documentStatus struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Exists     bool       `json:"exists"`
	Bytes      int64      `json:"bytes,omitempty"`
	ModTime    *time.Time `json:"mod_time,omitempty"`
	InTemplate bool       `json:"in_template"`
	State      string     `json:"state"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which memory bank files exist",
		Long: `Show, for every memory bank document, whether the file exists in the
target directory and whether the template provides its section.

States:
  absent     the file does not exist yet
  current    the file matches the template section
  modified   the file differs from the template (usually: it has been filled in)

Examples:
  membank status
  membank status --dir ../other-project
  membank status --json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}
	doc, err := env.loadTemplate()
	if err != nil {
		return err
	}

	docs, err := gatherStatus(env.root, doc.Content, bank.DefaultMapping())
	if err != nil {
		exitErr := output.NewSystemErrorWithCause(err.Error(), err)
		env.printer.Error(exitErr)
		return exitErr
	}

	if env.printer.IsJSON() {
		return env.printer.WriteJSON(map[string]any{
			"root":      env.root,
			"template":  describeTemplate(doc),
			"documents": docs,
		})
	}

	printHumanStatus(env.printer, env.root, docs)
	return nil
}

// gatherStatus stats each mapped destination and compares it to its section.
func gatherStatus(root, document string, mapping []bank.Entry) ([]documentStatus, error) {
	docs := make([]documentStatus, 0, len(mapping))
	for _, entry := range mapping {
		body, inTemplate := template.Extract(document, entry.Name)
		status := documentStatus{
			Name:       entry.Name,
			Path:       entry.Path,
			InTemplate: inTemplate,
			State:      stateAbsent,
		}

		dest := filepath.Join(root, filepath.FromSlash(entry.Path))
		info, err := os.Stat(dest)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			docs = append(docs, status)
			continue
		case err != nil:
			return nil, err
		}

		modTime := info.ModTime()
		status.Exists = true
		status.Bytes = info.Size()
		status.ModTime = &modTime
		status.State = stateModified

		if inTemplate {
			data, err := os.ReadFile(dest)
			if err != nil {
				return nil, err
			}
			if string(data) == body {
				status.State = stateCurrent
			}
		}
		docs = append(docs, status)
	}
	return docs, nil
}

func printHumanStatus(printer *output.Printer, root string, docs []documentStatus) {
	printer.Section("Memory bank")
	printer.KeyValue("root", root)
	printer.Println()

	rows := make([][]string, 0, len(docs))
	present := 0
	for _, d := range docs {
		size, modified := "-", "-"
		if d.Exists {
			present++
			size = humanize.Bytes(uint64(d.Bytes))
			modified = humanize.Time(*d.ModTime)
		}
		section := "yes"
		if !d.InTemplate {
			section = "missing"
		}
		rows = append(rows, []string{d.Path, d.State, size, modified, section})
	}
	printer.Table([]string{"FILE", "STATE", "SIZE", "MODIFIED", "IN TEMPLATE"}, rows)

	printer.Println()
	if present < len(docs) {
		printer.Print("%s\n", printer.Styles().Dim.Render("Run 'membank init' to create missing files."))
	}
}
