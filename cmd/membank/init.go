package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
	"github.com/gorewood/membank/internal/template"
)

// installFlags holds flags that only affect this invocation. Policy flags
// (--force, --skip-existing, --prompt) are read through config so they can
// also come from files and MEMBANK_* variables.
type installFlags struct {
	dryRun bool
}

// installReport is the JSON result of an install run.
type installReport struct {
	Status   string         `json:"status"`
	Root     string         `json:"root"`
	DryRun   bool           `json:"dry_run"`
	Policy   bank.Policy    `json:"policy"`
	Template templateInfo   `json:"template"`
	Written  []string       `json:"written"`
	Skipped  []string       `json:"skipped"`
	Missing  []string       `json:"missing"`
	Failed   []string       `json:"failed"`
	Outcomes []bank.Outcome `json:"outcomes"`
	Prompt   *promptReport  `json:"prompt,omitempty"`
}

// promptReport describes the fill-in prompt written alongside the install.
type promptReport struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &installFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Install the memory bank into the current project",
		Long: `Install the memory bank documents into the target directory.

Each document is extracted from its section of the template and written to
a fixed path. The .claude/ and .memory-bank/ directories are created as needed.

Existing files:
  (default)          skipped, reported with a hint to use --force
  --force, -f        overwritten with the template section
  --skip-existing, -s
                     skipped silently; takes precedence over --force

A section missing from the template is reported and its file is not written.
The command never fails because of an existing file or a missing section.

Examples:
  membank init                 # Install, keeping existing files
  membank init --force         # Overwrite existing files
  membank init --prompt        # Also write .memory-bank/FILL_PROMPT.md
  membank init --dry-run       # Show what would be written
  membank init --template ./my-template.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInstall(cmd, flags)
		},
	}

	bindInstallFlags(cmd, flags)
	return cmd
}

// bindInstallFlags registers install flags on cmd. Both the root command and
// init carry them.
func bindInstallFlags(cmd *cobra.Command, flags *installFlags) {
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolP("skip-existing", "s", false, "Skip existing files (takes precedence over --force)")
	cmd.Flags().BoolP("prompt", "p", false, "Also write the fill-in prompt to "+bank.DefaultPromptPath)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without writing")
}

// runInstall executes an install run.
func runInstall(cmd *cobra.Command, flags *installFlags) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	doc, err := env.loadTemplate()
	if err != nil {
		return err
	}

	printer := env.printer
	if !printer.IsJSON() {
		printInstallHeader(printer, env.root, doc, flags.dryRun)
	}

	result := bank.Install(env.root, doc.Content, bank.DefaultMapping(), env.cfg.Policy(), bank.Options{
		DryRun: flags.dryRun,
		Logger: env.logger,
	})

	var prompt *promptReport
	if env.cfg.Prompt {
		prompt = installPrompt(env, doc, flags.dryRun)
	}

	report := buildInstallReport(env, doc, result, prompt, flags.dryRun)
	if printer.IsJSON() {
		if err := printer.WriteJSON(report); err != nil {
			return err
		}
	} else {
		printInstallResult(printer, result, prompt, flags.dryRun)
	}

	return installError(result, prompt)
}

// installPrompt assembles the fill-in prompt and writes it, unconditionally
// replacing any previous prompt file.
func installPrompt(env *runEnv, doc *template.Document, dryRun bool) *promptReport {
	report := &promptReport{Path: env.cfg.PromptPath}
	content := bank.AssemblePrompt(doc.Content, bank.DateStamp(now()))

	if dryRun {
		report.Status = string(bank.StatusWouldWrite)
		return report
	}

	if _, err := bank.WritePrompt(env.root, env.cfg.PromptPath, content); err != nil {
		env.logger.Debug("prompt write failed", "path", env.cfg.PromptPath, "error", err)
		report.Status = string(bank.StatusFailed)
		report.Error = err.Error()
		return report
	}
	report.Status = string(bank.StatusWritten)
	return report
}

func buildInstallReport(env *runEnv, doc *template.Document, result bank.Result, prompt *promptReport, dryRun bool) installReport {
	written := result.Paths(bank.StatusWritten)
	if dryRun {
		written = result.Paths(bank.StatusWouldWrite)
	}
	status := "ok"
	if result.Count(bank.StatusFailed) > 0 {
		status = "partial"
	}
	return installReport{
		Status:   status,
		Root:     env.root,
		DryRun:   dryRun,
		Policy:   env.cfg.Policy(),
		Template: describeTemplate(doc),
		Written:  nonNil(written),
		Skipped:  nonNil(result.Paths(bank.StatusSkipped)),
		Missing:  nonNil(result.MissingNames()),
		Failed:   nonNil(result.Paths(bank.StatusFailed)),
		Outcomes: result.Outcomes,
		Prompt:   prompt,
	}
}

// installError turns write failures into a system error once every entry has
// been processed. Skips and missing sections are not errors.
func installError(result bank.Result, prompt *promptReport) error {
	failed := result.Count(bank.StatusFailed)
	if prompt != nil && prompt.Status == string(bank.StatusFailed) {
		failed++
	}
	if failed == 0 {
		return nil
	}
	return output.NewSystemError(fmt.Sprintf("%d file(s) could not be written", failed))
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
