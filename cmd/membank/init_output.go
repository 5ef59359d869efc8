package main

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
	"github.com/gorewood/membank/internal/template"
)

// printInstallHeader prints the banner before the per-file lines.
func printInstallHeader(printer *output.Printer, root string, doc *template.Document, dryRun bool) {
	styles := printer.Styles()
	heading := "Initializing memory bank in"
	if dryRun {
		heading = "Dry run: memory bank in"
	}
	printer.Println()
	printer.Print("%s %s\n", styles.Bold.Render(heading), styles.Dim.Render(root))
	printer.Print("%s\n", styles.Dim.Render("template: "+doc.Describe()))
	printer.Println()
}

// printInstallResult prints one line per mapping entry, the prompt line and the summary.
func printInstallResult(printer *output.Printer, result bank.Result, prompt *promptReport, dryRun bool) {
	for _, o := range result.Outcomes {
		printOutcome(printer, o)
	}
	if prompt != nil {
		printPromptOutcome(printer, prompt)
	}
	printSummary(printer, result, dryRun)
}

func printOutcome(printer *output.Printer, o bank.Outcome) {
	switch o.Status {
	case bank.StatusWritten:
		printer.Status(output.StatusOK, o.Path, joinDetail(formatBytes(o.Bytes), o.Reason))
	case bank.StatusWouldWrite:
		printer.Status(output.StatusPlan, o.Path, joinDetail("would write "+formatBytes(o.Bytes), o.Reason))
	case bank.StatusSkipped:
		printer.Status(output.StatusSkip, o.Path, "skipped: "+o.Reason)
	case bank.StatusMissing:
		printer.Status(output.StatusWarn, o.Path, "template section "+o.Name+" not found")
	case bank.StatusFailed:
		printer.Status(output.StatusFail, o.Path, o.Reason)
	}
}

func printPromptOutcome(printer *output.Printer, prompt *promptReport) {
	switch prompt.Status {
	case string(bank.StatusWritten):
		printer.Status(output.StatusOK, prompt.Path, "fill-in prompt")
	case string(bank.StatusWouldWrite):
		printer.Status(output.StatusPlan, prompt.Path, "would write fill-in prompt")
	default:
		printer.Status(output.StatusFail, prompt.Path, prompt.Error)
	}
}

// printSummary prints counts and, when something was written, the next step.
func printSummary(printer *output.Printer, result bank.Result, dryRun bool) {
	styles := printer.Styles()

	written := result.Count(bank.StatusWritten)
	verb := "written"
	if dryRun {
		written = result.Count(bank.StatusWouldWrite)
		verb = "to write"
	}

	parts := []string{
		pluralFiles(written) + " " + verb + " (" + formatBytes(result.BytesWritten()) + ")",
	}
	if n := result.Count(bank.StatusSkipped); n > 0 {
		parts = append(parts, pluralFiles(n)+" skipped")
	}
	if n := result.Count(bank.StatusMissing); n > 0 {
		parts = append(parts, humanize.Comma(int64(n))+" missing from template")
	}
	if n := result.Count(bank.StatusFailed); n > 0 {
		parts = append(parts, styles.Error.Render(pluralFiles(n)+" failed"))
	}

	printer.Println()
	if dryRun {
		printer.Print("%s %s\n", styles.Bold.Render("Dry run:"), strings.Join(parts, ", "))
		return
	}
	printer.Print("%s %s\n", styles.Success.Render("Done!"), strings.Join(parts, ", "))

	if written > 0 {
		printer.Print("%s %s\n", styles.Dim.Render("Tip: ask Claude to"),
			styles.Accent.Render(`"Read .memory-bank/MODULES.md"`)+styles.Dim.Render(" to get started."))
	}
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}

func joinDetail(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// formatBytes renders a file size for humans, e.g. "1.2 kB".
func formatBytes(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
