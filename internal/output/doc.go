// Package output renders membank results for people and for agents.
//
// Every command builds one Printer from its cobra context and routes all
// output through it:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, isTTY)
//	printer.Status(output.StatusOK, ".claude/CLAUDE.md", "1.2 kB")
//	printer.Error(err)
//
// In JSON mode the printer emits a single structured document per command
// and errors take the form {"error": "message", "code": N}. In human mode
// lipgloss styles are applied, and dropped again when the writer is not a
// terminal or colors are disabled with --color never.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success
//	output.ExitUserError   // 1: template missing, unknown section, bad flags
//	output.ExitSystemError // 2: I/O failure outside per-file handling
package output
