package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
)

// newPromptCmd creates the prompt command.
func newPromptCmd() *cobra.Command {
	var writeFlag bool
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the fill-in prompt for PROJECT.md and MODULES.md",
		Long: `Print a prompt asking a coding agent to fill in PROJECT.md and MODULES.md
for this project. The prompt embeds both template sections and today's date.

With --write the prompt is saved to .memory-bank/FILL_PROMPT.md (or the
configured prompt_path), replacing any previous prompt.

Examples:
  membank prompt | pbcopy
  membank prompt --write
  membank prompt --date 2026-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPrompt(cmd, writeFlag, dateFlag)
		},
	}

	cmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the prompt into the project instead of printing it")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Date stamp to embed, YYYY-MM-DD (default: today)")
	return cmd
}

func runPrompt(cmd *cobra.Command, write bool, dateFlag string) error {
	env, err := newRunEnv(cmd)
	if err != nil {
		return err
	}

	stamp := bank.DateStamp(now())
	if dateFlag != "" {
		if _, err := time.Parse(bank.DateLayout, dateFlag); err != nil {
			exitErr := output.NewUserError(fmt.Sprintf("invalid --date %q: expected YYYY-MM-DD", dateFlag))
			env.printer.Error(exitErr)
			return exitErr
		}
		stamp = dateFlag
	}

	doc, err := env.loadTemplate()
	if err != nil {
		return err
	}
	content := bank.AssemblePrompt(doc.Content, stamp)

	if !write {
		if env.printer.IsJSON() {
			return env.printer.WriteJSON(map[string]any{"date": stamp, "content": content})
		}
		env.printer.Print("%s", content)
		return nil
	}

	dest, err := bank.WritePrompt(env.root, env.cfg.PromptPath, content)
	if err != nil {
		exitErr := output.NewSystemErrorWithCause("failed to write prompt", err)
		env.printer.Error(exitErr)
		return exitErr
	}
	env.logger.Debug("prompt written", "path", dest)

	return env.printer.Success(map[string]any{
		"status":  "ok",
		"date":    stamp,
		"path":    env.cfg.PromptPath,
		"bytes":   len(content),
		"message": fmt.Sprintf("Wrote %s (%s)", env.cfg.PromptPath, formatBytes(len(content))),
	})
}
