package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/membank/internal/bank"
)

// --- Install tool ---

// InstallInput is the input for the install tool. Unset fields fall back to
// the policy the server was started with.
type InstallInput struct {
	Force        *bool `json:"force,omitempty"         jsonschema:"overwrite existing files"`
	SkipExisting *bool `json:"skip_existing,omitempty" jsonschema:"never touch existing files; takes precedence over force"`
	DryRun       bool  `json:"dry_run,omitempty"       jsonschema:"report what would be written without writing"`
	Prompt       bool  `json:"prompt,omitempty"        jsonschema:"also write the fill-in prompt"`
}

// InstallOutput is the output for the install tool.
type InstallOutput struct {
	Root     string         `json:"root"             jsonschema:"project directory files were installed into"`
	DryRun   bool           `json:"dry_run"          jsonschema:"whether this was a dry run"`
	Policy   bank.Policy    `json:"policy"           jsonschema:"overwrite policy applied"`
	Outcomes []bank.Outcome `json:"outcomes"         jsonschema:"one outcome per mapped file, in install order"`
	Written  int            `json:"written"          jsonschema:"number of files written (or that would be written)"`
	Skipped  int            `json:"skipped"          jsonschema:"number of existing files left untouched"`
	Missing  int            `json:"missing"          jsonschema:"number of mapped sections absent from the template"`
	Failed   int            `json:"failed"           jsonschema:"number of files that could not be written"`
	Prompt   string         `json:"prompt,omitempty" jsonschema:"path of the fill-in prompt, when requested"`
}

func handleInstall(settings Settings) mcp.ToolHandlerFor[InstallInput, InstallOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InstallInput) (*mcp.CallToolResult, InstallOutput, error) {
		policy := settings.Policy
		if input.Force != nil {
			policy.Force = *input.Force
		}
		if input.SkipExisting != nil {
			policy.SkipExisting = *input.SkipExisting
		}

		result := bank.Install(settings.Root, settings.Template.Content, settings.mapping(), policy, bank.Options{
			DryRun: input.DryRun,
			Logger: settings.Logger,
		})

		written := result.Count(bank.StatusWritten)
		if input.DryRun {
			written = result.Count(bank.StatusWouldWrite)
		}
		out := InstallOutput{
			Root:     settings.Root,
			DryRun:   input.DryRun,
			Policy:   policy,
			Outcomes: result.Outcomes,
			Written:  written,
			Skipped:  result.Count(bank.StatusSkipped),
			Missing:  result.Count(bank.StatusMissing),
			Failed:   result.Count(bank.StatusFailed),
		}

		if input.Prompt {
			out.Prompt = settings.promptPath()
			if !input.DryRun {
				content := bank.AssemblePrompt(settings.Template.Content, bank.DateStamp(settings.now()))
				if _, err := bank.WritePrompt(settings.Root, out.Prompt, content); err != nil {
					return nil, out, fmt.Errorf("writing prompt: %w", err)
				}
			}
		}

		return nil, out, nil
	}
}

// --- Prompt tool ---

// PromptInput is the input for the prompt tool.
type PromptInput struct {
	Write bool   `json:"write,omitempty" jsonschema:"also write the prompt into the project"`
	Date  string `json:"date,omitempty"  jsonschema:"date stamp in YYYY-MM-DD form (default today)"`
}

// PromptOutput is the output for the prompt tool.
type PromptOutput struct {
	Date    string `json:"date"           jsonschema:"date stamp embedded in the prompt"`
	Content string `json:"content"        jsonschema:"the assembled prompt"`
	Path    string `json:"path,omitempty" jsonschema:"where the prompt was written, when write=true"`
}

func handlePrompt(settings Settings) mcp.ToolHandlerFor[PromptInput, PromptOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input PromptInput) (*mcp.CallToolResult, PromptOutput, error) {
		date := input.Date
		if date == "" {
			date = bank.DateStamp(settings.now())
		} else if _, err := time.Parse(bank.DateLayout, date); err != nil {
			return nil, PromptOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
		}

		out := PromptOutput{
			Date:    date,
			Content: bank.AssemblePrompt(settings.Template.Content, date),
		}
		if input.Write {
			out.Path = settings.promptPath()
			if _, err := bank.WritePrompt(settings.Root, out.Path, out.Content); err != nil {
				return nil, PromptOutput{}, fmt.Errorf("writing prompt: %w", err)
			}
		}
		return nil, out, nil
	}
}
