// Package mcp provides a Model Context Protocol server for membank.
// It exposes template inspection and memory bank installation as MCP tools.
package mcp

import (
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/template"
)

// Settings fix what every tool call operates on. They are resolved once when
// the server starts, the same way a single CLI run resolves them.
type Settings struct {
	// Root is the target directory files are installed into.
	Root string
	// Template is the resolved template document.
	Template *template.Document
	// Mapping is the section-to-destination table. Nil means bank.DefaultMapping.
	Mapping []bank.Entry
	// Policy is the default overwrite policy; tool input may tighten or relax it.
	Policy bank.Policy
	// PromptPath is where the prompt tool writes, relative to Root.
	PromptPath string
	// Logger receives installer debug records. Nil discards them.
	Logger *slog.Logger
	// Now is the clock for prompt date stamps. Nil means time.Now.
	Now func() time.Time
}

func (s Settings) mapping() []bank.Entry {
	if s.Mapping == nil {
		return bank.DefaultMapping()
	}
	return s.Mapping
}

func (s Settings) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Settings) promptPath() string {
	if s.PromptPath == "" {
		return bank.DefaultPromptPath
	}
	return s.PromptPath
}

// NewServer creates an MCP server with all membank tools registered.
func NewServer(version string, settings Settings) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "membank",
		Version: version,
	}, nil)
	registerTools(server, settings)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write files.
// Writes may replace existing content (install with force, prompt).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all membank tools to the server.
func registerTools(server *mcp.Server, settings Settings) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "sections",
		Description: "List the sections of the memory bank template, in template order, with the file each one is installed to.",
		Annotations: readOnlyAnnotations(),
	}, handleSections(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Return the body of one template section by name (for example PROJECT.md) without writing anything.",
		Annotations: readOnlyAnnotations(),
	}, handleExtract(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "install",
		Description: "Install the memory bank files into the project. Existing files are skipped unless force=true; skip_existing=true always wins. Use dry_run=true to preview.",
		Annotations: writeAnnotations(),
	}, handleInstall(settings))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "prompt",
		Description: "Build the fill-in prompt that asks an agent to complete PROJECT.md and MODULES.md. Set write=true to also save it to the project.",
		Annotations: writeAnnotations(),
	}, handlePrompt(settings))
}
