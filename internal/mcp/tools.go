package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/membank/internal/bank"
)

// --- Shared types ---

// TemplateRef describes the template the server was started with.
type TemplateRef struct {
	Source  string `json:"source"            jsonschema:"where the template came from: explicit, install or built-in"`
	Path    string `json:"path,omitempty"    jsonschema:"template file path, empty for the built-in template"`
	Name    string `json:"name,omitempty"    jsonschema:"template name from frontmatter"`
	Version int    `json:"version,omitempty" jsonschema:"template version from frontmatter"`
}

func templateRef(settings Settings) TemplateRef {
	doc := settings.Template
	return TemplateRef{
		Source:  doc.Source,
		Path:    doc.Path,
		Name:    doc.Meta.Name,
		Version: doc.Meta.Version,
	}
}

// --- Sections tool ---

// SectionsInput is the input for the sections tool (no parameters needed).
type SectionsInput struct{}

// SectionInfo is one template section.
type SectionInfo struct {
	Name        string `json:"name"                  jsonschema:"section name as written in the BEGIN/END markers"`
	Destination string `json:"destination,omitempty" jsonschema:"file the section is installed to, relative to the project root"`
	Mapped      bool   `json:"mapped"                jsonschema:"whether install writes this section"`
}

// SectionsOutput is the output for the sections tool.
type SectionsOutput struct {
	Template TemplateRef   `json:"template" jsonschema:"template in use"`
	Sections []SectionInfo `json:"sections" jsonschema:"sections in template order"`
	Missing  []string      `json:"missing"  jsonschema:"mapped section names the template does not provide"`
}

func handleSections(settings Settings) mcp.ToolHandlerFor[SectionsInput, SectionsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ SectionsInput) (*mcp.CallToolResult, SectionsOutput, error) {
		mapping := settings.mapping()
		names := settings.Template.Sections()

		out := SectionsOutput{
			Template: templateRef(settings),
			Sections: make([]SectionInfo, 0, len(names)),
			Missing:  []string{},
		}
		present := make(map[string]bool, len(names))
		for _, name := range names {
			present[name] = true
			info := SectionInfo{Name: name}
			if entry, ok := bank.Lookup(mapping, name); ok {
				info.Destination = entry.Path
				info.Mapped = true
			}
			out.Sections = append(out.Sections, info)
		}
		for _, entry := range mapping {
			if !present[entry.Name] {
				out.Missing = append(out.Missing, entry.Name)
			}
		}

		return nil, out, nil
	}
}

// --- Extract tool ---

// ExtractInput is the input for the extract tool.
type ExtractInput struct {
	Name string `json:"name" jsonschema:"section name, for example CLAUDE.md or TASK.md (required)"`
}

// ExtractOutput is the output for the extract tool.
type ExtractOutput struct {
	Name        string `json:"name"                  jsonschema:"section name"`
	Destination string `json:"destination,omitempty" jsonschema:"file the section is installed to, if mapped"`
	Body        string `json:"body"                  jsonschema:"section body, ending in exactly one newline"`
}

func handleExtract(settings Settings) mcp.ToolHandlerFor[ExtractInput, ExtractOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, ExtractOutput{}, errors.New("name is required")
		}

		body, ok := settings.Template.Extract(name)
		if !ok {
			return nil, ExtractOutput{}, fmt.Errorf("section %q not found in template (available: %s)",
				name, strings.Join(settings.Template.Sections(), ", "))
		}

		out := ExtractOutput{Name: name, Body: body}
		if entry, ok := bank.Lookup(settings.mapping(), name); ok {
			out.Destination = entry.Path
		}
		return nil, out, nil
	}
}
