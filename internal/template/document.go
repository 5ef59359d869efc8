package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a template file does not exist.
var ErrNotFound = errors.New("template not found")

// Meta is the optional YAML frontmatter at the top of a template.
type Meta struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     int    `yaml:"version,omitempty"`
}

// Document is a loaded template.
type Document struct {
	Meta Meta

	// Content is the full template text, frontmatter included.
	// Sections are always extracted from the unmodified text.
	Content string

	// Source describes where the template came from: "built-in",
	// "install", "explicit", or "inline".
	Source string

	// Path is the file the template was read from. Empty for the built-in.
	Path string
}

// Parse builds a Document from raw template text.
// Malformed frontmatter is an error; a template without frontmatter is not.
func Parse(raw string) (*Document, error) {
	doc := &Document{Content: raw, Source: "inline"}

	frontmatter := splitFrontmatter(raw)
	if frontmatter == "" {
		return doc, nil
	}
	if err := yaml.Unmarshal([]byte(frontmatter), &doc.Meta); err != nil {
		return nil, fmt.Errorf("invalid template frontmatter: %w", err)
	}
	return doc, nil
}

// Load reads a template file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	doc, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Extract returns the body of the named section of this document.
func (d *Document) Extract(name string) (string, bool) {
	return Extract(d.Content, name)
}

// Sections returns the names of the well-formed sections in this document.
func (d *Document) Sections() []string {
	return Sections(d.Content)
}

// Describe returns a one-line label for the template source.
func (d *Document) Describe() string {
	if d.Path == "" {
		return d.Source
	}
	return d.Source + " (" + d.Path + ")"
}

// splitFrontmatter returns the YAML between a leading "---" line and the
// next "---" line, or "" when the document has no frontmatter.
func splitFrontmatter(raw string) string {
	trimmed := strings.TrimLeft(raw, "\ufeff \t\r\n")
	if !strings.HasPrefix(trimmed, "---") {
		return ""
	}

	rest := trimmed[3:]
	before, _, ok := strings.Cut(rest, "\n---")
	if !ok {
		return ""
	}
	return strings.TrimSpace(before)
}
