package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorewood/membank/internal/template"
)

// DateLayout is the format of the date stamp embedded in the fill-in prompt.
const DateLayout = "2006-01-02"

const promptPreamble = `# Memory Bank Fill-in Prompt

Generated: %s

You are setting up the memory bank for this project. Explore the repository
(README, build files, source tree, tests) and replace every placeholder in the
two documents below with facts about this project. Keep the headings. Remove
rows and bullets that do not apply instead of leaving placeholders behind.

Write the results to:

- ` + "`.memory-bank/PROJECT.md`" + `
- ` + "`.memory-bank/MODULES.md`" + `
`

const promptSeparator = "\n---\n\n"

const promptClosing = `Instructions:

1. Only record what you verified in the code or its documentation.
2. Mark anything you could not determine as "Unknown" rather than guessing.
3. When both files are written, summarize what you filled in and list the
   open questions for the maintainers.
`

// AssemblePrompt builds the fill-in prompt from the PROJECT.md and MODULES.md
// sections of document. A missing section is embedded as an empty string.
func AssemblePrompt(document, dateStamp string) string {
	project, _ := template.Extract(document, SectionProject)
	modules, _ := template.Extract(document, SectionModules)

	var b strings.Builder
	fmt.Fprintf(&b, promptPreamble, dateStamp)
	b.WriteString(promptSeparator)
	writePromptSection(&b, SectionProject, project)
	b.WriteString(promptSeparator)
	writePromptSection(&b, SectionModules, modules)
	b.WriteString(promptSeparator)
	b.WriteString(promptClosing)
	return b.String()
}

func writePromptSection(b *strings.Builder, name, body string) {
	fmt.Fprintf(b, "## %s\n\n", name)
	b.WriteString(body)
}

// DateStamp formats t for AssemblePrompt.
func DateStamp(t time.Time) string {
	return t.Format(DateLayout)
}

// WritePrompt writes content to rel under root, creating parent directories.
// The file is always overwritten; the mapping policy does not apply to it.
func WritePrompt(root, rel, content string) (string, error) {
	dest := target(root, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	// #nosec G306 -- prompt is a shared documentation file
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", rel, err)
	}
	return dest, nil
}
