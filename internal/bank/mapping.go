package bank

import "path/filepath"

// Entry maps a template section to its destination, relative to the target root.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Section names used by the default mapping and the prompt assembler.
const (
	SectionClaude  = "CLAUDE.md"
	SectionProject = "PROJECT.md"
	SectionModules = "MODULES.md"
	SectionTask    = "TASK.md"
)

// Destination directories created under the target root.
const (
	ClaudeDir     = ".claude"
	MemoryBankDir = ".memory-bank"
)

// DefaultPromptPath is where the fill-in prompt is written.
const DefaultPromptPath = MemoryBankDir + "/FILL_PROMPT.md"

// DefaultMapping returns the fixed section-to-destination table, in install order.
// A fresh slice is returned on every call.
func DefaultMapping() []Entry {
	return []Entry{
		{Name: SectionClaude, Path: ClaudeDir + "/CLAUDE.md"},
		{Name: SectionProject, Path: MemoryBankDir + "/PROJECT.md"},
		{Name: SectionModules, Path: MemoryBankDir + "/MODULES.md"},
		{Name: SectionTask, Path: MemoryBankDir + "/TASK.md"},
	}
}

// Lookup returns the mapping entry for a section name.
func Lookup(mapping []Entry, name string) (Entry, bool) {
	for _, e := range mapping {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// target joins a slash-separated relative path onto root.
func target(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
