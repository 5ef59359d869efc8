package template

import (
	_ "embed"
	"sync"
)

//go:embed templates/template.md
var builtinContent string

var (
	builtinOnce sync.Once
	builtinDoc  *Document
)

// Builtin returns the template compiled into the binary.
// The embedded file is validated by tests, so a parse failure here is a
// build defect and falls back to the raw text without metadata.
func Builtin() *Document {
	builtinOnce.Do(func() {
		doc, err := Parse(builtinContent)
		if err != nil {
			doc = &Document{Content: builtinContent}
		}
		doc.Source = "built-in"
		builtinDoc = doc
	})
	clone := *builtinDoc
	return &clone
}
