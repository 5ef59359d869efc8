package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		document string
		section  string
		want     string
		wantOK   bool
	}{
		{
			name:     "simple body",
			document: "<!-- BEGIN: X -->\nbody\n<!-- END: X -->",
			section:  "X",
			want:     "body\n",
			wantOK:   true,
		},
		{
			name:     "inline body with spaces",
			document: "<!-- BEGIN: X --> body <!-- END: X -->",
			section:  "X",
			want:     "body\n",
			wantOK:   true,
		},
		{
			name:     "surrounding blank lines trimmed",
			document: "<!-- BEGIN: X -->\n\n\nline one\nline two\n\n\n<!-- END: X -->",
			section:  "X",
			want:     "line one\nline two\n",
			wantOK:   true,
		},
		{
			name:     "inner blank lines kept",
			document: "<!-- BEGIN: X -->\na\n\nb\n<!-- END: X -->",
			section:  "X",
			want:     "a\n\nb\n",
			wantOK:   true,
		},
		{
			name:     "first line indentation kept",
			document: "<!-- BEGIN: X -->\n\n    code\n<!-- END: X -->",
			section:  "X",
			want:     "    code\n",
			wantOK:   true,
		},
		{
			name:     "crlf line endings",
			document: "<!-- BEGIN: X -->\r\nbody\r\n<!-- END: X -->",
			section:  "X",
			want:     "body\n",
			wantOK:   true,
		},
		{
			name:     "trailing spaces on last line kept",
			document: "<!-- BEGIN: X -->\nline one  \nhard break  \n  \n\n<!-- END: X -->",
			section:  "X",
			want:     "line one  \nhard break  \n",
			wantOK:   true,
		},
		{
			name:     "trailing spaces kept with crlf",
			document: "<!-- BEGIN: X -->\r\nhard break  \r\n\r\n<!-- END: X -->",
			section:  "X",
			want:     "hard break  \n",
			wantOK:   true,
		},
		{
			name:     "indented end marker",
			document: "<!-- BEGIN: X -->\nbody\n    <!-- END: X -->",
			section:  "X",
			want:     "body\n",
			wantOK:   true,
		},
		{
			name:     "empty body",
			document: "<!-- BEGIN: X --><!-- END: X -->",
			section:  "X",
			want:     "\n",
			wantOK:   true,
		},
		{
			name:     "text outside markers ignored",
			document: "preamble\n<!-- BEGIN: X -->\nbody\n<!-- END: X -->\ntrailer",
			section:  "X",
			want:     "body\n",
			wantOK:   true,
		},
		{
			name:     "missing begin marker",
			document: "body\n<!-- END: X -->",
			section:  "X",
		},
		{
			name:     "missing end marker",
			document: "<!-- BEGIN: X -->\nbody",
			section:  "X",
		},
		{
			name:     "end before begin",
			document: "<!-- END: X -->\nbody\n<!-- BEGIN: X -->",
			section:  "X",
		},
		{
			name:     "unknown name",
			document: "<!-- BEGIN: X -->\nbody\n<!-- END: X -->",
			section:  "Y",
		},
		{
			name:     "prefix names do not collide",
			document: "<!-- BEGIN: TASK2 -->\ntwo\n<!-- END: TASK2 -->\n<!-- BEGIN: TASK -->\none\n<!-- END: TASK -->",
			section:  "TASK",
			want:     "one\n",
			wantOK:   true,
		},
		{
			name:     "first occurrence wins",
			document: "<!-- BEGIN: X -->\nfirst\n<!-- END: X -->\n<!-- BEGIN: X -->\nsecond\n<!-- END: X -->",
			section:  "X",
			want:     "first\n",
			wantOK:   true,
		},
		{
			name:     "nested comment in body",
			document: "<!-- BEGIN: X -->\n<!-- keep me -->\nbody\n<!-- END: X -->",
			section:  "X",
			want:     "<!-- keep me -->\nbody\n",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.document, tt.section)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	doc := "<!-- BEGIN: A -->\nalpha\n<!-- END: A -->"
	first, ok := Extract(doc, "A")
	require.True(t, ok)
	second, ok := Extract(doc, "A")
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestMarkers(t *testing.T) {
	assert.Equal(t, "<!-- BEGIN: CLAUDE.md -->", BeginMarker("CLAUDE.md"))
	assert.Equal(t, "<!-- END: CLAUDE.md -->", EndMarker("CLAUDE.md"))
}

func TestSections(t *testing.T) {
	doc := `intro
<!-- BEGIN: B -->
b
<!-- END: B -->
<!-- BEGIN: A -->
a
<!-- END: A -->
<!-- BEGIN: Orphan -->
no end marker
<!-- BEGIN: B -->
duplicate
<!-- END: B -->
`
	assert.Equal(t, []string{"B", "A"}, Sections(doc))
}

func TestSections_Empty(t *testing.T) {
	assert.Empty(t, Sections(""))
	assert.Empty(t, Sections("no markers here"))
}
