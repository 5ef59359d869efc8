// Package template locates and extracts the named sections of a memory bank
// template document.
//
// A template is a single Markdown document holding several sections, each
// delimited by a begin and end marker carrying the section name:
//
//	<!-- BEGIN: PROJECT.md -->
//	# Project
//	...
//	<!-- END: PROJECT.md -->
//
// Extraction is purely textual. Nothing outside the two marker strings is
// interpreted, so a section body may contain any Markdown, including other
// HTML comments.
//
// # Sources
//
// The template used by the CLI is resolved in this order:
//
//	template.Resolve(explicit)   // explicit path, must exist
//	                             // <exe dir>/../templates/template.md
//	                             // built-in template compiled into the binary
package template
