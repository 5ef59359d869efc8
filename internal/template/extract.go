package template

import "strings"

const (
	beginPrefix  = "<!-- BEGIN: "
	endPrefix    = "<!-- END: "
	markerSuffix = " -->"
)

// BeginMarker returns the marker that opens the section called name.
func BeginMarker(name string) string {
	return beginPrefix + name + markerSuffix
}

// EndMarker returns the marker that closes the section called name.
func EndMarker(name string) string {
	return endPrefix + name + markerSuffix
}

// Extract returns the body of the section called name.
//
// The first begin marker and the first end marker for name are located; if
// either is missing, or the end marker does not start strictly after the
// begin marker, ok is false. The body is the text between the two markers
// with surrounding blank lines removed and exactly one trailing newline.
func Extract(document, name string) (body string, ok bool) {
	begin := BeginMarker(name)
	beginIdx := strings.Index(document, begin)
	endIdx := strings.Index(document, EndMarker(name))
	if beginIdx == -1 || endIdx == -1 || endIdx <= beginIdx {
		return "", false
	}

	start := beginIdx + len(begin)
	if start > endIdx {
		// Begin and end markers overlap; there is no body between them.
		return "", false
	}
	return trimBody(document[start:endIdx]) + "\n", true
}

// trimBody strips blank lines on both sides of the body.
// Trailing spaces on the last content line are kept (a Markdown hard break),
// as is indentation on the first content line. An inline body (same line as
// the markers) loses the spaces next to the markers.
func trimBody(raw string) string {
	content := strings.TrimRight(raw, " \t\r\n")
	body := content
	if nl := strings.IndexByte(raw[len(content):], '\n'); nl >= 0 {
		body = strings.TrimSuffix(raw[:len(content)+nl], "\r")
	}

	lead := len(body) - len(strings.TrimLeft(body, " \t\r\n"))
	if lead == 0 {
		return body
	}
	if nl := strings.LastIndexByte(body[:lead], '\n'); nl >= 0 {
		return body[nl+1:]
	}
	return body[lead:]
}

// Sections returns the names of all well-formed sections in document order.
// A name is listed once, and only when Extract would succeed for it.
func Sections(document string) []string {
	var names []string
	seen := make(map[string]bool)

	rest := document
	for {
		idx := strings.Index(rest, beginPrefix)
		if idx == -1 {
			break
		}
		rest = rest[idx+len(beginPrefix):]

		name, _, found := strings.Cut(rest, markerSuffix)
		if !found || name == "" || strings.Contains(name, "\n") || seen[name] {
			continue
		}
		if _, ok := Extract(document, name); !ok {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names
}
