package template

import (
	"errors"
	"os"
	"path/filepath"
)

// InstallRelativePath is where a packaged template lives, relative to the
// directory holding the membank executable.
const InstallRelativePath = "../templates/template.md"

// executable is swapped in tests.
var executable = os.Executable

// InstallPath returns the install-relative template path for the running
// binary, or "" if the executable location cannot be determined.
func InstallPath() string {
	exe, err := executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), filepath.FromSlash(InstallRelativePath))
}

// Resolve finds the template to use.
//
// Resolution order:
//  1. explicit path (from --template, MEMBANK_TEMPLATE or config); a missing
//     file is an error wrapping ErrNotFound
//  2. <exe dir>/../templates/template.md, if present
//  3. the built-in template
func Resolve(explicit string) (*Document, error) {
	if explicit != "" {
		doc, err := Load(explicit)
		if err != nil {
			return nil, err
		}
		doc.Source = "explicit"
		return doc, nil
	}

	if path := InstallPath(); path != "" {
		doc, err := Load(path)
		switch {
		case err == nil:
			doc.Source = "install"
			return doc, nil
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}

	return Builtin(), nil
}
