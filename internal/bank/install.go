package bank

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gorewood/membank/internal/template"
)

// Status is the outcome of installing one mapping entry.
type Status string

// Outcome statuses.
const (
	StatusWritten    Status = "written"
	StatusWouldWrite Status = "would_write"
	StatusSkipped    Status = "skipped"
	StatusMissing    Status = "missing"
	StatusFailed     Status = "failed"
)

// Skip reasons reported with StatusSkipped.
const (
	ReasonExists          = "exists"
	ReasonExistsForceHint = "exists, use --force to overwrite"
)

// Policy controls what happens to destinations that already exist.
// SkipExisting takes precedence over Force.
type Policy struct {
	Force        bool `json:"force"`
	SkipExisting bool `json:"skip_existing"`
}

// Outcome records what happened to one mapping entry.
type Outcome struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
	Bytes  int    `json:"bytes,omitempty"`
	Err    error  `json:"-"`
}

// Result is the per-entry report of an Install run, in mapping order.
type Result struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Options tune an Install run.
type Options struct {
	// DryRun computes outcomes without touching the filesystem.
	DryRun bool
	// Logger receives debug records for each decision. Nil discards them.
	Logger *slog.Logger
}

// Install writes each mapped section of document under root.
//
// For every entry, in order: the parent directory is created, an existing
// destination is skipped or overwritten according to policy, and the section
// is extracted and written. A missing section is reported and nothing is
// written for that entry; errors never stop the remaining entries.
func Install(root, document string, mapping []Entry, policy Policy, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result := Result{Outcomes: make([]Outcome, 0, len(mapping))}
	for _, entry := range mapping {
		outcome := installEntry(root, document, entry, policy, opts.DryRun)
		logger.Debug("install entry",
			"name", entry.Name,
			"path", entry.Path,
			"status", outcome.Status,
			"reason", outcome.Reason,
		)
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}

// installEntry applies the policy table to a single entry.
func installEntry(root, document string, entry Entry, policy Policy, dryRun bool) Outcome {
	outcome := Outcome{Name: entry.Name, Path: entry.Path}
	dest := target(root, entry.Path)

	if !dryRun {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return failed(outcome, fmt.Errorf("creating directory for %s: %w", entry.Path, err))
		}
	}

	exists, err := fileExists(dest)
	if err != nil {
		return failed(outcome, err)
	}
	if exists {
		switch {
		case policy.SkipExisting:
			outcome.Status, outcome.Reason = StatusSkipped, ReasonExists
			return outcome
		case !policy.Force:
			outcome.Status, outcome.Reason = StatusSkipped, ReasonExistsForceHint
			return outcome
		}
	}

	body, ok := template.Extract(document, entry.Name)
	if !ok {
		outcome.Status, outcome.Reason = StatusMissing, "section not found in template"
		return outcome
	}

	outcome.Bytes = len(body)
	if dryRun {
		outcome.Status = StatusWouldWrite
		if exists {
			outcome.Reason = "overwrite"
		}
		return outcome
	}

	// #nosec G306 -- documentation files are meant to be shared
	if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
		return failed(outcome, fmt.Errorf("writing %s: %w", entry.Path, err))
	}
	outcome.Status = StatusWritten
	if exists {
		outcome.Reason = "overwritten"
	}
	return outcome
}

// fileExists reports whether path exists. Only unexpected stat errors are returned.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}

func failed(outcome Outcome, err error) Outcome {
	outcome.Status = StatusFailed
	outcome.Reason = err.Error()
	outcome.Err = err
	outcome.Bytes = 0
	return outcome
}

// Count returns the number of outcomes with the given status.
func (r Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Paths returns the destination paths of outcomes with the given status.
func (r Result) Paths(status Status) []string {
	var paths []string
	for _, o := range r.Outcomes {
		if o.Status == status {
			paths = append(paths, o.Path)
		}
	}
	return paths
}

// MissingNames returns the section names that were not found in the template.
func (r Result) MissingNames() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Status == StatusMissing {
			names = append(names, o.Name)
		}
	}
	return names
}

// BytesWritten sums the size of every written (or would-be written) file.
func (r Result) BytesWritten() int {
	total := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusWritten || o.Status == StatusWouldWrite {
			total += o.Bytes
		}
	}
	return total
}
