package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/membank/internal/config"
	"github.com/gorewood/membank/internal/output"
	"github.com/gorewood/membank/internal/template"
)

// now is the clock used for prompt date stamps; tests replace it.
var now = time.Now

// runEnv bundles what every command needs after flag parsing.
type runEnv struct {
	cfg     *config.Config
	printer *output.Printer
	logger  *slog.Logger
	root    string
}

// newRunEnv resolves the target root, loads configuration and builds the
// printer and logger. Errors have already been printed when returned.
func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	// Until config is loaded, report errors plainly in the requested format.
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr())

	root, err := targetRoot(cmd)
	if err != nil {
		printer.Error(err)
		return nil, err
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{Root: root, File: configFile, Flags: cmd.Flags()})
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return nil, exitErr
	}

	if err := output.ValidateColorMode(cfg.Color); err != nil {
		printer.Error(err)
		return nil, err
	}

	color := output.ResolveColorMode(cfg.Color, output.IsTTY(cmd.OutOrStdout()))
	env := &runEnv{
		cfg:     cfg,
		printer: output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr()),
		logger:  newLogger(cmd.ErrOrStderr(), cfg.Verbose),
		root:    root,
	}
	env.logger.Debug("config loaded", "root", root, "files", cfg.Files, "template", cfg.Template)
	return env, nil
}

// newLogger returns a text logger on w at Info, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// targetRoot returns the absolute target directory: --dir or the working directory.
func targetRoot(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", output.NewSystemErrorWithCause("failed to get working directory", err)
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", output.NewUserErrorWithCause(fmt.Sprintf("invalid --dir %q", dir), err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return "", output.NewUserError(fmt.Sprintf("target directory %s does not exist", abs))
	}
	return abs, nil
}

// loadTemplate resolves the template for this run. A configured template
// that does not exist is a user error (exit code 1).
func (e *runEnv) loadTemplate() (*template.Document, error) {
	doc, err := template.Resolve(e.cfg.Template)
	if err != nil {
		var exitErr *output.ExitError
		if errors.Is(err, template.ErrNotFound) {
			exitErr = output.NewUserErrorWithCause("template file not found at "+e.cfg.Template, err)
		} else {
			exitErr = output.NewUserErrorWithCause(err.Error(), err)
		}
		e.printer.Error(exitErr)
		return nil, exitErr
	}
	e.logger.Debug("template resolved", "source", doc.Source, "path", doc.Path)
	return doc, nil
}

// templateInfo is the JSON description of the template in use.
type templateInfo struct {
	Source      string `json:"source"`
	Path        string `json:"path,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Version     int    `json:"version,omitempty"`
}

func describeTemplate(doc *template.Document) templateInfo {
	return templateInfo{
		Source:      doc.Source,
		Path:        doc.Path,
		Name:        doc.Meta.Name,
		Description: doc.Meta.Description,
		Version:     doc.Meta.Version,
	}
}
