package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorewood/membank/internal/bank"
	"github.com/gorewood/membank/internal/output"
	"github.com/gorewood/membank/internal/template"
)

var mappedPaths = []string{
	".claude/CLAUDE.md",
	".memory-bank/PROJECT.md",
	".memory-bank/MODULES.md",
	".memory-bank/TASK.md",
}

const partialTemplate = `<!-- BEGIN: CLAUDE.md -->
Hello
<!-- END: CLAUDE.md -->
<!-- BEGIN: PROJECT.md -->
World
<!-- END: PROJECT.md -->
<!-- BEGIN: MODULES.md -->
Mods
<!-- END: MODULES.md -->
`

func decodeReport(t *testing.T, stdout string) installReport {
	t.Helper()
	var report installReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output should be valid JSON: %v\nOutput: %s", err, stdout)
	}
	return report
}

func TestInit_FreshDirectory(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	stdout, _, err := executeCmd(t, "init", "--dir", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	builtin := template.Builtin()
	for _, entry := range bank.DefaultMapping() {
		want, ok := builtin.Extract(entry.Name)
		if !ok {
			t.Fatalf("built-in template lacks %s", entry.Name)
		}
		got := readFile(t, filepath.Join(dir, filepath.FromSlash(entry.Path)))
		if got != want {
			t.Errorf("%s content mismatch:\ngot:  %q\nwant: %q", entry.Path, got, want)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(bank.DefaultPromptPath))); !os.IsNotExist(err) {
		t.Errorf("prompt should not be written by default, stat err = %v", err)
	}

	for _, want := range []string{"Done!", "4 files written", "Read .memory-bank/MODULES.md"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output should contain %q:\n%s", want, stdout)
		}
	}
}

func TestInit_SecondRunSkips(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	if _, _, err := executeCmd(t, "init", "--dir", dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := readFile(t, filepath.Join(dir, ".memory-bank", "TASK.md"))

	stdout, _, err := executeCmd(t, "init", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	report := decodeReport(t, stdout)

	if len(report.Written) != 0 {
		t.Errorf("written = %v, want none", report.Written)
	}
	if strings.Join(report.Skipped, ",") != strings.Join(mappedPaths, ",") {
		t.Errorf("skipped = %v, want %v", report.Skipped, mappedPaths)
	}
	for _, o := range report.Outcomes {
		if o.Reason != bank.ReasonExistsForceHint {
			t.Errorf("%s reason = %q, want %q", o.Path, o.Reason, bank.ReasonExistsForceHint)
		}
	}
	if after := readFile(t, filepath.Join(dir, ".memory-bank", "TASK.md")); after != before {
		t.Error("second run changed TASK.md")
	}
}

func TestInit_Policy(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCustom bool
		wantReason string
	}{
		{name: "default keeps existing", args: nil, wantCustom: true, wantReason: bank.ReasonExistsForceHint},
		{name: "force overwrites", args: []string{"--force"}, wantCustom: false, wantReason: "overwritten"},
		{name: "skip existing keeps", args: []string{"-s"}, wantCustom: true, wantReason: bank.ReasonExists},
		{name: "skip existing beats force", args: []string{"-f", "-s"}, wantCustom: true, wantReason: bank.ReasonExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			claude := filepath.Join(dir, ".claude", "CLAUDE.md")
			writeFile(t, claude, "custom\n")

			args := append([]string{"init", "--dir", dir, "--json"}, tt.args...)
			stdout, _, err := executeCmd(t, args...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			report := decodeReport(t, stdout)

			if got := readFile(t, claude) == "custom\n"; got != tt.wantCustom {
				t.Errorf("custom content kept = %v, want %v", got, tt.wantCustom)
			}
			if report.Outcomes[0].Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", report.Outcomes[0].Reason, tt.wantReason)
			}
			// The other three files did not exist and are always written.
			if len(report.Written) < 3 {
				t.Errorf("written = %v, want at least the three new files", report.Written)
			}
		})
	}
}

func TestInit_MissingExplicitTemplate(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, stderr, err := executeCmd(t, "init", "--dir", dir, "--template", filepath.Join(dir, "nope.md"))
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(stderr, "template file not found") {
		t.Errorf("stderr should explain the missing template: %q", stderr)
	}

	for _, sub := range []string{".claude", ".memory-bank"} {
		if _, err := os.Stat(filepath.Join(dir, sub)); !os.IsNotExist(err) {
			t.Errorf("%s should not be created, stat err = %v", sub, err)
		}
	}
}

func TestInit_TemplateFromEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	tmpl := filepath.Join(t.TempDir(), "partial.md")
	writeFile(t, tmpl, partialTemplate)
	t.Setenv("MEMBANK_TEMPLATE", tmpl)

	stdout, _, err := executeCmd(t, "init", "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	report := decodeReport(t, stdout)

	if report.Template.Source != "explicit" || report.Template.Path != tmpl {
		t.Errorf("template = %+v, want explicit %s", report.Template, tmpl)
	}
	if len(report.Missing) != 1 || report.Missing[0] != "TASK.md" {
		t.Errorf("missing = %v, want [TASK.md]", report.Missing)
	}
	if got := readFile(t, filepath.Join(dir, ".claude", "CLAUDE.md")); got != "Hello\n" {
		t.Errorf("CLAUDE.md = %q, want %q", got, "Hello\n")
	}
	if _, err := os.Stat(filepath.Join(dir, ".memory-bank", "TASK.md")); !os.IsNotExist(err) {
		t.Errorf("TASK.md should not be written, stat err = %v", err)
	}
}

func TestInit_MissingSectionWarns(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	tmpl := filepath.Join(t.TempDir(), "partial.md")
	writeFile(t, tmpl, partialTemplate)

	stdout, _, err := executeCmd(t, "--dir", dir, "--template", tmpl)
	if err != nil {
		t.Fatalf("missing section must not fail the run: %v", err)
	}
	if !strings.Contains(stdout, "template section TASK.md not found") {
		t.Errorf("output should report the missing section:\n%s", stdout)
	}
	if !strings.Contains(stdout, "1 missing from template") {
		t.Errorf("summary should count the missing section:\n%s", stdout)
	}
}

func TestInit_DryRun(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	stdout, _, err := executeCmd(t, "init", "--dir", dir, "--dry-run", "--prompt", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	report := decodeReport(t, stdout)

	if !report.DryRun {
		t.Error("dry_run should be true")
	}
	if len(report.Written) != 4 {
		t.Errorf("written = %v, want all four planned", report.Written)
	}
	if report.Prompt == nil || report.Prompt.Status != string(bank.StatusWouldWrite) {
		t.Errorf("prompt = %+v, want would_write", report.Prompt)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run created %d entries", len(entries))
	}
}

func TestInit_Prompt(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	now = func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local) }
	t.Cleanup(func() { now = time.Now })

	promptPath := filepath.Join(dir, filepath.FromSlash(bank.DefaultPromptPath))
	writeFile(t, promptPath, "stale\n")

	if _, _, err := executeCmd(t, "init", "--dir", dir, "-p"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := readFile(t, promptPath)
	if !strings.Contains(got, "2026-05-01") {
		t.Error("prompt should contain the date stamp")
	}
	project, _ := template.Builtin().Extract(bank.SectionProject)
	if !strings.Contains(got, project) {
		t.Error("prompt should embed the PROJECT.md section")
	}
	if strings.Contains(got, "stale") {
		t.Error("prompt should always be overwritten")
	}
}

func TestInit_ProjectConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".membank.yaml"), "force: true\nprompt: true\nprompt_path: docs/FILL.md\n")
	claude := filepath.Join(dir, ".claude", "CLAUDE.md")
	writeFile(t, claude, "custom\n")

	if _, _, err := executeCmd(t, "--dir", dir); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if readFile(t, claude) == "custom\n" {
		t.Error("force from project config should overwrite CLAUDE.md")
	}
	if _, err := os.Stat(filepath.Join(dir, "docs", "FILL.md")); err != nil {
		t.Errorf("prompt should be written to configured prompt_path: %v", err)
	}
}

func TestInit_EnvOverridesProjectConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".membank.yaml"), "force: true\n")
	t.Setenv("MEMBANK_SKIP_EXISTING", "true")
	claude := filepath.Join(dir, ".claude", "CLAUDE.md")
	writeFile(t, claude, "custom\n")

	if _, _, err := executeCmd(t, "--dir", dir); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if readFile(t, claude) != "custom\n" {
		t.Error("MEMBANK_SKIP_EXISTING should keep the existing file")
	}
}

func TestInit_WriteFailureContinues(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	// A directory where PROJECT.md should go makes the write fail.
	if err := os.MkdirAll(filepath.Join(dir, ".memory-bank", "PROJECT.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCmd(t, "init", "--dir", dir, "--force", "--json")
	if err == nil {
		t.Fatal("expected error when a file cannot be written")
	}
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}

	report := decodeReport(t, stdout)
	if len(report.Failed) != 1 || report.Failed[0] != ".memory-bank/PROJECT.md" {
		t.Errorf("failed = %v, want [.memory-bank/PROJECT.md]", report.Failed)
	}
	if len(report.Written) != 3 {
		t.Errorf("written = %v, want the other three files", report.Written)
	}
}

func TestInit_InvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad color", args: []string{"--color", "purple"}},
		{name: "missing dir", args: []string{"--dir", filepath.Join(os.TempDir(), "membank-does-not-exist", "x")}},
		{name: "missing config file", args: []string{"--config", filepath.Join(os.TempDir(), "membank-does-not-exist.yaml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			args := tt.args
			if tt.name != "missing dir" {
				args = append([]string{"--dir", t.TempDir()}, args...)
			}

			_, _, err := executeCmd(t, append([]string{"init"}, args...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
			}
		})
	}
}

func TestInit_ProjectTemplateRelativeToRoot(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tmpl.md"), partialTemplate)
	writeFile(t, filepath.Join(dir, ".membank.yaml"), "template: tmpl.md\n")
	t.Chdir(t.TempDir())

	stdout, stderr, err := executeCmd(t, "--dir", dir, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\nstderr: %s", err, stderr)
	}
	report := decodeReport(t, stdout)

	if want := filepath.Join(dir, "tmpl.md"); report.Template.Path != want {
		t.Errorf("template path = %q, want %q", report.Template.Path, want)
	}
	if got := readFile(t, filepath.Join(dir, ".claude", "CLAUDE.md")); got != "Hello\n" {
		t.Errorf("CLAUDE.md = %q, want %q", got, "Hello\n")
	}
}
