package main

import "testing"

func TestNewServeCmd(t *testing.T) {
	cmd := newServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE is nil")
	}
}

func TestServeCommand_MissingTemplate(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	if _, _, err := executeCmd(t, "serve", "--dir", dir, "--template", dir+"/missing.md"); err == nil {
		t.Error("serve should fail before starting when the template is missing")
	}
}
